package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func nodeAt(x, y int) int {
	return MarkerPosition{X: x, Y: y}.NodeID()
}

func TestNewBoardGraph(t *testing.T) {
	g := NewBoardGraph()

	for id, position := range g.Vertices {
		require.NotNil(t, position, "Every valid position starts as a node")
		require.Equal(t, id, position.NodeID())
	}

	t.Run("border nodes see one tile slot", func(t *testing.T) {
		require.Len(t, g.Adjacency[nodeAt(1, 18)], 7)
	})

	t.Run("interior nodes see two tile slots", func(t *testing.T) {
		require.Len(t, g.Adjacency[nodeAt(3, 4)], 14)
	})

	t.Run("edges start unbuilt", func(t *testing.T) {
		for _, edges := range g.Adjacency {
			for _, edge := range edges {
				require.False(t, edge.Built)
			}
		}
	})
}

func TestGraphPlaceTile(t *testing.T) {
	g := NewBoardGraph()
	tile := tileWithConnection(t, 0, 5) // routes (1, 3) to (1, 0) on tile (0, 0)
	g.PlaceTile(tile, TileCoord{0, 0})

	start := nodeAt(1, 0)
	end := nodeAt(1, 3)

	require.Equal(t, []Edge{{To: end, Built: true}}, g.Adjacency[start],
		"Border end keeps only the built path edge")
	require.Len(t, g.Adjacency[end], 8,
		"Interior end keeps its edges into (0, 1) plus the built path")
	unbuilt := 0
	for _, edge := range g.Adjacency[end] {
		if edge.Built {
			require.Equal(t, start, edge.To)
		} else {
			unbuilt++
		}
	}
	require.Equal(t, 7, unbuilt)

	t.Run("keeping edges reciprocal", func(t *testing.T) {
		for id, edges := range g.Adjacency {
			for _, edge := range edges {
				found := false
				for _, back := range g.Adjacency[edge.To] {
					if back.To == id && back.Built == edge.Built {
						found = true
						break
					}
				}
				require.True(t, found, "Edge %d->%d must have a mirror", id, edge.To)
			}
		}
	})

	t.Run("swallowing chain interior nodes on extension", func(t *testing.T) {
		// the second tile continues the path entering (0, 1) at entry 5
		g.PlaceTile(tileWithConnection(t, 5, 0), TileCoord{0, 1})

		require.Nil(t, g.Vertices[end], "Chain interior node disappears")
		require.Empty(t, g.Adjacency[end])

		newEnd := nodeAt(1, 6)
		require.Contains(t, g.Adjacency[start], Edge{To: newEnd, Built: true},
			"The chain ends fuse into one built edge")
		require.Contains(t, g.Adjacency[newEnd], Edge{To: start, Built: true})
	})
}

func TestGraphClone(t *testing.T) {
	g := NewBoardGraph()
	g.PlaceTile(tileWithConnection(t, 0, 5), TileCoord{0, 0})

	clone := g.Clone()

	require.Equal(t, g.Adjacency, clone.Adjacency)

	clone.PlaceTile(tileWithConnection(t, 5, 0), TileCoord{0, 1})
	require.NotNil(t, g.Vertices[nodeAt(1, 3)], "Original graph is untouched")
}

func TestBFSFrom(t *testing.T) {
	g := NewBoardGraph()

	steps := g.BFSFrom(nodeAt(1, 18))

	require.Len(t, steps, NumNodes, "The empty board graph is connected")
	require.Equal(t, BFSStep{Dist: 0, Node: nodeAt(1, 18)}, steps[0])
	for i := 1; i < len(steps); i++ {
		require.GreaterOrEqual(t, steps[i].Dist, steps[i-1].Dist,
			"Distances are non-decreasing in visitation order")
	}
}

func TestAdjacencyMatrix(t *testing.T) {
	g := NewBoardGraph()
	g.PlaceTile(tileWithConnection(t, 0, 5), TileCoord{0, 0})

	matrix := g.AdjacencyMatrix()

	start := nodeAt(1, 0)
	end := nodeAt(1, 3)
	require.Equal(t, int8(1), matrix[start][end], "Built edges export as +1")
	require.Equal(t, int8(1), matrix[end][start])
	require.Equal(t, int8(-1), matrix[nodeAt(1, 18)][nodeAt(2, 18)],
		"Unbuilt edges export as -1")
	for id := 0; id < NumNodes; id++ {
		require.Equal(t, int8(0), matrix[id][id], "No self loops")
	}
}
