package game

import "fmt"

// Edge links two graph nodes. A built edge is backed by an actual placed
// path segment; an unbuilt edge represents a connection a future tile could
// still create through an empty slot.
type Edge struct {
	To    int
	Built bool
}

// BoardGraph mirrors every possible marker position as a node and is
// maintained incrementally as tiles are placed. It is a derived view for
// external consumers (reachability queries, ML feature export); the board's
// own movement logic never consults it.
type BoardGraph struct {
	// Vertices[id] is nil once a path has swallowed the position.
	Vertices  [NumNodes]*MarkerPosition
	Adjacency [NumNodes][]Edge
}

// NewBoardGraph initializes the graph for an empty board: every valid
// position is a node, with unbuilt edges to all other entry points of each
// adjacent tile slot.
func NewBoardGraph() *BoardGraph {
	g := &BoardGraph{}
	for _, position := range AllPositions {
		p := position
		g.Vertices[position.NodeID()] = &p
	}

	for id, position := range g.Vertices {
		for _, te := range position.EntryPointIndices() {
			for entry := 0; entry < 8; entry++ {
				if entry == te.Entry {
					continue
				}
				neighbor := PositionFromEntryPoint(te.Tile, entry)
				g.Adjacency[id] = append(g.Adjacency[id], Edge{To: neighbor.NodeID()})
			}
		}
	}
	return g
}

// Clone returns a fully independent deep copy.
func (g *BoardGraph) Clone() *BoardGraph {
	clone := &BoardGraph{}
	for id, position := range g.Vertices {
		if position != nil {
			p := *position
			clone.Vertices[id] = &p
		}
	}
	for id, edges := range g.Adjacency {
		if edges != nil {
			clone.Adjacency[id] = append(make([]Edge, 0, len(edges)), edges...)
		}
	}
	return clone
}

func (g *BoardGraph) removeEdge(a, b int) {
	for _, pair := range [2][2]int{{a, b}, {b, a}} {
		from, to := pair[0], pair[1]
		idx := -1
		for i, edge := range g.Adjacency[from] {
			if edge.To == to {
				idx = i
				break
			}
		}
		if idx < 0 {
			panic(fmt.Sprintf("no edge between nodes %d and %d", from, to))
		}
		last := len(g.Adjacency[from]) - 1
		g.Adjacency[from][idx] = g.Adjacency[from][last]
		g.Adjacency[from] = g.Adjacency[from][:last]
	}
}

// PlaceTile rewires the graph for a tile placed at coord: all potential
// edges across the slot are removed, then each of the tile's four paths is
// connected, growing through any chain that already ends at its endpoints.
func (g *BoardGraph) PlaceTile(tile Tile, coord TileCoord) {
	// remove all connections going across this slot, each edge once
	for a := 0; a < 8; a++ {
		for b := a + 1; b < 8; b++ {
			nodeA := PositionFromEntryPoint(coord, a).NodeID()
			nodeB := PositionFromEntryPoint(coord, b).NodeID()
			g.removeEdge(nodeA, nodeB)
		}
	}

	for _, path := range tile.Paths() {
		var pathEnds [2]int
		for i, entry := range path {
			nodeID := PositionFromEntryPoint(coord, entry).NodeID()
			// a node left with a single neighbor is the end of an existing
			// chain (the edges across this slot are already gone): adopt the
			// far end of that chain and swallow the node itself
			pathEnds[i] = nodeID
			if len(g.Adjacency[nodeID]) == 1 {
				pathEnds[i] = g.Adjacency[nodeID][0].To
			}
			if pathEnds[i] != nodeID {
				g.Vertices[nodeID] = nil
				g.removeEdge(pathEnds[i], nodeID)
			}
		}
		g.Adjacency[pathEnds[0]] = append(g.Adjacency[pathEnds[0]], Edge{To: pathEnds[1], Built: true})
		g.Adjacency[pathEnds[1]] = append(g.Adjacency[pathEnds[1]], Edge{To: pathEnds[0], Built: true})
	}
}

// BFSStep is one node visited by BFSFrom, with its distance from the start.
type BFSStep struct {
	Dist int
	Node int
}

// BFSFrom runs a breadth-first traversal over built and unbuilt edges,
// returning nodes in visitation order.
func (g *BoardGraph) BFSFrom(nodeID int) []BFSStep {
	out := make([]BFSStep, 0, NumNodes)
	var visited [NumNodes]bool

	queue := []BFSStep{{Dist: 0, Node: nodeID}}
	visited[nodeID] = true
	out = append(out, BFSStep{Dist: 0, Node: nodeID})

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, edge := range g.Adjacency[current.Node] {
			if visited[edge.To] {
				continue
			}
			visited[edge.To] = true
			step := BFSStep{Dist: current.Dist + 1, Node: edge.To}
			queue = append(queue, step)
			out = append(out, step)
		}
	}
	return out
}

// AdjacencyMatrix exports the graph as a 168x168 matrix for ML consumers:
// +1 for a built edge, -1 for an unbuilt edge, 0 for no edge. A read-only
// view recomputed from the adjacency list.
func (g *BoardGraph) AdjacencyMatrix() [NumNodes][NumNodes]int8 {
	var matrix [NumNodes][NumNodes]int8
	for from, edges := range g.Adjacency {
		for _, edge := range edges {
			if edge.Built {
				matrix[from][edge.To] = 1
			} else {
				matrix[from][edge.To] = -1
			}
		}
	}
	return matrix
}
