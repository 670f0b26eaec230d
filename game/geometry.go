package game

import "fmt"

const (
	// GridSize is the side length of the tile grid.
	GridSize = 6
	// LatticeSize is the side length of the lattice obtained by splitting
	// each tile into 3x3 subtiles.
	LatticeSize = 19
	// NumNodes is the number of valid marker positions on the lattice.
	NumNodes = 168
	// NumBorderPositions is the number of starting positions on the border.
	NumBorderPositions = 48
)

// TileCoord identifies a cell in the 6x6 placement grid.
type TileCoord struct {
	X, Y int
}

// MarkerPosition is a point on the 19x19 lattice. A lattice coordinate is
// valid iff exactly one of its components is a multiple of 3. A position on a
// tile boundary can equivalently be viewed as a (TileCoord, entry point)
// pair; entry point indices start from 0 at the left point on the south side.
// Positions strictly inside the board belong to two adjacent tiles, border
// positions to exactly one.
type MarkerPosition struct {
	X, Y int
}

// TileEntry is one (tile, entry point) view of a marker position.
type TileEntry struct {
	Tile  TileCoord
	Entry int
}

// PositionFromEntryPoint places the entry point of a tile onto the lattice.
func PositionFromEntryPoint(tile TileCoord, entry int) MarkerPosition {
	var dx int
	switch entry {
	case 6, 7:
		dx = 0
	case 0, 5:
		dx = 1
	case 1, 4:
		dx = 2
	case 2, 3:
		dx = 3
	default:
		panic(fmt.Sprintf("invalid entry point %d", entry))
	}
	var dy int
	switch entry {
	case 4, 5:
		dy = 0
	case 3, 6:
		dy = 1
	case 2, 7:
		dy = 2
	case 0, 1:
		dy = 3
	}
	return MarkerPosition{X: tile.X*3 + dx, Y: tile.Y*3 + dy}
}

// PositionFromBorderIndex converts an index on the border of the board to a
// lattice position. Index 0 is the bottom left corner (1, 18); indices walk
// along y=18, then x=18, then y=0, then x=0.
func PositionFromBorderIndex(idx int) MarkerPosition {
	return borderPositions[idx]
}

var borderPositions = makeBorderPositions()

func makeBorderPositions() [NumBorderPositions]MarkerPosition {
	var out [NumBorderPositions]MarkerPosition
	idx := 0
	for x := 0; x < 18; x++ {
		if x%3 == 0 {
			continue
		}
		out[idx] = MarkerPosition{X: x, Y: 18}
		idx++
	}
	for yInv := 0; yInv < 18; yInv++ {
		if yInv%3 == 0 {
			continue
		}
		out[idx] = MarkerPosition{X: 18, Y: 18 - yInv}
		idx++
	}
	for xInv := 0; xInv < 18; xInv++ {
		if xInv%3 == 0 {
			continue
		}
		out[idx] = MarkerPosition{X: 18 - xInv, Y: 0}
		idx++
	}
	for y := 0; y < 18; y++ {
		if y%3 == 0 {
			continue
		}
		out[idx] = MarkerPosition{X: 0, Y: y}
		idx++
	}
	return out
}

// AllPositions lists the 168 valid lattice positions. Never mutated after
// initialization.
var AllPositions = makeAllPositions()

func makeAllPositions() []MarkerPosition {
	out := make([]MarkerPosition, 0, NumNodes)
	for x := 0; x < LatticeSize; x++ {
		for y := 0; y < LatticeSize; y++ {
			if (x%3 == 0) != (y%3 == 0) {
				out = append(out, MarkerPosition{X: x, Y: y})
			}
		}
	}
	return out
}

// IsEdge reports whether the position lies on the outer border of the board.
func (p MarkerPosition) IsEdge() bool {
	return p.X == 0 || p.X == 18 || p.Y == 0 || p.Y == 18
}

// EntryPointIndices returns the adjacent tile coordinates together with the
// entry point index this position has on each: one pair for border
// positions, two for interior boundary positions. The first pair is always
// the tile whose 3x3 subgrid contains the point.
func (p MarkerPosition) EntryPointIndices() []TileEntry {
	x, y := p.X, p.Y

	if x == 18 {
		var entry int
		switch y % 3 {
		case 1:
			entry = 3
		case 2:
			entry = 2
		default:
			panic(fmt.Sprintf("invalid lattice coordinates (%d, %d)", x, y))
		}
		return []TileEntry{{Tile: TileCoord{X: 5, Y: y / 3}, Entry: entry}}
	}
	if y == 18 {
		var entry int
		switch x % 3 {
		case 1:
			entry = 0
		case 2:
			entry = 1
		default:
			panic(fmt.Sprintf("invalid lattice coordinates (%d, %d)", x, y))
		}
		return []TileEntry{{Tile: TileCoord{X: x / 3, Y: 5}, Entry: entry}}
	}

	tileX, tileY := x/3, y/3
	localX, localY := x%3, y%3

	var entry int
	switch {
	case localX == 2 && localY == 0:
		entry = 4
	case localX == 1 && localY == 0:
		entry = 5
	case localX == 0 && localY == 1:
		entry = 6
	case localX == 0 && localY == 2:
		entry = 7
	default:
		panic(fmt.Sprintf("invalid lattice coordinates (%d, %d)", x, y))
	}

	if x == 0 || y == 0 {
		return []TileEntry{{Tile: TileCoord{X: tileX, Y: tileY}, Entry: entry}}
	}

	var adjacent TileCoord
	if localX == 0 {
		adjacent = TileCoord{X: tileX - 1, Y: tileY}
	} else {
		adjacent = TileCoord{X: tileX, Y: tileY - 1}
	}

	return []TileEntry{
		{Tile: TileCoord{X: tileX, Y: tileY}, Entry: entry},
		{Tile: adjacent, Entry: oppositeEntry(entry)},
	}
}

// oppositeEntry is the entry point exactly across a shared tile boundary.
func oppositeEntry(entry int) int {
	switch entry {
	case 5:
		return 0
	case 4:
		return 1
	case 7:
		return 2
	case 6:
		return 3
	}
	panic(fmt.Sprintf("entry point %d has no opposite", entry))
}

// EntryPointIndexOn returns the entry point index this position has on the
// given tile, if the tile is adjacent to it.
func (p MarkerPosition) EntryPointIndexOn(tile TileCoord) (int, bool) {
	for _, te := range p.EntryPointIndices() {
		if te.Tile == tile {
			return te.Entry, true
		}
	}
	return 0, false
}

// AdjacentTiles returns the one or two tile coordinates sharing this
// position.
func (p MarkerPosition) AdjacentTiles() []TileCoord {
	indices := p.EntryPointIndices()
	tiles := make([]TileCoord, len(indices))
	for i, te := range indices {
		tiles[i] = te.Tile
	}
	return tiles
}

// NodeID maps the position to a stable graph node id in [0, 168). Positions
// on horizontal tile boundaries occupy the first half, positions on vertical
// boundaries the second; each half is linearized by tile row/column and
// sub-position.
func (p MarkerPosition) NodeID() int {
	switch {
	case p.X%3 == 0 && p.Y%3 != 0:
		return (p.X/3)*12 + (p.Y - 1 - p.Y/3)
	case p.Y%3 == 0 && p.X%3 != 0:
		return 7*12 + (p.Y/3)*12 + (p.X - 1 - p.X/3)
	}
	panic(fmt.Sprintf("invalid lattice coordinates (%d, %d)", p.X, p.Y))
}
