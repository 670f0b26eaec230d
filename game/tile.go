package game

import (
	"fmt"
	"strings"
)

// Tile routes four paths between the eight entry points on its boundary.
// Connections is an involution with no fixed points:
// Connections[Connections[i]] == i and Connections[i] != i for all i.
// Tiles are immutable values; Rotated returns a new tile.
type Tile struct {
	Connections [8]int
}

// ParseTile builds a tile from its code: four dash-separated pairs of
// 1-indexed entry points, e.g. "12-34-56-78".
func ParseTile(code string) (Tile, error) {
	var tile Tile
	for i := range tile.Connections {
		tile.Connections[i] = -1
	}

	pairs := strings.Split(code, "-")
	if len(pairs) != 4 {
		return Tile{}, fmt.Errorf("invalid tile code %q: expected 4 pairs, got %d", code, len(pairs))
	}
	for _, pair := range pairs {
		if len(pair) != 2 {
			return Tile{}, fmt.Errorf("invalid tile code %q: malformed pair %q", code, pair)
		}
		from := int(pair[0] - '1')
		to := int(pair[1] - '1')
		if from < 0 || from > 7 || to < 0 || to > 7 || from == to {
			return Tile{}, fmt.Errorf("invalid tile code %q: pair %q out of range", code, pair)
		}
		if tile.Connections[from] != -1 || tile.Connections[to] != -1 {
			return Tile{}, fmt.Errorf("invalid tile code %q: entry point used twice", code)
		}
		tile.Connections[from] = to
		tile.Connections[to] = from
	}
	return tile, nil
}

// MustParseTile is ParseTile for the static tile catalog and tests.
func MustParseTile(code string) Tile {
	tile, err := ParseTile(code)
	if err != nil {
		panic(err)
	}
	return tile
}

// String renders the canonical pair code, e.g. "12-34-56-78".
func (t Tile) String() string {
	var b strings.Builder
	for i, path := range t.Paths() {
		if i > 0 {
			b.WriteByte('-')
		}
		b.WriteByte(byte('1' + path[0]))
		b.WriteByte(byte('1' + path[1]))
	}
	return b.String()
}

// Rotated returns the tile turned by num quarter turns: entry point i takes
// the connection of the point that rotates onto it, remapped by the same
// turn. Rotated(4) is the identity and rotations compose additively.
func (t Tile) Rotated(num int) Tile {
	num = ((num % 4) + 4) % 4
	shift := num * 2
	var out Tile
	for i := range out.Connections {
		idx := (i - shift + 8) % 8
		out.Connections[i] = (t.Connections[idx] + shift) % 8
	}
	return out
}

// Paths decomposes the connection table into its four entry point pairs:
// lowest endpoint first within each pair, pairs in first-occurrence order.
func (t Tile) Paths() [4][2]int {
	var used [8]bool
	var out [4][2]int
	idx := 0
	for a, b := range t.Connections {
		if used[a] || used[b] {
			continue
		}
		used[a] = true
		used[b] = true
		out[idx] = [2]int{a, b}
		idx++
	}
	return out
}

// AllTiles is the canonical catalog of the 35 tiles distinct under rotation.
// Built once at initialization and shared by reference; never mutated.
var AllTiles = makeAllTiles()

func makeAllTiles() [35]Tile {
	codes := [35]string{
		"12-34-56-78",
		"14-27-36-58",
		"15-26-37-48",
		"16-25-38-47",
		"18-23-45-67",
		"12-37-48-56",
		"12-38-47-56",
		"16-25-37-48",
		"17-24-35-68",
		"15-27-36-48",
		"17-28-35-46",
		"18-26-37-45",
		"18-27-36-45",
		"13-26-48-57",
		"15-28-37-46",
		"12-35-47-68",
		"12-36-47-58",
		"12-38-45-67",
		"12-38-46-57",
		"17-24-36-58",
		"18-23-46-57",
		"12-34-57-68",
		"12-34-58-67",
		"16-23-47-58",
		"16-28-35-47",
		"17-23-46-58",
		"17-28-36-45",
		"12-36-48-57",
		"12-37-46-58",
		"12-37-45-68",
		"12-35-48-67",
		"13-26-47-58",
		"15-28-36-47",
		"13-25-48-67",
		"16-28-37-45",
	}
	var out [35]Tile
	for i, code := range codes {
		out[i] = MustParseTile(code)
	}
	return out
}
