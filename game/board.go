package game

import (
	"fmt"
	"sort"

	"tsuro/utils"
)

// Marker is a player's token on the board.
type Marker struct {
	Position MarkerPosition
	// PreviousTile is the tile the token most recently departed from, nil
	// while the token still sits on its unvisited starting border position.
	PreviousTile *TileCoord
	HasMoved     bool
}

// Board owns the tile grid, the players' tokens and the derived board graph.
// Markers is indexed by player; a nil marker is an eliminated player.
type Board struct {
	Tiles   [GridSize][GridSize]*Tile
	Markers []*Marker
	Graph   *BoardGraph
}

func NewBoard() *Board {
	return &Board{Graph: NewBoardGraph()}
}

// Clone returns a fully independent deep copy, safe for afterstate search.
func (b *Board) Clone() *Board {
	clone := &Board{Graph: b.Graph.Clone()}
	for x := range b.Tiles {
		for y, tile := range b.Tiles[x] {
			if tile != nil {
				t := *tile
				clone.Tiles[x][y] = &t
			}
		}
	}
	clone.Markers = make([]*Marker, len(b.Markers))
	for i, marker := range b.Markers {
		if marker == nil {
			continue
		}
		m := *marker
		if marker.PreviousTile != nil {
			prev := *marker.PreviousTile
			m.PreviousTile = &prev
		}
		clone.Markers[i] = &m
	}
	return clone
}

func (b *Board) tileAt(coord TileCoord) *Tile {
	return b.Tiles[coord.X][coord.Y]
}

// PlaceMarker claims a starting border position for the next player slot.
// Returns false without mutating anything if the position is already claimed
// by another active marker.
func (b *Board) PlaceMarker(borderIndex int) bool {
	position := PositionFromBorderIndex(borderIndex)
	for _, marker := range b.Markers {
		if marker != nil && !marker.HasMoved && marker.Position == position {
			return false
		}
	}
	b.Markers = append(b.Markers, &Marker{Position: position})
	return true
}

// PlaceTile writes the tile into the slot the player's token is about to
// enter and updates the board graph. The slot must be empty; callers
// pre-validate placements with MoveIsSuicide.
func (b *Board) PlaceTile(tile Tile, player int) {
	coord := b.NextTileOfPlayer(player)
	if b.tileAt(coord) != nil {
		panic(fmt.Sprintf("tile slot (%d, %d) is already occupied", coord.X, coord.Y))
	}
	b.Graph.PlaceTile(tile, coord)
	t := tile
	b.Tiles[coord.X][coord.Y] = &t
}

// NextTileOfPlayer is the tile coordinate the player's token will move into
// next: its single adjacent border tile if it has never moved, otherwise
// whichever of its two adjacent tiles is not the one it departed from.
func (b *Board) NextTileOfPlayer(player int) TileCoord {
	marker := b.Markers[player]
	if marker == nil {
		panic(fmt.Sprintf("NextTileOfPlayer called on player %d who has been eliminated or has not placed a marker", player))
	}
	adjacents := marker.Position.AdjacentTiles()
	if marker.PreviousTile == nil {
		if !marker.Position.IsEdge() {
			panic("unmoved marker must sit on the board edge")
		}
		return adjacents[0]
	}
	if len(adjacents) != 2 {
		panic("moved marker must sit between two tile slots")
	}
	if adjacents[0] == *marker.PreviousTile {
		return adjacents[1]
	}
	return adjacents[0]
}

// FindCollisions returns the players whose tokens would collide if the tile
// were placed at the position: both ends of one of the tile's paths hold
// tokens. Valid before or immediately after placement, as long as tokens
// have not been moved yet. The result is sorted and deduplicated.
func (b *Board) FindCollisions(tile Tile, position TileCoord) []int {
	var positions [8]MarkerPosition
	for entry := range positions {
		positions[entry] = PositionFromEntryPoint(position, entry)
	}

	var collisions []int
	for _, path := range tile.Paths() {
		playerA := b.playerAt(positions[path[0]])
		playerB := b.playerAt(positions[path[1]])
		if playerA >= 0 && playerB >= 0 {
			collisions = append(collisions, playerA, playerB)
		}
	}

	sort.Ints(collisions)
	var out []int
	for i, player := range collisions {
		if i == 0 || player != collisions[i-1] {
			out = append(out, player)
		}
	}
	return out
}

func (b *Board) playerAt(position MarkerPosition) int {
	for player, marker := range b.Markers {
		if marker != nil && marker.Position == position {
			return player
		}
	}
	return -1
}

// MoveMarkers drags every active token to the end of its path. Returns the
// players whose tokens reached the board edge; their markers are left
// untouched so the caller decides elimination.
func (b *Board) MoveMarkers() []int {
	var eliminated []int
	for player, marker := range b.Markers {
		if marker == nil {
			continue
		}
		newPos, moved := b.findPlayerPathEnd(player)
		if !moved {
			continue
		}
		if newPos.IsEdge() {
			eliminated = append(eliminated, player)
			continue
		}

		// the path stopped next to an empty slot: exactly one of the two
		// adjacent slots holds a tile, and that is where the token came from
		adjacents := newPos.AdjacentTiles()
		if len(adjacents) != 2 {
			panic("interior path end must have two adjacent tile slots")
		}
		prev := adjacents[0]
		if b.tileAt(prev) == nil {
			prev = adjacents[1]
		}
		if b.tileAt(prev) == nil {
			panic("path end has no occupied adjacent tile")
		}
		prevTile := prev
		b.Markers[player] = &Marker{
			Position:     newPos,
			PreviousTile: &prevTile,
			HasMoved:     true,
		}
	}
	return eliminated
}

// findPlayerPathEnd computes the end of the path the player's token is on
// and whether it differs from the current position.
func (b *Board) findPlayerPathEnd(player int) (MarkerPosition, bool) {
	marker := b.Markers[player]
	if marker == nil {
		panic("findPlayerPathEnd called on an eliminated player")
	}

	var coord TileCoord
	var exit int
	if marker.PreviousTile == nil {
		// the token still sits on its starting border position
		if !marker.Position.IsEdge() {
			panic("unmoved marker must sit on the board edge")
		}
		coord = marker.Position.AdjacentTiles()[0]
		tile := b.tileAt(coord)
		if tile == nil {
			return marker.Position, false
		}
		entry, ok := marker.Position.EntryPointIndexOn(coord)
		if !ok {
			panic("marker position does not touch its adjacent tile")
		}
		exit = tile.Connections[entry]
	} else {
		coord = *marker.PreviousTile
		entry, ok := marker.Position.EntryPointIndexOn(coord)
		if !ok {
			panic("marker position does not touch its previous tile")
		}
		exit = entry
	}

	end := b.findPathEndpoint(coord, exit)
	return end, end != marker.Position
}

// findPathEndpoint follows the path after leaving the tile at location
// through the given exit entry point, across however many placed tiles it
// crosses. The result is where the path currently ends: a board edge
// position or a position adjacent to an empty slot.
func (b *Board) findPathEndpoint(location TileCoord, exit int) MarkerPosition {
	current := PositionFromEntryPoint(location, exit)
	last := location
	for {
		adjacents := current.AdjacentTiles()
		next := adjacents[0]
		if len(adjacents) == 2 && last == adjacents[0] {
			next = adjacents[1]
		}
		if next == last {
			// only one adjacent tile: the path ends on the board edge
			break
		}
		tile := b.tileAt(next)
		if tile == nil {
			break
		}
		entry, ok := current.EntryPointIndexOn(next)
		if !ok {
			panic("path position does not touch the next tile")
		}
		last = next
		current = PositionFromEntryPoint(next, tile.Connections[entry])
	}
	return current
}

// MoveIsSuicide reports whether placing the tile in front of the active
// player would drag the player's own token off the board edge or into a
// collision. The board is not mutated.
func (b *Board) MoveIsSuicide(tile Tile, activePlayer int) bool {
	marker := b.Markers[activePlayer]
	if marker == nil {
		panic("MoveIsSuicide called on an eliminated player")
	}
	tilePos := b.NextTileOfPlayer(activePlayer)

	// Positions on the candidate tile where the path would keep going: both
	// adjacent slots already placed, or the very slot being filled.
	var nonterminal []MarkerPosition
	for entry := 0; entry < 8; entry++ {
		position := PositionFromEntryPoint(tilePos, entry)
		adjacents := position.AdjacentTiles()
		if len(adjacents) != 2 {
			continue
		}
		open := false
		for _, adj := range adjacents {
			if adj != tilePos && b.tileAt(adj) == nil {
				open = true
				break
			}
		}
		if !open {
			nonterminal = append(nonterminal, position)
		}
	}

	// The real tracer does not see the candidate tile and stops at its
	// boundary, so cross it by hand until the path leaves it for good. A
	// tile offers one exit per entry, so no entry point can repeat.
	current := marker.Position
	var visited [8]bool
	for {
		entry, ok := current.EntryPointIndexOn(tilePos)
		if !ok {
			panic("path lost the candidate tile slot")
		}
		if visited[entry] {
			panic("path revisited an entry point of the candidate tile")
		}
		visited[entry] = true
		current = b.findPathEndpoint(tilePos, tile.Connections[entry])
		if utils.FindIndex(nonterminal, current) < 0 {
			break
		}
	}

	colliders := b.FindCollisions(tile, tilePos)
	return current.IsEdge() || utils.FindIndex(colliders, activePlayer) >= 0
}

// EliminatePlayer removes the player's marker. Irreversible.
func (b *Board) EliminatePlayer(player int) {
	b.Markers[player] = nil
}
