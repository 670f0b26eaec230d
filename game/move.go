package game

import "fmt"

type ActionType int

const (
	PlaceMarkerAction ActionType = iota
	PlaceTileAction
	PassAction
)

// GameMove represents a move: claiming a border position during the marker
// phase, placing a rotated tile during the tile phase, or passing while
// waiting for the dragon tile with an empty hand.
type GameMove struct {
	ActionType  ActionType
	BorderIndex int
	Tile        Tile
}

func (gm GameMove) String() string {
	switch gm.ActionType {
	case PlaceMarkerAction:
		return fmt.Sprintf("marker@%d", gm.BorderIndex)
	case PlaceTileAction:
		return fmt.Sprintf("tile %s", gm.Tile)
	}
	return "pass"
}
