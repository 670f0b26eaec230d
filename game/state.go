package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math/rand"
	"sort"
)

type Phase int

const (
	MarkerPhase Phase = iota
	TilePhase
)

// HandSize is the number of tiles each player holds while the deck lasts.
const HandSize = 3

// GameState wraps the board with everything that sequences a game: phases,
// the shuffled deck, player hands and the dragon tile rule. It implements
// State; Play always returns a fresh deep copy, so independent copies may be
// explored concurrently without locking.
type GameState struct {
	Board            *Board
	NumPlayers       int
	NumMarkersPlaced int
	Phase            Phase
	ActivePlayer     int
	Hands            [][]Tile
	Deck             []Tile
	DragonTileOwner  int // -1 while nobody is waiting for a tile
	NumPlayersLeft   int
}

// NewGameState deals a fresh game: shuffled deck, three tiles per hand,
// marker phase.
func NewGameState(numPlayers int) *GameState {
	if numPlayers < 2 || numPlayers > 8 {
		panic("need between two and eight players")
	}

	deck := make([]Tile, len(AllTiles))
	copy(deck, AllTiles[:])
	rand.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})

	hands := make([][]Tile, numPlayers)
	for i := range hands {
		hands[i] = append([]Tile(nil), deck[len(deck)-HandSize:]...)
		deck = deck[:len(deck)-HandSize]
	}

	return &GameState{
		Board:           NewBoard(),
		NumPlayers:      numPlayers,
		Hands:           hands,
		Deck:            deck,
		DragonTileOwner: -1,
		NumPlayersLeft:  numPlayers,
	}
}

// Copy returns a fully independent deep copy of the state.
func (gs *GameState) Copy() *GameState {
	hands := make([][]Tile, len(gs.Hands))
	for i, hand := range gs.Hands {
		hands[i] = append([]Tile(nil), hand...)
	}
	return &GameState{
		Board:            gs.Board.Clone(),
		NumPlayers:       gs.NumPlayers,
		NumMarkersPlaced: gs.NumMarkersPlaced,
		Phase:            gs.Phase,
		ActivePlayer:     gs.ActivePlayer,
		Hands:            hands,
		Deck:             append([]Tile(nil), gs.Deck...),
		DragonTileOwner:  gs.DragonTileOwner,
		NumPlayersLeft:   gs.NumPlayersLeft,
	}
}

// Terminated reports whether the game is over: fewer than two players left,
// or no tiles remain anywhere to be placed.
func (gs *GameState) Terminated() bool {
	if gs.NumPlayersLeft < 2 {
		return true
	}
	if len(gs.Deck) > 0 {
		return false
	}
	for _, hand := range gs.Hands {
		if len(hand) > 0 {
			return false
		}
	}
	return true
}

// Player returns the identifier of the current player.
func (gs *GameState) Player() string {
	return fmt.Sprintf("Player%d", gs.ActivePlayer+1)
}

// Winner returns the last surviving player, or "" while the game is running
// or when it ends in a draw.
func (gs *GameState) Winner() string {
	if gs.NumPlayersLeft != 1 {
		return ""
	}
	for player, marker := range gs.Board.Markers {
		if marker != nil {
			return fmt.Sprintf("Player%d", player+1)
		}
	}
	return ""
}

// LegalMoves returns all legal moves for the active player, nil once the
// game has terminated. Suicidal placements are filtered out unless every
// rotation of every held tile is suicidal, in which case all of them are
// exceptionally permitted.
func (gs *GameState) LegalMoves() []Move {
	if gs.Terminated() {
		return nil
	}

	switch gs.Phase {
	case MarkerPhase:
		var moves []Move
		for idx := 0; idx < NumBorderPositions; idx++ {
			if gs.borderClaimed(idx) {
				continue
			}
			moves = append(moves, GameMove{ActionType: PlaceMarkerAction, BorderIndex: idx})
		}
		return moves

	case TilePhase:
		if len(gs.Hands[gs.ActivePlayer]) == 0 {
			// empty hand with an empty deck: wait for the dragon tile
			return []Move{GameMove{ActionType: PassAction}}
		}
		tiles := gs.allRotatedTiles(gs.ActivePlayer)
		suicides := make([]bool, len(tiles))
		allSuicide := true
		for i, tile := range tiles {
			suicides[i] = gs.Board.MoveIsSuicide(tile, gs.ActivePlayer)
			if !suicides[i] {
				allSuicide = false
			}
		}
		var moves []Move
		for i, tile := range tiles {
			if suicides[i] && !allSuicide {
				continue
			}
			moves = append(moves, GameMove{ActionType: PlaceTileAction, Tile: tile})
		}
		return moves
	}
	return nil
}

func (gs *GameState) borderClaimed(idx int) bool {
	position := PositionFromBorderIndex(idx)
	for _, marker := range gs.Board.Markers {
		if marker != nil && !marker.HasMoved && marker.Position == position {
			return true
		}
	}
	return false
}

// allRotatedTiles lists every distinct rotation of the player's hand in a
// deterministic order.
func (gs *GameState) allRotatedTiles(player int) []Tile {
	var tiles []Tile
	for _, tile := range gs.Hands[player] {
		for rot := 0; rot < 4; rot++ {
			tiles = append(tiles, tile.Rotated(rot))
		}
	}
	sort.Slice(tiles, func(i, j int) bool { return lessTile(tiles[i], tiles[j]) })

	var out []Tile
	for i, tile := range tiles {
		if i == 0 || tile != tiles[i-1] {
			out = append(out, tile)
		}
	}
	return out
}

func lessTile(a, b Tile) bool {
	for i := range a.Connections {
		if a.Connections[i] != b.Connections[i] {
			return a.Connections[i] < b.Connections[i]
		}
	}
	return false
}

// handIndexOf finds which held tile the (possibly rotated) tile came from,
// or -1 if the player does not hold it.
func (gs *GameState) handIndexOf(player int, tile Tile) int {
	for i, held := range gs.Hands[player] {
		for rot := 0; rot < 4; rot++ {
			if held.Rotated(rot) == tile {
				return i
			}
		}
	}
	return -1
}

// MoveIsAllowed reports whether the active player may place the tile: the
// player must hold it, and suicidal placements are rejected unless every
// rotation of every held tile is suicidal.
func (gs *GameState) MoveIsAllowed(tile Tile) bool {
	if gs.handIndexOf(gs.ActivePlayer, tile) < 0 {
		return false
	}
	if !gs.Board.MoveIsSuicide(tile, gs.ActivePlayer) {
		return true
	}
	for _, held := range gs.Hands[gs.ActivePlayer] {
		for rot := 0; rot < 4; rot++ {
			if !gs.Board.MoveIsSuicide(held.Rotated(rot), gs.ActivePlayer) {
				return false
			}
		}
	}
	// every possible placement is suicidal
	return true
}

// Play applies a legal move and returns the successor state. Callers must
// validate moves first (LegalMoves or MoveIsAllowed); an illegal move is an
// invariant violation.
func (gs *GameState) Play(move Move) State {
	gameMove, ok := move.(GameMove)
	if !ok {
		panic("unexpected move type")
	}

	next := gs.Copy()
	switch gameMove.ActionType {
	case PlaceMarkerAction:
		if next.Phase != MarkerPhase {
			panic("cannot place marker outside the marker phase")
		}
		if !next.Board.PlaceMarker(gameMove.BorderIndex) {
			panic(fmt.Sprintf("starting position %d is already claimed", gameMove.BorderIndex))
		}
		next.NumMarkersPlaced++
	case PlaceTileAction:
		if next.Phase != TilePhase {
			panic("cannot place tile before all markers are placed")
		}
		if next.Terminated() {
			panic("cannot place tile, the game has terminated")
		}
		if !next.MoveIsAllowed(gameMove.Tile) {
			panic(fmt.Sprintf("move %s is not allowed", gameMove))
		}
		next.placeTile(gameMove.Tile)
	case PassAction:
		if next.Phase != TilePhase || len(next.Hands[next.ActivePlayer]) > 0 {
			panic("cannot pass while holding tiles")
		}
	default:
		panic("unknown action type")
	}
	next.endTurn()
	return next
}

func (gs *GameState) placeTile(tile Tile) {
	// collisions are resolved before the tile is committed
	coord := gs.Board.NextTileOfPlayer(gs.ActivePlayer)
	for _, player := range gs.Board.FindCollisions(tile, coord) {
		gs.eliminatePlayer(player)
	}
	if gs.Terminated() {
		return
	}

	idx := gs.handIndexOf(gs.ActivePlayer, tile)
	if idx < 0 {
		panic("active player does not hold the tile")
	}
	hand := gs.Hands[gs.ActivePlayer]
	hand[idx] = hand[len(hand)-1]
	gs.Hands[gs.ActivePlayer] = hand[:len(hand)-1]

	gs.Board.PlaceTile(tile, gs.ActivePlayer)
	for _, player := range gs.Board.MoveMarkers() {
		gs.eliminatePlayer(player)
	}
	if !gs.Terminated() {
		gs.drawTiles()
	}
}

// eliminatePlayer removes the player's marker and returns their hand to the
// deck.
func (gs *GameState) eliminatePlayer(player int) {
	gs.Board.EliminatePlayer(player)
	gs.Deck = append(gs.Deck, gs.Hands[player]...)
	gs.Hands[player] = nil
	rand.Shuffle(len(gs.Deck), func(i, j int) {
		gs.Deck[i], gs.Deck[j] = gs.Deck[j], gs.Deck[i]
	})
	gs.NumPlayersLeft--
}

// drawTiles refills hands from the deck, starting with the dragon tile
// owner if one is waiting, and records the next player left short.
func (gs *GameState) drawTiles() {
	current := gs.ActivePlayer
	if gs.DragonTileOwner >= 0 {
		current = gs.DragonTileOwner
		if len(gs.Deck) > 0 {
			gs.DragonTileOwner = -1
		}
	}

	for len(gs.Deck) > 0 && len(gs.Hands[current]) < HandSize {
		gs.Hands[current] = append(gs.Hands[current], gs.Deck[len(gs.Deck)-1])
		gs.Deck = gs.Deck[:len(gs.Deck)-1]
		current = gs.playerAfter(current)
	}

	if gs.DragonTileOwner < 0 && len(gs.Hands[current]) < HandSize {
		gs.DragonTileOwner = current
	}
}

func (gs *GameState) endTurn() {
	if !gs.Terminated() {
		gs.ActivePlayer = gs.playerAfter(gs.ActivePlayer)
	}
	if gs.Phase == MarkerPhase && gs.NumMarkersPlaced == gs.NumPlayers {
		gs.Phase = TilePhase
	}
}

func (gs *GameState) playerAfter(player int) int {
	next := (player + 1) % gs.NumPlayers
	if gs.Phase == MarkerPhase {
		return next
	}

	iterations := 0
	for gs.Board.Markers[next] == nil {
		if iterations > gs.NumPlayers {
			panic("all players eliminated")
		}
		next = (next + 1) % gs.NumPlayers
		iterations++
	}
	return next
}

// Hash returns an FNV-64a digest of the visible state.
func (gs *GameState) Hash() StateHash {
	hasher := fnv.New64a()
	write := func(v int) {
		binary.Write(hasher, binary.LittleEndian, int64(v))
	}

	write(int(gs.Phase))
	write(gs.ActivePlayer)
	write(gs.NumMarkersPlaced)
	write(gs.DragonTileOwner)
	write(len(gs.Deck))

	for _, marker := range gs.Board.Markers {
		if marker == nil {
			write(-1)
			continue
		}
		write(marker.Position.X)
		write(marker.Position.Y)
	}

	for x := range gs.Board.Tiles {
		for y := range gs.Board.Tiles[x] {
			tile := gs.Board.Tiles[x][y]
			if tile == nil {
				write(-1)
				continue
			}
			for _, conn := range tile.Connections {
				write(conn)
			}
		}
	}

	for _, hand := range gs.Hands {
		write(len(hand))
		for _, tile := range hand {
			for _, conn := range tile.Connections {
				write(conn)
			}
		}
	}

	return StateHash(hasher.Sum64())
}

// Afterstate is one hypothetical placement for the active player with the
// board that results.
type Afterstate struct {
	Tile       Tile
	Board      *Board
	Eliminated []int
}

// Afterstates enumerates every allowed placement for the active player
// without touching the live game. Each afterstate board is an independent
// deep copy.
func (gs *GameState) Afterstates() []Afterstate {
	tiles := gs.allRotatedTiles(gs.ActivePlayer)
	suicides := make([]bool, len(tiles))
	allSuicide := true
	for i, tile := range tiles {
		suicides[i] = gs.Board.MoveIsSuicide(tile, gs.ActivePlayer)
		if !suicides[i] {
			allSuicide = false
		}
	}

	var out []Afterstate
	for i, tile := range tiles {
		if suicides[i] && !allSuicide {
			continue
		}
		board := gs.Board.Clone()
		board.PlaceTile(tile, gs.ActivePlayer)
		eliminated := board.MoveMarkers()
		for _, player := range eliminated {
			board.EliminatePlayer(player)
		}
		out = append(out, Afterstate{Tile: tile, Board: board, Eliminated: eliminated})
	}
	return out
}
