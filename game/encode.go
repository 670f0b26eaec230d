package game

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Deterministic byte snapshots of the full game state, including the derived
// board graph. The graph is part of the snapshot on purpose: no
// recompute-from-grid function is part of this package's contract.

const snapshotVersion = 1

type encoder struct {
	buf bytes.Buffer
}

func (e *encoder) writeInt(v int) {
	binary.Write(&e.buf, binary.LittleEndian, int64(v))
}

func (e *encoder) writeBool(v bool) {
	if v {
		e.writeInt(1)
	} else {
		e.writeInt(0)
	}
}

func (e *encoder) writeTile(t Tile) {
	for _, conn := range t.Connections {
		e.writeInt(conn)
	}
}

func (e *encoder) writeTiles(tiles []Tile) {
	if tiles == nil {
		e.writeInt(-1)
		return
	}
	e.writeInt(len(tiles))
	for _, tile := range tiles {
		e.writeTile(tile)
	}
}

func (e *encoder) writePosition(p MarkerPosition) {
	e.writeInt(p.X)
	e.writeInt(p.Y)
}

type decoder struct {
	r   *bytes.Reader
	err error
}

func (d *decoder) readInt() int {
	if d.err != nil {
		return 0
	}
	var v int64
	d.err = binary.Read(d.r, binary.LittleEndian, &v)
	return int(v)
}

func (d *decoder) readBool() bool {
	return d.readInt() != 0
}

func (d *decoder) readTile() Tile {
	var tile Tile
	for i := range tile.Connections {
		tile.Connections[i] = d.readInt()
	}
	return tile
}

func (d *decoder) readTiles() []Tile {
	n := d.readInt()
	if n == -1 {
		return nil
	}
	if d.err != nil || n < 0 || n > len(AllTiles) {
		d.fail("invalid tile list length %d", n)
		return nil
	}
	tiles := make([]Tile, n)
	for i := range tiles {
		tiles[i] = d.readTile()
	}
	return tiles
}

func (d *decoder) readPosition() MarkerPosition {
	return MarkerPosition{X: d.readInt(), Y: d.readInt()}
}

func (d *decoder) fail(format string, args ...any) {
	if d.err == nil {
		d.err = fmt.Errorf(format, args...)
	}
}

// Encode serializes the state into a deterministic byte snapshot.
func (gs *GameState) Encode() []byte {
	e := &encoder{}
	e.writeInt(snapshotVersion)
	e.writeInt(gs.NumPlayers)
	e.writeInt(gs.NumMarkersPlaced)
	e.writeInt(int(gs.Phase))
	e.writeInt(gs.ActivePlayer)
	e.writeInt(gs.DragonTileOwner)
	e.writeInt(gs.NumPlayersLeft)

	e.writeInt(len(gs.Hands))
	for _, hand := range gs.Hands {
		e.writeTiles(hand)
	}
	e.writeTiles(gs.Deck)

	encodeBoard(e, gs.Board)
	return e.buf.Bytes()
}

func encodeBoard(e *encoder, b *Board) {
	e.writeInt(len(b.Markers))
	for _, marker := range b.Markers {
		e.writeBool(marker != nil)
		if marker == nil {
			continue
		}
		e.writePosition(marker.Position)
		e.writeBool(marker.PreviousTile != nil)
		if marker.PreviousTile != nil {
			e.writeInt(marker.PreviousTile.X)
			e.writeInt(marker.PreviousTile.Y)
		}
		e.writeBool(marker.HasMoved)
	}

	for x := range b.Tiles {
		for y := range b.Tiles[x] {
			tile := b.Tiles[x][y]
			e.writeBool(tile != nil)
			if tile != nil {
				e.writeTile(*tile)
			}
		}
	}

	for id := 0; id < NumNodes; id++ {
		position := b.Graph.Vertices[id]
		e.writeBool(position != nil)
		if position != nil {
			e.writePosition(*position)
		}
		edges := b.Graph.Adjacency[id]
		e.writeInt(len(edges))
		for _, edge := range edges {
			e.writeInt(edge.To)
			e.writeBool(edge.Built)
		}
	}
}

// DecodeGameState reconstructs a state from a snapshot produced by Encode.
func DecodeGameState(data []byte) (*GameState, error) {
	d := &decoder{r: bytes.NewReader(data)}

	version := d.readInt()
	if d.err == nil && version != snapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", version)
	}

	gs := &GameState{}
	gs.NumPlayers = d.readInt()
	gs.NumMarkersPlaced = d.readInt()
	gs.Phase = Phase(d.readInt())
	gs.ActivePlayer = d.readInt()
	gs.DragonTileOwner = d.readInt()
	gs.NumPlayersLeft = d.readInt()

	numHands := d.readInt()
	if d.err == nil && (numHands < 0 || numHands > 8) {
		d.fail("invalid hand count %d", numHands)
	}
	if d.err == nil {
		gs.Hands = make([][]Tile, numHands)
		for i := range gs.Hands {
			gs.Hands[i] = d.readTiles()
		}
		gs.Deck = d.readTiles()
	}

	gs.Board = decodeBoard(d)
	if d.err != nil {
		return nil, fmt.Errorf("failed to decode game state: %w", d.err)
	}
	return gs, nil
}

func decodeBoard(d *decoder) *Board {
	b := &Board{Graph: &BoardGraph{}}

	numMarkers := d.readInt()
	if d.err != nil || numMarkers < 0 || numMarkers > 8 {
		d.fail("invalid marker count %d", numMarkers)
		return b
	}
	b.Markers = make([]*Marker, numMarkers)
	for i := range b.Markers {
		if !d.readBool() {
			continue
		}
		marker := &Marker{Position: d.readPosition()}
		if d.readBool() {
			marker.PreviousTile = &TileCoord{X: d.readInt(), Y: d.readInt()}
		}
		marker.HasMoved = d.readBool()
		b.Markers[i] = marker
	}

	for x := range b.Tiles {
		for y := range b.Tiles[x] {
			if d.readBool() {
				tile := d.readTile()
				b.Tiles[x][y] = &tile
			}
		}
	}

	for id := 0; id < NumNodes; id++ {
		if d.readBool() {
			position := d.readPosition()
			b.Graph.Vertices[id] = &position
		}
		numEdges := d.readInt()
		if d.err != nil || numEdges < 0 || numEdges > 2*NumNodes {
			d.fail("invalid edge count %d for node %d", numEdges, id)
			return b
		}
		edges := make([]Edge, 0, numEdges)
		for i := 0; i < numEdges; i++ {
			edges = append(edges, Edge{To: d.readInt(), Built: d.readBool()})
		}
		b.Graph.Adjacency[id] = edges
	}
	return b
}
