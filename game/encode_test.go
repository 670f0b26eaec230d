package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	t.Run("round tripping a fresh game", func(t *testing.T) {
		gs := NewGameState(2)

		decoded, err := DecodeGameState(gs.Encode())

		require.NoError(t, err)
		require.Equal(t, gs.Encode(), decoded.Encode(),
			"Snapshots are deterministic across a round trip")
		require.Equal(t, gs.Hash(), decoded.Hash())
		require.Equal(t, gs.Hands, decoded.Hands)
		require.Equal(t, gs.Deck, decoded.Deck)
	})

	t.Run("round tripping a played game", func(t *testing.T) {
		gs := NewGameState(2)
		gs = gs.Play(GameMove{ActionType: PlaceMarkerAction, BorderIndex: 0}).(*GameState)
		gs = gs.Play(GameMove{ActionType: PlaceMarkerAction, BorderIndex: 24}).(*GameState)
		gs = gs.Play(gs.LegalMoves()[0]).(*GameState)

		decoded, err := DecodeGameState(gs.Encode())

		require.NoError(t, err)
		require.Equal(t, gs.Encode(), decoded.Encode())
		require.Equal(t, gs.Hash(), decoded.Hash())
		require.Equal(t, gs.Board.Markers, decoded.Board.Markers)
		require.Equal(t, gs.Board.Graph.Adjacency, decoded.Board.Graph.Adjacency)
	})

	t.Run("round tripping an eliminated player", func(t *testing.T) {
		gs := tilePhaseState(
			[]Tile{MustParseTile("13-26-48-57")},
			[]Tile{MustParseTile("12-34-56-78")},
			nil,
		)
		gs.eliminatePlayer(1)

		decoded, err := DecodeGameState(gs.Encode())

		require.NoError(t, err)
		require.Nil(t, decoded.Board.Markers[1])
		require.Nil(t, decoded.Hands[1], "A surrendered hand stays nil")
		require.Equal(t, gs.Encode(), decoded.Encode())
	})

	t.Run("rejecting an unsupported version", func(t *testing.T) {
		data := NewGameState(2).Encode()
		data[0] = 99

		_, err := DecodeGameState(data)

		require.ErrorContains(t, err, "unsupported snapshot version")
	})

	t.Run("rejecting truncated data", func(t *testing.T) {
		data := NewGameState(2).Encode()

		_, err := DecodeGameState(data[:len(data)/2])

		require.ErrorContains(t, err, "failed to decode game state")
	})

	t.Run("rejecting empty data", func(t *testing.T) {
		_, err := DecodeGameState(nil)

		require.Error(t, err)
	})
}
