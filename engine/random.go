package engine

import (
	"math/rand"

	"tsuro/experiments/metrics"
	"tsuro/game"
)

// RandomAgent plays a uniformly random legal move. Useful as a
// baseline opponent and for exercising full games in tests.
type RandomAgent struct{}

func (a RandomAgent) FindMove(state game.State) (game.Move, metrics.SearchMetric) {
	moves := state.LegalMoves()
	if len(moves) == 0 {
		panic("no legal moves to pick from")
	}
	return moves[rand.Intn(len(moves))], metrics.SearchMetric{}
}
