package engine

import (
	"time"

	"tsuro/experiments/metrics"
	"tsuro/game"

	"github.com/rs/zerolog/log"
)

// Agent picks a move for the player whose turn it is.
type Agent interface {
	FindMove(state game.State) (game.Move, metrics.SearchMetric)
}

type localEngine struct {
	state  *game.GameState
	agents []Agent
}

// LocalEngine runs a game between in-process agents, one per player seat.
func LocalEngine(numPlayers int, agents []Agent) Engine {
	if numPlayers != len(agents) {
		panic("number of players does not match number of agents")
	}
	if numPlayers < 2 {
		panic("need at least two players")
	}

	return &localEngine{
		state:  game.NewGameState(numPlayers),
		agents: agents,
	}
}

func (e *localEngine) Run() (string, metrics.GameMetric, []metrics.MoveMetric) {
	startingPlayer := e.state.ActivePlayer
	startTime := time.Now()
	log.Info().Msgf("player %d is starting", startingPlayer+1)

	var moveMetrics []metrics.MoveMetric
	step := 1
	for !e.state.Terminated() && step <= MaxMoves {
		player := e.state.ActivePlayer
		move, metric := e.agents[player].FindMove(e.state)

		log.Debug().Msgf("step %d: player %d plays %s", step, player+1, move)
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       player + 1,
			SearchMetric: metric,
		})

		e.state = e.state.Play(move).(*game.GameState)
		step++
	}

	winner := e.state.Winner()
	endTime := time.Now()
	if winner != "" {
		log.Info().Msgf("%s won after %d moves", winner, step-1)
	} else {
		log.Info().Msgf("game ended in a draw after %d moves", step-1)
	}

	gameMetric := metrics.GameMetric{
		StartingPlayer: startingPlayer + 1,
		Winner:         winner,
		StartTime:      startTime,
		EndTime:        endTime,
		Duration:       endTime.Sub(startTime),
		TotalMoves:     step - 1,
	}
	return winner, gameMetric, moveMetrics
}
