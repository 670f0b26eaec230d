package searcher

import "math"

// Hyperparameters for MCTS

const CSquared = 2.0 // Exploration constant

const Win = 1.0   // Reward for a winning outcome
const Loss = -Win // Reward for a losing outcome

// MaxCutoff effectively disables rollout truncation.
const MaxCutoff = math.MaxInt

func ucb1(rewards float64, visits float64, c2LnN float64) float64 {
	// Prioritize unexplored nodes
	if visits == 0 {
		return math.Inf(1)
	}

	return rewards/visits + math.Sqrt(c2LnN/visits)
}

// reward scores an episode outcome from a given player's perspective.
// A cutoff episode carries an evaluation score for the player to move;
// a full playout carries Win for the winner. Opponents see the negation.
func reward(scorer string, score float64, player string) float64 {
	if scorer == "" { // Draw
		return 0
	}
	if player == scorer {
		return score
	}
	return -score
}
