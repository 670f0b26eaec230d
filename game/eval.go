package game

// EvaluateSurvival scores a cutoff state from the current player's
// perspective: the share of opponents already eliminated, blended with a
// mobility term from the board graph (the share of positions still
// reachable from the player's own).
func EvaluateSurvival(s State) float64 {
	gs, ok := s.(*GameState)
	if !ok {
		panic("unexpected state type")
	}

	player := gs.ActivePlayer
	if player >= len(gs.Board.Markers) {
		return 0 // markers not yet placed
	}
	marker := gs.Board.Markers[player]
	if marker == nil {
		return -1
	}

	eliminated := 0
	for other, m := range gs.Board.Markers {
		if other != player && m == nil {
			eliminated++
		}
	}
	survival := float64(eliminated) / float64(gs.NumPlayers-1)

	mobility := 0.0
	node := marker.Position.NodeID()
	if gs.Board.Graph.Vertices[node] != nil {
		mobility = float64(len(gs.Board.Graph.BFSFrom(node))) / float64(NumNodes)
	}

	return (survival + mobility) / 2
}
