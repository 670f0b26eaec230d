package searcher

import (
	"sync"
	"testing"
	"tsuro/game"

	"github.com/stretchr/testify/require"
)

func TestDecisionSelectOrExpand(t *testing.T) {
	t.Run("selecting fully expanded node", func(t *testing.T) {
		maxMove := mockMove{id: 1}
		maxChild := &decision{rewards: 1, visits: 1}
		otherChild := &decision{rewards: 0, visits: 1}
		node := &decision{
			unexplored: []game.Move{},
			explored:   []game.Move{mockMove{id: 0}, maxMove},
			children:   []*decision{otherChild, maxChild},
			rewards:    1,
			visits:     2,
		}
		state := mockState{}

		gotChild, gotState, gotSelected := node.SelectOrExpand(state)

		require.Equal(t, maxChild, gotChild, "Node should select child with max UCB1 score")
		require.Equal(t, 1+Loss, gotChild.rewards, "Child should apply a temporary loss")
		require.Equal(t, 2.0, gotChild.visits, "Child should apply a temporary loss")
		require.Equal(t, []game.Move{maxMove}, gotState.(mockState).played,
			"State should update by the move to the selected child")
		require.True(t, gotSelected, "Node should perform selection")
		require.Equal(t, 1.0, node.rewards, "Node stats should not change")
		require.Equal(t, 2.0, node.visits, "Node stats should not change")
	})

	t.Run("expanding node with unexplored moves", func(t *testing.T) {
		unexploredMove := mockMove{id: 1}
		node := &decision{
			unexplored: []game.Move{unexploredMove},
			explored:   []game.Move{mockMove{id: 0}},
			children:   []*decision{{rewards: 1, visits: 1}},
			visits:     1,
		}
		state := mockState{moves: []game.Move{}}

		gotChild, gotState, gotSelected := node.SelectOrExpand(state)

		require.Equal(t, Loss, gotChild.rewards, "Child should apply a temporary loss")
		require.Equal(t, 1.0, gotChild.visits, "Child should apply a temporary loss")
		require.Equal(t, 2, len(node.children), "Node should add a new child")
		require.Equal(t, []game.Move{unexploredMove}, gotState.(mockState).played,
			"State should update by the unexplored move")
		require.False(t, gotSelected, "Node should perform expansion")
	})

	t.Run("stagnating on terminal node", func(t *testing.T) {
		node := &decision{}
		state := mockState{}

		gotChild, gotState, gotSelected := node.SelectOrExpand(state)

		require.Equal(t, node, gotChild, "Should return the same node")
		require.Equal(t, mockState{}, gotState, "Should return the same state")
		require.False(t, gotSelected, "Should not select any child or expand")
	})
}

func TestDecisionBackup(t *testing.T) {
	t.Run("recording win on root node", func(t *testing.T) {
		node := &decision{
			parent:  nil,
			player:  "player1",
			rewards: 0,
			visits:  0,
		}

		got := node.Backup("player1", Win)

		require.Nil(t, got, "Should return no parent")
		require.Equal(t, Win, node.rewards, "Should add a win reward")
		require.Equal(t, 1.0, node.visits, "Should add a visit")
	})

	t.Run("recording own win on child node", func(t *testing.T) {
		// Rewards accumulate from the parent's perspective: the parent
		// picks the move leading to this node
		parent := &decision{player: "player1"}
		node := &decision{
			parent:  parent,
			player:  "player2",
			rewards: Loss, // Virtual loss
			visits:  1,
		}

		got := node.Backup("player1", Win)

		require.Equal(t, parent, got, "Should return the parent node")
		require.Equal(t, Win, node.rewards, "Should reverse virtual loss and add a win")
		require.Equal(t, 1.0, node.visits, "Should reverse virtual loss and add a visit")
	})

	t.Run("recording opponent win on child node", func(t *testing.T) {
		parent := &decision{player: "player1"}
		node := &decision{
			parent:  parent,
			player:  "player2",
			rewards: Loss, // Virtual loss
			visits:  1,
		}

		got := node.Backup("player2", Win)

		require.Equal(t, parent, got, "Should return the parent node")
		require.Equal(t, Loss, node.rewards, "Should reverse virtual loss and add a loss")
		require.Equal(t, 1.0, node.visits, "Should reverse virtual loss and add a visit")
	})

	t.Run("recording draw on child node", func(t *testing.T) {
		parent := &decision{player: "player1"}
		node := &decision{
			parent:  parent,
			player:  "player2",
			rewards: Loss, // Virtual loss
			visits:  1,
		}

		got := node.Backup("", Win)

		require.Equal(t, parent, got, "Should return the parent node")
		require.Equal(t, 0.0, node.rewards, "Should reverse virtual loss and add no reward")
		require.Equal(t, 1.0, node.visits, "Should reverse virtual loss and add a visit")
	})
}

func TestDecisionPolicy(t *testing.T) {
	move0 := mockMove{id: 0}
	move1 := mockMove{id: 1}
	node := &decision{
		explored: []game.Move{move0, move1},
		children: []*decision{{visits: 3}, {visits: 1}},
		visits:   4,
	}

	got := node.Policy()

	require.Equal(t, map[game.Move]float64{move0: 0.75, move1: 0.25}, got,
		"Policy should be each move's share of visits")
}

func TestDecisionRaceConditions(t *testing.T) {
	t.Run("concurrent expansion", func(t *testing.T) {
		node := &decision{
			unexplored: []game.Move{mockMove{id: 0}, mockMove{id: 1}},
			explored:   []game.Move{},
			children:   []*decision{},
			rewards:    0,
			visits:     0,
		}

		var wg sync.WaitGroup
		type result struct {
			child    *decision
			state    mockState
			selected bool
		}
		var got [2]result

		for i := 0; i < 2; i++ {
			wg.Add(1)
			i := i
			go func() {
				defer wg.Done()
				state := mockState{moves: []game.Move{}}
				gotChild, gotState, gotSelected := node.SelectOrExpand(state)
				got[i] = result{gotChild, gotState.(mockState), gotSelected}
			}()
		}
		wg.Wait()

		require.Equal(t, 2, len(node.children), "Node should have two children")
		for i := 0; i < 2; i++ {
			require.Equal(t, Loss, got[i].child.rewards, "Child should apply a temporary loss")
			require.Equal(t, 1.0, got[i].child.visits, "Child should apply a temporary loss")
			require.False(t, got[i].selected, "Node should be expanded")
			require.Contains(t, []game.Move{mockMove{id: 0}, mockMove{id: 1}},
				got[i].state.played[0], "Node should expand with a legal move")
		}
		require.NotEqual(t, got[0].state.played[0], got[1].state.played[0],
			"Node should expand with different moves")
	})

	t.Run("concurrent backup", func(t *testing.T) {
		parent := &decision{player: "player1"}
		node := &decision{
			parent:  parent,
			player:  "player2",
			rewards: Loss * 2, // 2 virtual losses
			visits:  2,
		}

		var wg sync.WaitGroup
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				got := node.Backup("player1", Win)
				require.Equal(t, parent, got, "Should return the parent node")
			}()
		}
		wg.Wait()

		require.Equal(t, Win*2, node.rewards,
			"Node should reverse virtual losses and add two wins")
		require.Equal(t, 2.0, node.visits,
			"Node should reverse virtual losses and add two visits")
	})
}
