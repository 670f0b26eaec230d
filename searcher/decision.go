package searcher

import (
	"math"
	"sync"
	"tsuro/game"
)

// decision is a tree node for a state where one player picks a move.
// All fields are guarded by the embedded mutex: episodes run in
// parallel over a shared tree (tree parallelization with virtual loss).
type decision struct {
	sync.RWMutex
	parent     *decision
	player     string
	unexplored []game.Move
	explored   []game.Move
	children   []*decision
	rewards    float64
	visits     float64
}

func newDecision(parent *decision, state game.State) *decision {
	moves := state.LegalMoves()
	return &decision{
		parent:     parent,
		player:     state.Player(),
		unexplored: moves,
		explored:   make([]game.Move, 0, len(moves)),
		children:   make([]*decision, 0, len(moves)),
	}
}

// SelectOrExpand advances one episode a single step down the tree:
// expand an untried move, or select the max UCB1 child of a fully
// expanded node. A terminal node returns itself unchanged.
func (d *decision) SelectOrExpand(state game.State) (*decision, game.State, bool) {
	d.Lock()
	defer d.Unlock()

	if len(d.unexplored) == 0 && len(d.explored) == 0 { // Terminal node
		return d, state, false
	}

	if len(d.unexplored) > 0 { // Expandable node
		child, childState := d.expand(state)
		child.applyLoss()
		return child, childState, false
	}

	// Fully expanded node
	ith := d.pickChild()
	child := d.children[ith]
	child.applyLoss()
	return child, state.Play(d.explored[ith]), true
}

func (d *decision) expand(state game.State) (*decision, game.State) {
	move := d.unexplored[len(d.unexplored)-1]
	d.unexplored = d.unexplored[:len(d.unexplored)-1]
	d.explored = append(d.explored, move)

	childState := state.Play(move)
	child := newDecision(d, childState)
	d.children = append(d.children, child)
	return child, childState
}

func (d *decision) pickChild() int {
	if d.visits == 0 {
		panic("node has children but no visits")
	}

	normalizer := CSquared * math.Log(d.visits)

	maxIndex := -1
	maxScore := math.Inf(-1)
	for i, child := range d.children {
		score := child.score(normalizer)
		if score == math.Inf(1) {
			return i
		}
		if score > maxScore {
			maxScore = score
			maxIndex = i
		}
	}
	return maxIndex
}

func (d *decision) applyLoss() {
	d.Lock()
	defer d.Unlock()

	d.rewards += Loss
	d.visits++
}

func (d *decision) reverseLoss() {
	d.rewards -= Loss
	d.visits--
}

// score values a child from its parent's perspective: the parent picks
// the move, so rewards accumulate for the parent's player.
func (d *decision) score(normalizer float64) float64 {
	d.RLock()
	defer d.RUnlock()

	return ucb1(d.rewards, d.visits, normalizer)
}

// Backup applies an episode outcome and returns the parent node.
func (d *decision) Backup(scorer string, score float64) *decision {
	d.Lock()
	defer d.Unlock()

	if d.parent != nil { // Non-root node
		d.reverseLoss()
	}

	perspective := d.player
	if d.parent != nil {
		perspective = d.parent.player
	}
	d.rewards += reward(scorer, score, perspective)
	d.visits++

	return d.parent
}

func (d *decision) Visits() float64 {
	d.RLock()
	defer d.RUnlock()

	return d.visits
}

// Policy returns each root move's share of visits.
func (d *decision) Policy() map[game.Move]float64 {
	d.RLock()
	defer d.RUnlock()

	policy := make(map[game.Move]float64, len(d.explored))
	for i, move := range d.explored {
		policy[move] = d.children[i].Visits() / d.visits
	}
	return policy
}
