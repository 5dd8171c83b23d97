package ismcts

import "math"

// ucb1 returns child's UCB1 score against parentVisits. An unvisited child
// always scores +Inf so every child is tried at least once before any are
// compared by exploitation value.
func ucb1[A comparable](child *Node[A], parentVisits int) float64 {
	if child.Visits == 0 {
		return math.Inf(1)
	}
	exploitation := child.TotalReward / float64(child.Visits)
	exploration := math.Sqrt(2 * math.Log(float64(parentVisits)) / float64(child.Visits))
	return exploitation + exploration
}

// bestChildByUCB returns the candidate with the highest UCB1 score, ties
// broken by insertion order (first child encountered wins ties). It is
// defined only when candidates is non-empty; callers that filter children
// for determinization-compatibility pass that filtered slice here rather
// than node.Children directly.
func bestChildByUCB[A comparable](node *Node[A], candidates []*Node[A]) *Node[A] {
	if len(candidates) == 0 {
		illegalPrecondition("bestChildByUCB called with no candidate children")
	}
	best := candidates[0]
	bestScore := ucb1(best, node.Visits)
	for _, c := range candidates[1:] {
		score := ucb1(c, node.Visits)
		if score > bestScore {
			best = c
			bestScore = score
		}
	}
	return best
}

// bestChildByVisits returns the child with the most visits, ties broken by
// insertion order. Used once at the end of the driver loop to emit the
// chosen action.
func bestChildByVisits[A comparable](node *Node[A]) *Node[A] {
	if len(node.Children) == 0 {
		return nil
	}
	best := node.Children[0]
	for _, c := range node.Children[1:] {
		if c.Visits > best.Visits {
			best = c
		}
	}
	return best
}
