package ismcts

import "go.uber.org/zap"

// selectionResult is what selection hands off to the caller: either a
// terminal waiting state (no expansion/simulation follows) or a node with
// its current waiting state and expected types, ready for expansion.
type selectionResult[A comparable] struct {
	node     *Node[A]
	state    FullState
	expected ExpectedTypes
	terminal bool
}

// selection descends the existing tree under one determinization, stopping
// at the first node with an unexpanded legal action, at a childless node,
// or at a terminal state. Children whose action is illegal under the
// current determinization are skipped during UCB comparison but remain in
// the tree — the defining compatibility filter of single-observer ISMCTS.
func selection[A comparable, C any](
	adapter Adapter[A, C],
	driver Driver[A],
	root *Node[A],
	determinized FullState,
	log *zap.SugaredLogger,
) (selectionResult[A], error) {
	node := root
	state := determinized

	for {
		next, err := advanceToDecision(driver, state)
		if err != nil {
			return selectionResult[A]{}, err
		}
		state = next

		if adapter.IsRoundEnded(state) {
			return selectionResult[A]{node: node, state: state, terminal: true}, nil
		}

		expected := driver.ExpectedTypes(state)
		currentPlayer := driver.CurrentPlayer(state)

		legal, err := legalActions(adapter, state, currentPlayer, expected, log)
		if err != nil {
			return selectionResult[A]{}, err
		}
		if len(legal) == 0 {
			return selectionResult[A]{node: node, state: state, expected: expected}, nil
		}

		if hasUnexpandedLegalAction(node, legal) {
			return selectionResult[A]{node: node, state: state, expected: expected}, nil
		}
		if len(node.Children) == 0 {
			return selectionResult[A]{node: node, state: state, expected: expected}, nil
		}

		compatible := compatibleChildren(node, legal)
		if len(compatible) == 0 {
			return selectionResult[A]{node: node, state: state, expected: expected}, nil
		}

		chosen := bestChildByUCB(node, compatible)
		state, err = applyAction(driver, state, chosen.LastAction, currentPlayer)
		if err != nil {
			return selectionResult[A]{}, err
		}
		node = chosen
	}
}

func hasUnexpandedLegalAction[A comparable](node *Node[A], legal []A) bool {
	for _, action := range legal {
		if !hasChildWithAction(node, action) {
			return true
		}
	}
	return false
}

func compatibleChildren[A comparable](node *Node[A], legal []A) []*Node[A] {
	legalSet := make(map[A]struct{}, len(legal))
	for _, a := range legal {
		legalSet[a] = struct{}{}
	}
	compatible := make([]*Node[A], 0, len(node.Children))
	for _, c := range node.Children {
		if _, ok := legalSet[c.LastAction]; ok {
			compatible = append(compatible, c)
		}
	}
	return compatible
}
