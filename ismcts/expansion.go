package ismcts

import (
	"math/rand"

	"go.uber.org/zap"
)

// expansionResult carries the freshly-created child and the non-waiting
// state produced by applying its action.
type expansionResult[A comparable] struct {
	child *Node[A]
	state FullState
}

// expansion adds one child to node for an action the current determinization
// makes legal but which node has not yet explored. Returns (nil result, nil
// error) when there is nothing left to expand (terminal, no expected types,
// or every legal action already has a child).
func expansion[A comparable, C any](
	adapter Adapter[A, C],
	driver Driver[A],
	pool *nodePool[A],
	node *Node[A],
	state FullState,
	expected ExpectedTypes,
	rng *rand.Rand,
	log *zap.SugaredLogger,
) (*expansionResult[A], error) {
	if len(expected) == 0 || adapter.IsRoundEnded(state) {
		return nil, nil
	}

	currentPlayer := driver.CurrentPlayer(state)
	legal, err := legalActions(adapter, state, currentPlayer, expected, log)
	if err != nil {
		return nil, err
	}

	unexplored := make([]A, 0, len(legal))
	for _, action := range legal {
		if !hasChildWithAction(node, action) {
			unexplored = append(unexplored, action)
		}
	}
	if len(unexplored) == 0 {
		return nil, nil
	}

	action := unexplored[rng.Intn(len(unexplored))]
	postState, err := applyAction(driver, state, action, currentPlayer)
	if err != nil {
		return nil, err
	}

	child := pool.newChild(node, action, currentPlayer)
	node.Children = append(node.Children, child)

	return &expansionResult[A]{child: child, state: postState}, nil
}
