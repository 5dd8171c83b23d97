package ismcts

import "math/rand"

// simulate plays out state randomly, biased by the adapter's action
// weights, until a terminal state or maxDepth applied actions, and returns
// the reward from decisionMaker's perspective.
func simulate[A comparable, C any](
	adapter Adapter[A, C],
	driver Driver[A],
	state FullState,
	decisionMaker int,
	maxDepth int,
	rng *rand.Rand,
) (float64, error) {
	for depth := 0; depth < maxDepth; depth++ {
		next, err := advanceToDecision(driver, state)
		if err != nil {
			return 0, err
		}
		state = next

		if adapter.IsRoundEnded(state) {
			return adapter.RoundReward(state, decisionMaker), nil
		}

		currentPlayer := driver.CurrentPlayer(state)
		expected := driver.ExpectedTypes(state)
		candidates := adapter.GenerateCandidates(state, currentPlayer, expected)
		if len(candidates) == 0 {
			return 0, ErrAdapterFailure(errNoSimulationMoves)
		}

		action := pickWeighted(adapter, candidates, rng)
		state, err = applyAction(driver, state, action, currentPlayer)
		if err != nil {
			return 0, err
		}
	}

	return adapter.TimeoutReward(state, decisionMaker), nil
}

// pickWeighted samples one action proportional to the adapter's declared
// weights. Non-positive weights are floored to a tiny positive value so a
// misbehaving adapter can't zero out every candidate and stall selection.
func pickWeighted[A comparable, C any](adapter Adapter[A, C], candidates []A, rng *rand.Rand) A {
	const minWeight = 1e-9

	weights := make([]float64, len(candidates))
	total := 0.0
	for i, c := range candidates {
		w := adapter.ActionWeight(c)
		if w <= 0 {
			w = minWeight
		}
		weights[i] = w
		total += w
	}

	target := rng.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if target < cumulative {
			return candidates[i]
		}
	}
	return candidates[len(candidates)-1]
}
