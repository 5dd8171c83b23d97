package ismcts

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeState is a trivial two-move coin-flip game used to exercise the
// engine's internal helpers directly, without pulling in the cardgame
// fixture: pick heads or tails, then the game is over. It has exactly the
// shape legalActions/selection/expansion need: one waiting decision, one
// terminal state.
type fakeState struct {
	chosen string
	done   bool
}

type fakeDriver struct {
	failValidate bool
}

func (fakeDriver) AdvanceToDecision(state FullState) (FullState, error) {
	return state, nil
}

func (fakeDriver) IsWaiting(state FullState) bool {
	return !state.(*fakeState).done
}

func (fakeDriver) ExpectedTypes(state FullState) ExpectedTypes {
	if state.(*fakeState).done {
		return NewExpectedTypes()
	}
	return NewExpectedTypes("coin-response")
}

func (fakeDriver) CurrentPlayer(FullState) int { return 0 }

func (d fakeDriver) Validate(state FullState, action string, player int) bool {
	if d.failValidate {
		return false
	}
	return action == "heads" || action == "tails"
}

func (d fakeDriver) ApplyAction(state FullState, action string, player int) (FullState, error) {
	if !d.Validate(state, action, player) {
		return nil, errors.New("illegal action")
	}
	return &fakeState{chosen: action, done: true}, nil
}

type fakeAdapter struct {
	candidates            []string
	failReconstruct       bool
	failDriverConstruction bool
}

func (a fakeAdapter) GenerateCandidates(obs Observation, currentPlayer int, expected ExpectedTypes) []string {
	if !expected.Has("coin-response") {
		return nil
	}
	return a.candidates
}

func (a fakeAdapter) NewDriver(state FullState, handlers []struct{}) (Driver[string], error) {
	if a.failDriverConstruction {
		return nil, errors.New("construction failed")
	}
	return fakeDriver{}, nil
}

func (a fakeAdapter) ReconstructFullState(obs Observation) (FullState, error) {
	if a.failReconstruct {
		return nil, errors.New("reconstruct failed")
	}
	return obs, nil
}

func (a fakeAdapter) Determinize(obs Observation, rng *rand.Rand) (FullState, error) {
	return obs, nil
}

func (a fakeAdapter) IsRoundEnded(state FullState) bool {
	return state.(*fakeState).done
}

func (a fakeAdapter) RoundReward(state FullState, player int) float64 {
	if state.(*fakeState).chosen == "heads" {
		return 1.0
	}
	return 0.0
}

func (a fakeAdapter) TimeoutReward(FullState, int) float64 { return 0.5 }

func (a fakeAdapter) ActionWeight(string) float64 { return 1.0 }

func (a fakeAdapter) CreateHandler(Strategy[string]) struct{} { return struct{}{} }

func TestLegalActionsDeduplicatesCandidates(t *testing.T) {
	adapter := fakeAdapter{candidates: []string{"heads", "heads", "tails"}}
	legal, err := legalActions[string, struct{}](adapter, &fakeState{}, 0, NewExpectedTypes("coin-response"), nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"heads", "tails"}, legal)
}

func TestLegalActionsDropsUnvalidatedCandidates(t *testing.T) {
	adapter := fakeAdapter{candidates: []string{"heads", "invalid"}}
	legal, err := legalActions[string, struct{}](adapter, &fakeState{}, 0, NewExpectedTypes("coin-response"), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"heads"}, legal)
}

func TestLegalActionsPropagatesReconstructFailure(t *testing.T) {
	adapter := fakeAdapter{failReconstruct: true, candidates: []string{"heads"}}
	_, err := legalActions[string, struct{}](adapter, &fakeState{}, 0, NewExpectedTypes("coin-response"), nil)
	require.Error(t, err)
	kind, ok := Kind(err)
	require.True(t, ok)
	assert.Equal(t, KindAdapterFailure, kind)
}

func TestLegalActionsToleratesPerCandidateDriverConstructionFailure(t *testing.T) {
	adapter := fakeAdapter{candidates: []string{"heads"}, failDriverConstruction: true}
	legal, err := legalActions[string, struct{}](adapter, &fakeState{}, 0, NewExpectedTypes("coin-response"), nil)
	require.NoError(t, err)
	assert.Empty(t, legal)
}

func TestSelectionStopsAtFirstUnexpandedAction(t *testing.T) {
	adapter := fakeAdapter{candidates: []string{"heads", "tails"}}
	driver := fakeDriver{}
	pool := newTypedNodePool[string]()
	root := pool.newRoot()

	result, err := selection[string, struct{}](adapter, driver, root, &fakeState{}, nil)
	require.NoError(t, err)
	assert.False(t, result.terminal)
	assert.Equal(t, root, result.node)
	assert.Len(t, result.expected, 1)
}

func TestSelectionReportsTerminal(t *testing.T) {
	adapter := fakeAdapter{}
	driver := fakeDriver{}
	pool := newTypedNodePool[string]()
	root := pool.newRoot()

	result, err := selection[string, struct{}](adapter, driver, root, &fakeState{done: true, chosen: "heads"}, nil)
	require.NoError(t, err)
	assert.True(t, result.terminal)
}

func TestExpansionAddsOneChildPerCall(t *testing.T) {
	adapter := fakeAdapter{candidates: []string{"heads", "tails"}}
	driver := fakeDriver{}
	pool := newTypedNodePool[string]()
	root := pool.newRoot()
	rng := rand.New(rand.NewSource(1))

	result, err := expansion[string, struct{}](adapter, driver, pool, root, &fakeState{}, NewExpectedTypes("coin-response"), rng, nil)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Len(t, root.Children, 1)
	assert.True(t, result.state.(*fakeState).done)
}

func TestExpansionReturnsNilWhenFullyExpanded(t *testing.T) {
	adapter := fakeAdapter{candidates: []string{"heads"}}
	driver := fakeDriver{}
	pool := newTypedNodePool[string]()
	root := pool.newRoot()
	root.Children = append(root.Children, pool.newChild(root, "heads", 0))

	result, err := expansion[string, struct{}](adapter, driver, pool, root, &fakeState{}, NewExpectedTypes("coin-response"), rand.New(rand.NewSource(1)), nil)
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestSimulateReturnsTerminalReward(t *testing.T) {
	adapter := fakeAdapter{candidates: []string{"heads"}}
	driver := fakeDriver{}
	reward, err := simulate[string, struct{}](adapter, driver, &fakeState{}, 0, 10, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, 1.0, reward)
}

func TestPickWeightedFloorsNonPositiveWeights(t *testing.T) {
	adapter := weightOverrideAdapter{fakeAdapter{candidates: []string{"heads", "tails"}}, map[string]float64{"heads": 0, "tails": 1}}
	rng := rand.New(rand.NewSource(2))
	counts := map[string]int{}
	for i := 0; i < 200; i++ {
		counts[pickWeighted[string, struct{}](adapter, []string{"heads", "tails"}, rng)]++
	}
	assert.Less(t, counts["heads"], counts["tails"])
}

type weightOverrideAdapter struct {
	fakeAdapter
	weights map[string]float64
}

func (a weightOverrideAdapter) ActionWeight(action string) float64 {
	return a.weights[action]
}
