package cardgame

import (
	"fmt"
	"math/rand"

	"github.com/signalnine/ismcts"
)

// Adapter is the ismcts.Adapter implementation for this fixture game. It
// holds no state of its own; every method is pure with respect to the
// FullState/Observation value it is given.
type Adapter struct{}

// NewAdapter returns a ready-to-use Adapter.
func NewAdapter() Adapter {
	return Adapter{}
}

var _ ismcts.Adapter[Action, Handler] = Adapter{}

func (Adapter) GenerateCandidates(obs ismcts.Observation, currentPlayer int, expected ismcts.ExpectedTypes) []Action {
	s := obs.(*State)
	switch {
	case s.Phase == PhaseBidOrderUp && expected.Has(TypeOrderUpResponse):
		return []Action{{Kind: ActionOrderUp}, {Kind: ActionPass}}

	case s.Phase == PhaseBidGoAlone && expected.Has(TypeGoingAloneResponse):
		return []Action{{Kind: ActionGoAlone}, {Kind: ActionPlayNormal}}

	case s.Phase == PhasePlay && expected.Has(TypeTurnResponse):
		legal := legalPlays(s.Hands[currentPlayer], s.Trick, s.Trump)
		actions := make([]Action, 0, len(legal))
		for _, c := range legal {
			actions = append(actions, Action{Kind: ActionPlayCard, Card: c})
		}
		return actions

	default:
		return nil
	}
}

func (Adapter) NewDriver(state ismcts.FullState, handlers []Handler) (ismcts.Driver[Action], error) {
	return newDriver(handlers), nil
}

// ReconstructFullState fills the opponent's hand with nothing: every
// Validate path only inspects the acting player's own hand and the public
// trick/trump fields, so an empty placeholder is sufficient and never
// inspected.
func (Adapter) ReconstructFullState(obs ismcts.Observation) (ismcts.FullState, error) {
	s, ok := obs.(*State)
	if !ok {
		return nil, fmt.Errorf("cardgame: observation has unexpected type %T", obs)
	}
	return s.Clone(), nil
}

func (Adapter) Determinize(obs ismcts.Observation, rng *rand.Rand) (ismcts.FullState, error) {
	s, ok := obs.(*State)
	if !ok {
		return nil, fmt.Errorf("cardgame: observation has unexpected type %T", obs)
	}
	if s.Observer < 0 {
		return nil, fmt.Errorf("cardgame: cannot determinize a state with no observer")
	}
	det := s.Clone()
	opponent := 1 - s.Observer
	size := s.opponentHandSize(s.Observer)

	known := append(append([]Card{}, s.Hands[s.Observer]...), s.publiclyKnownCards()...)
	pool := remove(fullDeck(), known)
	shuffle(pool, rng)
	if size > len(pool) {
		return nil, fmt.Errorf("cardgame: not enough unseen cards to deal opponent hand of %d", size)
	}
	det.Hands[opponent] = append([]Card{}, pool[:size]...)
	return det, nil
}

func (Adapter) IsRoundEnded(state ismcts.FullState) bool {
	return state.(*State).Phase == PhaseDone
}

func (Adapter) RoundReward(state ismcts.FullState, player int) float64 {
	s := state.(*State)
	if s.WinnerID == player {
		return 1.0
	}
	return 0.0
}

// TimeoutReward treats a depth-capped playout as a draw: this fixture's
// hands are short enough that the cap is rarely hit, but when it is there
// is no principled winner to report.
func (Adapter) TimeoutReward(state ismcts.FullState, player int) float64 {
	return 0.5
}

// ActionWeight down-weights the two pass-like actions so playouts don't
// stall indefinitely declining to commit: order-up and play-card actions
// that actually progress the hand are sampled four times as often.
func (Adapter) ActionWeight(action Action) float64 {
	if action.Kind == ActionPass || action.Kind == ActionPlayNormal {
		return 0.25
	}
	return 1.0
}

func (Adapter) CreateHandler(strategy ismcts.Strategy[Action]) Handler {
	return Handler{strategy: strategy}
}
