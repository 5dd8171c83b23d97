package cardgame

import (
	"fmt"

	"github.com/signalnine/ismcts"
)

// Driver runs one hand's state machine. handlers, when non-empty, lets
// AdvanceToDecision play straight through a registered player's decisions
// by querying their strategy instead of pausing — used by the demo CLI to
// auto-play a full hand between two strategies; the engine itself always
// builds a Driver with no handlers so every waiting point is handed back.
type Driver struct {
	handlers map[int]Handler
}

func newDriver(handlers []Handler) *Driver {
	m := make(map[int]Handler, len(handlers))
	for _, h := range handlers {
		m[h.player] = h
	}
	return &Driver{handlers: m}
}

func (d *Driver) AdvanceToDecision(state ismcts.FullState) (ismcts.FullState, error) {
	s := state.(*State).Clone()
	for {
		s = resolveStep(s)
		if s.Phase == PhaseDone {
			return s, nil
		}
		h, ok := d.handlers[s.CurrentPlayer]
		if !ok {
			return s, nil
		}
		obs := s.ToObservation(s.CurrentPlayer)
		action := h.strategy.Decide(obs, expectedTypes(s))
		next, err := d.ApplyAction(s, action, s.CurrentPlayer)
		if err != nil {
			return nil, err
		}
		s = next.(*State)
	}
}

func (d *Driver) IsWaiting(state ismcts.FullState) bool {
	return state.(*State).Waiting
}

func (d *Driver) ExpectedTypes(state ismcts.FullState) ismcts.ExpectedTypes {
	return expectedTypes(state.(*State))
}

func expectedTypes(s *State) ismcts.ExpectedTypes {
	switch s.Phase {
	case PhaseBidOrderUp:
		return ismcts.NewExpectedTypes(TypeOrderUpResponse)
	case PhaseBidGoAlone:
		return ismcts.NewExpectedTypes(TypeGoingAloneResponse)
	case PhasePlay:
		return ismcts.NewExpectedTypes(TypeTurnResponse)
	default:
		return ismcts.NewExpectedTypes()
	}
}

func (d *Driver) CurrentPlayer(state ismcts.FullState) int {
	return state.(*State).CurrentPlayer
}

func (d *Driver) Validate(state ismcts.FullState, action Action, player int) bool {
	s := state.(*State)
	if !s.Waiting || s.CurrentPlayer != player {
		return false
	}
	switch s.Phase {
	case PhaseBidOrderUp:
		return action.Kind == ActionOrderUp || action.Kind == ActionPass
	case PhaseBidGoAlone:
		return action.Kind == ActionGoAlone || action.Kind == ActionPlayNormal
	case PhasePlay:
		if action.Kind != ActionPlayCard {
			return false
		}
		if !containsCard(s.Hands[player], action.Card) {
			return false
		}
		legal := legalPlays(s.Hands[player], s.Trick, s.Trump)
		return containsCard(legal, action.Card)
	default:
		return false
	}
}

func (d *Driver) ApplyAction(state ismcts.FullState, action Action, player int) (ismcts.FullState, error) {
	s := state.(*State).Clone()
	if !d.Validate(s, action, player) {
		return nil, fmt.Errorf("cardgame: action %s illegal for player %d in phase %d", action, player, s.Phase)
	}

	switch s.Phase {
	case PhaseBidOrderUp:
		if action.Kind == ActionOrderUp {
			s.Maker = 1 - s.Dealer
		} else {
			s.Maker = s.Dealer // stick the dealer
		}
		s.Phase = PhaseAutoDiscard
		s.Waiting = false

	case PhaseBidGoAlone:
		s.Alone = action.Kind == ActionGoAlone
		s.Phase = PhasePlay
		s.Leader = 1 - s.Dealer
		s.CurrentPlayer = s.Leader
		s.Waiting = false

	case PhasePlay:
		s.Hands[player] = removeCard(s.Hands[player], action.Card)
		s.Trick = append(s.Trick, PlayedCard{Player: player, Card: action.Card})
		if len(s.Trick) < 2 {
			s.CurrentPlayer = 1 - player
			s.Waiting = false
		} else {
			s.Phase = PhaseAutoResolveTrick
			s.Waiting = false
		}
	}
	return s, nil
}

// resolveStep runs the next automatic step, if any, and otherwise just
// marks state as a genuine waiting decision point. Idempotent: calling it
// again on an already-waiting or already-done state is a no-op.
func resolveStep(s *State) *State {
	switch s.Phase {
	case PhaseAutoDiscard:
		dealer := s.Dealer
		s.Trump = s.TurnedUp.Suit
		pickedUp := append(append([]Card{}, s.Hands[dealer]...), s.TurnedUp)
		discard := worstCard(pickedUp, s.Trump)
		s.Hands[dealer] = removeCard(pickedUp, discard)
		s.Phase = PhaseBidGoAlone
		s.CurrentPlayer = s.Maker
		s.Waiting = true
		return s

	case PhaseAutoResolveTrick:
		winner := resolveTrick(s.Trick, s.Trump)
		s.TricksWon[winner]++
		s.CompletedTricks++
		s.Trick = nil
		if s.CompletedTricks == HandSize {
			s.Phase = PhaseDone
			if s.TricksWon[0] > s.TricksWon[1] {
				s.WinnerID = 0
			} else {
				s.WinnerID = 1
			}
			return s
		}
		s.Leader = winner
		s.CurrentPlayer = winner
		s.Phase = PhasePlay
		s.Waiting = true
		return s

	case PhaseDone:
		return s

	default:
		s.Waiting = true
		return s
	}
}

func containsCard(cards []Card, c Card) bool {
	for _, have := range cards {
		if have == c {
			return true
		}
	}
	return false
}

func removeCard(cards []Card, c Card) []Card {
	out := make([]Card, 0, len(cards))
	removed := false
	for _, have := range cards {
		if !removed && have == c {
			removed = true
			continue
		}
		out = append(out, have)
	}
	return out
}
