package cardgame

// HandSize is the number of cards dealt to each player and therefore the
// number of tricks played per hand. Kept small so tests and property
// checks run quickly while still producing a genuine decision tree.
const HandSize = 3

// Phase is a point in the hand's state machine. BidOrderUp, BidGoAlone and
// Play are waiting phases with a pending decision; AutoDiscard and
// AutoResolveTrick are deterministic follow-ups a driver resolves without
// any player input; Done is terminal.
type Phase uint8

const (
	PhaseBidOrderUp Phase = iota
	PhaseAutoDiscard
	PhaseBidGoAlone
	PhasePlay
	PhaseAutoResolveTrick
	PhaseDone
)

// PlayedCard is one card played to the current trick.
type PlayedCard struct {
	Player int
	Card   Card
}

// State is this package's single representation for both a full game state
// and a player's observation of one: a genuine FullState has both players'
// hands populated; an Observation has only Hands[Observer] populated, the
// other left nil, per the engine's "hidden fields replaced by an empty
// placeholder" contract.
type State struct {
	Observer int // which player's view this is, meaningful only for an Observation

	Hands    [2][]Card
	TurnedUp Card
	Dealer   int
	Maker    int // -1 until trump is named
	Trump    Suit
	Alone    bool

	Phase         Phase
	Waiting       bool
	CurrentPlayer int

	Trick           []PlayedCard
	Leader          int
	TricksWon       [2]int
	CompletedTricks int

	WinnerID int // -1 until Phase == PhaseDone
}

// NewDeal deals a fresh hand: HandSize cards to each player, one card
// turned face up as the trump candidate, dealer fixed at 1 so player 0
// always bids first (mirrors standard euchre: the dealer's left bids
// first, and in a two-player game that's simply "the other player").
func NewDeal(shuffleFn func([]Card)) *State {
	deck := fullDeck()
	shuffleFn(deck)

	s := &State{
		Observer: -1,
		Dealer:   1,
		Maker:    -1,
		WinnerID: -1,
		Phase:    PhaseBidOrderUp,
		Waiting:  true,
	}
	s.Hands[0] = append([]Card{}, deck[0:HandSize]...)
	s.Hands[1] = append([]Card{}, deck[HandSize:2*HandSize]...)
	s.TurnedUp = deck[2*HandSize]
	s.CurrentPlayer = 1 - s.Dealer // non-dealer bids first
	return s
}

// Clone returns a deep, independent copy of s.
func (s *State) Clone() *State {
	c := *s
	c.Hands[0] = append([]Card{}, s.Hands[0]...)
	c.Hands[1] = append([]Card{}, s.Hands[1]...)
	c.Trick = append([]PlayedCard{}, s.Trick...)
	return &c
}

// ToObservation projects a full state down to player's view: their own
// hand stays, the opponent's hand is cleared to the empty placeholder.
func (s *State) ToObservation(player int) *State {
	obs := s.Clone()
	obs.Observer = player
	opponent := 1 - player
	obs.Hands[opponent] = nil
	return obs
}

// opponentHandSize returns how many cards the player who is not observer
// still holds, derived entirely from public history (tricks completed
// plus whether they have already played to the in-progress trick) so it
// never needs to peek at hidden state.
func (s *State) opponentHandSize(observer int) int {
	opponent := 1 - observer
	played := s.CompletedTricks
	for _, pc := range s.Trick {
		if pc.Player == opponent {
			played++
		}
	}
	return HandSize - played
}

// publiclyKnownCards returns the cards visible to all players regardless
// of whose observation is being built: the turned-up card and the cards
// played to the current trick. State keeps no record of the cards played
// in completed tricks, so those are not included.
func (s *State) publiclyKnownCards() []Card {
	cards := []Card{s.TurnedUp}
	for _, pc := range s.Trick {
		cards = append(cards, pc.Card)
	}
	return cards
}
