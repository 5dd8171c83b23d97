package cardgame

// effectiveSuit returns the suit c counts as for follow-suit and trump
// purposes: the left bower (the jack of the same color as trump) counts as
// trump instead of its printed suit.
func effectiveSuit(c Card, trump Suit) Suit {
	if c.Rank == Jack && c.Suit == sameColorSuit(trump) {
		return trump
	}
	return c.Suit
}

// rankValue scores c for trick-winning comparisons under trump: right bower
// (jack of trump) highest, left bower next, then other trump cards above
// their printed rank, then plain cards by printed rank. Only comparable
// between cards that share an effective suit with the lead or with trump;
// resolveTrick only ever compares such cards.
func rankValue(c Card, trump Suit) int {
	switch {
	case c.Rank == Jack && c.Suit == trump:
		return 100
	case c.Rank == Jack && c.Suit == sameColorSuit(trump):
		return 99
	case effectiveSuit(c, trump) == trump:
		return 50 + int(c.Rank)
	default:
		return int(c.Rank)
	}
}

// resolveTrick returns the index of the player who won a completed
// two-card trick: the higher trump beats every plain card, and among
// plain cards only those matching the lead's effective suit can win.
func resolveTrick(trick []PlayedCard, trump Suit) int {
	lead := trick[0]
	leadSuit := effectiveSuit(lead.Card, trump)

	best := lead
	for _, pc := range trick[1:] {
		if beats(pc.Card, best.Card, trump, leadSuit) {
			best = pc
		}
	}
	return best.Player
}

// beats reports whether challenger wins against incumbent given the lead
// suit of the trick and the trump suit in play.
func beats(challenger, incumbent Card, trump, leadSuit Suit) bool {
	chSuit := effectiveSuit(challenger, trump)
	inSuit := effectiveSuit(incumbent, trump)

	chTrump := chSuit == trump
	inTrump := inSuit == trump
	switch {
	case chTrump && !inTrump:
		return true
	case !chTrump && inTrump:
		return false
	case chTrump && inTrump:
		return rankValue(challenger, trump) > rankValue(incumbent, trump)
	default:
		// Neither is trump: only a card following the lead suit can win,
		// and only by outranking the incumbent when it also follows suit.
		if chSuit != leadSuit {
			return false
		}
		if inSuit != leadSuit {
			return true
		}
		return rankValue(challenger, trump) > rankValue(incumbent, trump)
	}
}

// legalPlays filters hand down to the cards player may legally play given
// the trick so far: follow the lead's effective suit if holding any card
// of it, otherwise anything is legal.
func legalPlays(hand []Card, trick []PlayedCard, trump Suit) []Card {
	if len(trick) == 0 {
		return hand
	}
	leadSuit := effectiveSuit(trick[0].Card, trump)

	var followers []Card
	for _, c := range hand {
		if effectiveSuit(c, trump) == leadSuit {
			followers = append(followers, c)
		}
	}
	if len(followers) > 0 {
		return followers
	}
	return hand
}

// worstCard picks the dealer's discard after picking up the turned-up
// card: the lowest-ranked card under the new trump, so the dealer keeps
// their best hand.
func worstCard(hand []Card, trump Suit) Card {
	worst := hand[0]
	for _, c := range hand[1:] {
		if rankValue(c, trump) < rankValue(worst, trump) {
			worst = c
		}
	}
	return worst
}
