package cardgame

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffectiveSuitLeftBowerCountsAsTrump(t *testing.T) {
	leftBower := Card{Rank: Jack, Suit: Diamonds}
	assert.Equal(t, Hearts, effectiveSuit(leftBower, Hearts))
}

func TestEffectiveSuitPlainCard(t *testing.T) {
	c := Card{Rank: Ace, Suit: Clubs}
	assert.Equal(t, Clubs, effectiveSuit(c, Hearts))
}

func TestRankValueOrdering(t *testing.T) {
	rightBower := Card{Rank: Jack, Suit: Hearts}
	leftBower := Card{Rank: Jack, Suit: Diamonds}
	otherTrump := Card{Rank: Ace, Suit: Hearts}
	plain := Card{Rank: Ace, Suit: Clubs}

	assert.Greater(t, rankValue(rightBower, Hearts), rankValue(leftBower, Hearts))
	assert.Greater(t, rankValue(leftBower, Hearts), rankValue(otherTrump, Hearts))
	assert.Greater(t, rankValue(otherTrump, Hearts), rankValue(plain, Hearts))
}

func TestResolveTrickTrumpBeatsLead(t *testing.T) {
	trick := []PlayedCard{
		{Player: 0, Card: Card{Rank: Ace, Suit: Clubs}},
		{Player: 1, Card: Card{Rank: Nine, Suit: Hearts}}, // trump
	}
	assert.Equal(t, 1, resolveTrick(trick, Hearts))
}

func TestResolveTrickHigherOfLeadSuitWins(t *testing.T) {
	trick := []PlayedCard{
		{Player: 0, Card: Card{Rank: King, Suit: Clubs}},
		{Player: 1, Card: Card{Rank: Nine, Suit: Clubs}},
	}
	assert.Equal(t, 0, resolveTrick(trick, Hearts))
}

func TestResolveTrickOffSuitCannotWin(t *testing.T) {
	trick := []PlayedCard{
		{Player: 0, Card: Card{Rank: Nine, Suit: Clubs}},
		{Player: 1, Card: Card{Rank: Ace, Suit: Diamonds}},
	}
	assert.Equal(t, 0, resolveTrick(trick, Hearts))
}

func TestLegalPlaysForcesFollowSuit(t *testing.T) {
	hand := []Card{
		{Rank: Nine, Suit: Clubs},
		{Rank: Ace, Suit: Hearts},
	}
	trick := []PlayedCard{{Player: 1, Card: Card{Rank: King, Suit: Clubs}}}

	legal := legalPlays(hand, trick, Spades)
	assert.Equal(t, []Card{{Rank: Nine, Suit: Clubs}}, legal)
}

func TestLegalPlaysAnyCardWhenVoidInLeadSuit(t *testing.T) {
	hand := []Card{
		{Rank: Ace, Suit: Hearts},
		{Rank: King, Suit: Spades},
	}
	trick := []PlayedCard{{Player: 1, Card: Card{Rank: King, Suit: Clubs}}}

	legal := legalPlays(hand, trick, Spades)
	assert.ElementsMatch(t, hand, legal)
}

func TestLegalPlaysLeaderMayPlayAnything(t *testing.T) {
	hand := []Card{{Rank: Nine, Suit: Clubs}, {Rank: Ace, Suit: Hearts}}
	legal := legalPlays(hand, nil, Spades)
	assert.ElementsMatch(t, hand, legal)
}

func TestWorstCardPicksLowestUnderTrump(t *testing.T) {
	hand := []Card{
		{Rank: Ace, Suit: Hearts}, // trump, high
		{Rank: Nine, Suit: Clubs}, // plain, low
	}
	assert.Equal(t, Card{Rank: Nine, Suit: Clubs}, worstCard(hand, Hearts))
}
