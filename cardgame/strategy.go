package cardgame

import "github.com/signalnine/ismcts"

// Handler wraps a decision strategy for one player into the callback form
// Driver.AdvanceToDecision consumes when auto-playing a hand: produced by
// Adapter.CreateHandler, the ismcts engine's C type parameter for this game.
type Handler struct {
	player   int
	strategy ismcts.Strategy[Action]
}

// WithPlayer binds a handler produced by CreateHandler to the seat it
// should answer for; CreateHandler alone cannot know which player will use
// the strategy.
func (h Handler) WithPlayer(player int) Handler {
	h.player = player
	return h
}
