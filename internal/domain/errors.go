package domain

import "errors"

var (
	// ErrDeckExhausted is fatal to the hand in progress: the controller must
	// abort the hand without payout rather than deal a default card.
	ErrDeckExhausted = errors.New("deck exhausted")

	// ErrIllegalAction rejects an action that violates the current betting
	// constraints. Engine state is unchanged when it is returned.
	ErrIllegalAction = errors.New("illegal action")

	// ErrNotPlayersTurn rejects an action submitted out of turn.
	ErrNotPlayersTurn = errors.New("action does not match acting player")

	// ErrInvalidHandSize reports an evaluator call with fewer than 5 or more
	// than 7 cards. This is a programmer error, not a runtime condition.
	ErrInvalidHandSize = errors.New("hand evaluation requires 5 to 7 cards")

	ErrInsufficientChips = errors.New("insufficient chips for action")
	ErrHandComplete      = errors.New("hand already complete")
	ErrGameOver          = errors.New("game is over")
	ErrNoActivePlayers   = errors.New("no active players")
)
