package game

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this module wraps exactly one of
// these, so callers can pick a response with errors.Is.
var (
	// ErrValidation reports malformed input: wrong cardinality, an
	// out-of-range seat, an unknown name. The caller must fix the input.
	ErrValidation = errors.New("validation error")
	// ErrIllegalAction reports an action the rules forbid in the current
	// state. It is expected during play and safe to show to the user.
	ErrIllegalAction = errors.New("illegal action")
	// ErrInvariant reports an internal inconsistency.
	ErrInvariant = errors.New("invariant violation")
)

var (
	ErrDeckSize        = fmt.Errorf("%w: deck must hold %d cards", ErrValidation, DeckSize)
	ErrPlayerCount     = fmt.Errorf("%w: need exactly %d players", ErrValidation, NumPositions)
	ErrInvalidPosition = fmt.Errorf("%w: position must be between 0 and 3", ErrValidation)
	ErrUnknownSuit     = fmt.Errorf("%w: unknown suit", ErrValidation)
	ErrUnknownRank     = fmt.Errorf("%w: unknown rank", ErrValidation)
)
