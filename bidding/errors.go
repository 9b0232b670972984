package bidding

import (
	"fmt"

	"belote/game"
)

// Rejections. Each wraps game.ErrIllegalAction or game.ErrValidation.
var (
	ErrRoundClosed        = fmt.Errorf("%w: bidding is closed", game.ErrIllegalAction)
	ErrNotYourTurn        = fmt.Errorf("%w: not your turn", game.ErrIllegalAction)
	ErrBidTooLow          = fmt.Errorf("%w: bid must be higher than the standing bid", game.ErrIllegalAction)
	ErrNoStandingBid      = fmt.Errorf("%w: no standing bid to coinche", game.ErrIllegalAction)
	ErrOwnTeamCoinche     = fmt.Errorf("%w: cannot coinche your own team's bid", game.ErrIllegalAction)
	ErrAlreadyCoinched    = fmt.Errorf("%w: standing bid is already coinched", game.ErrIllegalAction)
	ErrNotCoinched        = fmt.Errorf("%w: surcoinche requires a coinche", game.ErrIllegalAction)
	ErrOpponentSurcoinche = fmt.Errorf("%w: only the declaring team may surcoinche", game.ErrIllegalAction)
	ErrAlreadySurcoinched = fmt.Errorf("%w: standing bid is already surcoinched", game.ErrIllegalAction)

	ErrInvalidBidValue = fmt.Errorf("%w: bid value is not on the ladder", game.ErrValidation)
	ErrUnknownBid      = fmt.Errorf("%w: unknown bid", game.ErrValidation)
)
