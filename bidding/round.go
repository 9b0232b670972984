package bidding

import (
	"encoding/json"
	"fmt"

	"belote/game"
)

// Status of an auction.
type Status string

const (
	StatusOpen       Status = "open"
	StatusContracted Status = "contracted"
	StatusPassedOut  Status = "passed-out"
)

const (
	// passesToPassOut ends an auction in which nobody bid a suit.
	passesToPassOut = game.NumPositions
	// passesToClose ends an auction once everyone else passed on the last
	// suit bid, coinche or surcoinche.
	passesToClose = game.NumPositions - 1
)

// Round is one auction. It is a value: PlaceBid returns the next round and
// never modifies its argument.
type Round struct {
	first       game.Position
	current     game.Position
	bids        []Bid
	standing    SuitBid
	hasStanding bool
	coinched    bool
	surcoinched bool
	passes      int
	status      Status
	contract    Contract
}

// NewRound opens an auction in which first speaks first.
func NewRound(first game.Position) (Round, error) {
	if !first.Valid() {
		return Round{}, fmt.Errorf("%w: first bidder %d", game.ErrInvalidPosition, int(first))
	}
	return Round{
		first:   first,
		current: first,
		status:  StatusOpen,
	}, nil
}

func (r Round) Status() Status { return r.status }
func (r Round) IsClosed() bool { return r.status != StatusOpen }
func (r Round) FirstBidder() game.Position { return r.first }
func (r Round) CurrentBidder() game.Position { return r.current }
func (r Round) Coinched() bool { return r.coinched }
func (r Round) Surcoinched() bool { return r.surcoinched }
func (r Round) ConsecutivePasses() int { return r.passes }
func (r Round) Standing() (SuitBid, bool) { return r.standing, r.hasStanding }

// Bids returns a copy of the bid log, oldest first.
func (r Round) Bids() []Bid {
	out := make([]Bid, len(r.bids))
	copy(out, r.bids)
	return out
}

// Multiplier returns the multiplier the standing bid would score at.
func (r Round) Multiplier() int {
	switch {
	case r.surcoinched:
		return MultiplierSurcoinched
	case r.coinched:
		return MultiplierCoinched
	default:
		return MultiplierNormal
	}
}

// Validate returns nil if b may be placed now, or the reason it may not.
func Validate(r Round, b Bid) error {
	if b == nil {
		return fmt.Errorf("%w: nil bid", ErrUnknownBid)
	}
	if r.status != StatusOpen {
		return ErrRoundClosed
	}
	if b.Bidder() != r.current {
		return fmt.Errorf("%w: seat %d bid, seat %d to speak", ErrNotYourTurn, int(b.Bidder()), int(r.current))
	}

	switch b := b.(type) {
	case PassBid:
		return nil
	case SuitBid:
		if !b.Suit.Valid() {
			return fmt.Errorf("%w: %d", game.ErrUnknownSuit, int(b.Suit))
		}
		rung := ladderIndex(b.Value)
		if rung < 0 {
			return fmt.Errorf("%w: %d", ErrInvalidBidValue, b.Value)
		}
		if r.coinched {
			return ErrAlreadyCoinched
		}
		if r.hasStanding && rung <= ladderIndex(r.standing.Value) {
			return fmt.Errorf("%w: %d does not beat %d", ErrBidTooLow, b.Value, r.standing.Value)
		}
		return nil
	case CoincheBid:
		if !r.hasStanding {
			return ErrNoStandingBid
		}
		if r.coinched {
			return ErrAlreadyCoinched
		}
		if game.IsOnSameTeam(b.Position, r.standing.Position) {
			return ErrOwnTeamCoinche
		}
		return nil
	case SurcoincheBid:
		if !r.coinched {
			return ErrNotCoinched
		}
		if r.surcoinched {
			return ErrAlreadySurcoinched
		}
		if !game.IsOnSameTeam(b.Position, r.standing.Position) {
			return ErrOpponentSurcoinche
		}
		return nil
	default:
		return fmt.Errorf("%w: %T", ErrUnknownBid, b)
	}
}

// IsValidBid reports whether b may be placed now.
func IsValidBid(r Round, b Bid) bool {
	return Validate(r, b) == nil
}

// PlaceBid applies b and returns the resulting round. On error the
// returned round is r unchanged.
func PlaceBid(r Round, b Bid) (Round, error) {
	if err := Validate(r, b); err != nil {
		return r, err
	}

	next := r
	next.bids = make([]Bid, len(r.bids), len(r.bids)+1)
	copy(next.bids, r.bids)
	next.bids = append(next.bids, b)

	switch b := b.(type) {
	case PassBid:
		next.passes++
		switch {
		case !next.hasStanding && next.passes >= passesToPassOut:
			next.status = StatusPassedOut
		case next.hasStanding && next.passes >= passesToClose:
			next.status = StatusContracted
			next.contract = Contract{
				Suit:       next.standing.Suit,
				Value:      next.standing.Value,
				Bidder:     next.standing.Position,
				Side:       next.standing.Position.Side(),
				Multiplier: next.Multiplier(),
			}
		}
	case SuitBid:
		next.standing = b
		next.hasStanding = true
		next.passes = 0
	case CoincheBid:
		next.coinched = true
		next.passes = 0
	case SurcoincheBid:
		next.surcoinched = true
		next.passes = 0
	default:
		return r, fmt.Errorf("%w: unhandled bid %T", game.ErrInvariant, b)
	}

	next.current = game.NextPosition(r.current)
	return next, nil
}

// GetContract returns the contract once the auction closed on a bid.
func GetContract(r Round) (Contract, bool) {
	if r.status != StatusContracted {
		return Contract{}, false
	}
	return r.contract, true
}

// Options describes what the current bidder may do.
type Options struct {
	Bidder game.Position `json:"bidder"`
	Pass   bool          `json:"pass"`
	// MinSuitValue is the lowest legal suit bid, or 0 if none is legal.
	MinSuitValue int  `json:"minSuitValue"`
	Coinche      bool `json:"coinche"`
	Surcoinche   bool `json:"surcoinche"`
}

// LegalOptions lists the bids open to the current bidder. A closed round
// has no options.
func (r Round) LegalOptions() Options {
	opts := Options{Bidder: r.current}
	if r.IsClosed() {
		return opts
	}
	opts.Pass = IsValidBid(r, NewPassBid(r.current))
	for _, v := range BidValues {
		if IsValidBid(r, SuitBid{Position: r.current, Suit: game.Hearts, Value: v}) {
			opts.MinSuitValue = v
			break
		}
	}
	opts.Coinche = IsValidBid(r, NewCoincheBid(r.current))
	opts.Surcoinche = IsValidBid(r, NewSurcoincheBid(r.current))
	return opts
}

type roundJSON struct {
	Status        Status        `json:"status"`
	FirstBidder   game.Position `json:"firstBidder"`
	CurrentBidder game.Position `json:"currentBidder"`
	Bids          []Bid         `json:"bids"`
	Standing      *SuitBid      `json:"standing,omitempty"`
	Coinched      bool          `json:"coinched"`
	Surcoinched   bool          `json:"surcoinched"`
	Passes        int           `json:"passes"`
	Contract      *Contract     `json:"contract,omitempty"`
}

// MarshalJSON exposes the round state for clients.
func (r Round) MarshalJSON() ([]byte, error) {
	out := roundJSON{
		Status:        r.status,
		FirstBidder:   r.first,
		CurrentBidder: r.current,
		Bids:          r.Bids(),
		Coinched:      r.coinched,
		Surcoinched:   r.surcoinched,
		Passes:        r.passes,
	}
	if r.hasStanding {
		standing := r.standing
		out.Standing = &standing
	}
	if c, ok := GetContract(r); ok {
		out.Contract = &c
	}
	return json.Marshal(out)
}
