package server

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"belote/bidding"
	"belote/game"
	"belote/idgen"
)

// Phase is the stage a table is in.
type Phase string

const (
	PhaseLobby      Phase = "lobby"
	PhaseBidding    Phase = "bidding"
	PhaseContracted Phase = "contracted"
)

// ActionType identifies a table action.
type ActionType string

const (
	ActionJoinSeat   ActionType = "joinSeat"
	ActionLeaveSeat  ActionType = "leaveSeat"
	ActionDisconnect ActionType = "disconnect"
	ActionStartDeal  ActionType = "startDeal"
	ActionPlaceBid   ActionType = "placeBid"
)

// Action is a request to change the table.
type Action struct {
	Type       ActionType
	Seat       game.Position
	PlayerName string
	Bid        bidding.Bid
}

// Table errors. Each wraps one of the game error kinds.
var (
	ErrSeatTaken      = fmt.Errorf("%w: seat already taken", game.ErrIllegalAction)
	ErrSeatEmpty      = fmt.Errorf("%w: seat is empty", game.ErrIllegalAction)
	ErrNotSeated      = fmt.Errorf("%w: not seated", game.ErrIllegalAction)
	ErrTableNotFull   = fmt.Errorf("%w: need 4 players to deal", game.ErrIllegalAction)
	ErrDealInProgress = fmt.Errorf("%w: deal in progress", game.ErrIllegalAction)
	ErrNoAuction      = fmt.Errorf("%w: no auction in progress", game.ErrIllegalAction)
	ErrRejoinFailed   = fmt.Errorf("%w: rejoin failed", game.ErrIllegalAction)
	ErrMissingName    = fmt.Errorf("%w: player name required", game.ErrValidation)
	ErrMissingBid     = fmt.Errorf("%w: bid required", game.ErrValidation)
	ErrUnknownAction  = fmt.Errorf("%w: unknown action", game.ErrValidation)
)

// Seat is a chair at the table and the session holding it.
type Seat struct {
	Name      string
	Token     string
	Connected bool
}

// Table is the state of one four-seat bidding table.
type Table struct {
	ID       string
	Phase    Phase
	Seats    [game.NumPositions]*Seat
	Dealer   game.Position
	Deals    int
	Players  [game.NumPositions]game.Player
	Round    bidding.Round
	Contract *bidding.Contract

	ids game.IDGenerator
	rng func() float64
}

// NewTable creates an empty table. ids names the table and everything dealt
// at it; rng drives the shuffle.
func NewTable(ids game.IDGenerator, rng func() float64, dealer game.Position) (*Table, error) {
	if !dealer.Valid() {
		return nil, fmt.Errorf("%w: dealer %d", game.ErrInvalidPosition, int(dealer))
	}
	return &Table{
		ID:     ids.GenerateID(idgen.KindTable),
		Phase:  PhaseLobby,
		Dealer: dealer,
		ids:    ids,
		rng:    rng,
	}, nil
}

// ApplyAction applies an action to the table.
func ApplyAction(t *Table, action Action) (*Table, error) {
	switch action.Type {
	case ActionJoinSeat:
		return applyJoinSeat(t, action)
	case ActionLeaveSeat:
		return applyLeaveSeat(t, action)
	case ActionDisconnect:
		return applyDisconnect(t, action)
	case ActionStartDeal:
		return applyStartDeal(t)
	case ActionPlaceBid:
		return applyPlaceBid(t, action)
	default:
		return t, fmt.Errorf("%w: %q", ErrUnknownAction, action.Type)
	}
}

func applyJoinSeat(t *Table, action Action) (*Table, error) {
	if !action.Seat.Valid() {
		return t, fmt.Errorf("%w: got %d", game.ErrInvalidPosition, int(action.Seat))
	}
	if action.PlayerName == "" {
		return t, ErrMissingName
	}

	seat := t.Seats[action.Seat]
	if seat != nil && seat.Connected {
		return t, ErrSeatTaken
	}
	// Mid-deal only an abandoned seat can be taken over.
	if seat == nil && t.Phase == PhaseBidding {
		return t, ErrDealInProgress
	}

	// A takeover after the deal keeps the hand under the new name.
	if t.Phase != PhaseLobby {
		p, err := game.NewPlayer(action.PlayerName, action.Seat, t.ids)
		if err != nil {
			return t, err
		}
		t.Players[action.Seat] = game.SetPlayerHand(p, t.Players[action.Seat].Hand())
	}

	t.Seats[action.Seat] = &Seat{
		Name:      action.PlayerName,
		Token:     uuid.NewString(),
		Connected: true,
	}
	return t, nil
}

func applyLeaveSeat(t *Table, action Action) (*Table, error) {
	if !action.Seat.Valid() || t.Seats[action.Seat] == nil {
		return t, ErrSeatEmpty
	}
	if t.Phase == PhaseBidding {
		// The seat stays dealt in; the turn timer speaks for it.
		t.Seats[action.Seat].Connected = false
		return t, nil
	}
	t.Seats[action.Seat] = nil
	return t, nil
}

func applyDisconnect(t *Table, action Action) (*Table, error) {
	if !action.Seat.Valid() || t.Seats[action.Seat] == nil {
		return t, ErrSeatEmpty
	}
	t.Seats[action.Seat].Connected = false
	return t, nil
}

func applyStartDeal(t *Table) (*Table, error) {
	if t.Phase == PhaseBidding {
		return t, ErrDealInProgress
	}
	if !t.Full() {
		return t, ErrTableNotFull
	}
	if t.Phase == PhaseContracted {
		t.Dealer = t.Dealer.Next()
	}
	if err := deal(t); err != nil {
		return t, err
	}
	return t, nil
}

// deal shuffles a fresh deck, deals it and opens the auction left of the
// dealer.
func deal(t *Table) error {
	players := make([]game.Player, game.NumPositions)
	for i, s := range t.Seats {
		p, err := game.NewPlayer(s.Name, game.Position(i), t.ids)
		if err != nil {
			return err
		}
		players[i] = p
	}

	deck := game.ShuffleDeck(game.NewDeck(t.ids), t.rng)
	dealt, err := game.DealCards(deck, players)
	if err != nil {
		return err
	}

	round, err := bidding.NewRound(t.Dealer.Next())
	if err != nil {
		return err
	}

	t.Players = dealt
	t.Round = round
	t.Contract = nil
	t.Phase = PhaseBidding
	t.Deals++
	return nil
}

func applyPlaceBid(t *Table, action Action) (*Table, error) {
	if t.Phase != PhaseBidding {
		return t, ErrNoAuction
	}
	if action.Bid == nil {
		return t, ErrMissingBid
	}

	next, err := bidding.PlaceBid(t.Round, action.Bid)
	if err != nil {
		return t, err
	}
	t.Round = next

	switch next.Status() {
	case bidding.StatusContracted:
		c, ok := bidding.GetContract(next)
		if !ok {
			return t, fmt.Errorf("%w: contracted round without contract", game.ErrInvariant)
		}
		t.Contract = &c
		t.Phase = PhaseContracted
	case bidding.StatusPassedOut:
		t.Dealer = t.Dealer.Next()
		if err := deal(t); err != nil {
			return t, err
		}
	}
	return t, nil
}

// Rejoin reconnects the seat holding token.
func (t *Table) Rejoin(token string) (game.Position, error) {
	if token == "" {
		return -1, ErrRejoinFailed
	}
	for i, s := range t.Seats {
		if s != nil && s.Token == token {
			s.Connected = true
			return game.Position(i), nil
		}
	}
	return -1, ErrRejoinFailed
}

// Full reports whether every seat is held.
func (t *Table) Full() bool {
	for _, s := range t.Seats {
		if s == nil {
			return false
		}
	}
	return true
}

// errorCode maps an error to the code sent to clients.
func errorCode(err error) string {
	switch {
	case errors.Is(err, game.ErrValidation):
		return "validation"
	case errors.Is(err, game.ErrIllegalAction):
		return "illegal_action"
	default:
		return "internal"
	}
}
