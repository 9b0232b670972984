package server

import (
	"fmt"

	"belote/bidding"
	"belote/game"
)

// MessageType identifies the type of WebSocket message
type MessageType string

const (
	// Client -> Server messages
	MsgJoinTable MessageType = "joinTable"
	MsgLeaveSeat MessageType = "leaveSeat"
	MsgStartDeal MessageType = "startDeal"
	MsgPlaceBid  MessageType = "placeBid"
	MsgRejoin    MessageType = "rejoin"

	// Server -> Client messages
	MsgStateUpdate MessageType = "stateUpdate"
	MsgError       MessageType = "error"
	MsgContract    MessageType = "contract"
	MsgPassedOut   MessageType = "passedOut"

	// Queued by the turn timer, never accepted from a client.
	msgTurnTimeout MessageType = "turnTimeout"
)

// ClientMessage represents a message from client to server
type ClientMessage struct {
	Type       MessageType `json:"type"`
	SeatIndex  *int        `json:"seatIndex,omitempty"`
	PlayerName string      `json:"playerName,omitempty"`
	Bid        *BidPayload `json:"bid,omitempty"`
	Token      string      `json:"token,omitempty"` // Session token for rejoin

	turn uint64
}

// BidPayload is a bid as sent by a client. The bidder is the sender's seat.
type BidPayload struct {
	Kind  bidding.Kind `json:"kind"`
	Suit  *game.Suit   `json:"suit,omitempty"`
	Value int          `json:"value,omitempty"`
}

// ToBid builds the bid for the given seat.
func (p BidPayload) ToBid(seat game.Position) (bidding.Bid, error) {
	if p.Kind == bidding.KindSuit {
		if p.Suit == nil {
			return nil, fmt.Errorf("%w: suit bid without suit", bidding.ErrUnknownBid)
		}
		return bidding.NewBid(p.Kind, seat, *p.Suit, p.Value)
	}
	return bidding.NewBid(p.Kind, seat, 0, 0)
}

// ServerMessage represents a message from server to client
type ServerMessage struct {
	Type      MessageType       `json:"type"`
	State     *PublicState      `json:"state,omitempty"`
	YourHand  []game.Card       `json:"yourHand,omitempty"`
	YourSeat  *int              `json:"yourSeat,omitempty"`
	YourToken string            `json:"yourToken,omitempty"`
	Error     *ErrorPayload     `json:"error,omitempty"`
	Contract  *bidding.Contract `json:"contract,omitempty"`
	Dealer    *game.Position    `json:"dealer,omitempty"` // Next dealer after a pass-out
}

// ErrorPayload contains error information
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PublicState is the table state visible to everyone
type PublicState struct {
	TableID  string            `json:"tableId"`
	Phase    Phase             `json:"phase"`
	Dealer   game.Position     `json:"dealer"`
	Deals    int               `json:"deals"`
	Seats    []PublicSeat      `json:"seats"`
	Round    *bidding.Round    `json:"round,omitempty"`
	Options  *bidding.Options  `json:"options,omitempty"` // Bids open to the seat to speak
	Contract *bidding.Contract `json:"contract,omitempty"`
}

// PublicSeat is seat info visible to all
type PublicSeat struct {
	SeatIndex int    `json:"seatIndex"`
	Name      string `json:"name"`
	Occupied  bool   `json:"occupied"`
	Connected bool   `json:"connected"`
	CardCount int    `json:"cardCount"`
}

// BuildPublicState creates the public state of a table
func BuildPublicState(t *Table) *PublicState {
	ps := &PublicState{
		TableID:  t.ID,
		Phase:    t.Phase,
		Dealer:   t.Dealer,
		Deals:    t.Deals,
		Seats:    make([]PublicSeat, 0, game.NumPositions),
		Contract: t.Contract,
	}

	for i, s := range t.Seats {
		seat := PublicSeat{SeatIndex: i}
		if s != nil {
			seat.Name = s.Name
			seat.Occupied = true
			seat.Connected = s.Connected
		}
		if t.Phase != PhaseLobby {
			seat.CardCount = t.Players[i].HandSize()
		}
		ps.Seats = append(ps.Seats, seat)
	}

	if t.Phase != PhaseLobby {
		round := t.Round
		ps.Round = &round
	}
	if t.Phase == PhaseBidding {
		opts := t.Round.LegalOptions()
		ps.Options = &opts
	}

	return ps
}

// NewErrorMessage creates an error message
func NewErrorMessage(code, message string) ServerMessage {
	return ServerMessage{
		Type: MsgError,
		Error: &ErrorPayload{
			Code:    code,
			Message: message,
		},
	}
}

// NewContractMessage announces the end of an auction.
func NewContractMessage(c bidding.Contract) ServerMessage {
	return ServerMessage{Type: MsgContract, Contract: &c}
}

// NewPassedOutMessage announces a pass-out and the dealer of the redeal.
func NewPassedOutMessage(dealer game.Position) ServerMessage {
	return ServerMessage{Type: MsgPassedOut, Dealer: &dealer}
}

// NewStateUpdateMessage creates a state update for a seat, or for a
// spectator when seatIndex is -1.
func NewStateUpdateMessage(t *Table, seatIndex int) ServerMessage {
	msg := ServerMessage{
		Type:  MsgStateUpdate,
		State: BuildPublicState(t),
	}

	if seatIndex >= 0 && seatIndex < game.NumPositions && t.Seats[seatIndex] != nil {
		msg.YourSeat = &seatIndex
		msg.YourToken = t.Seats[seatIndex].Token
		if t.Phase != PhaseLobby {
			msg.YourHand = t.Players[seatIndex].Hand()
		}
	}

	return msg
}
