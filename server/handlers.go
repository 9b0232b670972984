package server

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"belote/bidding"
	"belote/game"
)

// GameServer handles table actions and message routing
type GameServer struct {
	Hub   *Hub
	Table *Table

	logger      *zap.Logger
	turnTimeout time.Duration
	timer       *time.Timer
	turn        uint64 // bumped whenever the turn timer is re-armed
	mu          sync.Mutex
}

// NewGameServer creates a server for table. A zero turnTimeout disables the
// turn timer.
func NewGameServer(hub *Hub, table *Table, turnTimeout time.Duration, logger *zap.Logger) *GameServer {
	return &GameServer{
		Hub:         hub,
		Table:       table,
		logger:      logger.With(zap.String("table_id", table.ID)),
		turnTimeout: turnTimeout,
	}
}

// Run starts processing incoming messages
func (gs *GameServer) Run() {
	for msg := range gs.Hub.Incoming {
		gs.HandleMessage(msg.Client, msg.Message)
	}
}

// HandleMessage routes a message to the appropriate handler
func (gs *GameServer) HandleMessage(client *Client, msg ClientMessage) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	var err error

	switch msg.Type {
	case MsgJoinTable:
		err = gs.handleJoinTable(client, msg)
	case MsgLeaveSeat:
		err = gs.handleLeaveSeat(client)
	case MsgStartDeal:
		err = gs.handleStartDeal()
	case MsgPlaceBid:
		err = gs.handlePlaceBid(client, msg)
	case MsgRejoin:
		err = gs.handleRejoin(client, msg)
	case msgTurnTimeout:
		if client != nil {
			err = fmt.Errorf("%w: %q", ErrUnknownAction, msg.Type)
			break
		}
		var applied bool
		applied, err = gs.handleTurnTimeout(msg.turn)
		if !applied && err == nil {
			return
		}
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownAction, msg.Type)
	}

	if err != nil {
		gs.sendError(client, err)
		return
	}

	// Broadcast state update to everyone at the table
	gs.broadcastState()
}

func (gs *GameServer) sendError(client *Client, err error) {
	code := errorCode(err)
	if code == "internal" {
		gs.logger.Error("action failed", zap.Error(err))
	} else {
		gs.logger.Debug("action rejected", zap.String("code", code), zap.Error(err))
	}
	if client != nil {
		gs.Hub.SendToClient(client, NewErrorMessage(code, err.Error()))
	}
}

func (gs *GameServer) handleJoinTable(client *Client, msg ClientMessage) error {
	if msg.SeatIndex == nil {
		return fmt.Errorf("%w: seatIndex required", game.ErrValidation)
	}
	seat := game.Position(*msg.SeatIndex)
	if client.SeatIndex == int(seat) {
		return ErrSeatTaken
	}

	action := Action{
		Type:       ActionJoinSeat,
		Seat:       seat,
		PlayerName: msg.PlayerName,
	}
	if _, err := ApplyAction(gs.Table, action); err != nil {
		return err
	}

	// Switching seats releases the old one
	if client.SeatIndex >= 0 {
		leave := Action{Type: ActionLeaveSeat, Seat: game.Position(client.SeatIndex)}
		if _, err := ApplyAction(gs.Table, leave); err != nil {
			return err
		}
	}

	gs.Hub.SeatClient(client, int(seat))
	client.Token = gs.Table.Seats[seat].Token

	gs.logger.Info("player joined",
		zap.String("player", msg.PlayerName),
		zap.Int("seat", int(seat)),
		zap.String("phase", string(gs.Table.Phase)),
	)
	return nil
}

func (gs *GameServer) handleLeaveSeat(client *Client) error {
	if client.SeatIndex < 0 {
		return ErrNotSeated
	}

	action := Action{Type: ActionLeaveSeat, Seat: game.Position(client.SeatIndex)}
	if _, err := ApplyAction(gs.Table, action); err != nil {
		return err
	}

	gs.logger.Info("player left", zap.Int("seat", client.SeatIndex))
	gs.Hub.UnseatClient(client)
	return nil
}

func (gs *GameServer) handleStartDeal() error {
	if _, err := ApplyAction(gs.Table, Action{Type: ActionStartDeal}); err != nil {
		return err
	}

	gs.logger.Info("deal started",
		zap.Int("deal", gs.Table.Deals),
		zap.Int("dealer", int(gs.Table.Dealer)),
		zap.Int("first_bidder", int(gs.Table.Round.FirstBidder())),
	)
	gs.armTimer()
	return nil
}

func (gs *GameServer) handlePlaceBid(client *Client, msg ClientMessage) error {
	if client.SeatIndex < 0 {
		return ErrNotSeated
	}
	if msg.Bid == nil {
		return ErrMissingBid
	}

	bid, err := msg.Bid.ToBid(game.Position(client.SeatIndex))
	if err != nil {
		return err
	}
	return gs.applyBid(bid)
}

// handleTurnTimeout passes for the seat whose clock ran out. It reports
// false when the timer is stale.
func (gs *GameServer) handleTurnTimeout(turn uint64) (bool, error) {
	if turn != gs.turn || gs.Table.Phase != PhaseBidding {
		return false, nil
	}

	seat := gs.Table.Round.CurrentBidder()
	gs.logger.Info("turn timed out", zap.Int("seat", int(seat)))
	return true, gs.applyBid(bidding.NewPassBid(seat))
}

func (gs *GameServer) applyBid(bid bidding.Bid) error {
	deals := gs.Table.Deals
	if _, err := ApplyAction(gs.Table, Action{Type: ActionPlaceBid, Bid: bid}); err != nil {
		return err
	}

	gs.logger.Info("bid placed",
		zap.Int("seat", int(bid.Bidder())),
		zap.String("bid", bidding.FormatBid(bid)),
	)

	switch {
	case gs.Table.Phase == PhaseContracted:
		gs.logger.Info("contract reached", zap.Stringer("contract", gs.Table.Contract))
		gs.sendToAll(NewContractMessage(*gs.Table.Contract))
	case gs.Table.Deals != deals:
		gs.logger.Info("passed out, redealing", zap.Int("dealer", int(gs.Table.Dealer)))
		gs.sendToAll(NewPassedOutMessage(gs.Table.Dealer))
	}

	gs.armTimer()
	return nil
}

func (gs *GameServer) handleRejoin(client *Client, msg ClientMessage) error {
	seat, err := gs.Table.Rejoin(msg.Token)
	if err != nil {
		return err
	}

	// Rejoining into another seat releases the one held now
	if client.SeatIndex >= 0 && client.SeatIndex != int(seat) {
		leave := Action{Type: ActionLeaveSeat, Seat: game.Position(client.SeatIndex)}
		if _, err := ApplyAction(gs.Table, leave); err != nil {
			return err
		}
	}

	gs.Hub.SeatClient(client, int(seat))
	client.Token = msg.Token
	gs.logger.Info("player rejoined",
		zap.String("player", gs.Table.Seats[seat].Name),
		zap.Int("seat", int(seat)),
	)
	return nil
}

// armTimer restarts the turn clock for the seat to speak, or stops it when
// no auction is running.
func (gs *GameServer) armTimer() {
	if gs.timer != nil {
		gs.timer.Stop()
		gs.timer = nil
	}
	gs.turn++
	if gs.turnTimeout <= 0 || gs.Table.Phase != PhaseBidding {
		return
	}

	turn := gs.turn
	gs.timer = time.AfterFunc(gs.turnTimeout, func() {
		gs.Hub.Incoming <- &ClientMessageWithSender{
			Message: ClientMessage{Type: msgTurnTimeout, turn: turn},
		}
	})
}

// Stop cancels the turn timer.
func (gs *GameServer) Stop() {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	if gs.timer != nil {
		gs.timer.Stop()
		gs.timer = nil
	}
}

// SendState sends the current table state to one client
func (gs *GameServer) SendState(client *Client) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.Hub.SendToClient(client, NewStateUpdateMessage(gs.Table, client.SeatIndex))
}

func (gs *GameServer) sendToAll(msg ServerMessage) {
	for i := 0; i < game.NumPositions; i++ {
		gs.Hub.SendToSeat(i, msg)
	}
	for _, client := range gs.Hub.Spectators() {
		gs.Hub.SendToClient(client, msg)
	}
}

// broadcastState sends personalized state updates to each player
func (gs *GameServer) broadcastState() {
	// Send to seated players with their hand
	for i := 0; i < game.NumPositions; i++ {
		if client := gs.Hub.GetClientBySeat(i); client != nil {
			gs.Hub.SendToClient(client, NewStateUpdateMessage(gs.Table, i))
		}
	}

	// Send to spectators (no hand info)
	for _, client := range gs.Hub.Spectators() {
		gs.Hub.SendToClient(client, NewStateUpdateMessage(gs.Table, -1))
	}
}

// HandleDisconnect handles a client disconnecting
func (gs *GameServer) HandleDisconnect(client *Client) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if client.SeatIndex < 0 {
		return
	}

	seat := client.SeatIndex
	if _, err := ApplyAction(gs.Table, Action{Type: ActionDisconnect, Seat: game.Position(seat)}); err != nil {
		gs.sendError(nil, err)
		return
	}
	gs.Hub.UnseatClient(client)
	gs.logger.Info("player disconnected", zap.Int("seat", seat))

	gs.broadcastState()
}
