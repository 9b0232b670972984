package server

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"belote/game"
)

// Client represents a connected WebSocket client
type Client struct {
	Hub       *Hub
	Conn      *websocket.Conn
	Send      chan []byte
	SeatIndex int // -1 if not seated
	Token     string
}

// NewClient creates an unseated client for conn.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		Hub:       hub,
		Conn:      conn,
		Send:      make(chan []byte, 256),
		SeatIndex: -1,
	}
}

// Hub tracks the connected clients and queues their messages
type Hub struct {
	Clients  map[*Client]bool
	Seats    [game.NumPositions]*Client // Clients by seat index
	Incoming chan *ClientMessageWithSender

	// OnDisconnect runs before a client whose connection dropped is
	// unregistered.
	OnDisconnect func(*Client)

	logger *zap.Logger
	mu     sync.RWMutex
}

// ClientMessageWithSender pairs a message with its sender. Client is nil
// for messages queued by the server itself.
type ClientMessageWithSender struct {
	Client  *Client
	Message ClientMessage
}

// NewHub creates a new Hub
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		Clients:  make(map[*Client]bool),
		Incoming: make(chan *ClientMessageWithSender, 256),
		logger:   logger,
	}
}

// Register adds a client.
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Clients[client] = true
}

// Unregister removes a client and closes its send channel.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.Clients[client]; !ok {
		return
	}
	delete(h.Clients, client)
	close(client.Send)
	if client.SeatIndex >= 0 && client.SeatIndex < game.NumPositions && h.Seats[client.SeatIndex] == client {
		h.Seats[client.SeatIndex] = nil
	}
}

// SendToClient sends a message to a specific client
func (h *Hub) SendToClient(client *Client, msg ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("marshal message", zap.String("type", string(msg.Type)), zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	if !h.Clients[client] {
		return
	}
	select {
	case client.Send <- data:
	default:
		h.logger.Warn("client send buffer full", zap.Int("seat", client.SeatIndex))
	}
}

// SendToSeat sends a message to the client at a specific seat
func (h *Hub) SendToSeat(seatIndex int, msg ServerMessage) {
	if client := h.GetClientBySeat(seatIndex); client != nil {
		h.SendToClient(client, msg)
	}
}

// SeatClient assigns a client to a seat
func (h *Hub) SeatClient(client *Client, seatIndex int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	// Remove from old seat if any
	if client.SeatIndex >= 0 && client.SeatIndex < game.NumPositions {
		h.Seats[client.SeatIndex] = nil
	}

	client.SeatIndex = seatIndex
	if seatIndex >= 0 && seatIndex < game.NumPositions {
		// A rejoining client replaces a stale one.
		if old := h.Seats[seatIndex]; old != nil && old != client {
			old.SeatIndex = -1
		}
		h.Seats[seatIndex] = client
	}
}

// UnseatClient removes a client from their seat
func (h *Hub) UnseatClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if client.SeatIndex >= 0 && client.SeatIndex < game.NumPositions && h.Seats[client.SeatIndex] == client {
		h.Seats[client.SeatIndex] = nil
	}
	client.SeatIndex = -1
}

// GetClientBySeat returns the client at a seat
func (h *Hub) GetClientBySeat(seatIndex int) *Client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if seatIndex >= 0 && seatIndex < game.NumPositions {
		return h.Seats[seatIndex]
	}
	return nil
}

// Spectators returns the registered clients without a seat.
func (h *Hub) Spectators() []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	var out []*Client
	for client := range h.Clients {
		if client.SeatIndex < 0 {
			out = append(out, client)
		}
	}
	return out
}

// ReadPump pumps messages from the websocket connection to the hub
func (c *Client) ReadPump() {
	defer func() {
		if c.Hub.OnDisconnect != nil {
			c.Hub.OnDisconnect(c)
		}
		c.Hub.Unregister(c)
		c.Conn.Close()
	}()

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Warn("websocket read", zap.Error(err))
			}
			break
		}

		var clientMsg ClientMessage
		if err := json.Unmarshal(message, &clientMsg); err != nil {
			c.Hub.logger.Debug("malformed client message", zap.Error(err))
			c.Hub.SendToClient(c, NewErrorMessage("validation", "malformed message"))
			continue
		}

		c.Hub.Incoming <- &ClientMessageWithSender{
			Client:  c,
			Message: clientMsg,
		}
	}
}

// WritePump pumps messages from the hub to the websocket connection
func (c *Client) WritePump() {
	defer func() {
		c.Conn.Close()
	}()

	for {
		message, ok := <-c.Send
		if !ok {
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}
