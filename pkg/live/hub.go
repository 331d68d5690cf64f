package live

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// MessageType is the type of a server-to-client message.
type MessageType string

const (
	MessageRender MessageType = "render"
	MessageError  MessageType = "error"
)

// Message is sent to browsers via WebSocket.
type Message struct {
	Type  MessageType `json:"type"`
	HTML  string      `json:"html,omitempty"`
	Code  string      `json:"code,omitempty"`
	Error string      `json:"error,omitempty"`
}

// EventMessage is sent by browsers when a user interacts with an element.
type EventMessage struct {
	HID   string `json:"hid"`
	Event string `json:"event"`
	Value string `json:"value,omitempty"`
}

const writeTimeout = 5 * time.Second

// client is one websocket connection. gorilla connections allow a single
// concurrent writer, so writes go through mu.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Hub manages the websocket connections of a live server.
type Hub struct {
	clients  map[*client]bool
	mu       sync.RWMutex
	upgrader websocket.Upgrader
	logger   *slog.Logger

	// onConnect returns the first message for a new client.
	onConnect func() Message
	// onEvent handles an event message and returns an error message for
	// the sender, or nil.
	onEvent func(data []byte) *Message
}

// NewHub creates a new hub.
func NewHub(logger *slog.Logger, onConnect func() Message, onEvent func([]byte) *Message) *Hub {
	return &Hub{
		clients: make(map[*client]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // Live preview is a development tool.
			},
		},
		logger:    logger,
		onConnect: onConnect,
		onEvent:   onEvent,
	}
}

// HandleWebSocket handles WebSocket upgrade and the connection's read loop.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, req *http.Request) {
	conn, err := h.upgrader.Upgrade(w, req, nil)
	if err != nil {
		h.logger.Debug("websocket upgrade failed", "error", err)
		return
	}
	c := &client{conn: conn}

	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()
	h.logger.Debug("client connected", "remote", req.RemoteAddr, "clients", h.ClientCount())

	if h.onConnect != nil {
		h.sendTo(c, h.onConnect())
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			break
		}
		if reply := h.onEvent(data); reply != nil {
			h.sendTo(c, *reply)
		}
	}

	h.remove(c)
	h.logger.Debug("client disconnected", "remote", req.RemoteAddr)
}

// Broadcast sends a message to all connected clients.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("marshal message", "error", err)
		return
	}

	h.mu.RLock()
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if err := c.send(data); err != nil {
			h.remove(c)
		}
	}
}

func (h *Hub) sendTo(c *client, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("marshal message", "error", err)
		return
	}
	if err := c.send(data); err != nil {
		h.remove(c)
	}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	c.conn.Close()
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close closes all client connections.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		c.conn.Close()
		delete(h.clients, c)
	}
}
