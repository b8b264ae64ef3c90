package realtime

import (
	"sync"

	"ghost-kitchen/internal/core/logger"

	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"
)

// sendBuffer is the per-client queue depth. When a client cannot keep up the
// message is dropped; delivery is best effort and viewers self-correct on
// their next poll cycle.
const sendBuffer = 16

// Hub broadcasts messages to every connected WebSocket client. There is no
// per-client addressing, no replay for late joiners and no acknowledgment.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]bool
}

type client struct {
	send chan []byte
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[*client]bool),
	}
}

// Broadcast fans a message out to every connected client without blocking.
func (h *Hub) Broadcast(message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		select {
		case c.send <- message:
		default:
			// Slow client; skip this message rather than stall the publisher.
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) subscribe() *client {
	c := &client{send: make(chan []byte, sendBuffer)}

	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()

	return c
}

func (h *Hub) unsubscribe(c *client) {
	h.mu.Lock()
	if h.clients[c] {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// ServeConn pumps broadcast messages to a single WebSocket connection until
// the peer disconnects. Clients never send application messages; the read
// loop exists only to detect the close.
func (h *Hub) ServeConn(conn *websocket.Conn) {
	c := h.subscribe()
	defer h.unsubscribe(c)

	logger.Get().Debug("WebSocket client connected",
		zap.Int("clients", h.ClientCount()),
	)

	go func() {
		for message := range c.send {
			if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
				conn.Close()
				return
			}
		}
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	logger.Get().Debug("WebSocket client disconnected")
}

// Handler returns the Fiber handler serving the broadcast channel.
func (h *Hub) Handler() func(*websocket.Conn) {
	return h.ServeConn
}
