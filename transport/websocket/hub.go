package websocket

import (
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/doodle-backend/internal/entity"
)

// Hub keeps the live clients and queues outbound messages for them.
// Send never blocks: a client whose queue is full is dropped.
type Hub struct {
	logger *slog.Logger

	mu      sync.RWMutex
	clients map[entity.ConnectionID]*client
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:  logger.With("component", "hub"),
		clients: make(map[entity.ConnectionID]*client),
	}
}

func (that *Hub) register(c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.clients[c.id] = c
}

// unregister - closes the send queue once; the write pump then says goodbye.
func (that *Hub) unregister(id entity.ConnectionID) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if c, ok := that.clients[id]; ok {
		delete(that.clients, id)
		close(c.send)
	}
}

// Send - encodes the message and queues it for the connection.
func (that *Hub) Send(conn entity.ConnectionID, action string, payload any) {
	log := that.logger.With("method", "Send")

	data, err := encodeMessage(action, payload)
	if err != nil {
		log.Error("failed to encode message", "action", action, "error", err)
		return
	}

	that.mu.RLock()
	c, ok := that.clients[conn]
	if !ok {
		that.mu.RUnlock()
		return
	}

	select {
	case c.send <- data:
		that.mu.RUnlock()
	default:
		that.mu.RUnlock()

		log.Warn("send queue is full, dropping client", "conn", conn, "action", action)
		that.unregister(conn)
	}
}

func (that *Hub) Len() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.clients)
}

// Close drops every client.
func (that *Hub) Close() {
	that.mu.Lock()
	defer that.mu.Unlock()

	for id, c := range that.clients {
		delete(that.clients, id)
		close(c.send)
	}
}
