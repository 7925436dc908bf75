package websocket

import (
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/doodle-backend/internal/entity"
	"golang.org/x/time/rate"
)

// client is one websocket connection. The read pump feeds the server, the
// write pump drains the send queue; each runs in its own goroutine.
type client struct {
	id      entity.ConnectionID
	conn    *websocket.Conn
	send    chan []byte
	limiter *rate.Limiter
	logger  *slog.Logger
}

func newClient(logger *slog.Logger, id entity.ConnectionID, conn *websocket.Conn, settings Settings) *client {
	return &client{
		id:      id,
		conn:    conn,
		send:    make(chan []byte, settings.SendBuffer),
		limiter: rate.NewLimiter(rate.Limit(settings.RateLimit), settings.RateBurst),
		logger:  logger.With("conn", id),
	}
}

// readPump - hands every text frame to handle until the connection fails.
func (that *client) readPump(settings Settings, handle func(id entity.ConnectionID, data []byte)) {
	log := that.logger.With("method", "readPump")

	that.conn.SetReadLimit(settings.MaxMessageSize)
	_ = that.conn.SetReadDeadline(time.Now().Add(settings.PongWait))
	that.conn.SetPongHandler(func(string) error {
		return that.conn.SetReadDeadline(time.Now().Add(settings.PongWait))
	})

	for {
		messageType, data, err := that.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("connection closed unexpectedly", "error", err)
			}
			return
		}

		if messageType != websocket.TextMessage {
			log.Debug("ignoring non-text frame", "type", messageType)
			continue
		}

		if !that.limiter.Allow() {
			log.Warn("rate limit exceeded, message dropped")
			continue
		}

		handle(that.id, data)
	}
}

// writePump - exits when the queue is closed or a write fails.
func (that *client) writePump(settings Settings) {
	log := that.logger.With("method", "writePump")

	ticker := time.NewTicker(settings.PingPeriod)
	defer func() {
		ticker.Stop()
		_ = that.conn.Close()
	}()

	for {
		select {
		case data, ok := <-that.send:
			_ = that.conn.SetWriteDeadline(time.Now().Add(settings.WriteWait))
			if !ok {
				_ = that.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := that.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Warn("failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = that.conn.SetWriteDeadline(time.Now().Add(settings.WriteWait))
			if err := that.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Debug("failed to write ping", "error", err)
				return
			}
		}
	}
}
