package websocket

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/doodle-backend/internal/apperror"
	"github.com/rocketscienceinc/doodle-backend/internal/entity"
)

type gateway interface {
	JoinLobby(conn entity.ConnectionID, name string) *entity.Player
	CreateRoom(conn entity.ConnectionID, name string) (string, error)
	JoinRoom(conn entity.ConnectionID, roomID string) error
	StartGame(conn entity.ConnectionID, roomID string) error
	SendMessage(conn entity.ConnectionID, roomID, text string) error
	DrawStroke(conn entity.ConnectionID, roomID string, stroke entity.Stroke) error
	ClearCanvas(conn entity.ConnectionID, roomID string) error
	LeaveRoom(conn entity.ConnectionID, roomID string) error
	Disconnect(conn entity.ConnectionID)
}

// Settings tune a single connection.
type Settings struct {
	WriteWait      time.Duration
	PongWait       time.Duration
	PingPeriod     time.Duration
	MaxMessageSize int64
	SendBuffer     int
	RateLimit      float64
	RateBurst      int
	AllowedOrigins []string
}

func DefaultSettings() Settings {
	return Settings{
		WriteWait:      10 * time.Second,
		PongWait:       60 * time.Second,
		PingPeriod:     54 * time.Second,
		MaxMessageSize: 8192,
		SendBuffer:     256,
		RateLimit:      60,
		RateBurst:      120,
		AllowedOrigins: []string{"http://localhost:3000"},
	}
}

type Server struct {
	logger   *slog.Logger
	hub      *Hub
	gateway  gateway
	settings Settings
	upgrader websocket.Upgrader
	newID    func() string

	handlers map[string]func(conn entity.ConnectionID, message *Message) error
}

func New(logger *slog.Logger, hub *Hub, gateway gateway, settings Settings) *Server {
	server := &Server{
		logger:   logger.With("component", "websocket"),
		hub:      hub,
		gateway:  gateway,
		settings: settings,
		newID:    uuid.NewString,

		handlers: make(map[string]func(entity.ConnectionID, *Message) error),
	}

	server.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     server.checkOrigin,
	}

	server.handlers[actionLobbyJoin] = server.handleLobbyJoin
	server.handlers[actionRoomCreate] = server.handleRoomCreate
	server.handlers[actionRoomJoin] = server.handleRoomJoin
	server.handlers[actionRoomLeave] = server.handleRoomLeave
	server.handlers[actionGameStart] = server.handleGameStart
	server.handlers[actionChatSend] = server.handleChatSend
	server.handlers[actionCanvasDraw] = server.handleCanvasDraw
	server.handlers[actionCanvasClear] = server.handleCanvasClear

	return server
}

// ServeHTTP - upgrades the request and serves the connection until it closes.
func (that *Server) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Warn("failed to upgrade connection", "error", err)
		return
	}

	id := entity.ConnectionID(that.newID())
	c := newClient(that.logger, id, conn, that.settings)

	that.hub.register(c)
	log.Info("WebSocket connection established", "conn", id)

	go c.writePump(that.settings)
	c.readPump(that.settings, that.handleMessage)

	that.hub.unregister(id)
	that.gateway.Disconnect(id)

	log.Info("WebSocket connection closed", "conn", id)
}

// handleMessage - malformed frames are logged and skipped, rejected intents are
// reported back to the sender.
func (that *Server) handleMessage(conn entity.ConnectionID, data []byte) {
	log := that.logger.With("method", "handleMessage", "conn", conn)

	var message Message
	if err := json.Unmarshal(data, &message); err != nil {
		log.Warn("failed to unmarshal message", "error", err)
		return
	}

	handler, ok := that.handlers[message.Action]
	if !ok {
		log.Warn("unknown action", "action", message.Action)
		that.sendError(conn, message.Action, apperror.ErrUnknownAction)
		return
	}

	err := handler(conn, &message)
	switch {
	case err == nil:
	case errors.Is(err, apperror.ErrNotDrawer):
		log.Debug("drawing dropped", "action", message.Action)
	default:
		log.Info("intent rejected", "action", message.Action, "error", err)
		that.sendError(conn, message.Action, err)
	}
}

func (that *Server) sendError(conn entity.ConnectionID, action string, err error) {
	that.hub.Send(conn, actionError, errorPayload{Action: action, Error: err.Error()})
}

// checkOrigin - requests without an Origin header do not come from a browser.
func (that *Server) checkOrigin(req *http.Request) bool {
	origin := req.Header.Get("Origin")
	if origin == "" {
		return true
	}

	return slices.Contains(that.settings.AllowedOrigins, "*") ||
		slices.Contains(that.settings.AllowedOrigins, origin)
}
