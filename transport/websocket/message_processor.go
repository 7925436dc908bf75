package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/doodle-backend/internal/apperror"
	"github.com/rocketscienceinc/doodle-backend/internal/entity"
)

// Inbound actions.
const (
	actionLobbyJoin   = "lobby:join"
	actionRoomCreate  = "room:create"
	actionRoomJoin    = "room:join"
	actionRoomLeave   = "room:leave"
	actionGameStart   = "game:start"
	actionChatSend    = "chat:send"
	actionCanvasDraw  = "canvas:draw"
	actionCanvasClear = "canvas:clear"

	actionError = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type namePayload struct {
	Name string `json:"name"`
}

type roomPayload struct {
	RoomID string `json:"roomId"`
}

type chatPayload struct {
	RoomID string `json:"roomId"`
	Text   string `json:"text"`
}

type drawPayload struct {
	RoomID string         `json:"roomId"`
	Stroke *entity.Stroke `json:"stroke"`
}

type errorPayload struct {
	Action string `json:"action"`
	Error  string `json:"error"`
}

// encodeMessage - wraps payload into the action envelope.
func encodeMessage(action string, payload any) ([]byte, error) {
	message := Message{Action: action}

	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal payload: %w", err)
		}
		message.Payload = raw
	}

	data, err := json.Marshal(message)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal message: %w", err)
	}

	return data, nil
}

// decodePayload - a missing payload decodes into the zero value.
func decodePayload(message *Message, target any) error {
	if len(message.Payload) == 0 {
		return nil
	}

	if err := json.Unmarshal(message.Payload, target); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrInvalidPayload, err)
	}

	return nil
}
