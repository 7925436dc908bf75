package websocket

import (
	"fmt"

	"github.com/rocketscienceinc/doodle-backend/internal/apperror"
	"github.com/rocketscienceinc/doodle-backend/internal/entity"
)

func (that *Server) handleLobbyJoin(conn entity.ConnectionID, msg *Message) error {
	var payload namePayload
	if err := decodePayload(msg, &payload); err != nil {
		return err
	}

	that.gateway.JoinLobby(conn, payload.Name)

	return nil
}

func (that *Server) handleRoomCreate(conn entity.ConnectionID, msg *Message) error {
	var payload namePayload
	if err := decodePayload(msg, &payload); err != nil {
		return err
	}

	if _, err := that.gateway.CreateRoom(conn, payload.Name); err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}

	return nil
}

func (that *Server) handleRoomJoin(conn entity.ConnectionID, msg *Message) error {
	roomID, err := decodeRoomID(msg)
	if err != nil {
		return err
	}

	return that.gateway.JoinRoom(conn, roomID)
}

func (that *Server) handleRoomLeave(conn entity.ConnectionID, msg *Message) error {
	roomID, err := decodeRoomID(msg)
	if err != nil {
		return err
	}

	return that.gateway.LeaveRoom(conn, roomID)
}

func (that *Server) handleGameStart(conn entity.ConnectionID, msg *Message) error {
	roomID, err := decodeRoomID(msg)
	if err != nil {
		return err
	}

	return that.gateway.StartGame(conn, roomID)
}

func (that *Server) handleChatSend(conn entity.ConnectionID, msg *Message) error {
	var payload chatPayload
	if err := decodePayload(msg, &payload); err != nil {
		return err
	}

	if payload.RoomID == "" {
		return fmt.Errorf("%w: roomId is required", apperror.ErrInvalidPayload)
	}

	return that.gateway.SendMessage(conn, payload.RoomID, payload.Text)
}

func (that *Server) handleCanvasDraw(conn entity.ConnectionID, msg *Message) error {
	var payload drawPayload
	if err := decodePayload(msg, &payload); err != nil {
		return err
	}

	if payload.RoomID == "" || payload.Stroke == nil {
		return fmt.Errorf("%w: roomId and stroke are required", apperror.ErrInvalidPayload)
	}

	return that.gateway.DrawStroke(conn, payload.RoomID, *payload.Stroke)
}

func (that *Server) handleCanvasClear(conn entity.ConnectionID, msg *Message) error {
	roomID, err := decodeRoomID(msg)
	if err != nil {
		return err
	}

	return that.gateway.ClearCanvas(conn, roomID)
}

func decodeRoomID(msg *Message) (string, error) {
	var payload roomPayload
	if err := decodePayload(msg, &payload); err != nil {
		return "", err
	}

	if payload.RoomID == "" {
		return "", fmt.Errorf("%w: roomId is required", apperror.ErrInvalidPayload)
	}

	return payload.RoomID, nil
}
