package apperror

import "errors"

// Rejected intents. They are reported back to the connection that sent the intent.
var (
	ErrRoomNotFound        = errors.New("room not found")
	ErrRoomFull            = errors.New("room full")
	ErrNotEnoughPlayers    = errors.New("not enough players to start")
	ErrGameAlreadyStarted  = errors.New("game already started")
	ErrNotDrawer           = errors.New("only the current drawer can draw")
	ErrPlayerNotRegistered = errors.New("player is not registered")
	ErrNotInRoom           = errors.New("player is not in the room")
	ErrAlreadyInRoom       = errors.New("player is already in a room")
	ErrEmptyMessage        = errors.New("message is empty")
	ErrUnknownAction       = errors.New("unknown action")
	ErrInvalidPayload      = errors.New("invalid payload")
)
