package entity

import (
	"fmt"
	"time"
)

// Phase is the coarse lifecycle state of a room.
type Phase string

const (
	PhaseWaiting Phase = "waiting"
	PhasePlaying Phase = "playing"
	PhaseEnded   Phase = "ended"
)

func (that Phase) IsWaiting() bool {
	return that == PhaseWaiting
}

func (that Phase) IsPlaying() bool {
	return that == PhasePlaying
}

// DefaultRoomName - name given to a room created without one.
func DefaultRoomName(existingRooms int) string {
	return fmt.Sprintf("Room %d", existingRooms+1)
}

// ChatEntry is one line of the room log. Correct marks a scored guess.
type ChatEntry struct {
	ID         int64        `json:"id"`
	PlayerID   ConnectionID `json:"playerId"`
	PlayerName string       `json:"playerName"`
	Text       string       `json:"text"`
	Timestamp  time.Time    `json:"timestamp"`
	Correct    bool         `json:"isCorrect"`
}

// Stroke is a single drawing sample. It is relayed as is.
type Stroke struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Color     string  `json:"color"`
	BrushSize float64 `json:"brushSize"`
}

// RoomSummary is what the lobby sees of a room.
type RoomSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PlayerCount int    `json:"playerCount"`
	MaxPlayers  int    `json:"maxPlayers"`
	Phase       Phase  `json:"gameState"`
}

// IsJoinable reports whether the summary advertises a free seat.
func (that RoomSummary) IsJoinable() bool {
	return that.PlayerCount < that.MaxPlayers
}
