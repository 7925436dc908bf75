package game

import "github.com/rocketscienceinc/doodle-backend/internal/entity"

// Event is something a room reports to the people in it.
type Event interface {
	event()
}

// Notifier receives room events in the order the room produced them.
type Notifier interface {
	Notify(roomID string, event Event)
}

// GameStarted is emitted once, when the first turn begins.
type GameStarted struct {
	Drawer    entity.ConnectionID
	Word      string
	Round     int
	MaxRounds int
	TimeLeft  int
}

// TurnChanged carries the secret word. Only the drawer may see it.
type TurnChanged struct {
	Drawer    entity.ConnectionID
	Word      string
	Round     int
	MaxRounds int
	TimeLeft  int
}

type TimeTick struct {
	TimeLeft int
}

type ChatPosted struct {
	Entry entity.ChatEntry
}

type CorrectGuess struct {
	PlayerID   entity.ConnectionID
	PlayerName string
	Word       string
}

type ScoresUpdated struct {
	Players []entity.Player
}

// GameEnded - Winner is nil only when the room had nobody left to rank.
type GameEnded struct {
	Winner  *entity.Player
	Players []entity.Player
}

type StrokeDrawn struct {
	By     entity.ConnectionID
	Stroke entity.Stroke
}

type CanvasCleared struct {
	By entity.ConnectionID
}

func (GameStarted) event()   {}
func (TurnChanged) event()   {}
func (TimeTick) event()      {}
func (ChatPosted) event()    {}
func (CorrectGuess) event()  {}
func (ScoresUpdated) event() {}
func (GameEnded) event()     {}
func (StrokeDrawn) event()   {}
func (CanvasCleared) event() {}
