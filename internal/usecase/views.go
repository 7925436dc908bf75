package usecase

import (
	"github.com/rocketscienceinc/doodle-backend/internal/entity"
	"github.com/rocketscienceinc/doodle-backend/internal/game"
)

// Outbound actions.
const (
	ActionLobbyData        = "lobby:data"
	ActionLobbyRooms       = "lobby:rooms"
	ActionRoomJoined       = "room:joined"
	ActionRoomPlayerJoined = "room:player-joined"
	ActionRoomPlayerLeft   = "room:player-left"
	ActionRoomPlayers      = "room:players"
	ActionGameStarted      = "game:started"
	ActionGameTurn         = "game:turn"
	ActionGameTick         = "game:tick"
	ActionGameCorrectGuess = "game:correct-guess"
	ActionGameEnded        = "game:ended"
	ActionChatMessage      = "chat:message"
	ActionCanvasStroke     = "canvas:stroke"
	ActionCanvasCleared    = "canvas:cleared"
)

type LobbyData struct {
	Player entity.Player        `json:"player"`
	Rooms  []entity.RoomSummary `json:"rooms"`
}

type LobbyRooms struct {
	Rooms []entity.RoomSummary `json:"rooms"`
}

// RoomView is the state a member receives when entering a room.
type RoomView struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	Players       []entity.Player     `json:"players"`
	MaxPlayers    int                 `json:"maxPlayers"`
	Phase         entity.Phase        `json:"gameState"`
	CurrentDrawer entity.ConnectionID `json:"currentDrawer,omitempty"`
	CurrentWord   string              `json:"currentWord,omitempty"`
	Round         int                 `json:"round"`
	MaxRounds     int                 `json:"maxRounds"`
	TimeLeft      int                 `json:"timeLeft"`
	Messages      []entity.ChatEntry  `json:"messages"`
	DrawingData   []entity.Stroke     `json:"drawingData"`
}

type RoomJoined struct {
	Room RoomView `json:"room"`
}

type PlayerJoined struct {
	Player entity.Player `json:"player"`
}

type PlayerLeft struct {
	PlayerID entity.ConnectionID `json:"playerId"`
}

type PlayersUpdate struct {
	Players []entity.Player `json:"players"`
}

// TurnView is sent for game:started and game:turn.
type TurnView struct {
	CurrentDrawer entity.ConnectionID `json:"currentDrawer"`
	CurrentWord   string              `json:"currentWord,omitempty"`
	Round         int                 `json:"round"`
	MaxRounds     int                 `json:"maxRounds"`
	TimeLeft      int                 `json:"timeLeft"`
}

type TimeUpdate struct {
	TimeLeft int `json:"timeLeft"`
}

type ChatMessage struct {
	Message entity.ChatEntry `json:"message"`
}

type CorrectGuessView struct {
	PlayerID entity.ConnectionID `json:"playerId"`
	Player   string              `json:"player"`
	Word     string              `json:"word"`
}

type GameEndedView struct {
	Winner  *entity.Player  `json:"winner"`
	Players []entity.Player `json:"players"`
}

type StrokeView struct {
	Stroke entity.Stroke `json:"stroke"`
}

type CanvasClearedView struct{}

// maskWord - the secret word is only shown to the drawer.
func maskWord(word string, drawer, viewer entity.ConnectionID) string {
	if viewer != drawer {
		return ""
	}

	return word
}

func newRoomView(snapshot game.RoomSnapshot, viewer entity.ConnectionID) RoomView {
	return RoomView{
		ID:            snapshot.ID,
		Name:          snapshot.Name,
		Players:       snapshot.Players,
		MaxPlayers:    snapshot.Capacity,
		Phase:         snapshot.Phase,
		CurrentDrawer: snapshot.Drawer,
		CurrentWord:   maskWord(snapshot.Word, snapshot.Drawer, viewer),
		Round:         snapshot.Round,
		MaxRounds:     snapshot.MaxRounds,
		TimeLeft:      snapshot.TimeLeft,
		Messages:      snapshot.Messages,
		DrawingData:   snapshot.Strokes,
	}
}
