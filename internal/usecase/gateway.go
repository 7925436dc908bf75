package usecase

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/rocketscienceinc/doodle-backend/internal/apperror"
	"github.com/rocketscienceinc/doodle-backend/internal/entity"
	"github.com/rocketscienceinc/doodle-backend/internal/game"
)

const defaultMaxMessageLength = 200

// Sender delivers one outbound message to a connection. It must not block.
type Sender interface {
	Send(conn entity.ConnectionID, action string, payload any)
}

type Options struct {
	Settings         game.Settings
	Words            game.WordSource
	MaxMessageLength int

	// Scheduler defaults to a SerialScheduler bound to the gateway lock.
	Scheduler game.Scheduler
	Now       func() time.Time
}

// Gateway turns connection intents into room operations and room events into
// outbound messages. Intents and timer callbacks are serialized by one lock.
type Gateway struct {
	mu     sync.Mutex
	logger *slog.Logger
	sender Sender

	registry  *game.Registry
	directory *game.Directory

	playerRoom map[entity.ConnectionID]string
	lobby      map[entity.ConnectionID]struct{}

	maxMessageLength int
}

func NewGateway(logger *slog.Logger, sender Sender, opts Options) *Gateway {
	gateway := &Gateway{
		logger:           logger.With("component", "gateway"),
		sender:           sender,
		registry:         game.NewRegistry(),
		playerRoom:       make(map[entity.ConnectionID]string),
		lobby:            make(map[entity.ConnectionID]struct{}),
		maxMessageLength: opts.MaxMessageLength,
	}

	if gateway.maxMessageLength <= 0 {
		gateway.maxMessageLength = defaultMaxMessageLength
	}

	scheduler := opts.Scheduler
	if scheduler == nil {
		scheduler = game.NewSerialScheduler(&gateway.mu)
	}

	words := opts.Words
	if words == nil {
		words = game.NewFixedList(nil)
	}

	gateway.directory = game.NewDirectory(opts.Settings.WithDefaults(), game.Deps{
		Players:   gateway.registry,
		Words:     words,
		Scheduler: scheduler,
		Notifier:  gateway,
		Now:       opts.Now,
	})

	return gateway
}

// JoinLobby - registers the connection under name and subscribes it to lobby updates.
// A connection that was in a room leaves it first.
func (that *Gateway) JoinLobby(conn entity.ConnectionID, name string) *entity.Player {
	that.mu.Lock()
	defer that.mu.Unlock()

	log := that.logger.With("method", "JoinLobby")

	that.leaveCurrentRoom(conn)

	player := that.registry.Register(conn, name)
	that.lobby[conn] = struct{}{}

	that.sender.Send(conn, ActionLobbyData, LobbyData{Player: *player, Rooms: that.directory.ListSummaries()})
	that.broadcastLobby()

	log.Info("player joined the lobby", "conn", conn, "name", player.Name)

	return player
}

func (that *Gateway) CreateRoom(conn entity.ConnectionID, name string) (string, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	log := that.logger.With("method", "CreateRoom")

	if err := that.checkCanEnter(conn); err != nil {
		return "", err
	}

	room := that.directory.Create(strings.TrimSpace(name))
	if err := room.AddMember(conn); err != nil {
		that.directory.Remove(room.ID())
		return "", fmt.Errorf("failed to add the creator: %w", err)
	}

	that.enterRoom(conn, room)
	that.broadcastLobby()

	log.Info("room created", "conn", conn, "room", room.ID(), "name", room.Name())

	return room.ID(), nil
}

func (that *Gateway) JoinRoom(conn entity.ConnectionID, roomID string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	log := that.logger.With("method", "JoinRoom")

	if err := that.checkCanEnter(conn); err != nil {
		return err
	}

	room, ok := that.directory.Get(roomID)
	if !ok {
		return apperror.ErrRoomNotFound
	}

	if !room.Summary().IsJoinable() {
		return apperror.ErrRoomFull
	}

	if err := room.AddMember(conn); err != nil {
		return err
	}

	that.enterRoom(conn, room)

	if player, ok := that.registry.Get(conn); ok {
		that.sendToRoom(room, ActionRoomPlayerJoined, PlayerJoined{Player: *player}, conn)
	}

	that.broadcastLobby()

	log.Info("player joined a room", "conn", conn, "room", roomID)

	return nil
}

func (that *Gateway) StartGame(conn entity.ConnectionID, roomID string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	log := that.logger.With("method", "StartGame")

	room, err := that.memberRoom(conn, roomID)
	if err != nil {
		return err
	}

	if err = room.Start(); err != nil {
		return err
	}

	that.broadcastLobby()

	log.Info("game started", "conn", conn, "room", roomID, "players", room.MemberCount())

	return nil
}

// SendMessage - chat lines double as guesses. Text longer than the limit is cut.
func (that *Gateway) SendMessage(conn entity.ConnectionID, roomID, text string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, err := that.memberRoom(conn, roomID)
	if err != nil {
		return err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return apperror.ErrEmptyMessage
	}

	if utf8.RuneCountInString(text) > that.maxMessageLength {
		text = string([]rune(text)[:that.maxMessageLength])
	}

	entry, err := room.SubmitGuess(conn, text)
	if err != nil {
		return fmt.Errorf("failed to submit guess: %w", err)
	}

	if entry.Correct {
		that.logger.With("method", "SendMessage").Info("word guessed", "conn", conn, "room", roomID)
	}

	return nil
}

// DrawStroke - returns ErrNotDrawer when the stroke was dropped.
func (that *Gateway) DrawStroke(conn entity.ConnectionID, roomID string, stroke entity.Stroke) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, ok := that.directory.Get(roomID)
	if !ok {
		return apperror.ErrRoomNotFound
	}

	if !room.SubmitStroke(conn, stroke) {
		return apperror.ErrNotDrawer
	}

	return nil
}

// ClearCanvas - returns ErrNotDrawer when the request was dropped.
func (that *Gateway) ClearCanvas(conn entity.ConnectionID, roomID string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, ok := that.directory.Get(roomID)
	if !ok {
		return apperror.ErrRoomNotFound
	}

	if !room.ClearStrokes(conn) {
		return apperror.ErrNotDrawer
	}

	return nil
}

// LeaveRoom - the player goes back to the lobby. An emptied room is destroyed.
func (that *Gateway) LeaveRoom(conn entity.ConnectionID, roomID string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	log := that.logger.With("method", "LeaveRoom")

	if current, ok := that.playerRoom[conn]; !ok || current != roomID {
		return apperror.ErrNotInRoom
	}

	that.leaveCurrentRoom(conn)
	that.lobby[conn] = struct{}{}

	if player, ok := that.registry.Get(conn); ok {
		that.sender.Send(conn, ActionLobbyData, LobbyData{Player: *player, Rooms: that.directory.ListSummaries()})
	}

	that.broadcastLobby()

	log.Info("player left a room", "conn", conn, "room", roomID)

	return nil
}

// Disconnect - forgets the connection. Room removal happens before the player
// record is dropped so no room ever references an unknown player.
func (that *Gateway) Disconnect(conn entity.ConnectionID) {
	that.mu.Lock()
	defer that.mu.Unlock()

	log := that.logger.With("method", "Disconnect")

	_, registered := that.registry.Get(conn)
	left := that.leaveCurrentRoom(conn)

	delete(that.lobby, conn)
	that.registry.Remove(conn)

	if registered || left {
		that.broadcastLobby()
	}

	log.Info("connection closed", "conn", conn)
}

// Rooms returns the lobby listing.
func (that *Gateway) Rooms() []entity.RoomSummary {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.directory.ListSummaries()
}

// Close stops every room timer. Intents received afterwards find no rooms.
func (that *Gateway) Close() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.directory.Close()
	that.playerRoom = make(map[entity.ConnectionID]string)
}

// Notify - fans room events out to the room members. Called with the lock held.
func (that *Gateway) Notify(roomID string, event game.Event) {
	room, ok := that.directory.Get(roomID)
	if !ok {
		return
	}

	switch e := event.(type) {
	case game.GameStarted:
		that.sendTurn(room, ActionGameStarted, TurnView{
			CurrentDrawer: e.Drawer,
			CurrentWord:   e.Word,
			Round:         e.Round,
			MaxRounds:     e.MaxRounds,
			TimeLeft:      e.TimeLeft,
		})
	case game.TurnChanged:
		that.sendTurn(room, ActionGameTurn, TurnView{
			CurrentDrawer: e.Drawer,
			CurrentWord:   e.Word,
			Round:         e.Round,
			MaxRounds:     e.MaxRounds,
			TimeLeft:      e.TimeLeft,
		})
	case game.TimeTick:
		that.sendToRoom(room, ActionGameTick, TimeUpdate{TimeLeft: e.TimeLeft}, "")
	case game.ChatPosted:
		that.sendToRoom(room, ActionChatMessage, ChatMessage{Message: e.Entry}, "")
	case game.CorrectGuess:
		that.sendToRoom(room, ActionGameCorrectGuess, CorrectGuessView{
			PlayerID: e.PlayerID,
			Player:   e.PlayerName,
			Word:     e.Word,
		}, "")
	case game.ScoresUpdated:
		that.sendToRoom(room, ActionRoomPlayers, PlayersUpdate{Players: e.Players}, "")
	case game.GameEnded:
		that.sendToRoom(room, ActionGameEnded, GameEndedView{Winner: e.Winner, Players: e.Players}, "")
		that.broadcastLobby()
	case game.StrokeDrawn:
		that.sendToRoom(room, ActionCanvasStroke, StrokeView{Stroke: e.Stroke}, e.By)
	case game.CanvasCleared:
		that.sendToRoom(room, ActionCanvasCleared, CanvasClearedView{}, e.By)
	default:
		that.logger.With("method", "Notify").Warn("unhandled room event", "type", fmt.Sprintf("%T", event))
	}
}

func (that *Gateway) checkCanEnter(conn entity.ConnectionID) error {
	if _, ok := that.registry.Get(conn); !ok {
		return apperror.ErrPlayerNotRegistered
	}

	if _, ok := that.playerRoom[conn]; ok {
		return apperror.ErrAlreadyInRoom
	}

	return nil
}

func (that *Gateway) memberRoom(conn entity.ConnectionID, roomID string) (*game.Room, error) {
	room, ok := that.directory.Get(roomID)
	if !ok {
		return nil, apperror.ErrRoomNotFound
	}

	if !room.IsMember(conn) {
		return nil, apperror.ErrNotInRoom
	}

	return room, nil
}

func (that *Gateway) enterRoom(conn entity.ConnectionID, room *game.Room) {
	that.playerRoom[conn] = room.ID()
	delete(that.lobby, conn)

	that.sender.Send(conn, ActionRoomJoined, RoomJoined{Room: newRoomView(room.Snapshot(), conn)})
}

// leaveCurrentRoom - removes conn from its room, tells the others and destroys
// the room when it is left empty. Reports whether conn was in a room.
func (that *Gateway) leaveCurrentRoom(conn entity.ConnectionID) bool {
	roomID, ok := that.playerRoom[conn]
	if !ok {
		return false
	}

	delete(that.playerRoom, conn)

	room, ok := that.directory.Get(roomID)
	if !ok {
		return true
	}

	// the others hear about the departure before any turn handover it causes
	that.sendToRoom(room, ActionRoomPlayerLeft, PlayerLeft{PlayerID: conn}, conn)
	room.RemoveMember(conn)

	if room.IsEmpty() {
		that.directory.Remove(roomID)
		that.logger.With("method", "leaveCurrentRoom").Info("room destroyed", "room", roomID)
	}

	return true
}

func (that *Gateway) sendTurn(room *game.Room, action string, view TurnView) {
	for _, member := range room.Members() {
		personal := view
		personal.CurrentWord = maskWord(view.CurrentWord, view.CurrentDrawer, member)

		that.sender.Send(member, action, personal)
	}
}

// sendToRoom - except may be empty.
func (that *Gateway) sendToRoom(room *game.Room, action string, payload any, except entity.ConnectionID) {
	for _, member := range room.Members() {
		if member != except {
			that.sender.Send(member, action, payload)
		}
	}
}

func (that *Gateway) broadcastLobby() {
	payload := LobbyRooms{Rooms: that.directory.ListSummaries()}
	for conn := range that.lobby {
		that.sender.Send(conn, ActionLobbyRooms, payload)
	}
}
