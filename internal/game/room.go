package game

import (
	"strings"
	"time"

	"github.com/rocketscienceinc/doodle-backend/internal/apperror"
	"github.com/rocketscienceinc/doodle-backend/internal/entity"
)

const (
	GuesserPoints = 100
	DrawerPoints  = 50
)

// Settings are the per-room game rules.
type Settings struct {
	Capacity    int
	MaxRounds   int
	TurnSeconds int
	MinPlayers  int
	GraceDelay  time.Duration
}

func DefaultSettings() Settings {
	return Settings{
		Capacity:    8,
		MaxRounds:   3,
		TurnSeconds: 60,
		MinPlayers:  2,
		GraceDelay:  2 * time.Second,
	}
}

// WithDefaults - rules left unset take their DefaultSettings value. A zero
// GraceDelay is kept: the turn moves on right after a correct guess.
func (that Settings) WithDefaults() Settings {
	defaults := DefaultSettings()

	if that.Capacity <= 0 {
		that.Capacity = defaults.Capacity
	}
	if that.MaxRounds <= 0 {
		that.MaxRounds = defaults.MaxRounds
	}
	if that.TurnSeconds <= 0 {
		that.TurnSeconds = defaults.TurnSeconds
	}
	if that.MinPlayers <= 0 {
		that.MinPlayers = defaults.MinPlayers
	}
	if that.GraceDelay < 0 {
		that.GraceDelay = defaults.GraceDelay
	}

	return that
}

// Deps are the collaborators a room is built with.
type Deps struct {
	Players   PlayerLookup
	Words     WordSource
	Scheduler Scheduler
	Notifier  Notifier
	Now       func() time.Time
}

// Room is one game session. It is not safe for concurrent use: every call,
// including timer callbacks delivered by the scheduler, must be serialized by the owner.
type Room struct {
	id       string
	name     string
	settings Settings
	deps     Deps

	members  []entity.ConnectionID
	phase    entity.Phase
	round    int
	drawer   entity.ConnectionID
	word     string
	timeLeft int
	messages []entity.ChatEntry
	strokes  []entity.Stroke

	// turn changes every time a turn begins or the room stops its timers;
	// delayed callbacks compare against it
	turn      uint64
	closed    bool
	guessed   bool
	countdown Timer
	grace     Timer
	lastEntry int64
}

// RoomSnapshot is the full state handed to a player joining the room.
type RoomSnapshot struct {
	ID        string
	Name      string
	Players   []entity.Player
	Capacity  int
	Phase     entity.Phase
	Drawer    entity.ConnectionID
	Word      string
	Round     int
	MaxRounds int
	TimeLeft  int
	Messages  []entity.ChatEntry
	Strokes   []entity.Stroke
}

func NewRoom(id, name string, settings Settings, deps Deps) *Room {
	if deps.Now == nil {
		deps.Now = time.Now
	}

	return &Room{
		id:       id,
		name:     name,
		settings: settings,
		deps:     deps,
		phase:    entity.PhaseWaiting,
		timeLeft: settings.TurnSeconds,
	}
}

func (that *Room) ID() string                  { return that.id }
func (that *Room) Name() string                { return that.name }
func (that *Room) Phase() entity.Phase         { return that.phase }
func (that *Room) Round() int                  { return that.round }
func (that *Room) Drawer() entity.ConnectionID { return that.drawer }
func (that *Room) Word() string                { return that.word }
func (that *Room) TimeLeft() int               { return that.timeLeft }
func (that *Room) Capacity() int               { return that.settings.Capacity }
func (that *Room) MemberCount() int            { return len(that.members) }
func (that *Room) IsEmpty() bool               { return len(that.members) == 0 }

func (that *Room) Members() []entity.ConnectionID {
	members := make([]entity.ConnectionID, len(that.members))
	copy(members, that.members)

	return members
}

func (that *Room) IsMember(id entity.ConnectionID) bool {
	return that.indexOf(id) >= 0
}

func (that *Room) Strokes() []entity.Stroke {
	strokes := make([]entity.Stroke, len(that.strokes))
	copy(strokes, that.strokes)

	return strokes
}

func (that *Room) Messages() []entity.ChatEntry {
	messages := make([]entity.ChatEntry, len(that.messages))
	copy(messages, that.messages)

	return messages
}

// AddMember - appends the player to the turn order.
func (that *Room) AddMember(id entity.ConnectionID) error {
	if that.IsMember(id) {
		return apperror.ErrAlreadyInRoom
	}

	if len(that.members) >= that.settings.Capacity {
		return apperror.ErrRoomFull
	}

	that.members = append(that.members, id)

	return nil
}

// RemoveMember - a departing drawer hands the turn to whoever followed them.
// Returns false when the player was not a member.
func (that *Room) RemoveMember(id entity.ConnectionID) bool {
	idx := that.indexOf(id)
	if idx < 0 {
		return false
	}

	that.members = append(that.members[:idx], that.members[idx+1:]...)

	if len(that.members) == 0 {
		that.stopTimers()
		that.turn++
		if that.phase.IsPlaying() {
			that.drawer = ""
		}
		return true
	}

	if that.phase.IsPlaying() && that.drawer == id {
		// the follower has shifted into the departed drawer's slot
		that.rotateTo(idx)
	}

	return true
}

// Start - begins the first turn with the first member as drawer.
func (that *Room) Start() error {
	if !that.phase.IsWaiting() {
		return apperror.ErrGameAlreadyStarted
	}

	if len(that.members) < that.minPlayers() {
		return apperror.ErrNotEnoughPlayers
	}

	that.phase = entity.PhasePlaying
	that.round = 1
	that.beginTurn(that.members[0])

	that.notify(GameStarted{
		Drawer:    that.drawer,
		Word:      that.word,
		Round:     that.round,
		MaxRounds: that.settings.MaxRounds,
		TimeLeft:  that.timeLeft,
	})

	return nil
}

// AdvanceTurn - passes the drawing to the next member in turn order.
// Does nothing unless a game is being played by at least one member.
func (that *Room) AdvanceTurn() {
	if !that.phase.IsPlaying() || len(that.members) == 0 {
		return
	}

	that.rotateTo(that.indexOf(that.drawer) + 1)
}

// rotateTo - an index past the last member wraps to the first one and starts a new round.
func (that *Room) rotateTo(next int) {
	that.stopTimers()

	switch {
	case next >= len(that.members):
		next = 0
		that.round++
	case next < 0:
		next = 0
	}

	if that.round > that.settings.MaxRounds {
		that.End()
		return
	}

	that.beginTurn(that.members[next])

	that.notify(TurnChanged{
		Drawer:    that.drawer,
		Word:      that.word,
		Round:     that.round,
		MaxRounds: that.settings.MaxRounds,
		TimeLeft:  that.timeLeft,
	})
}

func (that *Room) beginTurn(drawer entity.ConnectionID) {
	that.turn++
	that.drawer = drawer
	that.word = that.deps.Words.Next()
	that.timeLeft = that.settings.TurnSeconds
	that.strokes = nil
	that.guessed = false

	that.startCountdown()
}

// End - finishes the game and announces the winner. Only a game being played can end.
func (that *Room) End() {
	if !that.phase.IsPlaying() {
		return
	}

	that.stopTimers()
	that.phase = entity.PhaseEnded
	that.word = ""
	that.drawer = ""

	roster := that.roster()

	var winner *entity.Player
	for _, player := range roster {
		// strictly greater keeps the earliest joiner on ties
		if winner == nil || player.Score > winner.Score {
			leader := player
			winner = &leader
		}
	}

	that.notify(GameEnded{Winner: winner, Players: roster})
}

// SubmitGuess - logs the message and scores it when it names the word.
// The first correct guess of a turn closes it after the grace delay.
func (that *Room) SubmitGuess(id entity.ConnectionID, text string) (entity.ChatEntry, error) {
	if !that.IsMember(id) {
		return entity.ChatEntry{}, apperror.ErrNotInRoom
	}

	that.lastEntry++
	entry := entity.ChatEntry{
		ID:        that.lastEntry,
		PlayerID:  id,
		Text:      text,
		Timestamp: that.deps.Now(),
	}

	guesser, _ := that.deps.Players.Get(id)
	if guesser != nil {
		entry.PlayerName = guesser.Name
	}

	correct := that.phase.IsPlaying() &&
		!that.guessed &&
		id != that.drawer &&
		normalizeGuess(text) == normalizeGuess(that.word)

	entry.Correct = correct
	that.messages = append(that.messages, entry)

	that.notify(ChatPosted{Entry: entry})

	if !correct {
		return entry, nil
	}

	that.guessed = true
	if guesser != nil {
		guesser.AddScore(GuesserPoints)
	}
	if drawer, ok := that.deps.Players.Get(that.drawer); ok {
		drawer.AddScore(DrawerPoints)
	}

	// the clock stops while the answer is on screen
	stopTimer(that.countdown)
	that.countdown = nil

	that.notify(CorrectGuess{PlayerID: id, PlayerName: entry.PlayerName, Word: that.word})
	that.notify(ScoresUpdated{Players: that.roster()})

	that.scheduleAdvance()

	return entry, nil
}

// SubmitStroke - only the drawer of a game in progress may draw.
func (that *Room) SubmitStroke(id entity.ConnectionID, stroke entity.Stroke) bool {
	if !that.canDraw(id) {
		return false
	}

	that.strokes = append(that.strokes, stroke)
	that.notify(StrokeDrawn{By: id, Stroke: stroke})

	return true
}

func (that *Room) ClearStrokes(id entity.ConnectionID) bool {
	if !that.canDraw(id) {
		return false
	}

	that.strokes = nil
	that.notify(CanvasCleared{By: id})

	return true
}

func (that *Room) Snapshot() RoomSnapshot {
	return RoomSnapshot{
		ID:        that.id,
		Name:      that.name,
		Players:   that.roster(),
		Capacity:  that.settings.Capacity,
		Phase:     that.phase,
		Drawer:    that.drawer,
		Word:      that.word,
		Round:     that.round,
		MaxRounds: that.settings.MaxRounds,
		TimeLeft:  that.timeLeft,
		Messages:  that.Messages(),
		Strokes:   that.Strokes(),
	}
}

func (that *Room) Summary() entity.RoomSummary {
	return entity.RoomSummary{
		ID:          that.id,
		Name:        that.name,
		PlayerCount: len(that.members),
		MaxPlayers:  that.settings.Capacity,
		Phase:       that.phase,
	}
}

// Close stops every timer the room owns. Callbacks already fired and waiting
// on the session lock find the room closed and do nothing.
func (that *Room) Close() {
	that.closed = true
	that.turn++
	that.stopTimers()
}

func (that *Room) startCountdown() {
	stopTimer(that.countdown)

	turn := that.turn
	that.countdown = that.deps.Scheduler.AfterFunc(time.Second, func() {
		that.tick(turn)
	})
}

func (that *Room) tick(turn uint64) {
	if that.closed || turn != that.turn || !that.phase.IsPlaying() || that.guessed {
		return
	}

	that.countdown = nil
	that.timeLeft--
	that.notify(TimeTick{TimeLeft: that.timeLeft})

	if that.timeLeft <= 0 {
		that.AdvanceTurn()
		return
	}

	that.countdown = that.deps.Scheduler.AfterFunc(time.Second, func() {
		that.tick(turn)
	})
}

func (that *Room) scheduleAdvance() {
	stopTimer(that.grace)

	turn := that.turn
	that.grace = that.deps.Scheduler.AfterFunc(that.settings.GraceDelay, func() {
		if that.closed || turn != that.turn {
			return
		}

		that.grace = nil
		that.AdvanceTurn()
	})
}

func (that *Room) stopTimers() {
	stopTimer(that.countdown)
	stopTimer(that.grace)
	that.countdown = nil
	that.grace = nil
}

func (that *Room) canDraw(id entity.ConnectionID) bool {
	return that.phase.IsPlaying() && id != "" && id == that.drawer
}

func (that *Room) indexOf(id entity.ConnectionID) int {
	for i, member := range that.members {
		if member == id {
			return i
		}
	}

	return -1
}

func (that *Room) roster() []entity.Player {
	players := make([]entity.Player, 0, len(that.members))
	for _, id := range that.members {
		if player, ok := that.deps.Players.Get(id); ok {
			players = append(players, *player)
		}
	}

	return players
}

func (that *Room) minPlayers() int {
	if that.settings.MinPlayers < 2 {
		return 2
	}

	return that.settings.MinPlayers
}

func (that *Room) notify(event Event) {
	if that.deps.Notifier != nil {
		that.deps.Notifier.Notify(that.id, event)
	}
}

func normalizeGuess(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}
