package game

import (
	"github.com/google/uuid"
	"github.com/rocketscienceinc/doodle-backend/internal/entity"
)

// Directory owns every room of the process, in creation order.
type Directory struct {
	settings Settings
	deps     Deps
	newID    func() string

	rooms map[string]*Room
	order []string
}

func NewDirectory(settings Settings, deps Deps) *Directory {
	return &Directory{
		settings: settings,
		deps:     deps,
		newID:    uuid.NewString,
		rooms:    make(map[string]*Room),
	}
}

// Create - registers an empty room in the waiting phase under a fresh id.
func (that *Directory) Create(name string) *Room {
	if name == "" {
		name = entity.DefaultRoomName(len(that.rooms))
	}

	id := that.newID()
	for that.rooms[id] != nil {
		id = that.newID()
	}

	room := NewRoom(id, name, that.settings, that.deps)
	that.rooms[id] = room
	that.order = append(that.order, id)

	return room
}

// Get - an unknown id is not an error, callers treat it as a rejected intent.
func (that *Directory) Get(id string) (*Room, bool) {
	room, ok := that.rooms[id]
	return room, ok
}

// Remove - drops the room and stops its timers.
func (that *Directory) Remove(id string) {
	room, ok := that.rooms[id]
	if !ok {
		return
	}

	room.Close()
	delete(that.rooms, id)

	for i, roomID := range that.order {
		if roomID == id {
			that.order = append(that.order[:i], that.order[i+1:]...)
			break
		}
	}
}

// ListSummaries never exposes words, scores or logs.
func (that *Directory) ListSummaries() []entity.RoomSummary {
	summaries := make([]entity.RoomSummary, 0, len(that.order))
	for _, id := range that.order {
		summaries = append(summaries, that.rooms[id].Summary())
	}

	return summaries
}

func (that *Directory) Len() int {
	return len(that.rooms)
}

// Close tears down every room.
func (that *Directory) Close() {
	for _, id := range that.order {
		that.rooms[id].Close()
	}

	that.rooms = make(map[string]*Room)
	that.order = nil
}
