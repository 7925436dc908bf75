package game

import (
	"math/rand"

	"github.com/rocketscienceinc/doodle-backend/internal/entity"
)

// PlayerLookup is the read side of the registry that rooms depend on.
type PlayerLookup interface {
	Get(id entity.ConnectionID) (*entity.Player, bool)
}

// Registry owns every player record, keyed by connection.
type Registry struct {
	players map[entity.ConnectionID]*entity.Player
	intn    func(n int) int
}

func NewRegistry() *Registry {
	return &Registry{
		players: make(map[entity.ConnectionID]*entity.Player),
		intn:    rand.Intn, //nolint: gosec // placeholder names only
	}
}

// Register - creates or overwrites the player of a connection. The score starts at zero.
func (that *Registry) Register(id entity.ConnectionID, name string) *entity.Player {
	player := entity.NewPlayer(id, name, that.intn(1000))
	that.players[id] = player

	return player
}

func (that *Registry) Get(id entity.ConnectionID) (*entity.Player, bool) {
	player, ok := that.players[id]
	return player, ok
}

// Remove does not touch room membership; the gateway removes the player from its room first.
func (that *Registry) Remove(id entity.ConnectionID) {
	delete(that.players, id)
}

func (that *Registry) Len() int {
	return len(that.players)
}
