package entity

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxNameLength is the longest display name a player may carry, in characters.
const MaxNameLength = 20

// ConnectionID identifies a live client connection. It is the only identity a player has.
type ConnectionID string

type Player struct {
	ID    ConnectionID `json:"id"`
	Name  string       `json:"name"`
	Score int          `json:"score"`
}

// NewPlayer - creates a player with a normalized name and a zero score.
// A blank name is replaced by a placeholder built from fallbackNumber.
func NewPlayer(id ConnectionID, name string, fallbackNumber int) *Player {
	return &Player{
		ID:   id,
		Name: NormalizeName(name, fallbackNumber),
	}
}

// NormalizeName trims the name and cuts it to MaxNameLength characters.
func NormalizeName(name string, fallbackNumber int) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Sprintf("Player%d", fallbackNumber)
	}

	if utf8.RuneCountInString(name) > MaxNameLength {
		name = strings.TrimSpace(string([]rune(name)[:MaxNameLength]))
	}

	return name
}

// AddScore - negative amounts are ignored, the score never goes below zero.
func (that *Player) AddScore(points int) {
	if points <= 0 {
		return
	}

	that.Score += points
}
