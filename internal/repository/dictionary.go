package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/doodle-backend/internal/game"
)

var ErrDictionaryEmpty = errors.New("dictionary is empty")

// Dictionary is a word source backed by a redis set. Words are loaded into
// memory so that Next never touches the network.
type Dictionary struct {
	logger   *slog.Logger
	client   *redis.Client
	key      string
	fallback game.WordSource

	mu    sync.RWMutex
	words []string
	intn  func(n int) int
}

func NewDictionary(logger *slog.Logger, client *redis.Client, key string, fallback game.WordSource) *Dictionary {
	return &Dictionary{
		logger:   logger.With("component", "dictionary"),
		client:   client,
		key:      key,
		fallback: fallback,
		intn:     rand.Intn, //nolint: gosec // word choice does not need crypto randomness
	}
}

// Seed - adds words to the set. Existing words are kept.
func (that *Dictionary) Seed(ctx context.Context, words []string) error {
	members := make([]any, 0, len(words))
	for _, word := range cleanWords(words) {
		members = append(members, word)
	}

	if len(members) == 0 {
		return nil
	}

	if err := that.client.SAdd(ctx, that.key, members...).Err(); err != nil {
		return fmt.Errorf("failed to seed dictionary: %w", err)
	}

	return nil
}

// Load - replaces the in-memory words with the set content. An empty set keeps
// the words loaded before and returns ErrDictionaryEmpty.
func (that *Dictionary) Load(ctx context.Context) (int, error) {
	members, err := that.client.SMembers(ctx, that.key).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return 0, fmt.Errorf("failed to load dictionary: %w", err)
	}

	words := cleanWords(members)
	if len(words) == 0 {
		return 0, ErrDictionaryEmpty
	}

	// set order is unspecified, keep indices stable between loads
	sort.Strings(words)

	that.mu.Lock()
	that.words = words
	that.mu.Unlock()

	return len(words), nil
}

// Refresh - reloads the set every interval until ctx is done.
func (that *Dictionary) Refresh(ctx context.Context, interval time.Duration) {
	log := that.logger.With("method", "Refresh")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := that.Load(ctx)
			if err != nil {
				log.Warn("failed to refresh dictionary", "error", err)
				continue
			}

			log.Debug("dictionary refreshed", "words", count)
		}
	}
}

// Next - picks a loaded word, or asks the fallback while nothing is loaded.
func (that *Dictionary) Next() string {
	that.mu.RLock()
	defer that.mu.RUnlock()

	if len(that.words) == 0 {
		return that.fallback.Next()
	}

	return that.words[that.intn(len(that.words))]
}

func (that *Dictionary) Len() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.words)
}

func cleanWords(words []string) []string {
	cleaned := make([]string, 0, len(words))
	for _, word := range words {
		if word = strings.ToLower(strings.TrimSpace(word)); word != "" {
			cleaned = append(cleaned, word)
		}
	}

	return cleaned
}
