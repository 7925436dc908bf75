package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestMustLoad(t *testing.T) {
	t.Run("Fills defaults for missing keys", func(t *testing.T) {
		// Given: a config that only sets the log level
		path := writeConfig(t, "log-level: debug\n")

		// When: it is loaded
		conf := MustLoad(path)

		// Then: everything else has its default
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "5000", conf.HTTPPort)
		assert.Equal(t, []string{"http://localhost:3000"}, conf.AllowedOrigins)
		assert.Equal(t, Game{
			RoomCapacity:     8,
			MaxRounds:        3,
			TurnSeconds:      60,
			GraceDelay:       2 * time.Second,
			MinPlayers:       2,
			MaxMessageLength: 200,
		}, conf.Game)
		assert.Equal(t, WordSourceFixed, conf.Words.Source)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, 54*time.Second, conf.Socket.PingPeriod)
	})

	t.Run("Reads the game and word sections", func(t *testing.T) {
		// Given: a config with weighted words and short turns
		path := writeConfig(t, `
game:
  room-capacity: 4
  turn-seconds: 30
words:
  source: weighted
  weights:
    cat: 3
    dog: 1
`)

		// When: it is loaded
		conf := MustLoad(path)

		// Then: the values are used
		assert.Equal(t, 4, conf.Game.RoomCapacity)
		assert.Equal(t, 30, conf.Game.TurnSeconds)
		assert.Equal(t, WordSourceWeighted, conf.Words.Source)
		assert.Equal(t, map[string]int{"cat": 3, "dog": 1}, conf.Words.Weights)
	})

	t.Run("Panics on a missing file", func(t *testing.T) {
		assert.Panics(t, func() {
			MustLoad(filepath.Join(t.TempDir(), "missing.yml"))
		})
	})

	t.Run("Panics on invalid settings", func(t *testing.T) {
		path := writeConfig(t, "words:\n  source: dictionary-of-doom\n")

		assert.Panics(t, func() {
			MustLoad(path)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Game: Game{
				RoomCapacity:     8,
				MaxRounds:        3,
				TurnSeconds:      60,
				GraceDelay:       2 * time.Second,
				MinPlayers:       2,
				MaxMessageLength: 200,
			},
			Words: Words{Source: WordSourceRedis, RedisKey: "words", RefreshInterval: time.Minute},
			Socket: Socket{
				PongWait:       60 * time.Second,
				PingPeriod:     54 * time.Second,
				MaxMessageSize: 1024,
				SendBuffer:     16,
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(conf *Config)
		wantErr error
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "room for one", mutate: func(c *Config) { c.Game.RoomCapacity = 1 }, wantErr: ErrInvalidGame},
		{name: "min players above capacity", mutate: func(c *Config) { c.Game.MinPlayers = 9 }, wantErr: ErrInvalidGame},
		{name: "min players below two", mutate: func(c *Config) { c.Game.MinPlayers = 1 }, wantErr: ErrInvalidGame},
		{name: "no rounds", mutate: func(c *Config) { c.Game.MaxRounds = 0 }, wantErr: ErrInvalidGame},
		{name: "no turn time", mutate: func(c *Config) { c.Game.TurnSeconds = 0 }, wantErr: ErrInvalidGame},
		{name: "negative grace", mutate: func(c *Config) { c.Game.GraceDelay = -time.Second }, wantErr: ErrInvalidGame},
		{name: "no message length", mutate: func(c *Config) { c.Game.MaxMessageLength = 0 }, wantErr: ErrInvalidGame},
		{name: "unknown word source", mutate: func(c *Config) { c.Words.Source = "file" }, wantErr: ErrInvalidWordSource},
		{name: "redis without key", mutate: func(c *Config) { c.Words.RedisKey = "" }, wantErr: ErrInvalidWordSource},
		{name: "redis without refresh", mutate: func(c *Config) { c.Words.RefreshInterval = 0 }, wantErr: ErrInvalidWordSource},
		{name: "weighted words", mutate: func(c *Config) {
			c.Words = Words{Source: WordSourceWeighted, Weights: map[string]int{"cat": 3}}
		}},
		{name: "word weight too large", mutate: func(c *Config) {
			c.Words = Words{Source: WordSourceWeighted, Weights: map[string]int{"cat": 2_000_000}}
		}, wantErr: ErrInvalidWordSource},
		{name: "ping slower than pong", mutate: func(c *Config) { c.Socket.PingPeriod = time.Minute }, wantErr: ErrInvalidSocket},
		{name: "no send buffer", mutate: func(c *Config) { c.Socket.SendBuffer = 0 }, wantErr: ErrInvalidSocket},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given: a valid config with one setting changed
			conf := valid()
			tt.mutate(conf)

			// When: it is validated
			err := conf.Validate()

			// Then: only the broken setting is reported
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}
