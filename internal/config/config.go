package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/rocketscienceinc/doodle-backend/internal/game"
)

const (
	WordSourceFixed    = "fixed"
	WordSourceWeighted = "weighted"
	WordSourceRedis    = "redis"
)

var (
	ErrInvalidGame       = errors.New("invalid game settings")
	ErrInvalidWordSource = errors.New("invalid word source")
	ErrInvalidSocket     = errors.New("invalid socket settings")
)

type Config struct {
	LogLevel       string   `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort       string   `yaml:"http-port" env:"HTTP_PORT" env-default:"5000"`
	AllowedOrigins []string `yaml:"allowed-origins" env:"ALLOWED_ORIGINS" env-default:"http://localhost:3000"`
	Game           Game     `yaml:"game"`
	Words          Words    `yaml:"words"`
	Redis          Redis    `yaml:"redis"`
	Socket         Socket   `yaml:"socket"`
}

type Game struct {
	RoomCapacity     int           `yaml:"room-capacity" env:"GAME_ROOM_CAPACITY" env-default:"8"`
	MaxRounds        int           `yaml:"max-rounds" env:"GAME_MAX_ROUNDS" env-default:"3"`
	TurnSeconds      int           `yaml:"turn-seconds" env:"GAME_TURN_SECONDS" env-default:"60"`
	GraceDelay       time.Duration `yaml:"grace-delay" env:"GAME_GRACE_DELAY" env-default:"2s"`
	MinPlayers       int           `yaml:"min-players" env:"GAME_MIN_PLAYERS" env-default:"2"`
	MaxMessageLength int           `yaml:"max-message-length" env:"GAME_MAX_MESSAGE_LENGTH" env-default:"200"`
}

type Words struct {
	Source          string         `yaml:"source" env:"WORDS_SOURCE" env-default:"fixed"`
	List            []string       `yaml:"list" env:"WORDS_LIST"`
	Weights         map[string]int `yaml:"weights"`
	RedisKey        string         `yaml:"redis-key" env:"WORDS_REDIS_KEY" env-default:"doodle:words"`
	RefreshInterval time.Duration  `yaml:"refresh-interval" env:"WORDS_REFRESH_INTERVAL" env-default:"5m"`
	Seed            bool           `yaml:"seed" env:"WORDS_SEED" env-default:"true"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

type Socket struct {
	WriteWait      time.Duration `yaml:"write-wait" env-default:"10s"`
	PongWait       time.Duration `yaml:"pong-wait" env-default:"60s"`
	PingPeriod     time.Duration `yaml:"ping-period" env-default:"54s"`
	MaxMessageSize int64         `yaml:"max-message-size" env-default:"8192"`
	SendBuffer     int           `yaml:"send-buffer" env-default:"256"`
	RateLimit      float64       `yaml:"rate-limit" env-default:"60"`
	RateBurst      int           `yaml:"rate-burst" env-default:"120"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	if err := config.Validate(); err != nil {
		panic(fmt.Errorf("invalid config: %w", err))
	}

	return config
}

// Validate - rejects settings the game cannot run with.
func (that *Config) Validate() error {
	switch {
	case that.Game.RoomCapacity < 2:
		return fmt.Errorf("%w: room-capacity must be at least 2", ErrInvalidGame)
	case that.Game.MinPlayers < 2 || that.Game.MinPlayers > that.Game.RoomCapacity:
		return fmt.Errorf("%w: min-players must be between 2 and room-capacity", ErrInvalidGame)
	case that.Game.MaxRounds < 1:
		return fmt.Errorf("%w: max-rounds must be positive", ErrInvalidGame)
	case that.Game.TurnSeconds < 1:
		return fmt.Errorf("%w: turn-seconds must be positive", ErrInvalidGame)
	case that.Game.GraceDelay < 0:
		return fmt.Errorf("%w: grace-delay must not be negative", ErrInvalidGame)
	case that.Game.MaxMessageLength < 1:
		return fmt.Errorf("%w: max-message-length must be positive", ErrInvalidGame)
	}

	switch that.Words.Source {
	case WordSourceFixed:
	case WordSourceWeighted:
		for word, weight := range that.Words.Weights {
			if weight > game.MaxWordWeight {
				return fmt.Errorf("%w: weight of %q is above %d", ErrInvalidWordSource, word, game.MaxWordWeight)
			}
		}
	case WordSourceRedis:
		if that.Words.RedisKey == "" {
			return fmt.Errorf("%w: redis-key is required", ErrInvalidWordSource)
		}
		if that.Words.RefreshInterval <= 0 {
			return fmt.Errorf("%w: refresh-interval must be positive", ErrInvalidWordSource)
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidWordSource, that.Words.Source)
	}

	if that.Socket.PingPeriod >= that.Socket.PongWait {
		return fmt.Errorf("%w: ping-period must be shorter than pong-wait", ErrInvalidSocket)
	}

	if that.Socket.SendBuffer < 1 || that.Socket.MaxMessageSize < 1 {
		return fmt.Errorf("%w: send-buffer and max-message-size must be positive", ErrInvalidSocket)
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
