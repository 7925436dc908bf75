package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/doodle-backend/internal/config"
	"github.com/rocketscienceinc/doodle-backend/internal/game"
	"github.com/rocketscienceinc/doodle-backend/internal/repository"
	"github.com/rocketscienceinc/doodle-backend/internal/repository/storage"
	"github.com/rocketscienceinc/doodle-backend/internal/usecase"
	"github.com/rocketscienceinc/doodle-backend/transport/rest"
	"github.com/rocketscienceinc/doodle-backend/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	words, closeWords, err := newWordSource(ctx, logger, conf)
	if err != nil {
		return fmt.Errorf("failed to set up words: %w", err)
	}
	defer closeWords()

	hub := websocket.NewHub(logger)
	defer hub.Close()

	gateway := usecase.NewGateway(logger, hub, usecase.Options{
		Settings:         gameSettings(conf.Game),
		Words:            words,
		MaxMessageLength: conf.Game.MaxMessageLength,
	})
	defer gateway.Close()

	wsServer := websocket.New(logger, hub, gateway, socketSettings(conf))
	router := rest.NewRouter(logger, gateway, wsServer, conf.AllowedOrigins)

	log.Info("Starting HTTP server", "port", conf.HTTPPort, "words", conf.Words.Source)
	if err = rest.Start(ctx, conf.HTTPPort, router); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}

// newWordSource - builds the configured word source. The returned func releases
// whatever the source holds.
func newWordSource(ctx context.Context, logger *slog.Logger, conf *config.Config) (game.WordSource, func(), error) {
	log := logger.With("component", "app", "method", "newWordSource")
	noop := func() {}

	switch conf.Words.Source {
	case config.WordSourceWeighted:
		return game.NewWeightedList(conf.Words.Weights), noop, nil
	case config.WordSourceRedis:
	default:
		return game.NewFixedList(conf.Words.List), noop, nil
	}

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return nil, nil, ErrAddrNotFound
	}

	client, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	closeClient := func(client *redis.Client) {
		if closeErr := client.Close(); closeErr != nil {
			log.Error("could not close redis storage", "error", closeErr)
		}
	}

	dictionary := repository.NewDictionary(logger, client, conf.Words.RedisKey, game.NewFixedList(conf.Words.List))

	if conf.Words.Seed {
		seed := conf.Words.List
		if len(seed) == 0 {
			seed = game.DefaultWords
		}

		if err = dictionary.Seed(ctx, seed); err != nil {
			closeClient(client)
			return nil, nil, fmt.Errorf("could not seed dictionary: %w", err)
		}
	}

	count, err := dictionary.Load(ctx)
	switch {
	case errors.Is(err, repository.ErrDictionaryEmpty):
		log.Warn("dictionary is empty, using the fallback list", "key", conf.Words.RedisKey)
	case err != nil:
		closeClient(client)
		return nil, nil, fmt.Errorf("could not load dictionary: %w", err)
	default:
		log.Info("dictionary loaded", "key", conf.Words.RedisKey, "words", count)
	}

	go dictionary.Refresh(ctx, conf.Words.RefreshInterval)

	return dictionary, func() { closeClient(client) }, nil
}

func gameSettings(conf config.Game) game.Settings {
	return game.Settings{
		Capacity:    conf.RoomCapacity,
		MaxRounds:   conf.MaxRounds,
		TurnSeconds: conf.TurnSeconds,
		MinPlayers:  conf.MinPlayers,
		GraceDelay:  conf.GraceDelay,
	}
}

func socketSettings(conf *config.Config) websocket.Settings {
	return websocket.Settings{
		WriteWait:      conf.Socket.WriteWait,
		PongWait:       conf.Socket.PongWait,
		PingPeriod:     conf.Socket.PingPeriod,
		MaxMessageSize: conf.Socket.MaxMessageSize,
		SendBuffer:     conf.Socket.SendBuffer,
		RateLimit:      conf.Socket.RateLimit,
		RateBurst:      conf.Socket.RateBurst,
		AllowedOrigins: conf.AllowedOrigins,
	}
}
