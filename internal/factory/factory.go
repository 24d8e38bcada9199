package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/openfest/gatekeeper/internal/dependencies/clock"
	"github.com/openfest/gatekeeper/internal/dependencies/random"
	"github.com/openfest/gatekeeper/internal/events"
	"github.com/openfest/gatekeeper/internal/services/auth"
	"github.com/openfest/gatekeeper/internal/services/checkpoint"
	"github.com/openfest/gatekeeper/internal/services/identifier"
	"github.com/openfest/gatekeeper/internal/services/participant"
	"github.com/openfest/gatekeeper/internal/services/roster"
	"github.com/openfest/gatekeeper/internal/storage"
	"github.com/openfest/gatekeeper/internal/storage/memory"
	redisstorage "github.com/openfest/gatekeeper/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	AuthService           *auth.Service
	Allocator             *identifier.Allocator
	ParticipantController *participant.Controller
	CheckpointController  *checkpoint.Controller
	RosterImporter        *roster.Importer
	FeedHub               *events.Hub
	Feed                  *events.Feed
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	// Use default auth config if not provided
	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	return newWithDependencies(store, clk, rnd, authCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, authCfg auth.Config, logger *slog.Logger) *App {
	feedHub := events.NewHub(logger)
	feed := events.NewFeed(feedHub, logger)

	allocator := identifier.New(store, rnd)
	authService := auth.New(store, clk, authCfg)
	participantController := participant.NewController(store, allocator, clk)
	checkpointController := checkpoint.NewController(store, clk, feed)
	rosterImporter := roster.New(store, allocator, clk, logger)

	return &App{
		Storage:               store,
		Clock:                 clk,
		Random:                rnd,
		AuthService:           authService,
		Allocator:             allocator,
		ParticipantController: participantController,
		CheckpointController:  checkpointController,
		RosterImporter:        rosterImporter,
		FeedHub:               feedHub,
		Feed:                  feed,
	}
}
