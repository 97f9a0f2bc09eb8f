package factory

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/mcoot/hockeytracker/internal/dependencies/clock"
	"github.com/mcoot/hockeytracker/internal/dependencies/ids"
	"github.com/mcoot/hockeytracker/internal/services/match"
	"github.com/mcoot/hockeytracker/internal/services/team"
	"github.com/mcoot/hockeytracker/internal/sse"
	"github.com/mcoot/hockeytracker/internal/storage"
	"github.com/mcoot/hockeytracker/internal/storage/file"
	"github.com/mcoot/hockeytracker/internal/storage/memory"
	"github.com/mcoot/hockeytracker/internal/storage/postgres"
	redisstorage "github.com/mcoot/hockeytracker/internal/storage/redis"
	"github.com/mcoot/hockeytracker/internal/store"
	"github.com/mcoot/hockeytracker/internal/stream"
)

// Storage type constants
const (
	StorageTypeFile     = "file"
	StorageTypeMemory   = "memory"
	StorageTypeRedis    = "redis"
	StorageTypePostgres = "postgres"
)

// App contains all wired application components
type App struct {
	Storage storage.Storage
	Store   *store.Store

	// External dependencies
	Clock clock.Clock
	IDs   ids.Generator

	// Services
	TeamController  *team.Controller
	MatchController *match.Controller
	Ticker          *match.Ticker

	// Fan-out
	HubManager  *sse.HubManager
	Broadcaster *sse.Broadcaster
	Publisher   *stream.Publisher // nil unless the redis backend publishes events

	Logger *slog.Logger
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the backend. Defaults to "file".
	StorageType string
	// FilePath is the state file for the file backend (optional)
	FilePath string
	// RedisConfig is required when StorageType is "redis"
	RedisConfig *redisstorage.Config
	// PostgresConfig is required when StorageType is "postgres"
	PostgresConfig *postgres.Config
	// TickInterval drives countdown expiry and penalty expiry (optional)
	TickInterval time.Duration
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	backend, err := openStorage(cfg)
	if err != nil {
		return nil, err
	}

	app := newWithDependencies(backend, clock.New(), ids.New(), cfg.TickInterval, logger)

	if rs, ok := backend.(*redisstorage.Storage); ok && rs.Config().PublishEvents {
		app.Publisher = stream.NewPublisher(rs.Client(), rs.Config().KeyPrefix, rs.Config().StreamMaxLen, logger)
		app.MatchController.AddNotifier(app.Publisher)
	}

	logger.Info("application wired", slog.String("storage", storageName(cfg.StorageType)))
	return app, nil
}

func storageName(t string) string {
	if t == "" {
		return StorageTypeFile
	}
	return t
}

func openStorage(cfg Config) (storage.Storage, error) {
	switch storageName(cfg.StorageType) {
	case StorageTypeFile:
		return file.New(cfg.FilePath)
	case StorageTypeMemory:
		return memory.New(), nil
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, fmt.Errorf("RedisConfig required when StorageType is redis")
		}
		return redisstorage.New(*cfg.RedisConfig)
	case StorageTypePostgres:
		if cfg.PostgresConfig == nil {
			return nil, fmt.Errorf("PostgresConfig required when StorageType is postgres")
		}
		return postgres.New(*cfg.PostgresConfig)
	default:
		return nil, fmt.Errorf("invalid StorageType %q: must be file, memory, redis or postgres", cfg.StorageType)
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(backend storage.Storage, clk clock.Clock, gen ids.Generator, tick time.Duration, logger *slog.Logger) *App {
	st := store.New(backend, logger.With(slog.String("component", "store")))
	hubs := sse.NewHubManager(logger)
	broadcaster := sse.NewBroadcaster(hubs, clk, logger)

	teams := team.NewController(st, gen, logger.With(slog.String("component", "team")))
	matches := match.NewController(st, clk, gen, logger.With(slog.String("component", "match")), broadcaster)
	ticker := match.NewTicker(matches, tick, logger.With(slog.String("component", "ticker")))

	return &App{
		Storage:         backend,
		Store:           st,
		Clock:           clk,
		IDs:             gen,
		TeamController:  teams,
		MatchController: matches,
		Ticker:          ticker,
		HubManager:      hubs,
		Broadcaster:     broadcaster,
		Logger:          logger,
	}
}

// Run drives the scheduled tick and prunes idle SSE hubs until ctx is done
func (a *App) Run(ctx context.Context) {
	go a.Ticker.Run(ctx)

	cleanup := time.NewTicker(time.Minute)
	defer cleanup.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-cleanup.C:
			a.HubManager.CleanupEmptyHubs()
		}
	}
}

// Close stops every hub and releases the storage connection
func (a *App) Close() error {
	a.HubManager.CloseAll()
	return a.Storage.Close()
}
