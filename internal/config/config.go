// Package config loads server settings from an optional YAML file and
// HOCKEY_* environment overrides.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mcoot/hockeytracker/internal/api"
	"github.com/mcoot/hockeytracker/internal/factory"
	"github.com/mcoot/hockeytracker/internal/services/match"
	"github.com/mcoot/hockeytracker/internal/storage/file"
	"github.com/mcoot/hockeytracker/internal/storage/postgres"
	redisstorage "github.com/mcoot/hockeytracker/internal/storage/redis"
)

// Config is the full server configuration
type Config struct {
	Server  api.ServerConfig `yaml:"server"`
	Storage StorageConfig    `yaml:"storage"`
	Log     LogConfig        `yaml:"log"`

	// TickInterval is how often running clocks are checked
	TickInterval time.Duration `yaml:"tick_interval"`

	// CORSOrigins lists origins allowed to call the API; empty allows any
	CORSOrigins []string `yaml:"cors_origins"`
}

// StorageConfig selects and configures the persistence backend
type StorageConfig struct {
	Type     string              `yaml:"type"`
	FilePath string              `yaml:"file_path"`
	Redis    redisstorage.Config `yaml:"redis"`
	Postgres postgres.Config     `yaml:"postgres"`
}

// LogConfig controls the slog handler
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json or text
}

// Default returns the configuration used when nothing is set
func Default() Config {
	return Config{
		Server: api.DefaultServerConfig(),
		Storage: StorageConfig{
			Type:     factory.StorageTypeFile,
			FilePath: file.DefaultPath,
			Redis:    redisstorage.DefaultConfig(),
			Postgres: postgres.DefaultConfig(),
		},
		Log:          LogConfig{Level: "info", Format: "json"},
		TickInterval: match.DefaultTickInterval,
	}
}

// Load reads path (if non-empty) over the defaults, then applies the
// environment
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	str("HOCKEY_HOST", &c.Server.Host)
	str("HOCKEY_STORAGE", &c.Storage.Type)
	str("HOCKEY_FILE_PATH", &c.Storage.FilePath)
	str("HOCKEY_REDIS_URL", &c.Storage.Redis.URL)
	str("HOCKEY_REDIS_PREFIX", &c.Storage.Redis.KeyPrefix)
	str("HOCKEY_POSTGRES_DSN", &c.Storage.Postgres.DSN)
	str("HOCKEY_LOG_LEVEL", &c.Log.Level)
	str("HOCKEY_LOG_FORMAT", &c.Log.Format)

	if v, ok := lookup("HOCKEY_PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("HOCKEY_PORT: %w", err)
		}
		c.Server.Port = port
	}
	if v, ok := lookup("HOCKEY_TICK_INTERVAL"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("HOCKEY_TICK_INTERVAL: %w", err)
		}
		c.TickInterval = d
	}
	if v, ok := lookup("HOCKEY_REDIS_PUBLISH_EVENTS"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("HOCKEY_REDIS_PUBLISH_EVENTS: %w", err)
		}
		c.Storage.Redis.PublishEvents = b
	}
	if v, ok := lookup("HOCKEY_CORS_ORIGINS"); ok && v != "" {
		c.CORSOrigins = strings.Split(v, ",")
	}
	return nil
}

// Validate rejects settings the server cannot start with
func (c *Config) Validate() error {
	switch c.Storage.Type {
	case factory.StorageTypeFile, factory.StorageTypeMemory, factory.StorageTypeRedis, factory.StorageTypePostgres:
	default:
		return fmt.Errorf("unknown storage type %q", c.Storage.Type)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Server.Port)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// LogLevel parses Log.Level
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	return level, nil
}

// NewLogger builds the process logger from Log
func (c *Config) NewLogger() *slog.Logger {
	level, err := c.LogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.Log.Format, "text") {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}

// Factory converts the storage settings into a factory.Config
func (c *Config) Factory(logger *slog.Logger) factory.Config {
	fc := factory.Config{
		Logger:       logger,
		StorageType:  c.Storage.Type,
		FilePath:     c.Storage.FilePath,
		TickInterval: c.TickInterval,
	}
	switch c.Storage.Type {
	case factory.StorageTypeRedis:
		r := c.Storage.Redis
		fc.RedisConfig = &r
	case factory.StorageTypePostgres:
		p := c.Storage.Postgres
		fc.PostgresConfig = &p
	}
	return fc
}
