package redis

// Config holds Redis connection and key settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string `yaml:"url"`

	// Pool settings
	PoolSize     int `yaml:"pool_size"`
	MinIdleConns int `yaml:"min_idle_conns"`

	// KeyPrefix namespaces the state key and event streams
	KeyPrefix string `yaml:"key_prefix"`

	// PublishEvents appends every new match event to a per-match stream
	PublishEvents bool `yaml:"publish_events"`

	// StreamMaxLen caps each event stream (approximate trim); 0 means unbounded
	StreamMaxLen int64 `yaml:"stream_max_len"`
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:           "redis://localhost:6379",
		PoolSize:      10,
		MinIdleConns:  2,
		KeyPrefix:     "hockeytracker",
		PublishEvents: true,
		StreamMaxLen:  10000,
	}
}
