package cli

import (
	"os"
	"path/filepath"
	"strings"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	MatchID   string
	MatchFile string
	Output    string
	Verbose   bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("HOCKEY_SERVER", "http://localhost:8080"),
		MatchID:   os.Getenv("HOCKEY_MATCH"),
		MatchFile: getEnvOrDefault("HOCKEY_MATCH_FILE", defaultMatchFile()),
		Output:    "text",
		Verbose:   false,
	}
}

// LoadMatch loads the pinned match id from file if not already set
func (c *Config) LoadMatch() error {
	if c.MatchID != "" {
		return nil
	}

	data, err := os.ReadFile(c.MatchFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // falls back to the server's current match
		}
		return err
	}

	c.MatchID = strings.TrimSpace(string(data))
	return nil
}

// SaveMatch pins a match id for later commands
func (c *Config) SaveMatch(matchID string) error {
	c.MatchID = matchID

	dir := filepath.Dir(c.MatchFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	return os.WriteFile(c.MatchFile, []byte(matchID), 0600)
}

// ClearMatch removes the pinned match id
func (c *Config) ClearMatch() error {
	c.MatchID = ""
	if err := os.Remove(c.MatchFile); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func defaultMatchFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".hockeyctl/match"
	}
	return filepath.Join(home, ".hockeyctl", "match")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
