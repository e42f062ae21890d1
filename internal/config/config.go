package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the orgcli client.
//
// Fields:
//   - BaseURL: scheme://host[:port] of the platform REST API.
//   - RequestTimeout: per-request deadline for API calls.
//   - DatabasePath: location of the local SQLite state database.
//
// Units: RequestTimeout is a time.Duration (e.g., 10*time.Second).
type Config struct {
	BaseURL        string
	DatabasePath   string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "https://localhost:8443"
	c.RequestTimeout = 10 * time.Second
	c.DatabasePath = defaultDatabasePath()
}

// defaultDatabasePath places the state database under the user config
// directory, falling back to the working directory when it is unavailable.
func defaultDatabasePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "orgcli.db"
	}
	return filepath.Join(dir, "orgcli", "state.db")
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
