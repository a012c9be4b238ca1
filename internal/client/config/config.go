package config

import "time"

// Config holds runtime settings for the Inkwell CLI.
//
// Units: SyncInterval is a time.Duration (e.g., 30*time.Second).
type Config struct {
	// ServerURL is the base URL of the sync backend.
	ServerURL string
	// DatabasePath is the SQLite file holding the local journal.
	DatabasePath string
	// SyncInterval is how often the periodic trigger checks for pending work.
	SyncInterval time.Duration
	// MaxSyncAttempts bounds one retry sequence.
	MaxSyncAttempts int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.DatabasePath = "inkwell.db"
	c.SyncInterval = 30 * time.Second
	c.MaxSyncAttempts = 3
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
