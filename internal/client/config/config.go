package config

import "time"

// Config holds runtime settings for the gophledger CLI.
type Config struct {
	ServerEndpointAddr string
	APIKey             string
	DatabasePath       string
	RequestTimeout     time.Duration
	ExportDir          string
	LogBackend         string
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.APIKey = "dev-api-key"
	c.DatabasePath = "ledger.db"
	c.RequestTimeout = 10 * time.Second
	c.ExportDir = "."
	c.LogBackend = "slog"
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
