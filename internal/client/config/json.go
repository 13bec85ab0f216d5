package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gophledger/internal/flagx"
	"github.com/dmitrijs2005/gophledger/internal/timex"
)

// JsonConfig is the on-disk shape of the CLI configuration file.
type JsonConfig struct {
	ServerEndpointAddr string         `json:"server_endpoint_addr"`
	APIKey             string         `json:"api_key"`
	DatabasePath       string         `json:"database_path"`
	RequestTimeout     timex.Duration `json:"request_timeout"`
	ExportDir          string         `json:"export_dir"`
	LogBackend         string         `json:"log_backend"`
}

// parseJson overlays values from the file named by -c / -config. Missing
// keys keep their current value; unreadable files and invalid JSON panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags(os.Args[1:])

	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = c.ServerEndpointAddr
	}
	if c.APIKey != "" {
		cfg.APIKey = c.APIKey
	}
	if c.DatabasePath != "" {
		cfg.DatabasePath = c.DatabasePath
	}
	if c.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = c.RequestTimeout.Duration
	}
	if c.ExportDir != "" {
		cfg.ExportDir = c.ExportDir
	}
	if c.LogBackend != "" {
		cfg.LogBackend = c.LogBackend
	}
}
