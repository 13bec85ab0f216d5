// Package config loads runtime configuration for the gophledger CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   address:port of the backend gRPC endpoint
//	-k string   API key sent with every backend call
//	-d string   path of the on-device SQLite database
//	-t int      per-request timeout (seconds)
//	-o string   directory for exported files
//	-l string   log backend: slog | zerolog
//
// # JSON schema
//
// The JSON loader uses timex.Duration, so request_timeout can be either a
// string like "10s" or integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "api_key": "dev-api-key",
//	  "database_path": "ledger.db",
//	  "request_timeout": "10s",
//	  "export_dir": ".",
//	  "log_backend": "slog"
//	}
package config
