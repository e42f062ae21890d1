// Package config loads runtime configuration for the orgcli client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the platform REST API
//	-t int      request timeout (seconds)
//	-d string   path to the local state database
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so values can be
// either strings like "10s" or integer nanoseconds:
//
//	{
//	  "base_url": "https://api.example.com",
//	  "request_timeout": "10s",
//	  "database_path": "/home/ana/.config/orgcli/state.db"
//	}
//
// Primary API
//
//   - type Config                     - holds BaseURL, RequestTimeout and DatabasePath
//   - func LoadConfig() *Config       - builds Config by applying defaults, JSON, then flags
//   - func (*Config) LoadDefaults()   - sets sensible defaults
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
