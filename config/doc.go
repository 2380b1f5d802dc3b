// Package config loads runtime configuration for the local chat client core.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string   path of the local database file
//	-p string   path of the YAML pricing override file
//
// # JSON schema
//
//	{
//	  "database_path": "enable.db",
//	  "pricing_file": "rates.yaml"
//	}
//
// Primary API
//
//   - type Config                     — holds DatabasePath and PricingFile
//   - func LoadConfig() *Config       — builds Config by applying defaults, JSON, then flags
//   - func (*Config) LoadDefaults()   — sets sensible defaults
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
