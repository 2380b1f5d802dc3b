package config

// Config holds runtime settings for the local chat client core.
//
// Fields:
//   - DatabasePath: filesystem path of the SQLite database file.
//   - PricingFile: optional YAML file overriding the built-in pricing table.
//     Empty means the built-in rates are used.
type Config struct {
	DatabasePath string
	PricingFile  string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "enable.db"
	c.PricingFile = ""
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
