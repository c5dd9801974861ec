package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the healthsurv CLI.
//
// Fields:
//   - BaseURL: API root of the surveillance backend, e.g. http://host:8000/api.
//   - StoreBackend: where the credential pair is persisted ("sqlite", "redis", "memory").
//   - SQLitePath: database file used by the sqlite store.
//   - RedisAddr, RedisPrefix: location and key prefix for the redis store.
//   - HTTPTimeout: per-attempt timeout of the underlying http.Client.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	BaseURL      string
	StoreBackend string
	SQLitePath   string
	RedisAddr    string
	RedisPrefix  string
	HTTPTimeout  time.Duration
	LogLevel     string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://localhost:8000/api"
	c.StoreBackend = "sqlite"
	c.SQLitePath = "session.db"
	c.RedisAddr = "127.0.0.1:6379"
	c.RedisPrefix = "healthsurv:"
	c.HTTPTimeout = 30 * time.Second
	c.LogLevel = "info"
}

// LoadConfig constructs a Config from os.Args: defaults first, then the JSON
// file named by -c/-config (if any), then command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	return load(os.Args[1:])
}

func load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
