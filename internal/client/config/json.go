package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/healthsurv/internal/flagx"
	"github.com/dmitrijs2005/healthsurv/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
type JsonConfig struct {
	BaseURL      string         `json:"base_url"`
	StoreBackend string         `json:"store"`
	SQLitePath   string         `json:"sqlite_path"`
	RedisAddr    string         `json:"redis_addr"`
	RedisPrefix  string         `json:"redis_prefix"`
	HTTPTimeout  timex.Duration `json:"http_timeout"`
	LogLevel     string         `json:"log_level"`
}

// parseJson overlays cfg with values from the JSON file named by -c/-config.
// It does nothing when no file is given and panics on read or decode errors.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setIfNotEmpty(&cfg.BaseURL, jc.BaseURL)
	setIfNotEmpty(&cfg.StoreBackend, jc.StoreBackend)
	setIfNotEmpty(&cfg.SQLitePath, jc.SQLitePath)
	setIfNotEmpty(&cfg.RedisAddr, jc.RedisAddr)
	setIfNotEmpty(&cfg.RedisPrefix, jc.RedisPrefix)
	setIfNotEmpty(&cfg.LogLevel, jc.LogLevel)
	if jc.HTTPTimeout.Duration > 0 {
		cfg.HTTPTimeout = jc.HTTPTimeout.Duration
	}
}

func setIfNotEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
