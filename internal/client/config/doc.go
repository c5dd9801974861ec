// Package config loads runtime configuration for the healthsurv CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   API base URL
//	-s string   credential store backend: sqlite, redis or memory
//	-d string   sqlite database path
//	-r string   redis address (host:port)
//	-t int      HTTP timeout (seconds)
//	-l string   log level
//
// # JSON schema
//
// Durations use timex.Duration, so values can be strings like "30s" or
// integer nanoseconds:
//
//	{
//	  "base_url": "http://localhost:8000/api",
//	  "store": "redis",
//	  "redis_addr": "127.0.0.1:6379",
//	  "http_timeout": "30s"
//	}
//
// Empty JSON fields leave the previous value in place.
package config
