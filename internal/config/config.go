package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

type Config struct {
	Addr              string
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration

	LogLevel  log.Level
	LogFormat string // "text" or "json"

	// Empty RedisAddr or DBDSN disables that backend.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	DBDSN         string

	Generator  string // "snowflake" or "counter"
	NodeID     uint64
	CounterKey string

	CacheSize int
	CacheTTL  time.Duration

	// Warnings lists environment values that were ignored.
	Warnings []string
}

func Load() Config {
	cfg := Config{
		Addr:              ":8080",
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		ShutdownTimeout:   10 * time.Second,

		LogLevel:  log.InfoLevel,
		LogFormat: "text",

		Generator:  "snowflake",
		CounterKey: "base62:counter",

		CacheSize: 10000,
		CacheTTL:  5 * time.Minute,
	}

	_ = godotenv.Load(".env")

	if v, ok := lookup("ADDR"); ok {
		cfg.Addr = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok {
		if lvl, err := log.ParseLevel(strings.ToLower(v)); err == nil {
			cfg.LogLevel = lvl
		} else {
			cfg.warn("LOG_LEVEL", v)
		}
	}
	if v, ok := lookup("LOG_FORMAT"); ok {
		switch strings.ToLower(v) {
		case "text", "json":
			cfg.LogFormat = strings.ToLower(v)
		default:
			cfg.warn("LOG_FORMAT", v)
		}
	}

	if v, ok := lookup("REDIS_ADDR"); ok {
		cfg.RedisAddr = v
	}
	if v, ok := lookup("REDIS_PASSWORD"); ok {
		cfg.RedisPassword = v
	}
	if v, ok := lookup("REDIS_DB"); ok {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.RedisDB = n
		} else {
			cfg.warn("REDIS_DB", v)
		}
	}
	if v, ok := lookup("DB_DSN"); ok {
		cfg.DBDSN = v
	}

	if v, ok := lookup("GENERATOR"); ok {
		switch strings.ToLower(v) {
		case "snowflake", "counter":
			cfg.Generator = strings.ToLower(v)
		default:
			cfg.warn("GENERATOR", v)
		}
	}
	if v, ok := lookup("NODE_ID"); ok {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil && n < 1024 {
			cfg.NodeID = n
		} else {
			cfg.warn("NODE_ID", v)
		}
	}
	if v, ok := lookup("COUNTER_KEY"); ok {
		cfg.CounterKey = v
	}

	if v, ok := lookup("CACHE_SIZE"); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.CacheSize = n
		} else {
			cfg.warn("CACHE_SIZE", v)
		}
	}
	cfg.duration("CACHE_TTL", &cfg.CacheTTL)
	cfg.duration("SHUTDOWN_TIMEOUT", &cfg.ShutdownTimeout)

	return cfg
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	return strings.TrimSpace(v), ok && strings.TrimSpace(v) != ""
}

func (c *Config) duration(key string, dst *time.Duration) {
	v, ok := lookup(key)
	if !ok {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		c.warn(key, v)
		return
	}
	*dst = d
}

func (c *Config) warn(key, value string) {
	c.Warnings = append(c.Warnings, fmt.Sprintf("ignoring invalid %s=%q", key, value))
}

// NewLogger builds the process logger described by the config.
func (c Config) NewLogger() *log.Logger {
	opts := log.Options{
		Level:           c.LogLevel,
		ReportTimestamp: true,
	}
	if c.LogFormat == "json" {
		opts.Formatter = log.JSONFormatter
	}
	return log.NewWithOptions(os.Stderr, opts)
}
