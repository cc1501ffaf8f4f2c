// Package config loads and validates application configuration from
// environment variables, optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Collaborator is one optional remote service. An empty URL disables it.
type Collaborator struct {
	URL     string
	Token   string
	Timeout time.Duration
}

// Enabled reports whether a URL is configured.
func (c Collaborator) Enabled() bool { return c.URL != "" }

// Config holds all configuration values for the API server.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel is one of debug, info, warn, error. Defaults to "info".
	LogLevel string

	// CORSOrigins is the list of allowed browser origins, from the
	// comma-separated CORS_ORIGINS. Defaults to the Vite dev server.
	CORSOrigins []string

	// RedisURL selects the Redis collaborator cache. Empty means in-memory.
	RedisURL string

	// CacheTTL is how long collaborator answers are reused. Defaults to 5m.
	CacheTTL time.Duration

	// MaxBodyBytes caps request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64

	// RemoteRetries is the extra attempts made on a transient collaborator
	// failure, inside the collaborator's timeout. Defaults to 1.
	RemoteRetries uint64

	CarbonPredictor Collaborator
	FitEngine       Collaborator
	RegretEngine    Collaborator
}

// LoadDotEnv copies variables from path into the environment without
// overriding ones already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config.LoadDotEnv: %w", err)
	}
	return nil
}

// Load reads configuration from environment variables. Every missing
// required variable and every malformed value is reported in one error.
func Load() (Config, error) {
	p := &parser{}

	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		LogLevel:      strings.ToLower(getEnv("LOG_LEVEL", "info")),
		CORSOrigins:   splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		DatabaseURL:   p.required("DATABASE_URL"),
		RedisURL:      os.Getenv("REDIS_URL"),
		CacheTTL:      p.duration("CACHE_TTL", 5*time.Minute),
		MaxBodyBytes:  p.int64("MAX_BODY_BYTES", 1<<20),
		RemoteRetries: uint64(p.int64("REMOTE_MAX_RETRIES", 1)),
		CarbonPredictor: Collaborator{
			URL:     os.Getenv("CARBON_PREDICTOR_URL"),
			Token:   os.Getenv("CARBON_PREDICTOR_TOKEN"),
			Timeout: p.duration("CARBON_PREDICTOR_TIMEOUT", 10*time.Second),
		},
		FitEngine: Collaborator{
			URL:     os.Getenv("FIT_ENGINE_URL"),
			Token:   os.Getenv("FIT_ENGINE_TOKEN"),
			Timeout: p.duration("FIT_ENGINE_TIMEOUT", 15*time.Second),
		},
		RegretEngine: Collaborator{
			URL:     os.Getenv("REGRET_ENGINE_URL"),
			Token:   os.Getenv("REGRET_ENGINE_TOKEN"),
			Timeout: p.duration("REGRET_ENGINE_TIMEOUT", 15*time.Second),
		},
	}

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		p.invalid = append(p.invalid, "LOG_LEVEL")
	}

	if err := p.err(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// SlogLevel converts LogLevel, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// parser collects problems so Load can report them together.
type parser struct {
	missing []string
	invalid []string
}

func (p *parser) required(key string) string {
	v := os.Getenv(key)
	if v == "" {
		p.missing = append(p.missing, key)
	}
	return v
}

func (p *parser) duration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		p.invalid = append(p.invalid, key)
		return fallback
	}
	return d
}

func (p *parser) int64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		p.invalid = append(p.invalid, key)
		return fallback
	}
	return n
}

func (p *parser) err() error {
	var parts []string
	if len(p.missing) > 0 {
		parts = append(parts, "required environment variables not set: "+strings.Join(p.missing, ", "))
	}
	if len(p.invalid) > 0 {
		parts = append(parts, "invalid environment variables: "+strings.Join(p.invalid, ", "))
	}
	if len(parts) == 0 {
		return nil
	}
	return errors.New(strings.Join(parts, "; "))
}

// getEnv returns the value of key, or fallback when it is unset or empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
