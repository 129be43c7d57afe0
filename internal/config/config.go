// Package config centralises configuration parsing for the activity board.
package config

import (
	"os"
	"time"
)

// Config captures runtime configuration values for the activity board.
type Config struct {
	HTTPAddress    string
	BackendURL     string
	BannerTTL      time.Duration
	BackendTimeout time.Duration // Zero means no client-side timeout.
}

// Load reads environment variables into Config, applying sensible defaults
// for local dev.
func Load() Config {
	return Config{
		HTTPAddress:    getEnv("HTTP_ADDRESS", ":8080"),
		BackendURL:     getEnv("BACKEND_URL", "http://localhost:8000"),
		BannerTTL:      getDurationEnv("BANNER_TTL", 5*time.Second),
		BackendTimeout: getDurationEnv("BACKEND_TIMEOUT", 0),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
