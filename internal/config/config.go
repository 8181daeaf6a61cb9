package config

import (
	"errors"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds CLI settings, populated from environment variables.
type Config struct {
	APIKey         string
	BaseURL        string // empty means the production endpoint
	RequestTimeout time.Duration
	LogLevel       string
	LogFormat      string
}

// Load reads configuration from environment variables, applying defaults
// where unset. A .env file in the working directory is consulted first
// when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	timeout, err := time.ParseDuration(envOrDefault("REQUEST_TIMEOUT", "10s"))
	if err != nil || timeout <= 0 {
		return nil, errors.New("invalid REQUEST_TIMEOUT")
	}

	cfg := &Config{
		APIKey:         os.Getenv("WINDY_API_KEY"),
		BaseURL:        os.Getenv("WINDY_API_URL"),
		RequestTimeout: timeout,
		LogLevel:       envOrDefault("LOG_LEVEL", "info"),
		LogFormat:      envOrDefault("LOG_FORMAT", "text"),
	}

	if cfg.APIKey == "" {
		return nil, errors.New("WINDY_API_KEY is required")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
