package config

import (
	"os"
	"time"

	"go.uber.org/zap"
)

// Config holds the project config values, read from the environment.
type Config struct {
	DatabaseURL string
	Port        string
	DraftTTL    time.Duration
}

// New sets up the global zap logger and reads the environment into a Config.
func New() *Config {
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	return &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Port:        getenvDefault("PORT", "8080"),
		DraftTTL:    getDuration("DRAFT_TTL", 2*time.Hour),
	}
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		zap.S().Warnw("invalid duration in environment, using default", "key", key, "value", v)
		return fallback
	}
	return d
}
