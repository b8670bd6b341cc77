package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents application configuration, loaded from the environment.
type Config struct {
	DatabaseURL string
	ServerHost  string
	ServerPort  string
	Environment string

	SessionSecret string
	SessionTTL    time.Duration
	SessionCookie string

	RedisURL          string
	RateLimitEnabled  bool
	RateLimitAttempts int
	RateLimitWindow   time.Duration

	LogLevel  string
	LogFormat string
}

var (
	ErrMissingDatabaseURL   = errors.New("DATABASE_URL is required")
	ErrMissingSessionSecret = errors.New("SESSION_SECRET is required")
)

// Load loads configuration from environment variables, reading a .env file
// first if one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		ServerHost:    getEnvOrDefault("SERVER_HOST", "localhost"),
		ServerPort:    getEnvOrDefault("SERVER_PORT", "8080"),
		Environment:   getEnvOrDefault("ENV", "development"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		SessionTTL:    getEnvOrDefaultDuration("SESSION_TTL", 12*time.Hour),
		SessionCookie: getEnvOrDefault("SESSION_COOKIE", "taskboard_session"),
		RedisURL:      getEnvOrDefault("REDIS_URL", "redis://localhost:6379/0"),
		RateLimitEnabled:  getEnvOrDefaultBool("RATE_LIMIT_ENABLED", true),
		RateLimitAttempts: getEnvOrDefaultInt("RATE_LIMIT_ATTEMPTS", 10),
		RateLimitWindow:   getEnvOrDefaultDuration("RATE_LIMIT_WINDOW", 15*time.Minute),
		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "text"),
	}

	if cfg.DatabaseURL == "" {
		return nil, ErrMissingDatabaseURL
	}
	if cfg.SessionSecret == "" {
		return nil, ErrMissingSessionSecret
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvOrDefaultBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvOrDefaultInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvOrDefaultDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
