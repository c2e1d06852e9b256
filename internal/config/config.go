package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	AppEnv      string
	Port        string
	DatabaseURL string
	RedisURL    string
	LogLevel    string
	LogFormat   string

	// Per-voter vote throttling (token bucket in Redis).
	VoteRatePerMinute int
	VoteBurst         int

	// Per-IP throttling on mutating HTTP routes.
	HTTPRatePerSecond float64
	HTTPBurst         int
}

func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:      getEnv("APP_ENV", "development"),
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisURL:    getEnv("REDIS_URL", ""),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	var err error
	if cfg.VoteRatePerMinute, err = getEnvInt("VOTE_RATE_PER_MINUTE", 60); err != nil {
		return nil, err
	}
	if cfg.VoteBurst, err = getEnvInt("VOTE_BURST", 10); err != nil {
		return nil, err
	}
	if cfg.VoteRatePerMinute <= 0 || cfg.VoteBurst <= 0 {
		return nil, fmt.Errorf("VOTE_RATE_PER_MINUTE and VOTE_BURST must be positive")
	}

	if cfg.HTTPRatePerSecond, err = getEnvFloat("HTTP_RATE_PER_SECOND", 20); err != nil {
		return nil, err
	}
	if cfg.HTTPBurst, err = getEnvInt("HTTP_BURST", 40); err != nil {
		return nil, err
	}
	if cfg.HTTPRatePerSecond <= 0 || cfg.HTTPBurst <= 0 {
		return nil, fmt.Errorf("HTTP_RATE_PER_SECOND and HTTP_BURST must be positive")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return f, nil
}
