package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config keeps runtime settings for the server.
type Config struct {
	HTTPAddr      string
	DatabaseURL   string
	JWTSecret     string
	TokenTTL      time.Duration
	DigestTime    string // HH:MM local time; empty disables the digest job
	TelegramToken string
	LogLevel      string
}

// Load reads configuration from environment variables with sane defaults.
// A .env file in the working directory is picked up when present.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		HTTPAddr:      strings.TrimSpace(os.Getenv("HTTP_ADDR")),
		DatabaseURL:   strings.TrimSpace(os.Getenv("DATABASE_URL")),
		JWTSecret:     strings.TrimSpace(os.Getenv("JWT_SECRET")),
		TokenTTL:      parseTTL(strings.TrimSpace(os.Getenv("TOKEN_TTL_HOURS"))),
		DigestTime:    strings.TrimSpace(os.Getenv("DIGEST_TIME")),
		TelegramToken: strings.TrimSpace(os.Getenv("TELEGRAM_TOKEN")),
		LogLevel:      strings.TrimSpace(os.Getenv("LOG_LEVEL")),
	}

	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "taskdeck.db"
	}

	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = 24 * time.Hour
	}

	if cfg.JWTSecret == "" {
		return cfg, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func parseTTL(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	hours, err := time.ParseDuration(raw + "h")
	if err != nil || hours <= 0 {
		return 0
	}
	return hours
}
