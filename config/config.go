package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Config holds application configuration loaded from environment variables
type Config struct {
	Port             string
	PGURL            string // optional; sessions are kept in memory when empty
	LogLevel         log.Level
	BaseYear         int
	StartingNAV      float64 // $M
	SessionTTL       time.Duration
	AssistantTimeout time.Duration
	OpenAIModel      string
	GeminiModel      string
	PresetsFile      string // optional YAML preset table; the built-in table is used when empty
}

// Load reads configuration from environment variables.
// A .env file in the working directory is loaded first; variables already set in the shell win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getenv("PORT", "8080"),
		PGURL:       os.Getenv("PG_URL"),
		OpenAIModel: getenv("OPENAI_MODEL", "gpt-4o-mini"),
		GeminiModel: getenv("GEMINI_MODEL", "gemini-2.0-flash"),
		PresetsFile: os.Getenv("PRESETS_FILE"),
	}

	var err error
	if cfg.LogLevel, err = log.ParseLevel(getenv("LOG_LEVEL", "info")); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	if cfg.BaseYear, err = strconv.Atoi(getenv("BASE_YEAR", "2024")); err != nil {
		return nil, fmt.Errorf("BASE_YEAR must be an integer: %w", err)
	}

	if cfg.StartingNAV, err = strconv.ParseFloat(getenv("STARTING_NAV", "2400"), 64); err != nil {
		return nil, fmt.Errorf("STARTING_NAV must be a number: %w", err)
	}
	if cfg.StartingNAV <= 0 {
		return nil, fmt.Errorf("STARTING_NAV must be positive, got %g", cfg.StartingNAV)
	}

	if cfg.SessionTTL, err = time.ParseDuration(getenv("SESSION_TTL", "2h")); err != nil {
		return nil, fmt.Errorf("SESSION_TTL must be a duration: %w", err)
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive, got %s", cfg.SessionTTL)
	}

	if cfg.AssistantTimeout, err = time.ParseDuration(getenv("ASSISTANT_TIMEOUT", "30s")); err != nil {
		return nil, fmt.Errorf("ASSISTANT_TIMEOUT must be a duration: %w", err)
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
