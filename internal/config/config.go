package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

type Config struct {
	// Database
	DBPath string

	// Letter output
	LettersDir string

	// Logging
	LogLevel string
}

func Load() *Config {
	return &Config{
		DBPath:     getEnv("MAILROOM_DB_PATH", "./data/mailroom.db"),
		LettersDir: getEnv("MAILROOM_LETTERS_DIR", "./letters"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if c.DBPath == "" {
		errors = append(errors, "database path cannot be empty")
	} else if dir := filepath.Dir(c.DBPath); dir != "." && dir != "" {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0755); err != nil {
				errors = append(errors, fmt.Sprintf("cannot create database directory '%s': %v", dir, err))
			}
		}
	}

	if c.LettersDir == "" {
		errors = append(errors, "letters directory cannot be empty")
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// SlogLevel maps the configured level to its slog value.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
