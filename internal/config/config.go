// Package config loads application configuration from the environment
// into an explicit struct that gets passed down; nothing reads the
// environment mid-operation.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/miickii/HSKTrainer-sub000/internal/database"
	"github.com/miickii/HSKTrainer-sub000/pkg/models"
)

// Config holds all application configuration.
type Config struct {
	Database      database.Config
	ActiveLevels  []int
	PreferOffline bool
	ReminderHour  int // hour of day (0-23) for the due-words reminder
}

// Load reads configuration from environment variables, with a .env
// file honored when present.
func Load() (*Config, error) {
	// Ignore error if no .env file exists.
	_ = godotenv.Load()

	cfg := &Config{
		Database: database.Config{
			Driver: getEnv("HSK_DB_DRIVER", database.DriverSQLite),
			Path:   getEnv("HSK_DB_PATH", "data/hsktrainer.db"),
			DSN:    os.Getenv("HSK_DB_DSN"),
		},
	}

	levels, err := ParseLevels(getEnv("HSK_ACTIVE_LEVELS", "1,2,3"))
	if err != nil {
		return nil, fmt.Errorf("HSK_ACTIVE_LEVELS: %v", err)
	}
	cfg.ActiveLevels = levels

	offline, err := strconv.ParseBool(getEnv("HSK_PREFER_OFFLINE", "true"))
	if err != nil {
		return nil, fmt.Errorf("HSK_PREFER_OFFLINE: %v", err)
	}
	cfg.PreferOffline = offline

	hour, err := strconv.Atoi(getEnv("HSK_REMINDER_HOUR", "9"))
	if err != nil || hour < 0 || hour > 23 {
		return nil, fmt.Errorf("HSK_REMINDER_HOUR must be an hour between 0 and 23")
	}
	cfg.ReminderHour = hour

	if cfg.Database.Driver == database.DriverPostgres && cfg.Database.DSN == "" {
		return nil, fmt.Errorf("HSK_DB_DSN is required for the postgres driver")
	}

	return cfg, nil
}

// ParseLevels parses a comma-separated list of HSK levels ("1,2,3").
// Levels run from models.LevelMin to models.LevelIdiom, the sentinel
// for idiom entries.
func ParseLevels(raw string) ([]int, error) {
	var levels []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		level, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid level %q", part)
		}
		if level < models.LevelMin || level > models.LevelIdiom {
			return nil, fmt.Errorf("level %d out of range (%d-%d)", level, models.LevelMin, models.LevelIdiom)
		}
		levels = append(levels, level)
	}
	if len(levels) == 0 {
		return nil, fmt.Errorf("no levels given")
	}
	return levels, nil
}

// FormatLevels is the inverse of ParseLevels.
func FormatLevels(levels []int) string {
	parts := make([]string, 0, len(levels))
	for _, l := range levels {
		parts = append(parts, strconv.Itoa(l))
	}
	return strings.Join(parts, ",")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
