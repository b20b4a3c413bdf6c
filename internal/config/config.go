// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DataDir          string // Base directory for databases and export artifacts (always absolute)
	ToolchainCommand string // External synthesis/place-and-route command; empty disables synthesis
	SnapshotSchedule string // Cron schedule for the dashboard snapshot export job
	LogLevel         string
	Port             int
	DevMode          bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	dataDir := getEnv("QFORGE_DATA_DIR", "./data")
	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory: %w", err)
	}

	cfg := &Config{
		DataDir:          absDataDir,
		ToolchainCommand: getEnv("QFORGE_TOOLCHAIN_CMD", ""),
		SnapshotSchedule: getEnv("QFORGE_SNAPSHOT_SCHEDULE", "@every 1m"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		Port:             getEnvAsInt("QFORGE_PORT", 8080),
		DevMode:          getEnvAsBool("DEV_MODE", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("QFORGE_DATA_DIR is required")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("QFORGE_PORT must be a valid TCP port, got %d", c.Port)
	}
	return nil
}

// SnapshotPath returns the file path of the exported dashboard snapshot artifact
func (c *Config) SnapshotPath() string {
	return filepath.Join(c.DataDir, "snapshot.json")
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
