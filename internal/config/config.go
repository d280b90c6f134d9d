package config

import (
	"os"
	"strconv"

	"crossval/domain/physics"
	"crossval/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Engine   EngineConfig
	Export   ExportConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// EngineConfig holds validation engine settings. SecondsPerCell must equal
// the extractor's grid interval; it is passed explicitly at construction,
// never read from a global.
type EngineConfig struct {
	SecondsPerCell float64
	GridCols       int
}

// ExportConfig holds workbook export settings
type ExportConfig struct {
	Dir string
}

// Load reads configuration from environment variables and validates it.
// DATABASE_URL is required; everything else has a default.
func Load() (*Config, error) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		return nil, errors.ConfigInvalid("DATABASE_URL is required")
	}

	config := &Config{
		Database: DatabaseConfig{URL: url},
		Server:   ServerConfig{Port: getEnvOrDefault("PORT", "8080")},
		Engine:   LoadEngine(),
		Export:   ExportConfig{Dir: getEnvOrDefault("EXPORT_DIR", "./exports")},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

// LoadEngine reads only the engine settings, for binaries that do not need a
// database.
func LoadEngine() EngineConfig {
	return EngineConfig{
		SecondsPerCell: getEnvFloatOrDefault("SECONDS_PER_CELL", physics.DefaultInterval),
		GridCols:       getEnvIntOrDefault("GRID_COLS", physics.DefaultGridCols),
	}
}

func validateConfig(config *Config) error {
	if config.Engine.SecondsPerCell <= 0 {
		return errors.ConfigInvalid("SECONDS_PER_CELL must be positive")
	}
	if config.Engine.GridCols <= 0 {
		return errors.ConfigInvalid("GRID_COLS must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
