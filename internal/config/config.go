package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"distviz/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig `validate:"required"`
	Chart  ChartConfig  `validate:"required"`
	Export ExportConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port     string `validate:"required,numeric"`
	APIPort  string `validate:"required,numeric,nefield=Port"`
	GinMode  string `validate:"oneof=debug release test"`
	LogLevel string `validate:"oneof=ERROR WARN INFO DEBUG TRACE"`
}

// ChartConfig holds rendering defaults for new instances
type ChartConfig struct {
	Format       string `validate:"oneof=png svg"`
	DefaultWidth int    `validate:"gte=0,lte=4096"`
	Resolution   int    `validate:"gte=0,lte=10000"`
	MaxInstances int    `validate:"gte=0"`
}

// ExportConfig controls where exported frames are written; an empty Dir
// disables export
type ExportConfig struct {
	Dir      string
	MaxAge   time.Duration `validate:"gte=0"`
	Interval time.Duration `validate:"gte=0"`
}

var validate = validator.New()

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: *loadServerConfig(),
		Chart:  *loadChartConfig(),
		Export: *loadExportConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:     getEnvOrDefault("PORT", "8080"),
		APIPort:  getEnvOrDefault("API_PORT", "8081"),
		GinMode:  getEnvOrDefault("GIN_MODE", "debug"),
		LogLevel: strings.ToUpper(getEnvOrDefault("LOG_LEVEL", "INFO")),
	}
}

func loadChartConfig() *ChartConfig {
	return &ChartConfig{
		Format:       strings.ToLower(getEnvOrDefault("CHART_FORMAT", "png")),
		DefaultWidth: getEnvIntOrDefault("DEFAULT_WIDTH", 640),
		Resolution:   getEnvIntOrDefault("SAMPLE_RESOLUTION", 0),
		MaxInstances: getEnvIntOrDefault("MAX_INSTANCES", 1000),
	}
}

func loadExportConfig() *ExportConfig {
	return &ExportConfig{
		Dir:      getEnvOrDefault("EXPORT_DIR", ""),
		MaxAge:   getEnvDurationOrDefault("EXPORT_MAX_AGE", 24*time.Hour),
		Interval: getEnvDurationOrDefault("EXPORT_CLEANUP_INTERVAL", time.Hour),
	}
}

// validateConfig runs the struct tags and reports the first failing field
func validateConfig(config *Config) error {
	err := validate.Struct(config)
	if err == nil {
		return nil
	}
	if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return errors.ConfigInvalid(fmt.Sprintf("%s fails %q (got %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return errors.WithCode(errors.CodeConfigInvalid, err)
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

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
