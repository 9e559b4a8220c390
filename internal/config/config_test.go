package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"distviz/internal/errors"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "API_PORT", "GIN_MODE", "LOG_LEVEL", "CHART_FORMAT", "DEFAULT_WIDTH", "SAMPLE_RESOLUTION", "MAX_INSTANCES", "EXPORT_DIR"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "8081", cfg.Server.APIPort)
	assert.Equal(t, "INFO", cfg.Server.LogLevel)
	assert.Equal(t, "png", cfg.Chart.Format)
	assert.Equal(t, 640, cfg.Chart.DefaultWidth)
	assert.Zero(t, cfg.Chart.Resolution)
	assert.Empty(t, cfg.Export.Dir)
	assert.Equal(t, 24*time.Hour, cfg.Export.MaxAge)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("API_PORT", "9001")
	t.Setenv("GIN_MODE", "release")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CHART_FORMAT", "SVG")
	t.Setenv("DEFAULT_WIDTH", "300")
	t.Setenv("SAMPLE_RESOLUTION", "1500")
	t.Setenv("EXPORT_DIR", "/tmp/frames")
	t.Setenv("EXPORT_MAX_AGE", "90m")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "DEBUG", cfg.Server.LogLevel)
	assert.Equal(t, "svg", cfg.Chart.Format)
	assert.Equal(t, 300, cfg.Chart.DefaultWidth)
	assert.Equal(t, 1500, cfg.Chart.Resolution)
	assert.Equal(t, "/tmp/frames", cfg.Export.Dir)
	assert.Equal(t, 90*time.Minute, cfg.Export.MaxAge)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"gif charts", "CHART_FORMAT", "gif"},
		{"non-numeric port", "PORT", "http"},
		{"huge width", "DEFAULT_WIDTH", "100000"},
		{"resolution too high", "SAMPLE_RESOLUTION", "20000"},
		{"unknown gin mode", "GIN_MODE", "turbo"},
		{"unknown log level", "LOG_LEVEL", "LOUD"},
		{"same ports", "API_PORT", "8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PORT", "8080")
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
			assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
		})
	}
}
