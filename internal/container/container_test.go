package container

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"distviz/domain/distribution"
	"distviz/internal/config"
)

func testConfig(exportDir string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: "8080", APIPort: "8081", GinMode: "test", LogLevel: "INFO"},
		Chart:  config.ChartConfig{Format: "svg", DefaultWidth: 320, MaxInstances: 4},
		Export: config.ExportConfig{Dir: exportDir, MaxAge: time.Hour, Interval: time.Hour},
	}
}

func TestNew_RequiresConfig(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}

func TestNew_WiresComponents(t *testing.T) {
	c, err := New(testConfig(t.TempDir()))
	require.NoError(t, err)
	defer c.Shutdown(context.Background())

	assert.NotNil(t, c.Registry)
	assert.NotNil(t, c.SSEHub)
	assert.NotNil(t, c.Handler)
	require.NotNil(t, c.FrameStore)

	inst, err := c.Registry.Create(distribution.KindGamma)
	require.NoError(t, err)
	data, format, _, err := inst.Chart()
	require.NoError(t, err)
	assert.Equal(t, "image/svg+xml", format.ContentType())
	assert.Contains(t, string(data), "<svg")

	key, err := inst.Export(context.Background(), c.FrameStore)
	require.NoError(t, err)
	ok, err := c.FrameStore.FrameExists(context.Background(), key)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNew_ExportDisabled(t *testing.T) {
	c, err := New(testConfig(""))
	require.NoError(t, err)
	assert.Nil(t, c.FrameStore)
	assert.NoError(t, c.Shutdown(context.Background()))
}

func TestNew_BadFormat(t *testing.T) {
	cfg := testConfig("")
	cfg.Chart.Format = "gif"
	_, err := New(cfg)
	assert.Error(t, err)
}

func TestShutdown_StopsJanitor(t *testing.T) {
	c, err := New(testConfig(t.TempDir()))
	require.NoError(t, err)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, c.Shutdown(ctx))
	assert.NoError(t, c.Shutdown(ctx))
}
