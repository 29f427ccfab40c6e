package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
)

func TestNew_JSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.log")

	log, err := New(config.LogConfig{Level: "warn", Format: "json", Output: path})
	require.NoError(t, err)

	log.Info("ignored")
	log.Warn("discount rejected", zap.Float64("percent", 120))
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "ignored")
	assert.Contains(t, string(data), `"percent":120`)
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(config.LogConfig{Level: "loud", Format: "console"})
	assert.Error(t, err)
}

func TestNewFromConfig_ReplacesGlobals(t *testing.T) {
	cfg := &config.Config{Log: config.LogConfig{Level: "debug", Format: "console", Output: "stderr"}}

	log, cleanup, err := NewFromConfig(cfg)
	require.NoError(t, err)
	assert.Same(t, log, zap.L())

	cleanup()
	assert.NotSame(t, log, zap.L())
}
