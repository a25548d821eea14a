package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"excelPanel/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWritesToRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "panel.log")
	cfg := config.Default().Log
	cfg.File = path
	cfg.JSON = true
	cfg.Level = "debug"

	log, err := New(cfg, nil)
	require.NoError(t, err)
	log.Debug("fetching page", zap.Int("page", 2))
	_ = log.Sync()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"msg":"fetching page"`)
	assert.Contains(t, string(raw), `"page":2`)
}

func TestConsoleOnlyShowsWarnings(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Default().Log
	cfg.File = ""

	log, err := New(cfg, &buf)
	require.NoError(t, err)
	log.Info("quiet")
	log.Warn("loud")

	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "loud")
}

func TestConsoleHonoursStricterLevel(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Default().Log
	cfg.File = ""
	cfg.Level = "error"

	log, err := New(cfg, &buf)
	require.NoError(t, err)
	log.Warn("skipped")
	log.Error("shown")

	assert.NotContains(t, buf.String(), "skipped")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewWithoutSinksIsNop(t *testing.T) {
	log, err := New(config.LogConfig{Level: "info"}, nil)
	require.NoError(t, err)
	assert.NotNil(t, log)
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(config.LogConfig{Level: "chatty"}, nil)
	assert.Error(t, err)
}
