package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.API.Hostname)
	assert.Empty(t, cfg.API.URL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, 20, cfg.Pagination.DefaultSize)
	assert.Equal(t, 1000, cfg.Export.Size)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "auto", cfg.Upload.Mode)
	assert.EqualValues(t, 20*1000*1000, cfg.Upload.MaxSizeBytes())
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  url: http://files.example:9000/api
  timeout: 5s
pagination:
  default_size: 50
export:
  dir: out
`), 0o644))
	t.Setenv("EXCELPANEL_PAGINATION_DEFAULT_SIZE", "100")
	t.Setenv("EXCELPANEL_UPLOAD_MODE", "confirm")

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, "http://files.example:9000/api", cfg.API.URL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, 100, cfg.Pagination.DefaultSize)
	assert.Equal(t, "out", cfg.Export.Dir)
	assert.Equal(t, "confirm", cfg.Upload.Mode)
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("EXCELPANEL_API_HOSTNAME=panel.example.com\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("EXCELPANEL_API_HOSTNAME") })

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "panel.example.com", cfg.API.Hostname)
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := Load(viper.New(), "nope.yaml")
	assert.Error(t, err)
}

func TestFinalizeValidates(t *testing.T) {
	cfg := Default()
	cfg.Pagination.DefaultSize = 0
	assert.Error(t, cfg.Finalize())

	cfg = Default()
	cfg.Upload.Mode = "sometimes"
	assert.Error(t, cfg.Finalize())

	cfg = Default()
	cfg.Upload.MaxSize = "lots"
	assert.Error(t, cfg.Finalize())

	cfg = Default()
	cfg.Upload.MaxSize = ""
	require.NoError(t, cfg.Finalize())
	assert.Zero(t, cfg.Upload.MaxSizeBytes())
}
