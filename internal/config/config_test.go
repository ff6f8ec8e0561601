package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "http://localhost:8000", cfg.Snapshots.BaseURL)
	assert.Equal(t, 3, cfg.Snapshots.MaxRetries)
	assert.Equal(t, time.Second, cfg.Snapshots.RetryDelay)
	assert.Equal(t, 30*time.Second, cfg.Snapshots.Timeout)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.True(t, cfg.Scheduler.Enabled)
	assert.Equal(t, "*/15 * * * *", cfg.Scheduler.CronExpr)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
snapshots:
  base_url: "https://dash.example.com/snapshots"
  max_retries: 5
server:
  port: 9090
scheduler:
  enabled: false
log_level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "https://dash.example.com/snapshots", cfg.Snapshots.BaseURL)
	assert.Equal(t, 5, cfg.Snapshots.MaxRetries)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.False(t, cfg.Scheduler.Enabled)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host, "unset fields keep their defaults")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9090\n"), 0644))

	t.Setenv("TUBEDASH_BASE_URL", "https://env.example.com")
	t.Setenv("TUBEDASH_PORT", "7070")
	t.Setenv("TUBEDASH_LOG_LEVEL", "warning")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", cfg.Snapshots.BaseURL)
	assert.Equal(t, 7070, cfg.Server.Port, "environment beats the file")
	assert.Equal(t, "warning", cfg.LogLevel)
}

func TestLoadEnvIgnoresBadPort(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9090\n"), 0644))

	t.Setenv("TUBEDASH_PORT", "not-a-port")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Snapshots.Dir = "/var/snapshots"
	cfg.Server.Port = 9999
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/snapshots", loaded.Snapshots.Dir)
	assert.Equal(t, 9999, loaded.Server.Port)
}

func TestExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	assert.False(t, Exists(path))
	require.NoError(t, os.WriteFile(path, []byte("log_level: info\n"), 0644))
	assert.True(t, Exists(path))
}
