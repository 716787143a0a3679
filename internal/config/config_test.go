package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, info, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)

	assert.False(t, info.Found)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_ParsesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	doc := `
[server]
port = 8088
max_upload_mb = 8

[log]
level = "debug"
format = "json"

[session]
ttl = "5m"
purge_schedule = "@every 30s"
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	cfg, info, err := Load(path)
	require.NoError(t, err)

	assert.True(t, info.Found)
	assert.True(t, info.PortSpecified)
	assert.Equal(t, 8088, cfg.Server.Port)
	assert.Equal(t, int64(8), cfg.Server.MaxUploadMB)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 5*time.Minute, cfg.Session.TTL.Duration)
	assert.Equal(t, "@every 30s", cfg.Session.PurgeSchedule)
	assert.Equal(t, DefaultConfig().Data.UploadLogDSN, cfg.Data.UploadLogDSN)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("OPSDASH_PORT", "9000")
	t.Setenv("OPSDASH_LOG_LEVEL", "warn")
	t.Setenv("OPSDASH_UPLOAD_LOG_DSN", "uploads.db")

	cfg, info, err := Load(filepath.Join(t.TempDir(), "none.toml"))
	require.NoError(t, err)

	assert.True(t, info.PortSpecified)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "uploads.db", cfg.Data.UploadLogDSN)
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[session]\nttl = \"soon\"\n"), 0644))
	_, _, err := Load(bad)
	assert.Error(t, err)

	zero := filepath.Join(dir, "zero.toml")
	require.NoError(t, os.WriteFile(zero, []byte("[server]\nport = 0\n"), 0644))
	_, _, err = Load(zero)
	assert.Error(t, err)
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := DefaultConfig()
	cfg.Server.Port = 7001

	require.NoError(t, SaveConfig(path, cfg))
	loaded, _, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
