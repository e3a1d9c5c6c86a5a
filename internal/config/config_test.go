// README: Tests for config precedence (defaults, yaml, env) and validation.
package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripmate/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, time.Duration(0), cfg.HTTP.ReplyDelay)
	assert.Equal(t, []string{"*"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, 10.0, cfg.HTTP.RateLimitRPS)
	assert.Equal(t, 20, cfg.HTTP.RateLimitBurst)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, 24*time.Hour, cfg.Redis.SessionTTL)
	assert.Empty(t, cfg.DB.DSN)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	yaml := []byte("http:\n  addr: \":7000\"\n  reply_delay: 1500ms\nredis:\n  addr: localhost:6379\nlog:\n  level: debug\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))

	t.Setenv("TRIPMATE_HTTP_ADDR", ":9090")
	t.Setenv("TRIPMATE_REDIS_SESSION_TTL", "1h")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.HTTP.Addr, "env beats yaml")
	assert.Equal(t, 1500*time.Millisecond, cfg.HTTP.ReplyDelay)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, time.Hour, cfg.Redis.SessionTTL)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TRIPMATE_DB_DSN=postgres://localhost/tripmate\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("TRIPMATE_DB_DSN") })

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/tripmate", cfg.DB.DSN)
}

func TestLoad_Invalid(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TRIPMATE_HTTP_RATE_LIMIT_BURST", "0")

	_, err := config.Load()
	assert.Error(t, err)
}
