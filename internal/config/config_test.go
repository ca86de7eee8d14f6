package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Fills defaults for missing keys", func(t *testing.T) {
		// Given: a config file with only the log level
		path := writeConfig(t, "log-level: debug\n")

		// When: loading it
		conf, err := Load(path)

		// Then: every other field has its default
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, "9091", conf.SocketPort)
		assert.Equal(t, 60*time.Second, conf.WebSocket.PongWait)
		assert.Equal(t, 54*time.Second, conf.WebSocket.PingPeriod())
		assert.Equal(t, 32, conf.WebSocket.MaxNameLength)
		assert.False(t, conf.Redis.Enabled)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, time.Hour, conf.Redis.SnapshotTTL)
	})

	t.Run("Environment overrides the file", func(t *testing.T) {
		// Given: a file and an environment override
		path := writeConfig(t, "http-port: \"8000\"\nredis:\n  enabled: false\n")
		t.Setenv("GOMOKU_HTTP_PORT", "8080")
		t.Setenv("GOMOKU_REDIS_ENABLED", "true")

		// When: loading it
		conf, err := Load(path)

		// Then: the environment wins
		require.NoError(t, err)
		assert.Equal(t, "8080", conf.HTTPPort)
		assert.True(t, conf.Redis.Enabled)
	})

	t.Run("Missing file is an error", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))

		require.Error(t, err)
		assert.Panics(t, func() { MustLoad(filepath.Join(t.TempDir(), "absent.yml")) })
	})
}

func TestRedis_GetRedisAddr(t *testing.T) {
	t.Run("Joins host and port", func(t *testing.T) {
		conf := Redis{Host: "cache", Port: "6380"}

		assert.Equal(t, "cache:6380", conf.GetRedisAddr())
	})

	t.Run("Empty host gives no address", func(t *testing.T) {
		conf := Redis{Port: "6379"}

		assert.Empty(t, conf.GetRedisAddr())
	})
}
