package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoad_Defaults verifies that default values are used when env vars are missing.
func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("APP_ENV")
	os.Unsetenv("LOG_LEVEL")
	os.Unsetenv("SERVER_PORT")

	os.Setenv("REDIS_URL", "redis://localhost:6379")
	defer os.Unsetenv("REDIS_URL")

	cfg, err := Load(".")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, 4, cfg.Orders.CodeLength)
	assert.Equal(t, 10, cfg.Orders.CodeMaxAttempts)
	assert.Equal(t, 20*time.Second, cfg.Tracking.PrepWindow())
	assert.Equal(t, 60*time.Second, cfg.Tracking.ReadyWindow())
	assert.Equal(t, 4*time.Second, cfg.Tracking.PollInterval())
	assert.Empty(t, cfg.LockerBridgeURL)
}

// TestLoad_EnvVars verifies that environment variables override defaults.
func TestLoad_EnvVars(t *testing.T) {
	os.Setenv("APP_ENV", "production")
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("SERVER_PORT", "9090")
	os.Setenv("REDIS_URL", "redis://cache:6379/1")
	os.Setenv("ORDER_CODE_LENGTH", "6")
	os.Setenv("TRACKING_PREP_WINDOW_SECONDS", "45")
	os.Setenv("LOCKER_BRIDGE_URL", "http://locker-bridge:9000")
	defer func() {
		os.Unsetenv("APP_ENV")
		os.Unsetenv("LOG_LEVEL")
		os.Unsetenv("SERVER_PORT")
		os.Unsetenv("REDIS_URL")
		os.Unsetenv("ORDER_CODE_LENGTH")
		os.Unsetenv("TRACKING_PREP_WINDOW_SECONDS")
		os.Unsetenv("LOCKER_BRIDGE_URL")
	}()

	cfg, err := Load(".")
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, "redis://cache:6379/1", cfg.RedisURL)
	assert.Equal(t, 6, cfg.Orders.CodeLength)
	assert.Equal(t, 45*time.Second, cfg.Tracking.PrepWindow())
	assert.Equal(t, "http://locker-bridge:9000", cfg.LockerBridgeURL)
}

// TestLoad_File verifies that values are loaded from a .env file.
func TestLoad_File(t *testing.T) {
	content := []byte(`
APP_ENV=staging
LOG_LEVEL=warn
SERVER_PORT=7070
REDIS_URL=redis://staging:6379
TRACKING_POLL_SECONDS=2
`)
	err := os.WriteFile(".env", content, 0644)
	require.NoError(t, err)
	defer os.Remove(".env")

	cfg, err := Load(".")
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 7070, cfg.ServerPort)
	assert.Equal(t, 2*time.Second, cfg.Tracking.PollInterval())
}

// TestLoad_ValidationFailure verifies that missing required fields return an error.
func TestLoad_ValidationFailure(t *testing.T) {
	os.Unsetenv("REDIS_URL")

	cfg, err := Load(".")
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "missing required configuration")
}
