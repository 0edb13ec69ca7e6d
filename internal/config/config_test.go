package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Address())
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "task_session", cfg.Session.CookieName)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.True(t, cfg.Migrations.Enabled)
	assert.NotEmpty(t, cfg.Database.URL, "database URL is derived from parts when unset")
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SESSION_TTL", "1h")
	t.Setenv("SESSION_COOKIE_NAME", "sid")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "30")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/app?sslmode=disable")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", cfg.Address())
	assert.Equal(t, time.Hour, cfg.Session.TTL)
	assert.Equal(t, "sid", cfg.Session.CookieName)
	assert.Equal(t, 30*time.Second, cfg.Context.RequestTimeout)
	assert.Equal(t, "postgres://u:p@db:5432/app?sslmode=disable", cfg.Database.URL)
}
