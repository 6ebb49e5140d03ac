package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults(t *testing.T) *viper.Viper {
	t.Helper()
	v := viper.New()
	setDefaults(v)
	return v
}

func TestDecode_Defaults(t *testing.T) {
	cfg, err := decode(defaults(t))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 15*time.Second, cfg.HTTP.WriteTimeout)
	assert.Equal(t, "memory", cfg.Session.Medium)
	assert.Equal(t, "doct_browser", cfg.Session.CookieName)
	assert.Equal(t, 30*time.Minute, cfg.Session.IdleTimeout)
	assert.Equal(t, "memory", cfg.Repository.Driver)
	assert.True(t, cfg.Repository.Seed)
	assert.False(t, cfg.NeedsRedis())

	d := cfg.Mock.Delays
	assert.Equal(t, time.Second, d.Login)
	assert.Equal(t, 1500*time.Millisecond, d.Register)
	assert.Equal(t, 500*time.Millisecond, d.Logout)
	assert.Equal(t, time.Second, d.UpdateProfile)
	assert.Equal(t, "https://placehold.co/150x150", cfg.Mock.AvatarBaseURL)
	assert.Equal(t, "http://localhost:8080/auth/reset-password", cfg.Queue.ResetURL)
}

func TestDecode_CommaSeparatedOrigins(t *testing.T) {
	v := defaults(t)
	v.Set("allowcorsorigins", "https://a.example,https://b.example")

	cfg, err := decode(v)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowCORSOrigins)
}

func TestDecode_RejectsUnknownMedium(t *testing.T) {
	v := defaults(t)
	v.Set("session.medium", "cookie")

	_, err := decode(v)
	assert.ErrorContains(t, err, "session.medium")
}

func TestDecode_PostgresNeedsDSN(t *testing.T) {
	v := defaults(t)
	v.Set("repository.driver", "postgres")

	_, err := decode(v)
	assert.ErrorContains(t, err, "postgres.dsn")

	v.Set("postgres.dsn", "postgres://localhost/docconnect")
	cfg, err := decode(v)
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Repository.Driver)
}

func TestNeedsRedis(t *testing.T) {
	cfg := &AppConfig{Session: SessionConfig{Medium: "redis"}}
	assert.True(t, cfg.NeedsRedis())

	cfg = &AppConfig{Session: SessionConfig{Medium: "memory"}, Queue: QueueConfig{Enabled: true}}
	assert.True(t, cfg.NeedsRedis())
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("DOCCONNECT_HTTP_PORT", "9090")
	t.Setenv("DOCCONNECT_MOCK_DELAYS_LOGIN", "0s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, time.Duration(0), cfg.Mock.Delays.Login)
}
