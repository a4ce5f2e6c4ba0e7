package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.False(t, cfg.RedisEnabled)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 0, cfg.Redis.DB)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Empty(t, cfg.Notifier.WebhookURL)
	assert.True(t, cfg.Policy.AllowAdHocPoints)
	assert.True(t, cfg.Seed.SuperAdmin)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("NOTIFIER_WEBHOOK_URL", "http://hooks.internal/facility")
	t.Setenv("ALLOW_ADHOC_POINTS", "false")
	t.Setenv("SEED_SUPERADMIN", "false")

	cfg := Load()
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.True(t, cfg.RedisEnabled)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "http://hooks.internal/facility", cfg.Notifier.WebhookURL)
	assert.False(t, cfg.Policy.AllowAdHocPoints)
	assert.False(t, cfg.Seed.SuperAdmin)
}

func TestParseIntFallsBackOnGarbage(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")
	cfg := Load()
	assert.Equal(t, 0, cfg.Redis.DB)
}
