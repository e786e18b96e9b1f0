package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 5*time.Minute, cfg.SessionWindow)
	assert.Equal(t, "redis", cfg.QueueBackend)
	assert.Equal(t, 120, cfg.RateLimitPerMin)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("SESSION_WINDOW", "10m")
	t.Setenv("QUEUE_BACKEND", "memory")
	t.Setenv("RATE_LIMIT_PER_MIN", "30")

	cfg := Load()
	assert.Equal(t, "9000", cfg.HTTPPort)
	assert.Equal(t, 10*time.Minute, cfg.SessionWindow)
	assert.Equal(t, "memory", cfg.QueueBackend)
	assert.Equal(t, 30, cfg.RateLimitPerMin)
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("SESSION_WINDOW", "not-a-duration")
	t.Setenv("RATE_LIMIT_PER_MIN", "lots")

	cfg := Load()
	assert.Equal(t, 5*time.Minute, cfg.SessionWindow)
	assert.Equal(t, 120, cfg.RateLimitPerMin)
}
