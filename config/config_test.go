package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 900, cfg.RateLimitWindowSeconds)
	assert.Equal(t, 3, cfg.RateLimitMaxRequests)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("RATE_LIMIT_WINDOW_SECONDS", "60")
	t.Setenv("RATE_LIMIT_MAX_REQUESTS", "10")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 60, cfg.RateLimitWindowSeconds)
	assert.Equal(t, 10, cfg.RateLimitMaxRequests)
}

func TestLoadConfigInvalidIntFallsBack(t *testing.T) {
	t.Setenv("RATE_LIMIT_MAX_REQUESTS", "three")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.RateLimitMaxRequests)
}

func TestRecipientFallbackChain(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, DefaultToEmail, cfg.ToEmail())
	assert.Equal(t, DefaultFromEmail, cfg.FromEmail())

	cfg.ResendFromEmail = "noreply@example.com"
	assert.Equal(t, "noreply@example.com", cfg.ToEmail(), "sender address is the secondary recipient fallback")
	assert.Equal(t, "noreply@example.com", cfg.FromEmail())

	cfg.ContactEmail = "me@example.com"
	assert.Equal(t, "me@example.com", cfg.ToEmail())
}
