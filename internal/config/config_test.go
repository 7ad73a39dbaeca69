package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("ENABLE_ALERT_GENERATION", "")
	t.Setenv("RATE_LIMIT_WINDOW", "")
	t.Setenv("RATE_LIMIT_WINDOW_MS", "")
	t.Setenv("RATE_LIMIT_MAX_REQUESTS", "")

	cfg := Load()

	assert.Equal(t, "file", cfg.StoreDriver)
	assert.True(t, cfg.EnableAlertGeneration)
	assert.Equal(t, 15*time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, 100, cfg.RateLimitMax)
	assert.Equal(t, 7*24*time.Hour, cfg.JWTExpiry)
}

func TestLoadAlertToggleOnlyDisabledByLiteralFalse(t *testing.T) {
	t.Setenv("ENABLE_ALERT_GENERATION", "false")
	assert.False(t, Load().EnableAlertGeneration)

	t.Setenv("ENABLE_ALERT_GENERATION", "0")
	assert.True(t, Load().EnableAlertGeneration)
}

func TestRateLimitWindowMilliseconds(t *testing.T) {
	t.Setenv("RATE_LIMIT_WINDOW", "")
	t.Setenv("RATE_LIMIT_WINDOW_MS", "60000")
	assert.Equal(t, time.Minute, Load().RateLimitWindow)

	t.Setenv("RATE_LIMIT_WINDOW", "30s")
	assert.Equal(t, 30*time.Second, Load().RateLimitWindow)
}

func TestOpenAIBaseURLTrimmed(t *testing.T) {
	t.Setenv("OPENAI_BASE_URL", "http://localhost:9999/")
	assert.Equal(t, "http://localhost:9999", Load().OpenAIBaseURL)
}
