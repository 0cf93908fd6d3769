package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("WRITE_RATE_LIMIT", "")
	t.Setenv("SERVER_ADDR", "")
	t.Setenv("HEROES_API_URL", "")
	t.Setenv("SEARCH_DEBOUNCE", "")
	t.Setenv("HTTP_CLIENT_TIMEOUT", "")
	t.Setenv("HEROES_SEED_WATCH", "")

	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.GetServerAddr())
	assert.Empty(t, cfg.GetAPIBaseURL())
	assert.Equal(t, 300*time.Millisecond, cfg.GetSearchDebounce())
	assert.Equal(t, 10*time.Second, cfg.GetHTTPClientTimeout())
	assert.NotEmpty(t, cfg.GetSessionSecret())
	assert.Equal(t, 10.0, cfg.GetWriteRateLimit())
	assert.False(t, cfg.GetSeedWatch())
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("SERVER_ADDR", "127.0.0.1:9000")
	t.Setenv("HEROES_API_URL", "http://api.example.com/")
	t.Setenv("HEROES_SEED_FILE", "/data/heroes.json")
	t.Setenv("SEARCH_DEBOUNCE", "150ms")
	t.Setenv("WRITE_RATE_LIMIT", "2.5")
	t.Setenv("HEROES_SEED_WATCH", "true")

	cfg := FromEnv()

	assert.Equal(t, "127.0.0.1:9000", cfg.GetServerAddr())
	assert.Equal(t, "http://api.example.com", cfg.GetAPIBaseURL(), "trailing slash is trimmed")
	assert.Equal(t, "/data/heroes.json", cfg.GetSeedFile())
	assert.Equal(t, 150*time.Millisecond, cfg.GetSearchDebounce())
	assert.Equal(t, 2.5, cfg.GetWriteRateLimit())
	assert.True(t, cfg.GetSeedWatch())
}

func TestFromEnv_InvalidDurationFallsBack(t *testing.T) {
	t.Setenv("SEARCH_DEBOUNCE", "soon")

	cfg := FromEnv()

	assert.Equal(t, 300*time.Millisecond, cfg.GetSearchDebounce())
}

func TestFromEnv_InvalidBoolFallsBack(t *testing.T) {
	t.Setenv("HEROES_SEED_WATCH", "sometimes")

	cfg := FromEnv()

	assert.False(t, cfg.GetSeedWatch())
}
