package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults with required env", func(t *testing.T) {
		t.Setenv("UPSTREAM_BASE_URL", "https://hr.example.com/api")
		t.Setenv("JWT_SECRET", "secret")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "3000", cfg.Server.Port)
		assert.Equal(t, "memory", cfg.Cache.Store)
		assert.Equal(t, 400*time.Millisecond, cfg.Search.Debounce)
		assert.Equal(t, "Token", cfg.Upstream.AuthScheme)
		assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTTL)
		assert.False(t, cfg.IsProduction())
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("UPSTREAM_BASE_URL", "https://hr.example.com/api")
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("SERVER_PORT", "8081")
		t.Setenv("SEARCH_DEBOUNCE", "250ms")
		t.Setenv("APP_ENV", "production")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "8081", cfg.Server.Port)
		assert.Equal(t, 250*time.Millisecond, cfg.Search.Debounce)
		assert.True(t, cfg.IsProduction())
	})

	t.Run("negative missing upstream", func(t *testing.T) {
		t.Setenv("UPSTREAM_BASE_URL", "")
		t.Setenv("JWT_SECRET", "secret")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("negative redis store without addr", func(t *testing.T) {
		t.Setenv("UPSTREAM_BASE_URL", "https://hr.example.com/api")
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("CACHE_STORE", "redis")
		t.Setenv("REDIS_ADDR", "")

		_, err := Load()
		assert.Error(t, err)
	})
}
