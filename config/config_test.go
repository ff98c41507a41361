package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.WebServer.Port)
	assert.Equal(t, []string{"*"}, cfg.WebServer.AllowedOrigins)
	assert.Empty(t, cfg.WebServer.TrustedProxies)
	assert.Equal(t, "per_call", cfg.DataSource.Sticky)
	assert.Equal(t, "", cfg.DataSource.Mode)
	assert.Equal(t, "embedded", cfg.Snapshot.Source)
	assert.Equal(t, 60, cfg.API.TimeoutSeconds)
	assert.True(t, cfg.Cache.Enabled)
	assert.False(t, cfg.API.IsProduction())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("ARENA_API_BASE_URL", "https://analytics.example.com/api")
	t.Setenv("ARENA_API_ENVIRONMENT", "Production")
	t.Setenv("ARENA_DATASOURCE_STICKY", "once")
	t.Setenv("ARENA_CACHE_ENABLED", "false")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://analytics.example.com/api", cfg.API.BaseURL)
	assert.True(t, cfg.API.IsProduction())
	assert.Equal(t, "once", cfg.DataSource.Sticky)
	assert.False(t, cfg.Cache.Enabled)
}
