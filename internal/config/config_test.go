package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("WARBAND_DATABASE_URL", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/warband")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.APIPort)
	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.IsProduction())
	assert.True(t, cfg.RateLimitEnabled)
	assert.Equal(t, 64, cfg.RebuildQueueSize)
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("X_STR", "value")
	t.Setenv("X_INT", "42")
	t.Setenv("X_BOOL", "true")
	t.Setenv("X_LIST", "a, b ,,c")
	t.Setenv("X_BAD_INT", "nope")

	assert.Equal(t, "value", envOr("X_STR", "fallback"))
	assert.Equal(t, "fallback", envOr("X_MISSING", "fallback"))
	assert.Equal(t, 42, envInt("X_INT", 7))
	assert.Equal(t, 7, envInt("X_BAD_INT", 7))
	assert.True(t, envBool("X_BOOL", false))
	assert.Equal(t, []string{"a", "b", "c"}, envList("X_LIST", nil))
}
