package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadClientDefaults(t *testing.T) {
	t.Setenv("STOREFRONT_SEARCH_DEBOUNCE", "250ms")
	t.Setenv("REDIS_DB", "not-a-number")

	cfg := LoadClient()

	assert.Equal(t, 250*time.Millisecond, cfg.SearchDebounce)
	assert.Equal(t, 0, cfg.RedisDB, "unparsable values fall back to the default")
	assert.Equal(t, 10*time.Second, cfg.Timeout)
}

func TestLoadServer(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("RATE_LIMIT", "2.5")
	t.Setenv("TOKEN_TTL", "1h")

	cfg := LoadServer()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 2.5, cfg.RateLimit)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, 100, cfg.RateBurst)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("STOREFRONT_TEST_FROM_DOTENV=yes\n"), 0o600))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		os.Chdir(wd)
		os.Unsetenv("STOREFRONT_TEST_FROM_DOTENV")
	})

	require.NoError(t, LoadEnv())
	assert.Equal(t, "yes", os.Getenv("STOREFRONT_TEST_FROM_DOTENV"))
}

func TestLoadEnvWithoutFile(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(wd) })

	assert.NoError(t, LoadEnv())
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger("debug", "console")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(-1))

	_, err = NewLogger("loud", "json")
	assert.Error(t, err)

	_, err = NewLogger("info", "xml")
	assert.Error(t, err)
}
