package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/webkit/pkg/config"
)

type testConfig struct {
	Host    string `env:"CFGTEST_HOST" envDefault:"localhost"`
	Port    int    `env:"CFGTEST_PORT" envDefault:"5432"`
	Name    string `env:"CFGTEST_NAME,required"`
	Verbose bool   `env:"CFGTEST_VERBOSE"`
}

func TestLoad(t *testing.T) {
	t.Run("parses values and defaults", func(t *testing.T) {
		t.Setenv("CFGTEST_NAME", "app")
		t.Setenv("CFGTEST_PORT", "6543")

		var cfg testConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "localhost", cfg.Host)
		assert.Equal(t, 6543, cfg.Port)
		assert.Equal(t, "app", cfg.Name)
		assert.False(t, cfg.Verbose)
	})

	t.Run("missing required variable", func(t *testing.T) {
		var cfg testConfig
		err := config.Load(&cfg)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("malformed value", func(t *testing.T) {
		t.Setenv("CFGTEST_NAME", "app")
		t.Setenv("CFGTEST_PORT", "not-a-number")

		var cfg testConfig
		err := config.Load(&cfg)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("nil pointer", func(t *testing.T) {
		err := config.Load[testConfig](nil)
		assert.ErrorIs(t, err, config.ErrNilPointer)
	})

	t.Run("must load panics", func(t *testing.T) {
		var cfg testConfig
		assert.Panics(t, func() { config.MustLoad(&cfg) })
	})
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("CFGTEST_FILE_ONLY=from-file\nCFGTEST_PRESET=from-file\n"), 0o600))

	t.Setenv("CFGTEST_PRESET", "from-env")
	t.Cleanup(func() { _ = os.Unsetenv("CFGTEST_FILE_ONLY") })

	require.NoError(t, config.LoadFiles(path))
	assert.Equal(t, "from-file", os.Getenv("CFGTEST_FILE_ONLY"))
	assert.Equal(t, "from-env", os.Getenv("CFGTEST_PRESET"))

	err := config.LoadFiles(filepath.Join(dir, "missing.env"))
	assert.ErrorIs(t, err, config.ErrLoadingEnvFile)

	assert.NoError(t, config.LoadFiles())
}

func TestEnv(t *testing.T) {
	t.Setenv("CFGTEST_SET", "value")
	t.Setenv("CFGTEST_EMPTY", "")
	t.Setenv("CFGTEST_INT", "42")
	t.Setenv("CFGTEST_BAD_INT", "4x2")
	t.Setenv("CFGTEST_BOOL", "true")

	assert.Equal(t, "value", config.Env("CFGTEST_SET", "def"))
	assert.Equal(t, "", config.Env("CFGTEST_EMPTY", "def"))
	assert.Equal(t, "def", config.Env("CFGTEST_UNSET", "def"))

	assert.Equal(t, 42, config.EnvInt("CFGTEST_INT", 1))
	assert.Equal(t, 1, config.EnvInt("CFGTEST_BAD_INT", 1))
	assert.Equal(t, 1, config.EnvInt("CFGTEST_UNSET", 1))

	assert.True(t, config.EnvBool("CFGTEST_BOOL", false))
	assert.True(t, config.EnvBool("CFGTEST_UNSET", true))
}
