package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var defaultEnvLoaded sync.Once

// loadDefaultEnv reads ./.env once per process. A missing file is fine.
// Variables already present in the environment are never overwritten.
func loadDefaultEnv() {
	defaultEnvLoaded.Do(func() {
		_ = godotenv.Load()
	})
}

// LoadFiles reads the given env files into the process environment.
// Existing variables win over file values, and earlier files win over later ones.
func LoadFiles(files ...string) error {
	if len(files) == 0 {
		return nil
	}
	if err := godotenv.Load(files...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

// Load parses environment variables into v according to its `env` struct
// tags, after loading ./.env on first use.
//
// Example:
//
//	type DatabaseConfig struct {
//		Host     string `env:"DB_HOST" envDefault:"localhost"`
//		Database string `env:"DB_DATABASE,required"`
//	}
//
//	var cfg DatabaseConfig
//	if err := config.Load(&cfg); err != nil {
//		// Handle error
//	}
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	loadDefaultEnv()

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad works like Load but panics on failure. Use it for settings the
// program cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// Env returns the value of key, or def when the variable is unset.
// An explicitly empty variable is returned as is.
func Env(key, def string) string {
	loadDefaultEnv()
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

// EnvInt returns key parsed as an integer, or def when unset, empty or malformed.
func EnvInt(key string, def int) int {
	n, err := strconv.Atoi(Env(key, ""))
	if err != nil {
		return def
	}
	return n
}

// EnvBool returns key parsed as a boolean, or def when unset, empty or malformed.
func EnvBool(key string, def bool) bool {
	b, err := strconv.ParseBool(Env(key, ""))
	if err != nil {
		return def
	}
	return b
}
