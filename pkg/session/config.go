package session

import "time"

type Config struct {
	CookieName  string        `env:"SESSION_COOKIE_NAME" envDefault:"sid"`
	IdleTimeout time.Duration `env:"SESSION_IDLE_TIMEOUT" envDefault:"30m"`
	MaxLifetime time.Duration `env:"SESSION_MAX_LIFETIME" envDefault:"24h"`

	// ActivityUpdateThreshold is the minimum time between expiry refreshes.
	ActivityUpdateThreshold time.Duration `env:"SESSION_ACTIVITY_UPDATE_THRESHOLD" envDefault:"5m"`

	// CleanupInterval for the default memory store; 0 disables it.
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"5m"`

	SecureCookies bool `env:"SESSION_SECURE_COOKIES" envDefault:"false"`
}

func DefaultConfig() Config {
	return Config{
		CookieName:              "sid",
		IdleTimeout:             30 * time.Minute,
		MaxLifetime:             24 * time.Hour,
		ActivityUpdateThreshold: 5 * time.Minute,
		CleanupInterval:         5 * time.Minute,
	}
}

// NewFromConfig creates a Manager from cfg; opts are applied after it.
func NewFromConfig(cfg Config, opts ...Option) (*Manager, error) {
	return New(append([]Option{WithConfig(cfg)}, opts...)...)
}
