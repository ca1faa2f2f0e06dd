package session

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/webkit/pkg/cookie"
)

type Option func(*Manager)

func WithStore(store Store) Option {
	return func(m *Manager) { m.store = store }
}

func WithTransport(t Transport) Option {
	return func(m *Manager) { m.transport = t }
}

func WithConfig(cfg Config) Option {
	return func(m *Manager) { m.config = cfg }
}

func WithCookieName(name string) Option {
	return func(m *Manager) { m.config.CookieName = name }
}

func WithIdleTimeout(d time.Duration) Option {
	return func(m *Manager) { m.config.IdleTimeout = d }
}

func WithMaxLifetime(d time.Duration) Option {
	return func(m *Manager) { m.config.MaxLifetime = d }
}

func WithActivityUpdateThreshold(d time.Duration) Option {
	return func(m *Manager) { m.config.ActivityUpdateThreshold = d }
}

// WithCookieManager sets the cookie manager backing the default transport.
func WithCookieManager(cm *cookie.Manager, opts ...cookie.Option) Option {
	return func(m *Manager) {
		m.cookies = cm
		m.cookieOptions = opts
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}
