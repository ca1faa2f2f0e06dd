package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/webkit/pkg/cookie"
	"github.com/dmitrymomot/webkit/pkg/logger"
)

// Manager loads, creates and persists sessions. It holds no per-request
// state; the current session travels in the request context.
type Manager struct {
	store         Store
	transport     Transport
	config        Config
	cookies       *cookie.Manager
	cookieOptions []cookie.Option
	log           *slog.Logger
	ownsStore     bool
}

// New creates a Manager. Without WithStore sessions are kept in memory;
// without WithTransport a cookie manager is required.
func New(opts ...Option) (*Manager, error) {
	m := &Manager{
		config: DefaultConfig(),
		log:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.config.IdleTimeout <= 0 {
		m.config.IdleTimeout = DefaultConfig().IdleTimeout
	}
	if m.config.MaxLifetime <= 0 {
		m.config.MaxLifetime = DefaultConfig().MaxLifetime
	}
	if m.config.CookieName == "" {
		m.config.CookieName = DefaultConfig().CookieName
	}

	if m.transport == nil {
		if m.cookies == nil {
			return nil, ErrNoTransport
		}
		copts := m.cookieOptions
		if m.config.SecureCookies {
			copts = append([]cookie.Option{cookie.WithSecure(true)}, copts...)
		}
		m.transport = NewCookieTransport(m.cookies, m.config.CookieName, copts...)
	}

	if m.store == nil {
		m.store = NewMemoryStore(m.config.CleanupInterval)
		m.ownsStore = true
	}

	return m, nil
}

// Start returns the session of the request, loading it through the
// transport or creating a new one. Calling it again for a request whose
// context already carries a live session returns that session.
func (m *Manager) Start(ctx context.Context, w http.ResponseWriter, r *http.Request) (*Session, error) {
	if s, ok := FromContext(r.Context()); ok && !s.Destroyed() {
		return s, nil
	}

	if token, err := m.transport.GetToken(r); err == nil {
		s, err := m.store.Get(ctx, token)
		switch {
		case err == nil:
			if err := m.touch(ctx, w, s); err != nil {
				return nil, err
			}
			return s, nil
		case errors.Is(err, ErrSessionNotFound),
			errors.Is(err, ErrSessionExpired),
			errors.Is(err, ErrInvalidSession):
			m.log.DebugContext(ctx, "session discarded", logger.Error(err))
		default:
			return nil, err
		}
	}

	return m.create(ctx, w)
}

// Save persists s and clears its dirty flag.
func (m *Manager) Save(ctx context.Context, s *Session) error {
	if s == nil {
		return ErrInvalidSession
	}
	if s.destroyed {
		return ErrDestroyed
	}
	if err := m.store.Save(ctx, s); err != nil {
		return err
	}
	s.dirty = false
	return nil
}

// Regenerate issues a new token for s, keeping its data. The old token
// stays valid until it expires unless deleteOld is set.
func (m *Manager) Regenerate(ctx context.Context, w http.ResponseWriter, s *Session, deleteOld bool) error {
	if s == nil {
		return ErrInvalidSession
	}
	if s.destroyed {
		return ErrDestroyed
	}

	token, err := generateToken()
	if err != nil {
		return err
	}

	old := s.Token
	s.Token = token
	if err := m.store.Save(ctx, s); err != nil {
		s.Token = old
		return err
	}
	s.dirty = false

	if deleteOld {
		if err := m.store.Delete(ctx, old); err != nil {
			m.log.WarnContext(ctx, "failed to delete previous session", logger.Error(err))
		}
	}

	return m.transport.SetToken(w, token, time.Until(s.ExpiresAt))
}

// Destroy removes s from the store, clears its data and expires the client
// token. A destroyed session can no longer be saved or regenerated.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, s *Session) error {
	if s == nil {
		return nil
	}

	err := m.store.Delete(ctx, s.Token)
	s.Data = make(map[string]any)
	s.dirty = false
	s.destroyed = true

	return errors.Join(err, m.transport.ClearToken(w, nil))
}

// Close stops the cleanup of the memory store created by New.
func (m *Manager) Close() error {
	if ms, ok := m.store.(*MemoryStore); ok && m.ownsStore {
		return ms.Close()
	}
	return nil
}

func (m *Manager) create(ctx context.Context, w http.ResponseWriter) (*Session, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	s := NewSession(token, 0)
	s.ExpiresAt = m.expiry(s.CreatedAt, s.CreatedAt)

	if err := m.store.Save(ctx, s); err != nil {
		return nil, err
	}
	if err := m.transport.SetToken(w, token, time.Until(s.ExpiresAt)); err != nil {
		_ = m.store.Delete(ctx, token)
		return nil, err
	}

	m.log.DebugContext(ctx, "session created", logger.SessionID(s.ID.String()))
	return s, nil
}

// touch slides the expiry of s forward once ActivityUpdateThreshold has
// passed since the last refresh.
func (m *Manager) touch(ctx context.Context, w http.ResponseWriter, s *Session) error {
	now := time.Now()
	if now.Sub(s.LastActivityAt) < m.config.ActivityUpdateThreshold {
		return nil
	}

	s.LastActivityAt = now
	s.ExpiresAt = m.expiry(s.CreatedAt, now)
	if err := m.store.Save(ctx, s); err != nil {
		return err
	}
	return m.transport.SetToken(w, s.Token, time.Until(s.ExpiresAt))
}

// expiry is the earlier of the idle deadline and the lifetime deadline.
func (m *Manager) expiry(createdAt, now time.Time) time.Time {
	idle := now.Add(m.config.IdleTimeout)
	lifetime := createdAt.Add(m.config.MaxLifetime)
	if lifetime.Before(idle) {
		return lifetime
	}
	return idle
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
