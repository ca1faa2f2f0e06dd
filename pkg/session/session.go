package session

import (
	"maps"
	"time"

	"github.com/google/uuid"
)

// Session is the server-side state bound to one client token.
type Session struct {
	ID             uuid.UUID      `json:"id"`
	Token          string         `json:"token"`
	Data           map[string]any `json:"data,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	LastActivityAt time.Time      `json:"last_activity_at"`
	ExpiresAt      time.Time      `json:"expires_at"`

	dirty     bool
	destroyed bool
}

// NewSession creates a session that expires after ttl.
func NewSession(token string, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:             uuid.New(),
		Token:          token,
		Data:           make(map[string]any),
		CreatedAt:      now,
		LastActivityAt: now,
		ExpiresAt:      now.Add(ttl),
	}
}

func (s *Session) IsExpired() bool {
	return s != nil && time.Now().After(s.ExpiresAt)
}

// Dirty reports whether the session changed since it was loaded or saved.
func (s *Session) Dirty() bool {
	return s != nil && s.dirty
}

// Destroyed reports whether Manager.Destroy was called on the session.
func (s *Session) Destroyed() bool {
	return s != nil && s.destroyed
}

func (s *Session) Get(key string) (any, bool) {
	if s == nil || s.Data == nil {
		return nil, false
	}
	v, ok := s.Data[key]
	return v, ok
}

// Value returns the value stored under key, or def when there is none.
func (s *Session) Value(key string, def any) any {
	if v, ok := s.Get(key); ok && v != nil {
		return v
	}
	return def
}

// Has reports whether key holds a non-nil value.
func (s *Session) Has(key string) bool {
	v, ok := s.Get(key)
	return ok && v != nil
}

func (s *Session) GetString(key string) (string, bool) {
	v, ok := s.Get(key)
	if !ok {
		return "", false
	}
	str, ok := v.(string)
	return str, ok
}

// GetInt accepts the numeric types a value may take after a JSON round trip.
func (s *Session) GetInt(key string) (int, bool) {
	v, ok := s.Get(key)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

func (s *Session) GetBool(key string) (bool, bool) {
	v, ok := s.Get(key)
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

func (s *Session) Set(key string, value any) {
	if s == nil {
		return
	}
	if s.Data == nil {
		s.Data = make(map[string]any)
	}
	s.Data[key] = value
	s.dirty = true
}

// Remove deletes key. Removing a missing key is a no-op.
func (s *Session) Remove(key string) {
	if s == nil || s.Data == nil {
		return
	}
	if _, ok := s.Data[key]; ok {
		delete(s.Data, key)
		s.dirty = true
	}
}

// All returns a copy of the session data.
func (s *Session) All() map[string]any {
	if s == nil || s.Data == nil {
		return map[string]any{}
	}
	return maps.Clone(s.Data)
}

func (s *Session) Clear() {
	if s == nil {
		return
	}
	s.Data = make(map[string]any)
	s.dirty = true
}

// clone returns a deep enough copy for stores: Data is copied, values are shared.
func (s *Session) clone() *Session {
	c := *s
	c.Data = maps.Clone(s.Data)
	if c.Data == nil {
		c.Data = make(map[string]any)
	}
	c.dirty = false
	return &c
}
