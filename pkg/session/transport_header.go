package session

import (
	"net/http"
	"strings"
	"time"
)

// HeaderTransport carries the token in a request header, "Authorization:
// Bearer <token>" by default. Responses echo the token in the same header.
type HeaderTransport struct {
	header string
	prefix string
}

type HeaderOption func(*HeaderTransport)

// WithHeaderPrefix replaces the "Bearer " prefix. An empty prefix sends the
// bare token.
func WithHeaderPrefix(prefix string) HeaderOption {
	return func(t *HeaderTransport) { t.prefix = prefix }
}

func NewHeaderTransport(header string, opts ...HeaderOption) *HeaderTransport {
	if header == "" {
		header = "Authorization"
	}
	t := &HeaderTransport{header: header, prefix: "Bearer "}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// GetToken returns ErrSessionNotFound when the header is absent, empty or
// carries a different scheme.
func (t *HeaderTransport) GetToken(r *http.Request) (string, error) {
	value := strings.TrimSpace(r.Header.Get(t.header))
	if value == "" {
		return "", ErrSessionNotFound
	}
	if t.prefix != "" {
		if len(value) < len(t.prefix) || !strings.EqualFold(value[:len(t.prefix)], t.prefix) {
			return "", ErrSessionNotFound
		}
		value = strings.TrimSpace(value[len(t.prefix):])
	}
	if value == "" {
		return "", ErrSessionNotFound
	}
	return value, nil
}

func (t *HeaderTransport) SetToken(w http.ResponseWriter, token string, ttl time.Duration) error {
	w.Header().Set(t.header, t.prefix+token)
	if ttl > 0 {
		w.Header().Set(t.header+"-Expires", time.Now().Add(ttl).UTC().Format(time.RFC3339))
	}
	return nil
}

func (t *HeaderTransport) ClearToken(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Del(t.header)
	w.Header().Del(t.header + "-Expires")
	return nil
}
