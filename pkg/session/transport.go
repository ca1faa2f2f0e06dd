package session

import (
	"net/http"
	"time"

	"github.com/dmitrymomot/webkit/pkg/cookie"
)

// Transport moves the session token between client and server.
type Transport interface {
	GetToken(r *http.Request) (string, error)
	SetToken(w http.ResponseWriter, token string, ttl time.Duration) error
	// ClearToken expires the token on the client. r may be nil.
	ClearToken(w http.ResponseWriter, r *http.Request) error
}

// CookieTransport keeps the token in an encrypted cookie.
type CookieTransport struct {
	cookies *cookie.Manager
	name    string
	options []cookie.Option
}

func NewCookieTransport(cookies *cookie.Manager, name string, opts ...cookie.Option) *CookieTransport {
	return &CookieTransport{cookies: cookies, name: name, options: opts}
}

// GetToken returns ErrSessionNotFound when the cookie is missing or cannot
// be decrypted.
func (t *CookieTransport) GetToken(r *http.Request) (string, error) {
	token, err := t.cookies.GetEncrypted(r, t.name)
	if err != nil || token == "" {
		return "", ErrSessionNotFound
	}
	return token, nil
}

func (t *CookieTransport) SetToken(w http.ResponseWriter, token string, ttl time.Duration) error {
	opts := append([]cookie.Option{
		cookie.WithMaxAge(int(ttl.Seconds())),
		cookie.WithHTTPOnly(true),
	}, t.options...)
	return t.cookies.SetEncrypted(w, t.name, token, opts...)
}

func (t *CookieTransport) ClearToken(w http.ResponseWriter, r *http.Request) error {
	t.cookies.Delete(w, r, t.name, t.options...)
	return nil
}
