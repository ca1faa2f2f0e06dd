package cookie

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const minSecretLength = 32

// Manager reads and writes HTTP cookies with a shared set of default
// attributes. Secrets are only needed for signed and encrypted cookies.
type Manager struct {
	secrets  []string
	defaults Options
}

// New creates a Manager. Every non-empty secret must be at least 32
// characters; the first one is used for writing, all of them for reading.
func New(secrets []string, opts ...Option) (*Manager, error) {
	kept := make([]string, 0, len(secrets))
	for i, s := range secrets {
		if s == "" {
			continue
		}
		if len(s) < minSecretLength {
			return nil, fmt.Errorf("%w: secret %d has %d chars, need at least %d", ErrSecretTooShort, i, len(s), minSecretLength)
		}
		kept = append(kept, s)
	}

	return &Manager{
		secrets:  kept,
		defaults: defaultOptions().apply(opts),
	}, nil
}

// Defaults returns the attributes applied when no per-call options are given.
func (m *Manager) Defaults() Options {
	return m.defaults
}

// Set writes a cookie. A positive MaxAge also sets a matching Expires
// attribute for clients that ignore Max-Age.
func (m *Manager) Set(w http.ResponseWriter, name, value string, opts ...Option) error {
	c := m.build(name, value, m.defaults.apply(opts))
	if err := c.Valid(); err != nil {
		return errors.Join(ErrInvalidCookie, err)
	}

	http.SetCookie(w, c)
	return nil
}

// Get returns the value of the named request cookie.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrCookieNotFound
		}
		return "", err
	}
	return c.Value, nil
}

// Exists reports whether the request carries the named cookie.
func (m *Manager) Exists(r *http.Request, name string) bool {
	_, err := r.Cookie(name)
	return err == nil
}

// Delete expires the cookie on the client and drops it from r, so that
// reads later in the same request no longer see it. r may be nil.
func (m *Manager) Delete(w http.ResponseWriter, r *http.Request, name string, opts ...Option) {
	o := m.defaults.apply(opts)
	o.MaxAge = -1

	c := m.build(name, "", o)
	c.Expires = time.Unix(0, 0)
	http.SetCookie(w, c)

	if r != nil {
		removeRequestCookie(r, name)
	}
}

// SetSigned writes a cookie whose value carries an HMAC-SHA256 signature.
func (m *Manager) SetSigned(w http.ResponseWriter, name, value string, opts ...Option) error {
	if len(m.secrets) == 0 {
		return ErrNoSecret
	}
	return m.Set(w, name, m.sign(value), opts...)
}

// GetSigned reads a signed cookie and verifies it against every secret.
func (m *Manager) GetSigned(r *http.Request, name string) (string, error) {
	if len(m.secrets) == 0 {
		return "", ErrNoSecret
	}
	raw, err := m.Get(r, name)
	if err != nil {
		return "", err
	}
	return m.verify(raw)
}

// SetEncrypted writes a cookie whose value is sealed with AES-256-GCM.
func (m *Manager) SetEncrypted(w http.ResponseWriter, name, value string, opts ...Option) error {
	if len(m.secrets) == 0 {
		return ErrNoSecret
	}
	sealed, err := m.encrypt(value)
	if err != nil {
		return err
	}
	return m.Set(w, name, sealed, opts...)
}

// GetEncrypted reads and opens an encrypted cookie, trying every secret.
func (m *Manager) GetEncrypted(r *http.Request, name string) (string, error) {
	if len(m.secrets) == 0 {
		return "", ErrNoSecret
	}
	raw, err := m.Get(r, name)
	if err != nil {
		return "", err
	}
	return m.decrypt(raw)
}

func (m *Manager) build(name, value string, o Options) *http.Cookie {
	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     o.Path,
		Domain:   o.Domain,
		MaxAge:   o.MaxAge,
		Secure:   o.Secure,
		HttpOnly: o.HttpOnly,
		SameSite: o.SameSite,
	}
	if o.MaxAge > 0 {
		c.Expires = time.Now().Add(time.Duration(o.MaxAge) * time.Second).UTC()
	}
	return c
}

func removeRequestCookie(r *http.Request, name string) {
	cookies := r.Cookies()
	r.Header.Del("Cookie")
	for _, c := range cookies {
		if c.Name != name {
			r.AddCookie(c)
		}
	}
}

func (m *Manager) sign(value string) string {
	payload := base64.RawURLEncoding.EncodeToString([]byte(value))
	return payload + "." + signature(m.secrets[0], payload)
}

func (m *Manager) verify(signed string) (string, error) {
	payload, sig, ok := strings.Cut(signed, ".")
	if !ok {
		return "", ErrInvalidFormat
	}

	value, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return "", ErrInvalidFormat
	}

	for _, secret := range m.secrets {
		if hmac.Equal([]byte(sig), []byte(signature(secret, payload))) {
			return string(value), nil
		}
	}
	return "", ErrInvalidSignature
}

func signature(secret, payload string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func (m *Manager) encrypt(value string) (string, error) {
	gcm, err := newGCM(m.secrets[0])
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	// nonce is stored in front of the ciphertext
	sealed := gcm.Seal(nonce, nonce, []byte(value), nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

func (m *Manager) decrypt(encoded string) (string, error) {
	sealed, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", ErrInvalidFormat
	}

	for _, secret := range m.secrets {
		gcm, err := newGCM(secret)
		if err != nil {
			continue
		}
		if len(sealed) < gcm.NonceSize() {
			return "", ErrInvalidFormat
		}
		nonce, ciphertext := sealed[:gcm.NonceSize()], sealed[gcm.NonceSize():]
		if plain, err := gcm.Open(nil, nonce, ciphertext, nil); err == nil {
			return string(plain), nil
		}
	}
	return "", ErrDecryptionFailed
}

// newGCM derives a 256-bit key from the secret.
func newGCM(secret string) (cipher.AEAD, error) {
	key := sha256.Sum256([]byte(secret))
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
