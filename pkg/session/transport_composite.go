package session

import (
	"errors"
	"net/http"
	"time"
)

// CompositeTransport reads the token from the first transport that has one
// and writes it through all of them.
type CompositeTransport struct {
	transports []Transport
}

func NewCompositeTransport(transports ...Transport) *CompositeTransport {
	return &CompositeTransport{transports: transports}
}

func (t *CompositeTransport) GetToken(r *http.Request) (string, error) {
	for _, tr := range t.transports {
		if token, err := tr.GetToken(r); err == nil && token != "" {
			return token, nil
		}
	}
	return "", ErrSessionNotFound
}

func (t *CompositeTransport) SetToken(w http.ResponseWriter, token string, ttl time.Duration) error {
	var errs []error
	for _, tr := range t.transports {
		if err := tr.SetToken(w, token, ttl); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (t *CompositeTransport) ClearToken(w http.ResponseWriter, r *http.Request) error {
	var errs []error
	for _, tr := range t.transports {
		if err := tr.ClearToken(w, r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
