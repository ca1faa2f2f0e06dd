package session

import "errors"

var (
	ErrSessionNotFound = errors.New("session.not_found")
	ErrSessionExpired  = errors.New("session.expired")
	ErrInvalidSession  = errors.New("session.invalid")
	ErrDestroyed       = errors.New("session.destroyed")
	ErrTokenGeneration = errors.New("session.token_generation_failed")
	ErrNoTransport     = errors.New("session.no_transport")
	ErrStoreFailed     = errors.New("session.store_failed")
)
