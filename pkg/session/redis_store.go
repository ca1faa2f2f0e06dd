package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "session:"

// RedisStore keeps sessions in Redis as JSON documents. Each key carries
// a TTL matching the session expiry, so Redis evicts expired sessions itself.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

type RedisStoreOption func(*RedisStore)

// WithKeyPrefix sets the prefix prepended to every token. Default "session:".
func WithKeyPrefix(prefix string) RedisStoreOption {
	return func(s *RedisStore) { s.prefix = prefix }
}

func NewRedisStore(client redis.UniversalClient, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{client: client, prefix: defaultRedisPrefix}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (r *RedisStore) key(token string) string {
	return r.prefix + token
}

func (r *RedisStore) Save(ctx context.Context, s *Session) error {
	if s == nil || s.Token == "" {
		return ErrInvalidSession
	}

	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		return r.Delete(ctx, s.Token)
	}

	payload, err := json.Marshal(s)
	if err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	if err := r.client.Set(ctx, r.key(s.Token), payload, ttl).Err(); err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return nil
}

func (r *RedisStore) Get(ctx context.Context, token string) (*Session, error) {
	payload, err := r.client.Get(ctx, r.key(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, errors.Join(ErrStoreFailed, err)
	}

	var s Session
	if err := json.Unmarshal(payload, &s); err != nil {
		return nil, errors.Join(ErrInvalidSession, err)
	}
	if s.IsExpired() {
		return nil, ErrSessionExpired
	}
	if s.Data == nil {
		s.Data = make(map[string]any)
	}
	return &s, nil
}

func (r *RedisStore) Delete(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, r.key(token)).Err(); err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return nil
}

// DeleteExpired is a no-op: keys expire through their TTL.
func (r *RedisStore) DeleteExpired(context.Context) error {
	return nil
}
