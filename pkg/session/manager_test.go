package session_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/webkit/pkg/cookie"
	"github.com/dmitrymomot/webkit/pkg/session"
)

const testSecret = "test-secret-key-that-is-long-enough"

func setupManager(t *testing.T, opts ...session.Option) (*session.Manager, *session.MemoryStore) {
	t.Helper()

	cookies, err := cookie.New([]string{testSecret})
	require.NoError(t, err)

	store := session.NewMemoryStore(0)
	t.Cleanup(func() { _ = store.Close() })

	base := []session.Option{
		session.WithCookieManager(cookies),
		session.WithStore(store),
		session.WithConfig(session.Config{
			CookieName:              "test-sid",
			IdleTimeout:             30 * time.Minute,
			MaxLifetime:             24 * time.Hour,
			ActivityUpdateThreshold: time.Hour,
		}),
	}

	m, err := session.New(append(base, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	return m, store
}

// followUp builds a request carrying the cookies set on rec.
func followUp(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge >= 0 {
			req.AddCookie(c)
		}
	}
	return req
}

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := session.New()
	assert.ErrorIs(t, err, session.ErrNoTransport)

	cookies, err := cookie.New([]string{testSecret})
	require.NoError(t, err)
	m, err := session.New(session.WithCookieManager(cookies))
	require.NoError(t, err)
	assert.NoError(t, m.Close())
}

func TestManager_Start(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("creates session and sets cookie", func(t *testing.T) {
		m, store := setupManager(t)
		rec := httptest.NewRecorder()

		s, err := m.Start(ctx, rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		assert.NotEmpty(t, s.Token)
		assert.False(t, s.Dirty())
		assert.Equal(t, 1, store.Len())

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "test-sid", cookies[0].Name)
		assert.NotEqual(t, s.Token, cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
		assert.InDelta(t, (30 * time.Minute).Seconds(), cookies[0].MaxAge, 2)
	})

	t.Run("loads existing session", func(t *testing.T) {
		m, _ := setupManager(t)
		rec := httptest.NewRecorder()
		first, err := m.Start(ctx, rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		first.Set("user", "alice")
		require.NoError(t, m.Save(ctx, first))

		rec2 := httptest.NewRecorder()
		second, err := m.Start(ctx, rec2, followUp(rec))
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, "alice", second.Value("user", nil))
		assert.Empty(t, rec2.Result().Cookies(), "no refresh inside the activity threshold")
	})

	t.Run("reuses session from request context", func(t *testing.T) {
		m, store := setupManager(t)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		s, err := m.Start(ctx, rec, req)
		require.NoError(t, err)
		req = req.WithContext(session.WithSession(req.Context(), s))

		again, err := m.Start(ctx, rec, req)
		require.NoError(t, err)
		assert.Same(t, s, again)
		assert.Equal(t, 1, store.Len())
	})

	t.Run("unknown token starts fresh", func(t *testing.T) {
		m, _ := setupManager(t)
		rec := httptest.NewRecorder()
		first, err := m.Start(ctx, rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		require.NoError(t, m.Destroy(ctx, httptest.NewRecorder(), first))

		second, err := m.Start(ctx, httptest.NewRecorder(), followUp(rec))
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, second.ID)
	})

	t.Run("expired session starts fresh", func(t *testing.T) {
		m, store := setupManager(t)
		cookies, err := cookie.New([]string{testSecret})
		require.NoError(t, err)

		stale := session.NewSession("stale-token", -time.Minute)
		require.NoError(t, store.Save(ctx, stale))

		rec := httptest.NewRecorder()
		require.NoError(t, cookies.SetEncrypted(rec, "test-sid", "stale-token"))

		s, err := m.Start(ctx, httptest.NewRecorder(), followUp(rec))
		require.NoError(t, err)
		assert.NotEqual(t, stale.ID, s.ID)
	})

	t.Run("lifetime caps expiry", func(t *testing.T) {
		m, _ := setupManager(t, session.WithMaxLifetime(10*time.Minute))
		s, err := m.Start(ctx, httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		assert.WithinDuration(t, s.CreatedAt.Add(10*time.Minute), s.ExpiresAt, time.Second)
	})

	t.Run("activity refreshes expiry", func(t *testing.T) {
		m, _ := setupManager(t, session.WithActivityUpdateThreshold(0))
		rec := httptest.NewRecorder()
		first, err := m.Start(ctx, rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)

		time.Sleep(5 * time.Millisecond)

		rec2 := httptest.NewRecorder()
		second, err := m.Start(ctx, rec2, followUp(rec))
		require.NoError(t, err)
		assert.True(t, second.LastActivityAt.After(first.LastActivityAt))
		assert.True(t, second.ExpiresAt.After(first.ExpiresAt))
		assert.Len(t, rec2.Result().Cookies(), 1)
	})
}

func TestManager_Regenerate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	for _, deleteOld := range []bool{false, true} {
		t.Run(map[bool]string{false: "keep old", true: "delete old"}[deleteOld], func(t *testing.T) {
			m, store := setupManager(t)
			s, err := m.Start(ctx, httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
			require.NoError(t, err)
			s.Set("user", "alice")

			oldToken, oldID := s.Token, s.ID
			rec := httptest.NewRecorder()
			require.NoError(t, m.Regenerate(ctx, rec, s, deleteOld))

			assert.NotEqual(t, oldToken, s.Token)
			assert.Equal(t, oldID, s.ID)
			assert.False(t, s.Dirty())

			fresh, err := m.Start(ctx, httptest.NewRecorder(), followUp(rec))
			require.NoError(t, err)
			assert.Equal(t, "alice", fresh.Value("user", nil))

			_, err = store.Get(ctx, oldToken)
			if deleteOld {
				assert.ErrorIs(t, err, session.ErrSessionNotFound)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestManager_Destroy(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	m, store := setupManager(t)
	s, err := m.Start(ctx, httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	s.Set("user", "alice")

	rec := httptest.NewRecorder()
	require.NoError(t, m.Destroy(ctx, rec, s))

	assert.True(t, s.Destroyed())
	assert.False(t, s.Has("user"))
	assert.Equal(t, 0, store.Len())

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)

	assert.ErrorIs(t, m.Save(ctx, s), session.ErrDestroyed)
	assert.ErrorIs(t, m.Regenerate(ctx, rec, s, true), session.ErrDestroyed)
	assert.NoError(t, m.Destroy(ctx, rec, nil))
}

type failingStore struct {
	session.Store
	err error
}

func (f failingStore) Save(context.Context, *session.Session) error { return f.err }

func TestManager_StoreFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("store down")
	m, _ := setupManager(t, session.WithStore(failingStore{Store: session.NewMemoryStore(0), err: boom}))

	rec := httptest.NewRecorder()
	_, err := m.Start(context.Background(), rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, rec.Result().Cookies())
}

func TestManager_HeaderTransport(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	m, store := setupManager(t, session.WithTransport(session.NewHeaderTransport("")))

	rec := httptest.NewRecorder()
	s, err := m.Start(ctx, rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, "Bearer "+s.Token, rec.Header().Get("Authorization"))
	assert.NotEmpty(t, rec.Header().Get("Authorization-Expires"))
	assert.Empty(t, rec.Result().Cookies())

	t.Run("loads by bearer token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "bearer "+s.Token)
		got, err := m.Start(ctx, httptest.NewRecorder(), req)
		require.NoError(t, err)
		assert.Equal(t, s.ID, got.ID)
	})

	t.Run("other scheme is ignored", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Basic "+s.Token)
		got, err := m.Start(ctx, httptest.NewRecorder(), req)
		require.NoError(t, err)
		assert.NotEqual(t, s.ID, got.ID)
	})

	t.Run("custom header without prefix", func(t *testing.T) {
		tr := session.NewHeaderTransport("X-Session", session.WithHeaderPrefix(""))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Session", "abc")
		token, err := tr.GetToken(req)
		require.NoError(t, err)
		assert.Equal(t, "abc", token)

		_, err = tr.GetToken(httptest.NewRequest(http.MethodGet, "/", nil))
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
	})

	t.Run("destroy clears header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		rec.Header().Set("Authorization", "Bearer "+s.Token)
		require.NoError(t, m.Destroy(ctx, rec, s))
		assert.Empty(t, rec.Header().Get("Authorization"))
		assert.Empty(t, rec.Header().Get("Authorization-Expires"))
		_, err := store.Get(ctx, s.Token)
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
	})
}

func TestManager_CompositeTransport(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	cookies, err := cookie.New([]string{testSecret})
	require.NoError(t, err)
	tr := session.NewCompositeTransport(
		session.NewHeaderTransport("Authorization"),
		session.NewCookieTransport(cookies, "test-sid"),
	)
	m, _ := setupManager(t, session.WithTransport(tr))

	rec := httptest.NewRecorder()
	s, err := m.Start(ctx, rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, "Bearer "+s.Token, rec.Header().Get("Authorization"))
	require.Len(t, rec.Result().Cookies(), 1)

	t.Run("cookie only", func(t *testing.T) {
		got, err := m.Start(ctx, httptest.NewRecorder(), followUp(rec))
		require.NoError(t, err)
		assert.Equal(t, s.ID, got.ID)
	})

	t.Run("header wins over cookie", func(t *testing.T) {
		other, err := m.Start(ctx, httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)

		req := followUp(rec)
		req.Header.Set("Authorization", "Bearer "+other.Token)
		got, err := m.Start(ctx, httptest.NewRecorder(), req)
		require.NoError(t, err)
		assert.Equal(t, other.ID, got.ID)
	})

	t.Run("no token anywhere", func(t *testing.T) {
		_, err := tr.GetToken(httptest.NewRequest(http.MethodGet, "/", nil))
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
	})

	t.Run("destroy clears both", func(t *testing.T) {
		out := httptest.NewRecorder()
		require.NoError(t, m.Destroy(ctx, out, s))
		assert.Empty(t, out.Header().Get("Authorization"))
		cs := out.Result().Cookies()
		require.Len(t, cs, 1)
		assert.Equal(t, -1, cs[0].MaxAge)
	})
}
