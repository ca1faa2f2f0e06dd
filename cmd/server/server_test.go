package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/webkit/internal/pgxfake"
	"github.com/dmitrymomot/webkit/pkg/cookie"
	"github.com/dmitrymomot/webkit/pkg/cursor"
	"github.com/dmitrymomot/webkit/pkg/database"
	"github.com/dmitrymomot/webkit/pkg/session"
)

func usersQuerier() *pgxfake.Querier {
	return &pgxfake.Querier{
		NewRows: func(string) *pgxfake.Rows {
			return &pgxfake.Rows{
				Fields: []pgconn.FieldDescription{
					pgxfake.Field("id", pgtype.Int8OID),
					pgxfake.Field("email", pgtype.TextOID),
				},
				Data: [][]any{
					{int64(1), "a@example.com"},
					{int64(2), "b@example.com"},
					{int64(3), "c@example.com"},
				},
			}
		},
	}
}

func newTestRouter(t *testing.T, q *pgxfake.Querier) http.Handler {
	t.Helper()

	log := slog.New(slog.DiscardHandler)
	cookies, err := cookie.New([]string{"0123456789abcdef0123456789abcdef"})
	require.NoError(t, err)

	sessions, err := session.New(
		session.WithTransport(sessionTransport(cookies, session.DefaultConfig())),
		session.WithStore(session.NewMemoryStore(0)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sessions.Close() })

	h := &handlers{
		db:       database.New(q, database.WithCursorOptions(cursor.WithStrictColumns())),
		cookies:  cookies,
		sessions: sessions,
		log:      log,
	}
	return newRouter(h, nil)
}

func do(t *testing.T, h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func withCookies(req *http.Request, from *httptest.ResponseRecorder) *http.Request {
	for _, c := range from.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestListRows(t *testing.T) {
	t.Parallel()

	t.Run("page", func(t *testing.T) {
		q := usersQuerier()
		rec := do(t, newTestRouter(t, q), httptest.NewRequest(http.MethodGet, "/tables/users?limit=2&offset=1", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		body := decode(t, rec)
		assert.EqualValues(t, 3, body["total"])
		assert.Equal(t, []any{
			map[string]any{"id": float64(2), "email": "b@example.com"},
			map[string]any{"id": float64(3), "email": "c@example.com"},
		}, body["rows"])
		assert.Len(t, body["fields"], 2)
		assert.Equal(t, []string{`SELECT * FROM "users"`}, q.Calls())
	})

	t.Run("offset past the end", func(t *testing.T) {
		rec := do(t, newTestRouter(t, usersQuerier()), httptest.NewRequest(http.MethodGet, "/tables/users?offset=10", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []any{}, decode(t, rec)["rows"])
	})

	t.Run("rejected parameters", func(t *testing.T) {
		router := newTestRouter(t, usersQuerier())
		for _, target := range []string{
			"/tables/users;drop",
			"/tables/users?limit=0",
			"/tables/users?limit=1000",
			"/tables/users?offset=-1",
			"/tables/users?limit=abc",
		} {
			rec := do(t, router, httptest.NewRequest(http.MethodGet, target, nil))
			assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		}
	})

	t.Run("database failure", func(t *testing.T) {
		q := &pgxfake.Querier{Err: errors.New(`relation "nope" does not exist`)}
		rec := do(t, newTestRouter(t, q), httptest.NewRequest(http.MethodGet, "/tables/nope", nil))
		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}

func TestColumnValues(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, usersQuerier())

	rec := do(t, router, httptest.NewRequest(http.MethodGet, "/tables/users/columns/email", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{"a@example.com", "b@example.com", "c@example.com"}, decode(t, rec)["values"])

	rec = do(t, router, httptest.NewRequest(http.MethodGet, "/tables/users/columns/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSessionRoutes(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, usersQuerier())

	first := do(t, router, httptest.NewRequest(http.MethodGet, "/visits", nil))
	require.Equal(t, http.StatusOK, first.Code)
	assert.EqualValues(t, 1, decode(t, first)["visits"])

	second := do(t, router, withCookies(httptest.NewRequest(http.MethodGet, "/visits", nil), first))
	require.Equal(t, http.StatusOK, second.Code)
	assert.EqualValues(t, 2, decode(t, second)["visits"])
	assert.Equal(t, decode(t, first)["session_id"], decode(t, second)["session_id"])

	logout := do(t, router, withCookies(httptest.NewRequest(http.MethodPost, "/logout", nil), first))
	assert.Equal(t, http.StatusNoContent, logout.Code)

	after := do(t, router, withCookies(httptest.NewRequest(http.MethodGet, "/visits", nil), first))
	require.Equal(t, http.StatusOK, after.Code)
	assert.EqualValues(t, 1, decode(t, after)["visits"])
}

func TestSessionRoutes_BearerToken(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, usersQuerier())

	first := do(t, router, httptest.NewRequest(http.MethodGet, "/visits", nil))
	require.Equal(t, http.StatusOK, first.Code)
	auth := first.Header().Get("Authorization")
	require.True(t, strings.HasPrefix(auth, "Bearer "))

	req := httptest.NewRequest(http.MethodGet, "/visits", nil)
	req.Header.Set("Authorization", auth)
	second := do(t, router, req)
	require.Equal(t, http.StatusOK, second.Code)
	assert.EqualValues(t, 2, decode(t, second)["visits"])
	assert.Equal(t, decode(t, first)["session_id"], decode(t, second)["session_id"])

	logout := httptest.NewRequest(http.MethodPost, "/logout", nil)
	logout.Header.Set("Authorization", auth)
	rec := do(t, router, logout)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Header().Get("Authorization"))

	again := httptest.NewRequest(http.MethodGet, "/visits", nil)
	again.Header.Set("Authorization", auth)
	after := do(t, router, again)
	require.Equal(t, http.StatusOK, after.Code)
	assert.EqualValues(t, 1, decode(t, after)["visits"])
}

func TestPrefs(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, usersQuerier())

	form := url.Values{"value": {"dark"}}
	req := httptest.NewRequest(http.MethodPost, "/prefs/theme", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	set := do(t, router, req)
	require.Equal(t, http.StatusNoContent, set.Code)

	got := do(t, router, withCookies(httptest.NewRequest(http.MethodGet, "/prefs/theme", nil), set))
	require.Equal(t, http.StatusOK, got.Code)
	assert.Equal(t, "dark", decode(t, got)["value"])

	missing := do(t, router, httptest.NewRequest(http.MethodGet, "/prefs/theme", nil))
	assert.Equal(t, http.StatusNotFound, missing.Code)

	tampered := httptest.NewRequest(http.MethodGet, "/prefs/theme", nil)
	tampered.AddCookie(&http.Cookie{Name: "pref_theme", Value: "ZGFyaw.bogus"})
	assert.Equal(t, http.StatusBadRequest, do(t, router, tampered).Code)

	del := do(t, router, withCookies(httptest.NewRequest(http.MethodDelete, "/prefs/theme", nil), set))
	assert.Equal(t, http.StatusNoContent, del.Code)
	cookies := del.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "pref_theme", cookies[0].Name)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	rec := do(t, newTestRouter(t, usersQuerier()), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	log := newLogger(appConfig{Env: "production", LogLevel: "error"})
	assert.False(t, log.Enabled(t.Context(), slog.LevelWarn))
	assert.True(t, log.Enabled(t.Context(), slog.LevelError))
}
