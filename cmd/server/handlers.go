package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/webkit/pkg/cookie"
	"github.com/dmitrymomot/webkit/pkg/cursor"
	"github.com/dmitrymomot/webkit/pkg/database"
	"github.com/dmitrymomot/webkit/pkg/logger"
	"github.com/dmitrymomot/webkit/pkg/session"
)

const (
	defaultPageSize  = 50
	maxPageSize      = 500
	prefCookiePrefix = "pref_"
	prefMaxAge       = 30 * 24 * 3600
)

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,62}$`)

var errBadRequest = errors.New("bad request")

type handlers struct {
	db       *database.Database
	cookies  *cookie.Manager
	sessions *session.Manager
	log      *slog.Logger
}

type pageResponse struct {
	Total  int              `json:"total"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
	Fields []cursor.Field   `json:"fields"`
	Rows   []map[string]any `json:"rows"`
}

func (h *handlers) listRows(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "table")
	if !identifier.MatchString(table) {
		h.fail(w, r, errBadRequest)
		return
	}
	limit, err := intParam(r, "limit", defaultPageSize)
	if err != nil || limit < 1 || limit > maxPageSize {
		h.fail(w, r, errBadRequest)
		return
	}
	offset, err := intParam(r, "offset", 0)
	if err != nil || offset < 0 {
		h.fail(w, r, errBadRequest)
		return
	}

	resp := pageResponse{Limit: limit, Offset: offset}
	err = h.db.WithCursor(r.Context(), func(c *cursor.Cursor) error {
		page, err := c.Paginate(limit, offset)
		if err != nil {
			return err
		}
		resp.Total, resp.Fields, resp.Rows = c.Count(), c.Fields(), page
		return nil
	}, "SELECT * FROM "+pgx.Identifier{table}.Sanitize())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *handlers) columnValues(w http.ResponseWriter, r *http.Request) {
	table, column := chi.URLParam(r, "table"), chi.URLParam(r, "column")
	if !identifier.MatchString(table) || !identifier.MatchString(column) {
		h.fail(w, r, errBadRequest)
		return
	}

	var values []any
	err := h.db.WithCursor(r.Context(), func(c *cursor.Cursor) error {
		if !hasField(c.Fields(), column) {
			return fmt.Errorf("%w: %q", cursor.ErrFieldNotFound, column)
		}
		var err error
		values, err = c.ExtractColumn(column)
		return err
	}, "SELECT * FROM "+pgx.Identifier{table}.Sanitize())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"column": column, "values": values})
}

func (h *handlers) visits(w http.ResponseWriter, r *http.Request) {
	s := session.MustFromContext(r.Context())
	n, _ := s.GetInt("visits")
	n++
	s.Set("visits", n)

	writeJSON(w, http.StatusOK, map[string]any{"session_id": s.ID, "visits": n})
}

func (h *handlers) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(r.Context(), w, session.MustFromContext(r.Context())); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) getPref(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !identifier.MatchString(name) {
		h.fail(w, r, errBadRequest)
		return
	}

	value, err := h.cookies.GetSigned(r, prefCookiePrefix+name)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"name": name, "value": value})
}

func (h *handlers) setPref(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !identifier.MatchString(name) {
		h.fail(w, r, errBadRequest)
		return
	}

	err := h.cookies.SetSigned(w, prefCookiePrefix+name, r.FormValue("value"), cookie.WithMaxAge(prefMaxAge))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) deletePref(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !identifier.MatchString(name) {
		h.fail(w, r, errBadRequest)
		return
	}

	h.cookies.Delete(w, r, prefCookiePrefix+name)
	w.WriteHeader(http.StatusNoContent)
}

// fail maps err to a status code and writes a JSON error body.
func (h *handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, cookie.ErrInvalidCookie),
		errors.Is(err, cookie.ErrInvalidSignature),
		errors.Is(err, cookie.ErrInvalidFormat):
		code = http.StatusBadRequest
	case errors.Is(err, cursor.ErrFieldNotFound),
		errors.Is(err, cookie.ErrCookieNotFound):
		code = http.StatusNotFound
	case errors.Is(err, database.ErrQueryFailed):
		code = http.StatusBadGateway
	}

	if code >= http.StatusInternalServerError {
		h.log.ErrorContext(r.Context(), "request failed", logger.Error(err))
	}
	writeJSON(w, code, map[string]string{"error": http.StatusText(code)})
}

func hasField(fields []cursor.Field, name string) bool {
	for _, f := range fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

func intParam(r *http.Request, key string, def int) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
