package session

import (
	"net/http"

	"github.com/dmitrymomot/webkit/pkg/logger"
)

// Middleware starts a session for every request and stores it in the
// request context. After the handler returns, a modified session is saved
// unless it was destroyed.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, err := m.Start(r.Context(), w, r)
		if err != nil {
			m.log.ErrorContext(r.Context(), "failed to start session", logger.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		ctx := WithSession(r.Context(), s)
		next.ServeHTTP(w, r.WithContext(ctx))

		if s.Dirty() && !s.Destroyed() {
			if err := m.Save(ctx, s); err != nil {
				m.log.ErrorContext(ctx, "failed to save session", logger.Error(err))
			}
		}
	})
}
