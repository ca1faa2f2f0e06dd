package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/webkit/pkg/httpserver"
)

func newRouter(h *handlers, checks map[string]httpserver.Check) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httpserver.RequestLogger(h.log))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", httpserver.HealthHandler(h.log, checks))

	r.Get("/tables/{table}", h.listRows)
	r.Get("/tables/{table}/columns/{column}", h.columnValues)

	r.Get("/prefs/{name}", h.getPref)
	r.Post("/prefs/{name}", h.setPref)
	r.Delete("/prefs/{name}", h.deletePref)

	r.Group(func(r chi.Router) {
		r.Use(h.sessions.Middleware)
		r.Get("/visits", h.visits)
		r.Post("/logout", h.logout)
	})

	return r
}
