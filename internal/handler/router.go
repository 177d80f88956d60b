package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/linkward/linkward/internal/middleware"
)

// NewManagerRouter builds the lifecycle harness: every verb on /shortlink
// feeds the same handler, mirroring the single-entry contract of the
// engine.
func NewManagerRouter(h *Manager, log *zap.Logger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.WithRequestID)
	r.Use(middleware.WithRequestLogging(log))

	r.Put("/shortlink", h.HandleShortlink)
	r.Post("/shortlink", h.HandleShortlink)
	r.Delete("/shortlink", h.HandleShortlink)
	r.Get("/ping", h.Ping)

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Route not found", http.StatusNotFound)
	})

	return r
}

// NewRedirectRouter builds the resolution harness: one catch-all GET.
func NewRedirectRouter(h *Redirect, log *zap.Logger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.WithRequestID)
	r.Use(middleware.WithRequestLogging(log))

	r.Get("/*", h.Handle)
	r.Get("/", h.Handle)

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	})

	return r
}
