// Package handler wires the lifecycle and resolution engines into their
// HTTP harnesses. The handlers only decode, forward and encode; every
// decision belongs to the engines.
package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/linkward/linkward/internal/models"
	"github.com/linkward/linkward/internal/service"
)

const requestTimeout = 10 * time.Second

// Manager serves the lifecycle entry point. Create, update and delete all
// share one handler; the action is part of the request body, the HTTP verb
// only exists so callers can send a payload on each.
type Manager struct {
	lifecycle *service.Lifecycle
	store     service.Store
	logger    *zap.Logger
}

func NewManager(lifecycle *service.Lifecycle, store service.Store, logger *zap.Logger) *Manager {
	return &Manager{
		lifecycle: lifecycle,
		store:     store,
		logger:    logger,
	}
}

// HandleShortlink decodes a lifecycle request and returns the engine's
// response verbatim. The engine response always carries its own error
// field, so the HTTP status is 200 unless the body is unreadable.
func (h *Manager) HandleShortlink(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var req models.LifecycleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Info("rejecting unreadable lifecycle request", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, models.LifecycleResponse{Error: "Invalid request body"})
		return
	}

	resp := h.lifecycle.Handle(ctx, req)
	writeJSON(w, http.StatusOK, resp)
}

// Ping reports record store connectivity.
func (h *Manager) Ping(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
