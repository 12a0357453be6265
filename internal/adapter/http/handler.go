package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"guestpost/internal/core/port"
)

// Handler contains dependencies and routes. It is an inbound adapter for
// HTTP. It holds the pipeline usecases and a logger for structured
// logging. Routes are registered on a chi.Router for convenient method
// handling.
type Handler struct {
	reconciler   port.QueueReconciler
	materialiser port.Materialiser
	approvals    port.ApprovalWorkflow
	limiter      port.RateLimiter
	logger       *slog.Logger
	router       chi.Router
}

// NewHandler creates a handler with all routes configured. Mutating
// endpoints pass through tenant resolution and the per-tenant rate
// limiter; approval actions additionally require the post:approve
// capability.
func NewHandler(
	reconciler port.QueueReconciler,
	materialiser port.Materialiser,
	approvals port.ApprovalWorkflow,
	limiter port.RateLimiter,
	logger *slog.Logger,
) *Handler {
	h := &Handler{
		reconciler:   reconciler,
		materialiser: materialiser,
		approvals:    approvals,
		limiter:      limiter,
		logger:       logger,
	}
	r := chi.NewRouter()

	r.Route("/api/v1", func(r chi.Router) {
		// Scheduled-function style trigger; no tenant scope.
		r.Post("/materialise", h.handleMaterialise)

		r.Group(func(r chi.Router) {
			r.Use(h.requireTenant)

			r.Get("/campaigns/{campaignID}/slots", h.handleSlotPreview)
			r.Get("/approvals/{postID}", h.handleApprovalGet)

			r.Group(func(r chi.Router) {
				r.Use(h.rateLimit)
				r.Post("/queue/rebuild", h.handleQueueRebuild)
				r.Post("/queue/sync", h.handleQueueSync)
				r.With(h.requireCapability(port.CapabilityPostApprove)).
					Patch("/approvals/{postID}", h.handleApprovalAct)
			})
		})
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

// writeError maps the pipeline error taxonomy onto HTTP status codes.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var validation *port.ValidationError
	switch {
	case errors.As(err, &validation):
		http.Error(w, validation.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, port.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, port.ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	default:
		h.logger.Error("internal error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
