package httpadapter

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"guestpost/internal/core/domain"
)

type slotResponse struct {
	Platform   string     `json:"platform"`
	At         time.Time  `json:"at"`
	Resolution *time.Time `json:"resolution,omitempty"`
}

// handleSlotPreview computes suggested publish slots for a recurring
// campaign without persisting anything. The optional weeks query
// parameter extends the look-ahead, capped at twelve weeks. Platforms
// are rendered with their UI-facing names.
func (h *Handler) handleSlotPreview(w http.ResponseWriter, r *http.Request) {
	campaignID, err := strconv.ParseInt(chi.URLParam(r, "campaignID"), 10, 64)
	if err != nil || campaignID <= 0 {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}

	weeks := 1
	if s := r.URL.Query().Get("weeks"); s != "" {
		weeks, err = strconv.Atoi(s)
		if err != nil || weeks < 1 {
			http.Error(w, "invalid weeks", http.StatusBadRequest)
			return
		}
	}

	slots, err := h.materialiser.PreviewSlots(r.Context(), tenantFromContext(r.Context()), campaignID, weeks)
	if err != nil {
		h.writeError(w, err)
		return
	}

	out := make([]slotResponse, 0, len(slots))
	for _, s := range slots {
		out = append(out, slotResponse{
			Platform:   domain.DisplayPlatform(s.Platform),
			At:         s.At,
			Resolution: s.Resolution,
		})
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"slots": out})
}
