package httpadapter

import (
	"encoding/json"
	"net/http"
	"time"
)

// handleQueueRebuild reconciles a campaign's publishing queue with its
// approved, scheduled posts and the tenant's active connections. The
// request body carries the campaign id; the response reports how many
// queue rows were newly created. The operation is idempotent, so callers
// may retry on failure.
func (h *Handler) handleQueueRebuild(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CampaignID int64 `json:"campaign_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.CampaignID <= 0 {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	added, err := h.reconciler.Rebuild(r.Context(), tenantFromContext(r.Context()), req.CampaignID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]int{"added": added})
}

// handleQueueSync propagates a post's new scheduled time onto its queue
// rows, resetting retry state. scheduled_for must be RFC3339.
func (h *Handler) handleQueueSync(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PostID       int64  `json:"post_id"`
		ScheduledFor string `json:"scheduled_for"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PostID <= 0 {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	scheduledFor, err := time.Parse(time.RFC3339, req.ScheduledFor)
	if err != nil {
		http.Error(w, "invalid 'scheduled_for' timestamp", http.StatusBadRequest)
		return
	}

	if err = h.reconciler.Sync(r.Context(), tenantFromContext(r.Context()), req.PostID, scheduledFor); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]bool{"synced": true})
}
