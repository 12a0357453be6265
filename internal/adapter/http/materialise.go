package httpadapter

import (
	"net/http"
	"time"
)

// handleMaterialise runs one materialiser pass across all eligible
// campaigns. It backs scheduled-function deployments where the periodic
// trigger lives outside the process; the in-process ticker calls the
// same usecase. Idempotent per window, so overlapping triggers are safe.
func (h *Handler) handleMaterialise(w http.ResponseWriter, r *http.Request) {
	created, err := h.materialiser.Run(r.Context(), time.Now())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]int{"created": created})
}
