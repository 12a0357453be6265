package httpadapter

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"guestpost/internal/core/domain"
	"guestpost/internal/core/port"
)

type approvalResponse struct {
	PostID        int64     `json:"post_id"`
	Required      int       `json:"required"`
	ApprovedCount int       `json:"approved_count"`
	State         string    `json:"state"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type commentResponse struct {
	ID        int64     `json:"id"`
	Kind      string    `json:"kind"`
	Body      string    `json:"body"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

func toApprovalResponse(a *domain.PostApproval) approvalResponse {
	return approvalResponse{
		PostID:        a.PostID,
		Required:      a.Required,
		ApprovedCount: a.ApprovedCount,
		State:         a.State,
		UpdatedAt:     a.UpdatedAt,
	}
}

func postIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "postID"), 10, 64)
	return id, err == nil && id > 0
}

// handleApprovalGet returns the post's approval row and comment log. The
// approval row is created lazily with the tenant's configured quorum.
func (h *Handler) handleApprovalGet(w http.ResponseWriter, r *http.Request) {
	postID, ok := postIDParam(r)
	if !ok {
		http.Error(w, "invalid post id", http.StatusBadRequest)
		return
	}

	approval, comments, err := h.approvals.Get(r.Context(), tenantFromContext(r.Context()), postID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	out := make([]commentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, commentResponse{
			ID: c.ID, Kind: c.Kind, Body: c.Body, Author: c.Author, CreatedAt: c.CreatedAt,
		})
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"approval": toApprovalResponse(approval),
		"comments": out,
	})
}

// handleApprovalAct applies one approval action to a post. Requires the
// post:approve capability (enforced by middleware).
func (h *Handler) handleApprovalAct(w http.ResponseWriter, r *http.Request) {
	postID, ok := postIDParam(r)
	if !ok {
		http.Error(w, "invalid post id", http.StatusBadRequest)
		return
	}

	var req struct {
		Action        string `json:"action"`
		Comment       string `json:"comment"`
		Author        string `json:"author"`
		PlatformScope string `json:"platform_scope"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	approval, err := h.approvals.Act(r.Context(), tenantFromContext(r.Context()), postID, port.ApprovalAction{
		Action:        req.Action,
		Comment:       req.Comment,
		Author:        req.Author,
		PlatformScope: req.PlatformScope,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"approval": toApprovalResponse(approval)})
}
