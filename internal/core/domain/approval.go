package domain

import "time"

// Approval states.
const (
	ApprovalStatePending          = "pending"
	ApprovalStateApproved         = "approved"
	ApprovalStateRejected         = "rejected"
	ApprovalStateChangesRequested = "changes_requested"
)

// Approval actions accepted by the workflow.
const (
	ApprovalActionApprove        = "approve"
	ApprovalActionReject         = "reject"
	ApprovalActionRequestChanges = "request_changes"
	ApprovalActionComment        = "comment"
)

// Comment kinds.
const (
	CommentKindNote          = "note"
	CommentKindChangeRequest = "change_request"
)

// PostApproval tracks the approval quorum for one post. State is approved
// iff ApprovedCount reached Required at the time of the last transition.
type PostApproval struct {
	ID            int64
	TenantID      int64
	PostID        int64
	Required      int
	ApprovedCount int
	State         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PostComment is an append-only log entry attached to an approval action.
type PostComment struct {
	ID        int64
	TenantID  int64
	PostID    int64
	Kind      string
	Body      string
	Author    string
	CreatedAt time.Time
}
