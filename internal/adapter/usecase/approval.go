package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"guestpost/internal/core/domain"
	"guestpost/internal/core/port"
)

// ApprovalWorkflow gates whether a post may be queued for publishing. It
// implements port.ApprovalWorkflow. Capability checks happen at the HTTP
// boundary; the workflow enforces tenant ownership and transition rules.
type ApprovalWorkflow struct {
	approvals port.ApprovalRepository
	posts     port.PostRepository
	logger    *slog.Logger
}

// NewApprovalWorkflow creates a workflow with the provided dependencies.
func NewApprovalWorkflow(approvals port.ApprovalRepository, posts port.PostRepository, logger *slog.Logger) *ApprovalWorkflow {
	return &ApprovalWorkflow{approvals: approvals, posts: posts, logger: logger}
}

// Get returns the post's approval row (created lazily with the tenant's
// quorum) and its comment log.
func (w *ApprovalWorkflow) Get(ctx context.Context, tenantID, postID int64) (*domain.PostApproval, []domain.PostComment, error) {
	if _, err := w.ownedPost(ctx, tenantID, postID); err != nil {
		return nil, nil, err
	}

	approval, err := w.approvals.EnsureForPost(ctx, tenantID, postID)
	if err != nil {
		return nil, nil, err
	}
	comments, err := w.approvals.ListComments(ctx, postID)
	if err != nil {
		return nil, nil, err
	}
	return approval, comments, nil
}

// Act applies one approval action. Approve increments the count and
// reaches the approved state once the quorum is met; reject and
// request_changes set the state unconditionally; comment only appends to
// the log. Each action revalidates from current database state, which is
// how a rejected or changes_requested post returns to pending review.
func (w *ApprovalWorkflow) Act(ctx context.Context, tenantID, postID int64, action port.ApprovalAction) (*domain.PostApproval, error) {
	switch action.Action {
	case domain.ApprovalActionApprove, domain.ApprovalActionReject,
		domain.ApprovalActionRequestChanges, domain.ApprovalActionComment:
	default:
		return nil, port.Validation("action", "unknown action "+action.Action)
	}
	if action.Action == domain.ApprovalActionComment && action.Comment == "" {
		return nil, port.Validation("comment", "comment body required")
	}

	if _, err := w.ownedPost(ctx, tenantID, postID); err != nil {
		return nil, err
	}

	approval, err := w.approvals.EnsureForPost(ctx, tenantID, postID)
	if err != nil {
		return nil, err
	}
	if approval == nil {
		return nil, fmt.Errorf("approval for post %d: %w", postID, port.ErrNotFound)
	}

	commentKind := domain.CommentKindNote
	switch action.Action {
	case domain.ApprovalActionApprove:
		approval, err = w.approvals.Approve(ctx, postID)
	case domain.ApprovalActionReject:
		approval, err = w.approvals.SetState(ctx, postID, domain.ApprovalStateRejected)
	case domain.ApprovalActionRequestChanges:
		commentKind = domain.CommentKindChangeRequest
		approval, err = w.approvals.SetState(ctx, postID, domain.ApprovalStateChangesRequested)
	case domain.ApprovalActionComment:
		// state untouched
	}
	if err != nil {
		return nil, err
	}
	if approval == nil {
		return nil, fmt.Errorf("approval for post %d: %w", postID, port.ErrNotFound)
	}

	if action.Action != domain.ApprovalActionComment {
		if err = w.posts.UpdateApprovalStatus(ctx, postID, approval.State); err != nil {
			return nil, err
		}
	}

	if action.Comment != "" {
		err = w.approvals.AddComment(ctx, domain.PostComment{
			TenantID: tenantID,
			PostID:   postID,
			Kind:     commentKind,
			Body:     action.Comment,
			Author:   action.Author,
		})
		if err != nil {
			return nil, err
		}
	}

	w.logger.Info("approval action recorded",
		slog.Int64("post_id", postID),
		slog.String("action", action.Action),
		slog.String("state", approval.State))
	return approval, nil
}

func (w *ApprovalWorkflow) ownedPost(ctx context.Context, tenantID, postID int64) (*domain.CampaignPost, error) {
	post, err := w.posts.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, fmt.Errorf("post %d: %w", postID, port.ErrNotFound)
	}
	if post.TenantID != tenantID {
		return nil, port.ErrForbidden
	}
	return post, nil
}
