package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guestpost/internal/core/domain"
	"guestpost/internal/core/port"
)

func newApprovalFixture(quorum int) (*ApprovalWorkflow, *fakeApprovalRepo, *fakePostRepo) {
	postRepo := newFakePostRepo(&domain.CampaignPost{
		ID: 10, TenantID: 1, Platform: "instagram",
		Status: domain.PostStatusScheduled, ApprovalStatus: domain.ApprovalStatePending,
	})
	approvalRepo := newFakeApprovalRepo(quorum)
	return NewApprovalWorkflow(approvalRepo, postRepo, testLogger()), approvalRepo, postRepo
}

// TestApprovalQuorum: with required=2 the first approve leaves the post
// pending, the second reaches approved.
func TestApprovalQuorum(t *testing.T) {
	w, _, postRepo := newApprovalFixture(2)
	ctx := context.Background()

	approval, err := w.Act(ctx, 1, 10, port.ApprovalAction{Action: domain.ApprovalActionApprove})
	require.NoError(t, err)
	assert.Equal(t, 1, approval.ApprovedCount)
	assert.Equal(t, domain.ApprovalStatePending, approval.State)
	assert.Equal(t, domain.ApprovalStatePending, postRepo.posts[10].ApprovalStatus)

	approval, err = w.Act(ctx, 1, 10, port.ApprovalAction{Action: domain.ApprovalActionApprove})
	require.NoError(t, err)
	assert.Equal(t, 2, approval.ApprovedCount)
	assert.Equal(t, domain.ApprovalStateApproved, approval.State)
	assert.Equal(t, domain.ApprovalStateApproved, postRepo.posts[10].ApprovalStatus)
}

// TestRejectWinsRegardlessOfCount: reject flips the state immediately,
// whatever the approved count.
func TestRejectWinsRegardlessOfCount(t *testing.T) {
	w, _, postRepo := newApprovalFixture(2)
	ctx := context.Background()

	_, err := w.Act(ctx, 1, 10, port.ApprovalAction{Action: domain.ApprovalActionApprove})
	require.NoError(t, err)

	approval, err := w.Act(ctx, 1, 10, port.ApprovalAction{Action: domain.ApprovalActionReject, Comment: "off brand"})
	require.NoError(t, err)
	assert.Equal(t, domain.ApprovalStateRejected, approval.State)
	assert.Equal(t, 1, approval.ApprovedCount)
	assert.Equal(t, domain.ApprovalStateRejected, postRepo.posts[10].ApprovalStatus)
}

func TestRequestChangesRecordsChangeRequestComment(t *testing.T) {
	w, approvalRepo, _ := newApprovalFixture(1)

	approval, err := w.Act(context.Background(), 1, 10, port.ApprovalAction{
		Action:  domain.ApprovalActionRequestChanges,
		Comment: "swap the photo",
		Author:  "maria",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ApprovalStateChangesRequested, approval.State)

	require.Len(t, approvalRepo.comments, 1)
	assert.Equal(t, domain.CommentKindChangeRequest, approvalRepo.comments[0].Kind)
	assert.Equal(t, "maria", approvalRepo.comments[0].Author)
}

func TestCommentActionLeavesStateAlone(t *testing.T) {
	w, approvalRepo, postRepo := newApprovalFixture(1)

	approval, err := w.Act(context.Background(), 1, 10, port.ApprovalAction{
		Action:  domain.ApprovalActionComment,
		Comment: "looks close, checking with the chef",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ApprovalStatePending, approval.State)
	assert.Equal(t, 0, approval.ApprovedCount)
	assert.Equal(t, domain.ApprovalStatePending, postRepo.posts[10].ApprovalStatus)
	assert.Len(t, approvalRepo.comments, 1)
}

func TestActValidation(t *testing.T) {
	w, _, _ := newApprovalFixture(1)
	ctx := context.Background()

	var validation *port.ValidationError
	_, err := w.Act(ctx, 1, 10, port.ApprovalAction{Action: "promote"})
	assert.ErrorAs(t, err, &validation)

	_, err = w.Act(ctx, 1, 10, port.ApprovalAction{Action: domain.ApprovalActionComment})
	assert.ErrorAs(t, err, &validation)

	_, err = w.Act(ctx, 2, 10, port.ApprovalAction{Action: domain.ApprovalActionApprove})
	assert.ErrorIs(t, err, port.ErrForbidden)

	_, err = w.Act(ctx, 1, 404, port.ApprovalAction{Action: domain.ApprovalActionApprove})
	assert.ErrorIs(t, err, port.ErrNotFound)
}

func TestGetLazilyCreatesApproval(t *testing.T) {
	w, _, _ := newApprovalFixture(3)

	approval, comments, err := w.Get(context.Background(), 1, 10)
	require.NoError(t, err)
	require.NotNil(t, approval)
	assert.Equal(t, 3, approval.Required)
	assert.Equal(t, 0, approval.ApprovedCount)
	assert.Equal(t, domain.ApprovalStatePending, approval.State)
	assert.Empty(t, comments)
}
