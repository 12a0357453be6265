package usecase

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"guestpost/internal/core/domain"
	"guestpost/internal/core/port"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeCampaignRepo struct {
	campaigns map[int64]*domain.Campaign
	statuses  map[int64]string
}

func newFakeCampaignRepo(campaigns ...*domain.Campaign) *fakeCampaignRepo {
	r := &fakeCampaignRepo{campaigns: map[int64]*domain.Campaign{}, statuses: map[int64]string{}}
	for _, c := range campaigns {
		r.campaigns[c.ID] = c
	}
	return r
}

func (r *fakeCampaignRepo) GetCampaign(_ context.Context, id int64) (*domain.Campaign, error) {
	return r.campaigns[id], nil
}

func (r *fakeCampaignRepo) ListRecurring(context.Context) ([]domain.Campaign, error) {
	var out []domain.Campaign
	for _, c := range r.campaigns {
		if c.Recurring() && c.Status == domain.CampaignStatusActive {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeCampaignRepo) UpdateStatus(_ context.Context, id int64, status string) error {
	r.statuses[id] = status
	if c := r.campaigns[id]; c != nil {
		c.Status = status
	}
	return nil
}

type fakePostRepo struct {
	mu      sync.Mutex
	posts   map[int64]*domain.CampaignPost
	nextID  int64
	inserts int
}

func newFakePostRepo(posts ...*domain.CampaignPost) *fakePostRepo {
	r := &fakePostRepo{posts: map[int64]*domain.CampaignPost{}, nextID: 1000}
	for _, p := range posts {
		r.posts[p.ID] = p
	}
	return r
}

func (r *fakePostRepo) GetPost(_ context.Context, id int64) (*domain.CampaignPost, error) {
	return r.posts[id], nil
}

func (r *fakePostRepo) ListQueueEligible(_ context.Context, campaignID int64) ([]domain.CampaignPost, error) {
	var out []domain.CampaignPost
	for _, p := range r.posts {
		if p.CampaignID != nil && *p.CampaignID == campaignID &&
			p.Status == domain.PostStatusScheduled && p.ApprovalStatus == domain.ApprovalStateApproved {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePostRepo) ListScheduledBetween(_ context.Context, campaignID int64, from, to time.Time) ([]domain.CampaignPost, error) {
	var out []domain.CampaignPost
	for _, p := range r.posts {
		if p.CampaignID == nil || *p.CampaignID != campaignID || p.ScheduledFor == nil {
			continue
		}
		if !p.ScheduledFor.Before(from) && p.ScheduledFor.Before(to) {
			out = append(out, *p)
		}
	}
	return out, nil
}

// InsertGenerated mimics the unique slot index: an existing
// (campaign, platform, scheduled_for) triple is skipped silently.
func (r *fakePostRepo) InsertGenerated(_ context.Context, posts []domain.CampaignPost) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := 0
	for _, p := range posts {
		dup := false
		for _, existing := range r.posts {
			if existing.CampaignID != nil && p.CampaignID != nil &&
				*existing.CampaignID == *p.CampaignID &&
				existing.Platform == p.Platform &&
				existing.ScheduledFor != nil && p.ScheduledFor != nil &&
				existing.ScheduledFor.Equal(*p.ScheduledFor) {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		p := p
		p.ID = r.nextID
		r.nextID++
		r.posts[p.ID] = &p
		created++
	}
	r.inserts++
	return created, nil
}

func (r *fakePostRepo) ListStatusesByCampaign(_ context.Context, campaignID int64) ([]string, error) {
	var out []string
	for _, p := range r.posts {
		if p.CampaignID != nil && *p.CampaignID == campaignID {
			out = append(out, p.Status)
		}
	}
	return out, nil
}

func (r *fakePostRepo) UpdateScheduledFor(_ context.Context, postID int64, at time.Time) error {
	if p := r.posts[postID]; p != nil {
		p.ScheduledFor = &at
	}
	return nil
}

func (r *fakePostRepo) UpdateApprovalStatus(_ context.Context, postID int64, approvalStatus string) error {
	if p := r.posts[postID]; p != nil {
		p.ApprovalStatus = approvalStatus
	}
	return nil
}

type fakeQueueRepo struct {
	items  []*domain.PublishingQueueItem
	nextID int64
}

func (r *fakeQueueRepo) pending(postID, connectionID int64) *domain.PublishingQueueItem {
	for _, item := range r.items {
		if item.PostID == postID && item.ConnectionID == connectionID && item.Status == domain.QueueStatusPending {
			return item
		}
	}
	return nil
}

func (r *fakeQueueRepo) InsertPending(_ context.Context, item domain.PublishingQueueItem) (bool, error) {
	if r.pending(item.PostID, item.ConnectionID) != nil {
		return false, nil
	}
	r.nextID++
	item.ID = r.nextID
	r.items = append(r.items, &item)
	return true, nil
}

func (r *fakeQueueRepo) SyncPending(_ context.Context, postID int64, at time.Time) (int64, error) {
	var n int64
	for _, item := range r.items {
		if item.PostID == postID && item.Status == domain.QueueStatusPending {
			item.ScheduledFor = at
			item.NextAttemptAt = nil
			n++
		}
	}
	return n, nil
}

func (r *fakeQueueRepo) ResetForPost(_ context.Context, postID int64, at time.Time) (int64, error) {
	var n int64
	for _, item := range r.items {
		if item.PostID == postID {
			item.ScheduledFor = at
			item.Status = domain.QueueStatusPending
			item.Attempts = 0
			item.LastAttemptAt = nil
			item.LastError = nil
			item.NextAttemptAt = nil
			n++
		}
	}
	return n, nil
}

func (r *fakeQueueRepo) ListStatusesByCampaign(context.Context, int64) ([]string, error) {
	var out []string
	for _, item := range r.items {
		out = append(out, item.Status)
	}
	return out, nil
}

type fakeConnectionRepo struct {
	connections []domain.SocialConnection
}

func (r *fakeConnectionRepo) ListActive(_ context.Context, tenantID int64) ([]domain.SocialConnection, error) {
	var out []domain.SocialConnection
	for _, c := range r.connections {
		if c.TenantID == tenantID && c.IsActive {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeApprovalRepo struct {
	approvals map[int64]*domain.PostApproval
	comments  []domain.PostComment
	quorum    int
}

func newFakeApprovalRepo(quorum int) *fakeApprovalRepo {
	return &fakeApprovalRepo{approvals: map[int64]*domain.PostApproval{}, quorum: quorum}
}

func (r *fakeApprovalRepo) GetByPost(_ context.Context, postID int64) (*domain.PostApproval, error) {
	return r.approvals[postID], nil
}

func (r *fakeApprovalRepo) EnsureForPost(_ context.Context, tenantID, postID int64) (*domain.PostApproval, error) {
	if a, ok := r.approvals[postID]; ok {
		return a, nil
	}
	a := &domain.PostApproval{
		ID:       postID,
		TenantID: tenantID,
		PostID:   postID,
		Required: r.quorum,
		State:    domain.ApprovalStatePending,
	}
	r.approvals[postID] = a
	return a, nil
}

func (r *fakeApprovalRepo) Approve(_ context.Context, postID int64) (*domain.PostApproval, error) {
	a := r.approvals[postID]
	if a == nil {
		return nil, nil
	}
	a.ApprovedCount++
	if a.ApprovedCount >= a.Required {
		a.State = domain.ApprovalStateApproved
	}
	return a, nil
}

func (r *fakeApprovalRepo) SetState(_ context.Context, postID int64, state string) (*domain.PostApproval, error) {
	a := r.approvals[postID]
	if a == nil {
		return nil, nil
	}
	a.State = state
	return a, nil
}

func (r *fakeApprovalRepo) AddComment(_ context.Context, c domain.PostComment) error {
	r.comments = append(r.comments, c)
	return nil
}

func (r *fakeApprovalRepo) ListComments(_ context.Context, postID int64) ([]domain.PostComment, error) {
	var out []domain.PostComment
	for _, c := range r.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	return out, nil
}

type capturedEvents struct {
	mu     sync.Mutex
	events []port.Event
}

func (p *capturedEvents) Publish(_ context.Context, event port.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *capturedEvents) kinds() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Kind)
	}
	return out
}
