package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"guestpost/internal/core/domain"
	"guestpost/internal/core/port"
)

// Materialiser expands recurring campaigns into concrete content rows
// inside a rolling look-ahead window. It implements port.Materialiser.
type Materialiser struct {
	campaigns port.CampaignRepository
	posts     port.PostRepository
	events    port.EventPublisher
	logger    *slog.Logger
	lookAhead time.Duration
}

// NewMaterialiser creates a materialiser. windowDays bounds how far ahead
// content rows are created on each run.
func NewMaterialiser(
	campaigns port.CampaignRepository,
	posts port.PostRepository,
	events port.EventPublisher,
	logger *slog.Logger,
	windowDays int,
) *Materialiser {
	if windowDays <= 0 {
		windowDays = 7
	}
	return &Materialiser{
		campaigns: campaigns,
		posts:     posts,
		events:    events,
		logger:    logger,
		lookAhead: time.Duration(windowDays) * 24 * time.Hour,
	}
}

// Run materialises every eligible campaign. A failure on one campaign is
// logged and does not abort the tick; the dedup against existing rows
// plus the unique slot index make re-runs no-ops.
func (m *Materialiser) Run(ctx context.Context, now time.Time) (int, error) {
	campaigns, err := m.campaigns.ListRecurring(ctx)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, campaign := range campaigns {
		n, err := m.materialiseCampaign(ctx, campaign, now, m.lookAhead)
		if err != nil {
			m.logger.Error("campaign materialisation failed",
				slog.Int64("campaign_id", campaign.ID), slog.Any("error", err))
			continue
		}
		created += n
	}

	if created > 0 {
		publishEvent(ctx, m.events, m.logger, port.Event{
			Kind:    port.EventPostsMaterialised,
			Payload: map[string]any{"created": created},
		})
	}
	return created, nil
}

// PreviewSlots computes candidate slots for one campaign without
// persisting anything. weeks is clamped to the preview maximum.
func (m *Materialiser) PreviewSlots(ctx context.Context, tenantID, campaignID int64, weeks int) ([]domain.ResolvedSlot, error) {
	campaign, err := m.campaigns.GetCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, fmt.Errorf("campaign %d: %w", campaignID, port.ErrNotFound)
	}
	if campaign.TenantID != tenantID {
		return nil, port.ErrForbidden
	}
	if !campaign.Recurring() {
		return nil, port.Validation("campaign_type", "campaign has no cadence")
	}

	if weeks < 1 {
		weeks = 1
	}
	if weeks > domain.MaxPreviewWeeks {
		weeks = domain.MaxPreviewWeeks
	}

	now := time.Now()
	candidates := buildCandidates(*campaign, now, time.Duration(weeks)*7*24*time.Hour)
	return domain.ResolveSlots(candidates), nil
}

func (m *Materialiser) materialiseCampaign(ctx context.Context, campaign domain.Campaign, now time.Time, lookAhead time.Duration) (int, error) {
	candidates := buildCandidates(campaign, now, lookAhead)
	if len(candidates) == 0 {
		return 0, nil
	}

	existing, err := m.posts.ListScheduledBetween(ctx, campaign.ID, now, now.Add(lookAhead))
	if err != nil {
		return 0, err
	}
	taken := make(map[string]struct{}, len(existing))
	for _, p := range existing {
		if p.ScheduledFor != nil {
			taken[slotKey(p.Platform, *p.ScheduledFor)] = struct{}{}
		}
	}

	fresh := candidates[:0]
	for _, c := range candidates {
		if _, done := taken[slotKey(c.Platform, c.At)]; done {
			continue
		}
		fresh = append(fresh, c)
	}
	if len(fresh) == 0 {
		return 0, nil
	}

	resolved := domain.ResolveSlots(fresh)
	posts := make([]domain.CampaignPost, 0, len(resolved))
	for _, slot := range resolved {
		at := slot.Effective()
		provenance := map[string]any{
			"source":  "cadence",
			"cadence": slot.ID,
		}
		if slot.Resolution != nil {
			provenance["offset_minutes"] = int(slot.Resolution.Sub(slot.At).Minutes())
		}
		campaignID := campaign.ID
		posts = append(posts, domain.CampaignPost{
			TenantID:       campaign.TenantID,
			CampaignID:     &campaignID,
			Platform:       slot.Platform,
			Status:         domain.PostStatusScheduled,
			ApprovalStatus: domain.ApprovalStatePending,
			ScheduledFor:   &at,
			AutoGenerated:  true,
			Provenance:     provenance,
		})
	}
	return m.posts.InsertGenerated(ctx, posts)
}

// buildCandidates expands the campaign's cadence metadata into candidate
// slots within the window, sorted chronologically so conflict resolution
// is reproducible.
func buildCandidates(campaign domain.Campaign, now time.Time, lookAhead time.Duration) []domain.SlotCandidate {
	loc := campaign.Location()
	windowEnd := now.Add(lookAhead)

	var candidates []domain.SlotCandidate
	switch campaign.CampaignType {
	case domain.CampaignTypeWeekly:
		for _, rule := range domain.ParseCadenceRules(campaign.Metadata) {
			for _, at := range domain.WeeklySlots(rule, loc, now, lookAhead) {
				candidates = append(candidates, domain.SlotCandidate{
					ID:       rule.String(),
					Platform: rule.Platform,
					At:       at,
				})
			}
		}

	case domain.CampaignTypeEvent:
		platform, ok := domain.CanonicalPlatform(metadataString(campaign.Metadata, "platform"))
		if !ok {
			return nil
		}
		eventAt := domain.ParseEventDate(campaign.Metadata, loc, now)
		for i, at := range domain.EventCountdownSlots(eventAt, now) {
			if at.After(windowEnd) {
				break
			}
			candidates = append(candidates, domain.SlotCandidate{
				ID:       "event-" + strconv.Itoa(i),
				Platform: platform,
				At:       at,
			})
		}

	case domain.CampaignTypePromotion:
		platform, ok := domain.CanonicalPlatform(metadataString(campaign.Metadata, "platform"))
		if !ok {
			return nil
		}
		start, end := domain.ParsePromotionWindow(campaign.Metadata, loc, now)
		for i, at := range domain.PromotionSlots(start, end, now) {
			if at.After(windowEnd) {
				break
			}
			candidates = append(candidates, domain.SlotCandidate{
				ID:       "promo-" + strconv.Itoa(i),
				Platform: platform,
				At:       at,
			})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].At.Before(candidates[j].At)
	})
	return candidates
}

func slotKey(platform string, at time.Time) string {
	canonical, _ := domain.CanonicalPlatform(platform)
	return canonical + "|" + strconv.FormatInt(at.Unix(), 10)
}

func metadataString(metadata map[string]any, key string) string {
	s, _ := metadata[key].(string)
	return s
}
