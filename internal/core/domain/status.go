package domain

import "strings"

// ComputeStatus derives a campaign's lifecycle status from the statuses
// of its posts and their queue items. It is a pure function; the same
// inputs always yield the same output.
//
// Rules, first match wins:
//   - every post published and no queue activity -> completed
//   - any post past draft, or any queue activity -> active
//   - otherwise completed stays completed, everything else is draft
func ComputeStatus(current string, postStatuses, queueStatuses []string) string {
	current = normaliseStatus(current, CampaignStatusDraft)

	allPublished := len(postStatuses) > 0
	anyPastDraft := false
	for _, s := range postStatuses {
		s = normaliseStatus(s, PostStatusDraft)
		if s != PostStatusPublished {
			allPublished = false
		}
		if s != PostStatusDraft {
			anyPastDraft = true
		}
	}

	queueActive := false
	for _, s := range queueStatuses {
		switch normaliseStatus(s, "") {
		case QueueStatusPending, QueueStatusProcessing:
			queueActive = true
		}
	}

	switch {
	case allPublished && !queueActive:
		return CampaignStatusCompleted
	case anyPastDraft || queueActive:
		return CampaignStatusActive
	case current == CampaignStatusCompleted:
		return CampaignStatusCompleted
	default:
		return CampaignStatusDraft
	}
}

func normaliseStatus(s, empty string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return empty
	}
	return s
}
