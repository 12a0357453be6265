package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeStatus(t *testing.T) {
	tests := []struct {
		name    string
		current string
		posts   []string
		queue   []string
		want    string
	}{
		{
			name:  "all published no queue activity",
			posts: []string{"published", "published"},
			want:  CampaignStatusCompleted,
		},
		{
			name:  "published post with pending queue stays active",
			posts: []string{"published"},
			queue: []string{"pending"},
			want:  CampaignStatusActive,
		},
		{
			name:  "processing queue keeps campaign active",
			posts: []string{"published"},
			queue: []string{"processing"},
			want:  CampaignStatusActive,
		},
		{
			name:  "scheduled post is active",
			posts: []string{"draft", "scheduled"},
			want:  CampaignStatusActive,
		},
		{
			name:  "failed post is active not completed",
			posts: []string{"published", "failed"},
			want:  CampaignStatusActive,
		},
		{
			name:  "only drafts stay draft",
			posts: []string{"draft", "draft"},
			want:  CampaignStatusDraft,
		},
		{
			name: "no posts no queue is draft",
			want: CampaignStatusDraft,
		},
		{
			name:    "no posts preserves completed",
			current: "completed",
			want:    CampaignStatusCompleted,
		},
		{
			name:  "done queue rows do not block completion",
			posts: []string{"published"},
			queue: []string{"done", "failed"},
			want:  CampaignStatusCompleted,
		},
		{
			name:  "messy input is normalised",
			posts: []string{"  Published ", "PUBLISHED"},
			queue: []string{" DONE "},
			want:  CampaignStatusCompleted,
		},
		{
			name:  "missing post status defaults to draft",
			posts: []string{""},
			want:  CampaignStatusDraft,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeStatus(tc.current, tc.posts, tc.queue)
			assert.Equal(t, tc.want, got)

			// Pure function: same inputs, same output.
			assert.Equal(t, got, ComputeStatus(tc.current, tc.posts, tc.queue))
		})
	}
}
