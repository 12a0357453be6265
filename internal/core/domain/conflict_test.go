package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSlotsNoCollision(t *testing.T) {
	at := time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)
	in := []SlotCandidate{
		{ID: "a", Platform: PlatformInstagram, At: at},
		{ID: "b", Platform: PlatformInstagram, At: at.Add(time.Hour)},
	}

	out := ResolveSlots(in)
	require.Len(t, out, 2)
	assert.Nil(t, out[0].Resolution)
	assert.Nil(t, out[1].Resolution)
}

func TestResolveSlotsNudgesSamePlatform(t *testing.T) {
	at := time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)
	in := []SlotCandidate{
		{ID: "a", Platform: PlatformInstagram, At: at},
		{ID: "b", Platform: PlatformInstagram, At: at},
		{ID: "c", Platform: PlatformInstagram, At: at},
	}

	out := ResolveSlots(in)
	require.Len(t, out, 3)

	assert.Nil(t, out[0].Resolution)
	require.NotNil(t, out[1].Resolution)
	assert.True(t, out[1].Resolution.Equal(at.Add(30*time.Minute)))
	require.NotNil(t, out[2].Resolution)
	assert.True(t, out[2].Resolution.Equal(at.Add(60*time.Minute)))

	// Input order preserved.
	assert.Equal(t, "a", out[0].ID)
	assert.Equal(t, "b", out[1].ID)
	assert.Equal(t, "c", out[2].ID)
}

func TestResolveSlotsDistinctPlatformsMayShareInstant(t *testing.T) {
	at := time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)
	out := ResolveSlots([]SlotCandidate{
		{ID: "a", Platform: PlatformInstagram, At: at},
		{ID: "b", Platform: PlatformFacebook, At: at},
	})

	require.Len(t, out, 2)
	assert.Nil(t, out[0].Resolution)
	assert.Nil(t, out[1].Resolution)
}

func TestResolveSlotsSkipsOverClaimed(t *testing.T) {
	at := time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)
	// Third candidate collides with the first, and its first nudge target
	// collides with the second.
	out := ResolveSlots([]SlotCandidate{
		{ID: "a", Platform: PlatformTikTok, At: at},
		{ID: "b", Platform: PlatformTikTok, At: at.Add(30 * time.Minute)},
		{ID: "c", Platform: PlatformTikTok, At: at},
	})

	require.NotNil(t, out[2].Resolution)
	assert.True(t, out[2].Resolution.Equal(at.Add(time.Hour)))
}

// TestResolveSlotsProperty checks the batch invariant: no two outputs on
// the same platform share an instant and length is preserved.
func TestResolveSlotsProperty(t *testing.T) {
	base := time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)
	var in []SlotCandidate
	platforms := []string{PlatformInstagram, PlatformFacebook, PlatformTwitter}
	for i := 0; i < 30; i++ {
		in = append(in, SlotCandidate{
			ID:       string(rune('a' + i)),
			Platform: platforms[i%len(platforms)],
			At:       base.Add(time.Duration(i%5) * time.Hour),
		})
	}

	out := ResolveSlots(in)
	require.Len(t, out, len(in))

	seen := make(map[string]struct{})
	for i, s := range out {
		assert.Equal(t, in[i].ID, s.ID)
		key := s.Platform + s.Effective().String()
		_, dup := seen[key]
		assert.False(t, dup, "platform %s instant %v claimed twice", s.Platform, s.Effective())
		seen[key] = struct{}{}
	}
}
