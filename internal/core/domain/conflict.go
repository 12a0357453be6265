package domain

import "time"

// ConflictStep is the interval candidates are nudged by when two slots on
// the same platform collide.
const ConflictStep = 30 * time.Minute

// SlotCandidate is one proposed publish slot entering conflict
// resolution.
type SlotCandidate struct {
	ID       string
	Platform string
	At       time.Time
}

// ResolvedSlot is the outcome for one candidate. Resolution is nil when
// the original instant was free; otherwise it holds the nudged instant.
type ResolvedSlot struct {
	SlotCandidate
	Resolution *time.Time
}

// Effective returns the instant the slot should actually be scheduled at.
func (s ResolvedSlot) Effective() time.Time {
	if s.Resolution != nil {
		return *s.Resolution
	}
	return s.At
}

// ResolveSlots processes candidates in input order and guarantees that no
// two outputs on the same platform share an instant. On collision the
// candidate is advanced in ConflictStep increments until a free instant
// is found. The result preserves input order and length. Resolution is
// order-sensitive: callers must submit candidates in a stable
// (chronological) order for reproducible output.
func ResolveSlots(candidates []SlotCandidate) []ResolvedSlot {
	claimed := make(map[string]map[int64]struct{}, 4)
	out := make([]ResolvedSlot, 0, len(candidates))

	for _, c := range candidates {
		taken := claimed[c.Platform]
		if taken == nil {
			taken = make(map[int64]struct{})
			claimed[c.Platform] = taken
		}

		slot := c.At
		for {
			if _, clash := taken[slot.UnixNano()]; !clash {
				break
			}
			slot = slot.Add(ConflictStep)
		}
		taken[slot.UnixNano()] = struct{}{}

		resolved := ResolvedSlot{SlotCandidate: c}
		if !slot.Equal(c.At) {
			resolved.Resolution = &slot
		}
		out = append(out, resolved)
	}
	return out
}
