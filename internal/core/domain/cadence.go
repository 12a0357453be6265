package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// MinLeadTime is the universal guard against scheduling into the past or
// the immediate present: no builder emits a slot sooner than now plus
// this duration.
const MinLeadTime = 15 * time.Minute

// Default time of day used when a cadence carries a missing or malformed
// time string.
const (
	defaultSlotHour   = 10
	defaultSlotMinute = 0
)

// Look-ahead bounds for slot generation.
const (
	DefaultLookAhead = 7 * 24 * time.Hour
	MaxPreviewWeeks  = 12
)

// maxHypeWeeks caps the weekly hype slots generated before an event.
const maxHypeWeeks = 8

// CadenceRule is one recurrence entry from a campaign's metadata: post on
// Platform every week at Weekday Hour:Minute in the campaign's zone.
type CadenceRule struct {
	Platform string
	Weekday  time.Weekday
	Hour     int
	Minute   int
}

// ParseCadenceRules extracts the cadence entries from a campaign metadata
// map. Entries with an unknown platform or an invalid weekday are
// discarded; a malformed time string falls back to the default time of
// day rather than discarding the whole rule.
func ParseCadenceRules(metadata map[string]any) []CadenceRule {
	raw, ok := metadata["cadences"].([]any)
	if !ok {
		return nil
	}
	rules := make([]CadenceRule, 0, len(raw))
	for _, entry := range raw {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		platform, ok := CanonicalPlatform(stringField(m, "platform"))
		if !ok {
			continue
		}
		weekday, ok := parseWeekday(m["weekday"])
		if !ok {
			continue
		}
		hour, minute := ParseClock(stringField(m, "time"))
		rules = append(rules, CadenceRule{
			Platform: platform,
			Weekday:  weekday,
			Hour:     hour,
			Minute:   minute,
		})
	}
	return rules
}

// ParseClock parses an "HH:MM" time-of-day string. Malformed or missing
// input falls back to the default slot time.
func ParseClock(s string) (hour, minute int) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return defaultSlotHour, defaultSlotMinute
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return defaultSlotHour, defaultSlotMinute
	}
	return h, m
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

// parseWeekday accepts either a JSON number (0 = Sunday, per time.Weekday)
// or a weekday name.
func parseWeekday(v any) (time.Weekday, bool) {
	switch w := v.(type) {
	case float64:
		if w < 0 || w > 6 || w != float64(int(w)) {
			return 0, false
		}
		return time.Weekday(int(w)), true
	case string:
		name := strings.ToLower(strings.TrimSpace(w))
		for d := time.Sunday; d <= time.Saturday; d++ {
			if strings.ToLower(d.String()) == name {
				return d, true
			}
		}
	}
	return 0, false
}

// ParseEventDate reads an RFC3339 event timestamp from campaign metadata.
// A missing or malformed date falls back to now in the given zone.
func ParseEventDate(metadata map[string]any, loc *time.Location, now time.Time) time.Time {
	s := stringField(metadata, "event_date")
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return now.In(loc)
	}
	return t.In(loc)
}

// ParsePromotionWindow reads the promotion start and end timestamps from
// campaign metadata. Either bound falls back to now in the given zone
// when missing or malformed.
func ParsePromotionWindow(metadata map[string]any, loc *time.Location, now time.Time) (start, end time.Time) {
	parse := func(key string) time.Time {
		t, err := time.Parse(time.RFC3339, stringField(metadata, key))
		if err != nil {
			return now.In(loc)
		}
		return t.In(loc)
	}
	return parse("promo_start"), parse("promo_end")
}

// WeeklySlots walks forward week by week from the start of the current
// calendar week in loc, computing the rule's weekday and time for each
// week. Slots before now+MinLeadTime are skipped; generation stops past
// the look-ahead window.
func WeeklySlots(rule CadenceRule, loc *time.Location, now time.Time, lookAhead time.Duration) []time.Time {
	now = now.In(loc)
	earliest := now.Add(MinLeadTime)
	windowEnd := now.Add(lookAhead)

	var slots []time.Time
	for week := startOfWeek(now); !week.After(windowEnd); week = week.AddDate(0, 0, 7) {
		day := week.AddDate(0, 0, daysFromMonday(rule.Weekday))
		slot := time.Date(day.Year(), day.Month(), day.Day(), rule.Hour, rule.Minute, 0, 0, loc)
		if slot.Before(earliest) {
			continue
		}
		if slot.After(windowEnd) {
			break
		}
		slots = append(slots, slot)
	}
	return slots
}

// EventCountdownSlots generates the hype and countdown schedule for an
// event: up to eight weekly slots at one, two, three... weeks before the
// event, plus fixed points at three days, two days and zero days before
// it. Slots before now+MinLeadTime are dropped. The result is sorted
// ascending.
func EventCountdownSlots(eventAt time.Time, now time.Time) []time.Time {
	earliest := now.Add(MinLeadTime)

	var slots []time.Time
	for week := 1; week <= maxHypeWeeks; week++ {
		slot := eventAt.AddDate(0, 0, -7*week)
		if slot.Before(earliest) {
			break
		}
		slots = append(slots, slot)
	}
	for _, days := range []int{3, 2, 0} {
		slot := eventAt.AddDate(0, 0, -days)
		if slot.Before(earliest) {
			continue
		}
		slots = append(slots, slot)
	}

	sort.Slice(slots, func(i, j int) bool { return slots[i].Before(slots[j]) })
	return slots
}

// PromotionSlots generates announcement slots for a promotion window:
// launch, midpoint and final day. An inverted window yields nothing, and
// the usual minimum-lead guard applies.
func PromotionSlots(start, end time.Time, now time.Time) []time.Time {
	if end.Before(start) {
		return nil
	}
	earliest := now.Add(MinLeadTime)

	candidates := []time.Time{start, start.Add(end.Sub(start) / 2), end}
	var slots []time.Time
	for _, slot := range candidates {
		if slot.Before(earliest) {
			continue
		}
		if len(slots) > 0 && slots[len(slots)-1].Equal(slot) {
			continue
		}
		slots = append(slots, slot)
	}
	return slots
}

// startOfWeek returns midnight of the Monday of t's week, in t's zone.
func startOfWeek(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -daysFromMonday(t.Weekday()))
}

// daysFromMonday maps a weekday to its offset from Monday (Monday = 0,
// Sunday = 6).
func daysFromMonday(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// String implements fmt.Stringer for log output.
func (r CadenceRule) String() string {
	return fmt.Sprintf("%s %s %02d:%02d", r.Platform, r.Weekday, r.Hour, r.Minute)
}
