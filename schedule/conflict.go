package schedule

import (
	"fmt"
	"time"
)

// Interval is a half-open time window [Start,End).
type Interval struct {
	Start, End time.Time
}

// Overlaps reports whether two intervals intersect. Intervals are
// closed-open: an event ending exactly when another starts does not
// overlap it.
func Overlaps(a, b Interval) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// FilterConflicting returns the subset of existing calendar items whose
// interval overlaps the pending event's interval under closed-open
// semantics. Items the provider returned that merely touch the window
// boundary are excluded.
func FilterConflicting(pending Event, existing []CalendarEvent) ([]CalendarEvent, error) {
	window, err := intervalOf(pending.Start, pending.End)
	if err != nil {
		return nil, fmt.Errorf("pending event %q: %w", pending.Summary, err)
	}
	var conflicting []CalendarEvent
	for _, item := range existing {
		iv, err := intervalOf(item.Start, item.End)
		if err != nil {
			return nil, fmt.Errorf("calendar event %q: %w", item.Summary, err)
		}
		if Overlaps(window, iv) {
			conflicting = append(conflicting, item)
		}
	}
	return conflicting, nil
}

func intervalOf(start, end EventTime) (Interval, error) {
	s, err := start.Time()
	if err != nil {
		return Interval{}, fmt.Errorf("invalid start time %q: %w", start.DateTime, err)
	}
	e, err := end.Time()
	if err != nil {
		return Interval{}, fmt.Errorf("invalid end time %q: %w", end.DateTime, err)
	}
	return Interval{Start: s, End: e}, nil
}
