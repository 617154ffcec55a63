// Package allocation is the seating decision engine.  It assigns
// zones and tables to timed bookings, detects scheduling conflicts
// between bookings that hold the same tables, and merges guest
// intent, administrative overrides and automatic suggestions into one
// authoritative final assignment.  Everything in this package is pure
// computation over caller-supplied snapshots: no I/O, no clock reads,
// no shared mutable state.
package allocation

import (
	"fmt"
	"time"
)

// Comparable reports whether a time window can take part in overlap
// checks.  A window is comparable when both endpoints are present and
// the end lies strictly after the start.  Degenerate windows never
// overlap anything; callers exclude them from conflict computation
// instead of treating them as errors.
func Comparable(start, end time.Time) bool {
	return !start.IsZero() && !end.IsZero() && end.After(start)
}

// Overlaps reports whether window A intersects window B after B has
// been expanded by the buffer on both ends.  The padding is applied to
// one side only so that two buffered comparisons do not double-count
// the safety margin.  Non-comparable windows on either side yield
// false.
func Overlaps(startA, endA, startB, endB time.Time, buffer time.Duration) bool {
	if !Comparable(startA, endA) || !Comparable(startB, endB) {
		return false
	}
	if buffer < 0 {
		buffer = 0
	}
	paddedStart := startB.Add(-buffer)
	paddedEnd := endB.Add(buffer)
	return startA.Before(paddedEnd) && endA.After(paddedStart)
}

// WindowLabel renders a booking window as "15:04–15:04" for
// diagnostics and conflict entries.  Non-comparable windows render as
// a question mark so broken data stays visible in reports.
func WindowLabel(start, end time.Time) string {
	if !Comparable(start, end) {
		return "?"
	}
	return fmt.Sprintf("%s–%s", start.Format("15:04"), end.Format("15:04"))
}
