package allocation

import (
	"sort"
	"time"

	"github.com/mintleaf/seating/internal/model"
)

// ConflictEntry records one other booking that holds at least one of
// the candidate tables during a window that overlaps the target's
// buffer-padded window.  Conflicts are diagnosable conditions, not
// errors: an operator may accept them deliberately (emergency
// overflow, intentional overbooking).
type ConflictEntry struct {
	BookingID      string   `json:"booking_id"`
	BookingName    string   `json:"booking_name"`
	OverlapLabel   string   `json:"overlap"`
	SharedTableIDs []string `json:"shared_table_ids"`
}

// DetectConflicts computes, for a candidate table set and a target
// window, every same-day booking that both overlaps in time (with the
// buffer applied to the other booking's window) and shares at least
// one table.  Cancelled bookings, the target itself, bookings without
// an assignment and bookings with degenerate windows are all skipped.
// The result is sorted by the other booking's start time, then name,
// so diagnostics and UI output are stable across runs.
//
// An empty candidate set always yields zero conflicts: no tables
// claimed means nothing to collide with.
func DetectConflicts(target model.Booking, candidateTableIDs []string, sameDay []model.Booking, buffer time.Duration) []ConflictEntry {
	if len(candidateTableIDs) == 0 {
		return nil
	}
	candidate := make(map[string]struct{}, len(candidateTableIDs))
	for _, id := range candidateTableIDs {
		candidate[id] = struct{}{}
	}

	type match struct {
		entry ConflictEntry
		start time.Time
	}
	var matches []match
	for _, other := range sameDay {
		if other.ID == target.ID || other.Status == model.BookingStatusCancelled {
			continue
		}
		assigned := other.AssignedTableIDs()
		if len(assigned) == 0 {
			continue
		}
		if !Overlaps(target.StartsAt, target.EndsAt, other.StartsAt, other.EndsAt, buffer) {
			continue
		}
		shared := sharedTables(candidate, assigned)
		if len(shared) == 0 {
			continue
		}
		matches = append(matches, match{
			entry: ConflictEntry{
				BookingID:      other.ID,
				BookingName:    other.GuestName,
				OverlapLabel:   WindowLabel(other.StartsAt, other.EndsAt),
				SharedTableIDs: shared,
			},
			start: other.StartsAt,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if !matches[i].start.Equal(matches[j].start) {
			return matches[i].start.Before(matches[j].start)
		}
		return matches[i].entry.BookingName < matches[j].entry.BookingName
	})
	entries := make([]ConflictEntry, 0, len(matches))
	for _, m := range matches {
		entries = append(entries, m.entry)
	}
	if len(entries) == 0 {
		return nil
	}
	return entries
}

func sharedTables(candidate map[string]struct{}, assigned []string) []string {
	var shared []string
	for _, id := range assigned {
		if _, ok := candidate[id]; ok {
			shared = append(shared, id)
		}
	}
	sort.Strings(shared)
	return shared
}
