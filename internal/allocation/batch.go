package allocation

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/mintleaf/seating/internal/model"
)

// Mode selects whether a day run persists its results.
type Mode string

const (
	// ModeDryRun computes everything but never touches the sink.
	// Dry runs are idempotent: identical input state yields an
	// identical DayResult.
	ModeDryRun Mode = "dry_run"
	// ModeApply forwards each resolution to the persistence sink.
	ModeApply Mode = "apply"
)

// Per-item statuses of a day run.
const (
	ItemUpdated        = "updated"
	ItemNoFit          = "no_fit"
	ItemConflict       = "conflict"
	ItemSkippedInvalid = "skipped_invalid"
	ItemSkippedLocked  = "skipped_locked"
	ItemError          = "error"
)

// BatchStrategy is recorded on Allocated records written by day runs.
const BatchStrategy = "auto-batch"

// ItemResult is the outcome for one booking of a day run.
type ItemResult struct {
	BookingID   string                       `json:"booking_id"`
	Status      string                       `json:"status"`
	Reason      string                       `json:"reason,omitempty"`
	Diagnostics *model.AllocationDiagnostics `json:"diagnostics,omitempty"`
	Conflicts   []ConflictEntry              `json:"conflicts,omitempty"`
}

// Totals aggregates a day run.  DistinctConflicts counts the other
// bookings involved in at least one conflict, deduplicated, so a
// single double-booked table does not inflate the number.
type Totals struct {
	Processed         int `json:"processed"`
	Updated           int `json:"updated"`
	NoFit             int `json:"no_fit"`
	Conflicts         int `json:"conflicts"`
	SkippedInvalid    int `json:"skipped_invalid"`
	SkippedLocked     int `json:"skipped_locked"`
	Errors            int `json:"errors"`
	DistinctConflicts int `json:"distinct_conflicts"`
}

// DayResult is the full report of one day run.
type DayResult struct {
	DateKey string       `json:"date"`
	Mode    Mode         `json:"mode"`
	Totals  Totals       `json:"totals"`
	Items   []ItemResult `json:"items"`
}

// tableClaim marks tables taken by an earlier booking of the same run
// for a given window.  Later bookings must not be suggested onto a
// claimed table at an overlapping time, even though nothing has been
// persisted yet.
type tableClaim struct {
	tableIDs   []string
	start, end time.Time
}

// RunDay drives every booking of a day through the suggest → detect →
// resolve pipeline in a fixed order (start time ascending, id
// ascending), so earlier bookings get first claim on tight-fitting
// tables and reruns are reproducible.  Bookings are strictly
// sequential: each one's conflict picture depends on the cumulative
// claims of the ones before it.
//
// A failure inside one booking's pipeline is caught and recorded as an
// item with status "error"; it never aborts the run.
func RunDay(ctx context.Context, dateKey string, mode Mode, bookings []model.Booking, cat *Catalog, settings model.SeatingSettings, sink PersistenceSink) DayResult {
	working := append([]model.Booking(nil), bookings...)
	sort.SliceStable(working, func(i, j int) bool {
		if !working[i].StartsAt.Equal(working[j].StartsAt) {
			return working[i].StartsAt.Before(working[j].StartsAt)
		}
		return working[i].ID < working[j].ID
	})

	result := DayResult{DateKey: dateKey, Mode: mode}
	var claims []tableClaim
	conflicting := make(map[string]struct{})

	for i := range working {
		b := working[i]
		item := processBooking(ctx, &working[i], mode, working, claims, cat, settings, sink)

		result.Totals.Processed++
		switch item.Status {
		case ItemUpdated:
			result.Totals.Updated++
		case ItemNoFit:
			result.Totals.NoFit++
		case ItemConflict:
			result.Totals.Conflicts++
		case ItemSkippedInvalid:
			result.Totals.SkippedInvalid++
		case ItemSkippedLocked:
			result.Totals.SkippedLocked++
		case ItemError:
			result.Totals.Errors++
		}
		for _, c := range item.Conflicts {
			conflicting[c.BookingID] = struct{}{}
		}

		// Whatever the booking now holds is claimed for the rest of
		// the run; this covers fresh assignments and locked bookings
		// alike.  Cancelled bookings claim nothing: their stale
		// assignments do not conflict either, so the tables are free.
		if held := working[i].AssignedTableIDs(); len(held) > 0 &&
			b.Status != model.BookingStatusCancelled && Comparable(b.StartsAt, b.EndsAt) {
			claims = append(claims, tableClaim{tableIDs: held, start: b.StartsAt, end: b.EndsAt})
		}
		result.Items = append(result.Items, item)
	}
	result.Totals.DistinctConflicts = len(conflicting)
	return result
}

// processBooking runs the pipeline for a single booking.  The booking
// pointer is updated in place so that later bookings of the same run
// see its new assignment.  Panics are converted into an "error" item.
func processBooking(ctx context.Context, b *model.Booking, mode Mode, working []model.Booking, claims []tableClaim, cat *Catalog, settings model.SeatingSettings, sink PersistenceSink) (item ItemResult) {
	item = ItemResult{BookingID: b.ID}
	defer func() {
		if r := recover(); r != nil {
			item.Status = ItemError
			item.Reason = fmt.Sprintf("pipeline failure: %v", r)
		}
	}()

	if b.Status == model.BookingStatusCancelled || !Comparable(b.StartsAt, b.EndsAt) {
		item.Status = ItemSkippedInvalid
		if b.Status == model.BookingStatusCancelled {
			item.Reason = "cancelled"
		} else {
			item.Reason = "invalid time window"
		}
		return item
	}

	if b.Final.Locked {
		item.Status = ItemSkippedLocked
		item.Reason = ReasonLocked
		return item
	}

	sug := Suggest(SuggestRequest{
		PartySize: b.PartySize,
		StartsAt:  b.StartsAt,
		Override:  b.Override,
		Occupied:  occupiedFor(*b, claims, settings.Buffer()),
	}, cat, settings)

	conflicts := DetectConflicts(*b, sug.TableIDs, working, settings.Buffer())

	res := Resolve(ResolveInput{
		Booking:    *b,
		Suggestion: sug,
		Conflicts:  conflicts,
		Commit:     mode == ModeApply,
		Strategy:   BatchStrategy,
	})
	item.Diagnostics = &res.Diagnostics
	item.Conflicts = conflicts

	if mode == ModeApply && sink != nil {
		if err := sink.ApplyAllocation(ctx, b.ID, res.Final, res.Allocated); err != nil {
			item.Status = ItemError
			item.Reason = fmt.Sprintf("persist failed: %v", err)
			return item
		}
	}
	b.Final = res.Final
	b.Allocated = res.Allocated

	switch {
	case sug.Reason == ReasonNoFit || sug.Reason == ReasonInvalidPartySize:
		item.Status = ItemNoFit
		item.Reason = sug.Reason
	case len(conflicts) > 0:
		item.Status = ItemConflict
		item.Reason = sug.Reason
	default:
		item.Status = ItemUpdated
		item.Reason = sug.Reason
	}
	return item
}

// occupiedFor collects the tables claimed earlier in this run for
// windows that overlap the booking's, buffer-padded.  Persisted
// assignments of not-yet-processed bookings are deliberately absent:
// collisions with those surface through the conflict detector instead
// of silently shrinking the search space.
func occupiedFor(b model.Booking, claims []tableClaim, buffer time.Duration) map[string]struct{} {
	occupied := make(map[string]struct{})
	for _, claim := range claims {
		if !Overlaps(b.StartsAt, b.EndsAt, claim.start, claim.end, buffer) {
			continue
		}
		for _, tid := range claim.tableIDs {
			occupied[tid] = struct{}{}
		}
	}
	return occupied
}
