package allocation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mintleaf/seating/internal/model"
)

type appliedCall struct {
	bookingID string
	final     model.AllocationFinal
	allocated *model.AllocationAllocated
}

// recordingSink captures apply-mode persistence calls.
type recordingSink struct {
	calls   []appliedCall
	failFor map[string]error
	panicOn string
}

func (s *recordingSink) ApplyAllocation(ctx context.Context, bookingID string, final model.AllocationFinal, allocated *model.AllocationAllocated) error {
	if s.panicOn == bookingID {
		panic("sink exploded")
	}
	if err := s.failFor[bookingID]; err != nil {
		return err
	}
	s.calls = append(s.calls, appliedCall{bookingID: bookingID, final: final, allocated: allocated})
	return nil
}

func singleTableCatalog() *Catalog {
	zones := []model.Zone{{ID: "Z1", Name: "Main", Priority: 1, Active: true}}
	tables := []model.Table{{ID: "T1", Name: "01", ZoneID: "Z1", MinSeats: 2, MaxSeats: 4, Active: true}}
	return NewCatalog(zones, tables, nil)
}

func statusByBooking(result DayResult) map[string]string {
	statuses := make(map[string]string, len(result.Items))
	for _, item := range result.Items {
		statuses[item.BookingID] = item.Status
	}
	return statuses
}

func TestRunDayNeverDoubleBooksWithinOneRun(t *testing.T) {
	cat := singleTableCatalog()
	bookings := []model.Booking{
		booking("b2", "Nagy", at(19, 30), at(20, 30)),
		booking("b1", "Kovács", at(19, 0), at(20, 0)),
	}

	result := RunDay(context.Background(), "2025-06-14", ModeDryRun, bookings, cat, defaultSettings(), nil)

	require.Equal(t, 2, result.Totals.Processed)
	require.Equal(t, 1, result.Totals.Updated)
	require.Equal(t, 1, result.Totals.NoFit)

	statuses := statusByBooking(result)
	require.Equal(t, ItemUpdated, statuses["b1"], "earlier booking gets first claim")
	require.Equal(t, ItemNoFit, statuses["b2"])
}

func TestRunDayOrderIsStartThenID(t *testing.T) {
	cat := singleTableCatalog()
	bookings := []model.Booking{
		booking("b9", "Nagy", at(19, 0), at(20, 0)),
		booking("b1", "Kovács", at(19, 0), at(20, 0)),
	}

	result := RunDay(context.Background(), "2025-06-14", ModeDryRun, bookings, cat, defaultSettings(), nil)
	require.Equal(t, "b1", result.Items[0].BookingID, "id breaks start-time ties")
	require.Equal(t, ItemUpdated, result.Items[0].Status)
	require.Equal(t, ItemNoFit, result.Items[1].Status)
}

func TestRunDayNonOverlappingBookingsShareTable(t *testing.T) {
	cat := singleTableCatalog()
	settings := defaultSettings() // 15 minute buffer
	bookings := []model.Booking{
		booking("b1", "Kovács", at(18, 0), at(19, 0)),
		booking("b2", "Nagy", at(19, 30), at(20, 30)),
	}

	result := RunDay(context.Background(), "2025-06-14", ModeDryRun, bookings, cat, settings, nil)
	require.Equal(t, 2, result.Totals.Updated, "a gap wider than the buffer frees the table")
	require.Zero(t, result.Totals.Conflicts)
}

func TestRunDaySkipsCancelledAndInvalid(t *testing.T) {
	cat := singleTableCatalog()
	cancelled := booking("b1", "Kovács", at(19, 0), at(20, 0))
	cancelled.Status = model.BookingStatusCancelled
	broken := booking("b2", "Nagy", at(20, 0), at(19, 0)) // end before start

	result := RunDay(context.Background(), "2025-06-14", ModeDryRun,
		[]model.Booking{cancelled, broken}, cat, defaultSettings(), nil)

	require.Equal(t, 2, result.Totals.SkippedInvalid)
	require.Zero(t, result.Totals.Updated)
	for _, item := range result.Items {
		require.Equal(t, ItemSkippedInvalid, item.Status)
	}
}

func TestRunDayCancelledBookingFreesItsStaleTables(t *testing.T) {
	cat := singleTableCatalog()
	cancelled := booking("b1", "Kovács", at(19, 0), at(20, 0), "T1")
	cancelled.Status = model.BookingStatusCancelled
	live := booking("b2", "Nagy", at(19, 30), at(20, 30))

	result := RunDay(context.Background(), "2025-06-14", ModeDryRun,
		[]model.Booking{cancelled, live}, cat, defaultSettings(), nil)

	byID := statusByBooking(result)
	require.Equal(t, ItemSkippedInvalid, byID["b1"])
	// The stale assignment of a cancelled booking must not hold the
	// table: the detector ignores cancelled bookings, so the
	// suggester must too.
	require.Equal(t, ItemUpdated, byID["b2"])
	require.Equal(t, 1, result.Totals.Updated)
	require.Zero(t, result.Totals.NoFit)
}

func TestRunDayLockedBookingKeepsItsClaim(t *testing.T) {
	cat := singleTableCatalog()
	locked := booking("b1", "Kovács", at(19, 0), at(20, 0), "T1")
	locked.Final.Locked = true
	follower := booking("b2", "Nagy", at(19, 30), at(20, 30))

	result := RunDay(context.Background(), "2025-06-14", ModeDryRun,
		[]model.Booking{locked, follower}, cat, defaultSettings(), nil)

	statuses := statusByBooking(result)
	require.Equal(t, ItemSkippedLocked, statuses["b1"])
	require.Equal(t, ItemNoFit, statuses["b2"], "locked tables stay occupied for the rest of the run")
	require.Equal(t, 1, result.Totals.SkippedLocked)
}

func TestRunDayConflictWithPersistedAssignment(t *testing.T) {
	cat := singleTableCatalog()
	// b2 already holds T1 from an earlier persisted run but sorts
	// after b1, so b1 is suggested onto T1 first and the collision
	// surfaces as a conflict instead of a silent exclusion.
	b1 := booking("b1", "Kovács", at(19, 0), at(20, 30))
	b2 := booking("b2", "Nagy", at(20, 0), at(21, 0), "T1")

	result := RunDay(context.Background(), "2025-06-14", ModeDryRun,
		[]model.Booking{b1, b2}, cat, defaultSettings(), nil)

	statuses := statusByBooking(result)
	require.Equal(t, ItemConflict, statuses["b1"])
	require.Equal(t, ItemNoFit, statuses["b2"], "b1's fresh claim blocks re-suggesting T1")
	require.Equal(t, 1, result.Totals.DistinctConflicts)
}

func TestRunDayDryRunIsIdempotentAndCallsNoSink(t *testing.T) {
	cat := singleTableCatalog()
	sink := &recordingSink{}
	bookings := []model.Booking{
		booking("b1", "Kovács", at(19, 0), at(20, 0)),
		booking("b2", "Nagy", at(19, 30), at(20, 30)),
	}

	first := RunDay(context.Background(), "2025-06-14", ModeDryRun, bookings, cat, defaultSettings(), sink)
	second := RunDay(context.Background(), "2025-06-14", ModeDryRun, bookings, cat, defaultSettings(), sink)

	require.Equal(t, first, second)
	require.Empty(t, sink.calls, "dry runs never persist")
}

func TestRunDayApplyForwardsToSink(t *testing.T) {
	cat := singleTableCatalog()
	sink := &recordingSink{}
	bookings := []model.Booking{booking("b1", "Kovács", at(19, 0), at(20, 0))}

	result := RunDay(context.Background(), "2025-06-14", ModeApply, bookings, cat, defaultSettings(), sink)

	require.Equal(t, 1, result.Totals.Updated)
	require.Len(t, sink.calls, 1)
	call := sink.calls[0]
	require.Equal(t, "b1", call.bookingID)
	require.Equal(t, []string{"T1"}, call.final.TableIDs)
	require.NotNil(t, call.allocated)
	require.Equal(t, BatchStrategy, call.allocated.Strategy)
}

func TestRunDaySinkFailureIsIsolated(t *testing.T) {
	cat := singleTableCatalog()
	sink := &recordingSink{failFor: map[string]error{"b1": errors.New("connection lost")}}
	bookings := []model.Booking{
		booking("b1", "Kovács", at(18, 0), at(19, 0)),
		booking("b2", "Nagy", at(20, 0), at(21, 0)),
	}

	result := RunDay(context.Background(), "2025-06-14", ModeApply, bookings, cat, defaultSettings(), sink)

	statuses := statusByBooking(result)
	require.Equal(t, ItemError, statuses["b1"])
	require.Equal(t, ItemUpdated, statuses["b2"], "one booking's failure never aborts the run")
	require.Equal(t, 1, result.Totals.Errors)
}

func TestRunDayPanicIsIsolated(t *testing.T) {
	cat := singleTableCatalog()
	sink := &recordingSink{panicOn: "b1"}
	bookings := []model.Booking{
		booking("b1", "Kovács", at(18, 0), at(19, 0)),
		booking("b2", "Nagy", at(20, 0), at(21, 0)),
	}

	result := RunDay(context.Background(), "2025-06-14", ModeApply, bookings, cat, defaultSettings(), sink)

	statuses := statusByBooking(result)
	require.Equal(t, ItemError, statuses["b1"])
	require.Contains(t, result.Items[0].Reason, "pipeline failure")
	require.Equal(t, ItemUpdated, statuses["b2"])
}

func TestRunDayDoesNotMutateInput(t *testing.T) {
	cat := singleTableCatalog()
	bookings := []model.Booking{booking("b1", "Kovács", at(19, 0), at(20, 0))}

	_ = RunDay(context.Background(), "2025-06-14", ModeDryRun, bookings, cat, defaultSettings(), nil)
	require.Empty(t, bookings[0].Final.TableIDs, "caller's snapshot must stay untouched")
}
