package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mintleaf/seating/internal/model"
)

// BookingRepo provides access to the `bookings` table, including the
// four-stage allocation columns (intent, override, final, allocated).
// It doubles as the engine's persistence sink: ApplyAllocation writes
// the final and allocated records emitted by an apply-mode day run.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo constructs a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingColumns = `id, guest_name, party_size, starts_at, ends_at, status,
	intent_time_slot, intent_zone_id, intent_group_label,
	override_zone_id, override_table_ids, override_note, override_enabled,
	final_source, final_zone_id, final_group_label, final_table_ids, final_locked,
	allocated_zone_id, allocated_table_ids, allocated_strategy, allocated_summary,
	created_at, updated_at`

func scanBooking(row interface{ Scan(...any) error }) (model.Booking, error) {
	var (
		b               model.Booking
		o               model.AllocationOverride
		a               model.AllocationAllocated
		overrideTables  string
		finalTables     string
		allocatedTables string
	)
	err := row.Scan(&b.ID, &b.GuestName, &b.PartySize, &b.StartsAt, &b.EndsAt, &b.Status,
		&b.Intent.TimeSlot, &b.Intent.ZoneID, &b.Intent.GroupLabel,
		&o.ZoneID, &overrideTables, &o.Note, &o.Enabled,
		&b.Final.Source, &b.Final.ZoneID, &b.Final.GroupLabel, &finalTables, &b.Final.Locked,
		&a.ZoneID, &allocatedTables, &a.Strategy, &a.Summary,
		&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return model.Booking{}, err
	}
	o.TableIDs = splitList(overrideTables)
	b.Final.TableIDs = splitList(finalTables)
	a.TableIDs = splitList(allocatedTables)
	if o.Enabled || o.ZoneID != "" || len(o.TableIDs) > 0 || o.Note != "" {
		b.Override = &o
	}
	if a.ZoneID != "" || len(a.TableIDs) > 0 || a.Strategy != "" || a.Summary != "" {
		b.Allocated = &a
	}
	return b, nil
}

// GetByID returns a single booking or ErrNotFound.
func (r *BookingRepo) GetByID(ctx context.Context, id string) (model.Booking, error) {
	b, err := scanBooking(r.db.QueryRowContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Booking{}, ErrNotFound
	}
	return b, err
}

// BookingsOn returns every booking starting on the given date key
// (YYYY-MM-DD, interpreted in the venue's stored timezone), ordered by
// start time then id, the same order the batch allocator processes in.
func (r *BookingRepo) BookingsOn(ctx context.Context, dateKey string) ([]model.Booking, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE DATE(starts_at) = ? ORDER BY starts_at, id`,
		dateKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []model.Booking
	for rows.Next() {
		b, scanErr := scanBooking(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// ApplyAllocation persists a resolved allocation.  A nil allocated
// record clears the allocated columns; this happens when a final
// assignment is written without seating anyone (manual pre-assignment).
func (r *BookingRepo) ApplyAllocation(ctx context.Context, bookingID string, final model.AllocationFinal, allocated *model.AllocationAllocated) error {
	if _, err := r.GetByID(ctx, bookingID); err != nil {
		return err
	}
	a := model.AllocationAllocated{}
	if allocated != nil {
		a = *allocated
	}
	_, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET
			final_source = ?, final_zone_id = ?, final_group_label = ?, final_table_ids = ?, final_locked = ?,
			allocated_zone_id = ?, allocated_table_ids = ?, allocated_strategy = ?, allocated_summary = ?,
			updated_at = NOW()
		 WHERE id = ?`,
		final.Source, final.ZoneID, final.GroupLabel, joinList(final.TableIDs), final.Locked,
		a.ZoneID, joinList(a.TableIDs), a.Strategy, a.Summary,
		bookingID)
	return err
}

// SetLocked flips the final_locked flag.
func (r *BookingRepo) SetLocked(ctx context.Context, bookingID string, locked bool) error {
	if _, err := r.GetByID(ctx, bookingID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET final_locked = ?, updated_at = NOW() WHERE id = ?`,
		locked, bookingID)
	return err
}

// SetManualFinal writes an operator-chosen final assignment with
// source "manual".  It refuses to touch a locked booking: callers must
// unlock first, which keeps the lock semantics in one place.
func (r *BookingRepo) SetManualFinal(ctx context.Context, bookingID string, final model.AllocationFinal) error {
	b, err := r.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if b.Final.Locked {
		return ErrLocked
	}
	_, err = r.db.ExecContext(ctx,
		`UPDATE bookings SET
			final_source = ?, final_zone_id = ?, final_group_label = ?, final_table_ids = ?, final_locked = ?,
			updated_at = NOW()
		 WHERE id = ?`,
		model.AllocationSourceManual, final.ZoneID, final.GroupLabel, joinList(final.TableIDs), final.Locked,
		bookingID)
	return err
}
