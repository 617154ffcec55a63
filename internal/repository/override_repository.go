package repository

import (
	"context"
	"database/sql"

	"github.com/mintleaf/seating/internal/model"
)

// OverrideRepo reads and writes the administrator override columns on
// bookings.  Writing an override is an administrative action outside
// the allocation engine; the engine only ever reads overrides as part
// of a booking snapshot.
type OverrideRepo struct {
	db *sql.DB
}

// NewOverrideRepo constructs an OverrideRepo bound to the given database.
func NewOverrideRepo(db *sql.DB) *OverrideRepo { return &OverrideRepo{db: db} }

// Get returns the override recorded for a booking, or nil when none is
// set.  ErrNotFound means the booking itself does not exist.
func (r *OverrideRepo) Get(ctx context.Context, bookingID string) (*model.AllocationOverride, error) {
	b, err := NewBookingRepo(r.db).GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	return b.Override, nil
}

// Put stores an override on a booking, replacing any previous one.
func (r *OverrideRepo) Put(ctx context.Context, bookingID string, o model.AllocationOverride) error {
	if _, err := NewBookingRepo(r.db).GetByID(ctx, bookingID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET
			override_zone_id = ?, override_table_ids = ?, override_note = ?, override_enabled = ?,
			updated_at = NOW()
		 WHERE id = ?`,
		o.ZoneID, joinList(o.TableIDs), o.Note, o.Enabled, bookingID)
	return err
}

// Delete clears a booking's override entirely.
func (r *OverrideRepo) Delete(ctx context.Context, bookingID string) error {
	if _, err := NewBookingRepo(r.db).GetByID(ctx, bookingID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET
			override_zone_id = '', override_table_ids = '', override_note = '', override_enabled = 0,
			updated_at = NOW()
		 WHERE id = ?`,
		bookingID)
	return err
}
