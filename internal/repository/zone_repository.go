package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mintleaf/seating/internal/model"
)

// ZoneRepo provides read access to the `zones` table.  The allocation
// engine consumes zones as part of a catalog snapshot; inactive-zone
// filtering happens inside the engine's catalog, so this repository
// returns every row and leaves the active flag intact.
type ZoneRepo struct {
	db *sql.DB
}

// NewZoneRepo constructs a ZoneRepo bound to the given database.
func NewZoneRepo(db *sql.DB) *ZoneRepo { return &ZoneRepo{db: db} }

const zoneColumns = `id, name, priority, is_active, is_emergency, zone_type, tags, created_at, updated_at`

func scanZone(row interface{ Scan(...any) error }) (model.Zone, error) {
	var (
		z    model.Zone
		tags string
	)
	err := row.Scan(&z.ID, &z.Name, &z.Priority, &z.Active, &z.Emergency, &z.Type, &tags, &z.CreatedAt, &z.UpdatedAt)
	if err != nil {
		return model.Zone{}, err
	}
	z.Tags = splitList(tags)
	return z, nil
}

// ListAll returns every zone ordered by priority then name, matching
// the catalog's ordering so browse endpoints and suggestions agree.
func (r *ZoneRepo) ListAll(ctx context.Context) ([]model.Zone, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+zoneColumns+` FROM zones ORDER BY priority = 0, priority, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var zones []model.Zone
	for rows.Next() {
		z, scanErr := scanZone(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		zones = append(zones, z)
	}
	return zones, rows.Err()
}

// GetByID returns a single zone or ErrNotFound.
func (r *ZoneRepo) GetByID(ctx context.Context, id string) (model.Zone, error) {
	z, err := scanZone(r.db.QueryRowContext(ctx,
		`SELECT `+zoneColumns+` FROM zones WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Zone{}, ErrNotFound
	}
	return z, err
}
