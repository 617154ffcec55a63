package repository

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/mintleaf/seating/internal/model"
)

// SettingsRepo reads the venue-wide seating settings.  The
// `seating_settings` table holds a single row; when it is missing the
// repository returns safe defaults so a fresh installation can
// allocate immediately.
type SettingsRepo struct {
	db *sql.DB
}

// NewSettingsRepo constructs a SettingsRepo bound to the given database.
func NewSettingsRepo(db *sql.DB) *SettingsRepo { return &SettingsRepo{db: db} }

// DefaultSettings are used when no settings row exists yet.
func DefaultSettings() model.SeatingSettings {
	return model.SeatingSettings{
		BufferMinutes:          15,
		DefaultDurationMinutes: 120,
	}
}

// Get returns the current seating settings.
func (r *SettingsRepo) Get(ctx context.Context) (model.SeatingSettings, error) {
	var (
		s                 model.SeatingSettings
		emergencyZones    string
		emergencyWeekdays string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT buffer_minutes, default_duration_minutes, vip_enabled,
		        emergency_enabled, emergency_zone_ids, emergency_rule, emergency_weekdays,
		        floorplan_id, updated_at
		 FROM seating_settings LIMIT 1`).
		Scan(&s.BufferMinutes, &s.DefaultDurationMinutes, &s.VIPEnabled,
			&s.Emergency.Enabled, &emergencyZones, &s.Emergency.Rule, &emergencyWeekdays,
			&s.FloorplanID, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return model.SeatingSettings{}, err
	}
	s.Emergency.ZoneIDs = splitList(emergencyZones)
	s.Emergency.Weekdays = parseWeekdays(emergencyWeekdays)
	return s, nil
}

// parseWeekdays decodes the comma-separated weekday numbers column
// (0 = Sunday, matching time.Weekday).  Unparseable entries are
// dropped rather than failing the whole settings load.
func parseWeekdays(raw string) []time.Weekday {
	var days []time.Weekday
	for _, part := range splitList(raw) {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || n > 6 {
			continue
		}
		days = append(days, time.Weekday(n))
	}
	return days
}
