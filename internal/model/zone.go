package model

import "time"

// ZoneTypeBar, ZoneTypeOutdoor, ZoneTypeTable and ZoneTypeOther are the
// recognised values of Zone.Type.  The engine never interprets the type
// beyond carrying it through to responses; it exists so operators can
// group areas in the UI and in reports.
const (
	ZoneTypeBar     = "BAR"
	ZoneTypeOutdoor = "OUTDOOR"
	ZoneTypeTable   = "TABLE"
	ZoneTypeOther   = "OTHER"
)

// UnsetZonePriority is the sentinel used when a zone has no explicit
// priority.  Zones carrying it sort after every prioritised zone, so
// un-prioritised areas are only ever used as a last resort.
const UnsetZonePriority = 1 << 30

// Zone describes a named seating area of the venue.  Zones are ordered
// by Priority when the suggester searches for a fit: a lower number
// means the zone is preferred.  Inactive zones are invisible to the
// allocation engine.
//
// Fields:
//
//	ID        – primary key identifier.
//	Name      – display name of the area.
//	Priority  – ordering weight; lower is preferred, 0 means unset.
//	Active    – whether the zone participates in allocation.
//	Emergency – whether the zone belongs to the emergency overflow set.
//	Type      – area type (BAR, OUTDOOR, TABLE, OTHER).
//	Tags      – free-form labels attached by operators.
//	CreatedAt – creation timestamp.
//	UpdatedAt – last update timestamp.
type Zone struct {
	ID        string    // zones.id
	Name      string    // zones.name
	Priority  int       // zones.priority (0 = unset)
	Active    bool      // zones.is_active
	Emergency bool      // zones.is_emergency
	Type      string    // zones.zone_type
	Tags      []string  // zones.tags (comma separated in storage)
	CreatedAt time.Time // zones.created_at
	UpdatedAt time.Time // zones.updated_at
}

// EffectivePriority returns the zone's priority with the unset value
// mapped to the large sentinel, so sorting by it places un-prioritised
// zones last.
func (z Zone) EffectivePriority() int {
	if z.Priority <= 0 {
		return UnsetZonePriority
	}
	return z.Priority
}
