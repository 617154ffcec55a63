package model

import "time"

// Table describes a single physical seating unit.  A table belongs to
// exactly one zone and carries a capacity range: a party fits when its
// size lies within [MinSeats, MaxSeats].  Geometry (position on the
// floorplan) is deliberately absent – the engine never reads it.
//
// Fields:
//
//	ID         – primary key identifier.
//	Name       – display name (usually the table number).
//	ZoneID     – zone this table belongs to.
//	MinSeats   – smallest party the table should be given to.
//	MaxSeats   – largest party the table can seat.
//	Active     – whether the table participates in allocation.
//	Combinable – whether the table may be part of a combination.
//	GroupLabel – optional label grouping tables for guest intent.
//	Tags       – free-form labels attached by operators.
//	CreatedAt  – creation timestamp.
//	UpdatedAt  – last update timestamp.
type Table struct {
	ID         string    // venue_tables.id
	Name       string    // venue_tables.name
	ZoneID     string    // venue_tables.zone_id
	MinSeats   int       // venue_tables.min_seats
	MaxSeats   int       // venue_tables.max_seats
	Active     bool      // venue_tables.is_active
	Combinable bool      // venue_tables.is_combinable
	GroupLabel string    // venue_tables.group_label
	Tags       []string  // venue_tables.tags (comma separated in storage)
	CreatedAt  time.Time // venue_tables.created_at
	UpdatedAt  time.Time // venue_tables.updated_at
}

// Fits reports whether a party of the given size lies within the
// table's capacity range.
func (t Table) Fits(partySize int) bool {
	return partySize >= t.MinSeats && partySize <= t.MaxSeats
}

// TableCombination is a fixed grouping of two or three tables that can
// be pushed together and sold as one larger unit.  The combined
// capacity is the sum of the member tables' capacities; a combination
// is usable only while all of its member tables are active.
//
// Fields:
//
//	ID        – primary key identifier.
//	TableIDs  – ordered member table ids (2–3 entries).
//	Active    – whether the combination may be suggested.
//	CreatedAt – creation timestamp.
//	UpdatedAt – last update timestamp.
type TableCombination struct {
	ID        string    // table_combinations.id
	TableIDs  []string  // table_combination_members rows, ordered by position
	Active    bool      // table_combinations.is_active
	CreatedAt time.Time // table_combinations.created_at
	UpdatedAt time.Time // table_combinations.updated_at
}
