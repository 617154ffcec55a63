package model

import "time"

// Booking status values.  Cancelled bookings are skipped by the batch
// allocator and never produce conflicts.
const (
	BookingStatusPending   = "PENDING"
	BookingStatusConfirmed = "CONFIRMED"
	BookingStatusCancelled = "CANCELLED"
)

// Sources recorded on AllocationFinal, identifying which stage of the
// decision chain produced the final assignment.
const (
	AllocationSourceIntent   = "intent"
	AllocationSourceOverride = "override"
	AllocationSourceAuto     = "auto"
	AllocationSourceManual   = "manual"
)

// AllocationIntent is the guest- or system-stated seating preference
// captured with the reservation request.  It is informational only:
// the resolver records it in diagnostics but never treats it as
// authoritative.
//
// Fields:
//
//	TimeSlot   – requested slot label (e.g. "19:00").
//	ZoneID     – preferred zone, if the guest stated one.
//	GroupLabel – preferred table group, if the guest stated one.
type AllocationIntent struct {
	TimeSlot   string // bookings.intent_time_slot
	ZoneID     string // bookings.intent_zone_id
	GroupLabel string // bookings.intent_group_label
}

// AllocationOverride is an administrator-forced assignment.  When
// enabled and internally consistent it wins over the automatic
// suggestion; a stale or inconsistent override is downgraded to a
// warning and ignored so it can never freeze out all seating.
//
// Fields:
//
//	ZoneID   – forced zone, empty when only tables are forced.
//	TableIDs – forced table set, empty when only a zone is forced.
//	Note     – free-text reason recorded by the administrator.
//	Enabled  – whether the override is currently in force.
type AllocationOverride struct {
	ZoneID   string   // bookings.override_zone_id
	TableIDs []string // bookings.override_table_ids (comma separated in storage)
	Note     string   // bookings.override_note
	Enabled  bool     // bookings.override_enabled
}

// AllocationFinal is the resolved outcome of the decision chain.  Once
// Locked is set the assignment is frozen against every automatic
// change until an operator explicitly unlocks it.
//
// Fields:
//
//	Source     – which stage decided (intent, override, auto, manual).
//	ZoneID     – chosen zone.
//	GroupLabel – chosen table group label, if any.
//	TableIDs   – chosen table set.
//	Locked     – freezes the assignment against automatic changes.
type AllocationFinal struct {
	Source     string   // bookings.final_source
	ZoneID     string   // bookings.final_zone_id
	GroupLabel string   // bookings.final_group_label
	TableIDs   []string // bookings.final_table_ids (comma separated in storage)
	Locked     bool     // bookings.final_locked
}

// IsZero reports whether no final assignment has been recorded yet.
func (f AllocationFinal) IsZero() bool {
	return f.Source == "" && f.ZoneID == "" && len(f.TableIDs) == 0 && !f.Locked
}

// AllocationAllocated is the operational record of what was actually
// seated.  It is written only when a run is applied, never during a
// dry run.
//
// Fields:
//
//	ZoneID   – zone the party was seated in.
//	TableIDs – tables the party occupies.
//	Strategy – how the allocation was produced (e.g. "auto-batch").
//	Summary  – optional diagnostic summary such as "NO_FIT".
type AllocationAllocated struct {
	ZoneID   string   // bookings.allocated_zone_id
	TableIDs []string // bookings.allocated_table_ids (comma separated in storage)
	Strategy string   // bookings.allocated_strategy
	Summary  string   // bookings.allocated_summary
}

// AllocationDiagnostics is the audit trail attached to a resolution.
// Reasons explain what the engine did; warnings flag conditions an
// operator should review (ignored overrides, accepted conflicts).
//
// Fields:
//
//	IntentQuality – how well the final assignment matches the guest intent.
//	Reasons       – machine-readable reason codes in decision order.
//	Warnings      – human-reviewable warnings.
type AllocationDiagnostics struct {
	IntentQuality string
	Reasons       []string
	Warnings      []string
}

// Booking is a timed reservation request together with its four-stage
// allocation record: what the guest asked for (Intent), what an admin
// forced (Override), what was decided (Final) and what was actually
// seated (Allocated).  The engine receives bookings as immutable
// snapshots; its outputs are new Final/Allocated/diagnostic values for
// the caller to persist.
//
// Fields:
//
//	ID        – primary key identifier.
//	GuestName – name the reservation was made under.
//	PartySize – number of guests.
//	StartsAt  – start of the reserved window.
//	EndsAt    – end of the reserved window.
//	Status    – PENDING, CONFIRMED or CANCELLED.
//	Intent    – guest-stated preference (informational).
//	Override  – administrator-forced assignment (nil when absent).
//	Final     – resolved assignment.
//	Allocated – actually-seated allocation (nil until applied).
//	CreatedAt – creation timestamp.
//	UpdatedAt – last update timestamp.
type Booking struct {
	ID        string               // bookings.id
	GuestName string               // bookings.guest_name
	PartySize int                  // bookings.party_size
	StartsAt  time.Time            // bookings.starts_at
	EndsAt    time.Time            // bookings.ends_at
	Status    string               // bookings.status
	Intent    AllocationIntent     // intent_* columns
	Override  *AllocationOverride  // override_* columns (nil when never set)
	Final     AllocationFinal      // final_* columns
	Allocated *AllocationAllocated // allocated_* columns (nil until applied)
	CreatedAt time.Time            // bookings.created_at
	UpdatedAt time.Time            // bookings.updated_at
}

// AssignedTableIDs returns the tables this booking currently holds for
// conflict purposes: the actually-seated allocation when present,
// otherwise the final assignment.  A booking with neither holds no
// tables.
func (b Booking) AssignedTableIDs() []string {
	if b.Allocated != nil && len(b.Allocated.TableIDs) > 0 {
		return b.Allocated.TableIDs
	}
	return b.Final.TableIDs
}

// AssignedZoneID mirrors AssignedTableIDs for the zone.
func (b Booking) AssignedZoneID() string {
	if b.Allocated != nil && b.Allocated.ZoneID != "" {
		return b.Allocated.ZoneID
	}
	return b.Final.ZoneID
}
