package model

import "time"

// EmergencyRuleAlways and EmergencyRuleWeekdays are the two activation
// rules understood by EmergencyZonePolicy.
const (
	EmergencyRuleAlways   = "ALWAYS"
	EmergencyRuleWeekdays = "WEEKDAYS"
)

// EmergencyZonePolicy controls when the suggester restricts its search
// to the emergency overflow zones before falling back to the regular
// zone ordering.  The policy is either permanently active or active on
// an explicit set of weekdays.
//
// Fields:
//
//	Enabled  – master switch; a disabled policy never restricts anything.
//	ZoneIDs  – zones that make up the emergency set.
//	Rule     – ALWAYS or WEEKDAYS.
//	Weekdays – weekdays on which a WEEKDAYS rule is active.
type EmergencyZonePolicy struct {
	Enabled  bool
	ZoneIDs  []string
	Rule     string
	Weekdays []time.Weekday
}

// ActiveOn reports whether the policy applies to a booking that starts
// at the given time.  A disabled policy or one with no zones is never
// active.
func (p EmergencyZonePolicy) ActiveOn(at time.Time) bool {
	if !p.Enabled || len(p.ZoneIDs) == 0 {
		return false
	}
	switch p.Rule {
	case EmergencyRuleAlways:
		return true
	case EmergencyRuleWeekdays:
		wd := at.Weekday()
		for _, d := range p.Weekdays {
			if d == wd {
				return true
			}
		}
	}
	return false
}

// SeatingSettings carries the venue-wide knobs the allocation engine
// reads on every invocation.  The engine receives settings as part of
// the catalog snapshot and never mutates them.
//
// Fields:
//
//	BufferMinutes          – safety padding applied around every interval comparison.
//	DefaultDurationMinutes – booking length assumed when a request has no end time.
//	VIPEnabled             – whether VIP handling is switched on for the venue.
//	Emergency              – emergency overflow zone policy.
//	FloorplanID            – active floorplan reference; opaque to the engine.
//	UpdatedAt              – last update timestamp.
type SeatingSettings struct {
	BufferMinutes          int
	DefaultDurationMinutes int
	VIPEnabled             bool
	Emergency              EmergencyZonePolicy
	FloorplanID            string
	UpdatedAt              time.Time
}

// Buffer returns the configured buffer as a duration.  Negative
// configured values are clamped to zero.
func (s SeatingSettings) Buffer() time.Duration {
	if s.BufferMinutes <= 0 {
		return 0
	}
	return time.Duration(s.BufferMinutes) * time.Minute
}
