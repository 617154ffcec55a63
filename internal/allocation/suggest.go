package allocation

import (
	"fmt"
	"time"

	"github.com/mintleaf/seating/internal/model"
)

// Reason codes carried on suggestions and resolutions.  They are part
// of the API surface: operators filter audit logs on them, so the
// strings are stable.
const (
	ReasonOverrideApplied  = "OVERRIDE_APPLIED"
	ReasonSingleTableFit   = "SINGLE_TABLE_FIT"
	ReasonCombinationFit   = "COMBINATION_FIT"
	ReasonNoFit            = "NO_FIT"
	ReasonInvalidPartySize = "INVALID_PARTY_SIZE"
	ReasonLocked           = "LOCKED"
)

// Suggestion is the outcome of one suggester run: a zone and a set of
// one or more tables, a reason code explaining how they were chosen
// and a confidence score in [0, 1].  NO_FIT and INVALID_PARTY_SIZE
// suggestions carry an empty zone/table set and zero confidence.
type Suggestion struct {
	ZoneID     string   `json:"zone_id"`
	TableIDs   []string `json:"table_ids"`
	GroupLabel string   `json:"group_label,omitempty"`
	Reason     string   `json:"reason"`
	Confidence float64  `json:"confidence"`
	Warnings   []string `json:"warnings,omitempty"`
}

// Fits reports whether the suggestion names at least one table.
func (s Suggestion) Fits() bool { return len(s.TableIDs) > 0 }

// SuggestRequest bundles the inputs of a single suggester run.
// Occupied lists table ids that must not be proposed because another
// booking already claims them for an overlapping window; the batch
// allocator fills it with the claims of earlier bookings in the same
// run.
type SuggestRequest struct {
	PartySize int
	StartsAt  time.Time
	Override  *model.AllocationOverride
	Occupied  map[string]struct{}
}

func (r SuggestRequest) occupied(tableID string) bool {
	_, ok := r.Occupied[tableID]
	return ok
}

// Suggest proposes a zone and table set for a party.  The search is
// greedy and deterministic: zones in priority order, the tightest
// fitting single table first, combinations (fewest tables, then
// smallest combined capacity) only when no single table fits.  An
// enabled, consistent override short-circuits the search entirely;
// an inconsistent one is downgraded to a warning so stale overrides
// can never freeze out all seating.
func Suggest(req SuggestRequest, cat *Catalog, settings model.SeatingSettings) Suggestion {
	var warnings []string

	if req.Override != nil && req.Override.Enabled {
		sug, warn := applyOverride(req.Override, cat)
		if warn == "" {
			return sug
		}
		warnings = append(warnings, warn)
	}

	if req.PartySize <= 0 {
		return Suggestion{Reason: ReasonInvalidPartySize, Warnings: warnings}
	}

	// Emergency zones get the first pass when the policy is active;
	// the regular ordering is the fallback, so an empty emergency set
	// never blocks seating.
	for _, zones := range candidateZonePasses(req.StartsAt, cat, settings) {
		for _, zone := range zones {
			if sug, ok := fitInZone(req, cat, zone.ID); ok {
				sug.Warnings = warnings
				return sug
			}
		}
	}
	return Suggestion{Reason: ReasonNoFit, Warnings: warnings}
}

// applyOverride validates a forced assignment against the catalog.
// It returns a non-empty warning when the override is internally
// inconsistent or references inactive resources, in which case the
// caller falls through to the automatic search.
func applyOverride(o *model.AllocationOverride, cat *Catalog) (Suggestion, string) {
	zoneID := o.ZoneID
	if zoneID != "" {
		if _, ok := cat.Zone(zoneID); !ok {
			return Suggestion{}, fmt.Sprintf("override ignored: zone %q is unknown or inactive", zoneID)
		}
	}
	for _, tid := range o.TableIDs {
		t, ok := cat.Table(tid)
		if !ok {
			return Suggestion{}, fmt.Sprintf("override ignored: table %q is unknown or inactive", tid)
		}
		if zoneID != "" && t.ZoneID != zoneID {
			return Suggestion{}, fmt.Sprintf("override ignored: table %q does not belong to zone %q", tid, zoneID)
		}
	}
	if zoneID == "" && len(o.TableIDs) > 0 {
		derived, ok := cat.ZoneOfTables(o.TableIDs)
		if !ok {
			return Suggestion{}, "override ignored: forced tables span multiple zones"
		}
		zoneID = derived
	}
	if zoneID == "" && len(o.TableIDs) == 0 {
		return Suggestion{}, "override ignored: neither zone nor tables forced"
	}
	return Suggestion{
		ZoneID:     zoneID,
		TableIDs:   append([]string(nil), o.TableIDs...),
		Reason:     ReasonOverrideApplied,
		Confidence: 1.0,
	}, ""
}

// candidateZonePasses returns the zone lists to search, in order.
// With an active emergency policy the emergency zones form a first
// pass; all active zones always form the last pass.
func candidateZonePasses(at time.Time, cat *Catalog, settings model.SeatingSettings) [][]model.Zone {
	all := cat.ActiveZones()
	if !settings.Emergency.ActiveOn(at) {
		return [][]model.Zone{all}
	}
	inSet := make(map[string]struct{}, len(settings.Emergency.ZoneIDs))
	for _, id := range settings.Emergency.ZoneIDs {
		inSet[id] = struct{}{}
	}
	var emergency []model.Zone
	for _, z := range all { // keep catalog priority order
		if _, ok := inSet[z.ID]; ok {
			emergency = append(emergency, z)
		}
	}
	if len(emergency) == 0 {
		return [][]model.Zone{all}
	}
	return [][]model.Zone{emergency, all}
}

// fitInZone applies the greedy heuristic inside one zone: tightest
// single table first, then the smallest suitable combination.
func fitInZone(req SuggestRequest, cat *Catalog, zoneID string) (Suggestion, bool) {
	if t, ok := tightestTable(req, cat.ActiveTablesInZone(zoneID)); ok {
		return Suggestion{
			ZoneID:     zoneID,
			TableIDs:   []string{t.ID},
			GroupLabel: t.GroupLabel,
			Reason:     ReasonSingleTableFit,
			Confidence: confidence(req.PartySize, t.MaxSeats),
		}, true
	}
	if combo, max, ok := smallestCombination(req, cat, zoneID); ok {
		return Suggestion{
			ZoneID:     zoneID,
			TableIDs:   append([]string(nil), combo.TableIDs...),
			Reason:     ReasonCombinationFit,
			Confidence: confidence(req.PartySize, max),
		}, true
	}
	return Suggestion{}, false
}

// tightestTable picks the free table whose capacity range contains the
// party with the smallest maximum capacity.  Tables arrive sorted by
// name, so capacity ties resolve to the alphabetically first table.
func tightestTable(req SuggestRequest, tables []model.Table) (model.Table, bool) {
	var best model.Table
	found := false
	for _, t := range tables {
		if !t.Fits(req.PartySize) || req.occupied(t.ID) {
			continue
		}
		if !found || t.MaxSeats < best.MaxSeats {
			best = t
			found = true
		}
	}
	return best, found
}

// smallestCombination picks the usable combination containing the
// party within its combined range, preferring fewer member tables,
// then smaller combined capacity, then id order for determinism.
func smallestCombination(req SuggestRequest, cat *Catalog, zoneID string) (model.TableCombination, int, bool) {
	var best model.TableCombination
	bestMax := 0
	found := false
	for _, combo := range cat.CombinationsInZone(zoneID) {
		min, max, ok := cat.CombinationCapacity(combo.ID)
		if !ok || req.PartySize < min || req.PartySize > max {
			continue
		}
		if comboOccupied(req, combo) {
			continue
		}
		if !found || better(combo, max, best, bestMax) {
			best, bestMax, found = combo, max, true
		}
	}
	return best, bestMax, found
}

func comboOccupied(req SuggestRequest, combo model.TableCombination) bool {
	for _, tid := range combo.TableIDs {
		if req.occupied(tid) {
			return true
		}
	}
	return false
}

func better(a model.TableCombination, aMax int, b model.TableCombination, bMax int) bool {
	if len(a.TableIDs) != len(b.TableIDs) {
		return len(a.TableIDs) < len(b.TableIDs)
	}
	if aMax != bMax {
		return aMax < bMax
	}
	return a.ID < b.ID
}

// confidence scales how tightly the chosen capacity matches the party:
// a perfect match scores 1.0, a party filling half the capacity 0.5.
func confidence(partySize, maxSeats int) float64 {
	if maxSeats <= 0 {
		return 0
	}
	c := float64(partySize) / float64(maxSeats)
	if c > 1 {
		c = 1
	}
	return c
}
