package allocation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mintleaf/seating/internal/model"
)

func defaultSettings() model.SeatingSettings {
	return model.SeatingSettings{BufferMinutes: 15, DefaultDurationMinutes: 120}
}

func suggestAt(cat *Catalog, partySize int, override *model.AllocationOverride) Suggestion {
	return Suggest(SuggestRequest{
		PartySize: partySize,
		StartsAt:  at(19, 0),
		Override:  override,
	}, cat, defaultSettings())
}

func TestSuggestInvalidPartySize(t *testing.T) {
	cat := NewCatalog(testZones(), testTables(), nil)
	for _, size := range []int{0, -3} {
		sug := suggestAt(cat, size, nil)
		require.Equal(t, ReasonInvalidPartySize, sug.Reason)
		require.Empty(t, sug.TableIDs)
		require.Zero(t, sug.Confidence)
	}
}

func TestSuggestTightestSingleTableFit(t *testing.T) {
	zones := []model.Zone{{ID: "Z1", Name: "Main", Priority: 1, Active: true}}
	tables := []model.Table{
		{ID: "big", Name: "10", ZoneID: "Z1", MinSeats: 2, MaxSeats: 10, Active: true},
		{ID: "snug", Name: "11", ZoneID: "Z1", MinSeats: 2, MaxSeats: 4, Active: true},
		{ID: "mid", Name: "12", ZoneID: "Z1", MinSeats: 2, MaxSeats: 6, Active: true},
	}
	cat := NewCatalog(zones, tables, nil)

	sug := suggestAt(cat, 3, nil)
	require.Equal(t, ReasonSingleTableFit, sug.Reason)
	require.Equal(t, []string{"snug"}, sug.TableIDs, "smallest max capacity that still fits wins")
	require.InDelta(t, 0.75, sug.Confidence, 1e-9)
}

func TestSuggestNeverViolatesCapacityBounds(t *testing.T) {
	cat := NewCatalog(testZones(), testTables(), testCombos())
	for party := 1; party <= 10; party++ {
		sug := suggestAt(cat, party, nil)
		if !sug.Fits() {
			continue
		}
		var min, max int
		if len(sug.TableIDs) == 1 {
			var ok bool
			min, max, ok = cat.TableCapacity(sug.TableIDs[0])
			require.True(t, ok)
		} else {
			for _, tid := range sug.TableIDs {
				lo, hi, ok := cat.TableCapacity(tid)
				require.True(t, ok)
				min += lo
				max += hi
			}
		}
		require.GreaterOrEqual(t, party, min, "party %d below minimum", party)
		require.LessOrEqual(t, party, max, "party %d above maximum", party)
	}
}

func TestSuggestCombinationWhenNoSingleTableFits(t *testing.T) {
	// Z1 is preferred but its only table seats at most 4; Z2 has a
	// combination seating up to 8.  A party of 6 must land on the
	// combination despite Z1's higher priority.
	zones := []model.Zone{
		{ID: "Z1", Name: "Front", Priority: 1, Active: true},
		{ID: "Z2", Name: "Back", Priority: 2, Active: true},
	}
	tables := []model.Table{
		{ID: "T1", Name: "01", ZoneID: "Z1", MinSeats: 2, MaxSeats: 4, Active: true},
		{ID: "T2", Name: "02", ZoneID: "Z2", MinSeats: 2, MaxSeats: 4, Active: true},
		{ID: "T3", Name: "03", ZoneID: "Z2", MinSeats: 2, MaxSeats: 4, Active: true},
	}
	combos := []model.TableCombination{{ID: "C1", TableIDs: []string{"T2", "T3"}, Active: true}}
	cat := NewCatalog(zones, tables, combos)

	sug := suggestAt(cat, 6, nil)
	require.Equal(t, ReasonCombinationFit, sug.Reason)
	require.Equal(t, "Z2", sug.ZoneID)
	require.Equal(t, []string{"T2", "T3"}, sug.TableIDs)
}

func TestSuggestPrefersFewerTablesThenSmallerCombination(t *testing.T) {
	zones := []model.Zone{{ID: "Z1", Name: "Main", Priority: 1, Active: true}}
	tables := []model.Table{
		{ID: "A", Name: "A", ZoneID: "Z1", MinSeats: 1, MaxSeats: 3, Active: true},
		{ID: "B", Name: "B", ZoneID: "Z1", MinSeats: 1, MaxSeats: 3, Active: true},
		{ID: "C", Name: "C", ZoneID: "Z1", MinSeats: 1, MaxSeats: 4, Active: true},
		{ID: "D", Name: "D", ZoneID: "Z1", MinSeats: 1, MaxSeats: 4, Active: true},
	}
	combos := []model.TableCombination{
		{ID: "three", TableIDs: []string{"A", "B", "C"}, Active: true}, // max 10
		{ID: "pairBig", TableIDs: []string{"C", "D"}, Active: true},    // max 8
		{ID: "pairSmall", TableIDs: []string{"A", "B"}, Active: true},  // max 6
	}
	cat := NewCatalog(zones, tables, combos)

	sug := suggestAt(cat, 5, nil)
	require.Equal(t, ReasonCombinationFit, sug.Reason)
	require.Equal(t, []string{"A", "B"}, sug.TableIDs, "fewest tables, then smallest combined capacity")
}

func TestSuggestNoFit(t *testing.T) {
	cat := NewCatalog(testZones(), testTables(), nil)
	sug := suggestAt(cat, 40, nil)
	require.Equal(t, ReasonNoFit, sug.Reason)
	require.Empty(t, sug.TableIDs)
	require.Zero(t, sug.Confidence)
}

func TestSuggestOverridePrecedence(t *testing.T) {
	cat := NewCatalog(testZones(), testTables(), nil)
	override := &model.AllocationOverride{ZoneID: "Z-garden", TableIDs: []string{"G1"}, Enabled: true}

	sug := suggestAt(cat, 2, override)
	require.Equal(t, ReasonOverrideApplied, sug.Reason)
	require.Equal(t, "Z-garden", sug.ZoneID)
	require.Equal(t, []string{"G1"}, sug.TableIDs)
	require.Equal(t, 1.0, sug.Confidence)
	require.Empty(t, sug.Warnings)
}

func TestSuggestOverrideZoneOnly(t *testing.T) {
	cat := NewCatalog(testZones(), testTables(), nil)
	override := &model.AllocationOverride{ZoneID: "Z-garden", Enabled: true}

	sug := suggestAt(cat, 2, override)
	require.Equal(t, ReasonOverrideApplied, sug.Reason)
	require.Equal(t, "Z-garden", sug.ZoneID)
	require.Empty(t, sug.TableIDs)
}

func TestSuggestInconsistentOverrideFallsThrough(t *testing.T) {
	cat := NewCatalog(testZones(), testTables(), nil)

	cases := []*model.AllocationOverride{
		{ZoneID: "Z-garden", TableIDs: []string{"T1"}, Enabled: true}, // table not in zone
		{ZoneID: "Z-nowhere", Enabled: true},                          // unknown zone
		{TableIDs: []string{"T4"}, Enabled: true},                     // inactive table
		{TableIDs: []string{"T1", "G1"}, Enabled: true},               // tables span zones
		{Enabled: true}, // empty override
	}
	for _, o := range cases {
		sug := suggestAt(cat, 2, o)
		require.NotEqual(t, ReasonOverrideApplied, sug.Reason)
		require.NotEmpty(t, sug.Warnings, "inconsistent override must record a warning")
		require.Equal(t, ReasonSingleTableFit, sug.Reason, "search must still run")
	}
}

func TestSuggestDisabledOverrideIgnored(t *testing.T) {
	cat := NewCatalog(testZones(), testTables(), nil)
	override := &model.AllocationOverride{ZoneID: "Z-garden", TableIDs: []string{"G1"}, Enabled: false}

	sug := suggestAt(cat, 2, override)
	require.Equal(t, ReasonSingleTableFit, sug.Reason)
	require.Empty(t, sug.Warnings)
}

func TestSuggestEmergencyZonesSearchedFirst(t *testing.T) {
	zones := []model.Zone{
		{ID: "Z-main", Name: "Main", Priority: 1, Active: true},
		{ID: "Z-em", Name: "Overflow", Priority: 9, Active: true, Emergency: true},
	}
	tables := []model.Table{
		{ID: "M1", Name: "M1", ZoneID: "Z-main", MinSeats: 2, MaxSeats: 4, Active: true},
		{ID: "E1", Name: "E1", ZoneID: "Z-em", MinSeats: 2, MaxSeats: 4, Active: true},
	}
	cat := NewCatalog(zones, tables, nil)

	settings := defaultSettings()
	settings.Emergency = model.EmergencyZonePolicy{
		Enabled: true,
		ZoneIDs: []string{"Z-em"},
		Rule:    model.EmergencyRuleWeekdays,
		// at() falls on a Saturday.
		Weekdays: []time.Weekday{time.Saturday},
	}

	sug := Suggest(SuggestRequest{PartySize: 2, StartsAt: at(19, 0)}, cat, settings)
	require.Equal(t, "Z-em", sug.ZoneID, "active emergency policy restricts the first pass")

	// On a non-matching weekday the regular priority order applies.
	sug = Suggest(SuggestRequest{PartySize: 2, StartsAt: at(19, 0).AddDate(0, 0, 2)}, cat, settings)
	require.Equal(t, "Z-main", sug.ZoneID)
}

func TestSuggestEmergencyFallsBackWhenNoEmergencyFit(t *testing.T) {
	zones := []model.Zone{
		{ID: "Z-main", Name: "Main", Priority: 1, Active: true},
		{ID: "Z-em", Name: "Overflow", Priority: 9, Active: true, Emergency: true},
	}
	tables := []model.Table{
		{ID: "M1", Name: "M1", ZoneID: "Z-main", MinSeats: 2, MaxSeats: 8, Active: true},
		{ID: "E1", Name: "E1", ZoneID: "Z-em", MinSeats: 2, MaxSeats: 2, Active: true},
	}
	cat := NewCatalog(zones, tables, nil)

	settings := defaultSettings()
	settings.Emergency = model.EmergencyZonePolicy{
		Enabled: true, ZoneIDs: []string{"Z-em"}, Rule: model.EmergencyRuleAlways,
	}

	sug := Suggest(SuggestRequest{PartySize: 6, StartsAt: at(19, 0)}, cat, settings)
	require.Equal(t, "Z-main", sug.ZoneID, "no emergency fit falls back to all zones")
}

func TestSuggestSkipsOccupiedTables(t *testing.T) {
	zones := []model.Zone{{ID: "Z1", Name: "Main", Priority: 1, Active: true}}
	tables := []model.Table{
		{ID: "T1", Name: "01", ZoneID: "Z1", MinSeats: 2, MaxSeats: 4, Active: true},
		{ID: "T2", Name: "02", ZoneID: "Z1", MinSeats: 2, MaxSeats: 6, Active: true},
	}
	cat := NewCatalog(zones, tables, nil)

	sug := Suggest(SuggestRequest{
		PartySize: 3,
		StartsAt:  at(19, 0),
		Occupied:  map[string]struct{}{"T1": {}},
	}, cat, defaultSettings())
	require.Equal(t, []string{"T2"}, sug.TableIDs)

	sug = Suggest(SuggestRequest{
		PartySize: 3,
		StartsAt:  at(19, 0),
		Occupied:  map[string]struct{}{"T1": {}, "T2": {}},
	}, cat, defaultSettings())
	require.Equal(t, ReasonNoFit, sug.Reason)
}

func TestSuggestDeterministic(t *testing.T) {
	cat := NewCatalog(testZones(), testTables(), testCombos())
	first := suggestAt(cat, 4, nil)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, suggestAt(cat, 4, nil))
	}
}
