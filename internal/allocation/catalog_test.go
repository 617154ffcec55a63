package allocation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mintleaf/seating/internal/model"
)

func testZones() []model.Zone {
	return []model.Zone{
		{ID: "Z-garden", Name: "Garden", Priority: 2, Active: true, Type: model.ZoneTypeOutdoor},
		{ID: "Z-main", Name: "Main Hall", Priority: 1, Active: true, Type: model.ZoneTypeTable},
		{ID: "Z-cellar", Name: "Cellar", Priority: 0, Active: true}, // unset priority
		{ID: "Z-closed", Name: "Closed Wing", Priority: 1, Active: false},
		{ID: "Z-bar", Name: "Bar", Priority: 2, Active: true, Type: model.ZoneTypeBar},
	}
}

func testTables() []model.Table {
	return []model.Table{
		{ID: "T1", Name: "01", ZoneID: "Z-main", MinSeats: 2, MaxSeats: 4, Active: true},
		{ID: "T2", Name: "02", ZoneID: "Z-main", MinSeats: 2, MaxSeats: 4, Active: true, Combinable: true},
		{ID: "T3", Name: "03", ZoneID: "Z-main", MinSeats: 2, MaxSeats: 4, Active: true, Combinable: true},
		{ID: "T4", Name: "04", ZoneID: "Z-main", MinSeats: 4, MaxSeats: 8, Active: false},
		{ID: "G1", Name: "G1", ZoneID: "Z-garden", MinSeats: 2, MaxSeats: 6, Active: true},
		{ID: "X1", Name: "X1", ZoneID: "Z-closed", MinSeats: 2, MaxSeats: 4, Active: true},
	}
}

func testCombos() []model.TableCombination {
	return []model.TableCombination{
		{ID: "C1", TableIDs: []string{"T2", "T3"}, Active: true},
		{ID: "C-inactive", TableIDs: []string{"T1", "T2"}, Active: false},
		{ID: "C-dead-member", TableIDs: []string{"T3", "T4"}, Active: true},
		{ID: "C-cross-zone", TableIDs: []string{"T1", "G1"}, Active: true},
	}
}

func TestCatalogZoneOrdering(t *testing.T) {
	cat := NewCatalog(testZones(), testTables(), nil)

	ids := make([]string, 0)
	for _, z := range cat.ActiveZones() {
		ids = append(ids, z.ID)
	}
	// Priority ascending, name ascending on ties, unset priority
	// last, inactive invisible.
	require.Equal(t, []string{"Z-main", "Z-bar", "Z-garden", "Z-cellar"}, ids)

	_, ok := cat.Zone("Z-closed")
	require.False(t, ok)
}

func TestCatalogHidesInactiveTablesAndZones(t *testing.T) {
	cat := NewCatalog(testZones(), testTables(), nil)

	names := make([]string, 0)
	for _, tb := range cat.ActiveTablesInZone("Z-main") {
		names = append(names, tb.Name)
	}
	require.Equal(t, []string{"01", "02", "03"}, names)

	_, ok := cat.Table("T4")
	require.False(t, ok, "inactive table must be invisible")
	_, ok = cat.Table("X1")
	require.False(t, ok, "table in an inactive zone must be invisible")
}

func TestCatalogCombinationUsability(t *testing.T) {
	cat := NewCatalog(testZones(), testTables(), testCombos())

	_, ok := cat.Combination("C1")
	require.True(t, ok)
	_, ok = cat.Combination("C-inactive")
	require.False(t, ok)
	_, ok = cat.Combination("C-dead-member")
	require.False(t, ok, "combination with an inactive member is unusable")
	_, ok = cat.Combination("C-cross-zone")
	require.False(t, ok, "combination spanning zones is unusable")

	covering := cat.CombinationsCovering("T2")
	require.Len(t, covering, 1)
	require.Equal(t, "C1", covering[0].ID)

	inZone := cat.CombinationsInZone("Z-main")
	require.Len(t, inZone, 1)
}

func TestCatalogCapacities(t *testing.T) {
	cat := NewCatalog(testZones(), testTables(), testCombos())

	min, max, ok := cat.TableCapacity("T1")
	require.True(t, ok)
	require.Equal(t, 2, min)
	require.Equal(t, 4, max)

	min, max, ok = cat.CombinationCapacity("C1")
	require.True(t, ok)
	require.Equal(t, 4, min, "combined min is the sum of member minimums")
	require.Equal(t, 8, max, "combined max is the sum of member maximums")

	_, _, ok = cat.TableCapacity("nope")
	require.False(t, ok)
}

func TestCatalogZoneOfTables(t *testing.T) {
	cat := NewCatalog(testZones(), testTables(), nil)

	zone, ok := cat.ZoneOfTables([]string{"T1", "T2"})
	require.True(t, ok)
	require.Equal(t, "Z-main", zone)

	_, ok = cat.ZoneOfTables([]string{"T1", "G1"})
	require.False(t, ok)
	_, ok = cat.ZoneOfTables(nil)
	require.False(t, ok)
}
