package allocation

import (
	"sort"

	"github.com/mintleaf/seating/internal/model"
)

// Catalog is a read-only, pre-indexed view over the venue's zones,
// tables and combinations.  It is the only place where inactive
// resources are filtered out: every other component works purely on
// what the catalog exposes, so "is it active?" special-casing never
// leaks into the suggester or the conflict detector.
//
// A catalog is built once per engine invocation from an immutable
// snapshot and is safe for concurrent readers.
type Catalog struct {
	zones         []model.Zone             // active, sorted by (priority, name)
	zonesByID     map[string]model.Zone    // active zones only
	tablesByID    map[string]model.Table   // active tables in active zones
	tablesByZone  map[string][]model.Table // active tables per zone, sorted by name
	combinations  []model.TableCombination // usable combinations
	combosByID    map[string]model.TableCombination
	combosByTable map[string][]model.TableCombination
	combosByZone  map[string][]model.TableCombination
}

// NewCatalog indexes a snapshot of zones, tables and combinations.
// Inactive zones hide their tables; inactive tables hide every
// combination that references them.  A combination is usable only when
// it has 2–3 members and every member is a known active table, all in
// the same zone.
func NewCatalog(zones []model.Zone, tables []model.Table, combos []model.TableCombination) *Catalog {
	c := &Catalog{
		zonesByID:     make(map[string]model.Zone),
		tablesByID:    make(map[string]model.Table),
		tablesByZone:  make(map[string][]model.Table),
		combosByID:    make(map[string]model.TableCombination),
		combosByTable: make(map[string][]model.TableCombination),
		combosByZone:  make(map[string][]model.TableCombination),
	}
	for _, z := range zones {
		if !z.Active {
			continue
		}
		c.zones = append(c.zones, z)
		c.zonesByID[z.ID] = z
	}
	sort.SliceStable(c.zones, func(i, j int) bool {
		pi, pj := c.zones[i].EffectivePriority(), c.zones[j].EffectivePriority()
		if pi != pj {
			return pi < pj
		}
		return c.zones[i].Name < c.zones[j].Name
	})
	for _, t := range tables {
		if !t.Active {
			continue
		}
		if _, ok := c.zonesByID[t.ZoneID]; !ok {
			continue // table in an inactive or unknown zone
		}
		c.tablesByID[t.ID] = t
		c.tablesByZone[t.ZoneID] = append(c.tablesByZone[t.ZoneID], t)
	}
	for zid := range c.tablesByZone {
		ts := c.tablesByZone[zid]
		sort.SliceStable(ts, func(i, j int) bool { return ts[i].Name < ts[j].Name })
	}
	for _, combo := range combos {
		if !combo.Active || len(combo.TableIDs) < 2 || len(combo.TableIDs) > 3 {
			continue
		}
		zoneID, ok := c.comboZone(combo)
		if !ok {
			continue
		}
		c.combinations = append(c.combinations, combo)
		c.combosByID[combo.ID] = combo
		c.combosByZone[zoneID] = append(c.combosByZone[zoneID], combo)
		for _, tid := range combo.TableIDs {
			c.combosByTable[tid] = append(c.combosByTable[tid], combo)
		}
	}
	return c
}

// comboZone resolves the single zone a combination lives in.  It
// returns false when any member is unknown/inactive or when members
// span zones.
func (c *Catalog) comboZone(combo model.TableCombination) (string, bool) {
	zoneID := ""
	for _, tid := range combo.TableIDs {
		t, ok := c.tablesByID[tid]
		if !ok {
			return "", false
		}
		if zoneID == "" {
			zoneID = t.ZoneID
		} else if zoneID != t.ZoneID {
			return "", false
		}
	}
	return zoneID, zoneID != ""
}

// ActiveZones returns the active zones sorted by priority ascending,
// name ascending.  The returned slice must not be mutated.
func (c *Catalog) ActiveZones() []model.Zone { return c.zones }

// Zone returns an active zone by id.
func (c *Catalog) Zone(id string) (model.Zone, bool) {
	z, ok := c.zonesByID[id]
	return z, ok
}

// Table returns an active table by id.
func (c *Catalog) Table(id string) (model.Table, bool) {
	t, ok := c.tablesByID[id]
	return t, ok
}

// ActiveTablesInZone returns the zone's active tables sorted by name.
func (c *Catalog) ActiveTablesInZone(zoneID string) []model.Table {
	return c.tablesByZone[zoneID]
}

// Combination returns a usable combination by id.
func (c *Catalog) Combination(id string) (model.TableCombination, bool) {
	combo, ok := c.combosByID[id]
	return combo, ok
}

// CombinationsCovering returns every usable combination that contains
// the given table.
func (c *Catalog) CombinationsCovering(tableID string) []model.TableCombination {
	return c.combosByTable[tableID]
}

// CombinationsInZone returns the usable combinations whose member
// tables all live in the given zone.
func (c *Catalog) CombinationsInZone(zoneID string) []model.TableCombination {
	return c.combosByZone[zoneID]
}

// TableCapacity returns the [min, max] capacity of an active table.
func (c *Catalog) TableCapacity(tableID string) (min, max int, ok bool) {
	t, found := c.tablesByID[tableID]
	if !found {
		return 0, 0, false
	}
	return t.MinSeats, t.MaxSeats, true
}

// CombinationCapacity returns the combined [min, max] capacity of a
// usable combination: the sums of its members' ranges.  The minimum is
// used only as a floor check by the suggester.
func (c *Catalog) CombinationCapacity(comboID string) (min, max int, ok bool) {
	combo, found := c.combosByID[comboID]
	if !found {
		return 0, 0, false
	}
	for _, tid := range combo.TableIDs {
		t, tok := c.tablesByID[tid]
		if !tok {
			return 0, 0, false
		}
		min += t.MinSeats
		max += t.MaxSeats
	}
	return min, max, true
}

// ZoneOfTables returns the common zone of the given tables, or false
// when the set is empty, spans zones, or references unknown tables.
// The suggester uses it to validate overrides that force tables
// without naming a zone.
func (c *Catalog) ZoneOfTables(tableIDs []string) (string, bool) {
	zoneID := ""
	for _, tid := range tableIDs {
		t, ok := c.tablesByID[tid]
		if !ok {
			return "", false
		}
		if zoneID == "" {
			zoneID = t.ZoneID
		} else if zoneID != t.ZoneID {
			return "", false
		}
	}
	return zoneID, zoneID != ""
}
