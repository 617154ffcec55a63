package allocation

import (
	"context"

	"github.com/mintleaf/seating/internal/model"
)

// CatalogSnapshot is one immutable view of the venue's seating
// resources plus the settings in force when it was taken.  Providers
// hand the engine snapshots; the engine never reaches back into
// storage.
type CatalogSnapshot struct {
	Zones        []model.Zone
	Tables       []model.Table
	Combinations []model.TableCombination
	Settings     model.SeatingSettings
}

// Catalog indexes the snapshot for the engine.
func (s CatalogSnapshot) Catalog() *Catalog {
	return NewCatalog(s.Zones, s.Tables, s.Combinations)
}

// CatalogProvider supplies the current catalog snapshot.  Implemented
// by the repository layer; any caching or live refresh lives behind
// this interface, outside the engine.
type CatalogProvider interface {
	CatalogSnapshot(ctx context.Context) (CatalogSnapshot, error)
}

// DayBookingProvider supplies every booking whose window falls on a
// given date key (YYYY-MM-DD), with their current assignments.
type DayBookingProvider interface {
	BookingsOn(ctx context.Context, dateKey string) ([]model.Booking, error)
}

// PersistenceSink accepts resolved allocations during apply-mode runs.
// Dry runs never call it.  Implementations persist the final and
// allocated records on the booking; the engine itself stays stateless.
type PersistenceSink interface {
	ApplyAllocation(ctx context.Context, bookingID string, final model.AllocationFinal, allocated *model.AllocationAllocated) error
}
