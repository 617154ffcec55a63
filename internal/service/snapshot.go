package service

import (
	"context"
	"fmt"

	"github.com/mintleaf/seating/internal/allocation"
	"github.com/mintleaf/seating/internal/repository"
)

// SnapshotService assembles catalog snapshots for the allocation
// engine from the zone, table and settings repositories.  It
// implements allocation.CatalogProvider.  The snapshot is a one-shot
// read: callers that want caching or live refresh layer it on top.
type SnapshotService struct {
	zones    *repository.ZoneRepo
	tables   *repository.TableRepo
	settings *repository.SettingsRepo
}

// NewSnapshotService constructs a SnapshotService.  All repositories
// must be non-nil.
func NewSnapshotService(zones *repository.ZoneRepo, tables *repository.TableRepo, settings *repository.SettingsRepo) *SnapshotService {
	if zones == nil || tables == nil || settings == nil {
		panic("nil repository passed to NewSnapshotService")
	}
	return &SnapshotService{zones: zones, tables: tables, settings: settings}
}

// CatalogSnapshot reads zones, tables, combinations and settings in
// one pass and returns them as an immutable snapshot for the engine.
func (s *SnapshotService) CatalogSnapshot(ctx context.Context) (allocation.CatalogSnapshot, error) {
	zones, err := s.zones.ListAll(ctx)
	if err != nil {
		return allocation.CatalogSnapshot{}, fmt.Errorf("load zones: %w", err)
	}
	tables, err := s.tables.ListAll(ctx)
	if err != nil {
		return allocation.CatalogSnapshot{}, fmt.Errorf("load tables: %w", err)
	}
	combos, err := s.tables.ListCombinations(ctx)
	if err != nil {
		return allocation.CatalogSnapshot{}, fmt.Errorf("load combinations: %w", err)
	}
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return allocation.CatalogSnapshot{}, fmt.Errorf("load settings: %w", err)
	}
	return allocation.CatalogSnapshot{
		Zones:        zones,
		Tables:       tables,
		Combinations: combos,
		Settings:     settings,
	}, nil
}
