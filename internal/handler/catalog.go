package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mintleaf/seating/internal/repository"
)

// CatalogHandler serves the read-only seating resources: zones, the
// tables within a zone and the registered table combinations.  The
// listings include inactive rows; filtering happens when a snapshot
// is compiled into a catalog, not here.
type CatalogHandler struct {
	Zones  *repository.ZoneRepo
	Tables *repository.TableRepo
}

// NewCatalogHandler constructs a CatalogHandler.
func NewCatalogHandler(z *repository.ZoneRepo, t *repository.TableRepo) *CatalogHandler {
	return &CatalogHandler{Zones: z, Tables: t}
}

type zoneResp struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Priority  int      `json:"priority,omitempty"`
	Active    bool     `json:"active"`
	Emergency bool     `json:"emergency"`
	Type      string   `json:"type,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

type tableResp struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	ZoneID     string   `json:"zone_id"`
	MinSeats   int      `json:"min_seats"`
	MaxSeats   int      `json:"max_seats"`
	Active     bool     `json:"active"`
	Combinable bool     `json:"combinable"`
	GroupLabel string   `json:"group_label,omitempty"`
	Tags       []string `json:"tags,omitempty"`
}

type combinationResp struct {
	ID       string   `json:"id"`
	TableIDs []string `json:"table_ids"`
	Active   bool     `json:"active"`
}

// ListZones returns every zone ordered by priority, then name.
func (h *CatalogHandler) ListZones(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	zones, err := h.Zones.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]zoneResp, 0, len(zones))
	for _, z := range zones {
		out = append(out, zoneResp{
			ID: z.ID, Name: z.Name, Priority: z.Priority,
			Active: z.Active, Emergency: z.Emergency,
			Type: z.Type, Tags: z.Tags,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"zones": out})
}

// ZoneTables returns the tables of one zone, active or not.
func (h *CatalogHandler) ZoneTables(c echo.Context) error {
	zoneID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if _, err := h.Zones.GetByID(ctx, zoneID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "zone not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	tables, err := h.Tables.ListByZone(ctx, zoneID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]tableResp, 0, len(tables))
	for _, t := range tables {
		out = append(out, tableResp{
			ID: t.ID, Name: t.Name, ZoneID: t.ZoneID,
			MinSeats: t.MinSeats, MaxSeats: t.MaxSeats,
			Active: t.Active, Combinable: t.Combinable,
			GroupLabel: t.GroupLabel, Tags: t.Tags,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"zone_id": zoneID, "tables": out})
}

// ListCombinations returns every registered table combination.
func (h *CatalogHandler) ListCombinations(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	combos, err := h.Tables.ListCombinations(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]combinationResp, 0, len(combos))
	for _, cm := range combos {
		out = append(out, combinationResp{ID: cm.ID, TableIDs: cm.TableIDs, Active: cm.Active})
	}
	return c.JSON(http.StatusOK, echo.Map{"combinations": out})
}
