package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mintleaf/seating/internal/allocation"
	"github.com/mintleaf/seating/internal/model"
	"github.com/mintleaf/seating/internal/repository"
	"github.com/mintleaf/seating/internal/service"
)

// OverrideHandler covers the admin write surface: overrides, locks
// and manual final assignments.  Writes never run the suggester; they
// record a human decision for later runs to honor.
type OverrideHandler struct {
	Snapshots *service.SnapshotService
	Bookings  *repository.BookingRepo
	Overrides *repository.OverrideRepo
}

// NewOverrideHandler constructs an OverrideHandler.
func NewOverrideHandler(s *service.SnapshotService, b *repository.BookingRepo, o *repository.OverrideRepo) *OverrideHandler {
	return &OverrideHandler{Snapshots: s, Bookings: b, Overrides: o}
}

type overrideReq struct {
	ZoneID   string   `json:"zone_id"`
	TableIDs []string `json:"table_ids"`
	Note     string   `json:"note"`
	Enabled  *bool    `json:"enabled"`
}

type assignmentReq struct {
	ZoneID     string   `json:"zone_id"`
	TableIDs   []string `json:"table_ids"`
	GroupLabel string   `json:"group_label"`
}

type overrideResp struct {
	ZoneID   string   `json:"zone_id,omitempty"`
	TableIDs []string `json:"table_ids,omitempty"`
	Note     string   `json:"note,omitempty"`
	Enabled  bool     `json:"enabled"`
}

type finalResp struct {
	Source     string   `json:"source"`
	ZoneID     string   `json:"zone_id,omitempty"`
	GroupLabel string   `json:"group_label,omitempty"`
	TableIDs   []string `json:"table_ids,omitempty"`
	Locked     bool     `json:"locked"`
}

// PutOverride stores or replaces a booking's override.  The override
// is validated for shape only (some target must be named); whether it
// is consistent with the live catalog is judged at suggestion time,
// so a stale override degrades instead of blocking the write.
func (h *OverrideHandler) PutOverride(c echo.Context) error {
	bookingID := c.Param("id")
	var req overrideReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.ZoneID) == "" && len(req.TableIDs) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "zone_id or table_ids required"})
	}
	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	o := model.AllocationOverride{
		ZoneID:   strings.TrimSpace(req.ZoneID),
		TableIDs: req.TableIDs,
		Note:     strings.TrimSpace(req.Note),
		Enabled:  enabled,
	}
	if err := h.Overrides.Put(ctx, bookingID, o); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save override failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"booking_id": bookingID, "override": overrideResp{
		ZoneID: o.ZoneID, TableIDs: o.TableIDs, Note: o.Note, Enabled: o.Enabled,
	}})
}

// DeleteOverride removes a booking's override.  Deleting a missing
// override is a no-op, not an error.
func (h *OverrideHandler) DeleteOverride(c echo.Context) error {
	bookingID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Overrides.Delete(ctx, bookingID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete override failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Lock freezes a booking's final assignment against further runs.
func (h *OverrideHandler) Lock(c echo.Context) error {
	return h.setLocked(c, true)
}

// Unlock releases a booking's final assignment.
func (h *OverrideHandler) Unlock(c echo.Context) error {
	return h.setLocked(c, false)
}

func (h *OverrideHandler) setLocked(c echo.Context, locked bool) error {
	bookingID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Bookings.SetLocked(ctx, bookingID, locked); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"booking_id": bookingID, "locked": locked})
}

// PutAssignment sets a manual final assignment.  The zone/table set
// must exist in the live catalog; conflicts it creates are reported
// in the response but do not block the write.
func (h *OverrideHandler) PutAssignment(c echo.Context) error {
	bookingID := c.Param("id")
	var req assignmentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if len(req.TableIDs) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "table_ids required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	snap, err := h.Snapshots.CatalogSnapshot(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load catalog failed"})
	}
	cat := snap.Catalog()
	zoneID, ok := cat.ZoneOfTables(req.TableIDs)
	if !ok {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "tables unknown, inactive or spanning zones"})
	}
	if req.ZoneID != "" && req.ZoneID != zoneID {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "zone_id does not match tables"})
	}

	final := model.AllocationFinal{
		Source:     model.AllocationSourceManual,
		ZoneID:     zoneID,
		GroupLabel: strings.TrimSpace(req.GroupLabel),
		TableIDs:   req.TableIDs,
	}
	if err := h.Bookings.SetManualFinal(ctx, bookingID, final); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		case errors.Is(err, repository.ErrLocked):
			return c.JSON(http.StatusConflict, echo.Map{"error": "assignment is locked"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save assignment failed"})
	}

	b, err := h.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	sameDay, err := h.Bookings.BookingsOn(ctx, b.StartsAt.Format(dateKeyLayout))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	conflicts := allocation.DetectConflicts(b, final.TableIDs, sameDay, snap.Settings.Buffer())

	return c.JSON(http.StatusOK, echo.Map{
		"booking_id": bookingID,
		"final": finalResp{
			Source: final.Source, ZoneID: final.ZoneID,
			GroupLabel: final.GroupLabel, TableIDs: final.TableIDs,
		},
		"conflicts": conflicts,
	})
}
