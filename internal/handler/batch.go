package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mintleaf/seating/internal/allocation"
	"github.com/mintleaf/seating/internal/model"
	"github.com/mintleaf/seating/internal/queue"
	"github.com/mintleaf/seating/internal/repository"
	"github.com/mintleaf/seating/internal/service"
)

// batchTimeout bounds a whole day run, which touches one row per
// booking in apply mode.
const batchTimeout = 30 * time.Second

// BatchHandler exposes the day-run allocator over HTTP.
type BatchHandler struct {
	Snapshots *service.SnapshotService
	Bookings  *repository.BookingRepo
}

// NewBatchHandler constructs a BatchHandler.
func NewBatchHandler(s *service.SnapshotService, b *repository.BookingRepo) *BatchHandler {
	return &BatchHandler{Snapshots: s, Bookings: b}
}

type dayRunReq struct {
	Date string `json:"date"` // YYYY-MM-DD
	Mode string `json:"mode"` // dry_run | apply
}

// RunDay runs the batch allocator over every booking of one day.
// Dry runs are open to all staff; apply mode is restricted to ADMIN
// by the route setup.  Apply-mode completions are announced on the
// message queue so downstream audit consumers record the run.
func (h *BatchHandler) RunDay(c echo.Context) error {
	var req dayRunReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	dateKey, err := parseDateKey(req.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	mode := allocation.Mode(req.Mode)
	switch mode {
	case "":
		mode = allocation.ModeDryRun
	case allocation.ModeDryRun, allocation.ModeApply:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "mode must be dry_run or apply"})
	}
	if mode == allocation.ModeApply {
		if role, _ := c.Get("role").(string); role != model.RoleAdmin {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "apply mode requires ADMIN"})
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), batchTimeout)
	defer cancel()

	snap, err := h.Snapshots.CatalogSnapshot(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load catalog failed"})
	}
	bookings, err := h.Bookings.BookingsOn(ctx, dateKey)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	var sink allocation.PersistenceSink
	if mode == allocation.ModeApply {
		sink = h.Bookings
	}
	result := allocation.RunDay(ctx, dateKey, mode, bookings, snap.Catalog(), snap.Settings, sink)

	if mode == allocation.ModeApply {
		h.announce(c, result)
	}
	return c.JSON(http.StatusOK, result)
}

// announce publishes the day-run completion event.  Publishing is
// best-effort: a dead broker must not fail the run that already
// persisted its results.
func (h *BatchHandler) announce(c echo.Context, result allocation.DayResult) {
	userID, _ := getUserID(c)
	event := queue.DayRunCompletedEvent{
		Date:              result.DateKey,
		Mode:              string(result.Mode),
		Processed:         result.Totals.Processed,
		Updated:           result.Totals.Updated,
		NoFit:             result.Totals.NoFit,
		Conflicts:         result.Totals.Conflicts,
		SkippedInvalid:    result.Totals.SkippedInvalid,
		SkippedLocked:     result.Totals.SkippedLocked,
		Errors:            result.Totals.Errors,
		DistinctConflicts: result.Totals.DistinctConflicts,
		RanBy:             userID,
		CompletedAt:       time.Now().UTC().Format(time.RFC3339),
	}
	pubCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := service.PublishDayRunCompleted(pubCtx, event); err != nil {
		log.Printf("[BATCH] publish day-run event failed: %v", err)
	}
}
