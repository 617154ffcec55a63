package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mintleaf/seating/internal/allocation"
	"github.com/mintleaf/seating/internal/repository"
	"github.com/mintleaf/seating/internal/service"
)

// AllocationHandler serves suggestion and conflict queries.  Each
// request compiles a fresh catalog from the snapshot service, runs the
// pure engine and returns its output verbatim; no handler mutates
// anything.
type AllocationHandler struct {
	Snapshots *service.SnapshotService
	Bookings  *repository.BookingRepo
}

// NewAllocationHandler constructs an AllocationHandler.
func NewAllocationHandler(s *service.SnapshotService, b *repository.BookingRepo) *AllocationHandler {
	return &AllocationHandler{Snapshots: s, Bookings: b}
}

type adHocSuggestReq struct {
	PartySize int       `json:"party_size"`
	StartsAt  time.Time `json:"starts_at"`
}

// SuggestAdHoc proposes a zone and table set for an unstored party.
// Ad-hoc requests carry no override and see no occupied tables; they
// answer "where would a walk-in of this size go right now".
func (h *AllocationHandler) SuggestAdHoc(c echo.Context) error {
	var req adHocSuggestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.StartsAt.IsZero() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "starts_at required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	snap, err := h.Snapshots.CatalogSnapshot(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load catalog failed"})
	}
	sug := allocation.Suggest(allocation.SuggestRequest{
		PartySize: req.PartySize,
		StartsAt:  req.StartsAt,
	}, snap.Catalog(), snap.Settings)

	return c.JSON(http.StatusOK, echo.Map{"suggestion": sug})
}

// SuggestForBooking proposes an assignment for a stored booking,
// honoring its override and reporting the conflicts the proposal
// would create against the rest of its day.  Nothing is persisted.
func (h *AllocationHandler) SuggestForBooking(c echo.Context) error {
	bookingID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	b, err := h.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	snap, err := h.Snapshots.CatalogSnapshot(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load catalog failed"})
	}
	sameDay, err := h.Bookings.BookingsOn(ctx, b.StartsAt.Format(dateKeyLayout))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	sug := allocation.Suggest(allocation.SuggestRequest{
		PartySize: b.PartySize,
		StartsAt:  b.StartsAt,
		Override:  b.Override,
	}, snap.Catalog(), snap.Settings)

	conflicts := allocation.DetectConflicts(b, sug.TableIDs, sameDay, snap.Settings.Buffer())

	return c.JSON(http.StatusOK, echo.Map{
		"booking_id": b.ID,
		"suggestion": sug,
		"conflicts":  conflicts,
	})
}

// Conflicts reports the conflicts of a booking's current assignment
// against the other bookings of its day.  A booking without an
// assignment has nothing to conflict with and yields an empty list.
func (h *AllocationHandler) Conflicts(c echo.Context) error {
	bookingID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	b, err := h.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	snap, err := h.Snapshots.CatalogSnapshot(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load catalog failed"})
	}
	sameDay, err := h.Bookings.BookingsOn(ctx, b.StartsAt.Format(dateKeyLayout))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	conflicts := allocation.DetectConflicts(b, b.AssignedTableIDs(), sameDay, snap.Settings.Buffer())
	if conflicts == nil {
		conflicts = []allocation.ConflictEntry{}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"booking_id": b.ID,
		"conflicts":  conflicts,
	})
}
