// Package handler contains the HTTP handlers of the seating service.
// Handlers translate between the HTTP surface and the allocation
// engine; every allocation decision itself is made by the engine over
// snapshots, never in a handler.
package handler

import (
	"errors"
	"time"

	"github.com/labstack/echo/v4"
)

// dbTimeout bounds every database call made from a handler.
const dbTimeout = 5 * time.Second

// dateKeyLayout is the wire format for day-run date keys.
const dateKeyLayout = "2006-01-02"

// getUserID extracts the authenticated user id injected by the JWT
// middleware.
func getUserID(c echo.Context) (string, error) {
	if id, ok := c.Get("user_id").(string); ok && id != "" {
		return id, nil
	}
	return "", errors.New("invalid user_id in context")
}

// parseDateKey validates a YYYY-MM-DD date key.
func parseDateKey(raw string) (string, error) {
	t, err := time.Parse(dateKeyLayout, raw)
	if err != nil {
		return "", err
	}
	return t.Format(dateKeyLayout), nil
}
