// Package router wires the HTTP surface: which handler serves which
// path, and which middleware guards it.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/mintleaf/seating/internal/config"
	"github.com/mintleaf/seating/internal/handler"
	"github.com/mintleaf/seating/internal/middleware"
	"github.com/mintleaf/seating/internal/model"
)

// Handlers bundles every handler the router mounts.
type Handlers struct {
	Auth       *handler.AuthHandler
	Catalog    *handler.CatalogHandler
	Allocation *handler.AllocationHandler
	Batch      *handler.BatchHandler
	Override   *handler.OverrideHandler
}

// Register mounts all routes.  Catalog GETs sit behind the Redis
// response cache; every /v1 route except auth requires a valid staff
// token, and the write surface additionally requires ADMIN.  rdb may
// be nil, which disables caching and rate limiting.
func Register(e *echo.Echo, h Handlers, cfg config.Config, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)

	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	auth := e.Group("/v1/auth")
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.Refresh)
	auth.POST("/logout", h.Auth.Logout)

	// Staff surface: reads, suggestions and dry runs.
	staff := e.Group("/v1")
	staff.Use(middleware.JWTAuth(cfg.JWTSecret))
	staff.Use(middleware.RequireRole(model.RoleAdmin, model.RoleStaff))

	staff.GET("/me", h.Auth.Me)

	cached := staff.Group("")
	cached.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	cached.GET("/zones", h.Catalog.ListZones)
	cached.GET("/zones/:id/tables", h.Catalog.ZoneTables)
	cached.GET("/combinations", h.Catalog.ListCombinations)

	staff.POST("/allocations/suggest", h.Allocation.SuggestAdHoc)
	staff.POST("/bookings/:id/suggest", h.Allocation.SuggestForBooking)
	staff.GET("/bookings/:id/conflicts", h.Allocation.Conflicts)
	// Dry runs only for STAFF; the handler enforces ADMIN for apply.
	staff.POST("/allocations/day-run", h.Batch.RunDay)

	// Admin surface: overrides, locks, manual assignments, accounts.
	admin := e.Group("/v1")
	admin.Use(middleware.JWTAuth(cfg.JWTSecret))
	admin.Use(middleware.RequireRole(model.RoleAdmin))

	admin.POST("/auth/register", h.Auth.Register)
	admin.PUT("/bookings/:id/override", h.Override.PutOverride)
	admin.DELETE("/bookings/:id/override", h.Override.DeleteOverride)
	admin.POST("/bookings/:id/lock", h.Override.Lock)
	admin.POST("/bookings/:id/unlock", h.Override.Unlock)
	admin.PUT("/bookings/:id/assignment", h.Override.PutAssignment)
}
