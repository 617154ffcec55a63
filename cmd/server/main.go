package main

import (
	"log"

	"github.com/labstack/echo/v4"

	"github.com/mintleaf/seating/internal/config"
	"github.com/mintleaf/seating/internal/database"
	"github.com/mintleaf/seating/internal/handler"
	"github.com/mintleaf/seating/internal/queue"
	"github.com/mintleaf/seating/internal/repository"
	"github.com/mintleaf/seating/internal/router"
	"github.com/mintleaf/seating/internal/service"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("[MAIN] database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("[MAIN] redis unreachable; cache and rate limiting disabled")
	}

	zones := repository.NewZoneRepo(db)
	tables := repository.NewTableRepo(db)
	settings := repository.NewSettingsRepo(db)
	bookings := repository.NewBookingRepo(db)
	overrides := repository.NewOverrideRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	snapshots := service.NewSnapshotService(zones, tables, settings)

	h := router.Handlers{
		Auth:       handler.NewAuthHandler(cfg, users, tokens),
		Catalog:    handler.NewCatalogHandler(zones, tables),
		Allocation: handler.NewAllocationHandler(snapshots, bookings),
		Batch:      handler.NewBatchHandler(snapshots, bookings),
		Override:   handler.NewOverrideHandler(snapshots, bookings, overrides),
	}

	// Audit consumer: records completed apply-mode day runs to the
	// allocation log.  Runs until the process exits.
	go func() {
		if err := queue.StartDayRunConsumer(); err != nil {
			log.Printf("[MAIN] day-run consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	router.Register(e, h, cfg, rdb)

	addr := ":" + cfg.Port
	log.Printf("[MAIN] listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
