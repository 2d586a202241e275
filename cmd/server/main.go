package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jengzang/sightings-backend-go/internal/api"
	"github.com/jengzang/sightings-backend-go/internal/config"
	"github.com/jengzang/sightings-backend-go/internal/database"
	"github.com/jengzang/sightings-backend-go/internal/handler"
	"github.com/jengzang/sightings-backend-go/internal/middleware"
	"github.com/jengzang/sightings-backend-go/internal/repository"
	"github.com/jengzang/sightings-backend-go/internal/service"
	"github.com/jengzang/sightings-backend-go/internal/species"
)

func loadSpecies(path string) (*species.Table, error) {
	if path == "" {
		return species.Default(), nil
	}
	return species.Load(path)
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	cfg := config.Load()

	table, err := loadSpecies(cfg.SpeciesTablePath)
	if err != nil {
		log.Fatal("Failed to load species table:", err)
	}
	log.Printf("[Server] Loaded %d species speeds", table.Len())

	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close()

	repo := repository.NewOccurrenceRepository(database.GetDB())
	travelService := service.NewTravelService(repo, table, cfg.TravelCacheTTL)
	occurrenceService := service.NewOccurrenceService(repo, travelService)

	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)
	stop := make(chan struct{})
	go limiter.Cleanup(stop)
	defer close(stop)

	router := api.SetupRouter(cfg, api.Handlers{
		Occurrence: handler.NewOccurrenceHandler(occurrenceService),
		Travel:     handler.NewTravelHandler(travelService),
		Species:    handler.NewSpeciesHandler(table),
	}, limiter)

	srv := &http.Server{
		Addr:    cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[Server] Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("[Server] Forced shutdown: %v", err)
	}
}
