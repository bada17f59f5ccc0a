package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	_ "github.com/lib/pq"

	"github.com/Tokshabayev/LetunTrafficManagement/internal/application"
	"github.com/Tokshabayev/LetunTrafficManagement/internal/config"
	"github.com/Tokshabayev/LetunTrafficManagement/internal/infrastructure/repositories"
	"github.com/Tokshabayev/LetunTrafficManagement/internal/infrastructure/storage"
	"github.com/Tokshabayev/LetunTrafficManagement/internal/ports/api"
	"github.com/Tokshabayev/LetunTrafficManagement/internal/ports/ws"
	"github.com/Tokshabayev/LetunTrafficManagement/internal/route"
	"github.com/Tokshabayev/LetunTrafficManagement/internal/telemetry"
	"github.com/Tokshabayev/LetunTrafficManagement/internal/zones"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	defer db.Close()

	if err := repositories.InitializeSchema(db); err != nil {
		log.Printf("Warning: error initializing database schema: %v", err)
	}

	flightRepo := repositories.NewPostgresFlightRepository(db)
	droneRepo := repositories.NewPostgresDroneRepository(db)
	telemetryRepo := repositories.NewPostgresTelemetryRepository(db)

	var archive *storage.TrackArchive
	if cfg.MinioEndpoint != "" {
		archive, err = storage.NewTrackArchive(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
		if err != nil {
			log.Printf("Warning: track archive unavailable: %v", err)
			archive = nil
		}
	}

	registry := zones.DefaultRegistry()
	validator := route.NewValidator(registry)

	statusLog := telemetry.NewStatusLog(cfg.StatusLogCap)
	aggregator := telemetry.NewTrackAggregator(registry, statusLog, cfg.TrajectoryCap)
	ingestor := telemetry.NewIngestor(aggregator, statusLog, telemetryRepo)

	telemetryWS := ws.NewTelemetryHandler(ingestor)

	flightService := application.NewFlightService(flightRepo, droneRepo, validator, telemetryWS)
	droneService := application.NewDroneService(droneRepo)

	flightHandler := api.NewFlightHandler(flightService)
	droneHandler := api.NewDroneHandler(droneService)
	zoneHandler := api.NewZoneHandler(registry)
	trackingHandler := api.NewTrackingHandler(aggregator, statusLog, ingestor, telemetryRepo, archive)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/v1", func(r chi.Router) {
			flightHandler.RegisterRoutes(r)
			droneHandler.RegisterRoutes(r)
			zoneHandler.RegisterRoutes(r)
			trackingHandler.RegisterRoutes(r)
		})
	})

	r.Get("/ws", telemetryWS.HandleFeed)
	r.Get("/wsclient", telemetryWS.HandleClient)
	r.Post("/command", telemetryWS.HandleCommand)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go telemetryWS.Run(ctx)

	if cfg.FeedURL != "" {
		if err := ingestor.Connect(ctx, cfg.FeedURL); err != nil {
			log.Printf("Warning: telemetry feed unavailable: %v", err)
		} else {
			go func() {
				if err := ingestor.Run(ctx); err != nil {
					log.Printf("Telemetry feed stopped: %v", err)
				}
			}()
		}
	}

	log.Printf("Starting server on %s", cfg.Addr)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: r,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting server: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c
	log.Println("Shutting down server...")

	cancel()
	ingestor.Close()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Error during server shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}
