package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"locdir/internal/api"
	"locdir/internal/config"
	"locdir/internal/db"
	"locdir/internal/geocode"
	"locdir/internal/importer"
	"locdir/internal/logging"
	"locdir/internal/middleware"
	"locdir/internal/repository"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Optional .env for local development
	_ = godotenv.Load()

	cfg, err := config.Load(".")
	if err != nil {
		panic(err)
	}

	logger := logging.New(cfg.Server.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup database connection
	conn, err := db.NewConnection(ctx, cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close()

	// Run migrations
	if err := db.RunMigrations(cfg.Database, "./migrations"); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	// Create repositories
	locationRepo := repository.NewLocationRepository(conn.Pool)
	geocodeCacheRepo := repository.NewGeocodeCacheRepository(conn.Pool)
	importLogRepo := repository.NewImportLogRepository(conn.Pool)

	// Create services
	importService := importer.NewService(locationRepo, importLogRepo)
	geocodeService := geocode.NewService(geocodeCacheRepo, geocode.NewClient(geocode.ClientConfig{
		BaseURL:      cfg.Geocoder.BaseURL,
		UserAgent:    cfg.Geocoder.UserAgent,
		CountryCodes: cfg.Geocoder.CountryCodes,
		Timeout:      cfg.Geocoder.Timeout,
	}))

	apiHandler := api.NewHandler(locationRepo, importLogRepo, geocodeService, logger)

	// Setup CORS for the map front end
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
	})

	router := chi.NewRouter()
	router.Use(middleware.RequestLogger(logger))
	router.Use(corsHandler.Handler)
	router.Route("/api", func(r chi.Router) {
		apiHandler.Routes(r)
		r.Method(http.MethodPost, "/import",
			importer.NewHTTPHandler(importService, logger, cfg.Server.MaxUploadBytes))
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Infof("Starting location directory server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}
