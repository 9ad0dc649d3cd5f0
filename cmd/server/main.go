package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "drivehub-backend/internal/api/http"
	"drivehub-backend/internal/config"
	"drivehub-backend/internal/logger"
	"drivehub-backend/internal/repository/xmldb"
	"drivehub-backend/internal/security"
	"drivehub-backend/internal/service"
	"drivehub-backend/internal/storage"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting DriveHub Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Storage configuration", "data_dir", cfg.Storage.DataDir, "upload_dir", cfg.Storage.UploadDir)

	// Initialize Record Store (seeds defaults on first run)
	store, err := xmldb.NewStore(cfg.Storage.DataDir)
	if err != nil {
		logger.Error("Failed to open record store", "error", err)
		log.Fatalf("Failed to open record store: %v", err)
	}
	logger.Info("Record store ready", "data_dir", cfg.Storage.DataDir)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.Session.Secret, time.Duration(cfg.Session.ExpiryMinutes)*time.Minute)

	// Initialize Image Storage
	images, err := storage.NewImageStore(cfg.Storage.UploadDir)
	if err != nil {
		logger.Error("Failed to initialize image store", "error", err)
		log.Fatalf("Failed to initialize image store: %v", err)
	}

	// Initialize Services
	authSvc := service.NewAuthService(store.Users)
	fleetSvc := service.NewFleetService(store.Vehicles)
	rentalSvc := service.NewRentalService(store.Rentals, store.Vehicles)
	reportSvc := service.NewReportService(store.Vehicles, store.Rentals)

	// Initialize HTTP handlers
	session := httpapi.NewSessionMiddleware(tokenManager, cfg.Session.CookieName)
	authHandler := httpapi.NewAuthHandler(authSvc, tokenManager, cfg.Session.CookieName, time.Duration(cfg.Session.ExpiryMinutes)*time.Minute)
	vehicleHandler := httpapi.NewVehicleHandler(fleetSvc, images, int64(cfg.Storage.MaxUploadMB)<<20)
	rentalHandler := httpapi.NewRentalHandler(rentalSvc)
	syncHandler := httpapi.NewSyncHandler(reportSvc)

	router := httpapi.NewRouter(authHandler, vehicleHandler, rentalHandler, syncHandler, session, cfg.Storage.UploadDir)

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	logger.Info("Server stopped")
}
