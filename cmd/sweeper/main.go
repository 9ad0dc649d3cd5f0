package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"drivehub-backend/internal/config"
	"drivehub-backend/internal/jobs"
	"drivehub-backend/internal/logger"
	"drivehub-backend/internal/repository/xmldb"
	"drivehub-backend/internal/scheduler"
	"drivehub-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.Bool("run-once", false, "Run the maintenance sweep once and exit")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting DriveHub Sweeper...", "log_level", cfg.Log.Level)

	// Initialize Record Store
	store, err := xmldb.NewStore(cfg.Storage.DataDir)
	if err != nil {
		logger.Error("Failed to open record store", "error", err)
		log.Fatalf("Failed to open record store: %v", err)
	}
	logger.Info("Record store ready", "data_dir", cfg.Storage.DataDir)

	// Initialize Services
	reportSvc := service.NewReportService(store.Vehicles, store.Rentals)

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(reportSvc, cfg)

	// Check if running a single sweep
	if *runOnce {
		logger.Info("Running maintenance sweep once")
		jobRunner.SweepMaintenance()
		logger.Info("Sweep execution completed")
		return
	}

	// Initialize Scheduler
	cronScheduler := scheduler.NewScheduler(jobRunner)

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Sweep scheduler is running. Press Ctrl+C to stop.", "running", cronScheduler.IsRunning())

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down scheduler...")
	cronScheduler.Stop()
	logger.Info("Sweeper stopped")
}
