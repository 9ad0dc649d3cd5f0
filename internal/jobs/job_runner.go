package jobs

import (
	"log/slog"

	"drivehub-backend/internal/config"
	"drivehub-backend/internal/logger"
	"drivehub-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	report service.ReportService
	config *config.Config
	log    *slog.Logger
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(report service.ReportService, cfg *config.Config) *JobRunner {
	return &JobRunner{
		report: report,
		config: cfg,
		log:    logger.WithService("jobs"),
	}
}

// Config returns the loaded configuration
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			jr.log.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	jr.log.Info("Starting job", "job", jobName)
	jobFunc()
	jr.log.Info("Job completed", "job", jobName)
}
