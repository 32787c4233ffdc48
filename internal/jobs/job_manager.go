package jobs

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop background jobs.
type JobManager struct {
	openOrdersReportJob *OpenOrdersReportJob
}

// NewJobManager creates a job manager with all required jobs.
func NewJobManager(db *gorm.DB, reportSchedule string, logger *slog.Logger) *JobManager {
	return &JobManager{
		openOrdersReportJob: NewOpenOrdersReportJob(db, reportSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.openOrdersReportJob.Start(); err != nil {
		return fmt.Errorf("failed to start open orders report job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.openOrdersReportJob.Stop()
}
