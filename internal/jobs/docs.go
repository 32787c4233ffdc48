// Package jobs provides scheduled background tasks for the dispatch
// tracking service, built on github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. OpenOrdersReportJob - Periodically logs the open order backlog and
// flags orders that have stayed open for more than a day.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(db, "0 */15 * * * *", logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules use six-field cron expressions with a seconds column. The
// report schedule comes from configuration so operators can tune how
// often the backlog is sampled.
package jobs
