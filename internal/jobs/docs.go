// Package jobs provides scheduled background tasks for the warehouse
// planning core.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required by the task planning service.
//
// # Available Jobs
//
// 1. TaskAssignmentJob - Sweeps every warehouse with pending work and runs
// an assignment pass, matching pending tasks with available agents.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(backlogHandler, assignHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The assignment job uses the cron expression "*/5 * * * * *", running every
// five seconds. Warehouses with no pending tasks are skipped entirely, so an
// idle system only pays for the backlog query.
//
// # Error Handling
//
// A failure for one warehouse never aborts the sweep; the error is logged
// and the remaining warehouses still get their pass.
package jobs
