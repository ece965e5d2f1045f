// Package jobs provides scheduled background tasks for the fulfillment system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for order fulfillment.
//
// # Available Jobs
//
// 1. RefundRetryJob - Re-drives pending refund tasks against the wallet ledger
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(retryRefundsHandler, "0 * * * * *", logger)
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
// Schedules are six-field cron expressions with a seconds column. The refund
// retry cadence comes from configuration; once a minute is a sensible default
// since refund credits are idempotent and not latency sensitive.
//
// # Error Handling
//
// - A failed retry pass is logged and retried on the next tick; individual
//   task failures only bump the task's attempt counter
// - Failed job starts will stop any already running jobs
package jobs
