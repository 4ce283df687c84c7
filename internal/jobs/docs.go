// Package jobs provides scheduled background tasks for the storefront.
//
// Jobs are cron based (github.com/robfig/cron/v3) with a leading seconds
// field in every schedule.
//
// # Available Jobs
//
// LowStockReportJob runs GetLowStockProducts and writes one warning per
// product at or below its threshold. The default schedule is every five
// minutes and is configured with LOW_STOCK_REPORT_SCHEDULE.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(lowStockHandler, jobs.Config{
//		LowStockReportSchedule: cfg.LowStockReportSchedule,
//	}, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// An invalid schedule makes StartAll fail before anything runs.
package jobs
