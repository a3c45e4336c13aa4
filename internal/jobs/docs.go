// Package jobs provides scheduled background tasks for the run planner.
//
// Jobs are cron-driven using github.com/robfig/cron/v3 and managed through
// JobManager:
//
//	audit := jobs.NewAuditJob(auditHandler, runsHandler, promSink, "@every 5m", logger)
//	manager := jobs.NewJobManager(audit)
//	if err := manager.StartAll(); err != nil {
//		return err
//	}
//	defer manager.StopAll()
//
// # AuditJob
//
// AuditJob reads the planning data and reports what it finds. Orders whose
// status disagrees with their assignments are logged and counted in the
// runplanner_incoherent_orders gauge; today's runs loaded past their ceiling
// are logged and counted in runplanner_overloaded_runs. The audit never
// modifies data.
//
// Schedules use the standard five-field cron syntax or descriptors such as
// "@every 10m" and "@hourly".
package jobs
