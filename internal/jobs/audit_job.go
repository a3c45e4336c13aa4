package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"runplanner/internal/core/application/usecases/queries"
	"runplanner/internal/core/application/usecases/views"

	"github.com/robfig/cron/v3"
)

// DefaultAuditSchedule runs the audit every five minutes.
const DefaultAuditSchedule = "@every 5m"

type (
	AuditConsistencyHandler interface {
		Handle(ctx context.Context, query queries.AuditConsistencyQuery) ([]views.Inconsistency, error)
	}

	ListRunsWithLoadHandler interface {
		Handle(ctx context.Context, query queries.ListRunsWithLoadQuery) ([]views.Run, error)
	}

	// AuditGauges receives the counts of the last completed audit.
	AuditGauges interface {
		SetIncoherentOrders(n int)
		SetOverloadedRuns(n int)
	}
)

// AuditReport is the outcome of one audit pass.
type AuditReport struct {
	Date            time.Time
	Inconsistencies []views.Inconsistency
	OverloadedRuns  []views.Run
}

// AuditJob periodically checks the planning data: orders whose status
// disagrees with their assignments, and today's runs loaded past their
// ceiling. It only reports, it never repairs.
type AuditJob struct {
	audit    AuditConsistencyHandler
	runs     ListRunsWithLoadHandler
	gauges   AuditGauges
	schedule string
	now      func() time.Time
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewAuditJob creates the job. An empty schedule falls back to
// DefaultAuditSchedule; a nil gauges disables metric updates.
func NewAuditJob(
	audit AuditConsistencyHandler,
	runs ListRunsWithLoadHandler,
	gauges AuditGauges,
	schedule string,
	logger *slog.Logger,
) *AuditJob {
	if schedule == "" {
		schedule = DefaultAuditSchedule
	}
	return &AuditJob{
		audit:    audit,
		runs:     runs,
		gauges:   gauges,
		schedule: schedule,
		now:      time.Now,
		cron:     cron.New(),
		logger:   logger.With("component", "audit_job"),
	}
}

// RunOnce performs a single audit pass for the current UTC day.
func (j *AuditJob) RunOnce(ctx context.Context) (AuditReport, error) {
	report := AuditReport{Date: j.now().UTC()}

	problems, err := j.audit.Handle(ctx, queries.NewAuditConsistencyQuery())
	if err != nil {
		return report, fmt.Errorf("audit consistency: %w", err)
	}
	report.Inconsistencies = problems

	query, err := queries.NewListRunsWithLoadQuery(report.Date)
	if err != nil {
		return report, err
	}
	runs, err := j.runs.Handle(ctx, query)
	if err != nil {
		return report, fmt.Errorf("list runs with load: %w", err)
	}
	for _, r := range runs {
		if r.Load.Overloaded {
			report.OverloadedRuns = append(report.OverloadedRuns, r)
		}
	}

	if j.gauges != nil {
		j.gauges.SetIncoherentOrders(len(report.Inconsistencies))
		j.gauges.SetOverloadedRuns(len(report.OverloadedRuns))
	}

	for _, p := range report.Inconsistencies {
		j.logger.WarnContext(ctx, "Inconsistent planning data",
			"order_id", p.OrderID, "assignment_id", p.AssignmentID, "problem", p.Problem)
	}
	for _, r := range report.OverloadedRuns {
		j.logger.WarnContext(ctx, "Run is overloaded",
			"run_id", r.ID, "label", r.Label,
			"weight", r.Load.TotalWeight.String(), "spaces", r.Load.TotalSpaces)
	}
	return report, nil
}

// Start schedules the audit.
func (j *AuditJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if _, err := j.RunOnce(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Audit job failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule %q: %w", j.schedule, err)
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Audit job started", "schedule", j.schedule)
	return nil
}

// Stop stops the scheduler and waits for a running audit to finish.
func (j *AuditJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Audit job stopped")
}
