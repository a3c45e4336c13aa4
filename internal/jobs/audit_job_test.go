package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"runplanner/internal/core/application/usecases/queries"
	"runplanner/internal/core/application/usecases/views"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAuditHandler struct{ mock.Mock }

func (m *MockAuditHandler) Handle(ctx context.Context, query queries.AuditConsistencyQuery) ([]views.Inconsistency, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]views.Inconsistency), args.Error(1)
}

type MockRunsHandler struct{ mock.Mock }

func (m *MockRunsHandler) Handle(ctx context.Context, query queries.ListRunsWithLoadQuery) ([]views.Run, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]views.Run), args.Error(1)
}

type MockGauges struct{ mock.Mock }

func (m *MockGauges) SetIncoherentOrders(n int) { m.Called(n) }
func (m *MockGauges) SetOverloadedRuns(n int)   { m.Called(n) }

type MockJob struct{ mock.Mock }

func (m *MockJob) Start() error { return m.Called().Error(0) }
func (m *MockJob) Stop()        { m.Called() }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestAuditJob(gauges AuditGauges) (*AuditJob, *MockAuditHandler, *MockRunsHandler) {
	audit := &MockAuditHandler{}
	runs := &MockRunsHandler{}
	job := NewAuditJob(audit, runs, gauges, "", discardLogger())
	job.now = func() time.Time { return time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC) }
	return job, audit, runs
}

func TestAuditJob_RunOnce_ReportsProblems(t *testing.T) {
	gauges := &MockGauges{}
	job, audit, runs := newTestAuditJob(gauges)
	ctx := context.Background()

	audit.On("Handle", ctx, queries.NewAuditConsistencyQuery()).Return([]views.Inconsistency{
		{OrderID: "o1", Problem: "assigned order has no assignment"},
		{OrderID: "o2", AssignmentID: "a2", Problem: "assignment references an available order"},
	}, nil)
	runs.On("Handle", ctx, mock.MatchedBy(func(q queries.ListRunsWithLoadQuery) bool {
		return q.Date().Equal(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))
	})).Return([]views.Run{
		{ID: "r1", Label: "North 1", Load: views.Load{TotalWeight: decimal.NewFromInt(1200), Overloaded: true}},
		{ID: "r2", Label: "North 2", Load: views.Load{TotalWeight: decimal.NewFromInt(300)}},
	}, nil)
	gauges.On("SetIncoherentOrders", 2).Once()
	gauges.On("SetOverloadedRuns", 1).Once()

	report, err := job.RunOnce(ctx)

	require.NoError(t, err)
	assert.Len(t, report.Inconsistencies, 2)
	require.Len(t, report.OverloadedRuns, 1)
	assert.Equal(t, "r1", report.OverloadedRuns[0].ID)
	gauges.AssertExpectations(t)
	runs.AssertExpectations(t)
}

func TestAuditJob_RunOnce_CleanDataResetsGauges(t *testing.T) {
	gauges := &MockGauges{}
	job, audit, runs := newTestAuditJob(gauges)

	audit.On("Handle", mock.Anything, mock.Anything).Return([]views.Inconsistency{}, nil)
	runs.On("Handle", mock.Anything, mock.Anything).Return([]views.Run{}, nil)
	gauges.On("SetIncoherentOrders", 0).Once()
	gauges.On("SetOverloadedRuns", 0).Once()

	report, err := job.RunOnce(context.Background())

	require.NoError(t, err)
	assert.Empty(t, report.Inconsistencies)
	assert.Empty(t, report.OverloadedRuns)
	gauges.AssertExpectations(t)
}

func TestAuditJob_RunOnce_Errors(t *testing.T) {
	boom := errors.New("connection reset")

	t.Run("audit query fails", func(t *testing.T) {
		gauges := &MockGauges{}
		job, audit, runs := newTestAuditJob(gauges)
		audit.On("Handle", mock.Anything, mock.Anything).Return(nil, boom)

		_, err := job.RunOnce(context.Background())

		require.ErrorIs(t, err, boom)
		runs.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
		gauges.AssertNotCalled(t, "SetIncoherentOrders", mock.Anything)
	})

	t.Run("runs query fails", func(t *testing.T) {
		gauges := &MockGauges{}
		job, audit, runs := newTestAuditJob(gauges)
		audit.On("Handle", mock.Anything, mock.Anything).Return([]views.Inconsistency{}, nil)
		runs.On("Handle", mock.Anything, mock.Anything).Return(nil, boom)

		_, err := job.RunOnce(context.Background())

		require.ErrorIs(t, err, boom)
		gauges.AssertNotCalled(t, "SetOverloadedRuns", mock.Anything)
	})
}

func TestAuditJob_NilGauges(t *testing.T) {
	job, audit, runs := newTestAuditJob(nil)
	audit.On("Handle", mock.Anything, mock.Anything).Return([]views.Inconsistency{{OrderID: "o1", Problem: "x"}}, nil)
	runs.On("Handle", mock.Anything, mock.Anything).Return([]views.Run{}, nil)

	report, err := job.RunOnce(context.Background())

	require.NoError(t, err)
	assert.Len(t, report.Inconsistencies, 1)
}

func TestAuditJob_StartRejectsBadSchedule(t *testing.T) {
	job := NewAuditJob(&MockAuditHandler{}, &MockRunsHandler{}, nil, "every now and then", discardLogger())

	require.Error(t, job.Start())
}

func TestAuditJob_StartStop(t *testing.T) {
	job := NewAuditJob(&MockAuditHandler{}, &MockRunsHandler{}, nil, "@hourly", discardLogger())

	require.NoError(t, job.Start())
	job.Stop()
}

func TestJobManager_StartAllStopsStartedJobsOnFailure(t *testing.T) {
	first := &MockJob{}
	second := &MockJob{}
	first.On("Start").Return(nil)
	first.On("Stop").Once()
	second.On("Start").Return(errors.New("bad schedule"))

	manager := NewJobManager(first, second)

	require.Error(t, manager.StartAll())
	first.AssertExpectations(t)
	second.AssertNotCalled(t, "Stop")
}

func TestJobManager_StopAllInReverseOrder(t *testing.T) {
	var stopped []string
	first := &MockJob{}
	second := &MockJob{}
	first.On("Start").Return(nil)
	second.On("Start").Return(nil)
	first.On("Stop").Run(func(mock.Arguments) { stopped = append(stopped, "first") })
	second.On("Stop").Run(func(mock.Arguments) { stopped = append(stopped, "second") })

	manager := NewJobManager(first, second)
	require.NoError(t, manager.StartAll())
	manager.StopAll()
	manager.StopAll()

	assert.Equal(t, []string{"second", "first"}, stopped)
}
