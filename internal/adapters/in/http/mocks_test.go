package http_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apihttp "runplanner/internal/adapters/in/http"
	"runplanner/internal/adapters/out/metrics"
	"runplanner/internal/adapters/out/syncbus"
	"runplanner/internal/core/application/usecases/commands"
	"runplanner/internal/core/application/usecases/queries"
	"runplanner/internal/core/application/usecases/views"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCreateOrder struct{ mock.Mock }

func (m *MockCreateOrder) Handle(ctx context.Context, cmd commands.CreateOrderCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockCreateRun struct{ mock.Mock }

func (m *MockCreateRun) Handle(ctx context.Context, cmd commands.CreateRunCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockRegisterFleet struct{ mock.Mock }

func (m *MockRegisterFleet) Handle(ctx context.Context, cmd commands.RegisterFleetCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockAssign struct{ mock.Mock }

func (m *MockAssign) Handle(ctx context.Context, cmd commands.AssignOrderCommand) (views.Assignment, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(views.Assignment), args.Error(1)
}

type MockUnassign struct{ mock.Mock }

func (m *MockUnassign) Handle(ctx context.Context, cmd commands.UnassignOrderCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockMove struct{ mock.Mock }

func (m *MockMove) Handle(ctx context.Context, cmd commands.MoveOrderCommand) (views.Assignment, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(views.Assignment), args.Error(1)
}

type MockBulkAssign struct{ mock.Mock }

func (m *MockBulkAssign) Handle(ctx context.Context, cmd commands.BulkAssignOrdersCommand) (views.BulkResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(views.BulkResult), args.Error(1)
}

type MockBulkUnassign struct{ mock.Mock }

func (m *MockBulkUnassign) Handle(ctx context.Context, cmd commands.BulkUnassignCommand) (views.BulkResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(views.BulkResult), args.Error(1)
}

type MockBulkRemove struct{ mock.Mock }

func (m *MockBulkRemove) Handle(ctx context.Context, cmd commands.BulkRemoveOrdersCommand) (views.BulkResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(views.BulkResult), args.Error(1)
}

type MockRunTransition struct{ mock.Mock }

func (m *MockRunTransition) Start(ctx context.Context, cmd commands.StartRunCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

func (m *MockRunTransition) Complete(ctx context.Context, cmd commands.CompleteRunCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockDeleteRun struct{ mock.Mock }

func (m *MockDeleteRun) Handle(ctx context.Context, cmd commands.DeleteRunCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

type MockAvailableOrders struct{ mock.Mock }

func (m *MockAvailableOrders) Handle(ctx context.Context, q queries.ListAvailableOrdersQuery) ([]views.Order, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]views.Order), args.Error(1)
}

type MockRunsWithLoad struct{ mock.Mock }

func (m *MockRunsWithLoad) Handle(ctx context.Context, q queries.ListRunsWithLoadQuery) ([]views.Run, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]views.Run), args.Error(1)
}

type MockAudit struct{ mock.Mock }

func (m *MockAudit) Handle(ctx context.Context, q queries.AuditConsistencyQuery) ([]views.Inconsistency, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]views.Inconsistency), args.Error(1)
}

type fixture struct {
	createOrder     *MockCreateOrder
	createRun       *MockCreateRun
	registerFleet   *MockRegisterFleet
	assign          *MockAssign
	unassign        *MockUnassign
	move            *MockMove
	bulkAssign      *MockBulkAssign
	bulkUnassign    *MockBulkUnassign
	bulkRemove      *MockBulkRemove
	runTransition   *MockRunTransition
	deleteRun       *MockDeleteRun
	availableOrders *MockAvailableOrders
	runsWithLoad    *MockRunsWithLoad
	audit           *MockAudit

	hub      *syncbus.Hub
	registry *prometheus.Registry
	echo     *echo.Echo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		createOrder:     &MockCreateOrder{},
		createRun:       &MockCreateRun{},
		registerFleet:   &MockRegisterFleet{},
		assign:          &MockAssign{},
		unassign:        &MockUnassign{},
		move:            &MockMove{},
		bulkAssign:      &MockBulkAssign{},
		bulkUnassign:    &MockBulkUnassign{},
		bulkRemove:      &MockBulkRemove{},
		runTransition:   &MockRunTransition{},
		deleteRun:       &MockDeleteRun{},
		availableOrders: &MockAvailableOrders{},
		runsWithLoad:    &MockRunsWithLoad{},
		audit:           &MockAudit{},
		hub:             syncbus.NewHub(),
		registry:        prometheus.NewRegistry(),
	}
	t.Cleanup(f.hub.Close)

	sink, err := metrics.NewPromSink(f.registry)
	require.NoError(t, err)

	server := apihttp.NewServer(apihttp.Handlers{
		CreateOrder:     f.createOrder,
		CreateRun:       f.createRun,
		RegisterFleet:   f.registerFleet,
		AssignOrder:     f.assign,
		UnassignOrder:   f.unassign,
		MoveOrder:       f.move,
		BulkAssign:      f.bulkAssign,
		BulkUnassign:    f.bulkUnassign,
		BulkRemove:      f.bulkRemove,
		RunTransition:   f.runTransition,
		DeleteRun:       f.deleteRun,
		AvailableOrders: f.availableOrders,
		RunsWithLoad:    f.runsWithLoad,
		Audit:           f.audit,
	}, f.hub, sink, slog.New(slog.NewTextHandler(io.Discard, nil)))

	f.echo, err = apihttp.NewEcho(context.Background(), server, f.registry)
	require.NoError(t, err)
	return f
}

func (f *fixture) do(method, target, body string, headers ...string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) get(target string) *httptest.ResponseRecorder {
	return f.do(http.MethodGet, target, "")
}
