package commands_test

import (
	"context"
	"testing"
	"time"

	"runplanner/internal/core/application/usecases/commands"
	"runplanner/internal/core/domain/model/assignment"
	"runplanner/internal/core/domain/model/fleet"
	"runplanner/internal/core/domain/model/kernel"
	"runplanner/internal/core/domain/model/order"
	"runplanner/internal/core/domain/model/run"
	"runplanner/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockRunRepository struct{ mock.Mock }

func (m *MockRunRepository) Add(ctx context.Context, r *run.Run) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockRunRepository) Update(ctx context.Context, r *run.Run) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockRunRepository) Get(ctx context.Context, id kernel.UUID) (*run.Run, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*run.Run), args.Error(1)
}

func (m *MockRunRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*run.Run, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*run.Run), args.Error(1)
}

type MockAssignmentRepository struct{ mock.Mock }

func (m *MockAssignmentRepository) Add(ctx context.Context, a *assignment.Assignment) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAssignmentRepository) Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assignment.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) (*assignment.Assignment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assignment.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) ListByRun(ctx context.Context, runID kernel.UUID) ([]*assignment.Assignment, error) {
	args := m.Called(ctx, runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*assignment.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockFleetRepository struct{ mock.Mock }

func (m *MockFleetRepository) GetVehicle(ctx context.Context, id kernel.UUID) (*fleet.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fleet.Vehicle), args.Error(1)
}

func (m *MockFleetRepository) GetTrailer(ctx context.Context, id kernel.UUID) (*fleet.Trailer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fleet.Trailer), args.Error(1)
}

func (m *MockFleetRepository) AddVehicle(ctx context.Context, v *fleet.Vehicle) error {
	return m.Called(ctx, v).Error(0)
}

func (m *MockFleetRepository) AddTrailer(ctx context.Context, t *fleet.Trailer) error {
	return m.Called(ctx, t).Error(0)
}

// MockUoW implements every unit-of-work interface the handlers depend on.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

func (m *MockUoW) RunRepository() ports.RunRepository {
	return m.Called().Get(0).(ports.RunRepository)
}

func (m *MockUoW) AssignmentRepository() ports.AssignmentRepository {
	return m.Called().Get(0).(ports.AssignmentRepository)
}

func (m *MockUoW) FleetRepository() ports.FleetRepository {
	return m.Called().Get(0).(ports.FleetRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	return m.Called().Get(0).(commands.UoW)
}

type MockRunUoWFactory struct{ mock.Mock }

func (m *MockRunUoWFactory) Create() commands.RunUoW {
	return m.Called().Get(0).(commands.RunUoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	return m.Called().Get(0).(commands.OrderUoW)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, workspace string) error {
	return m.Called(ctx, workspace).Error(0)
}

// fixture wires one MockUoW with its four repositories. Repository getters may
// be called any number of times.
type fixture struct {
	orders      *MockOrderRepository
	runs        *MockRunRepository
	assignments *MockAssignmentRepository
	fleet       *MockFleetRepository
	uow         *MockUoW
	factory     *MockUoWFactory
	publisher   *MockPublisher
}

func newFixture() *fixture {
	f := &fixture{
		orders:      new(MockOrderRepository),
		runs:        new(MockRunRepository),
		assignments: new(MockAssignmentRepository),
		fleet:       new(MockFleetRepository),
		uow:         new(MockUoW),
		factory:     new(MockUoWFactory),
		publisher:   new(MockPublisher),
	}
	f.uow.On("OrderRepository").Return(f.orders).Maybe()
	f.uow.On("RunRepository").Return(f.runs).Maybe()
	f.uow.On("AssignmentRepository").Return(f.assignments).Maybe()
	f.uow.On("FleetRepository").Return(f.fleet).Maybe()
	f.factory.On("Create").Return(f.uow)
	return f
}

func (f *fixture) assertExpectations(t *testing.T) {
	t.Helper()
	f.orders.AssertExpectations(t)
	f.runs.AssertExpectations(t)
	f.assignments.AssertExpectations(t)
	f.fleet.AssertExpectations(t)
	f.uow.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

var planningDay = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func newTestOrder(t *testing.T, status order.Status, weight int64, spaces int) *order.Order {
	t.Helper()
	line, err := order.NewCargoLine("euro", spaces, decimal.NewFromInt(weight), spaces)
	require.NoError(t, err)
	addr := kernel.NewAddress("Site", "1 Street", "London", kernel.NewPostcode("SW1A 1AA"))
	o, err := order.RestoreOrder(kernel.NewUUID(), addr, addr, []order.CargoLine{line}, status,
		planningDay.Add(8*time.Hour), planningDay.Add(12*time.Hour), false)
	require.NoError(t, err)
	return o
}

func newTestRun(t *testing.T, status run.Status, vehicleID kernel.UUID) *run.Run {
	t.Helper()
	r, err := run.RestoreRun(kernel.NewUUID(), planningDay, run.Delivery, status, kernel.NewUUID(), vehicleID, nil, false)
	require.NoError(t, err)
	return r
}

func newTestVehicle(t *testing.T, weight int64, spaces int) *fleet.Vehicle {
	t.Helper()
	v, err := fleet.NewVehicle(kernel.NewUUID(), "AB12 CDE", fleet.Rigid, fleet.Capacity{Weight: decimal.NewFromInt(weight), Spaces: spaces})
	require.NoError(t, err)
	return v
}

func newTestAssignment(t *testing.T, orderID, runID kernel.UUID) *assignment.Assignment {
	t.Helper()
	a, err := assignment.NewAssignment(kernel.NewUUID(), orderID, runID, "")
	require.NoError(t, err)
	return a
}
