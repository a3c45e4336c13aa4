package commands_test

import (
	"errors"
	"testing"

	"runplanner/internal/core/application/usecases/commands"
	"runplanner/internal/core/domain/model/assignment"
	"runplanner/internal/core/domain/model/kernel"
	"runplanner/internal/core/domain/model/order"
	"runplanner/internal/core/domain/model/run"
	"runplanner/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewMoveOrderCommand(t *testing.T) {
	runID := kernel.NewUUID()

	_, err := commands.NewMoveOrderCommand("default", kernel.NewUUID(), runID, runID)
	require.ErrorIs(t, err, commands.ErrMoveTargetIsSource)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = commands.NewMoveOrderCommand("default", kernel.UUID{}, runID, kernel.NewUUID())
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

type moveFixture struct {
	*fixture
	from, to *run.Run
	order    *order.Order
	current  *assignment.Assignment
	cmd      commands.MoveOrderCommand
}

func newMoveFixture(t *testing.T) moveFixture {
	t.Helper()
	f := newFixture()
	from := newTestRun(t, run.Planned, kernel.NewUUID())
	to := newTestRun(t, run.Planned, kernel.NewUUID())
	o := newTestOrder(t, order.Planned, 300, 4)
	current, err := assignment.NewAssignment(kernel.NewUUID(), o.ID(), from.ID(), "tail lift")
	require.NoError(t, err)
	cmd, err := commands.NewMoveOrderCommand("default", o.ID(), from.ID(), to.ID())
	require.NoError(t, err)

	ctx := t.Context()
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()
	f.runs.On("GetForUpdate", ctx, from.ID()).Return(from, nil).Once()
	f.runs.On("GetForUpdate", ctx, to.ID()).Return(to, nil).Once()
	return moveFixture{fixture: f, from: from, to: to, order: o, current: current, cmd: cmd}
}

func TestMoveOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	f := newMoveFixture(t)
	vehicle := newTestVehicle(t, 1000, 26)
	f.fleet.On("GetVehicle", ctx, f.to.VehicleID()).Return(vehicle, nil).Once()

	var added *assignment.Assignment
	f.orders.On("GetForUpdate", ctx, f.order.ID()).Return(f.order, nil).Once()
	f.assignments.On("GetByOrder", ctx, f.order.ID()).Return(f.current, nil).Once()
	f.assignments.On("Delete", ctx, f.current.ID()).Return(nil).Once()
	f.assignments.On("Add", ctx, mock.AnythingOfType("*assignment.Assignment")).
		Run(func(args mock.Arguments) { added = args.Get(1).(*assignment.Assignment) }).
		Return(nil).Once()
	f.assignments.On("ListByRun", ctx, f.to.ID()).Return([]*assignment.Assignment{
		newTestAssignment(t, f.order.ID(), f.to.ID()),
	}, nil).Once()
	f.orders.On("GetMany", ctx, []kernel.UUID{f.order.ID()}).Return([]*order.Order{f.order}, nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.publisher.On("Publish", ctx, "default").Return(nil).Once()

	view, err := commands.NewMoveOrderCommandHandler(f.factory, f.publisher).Handle(ctx, f.cmd)

	require.NoError(t, err)
	require.NotNil(t, added)
	assert.True(t, added.IsOnRun(f.to.ID()))
	assert.Equal(t, "tail lift", added.Note())
	assert.Equal(t, added.ID().String(), view.ID)
	assert.Equal(t, f.to.ID().String(), view.RunID)
	assert.Equal(t, 4, view.Load.TotalSpaces)
	assert.False(t, view.Load.Overloaded)
	assert.Equal(t, order.Planned, f.order.Status())
	f.assertExpectations(t)
}

func TestMoveOrderCommandHandler_Handle_RollsBackWhenTargetInsertFails(t *testing.T) {
	ctx := t.Context()
	f := newMoveFixture(t)

	f.orders.On("GetForUpdate", ctx, f.order.ID()).Return(f.order, nil).Once()
	f.assignments.On("GetByOrder", ctx, f.order.ID()).Return(f.current, nil).Once()
	f.assignments.On("Delete", ctx, f.current.ID()).Return(nil).Once()
	f.assignments.On("Add", ctx, mock.AnythingOfType("*assignment.Assignment")).
		Return(errors.New("insert failed")).Once()

	_, err := commands.NewMoveOrderCommandHandler(f.factory, f.publisher).Handle(ctx, f.cmd)

	require.EqualError(t, err, "insert failed")
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestMoveOrderCommandHandler_Handle_OrderOnAnotherRun(t *testing.T) {
	ctx := t.Context()
	f := newMoveFixture(t)
	elsewhere := newTestAssignment(t, f.order.ID(), kernel.NewUUID())

	f.orders.On("GetForUpdate", ctx, f.order.ID()).Return(f.order, nil).Once()
	f.assignments.On("GetByOrder", ctx, f.order.ID()).Return(elsewhere, nil).Once()

	_, err := commands.NewMoveOrderCommandHandler(f.factory, f.publisher).Handle(ctx, f.cmd)

	require.ErrorIs(t, err, errs.ErrAlreadyAssigned)
	f.assignments.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestMoveOrderCommandHandler_Handle_OrderNotPlanned(t *testing.T) {
	ctx := t.Context()
	f := newMoveFixture(t)
	o := newTestOrder(t, order.InProgress, 300, 4)
	cmd, err := commands.NewMoveOrderCommand("default", o.ID(), f.from.ID(), f.to.ID())
	require.NoError(t, err)

	f.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	f.assignments.On("GetByOrder", ctx, o.ID()).Return(newTestAssignment(t, o.ID(), f.from.ID()), nil).Once()

	_, err = commands.NewMoveOrderCommandHandler(f.factory, f.publisher).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInvalidState)
	f.assignments.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestMoveOrderCommandHandler_Handle_NewOrderWithoutAssignment(t *testing.T) {
	ctx := t.Context()
	f := newMoveFixture(t)
	o := newTestOrder(t, order.New, 300, 4)
	cmd, err := commands.NewMoveOrderCommand("default", o.ID(), f.from.ID(), f.to.ID())
	require.NoError(t, err)

	f.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	f.assignments.On("GetByOrder", ctx, o.ID()).
		Return(nil, errs.NewObjectNotFoundError("assignment for order", o.ID())).Once()

	_, err = commands.NewMoveOrderCommandHandler(f.factory, f.publisher).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	require.NotErrorIs(t, err, errs.ErrInvalidState)
	f.assertExpectations(t)
}

func TestMoveOrderCommandHandler_Handle_TargetRunNotPlanned(t *testing.T) {
	ctx := t.Context()
	f := newFixture()
	from := newTestRun(t, run.Planned, kernel.NewUUID())
	to := newTestRun(t, run.Completed, kernel.NewUUID())
	o := newTestOrder(t, order.Planned, 300, 4)
	cmd, err := commands.NewMoveOrderCommand("default", o.ID(), from.ID(), to.ID())
	require.NoError(t, err)

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()
	f.runs.On("GetForUpdate", ctx, from.ID()).Return(from, nil).Once()
	f.runs.On("GetForUpdate", ctx, to.ID()).Return(to, nil).Once()
	f.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	f.assignments.On("GetByOrder", ctx, o.ID()).Return(newTestAssignment(t, o.ID(), from.ID()), nil).Once()

	_, err = commands.NewMoveOrderCommandHandler(f.factory, f.publisher).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInvalidState)
	f.assignments.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestMoveOrderCommandHandler_Handle_UnknownOrderOnRunNotPlanned(t *testing.T) {
	ctx := t.Context()
	f := newFixture()
	from := newTestRun(t, run.Planned, kernel.NewUUID())
	to := newTestRun(t, run.InProgress, kernel.NewUUID())
	orderID := kernel.NewUUID()
	cmd, err := commands.NewMoveOrderCommand("default", orderID, from.ID(), to.ID())
	require.NoError(t, err)

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()
	f.runs.On("GetForUpdate", ctx, from.ID()).Return(from, nil).Once()
	f.runs.On("GetForUpdate", ctx, to.ID()).Return(to, nil).Once()
	f.orders.On("GetForUpdate", ctx, orderID).Return(nil, errs.NewObjectNotFoundError("order", orderID)).Once()

	_, err = commands.NewMoveOrderCommandHandler(f.factory, f.publisher).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	f.assignments.AssertNotCalled(t, "GetByOrder", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}
