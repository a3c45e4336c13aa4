package commands

import (
	"context"

	"runplanner/internal/core/application/usecases/views"
	"runplanner/internal/core/domain/model/assignment"
	"runplanner/internal/core/domain/model/kernel"
	"runplanner/internal/core/domain/model/order"
	"runplanner/internal/core/domain/model/run"
	"runplanner/internal/core/ports"
	"runplanner/internal/pkg/errs"
)

// MoveOrderCommandHandler replaces an order's assignment on one run with an
// assignment on another, in one transaction. If any step fails the
// transaction rolls back and the order stays on the source run.
//
// Existence is checked before state: both runs, the order and its
// assignment are loaded first.
//
// Errors:
//   - errs.ErrObjectNotFound: order or either run missing, or the order has no assignment
//   - errs.ErrAlreadyAssigned: the order is assigned to a run other than the source
//   - errs.ErrInvalidState: either run is not planned, or the order is not planned
type MoveOrderCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.SyncPublisher
}

func NewMoveOrderCommandHandler(uowFactory UoWFactory, publisher ports.SyncPublisher) MoveOrderCommandHandler {
	return MoveOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle returns the new assignment, enriched with the target run's label and load.
func (h MoveOrderCommandHandler) Handle(ctx context.Context, cmd MoveOrderCommand) (views.Assignment, error) {
	if err := cmd.Validate(); err != nil {
		return views.Assignment{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return views.Assignment{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	runs := make(map[string]*run.Run, 2)
	for _, id := range lockOrder(cmd.FromRunID(), cmd.ToRunID()) {
		r, err := uow.RunRepository().GetForUpdate(ctx, id)
		if err != nil {
			return views.Assignment{}, err
		}
		runs[id.String()] = r
	}
	target := runs[cmd.ToRunID().String()]

	o, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return views.Assignment{}, err
	}

	assignmentRepo := uow.AssignmentRepository()
	current, err := assignmentRepo.GetByOrder(ctx, cmd.OrderID())
	if err != nil {
		return views.Assignment{}, err
	}

	for _, id := range []kernel.UUID{cmd.FromRunID(), cmd.ToRunID()} {
		if err = runs[id.String()].ValidateAssignable("move orders on"); err != nil {
			return views.Assignment{}, err
		}
	}
	if o.Status() != order.Planned {
		return views.Assignment{}, errs.NewInvalidStateError("order", o.Status().String(), "move")
	}
	if !current.IsOnRun(cmd.FromRunID()) {
		return views.Assignment{}, errs.NewAlreadyAssignedError(cmd.OrderID().String(), current.RunID().String())
	}

	if err = assignmentRepo.Delete(ctx, current.ID()); err != nil {
		return views.Assignment{}, err
	}

	moved, err := assignment.NewAssignment(kernel.NewUUID(), cmd.OrderID(), cmd.ToRunID(), current.Note())
	if err != nil {
		return views.Assignment{}, err
	}
	if err = assignmentRepo.Add(ctx, moved); err != nil {
		return views.Assignment{}, err
	}

	label, load, err := runSummary(ctx, uow, target)
	if err != nil {
		return views.Assignment{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return views.Assignment{}, err
	}

	publishRefresh(ctx, h.publisher, cmd.Workspace())
	return assignmentView(moved.ID(), cmd.OrderID(), cmd.ToRunID(), moved.Note(), label, load), nil
}
