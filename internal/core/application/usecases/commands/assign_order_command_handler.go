package commands

import (
	"context"
	"errors"

	"runplanner/internal/core/application/usecases/views"
	"runplanner/internal/core/domain/model/assignment"
	"runplanner/internal/core/domain/model/kernel"
	"runplanner/internal/core/ports"
	"runplanner/internal/pkg/errs"
)

// AssignOrderCommandHandler creates an assignment and flips the order to
// planned in one transaction.
//
// Concurrency: the run row and then the order row are locked before the
// order's current assignment is checked, so a second writer for the same order
// waits and then sees the first writer's assignment. The unique index on
// assignments.order_id backs this up for writers that skip the lock.
//
// Both rows are loaded before any state check, so a missing order or run is
// reported as not found even when the other side is in the wrong state.
//
// Errors:
//   - errs.ErrObjectNotFound: order or run missing or soft-deleted
//   - errs.ErrAlreadyAssigned: the order already holds an assignment
//   - errs.ErrInvalidState: order not new, or run not planned
type AssignOrderCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.SyncPublisher
}

func NewAssignOrderCommandHandler(uowFactory UoWFactory, publisher ports.SyncPublisher) AssignOrderCommandHandler {
	return AssignOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle assigns the order and returns the assignment enriched with the run
// label and the run's load after the change. An overloaded run is reported in
// the load, never rejected.
func (h AssignOrderCommandHandler) Handle(ctx context.Context, cmd AssignOrderCommand) (views.Assignment, error) {
	if err := cmd.Validate(); err != nil {
		return views.Assignment{}, err
	}

	view, err := h.assign(ctx, cmd.OrderID(), cmd.RunID(), cmd.Note())
	if err != nil {
		return views.Assignment{}, err
	}

	publishRefresh(ctx, h.publisher, cmd.Workspace())
	return view, nil
}

func (h AssignOrderCommandHandler) assign(
	ctx context.Context,
	orderID, runID kernel.UUID,
	note string,
) (views.Assignment, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return views.Assignment{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	r, err := uow.RunRepository().GetForUpdate(ctx, runID)
	if err != nil {
		return views.Assignment{}, err
	}

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, orderID)
	if err != nil {
		return views.Assignment{}, err
	}

	if err = r.ValidateAssignable("assign to"); err != nil {
		return views.Assignment{}, err
	}

	assignmentRepo := uow.AssignmentRepository()
	current, err := assignmentRepo.GetByOrder(ctx, orderID)
	switch {
	case err == nil:
		return views.Assignment{}, errs.NewAlreadyAssignedError(orderID.String(), current.RunID().String())
	case !errors.Is(err, errs.ErrObjectNotFound):
		return views.Assignment{}, err
	}

	if err = o.Plan(); err != nil {
		return views.Assignment{}, err
	}

	a, err := assignment.NewAssignment(kernel.NewUUID(), orderID, runID, note)
	if err != nil {
		return views.Assignment{}, err
	}
	if err = assignmentRepo.Add(ctx, a); err != nil {
		return views.Assignment{}, err
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return views.Assignment{}, err
	}

	label, load, err := runSummary(ctx, uow, r)
	if err != nil {
		return views.Assignment{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return views.Assignment{}, err
	}

	return assignmentView(a.ID(), orderID, runID, note, label, load), nil
}
