package commands

import (
	"context"
	"errors"

	"runplanner/internal/core/domain/model/assignment"
	"runplanner/internal/core/domain/model/kernel"
	"runplanner/internal/core/domain/model/order"
	"runplanner/internal/core/ports"
	"runplanner/internal/pkg/errs"
)

// UnassignOrderCommandHandler deletes an assignment and reverts its order to
// new in one transaction.
//
// Errors:
//   - errs.ErrObjectNotFound: the assignment does not exist, including when a
//     concurrent unassign removed it first
//   - errs.ErrInvalidState: the run is no longer planned, or the order has
//     moved on to in_progress, completed or cancelled
type UnassignOrderCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.SyncPublisher
}

func NewUnassignOrderCommandHandler(uowFactory UoWFactory, publisher ports.SyncPublisher) UnassignOrderCommandHandler {
	return UnassignOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

func (h UnassignOrderCommandHandler) Handle(ctx context.Context, cmd UnassignOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.unassign(ctx, cmd.AssignmentID()); err != nil {
		return err
	}

	publishRefresh(ctx, h.publisher, cmd.Workspace())
	return nil
}

func (h UnassignOrderCommandHandler) unassign(ctx context.Context, assignmentID kernel.UUID) error {
	return h.inTx(ctx, func(uow UoW) (*assignment.Assignment, error) {
		return uow.AssignmentRepository().Get(ctx, assignmentID)
	})
}

// removeFromRun unassigns the order only if its assignment is on runID.
func (h UnassignOrderCommandHandler) removeFromRun(ctx context.Context, runID, orderID kernel.UUID) error {
	return h.inTx(ctx, func(uow UoW) (*assignment.Assignment, error) {
		a, err := uow.AssignmentRepository().GetByOrder(ctx, orderID)
		if err != nil {
			return nil, err
		}
		if !a.IsOnRun(runID) {
			return nil, errs.NewObjectNotFoundError("assignment of order on run", orderID.String()+" on "+runID.String())
		}
		return a, nil
	})
}

func (h UnassignOrderCommandHandler) inTx(
	ctx context.Context,
	locate func(uow UoW) (*assignment.Assignment, error),
) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	a, err := locate(uow)
	if err != nil {
		return err
	}

	if err = release(ctx, uow, a, "unassign from"); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// release deletes one assignment and reverts its order, inside the caller's
// transaction. The run row is locked first, then the order row.
func release(ctx context.Context, uow UoW, a *assignment.Assignment, operation string) error {
	r, err := uow.RunRepository().GetForUpdate(ctx, a.RunID())
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}
	if r != nil {
		if err = r.ValidateAssignable(operation); err != nil {
			return err
		}
	}

	return releaseOnLockedRun(ctx, uow, a)
}

// releaseOnLockedRun is release for callers already holding the run lock.
func releaseOnLockedRun(ctx context.Context, uow UoW, a *assignment.Assignment) error {
	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, a.OrderID())
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	if err = uow.AssignmentRepository().Delete(ctx, a.ID()); err != nil {
		return err
	}

	// A missing order or run leaves a dangling assignment; deleting it is the repair.
	if o == nil {
		return nil
	}
	if o.Status() == order.New {
		return nil
	}
	if err = o.Release(); err != nil {
		return err
	}
	return orderRepo.Update(ctx, o)
}
