package commands

import (
	"context"

	"runplanner/internal/core/domain/model/kernel"
	"runplanner/internal/core/domain/model/run"
	"runplanner/internal/core/ports"
)

// RunTransitionCommandHandler drives the forward-only run status machine
// planned -> in_progress -> completed.
type RunTransitionCommandHandler struct {
	uowFactory RunUoWFactory
	publisher  ports.SyncPublisher
}

func NewRunTransitionCommandHandler(uowFactory RunUoWFactory, publisher ports.SyncPublisher) RunTransitionCommandHandler {
	return RunTransitionCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Start returns errs.ErrInvalidState unless the run is planned.
func (h RunTransitionCommandHandler) Start(ctx context.Context, cmd StartRunCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.transition(ctx, cmd.Workspace(), cmd.RunID(), (*run.Run).Start)
}

// Complete returns errs.ErrInvalidState unless the run is in progress.
func (h RunTransitionCommandHandler) Complete(ctx context.Context, cmd CompleteRunCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.transition(ctx, cmd.Workspace(), cmd.RunID(), (*run.Run).Complete)
}

func (h RunTransitionCommandHandler) transition(
	ctx context.Context,
	workspace string,
	runID kernel.UUID,
	step func(*run.Run) error,
) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	runRepo := uow.RunRepository()
	r, err := runRepo.GetForUpdate(ctx, runID)
	if err != nil {
		return err
	}
	if err = step(r); err != nil {
		return err
	}
	if err = runRepo.Update(ctx, r); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishRefresh(ctx, h.publisher, workspace)
	return nil
}

// DeleteRunCommandHandler deletes a planned run. Its assignments are removed
// and their orders reverted to new in the same transaction, so no assignment
// outlives its run. If any assigned order has already left planned, the whole
// delete is rejected with errs.ErrInvalidState.
type DeleteRunCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.SyncPublisher
}

func NewDeleteRunCommandHandler(uowFactory UoWFactory, publisher ports.SyncPublisher) DeleteRunCommandHandler {
	return DeleteRunCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle returns how many orders were released.
func (h DeleteRunCommandHandler) Handle(ctx context.Context, cmd DeleteRunCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	runRepo := uow.RunRepository()
	r, err := runRepo.GetForUpdate(ctx, cmd.RunID())
	if err != nil {
		return 0, err
	}
	if err = r.ValidateDelete(); err != nil {
		return 0, err
	}

	assignments, err := uow.AssignmentRepository().ListByRun(ctx, r.ID())
	if err != nil {
		return 0, err
	}
	for _, a := range assignments {
		if err = releaseOnLockedRun(ctx, uow, a); err != nil {
			return 0, err
		}
	}

	if err = r.MarkDeleted(); err != nil {
		return 0, err
	}
	if err = runRepo.Update(ctx, r); err != nil {
		return 0, err
	}
	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	publishRefresh(ctx, h.publisher, cmd.Workspace())
	return len(assignments), nil
}
