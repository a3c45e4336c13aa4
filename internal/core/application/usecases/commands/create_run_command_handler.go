package commands

import (
	"context"

	"runplanner/internal/core/domain/model/run"
	"runplanner/internal/core/ports"
)

// CreateRunCommandHandler persists a new planned run after checking that the
// referenced vehicle, and trailer if any, exist. A tractor unit without a
// trailer is accepted; such a run has no capacity ceiling.
type CreateRunCommandHandler struct {
	uowFactory RunUoWFactory
	publisher  ports.SyncPublisher
}

func NewCreateRunCommandHandler(uowFactory RunUoWFactory, publisher ports.SyncPublisher) CreateRunCommandHandler {
	return CreateRunCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

func (h CreateRunCommandHandler) Handle(ctx context.Context, cmd CreateRunCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	r, err := run.NewRun(cmd.RunID(), cmd.Date(), cmd.Type(), cmd.DriverID(), cmd.VehicleID(), cmd.TrailerID())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	fleetRepo := uow.FleetRepository()
	if _, err = fleetRepo.GetVehicle(ctx, cmd.VehicleID()); err != nil {
		return err
	}
	if id := cmd.TrailerID(); id != nil {
		if _, err = fleetRepo.GetTrailer(ctx, *id); err != nil {
			return err
		}
	}

	if err = uow.RunRepository().Add(ctx, r); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishRefresh(ctx, h.publisher, cmd.Workspace())
	return nil
}
