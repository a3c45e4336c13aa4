package commands

import (
	"context"

	"runplanner/internal/core/domain/model/fleet"
)

// RegisterFleetCommandHandler persists fleet reference data.
type RegisterFleetCommandHandler struct {
	uowFactory RunUoWFactory
}

func NewRegisterFleetCommandHandler(uowFactory RunUoWFactory) RegisterFleetCommandHandler {
	return RegisterFleetCommandHandler{uowFactory: uowFactory}
}

func (h RegisterFleetCommandHandler) Handle(ctx context.Context, cmd RegisterFleetCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.FleetRepository()
	if cmd.IsTrailer() {
		t, err := fleet.NewTrailer(cmd.unitID, cmd.registration, cmd.capacity)
		if err != nil {
			return err
		}
		if err = repo.AddTrailer(ctx, t); err != nil {
			return err
		}
	} else {
		v, err := fleet.NewVehicle(cmd.unitID, cmd.registration, cmd.kind, cmd.capacity)
		if err != nil {
			return err
		}
		if err = repo.AddVehicle(ctx, v); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
