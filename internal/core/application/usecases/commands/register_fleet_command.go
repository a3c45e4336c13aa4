package commands

import (
	"errors"

	"runplanner/internal/core/domain/model/fleet"
	"runplanner/internal/core/domain/model/kernel"
	"runplanner/internal/pkg/guard"
)

var ErrRegisterFleetCommandIsNotConstructed = errors.New(
	"RegisterFleetCommand must be created via NewRegisterVehicleCommand or NewRegisterTrailerCommand",
)

// RegisterFleetCommand records a vehicle or a trailer as reference data for
// capacity ceilings.
type RegisterFleetCommand struct {
	unitID       kernel.UUID
	registration string
	kind         fleet.Kind
	isTrailer    bool
	capacity     fleet.Capacity

	guard guard.ConstructorGuard
}

// NewRegisterVehicleCommand creates a command registering a vehicle.
func NewRegisterVehicleCommand(
	unitID kernel.UUID,
	registration string,
	kind fleet.Kind,
	capacity fleet.Capacity,
) (RegisterFleetCommand, error) {
	if _, err := fleet.NewVehicle(unitID, registration, kind, capacity); err != nil {
		return RegisterFleetCommand{}, err
	}
	return RegisterFleetCommand{
		unitID:       unitID,
		registration: registration,
		kind:         kind,
		capacity:     capacity,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// NewRegisterTrailerCommand creates a command registering a trailer.
func NewRegisterTrailerCommand(unitID kernel.UUID, registration string, capacity fleet.Capacity) (RegisterFleetCommand, error) {
	if _, err := fleet.NewTrailer(unitID, registration, capacity); err != nil {
		return RegisterFleetCommand{}, err
	}
	return RegisterFleetCommand{
		unitID:       unitID,
		registration: registration,
		isTrailer:    true,
		capacity:     capacity,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRegisterFleetCommandIsNotConstructed if validation fails.
func (c RegisterFleetCommand) Validate() error {
	return c.guard.Validate(ErrRegisterFleetCommandIsNotConstructed)
}

// UnitID returns the identifier of the vehicle or trailer.
func (c RegisterFleetCommand) UnitID() kernel.UUID {
	return c.unitID
}

// IsTrailer reports whether the command registers a trailer.
func (c RegisterFleetCommand) IsTrailer() bool {
	return c.isTrailer
}
