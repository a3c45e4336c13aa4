package commands

import (
	"errors"
	"time"

	"runplanner/internal/core/domain/model/kernel"
	"runplanner/internal/core/domain/model/run"
	"runplanner/internal/pkg/guard"
)

var ErrCreateRunCommandIsNotConstructed = errors.New(
	"CreateRunCommand must be created via NewCreateRunCommand constructor",
)

// CreateRunCommand schedules a new planned run. Missing date, driver or
// vehicle surface as validation errors.
type CreateRunCommand struct {
	workspace string
	runID     kernel.UUID
	date      time.Time
	runType   run.Type
	driverID  kernel.UUID
	vehicleID kernel.UUID
	trailerID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateRunCommand creates a command registering a planned run.
// Returns an error if any identifier is not constructed or the date is zero.
func NewCreateRunCommand(
	workspace string,
	runID kernel.UUID,
	date time.Time,
	runType run.Type,
	driverID, vehicleID kernel.UUID,
	trailerID *kernel.UUID,
) (CreateRunCommand, error) {
	var dateErr, driverErr, vehicleErr, trailerErr error
	if date.IsZero() {
		dateErr = run.ErrDateIsRequired
	}
	if driverID.Validate() != nil {
		driverErr = run.ErrDriverIsRequired
	}
	if vehicleID.Validate() != nil {
		vehicleErr = run.ErrVehicleIsRequired
	}
	if trailerID != nil {
		trailerErr = trailerID.Validate()
	}

	if err := errors.Join(
		validateWorkspace(workspace),
		runID.Validate(),
		dateErr,
		runType.Validate(),
		driverErr,
		vehicleErr,
		trailerErr,
	); err != nil {
		return CreateRunCommand{}, err
	}

	cmd := CreateRunCommand{
		workspace: workspace,
		runID:     runID,
		date:      date,
		runType:   runType,
		driverID:  driverID,
		vehicleID: vehicleID,
		guard:     guard.NewConstructorGuard(),
	}
	if trailerID != nil {
		tid := *trailerID
		cmd.trailerID = &tid
	}
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateRunCommandIsNotConstructed if validation fails.
func (c CreateRunCommand) Validate() error {
	return c.guard.Validate(ErrCreateRunCommandIsNotConstructed)
}

// Workspace returns the workspace whose viewers are refreshed after the change.
func (c CreateRunCommand) Workspace() string {
	return c.workspace
}

// RunID returns the identifier of the new run.
func (c CreateRunCommand) RunID() kernel.UUID {
	return c.runID
}

// Date returns the planning day of the run.
func (c CreateRunCommand) Date() time.Time {
	return c.date
}

// Type returns the run type.
func (c CreateRunCommand) Type() run.Type {
	return c.runType
}

// DriverID returns the driver allocated to the run.
func (c CreateRunCommand) DriverID() kernel.UUID {
	return c.driverID
}

// VehicleID returns the vehicle allocated to the run.
func (c CreateRunCommand) VehicleID() kernel.UUID {
	return c.vehicleID
}

// TrailerID returns the trailer pulled on the run, or nil.
func (c CreateRunCommand) TrailerID() *kernel.UUID {
	if c.trailerID == nil {
		return nil
	}
	tid := *c.trailerID
	return &tid
}
