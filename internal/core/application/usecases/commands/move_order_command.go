package commands

import (
	"errors"
	"fmt"

	"runplanner/internal/core/domain/model/kernel"
	"runplanner/internal/pkg/errs"
	"runplanner/internal/pkg/guard"
)

var (
	ErrMoveOrderCommandIsNotConstructed = errors.New(
		"MoveOrderCommand must be created via NewMoveOrderCommand constructor",
	)
	ErrMoveTargetIsSource = errs.NewValueIsInvalidErrorWithCause(
		"target run", fmt.Errorf("must differ from the source run"),
	)
)

// MoveOrderCommand moves an assigned order from one run to another.
type MoveOrderCommand struct {
	workspace string
	orderID   kernel.UUID
	fromRunID kernel.UUID
	toRunID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewMoveOrderCommand creates a command moving an order between two runs.
// Returns ErrMoveTargetIsSource if both runs are the same.
func NewMoveOrderCommand(workspace string, orderID, fromRunID, toRunID kernel.UUID) (MoveOrderCommand, error) {
	if err := errors.Join(
		validateWorkspace(workspace),
		orderID.Validate(),
		fromRunID.Validate(),
		toRunID.Validate(),
	); err != nil {
		return MoveOrderCommand{}, err
	}
	if fromRunID.IsEqual(toRunID) {
		return MoveOrderCommand{}, ErrMoveTargetIsSource
	}

	return MoveOrderCommand{
		workspace: workspace,
		orderID:   orderID,
		fromRunID: fromRunID,
		toRunID:   toRunID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrMoveOrderCommandIsNotConstructed if validation fails.
func (c MoveOrderCommand) Validate() error {
	return c.guard.Validate(ErrMoveOrderCommandIsNotConstructed)
}

// Workspace returns the workspace whose viewers are refreshed after the change.
func (c MoveOrderCommand) Workspace() string {
	return c.workspace
}

// OrderID returns the order the command acts on.
func (c MoveOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// FromRunID returns the run the order currently sits on.
func (c MoveOrderCommand) FromRunID() kernel.UUID {
	return c.fromRunID
}

// ToRunID returns the run the order moves to.
func (c MoveOrderCommand) ToRunID() kernel.UUID {
	return c.toRunID
}
