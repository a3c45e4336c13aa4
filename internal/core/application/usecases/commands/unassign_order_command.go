package commands

import (
	"errors"

	"runplanner/internal/core/domain/model/kernel"
	"runplanner/internal/pkg/guard"
)

var ErrUnassignOrderCommandIsNotConstructed = errors.New(
	"UnassignOrderCommand must be created via NewUnassignOrderCommand constructor",
)

// UnassignOrderCommand removes one assignment and returns its order to the pool.
type UnassignOrderCommand struct {
	workspace    string
	assignmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewUnassignOrderCommand creates a command removing an assignment.
func NewUnassignOrderCommand(workspace string, assignmentID kernel.UUID) (UnassignOrderCommand, error) {
	if err := errors.Join(validateWorkspace(workspace), assignmentID.Validate()); err != nil {
		return UnassignOrderCommand{}, err
	}

	return UnassignOrderCommand{
		workspace:    workspace,
		assignmentID: assignmentID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUnassignOrderCommandIsNotConstructed if validation fails.
func (c UnassignOrderCommand) Validate() error {
	return c.guard.Validate(ErrUnassignOrderCommandIsNotConstructed)
}

// Workspace returns the workspace whose viewers are refreshed after the change.
func (c UnassignOrderCommand) Workspace() string {
	return c.workspace
}

// AssignmentID returns the assignment to remove.
func (c UnassignOrderCommand) AssignmentID() kernel.UUID {
	return c.assignmentID
}
