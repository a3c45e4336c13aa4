package commands

import (
	"errors"

	"runplanner/internal/core/domain/model/kernel"
	"runplanner/internal/pkg/guard"
)

var (
	ErrStartRunCommandIsNotConstructed = errors.New(
		"StartRunCommand must be created via NewStartRunCommand constructor",
	)
	ErrCompleteRunCommandIsNotConstructed = errors.New(
		"CompleteRunCommand must be created via NewCompleteRunCommand constructor",
	)
	ErrDeleteRunCommandIsNotConstructed = errors.New(
		"DeleteRunCommand must be created via NewDeleteRunCommand constructor",
	)
)

// StartRunCommand moves a planned run to in_progress.
type StartRunCommand struct {
	workspace string
	runID     kernel.UUID

	guard guard.ConstructorGuard
}

// NewStartRunCommand creates a command moving a planned run to in progress.
func NewStartRunCommand(workspace string, runID kernel.UUID) (StartRunCommand, error) {
	if err := errors.Join(validateWorkspace(workspace), runID.Validate()); err != nil {
		return StartRunCommand{}, err
	}
	return StartRunCommand{workspace: workspace, runID: runID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrStartRunCommandIsNotConstructed if validation fails.
func (c StartRunCommand) Validate() error {
	return c.guard.Validate(ErrStartRunCommandIsNotConstructed)
}

// Workspace returns the workspace whose viewers are refreshed after the change.
func (c StartRunCommand) Workspace() string {
	return c.workspace
}

// RunID returns the run to start.
func (c StartRunCommand) RunID() kernel.UUID {
	return c.runID
}

// CompleteRunCommand moves an in_progress run to completed.
type CompleteRunCommand struct {
	workspace string
	runID     kernel.UUID

	guard guard.ConstructorGuard
}

// NewCompleteRunCommand creates a command moving an in-progress run to completed.
func NewCompleteRunCommand(workspace string, runID kernel.UUID) (CompleteRunCommand, error) {
	if err := errors.Join(validateWorkspace(workspace), runID.Validate()); err != nil {
		return CompleteRunCommand{}, err
	}
	return CompleteRunCommand{workspace: workspace, runID: runID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCompleteRunCommandIsNotConstructed if validation fails.
func (c CompleteRunCommand) Validate() error {
	return c.guard.Validate(ErrCompleteRunCommandIsNotConstructed)
}

// Workspace returns the workspace whose viewers are refreshed after the change.
func (c CompleteRunCommand) Workspace() string {
	return c.workspace
}

// RunID returns the run to complete.
func (c CompleteRunCommand) RunID() kernel.UUID {
	return c.runID
}

// DeleteRunCommand soft-deletes a planned run and releases its orders.
type DeleteRunCommand struct {
	workspace string
	runID     kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeleteRunCommand creates a command soft-deleting a run and releasing its orders.
func NewDeleteRunCommand(workspace string, runID kernel.UUID) (DeleteRunCommand, error) {
	if err := errors.Join(validateWorkspace(workspace), runID.Validate()); err != nil {
		return DeleteRunCommand{}, err
	}
	return DeleteRunCommand{workspace: workspace, runID: runID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrDeleteRunCommandIsNotConstructed if validation fails.
func (c DeleteRunCommand) Validate() error {
	return c.guard.Validate(ErrDeleteRunCommandIsNotConstructed)
}

// Workspace returns the workspace whose viewers are refreshed after the change.
func (c DeleteRunCommand) Workspace() string {
	return c.workspace
}

// RunID returns the run to delete.
func (c DeleteRunCommand) RunID() kernel.UUID {
	return c.runID
}
