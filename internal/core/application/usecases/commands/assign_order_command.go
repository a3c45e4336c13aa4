package commands

import (
	"errors"
	"unicode/utf8"

	"runplanner/internal/core/domain/model/assignment"
	"runplanner/internal/core/domain/model/kernel"
	"runplanner/internal/pkg/errs"
	"runplanner/internal/pkg/guard"
)

var ErrAssignOrderCommandIsNotConstructed = errors.New(
	"AssignOrderCommand must be created via NewAssignOrderCommand constructor",
)

// AssignOrderCommand loads one available order onto a planned run.
//
// Example:
//
//	cmd, err := NewAssignOrderCommand("default", orderID, runID, "tail lift")
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrAlreadyAssigned) {
//	    // the order is on another run
//	}
type AssignOrderCommand struct {
	workspace string
	orderID   kernel.UUID
	runID     kernel.UUID
	note      string

	guard guard.ConstructorGuard
}

// NewAssignOrderCommand creates a command assigning an order to a run.
// Returns an error if an identifier is not constructed or the note is too long.
func NewAssignOrderCommand(workspace string, orderID, runID kernel.UUID, note string) (AssignOrderCommand, error) {
	var noteErr error
	if n := utf8.RuneCountInString(note); n > assignment.MaxNoteLength {
		noteErr = errs.NewValueIsOutOfRangeError("note length", n, 0, assignment.MaxNoteLength)
	}

	if err := errors.Join(
		validateWorkspace(workspace),
		orderID.Validate(),
		runID.Validate(),
		noteErr,
	); err != nil {
		return AssignOrderCommand{}, err
	}

	return AssignOrderCommand{
		workspace: workspace,
		orderID:   orderID,
		runID:     runID,
		note:      note,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAssignOrderCommandIsNotConstructed if validation fails.
func (c AssignOrderCommand) Validate() error {
	return c.guard.Validate(ErrAssignOrderCommandIsNotConstructed)
}

// Workspace returns the workspace whose viewers are refreshed after the change.
func (c AssignOrderCommand) Workspace() string {
	return c.workspace
}

// OrderID returns the order the command acts on.
func (c AssignOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RunID returns the run the order is assigned to.
func (c AssignOrderCommand) RunID() kernel.UUID {
	return c.runID
}

// Note returns the planner's note for the assignment.
func (c AssignOrderCommand) Note() string {
	return c.note
}
