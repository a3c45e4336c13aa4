// Package assignment provides the link entity between one order and one run.
package assignment

import (
	"errors"
	"unicode/utf8"

	"runplanner/internal/core/domain/model/kernel"
	"runplanner/internal/pkg/errs"
)

// MaxNoteLength bounds the free-text note in characters.
const MaxNoteLength = 500

var ErrAssignmentIsNotConstructed = errors.New("Assignment must be created via NewAssignment constructor")

// Assignment loads one order onto one run. An order holds at most one
// assignment at a time; the storage layer enforces this with a unique index.
type Assignment struct {
	id      kernel.UUID
	orderID kernel.UUID
	runID   kernel.UUID
	note    string

	isConstructed bool
}

// NewAssignment creates an assignment of an order to a run.
// Returns an error if an identifier is not constructed or the note is longer
// than MaxNoteLength.
func NewAssignment(id, orderID, runID kernel.UUID, note string) (*Assignment, error) {
	var noteErr error
	if n := utf8.RuneCountInString(note); n > MaxNoteLength {
		noteErr = errs.NewValueIsOutOfRangeError("note length", n, 0, MaxNoteLength)
	}

	if err := errors.Join(id.Validate(), orderID.Validate(), runID.Validate(), noteErr); err != nil {
		return nil, err
	}

	return &Assignment{
		id:            id,
		orderID:       orderID,
		runID:         runID,
		note:          note,
		isConstructed: true,
	}, nil
}

// Validate returns ErrAssignmentIsNotConstructed for a nil or zero-value assignment.
func (a *Assignment) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAssignmentIsNotConstructed
	}
	return nil
}

// ID returns the assignment's unique identifier.
func (a *Assignment) ID() kernel.UUID {
	return a.id
}

// OrderID returns the assigned order.
func (a *Assignment) OrderID() kernel.UUID {
	return a.orderID
}

// RunID returns the run the order is assigned to.
func (a *Assignment) RunID() kernel.UUID {
	return a.runID
}

// Note returns the planner's free-text note, possibly empty.
func (a *Assignment) Note() string {
	return a.note
}

// IsOnRun reports whether the assignment links to the given run.
func (a *Assignment) IsOnRun(runID kernel.UUID) bool {
	return a.runID.IsEqual(runID)
}
