package commands

import (
	"errors"

	"runplanner/internal/core/domain/model/kernel"
	"runplanner/internal/pkg/errs"
	"runplanner/internal/pkg/guard"
)

var (
	ErrBulkAssignOrdersCommandIsNotConstructed = errors.New(
		"BulkAssignOrdersCommand must be created via NewBulkAssignOrdersCommand constructor",
	)
	ErrBulkUnassignCommandIsNotConstructed = errors.New(
		"BulkUnassignCommand must be created via NewBulkUnassignCommand constructor",
	)
	ErrBulkRemoveOrdersCommandIsNotConstructed = errors.New(
		"BulkRemoveOrdersCommand must be created via NewBulkRemoveOrdersCommand constructor",
	)
	ErrIDsAreRequired = errs.NewValueIsRequiredError("ids")
)

// MaxBulkItems bounds one bulk request.
const MaxBulkItems = 500

func validateIDs(ids []kernel.UUID) error {
	if len(ids) == 0 {
		return ErrIDsAreRequired
	}
	if len(ids) > MaxBulkItems {
		return errs.NewValueIsOutOfRangeError("ids count", len(ids), 1, MaxBulkItems)
	}
	joined := make([]error, 0)
	for _, id := range ids {
		joined = append(joined, id.Validate())
	}
	return errors.Join(joined...)
}

// BulkAssignOrdersCommand assigns several orders to the same run. Each order
// is assigned in its own transaction; failures do not stop the batch.
type BulkAssignOrdersCommand struct {
	workspace string
	runID     kernel.UUID
	orderIDs  []kernel.UUID

	guard guard.ConstructorGuard
}

// NewBulkAssignOrdersCommand creates a command assigning each order to runID.
// Returns an error if orderIDs is empty, longer than MaxBulkItems or holds an
// unconstructed identifier.
func NewBulkAssignOrdersCommand(workspace string, runID kernel.UUID, orderIDs []kernel.UUID) (BulkAssignOrdersCommand, error) {
	if err := errors.Join(validateWorkspace(workspace), runID.Validate(), validateIDs(orderIDs)); err != nil {
		return BulkAssignOrdersCommand{}, err
	}

	return BulkAssignOrdersCommand{
		workspace: workspace,
		runID:     runID,
		orderIDs:  append([]kernel.UUID(nil), orderIDs...),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrBulkAssignOrdersCommandIsNotConstructed if validation fails.
func (c BulkAssignOrdersCommand) Validate() error {
	return c.guard.Validate(ErrBulkAssignOrdersCommandIsNotConstructed)
}

// Workspace returns the workspace whose viewers are refreshed after the change.
func (c BulkAssignOrdersCommand) Workspace() string {
	return c.workspace
}

// RunID returns the run the orders are assigned to.
func (c BulkAssignOrdersCommand) RunID() kernel.UUID {
	return c.runID
}

// OrderIDs returns the orders to process, in request order.
func (c BulkAssignOrdersCommand) OrderIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.orderIDs...)
}

// BulkUnassignCommand removes several assignments, each in its own transaction.
type BulkUnassignCommand struct {
	workspace     string
	assignmentIDs []kernel.UUID

	guard guard.ConstructorGuard
}

// NewBulkUnassignCommand creates a command removing each assignment.
// Returns an error if assignmentIDs is empty or longer than MaxBulkItems.
func NewBulkUnassignCommand(workspace string, assignmentIDs []kernel.UUID) (BulkUnassignCommand, error) {
	if err := errors.Join(validateWorkspace(workspace), validateIDs(assignmentIDs)); err != nil {
		return BulkUnassignCommand{}, err
	}

	return BulkUnassignCommand{
		workspace:     workspace,
		assignmentIDs: append([]kernel.UUID(nil), assignmentIDs...),
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrBulkUnassignCommandIsNotConstructed if validation fails.
func (c BulkUnassignCommand) Validate() error {
	return c.guard.Validate(ErrBulkUnassignCommandIsNotConstructed)
}

// Workspace returns the workspace whose viewers are refreshed after the change.
func (c BulkUnassignCommand) Workspace() string {
	return c.workspace
}

// AssignmentIDs returns the assignments to remove, in request order.
func (c BulkUnassignCommand) AssignmentIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.assignmentIDs...)
}

// BulkRemoveOrdersCommand takes the listed orders off one run. Orders are not
// deleted; they return to the pool of available orders.
type BulkRemoveOrdersCommand struct {
	workspace string
	runID     kernel.UUID
	orderIDs  []kernel.UUID

	guard guard.ConstructorGuard
}

// NewBulkRemoveOrdersCommand creates a command taking the orders off runID.
// Returns an error if orderIDs is empty or longer than MaxBulkItems.
func NewBulkRemoveOrdersCommand(workspace string, runID kernel.UUID, orderIDs []kernel.UUID) (BulkRemoveOrdersCommand, error) {
	if err := errors.Join(validateWorkspace(workspace), runID.Validate(), validateIDs(orderIDs)); err != nil {
		return BulkRemoveOrdersCommand{}, err
	}

	return BulkRemoveOrdersCommand{
		workspace: workspace,
		runID:     runID,
		orderIDs:  append([]kernel.UUID(nil), orderIDs...),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrBulkRemoveOrdersCommandIsNotConstructed if validation fails.
func (c BulkRemoveOrdersCommand) Validate() error {
	return c.guard.Validate(ErrBulkRemoveOrdersCommandIsNotConstructed)
}

// Workspace returns the workspace whose viewers are refreshed after the change.
func (c BulkRemoveOrdersCommand) Workspace() string {
	return c.workspace
}

// RunID returns the run the orders are removed from.
func (c BulkRemoveOrdersCommand) RunID() kernel.UUID {
	return c.runID
}

// OrderIDs returns the orders to process, in request order.
func (c BulkRemoveOrdersCommand) OrderIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.orderIDs...)
}
