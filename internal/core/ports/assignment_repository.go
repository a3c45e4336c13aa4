package ports

import (
	"context"

	"runplanner/internal/core/domain/model/assignment"
	"runplanner/internal/core/domain/model/kernel"
)

// AssignmentRepository defines the persistence contract for order-to-run links.
type AssignmentRepository interface {
	// Add persists a new assignment. Returns errs.ErrAlreadyAssigned when the
	// order already holds an assignment, including one committed concurrently.
	Add(ctx context.Context, a *assignment.Assignment) error

	Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error)

	// GetByOrder returns the order's assignment or errs.ErrObjectNotFound.
	GetByOrder(ctx context.Context, orderID kernel.UUID) (*assignment.Assignment, error)

	ListByRun(ctx context.Context, runID kernel.UUID) ([]*assignment.Assignment, error)

	// Delete removes the assignment row, freeing the order for a new assignment.
	Delete(ctx context.Context, id kernel.UUID) error
}
