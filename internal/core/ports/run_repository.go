package ports

import (
	"context"

	"runplanner/internal/core/domain/model/kernel"
	"runplanner/internal/core/domain/model/run"
)

// RunRepository defines the persistence contract for run aggregates.
type RunRepository interface {
	Add(ctx context.Context, aggregate *run.Run) error

	// Update persists status and soft-delete changes.
	Update(ctx context.Context, aggregate *run.Run) error

	// Get returns errs.ErrObjectNotFound for unknown or deleted runs.
	Get(ctx context.Context, id kernel.UUID) (*run.Run, error)

	// GetForUpdate locks the run row, serialising lifecycle transitions with
	// assignment changes on the same run.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*run.Run, error)
}
