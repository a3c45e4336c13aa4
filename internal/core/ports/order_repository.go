// Package ports defines the contracts between the planning core and its
// infrastructure: repositories bound to a unit of work, and the sync publisher.
package ports

import (
	"context"

	"runplanner/internal/core/domain/model/kernel"
	"runplanner/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Soft-deleted orders are never returned.
type OrderRepository interface {
	// Add persists a new order together with its cargo lines.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists status changes of an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its identifier.
	// Returns errs.ErrObjectNotFound when the order does not exist or is deleted.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order and locks its row until the surrounding
	// transaction ends. Concurrent assignment attempts of the same order queue here.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetMany retrieves the listed orders, skipping unknown ids.
	GetMany(ctx context.Context, ids []kernel.UUID) ([]*order.Order, error)
}
