// Package commands contains the operations that change planning state.
// Every command follows the same pattern: constructor validation, one unit of
// work per transaction, and a single refresh signal after a successful commit.
package commands

import (
	"context"

	"runplanner/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	RunRepoFactory interface {
		RunRepository() ports.RunRepository
	}

	AssignmentRepoFactory interface {
		AssignmentRepository() ports.AssignmentRepository
	}

	FleetRepoFactory interface {
		FleetRepository() ports.FleetRepository
	}

	// OrderUoW manages transactions for order intake.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// RunUoW manages transactions that touch only runs and read fleet data.
	RunUoW interface {
		TxManager
		RunRepoFactory
		FleetRepoFactory
	}

	RunUoWFactory interface {
		Create() RunUoW
	}

	// UoW spans orders, runs, assignments and fleet data. Assignment
	// operations need all four in one transaction.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   r, err := uow.RunRepository().GetForUpdate(ctx, runID)
	//   o, err := uow.OrderRepository().GetForUpdate(ctx, orderID)
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		RunRepoFactory
		AssignmentRepoFactory
		FleetRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
