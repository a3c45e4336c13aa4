package commands

import (
	"context"

	"runplanner/internal/core/domain/model/order"
	"runplanner/internal/core/ports"
)

// CreateOrderCommandHandler handles order intake.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, publisher)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	// Order is now new and shows up on the planning board
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.SyncPublisher
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, publisher ports.SyncPublisher) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle creates the order in "new" status inside one transaction.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	o, err := order.NewOrder(cmd.OrderID(), cmd.Origin(), cmd.Destination(), cmd.Lines(), cmd.LoadingAt(), cmd.UnloadingAt())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishRefresh(ctx, h.publisher, cmd.Workspace())
	return nil
}
