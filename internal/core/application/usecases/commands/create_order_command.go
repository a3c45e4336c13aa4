package commands

import (
	"errors"
	"time"

	"runplanner/internal/core/domain/model/kernel"
	"runplanner/internal/core/domain/model/order"
	"runplanner/internal/pkg/errs"
	"runplanner/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrLoadingAtIsRequired = errs.NewValueIsRequiredError("loading time")
)

// CreateOrderCommand takes a new order in. The order starts as new and is
// immediately available for planning on its loading or unloading date.
//
// Example:
//
//	line, _ := order.NewCargoLine("euro", 4, decimal.NewFromInt(800), 4)
//	cmd, err := NewCreateOrderCommand("default", kernel.NewUUID(), origin, destination,
//	    []order.CargoLine{line}, loadingAt, unloadingAt)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	workspace   string
	orderID     kernel.UUID
	origin      kernel.Address
	destination kernel.Address
	lines       []order.CargoLine
	loadingAt   time.Time
	unloadingAt time.Time

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates identity and schedule; the manifest is
// validated again by the aggregate.
func NewCreateOrderCommand(
	workspace string,
	orderID kernel.UUID,
	origin, destination kernel.Address,
	lines []order.CargoLine,
	loadingAt, unloadingAt time.Time,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		workspace:   workspace,
		origin:      origin,
		destination: destination,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		validateWorkspace(workspace),
		cmd.setOrderID(orderID),
		cmd.setLines(lines),
		cmd.setSchedule(loadingAt, unloadingAt),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// Workspace returns the workspace whose viewers are refreshed after the change.
func (c CreateOrderCommand) Workspace() string {
	return c.workspace
}

// OrderID returns the order the command acts on.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Origin returns the collection address.
func (c CreateOrderCommand) Origin() kernel.Address {
	return c.origin
}

// Destination returns the delivery address.
func (c CreateOrderCommand) Destination() kernel.Address {
	return c.destination
}

// Lines returns the cargo lines of the order.
func (c CreateOrderCommand) Lines() []order.CargoLine {
	return append([]order.CargoLine(nil), c.lines...)
}

// LoadingAt returns the planned loading time.
func (c CreateOrderCommand) LoadingAt() time.Time {
	return c.loadingAt
}

// UnloadingAt returns the planned unloading time.
func (c CreateOrderCommand) UnloadingAt() time.Time {
	return c.unloadingAt
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setLines(lines []order.CargoLine) error {
	if len(lines) == 0 {
		return order.ErrCargoIsRequired
	}

	c.lines = append([]order.CargoLine(nil), lines...)
	return nil
}

func (c *CreateOrderCommand) setSchedule(loadingAt, unloadingAt time.Time) error {
	if loadingAt.IsZero() {
		return ErrLoadingAtIsRequired
	}

	c.loadingAt = loadingAt
	c.unloadingAt = unloadingAt
	return nil
}
