package order

import (
	"errors"
	"fmt"
	"time"

	"runplanner/internal/core/domain/model/kernel"
	"runplanner/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned for an Order not built by NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
	// ErrCargoIsRequired is returned for an order without manifest lines.
	ErrCargoIsRequired = errs.NewValueIsRequiredError("cargo")
)

// Order is a shipment request and the aggregate root of its cargo manifest.
//
// Invariants:
//   - valid identifier and at least one valid cargo line
//   - unloading is not scheduled before loading
//   - status is changed by the planning core only through Plan and Release
type Order struct {
	id          kernel.UUID
	origin      kernel.Address
	destination kernel.Address
	lines       []CargoLine
	status      Status
	loadingAt   time.Time
	unloadingAt time.Time
	deleted     bool

	isConstructed bool
}

// NewOrder creates an order in New status, as order intake does.
func NewOrder(
	id kernel.UUID,
	origin, destination kernel.Address,
	lines []CargoLine,
	loadingAt, unloadingAt time.Time,
) (*Order, error) {
	return RestoreOrder(id, origin, destination, lines, New, loadingAt, unloadingAt, false)
}

// RestoreOrder rebuilds an order from storage with its persisted status and
// soft-delete flag.
func RestoreOrder(
	id kernel.UUID,
	origin, destination kernel.Address,
	lines []CargoLine,
	status Status,
	loadingAt, unloadingAt time.Time,
	deleted bool,
) (*Order, error) {
	o := &Order{
		origin:        origin,
		destination:   destination,
		deleted:       deleted,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setLines(lines),
		o.setStatus(status),
		o.setSchedule(loadingAt, unloadingAt),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the order was built through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Origin returns the collection address.
func (o *Order) Origin() kernel.Address {
	return o.origin
}

// Destination returns the delivery address.
func (o *Order) Destination() kernel.Address {
	return o.destination
}

// Lines returns a copy of the cargo manifest.
func (o *Order) Lines() []CargoLine {
	lines := make([]CargoLine, len(o.lines))
	copy(lines, o.lines)
	return lines
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// LoadingAt returns the planned loading time.
func (o *Order) LoadingAt() time.Time {
	return o.loadingAt
}

// UnloadingAt returns the planned unloading time.
func (o *Order) UnloadingAt() time.Time {
	return o.unloadingAt
}

// IsDeleted reports whether the order has been soft-deleted.
func (o *Order) IsDeleted() bool {
	return o.deleted
}

// IsAvailable reports whether the order can be put on a run.
func (o *Order) IsAvailable() bool {
	return !o.deleted && o.status == New
}

// TotalWeight sums line weights in kilograms.
func (o *Order) TotalWeight() decimal.Decimal {
	total := decimal.Zero
	for _, l := range o.lines {
		total = total.Add(l.Weight())
	}
	return total
}

// TotalSpaces sums line pallet spaces.
func (o *Order) TotalSpaces() int {
	total := 0
	for _, l := range o.lines {
		total += l.Spaces()
	}
	return total
}

// Plan marks the order as loaded onto a run.
func (o *Order) Plan() error {
	next, err := o.status.Plan()
	if err != nil {
		return err
	}
	o.status = next
	return nil
}

// Release returns the order to the pool of available orders.
func (o *Order) Release() error {
	next, err := o.status.Release()
	if err != nil {
		return err
	}
	o.status = next
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setLines(lines []CargoLine) error {
	if len(lines) == 0 {
		return ErrCargoIsRequired
	}
	for _, l := range lines {
		if err := l.Validate(); err != nil {
			return err
		}
	}
	o.lines = make([]CargoLine, len(lines))
	copy(o.lines, lines)
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setSchedule(loadingAt, unloadingAt time.Time) error {
	if !loadingAt.IsZero() && !unloadingAt.IsZero() && unloadingAt.Before(loadingAt) {
		return errs.NewValueIsInvalidErrorWithCause(
			"unloading time",
			fmt.Errorf("%s is before loading time %s", unloadingAt.Format(time.RFC3339), loadingAt.Format(time.RFC3339)),
		)
	}
	o.loadingAt = loadingAt
	o.unloadingAt = unloadingAt
	return nil
}
