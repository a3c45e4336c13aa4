// Package fleet holds the read-only vehicle and trailer reference data the
// capacity aggregator derives run ceilings from.
package fleet

import (
	"errors"
	"fmt"

	"runplanner/internal/core/domain/model/kernel"
	"runplanner/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	ErrVehicleIsNotConstructed = errors.New("Vehicle must be created via NewVehicle constructor")
	ErrTrailerIsNotConstructed = errors.New("Trailer must be created via NewTrailer constructor")
)

// Kind tells whether a vehicle carries its own load or pulls a trailer.
type Kind string

const (
	Rigid   Kind = "rigid"
	Tractor Kind = "tractor"
)

// Validate returns an error for an unknown vehicle kind.
func (k Kind) Validate() error {
	if k != Rigid && k != Tractor {
		return errs.NewValueIsInvalidErrorWithCause("vehicle kind", fmt.Errorf("%q is not a vehicle kind", string(k)))
	}
	return nil
}

// Capacity is a payload rating: maximum weight in kilograms and pallet spaces.
type Capacity struct {
	Weight decimal.Decimal
	Spaces int
}

// NewCapacity creates a payload rating.
// Returns an error if weight or spaces is negative.
func NewCapacity(weight decimal.Decimal, spaces int) (Capacity, error) {
	if weight.IsNegative() {
		return Capacity{}, errs.NewValueIsInvalidErrorWithCause("payload weight", fmt.Errorf("%s is negative", weight))
	}
	if spaces < 0 {
		return Capacity{}, errs.NewValueIsInvalidErrorWithCause("pallet spaces", fmt.Errorf("%d is negative", spaces))
	}
	return Capacity{Weight: weight, Spaces: spaces}, nil
}

// Vehicle is a powered unit. Only rigid vehicles carry a rating of their own.
type Vehicle struct {
	id           kernel.UUID
	registration string
	kind         Kind
	capacity     Capacity

	isConstructed bool
}

// NewVehicle creates a vehicle.
// Returns an error if id is not constructed, registration is empty or kind is unknown.
func NewVehicle(id kernel.UUID, registration string, kind Kind, capacity Capacity) (*Vehicle, error) {
	var regErr error
	if registration == "" {
		regErr = errs.NewValueIsRequiredError("registration")
	}
	if err := errors.Join(id.Validate(), regErr, kind.Validate()); err != nil {
		return nil, err
	}
	return &Vehicle{
		id:            id,
		registration:  registration,
		kind:          kind,
		capacity:      capacity,
		isConstructed: true,
	}, nil
}

// Validate returns ErrVehicleIsNotConstructed for a nil or zero-value vehicle.
func (v *Vehicle) Validate() error {
	if v == nil || !v.isConstructed {
		return ErrVehicleIsNotConstructed
	}
	return nil
}

// ID returns the vehicle's unique identifier.
func (v *Vehicle) ID() kernel.UUID {
	return v.id
}

// Registration returns the vehicle's registration plate.
func (v *Vehicle) Registration() string {
	return v.registration
}

// Kind returns whether the vehicle is rigid or a tractor unit.
func (v *Vehicle) Kind() Kind {
	return v.kind
}

// RequiresTrailer reports whether the load ceiling comes from a trailer.
func (v *Vehicle) RequiresTrailer() bool {
	return v.kind == Tractor
}

// Capacity returns the vehicle's own rating; ok is false for tractor units.
func (v *Vehicle) Capacity() (Capacity, bool) {
	if v.RequiresTrailer() {
		return Capacity{}, false
	}
	return v.capacity, true
}

// Trailer is an unpowered load carrier pulled by a tractor unit.
type Trailer struct {
	id           kernel.UUID
	registration string
	capacity     Capacity

	isConstructed bool
}

// NewTrailer creates a trailer.
// Returns an error if id is not constructed or registration is empty.
func NewTrailer(id kernel.UUID, registration string, capacity Capacity) (*Trailer, error) {
	var regErr error
	if registration == "" {
		regErr = errs.NewValueIsRequiredError("registration")
	}
	if err := errors.Join(id.Validate(), regErr); err != nil {
		return nil, err
	}
	return &Trailer{id: id, registration: registration, capacity: capacity, isConstructed: true}, nil
}

// Validate returns ErrTrailerIsNotConstructed for a nil or zero-value trailer.
func (t *Trailer) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTrailerIsNotConstructed
	}
	return nil
}

// ID returns the trailer's unique identifier.
func (t *Trailer) ID() kernel.UUID {
	return t.id
}

// Registration returns the trailer's registration plate.
func (t *Trailer) Registration() string {
	return t.registration
}

// Capacity returns the trailer's payload rating.
func (t *Trailer) Capacity() Capacity {
	return t.capacity
}
