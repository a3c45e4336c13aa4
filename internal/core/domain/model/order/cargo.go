package order

import (
	"errors"
	"fmt"

	"runplanner/internal/pkg/errs"
	"runplanner/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCargoLineIsNotConstructed = errors.New("CargoLine must be created via NewCargoLine constructor")

// CargoLine is one manifest line: a quantity of one pallet type. Weight (kg) and
// Spaces (pallet spaces) are totals for the whole line, as written on the manifest.
type CargoLine struct {
	palletType string
	quantity   int
	weight     decimal.Decimal
	spaces     int

	guard guard.ConstructorGuard
}

// NewCargoLine creates a cargo line.
// Returns an error if palletType is empty or a quantity is out of range.
func NewCargoLine(palletType string, quantity int, weight decimal.Decimal, spaces int) (CargoLine, error) {
	line := CargoLine{
		palletType: palletType,
		quantity:   quantity,
		weight:     weight,
		spaces:     spaces,
		guard:      guard.NewConstructorGuard(),
	}

	var err error
	if palletType == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("pallet type"))
	}
	if quantity <= 0 {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity)))
	}
	if weight.IsNegative() {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("weight", fmt.Errorf("%s is negative", weight)))
	}
	if spaces < 0 {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("spaces", fmt.Errorf("%d is negative", spaces)))
	}
	if err != nil {
		return CargoLine{}, err
	}

	return line, nil
}

// Validate checks the line's fields.
func (l CargoLine) Validate() error {
	return l.guard.Validate(ErrCargoLineIsNotConstructed)
}

// PalletType returns the pallet type, for example "euro".
func (l CargoLine) PalletType() string {
	return l.palletType
}

// Quantity returns the number of pallets on the line.
func (l CargoLine) Quantity() int {
	return l.quantity
}

// Weight returns the line's total weight in kilograms.
func (l CargoLine) Weight() decimal.Decimal {
	return l.weight
}

// Spaces returns the pallet spaces the line occupies.
func (l CargoLine) Spaces() int {
	return l.spaces
}
