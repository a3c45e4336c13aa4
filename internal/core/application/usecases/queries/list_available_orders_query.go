package queries

import (
	"errors"
	"time"

	"runplanner/internal/pkg/errs"
	"runplanner/internal/pkg/guard"
)

var (
	ErrListAvailableOrdersQueryIsNotConstructed = errors.New(
		"ListAvailableOrdersQuery must be created via NewListAvailableOrdersQuery constructor",
	)
	ErrDateIsRequired = errs.NewValueIsRequiredError("date")
)

// ListAvailableOrdersQuery lists the unassigned orders of one planning day.
// An order belongs to the day when it loads or unloads on it.
//
// Example:
//
//	query, err := NewListAvailableOrdersQuery(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))
//	if err != nil {
//	    return err
//	}
//	orders, err := handler.Handle(ctx, query)
type ListAvailableOrdersQuery struct {
	date time.Time

	guard guard.ConstructorGuard
}

func NewListAvailableOrdersQuery(date time.Time) (ListAvailableOrdersQuery, error) {
	if date.IsZero() {
		return ListAvailableOrdersQuery{}, ErrDateIsRequired
	}
	return ListAvailableOrdersQuery{date: startOfDay(date), guard: guard.NewConstructorGuard()}, nil
}

func (q ListAvailableOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListAvailableOrdersQueryIsNotConstructed)
}

// Date is the start of the planning day in UTC.
func (q ListAvailableOrdersQuery) Date() time.Time {
	return q.date
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
