package queries

import (
	"errors"
	"time"

	"runplanner/internal/pkg/guard"
)

var ErrListRunsWithLoadQueryIsNotConstructed = errors.New(
	"ListRunsWithLoadQuery must be created via NewListRunsWithLoadQuery constructor",
)

// ListRunsWithLoadQuery lists the runs of one day with their manifests and
// capacity load.
type ListRunsWithLoadQuery struct {
	date time.Time

	guard guard.ConstructorGuard
}

func NewListRunsWithLoadQuery(date time.Time) (ListRunsWithLoadQuery, error) {
	if date.IsZero() {
		return ListRunsWithLoadQuery{}, ErrDateIsRequired
	}
	return ListRunsWithLoadQuery{date: startOfDay(date), guard: guard.NewConstructorGuard()}, nil
}

func (q ListRunsWithLoadQuery) Validate() error {
	return q.guard.Validate(ErrListRunsWithLoadQueryIsNotConstructed)
}

func (q ListRunsWithLoadQuery) Date() time.Time {
	return q.date
}
