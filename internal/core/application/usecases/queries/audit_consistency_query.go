package queries

import (
	"errors"

	"runplanner/internal/pkg/guard"
)

var ErrAuditConsistencyQueryIsNotConstructed = errors.New(
	"AuditConsistencyQuery must be created via NewAuditConsistencyQuery constructor",
)

// AuditConsistencyQuery looks for rows that break the order status coherence
// rules: a planned order has exactly one assignment, a new order has none,
// and no assignment points at a deleted order or run.
type AuditConsistencyQuery struct {
	guard guard.ConstructorGuard
}

func NewAuditConsistencyQuery() AuditConsistencyQuery {
	return AuditConsistencyQuery{guard: guard.NewConstructorGuard()}
}

func (q AuditConsistencyQuery) Validate() error {
	return q.guard.Validate(ErrAuditConsistencyQueryIsNotConstructed)
}
