package queries

import (
	"context"
	"database/sql"

	"runplanner/internal/core/application/usecases/views"
	"runplanner/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// Problems reported by the consistency audit.
const (
	ProblemPlannedWithoutAssignment = "planned order has no assignment"
	ProblemNewWithAssignment        = "new order has an assignment"
	ProblemOrderMissing             = "assignment references a missing or deleted order"
	ProblemRunMissing               = "assignment references a missing or deleted run"
)

// AuditConsistencyQueryHandler is read-only. Repairs go through the regular
// commands; unassign removes dangling assignments.
type AuditConsistencyQueryHandler struct {
	db *gorm.DB
}

func NewAuditConsistencyQueryHandler(db *gorm.DB) AuditConsistencyQueryHandler {
	return AuditConsistencyQueryHandler{db: db}
}

func (h AuditConsistencyQueryHandler) Handle(ctx context.Context, query AuditConsistencyQuery) ([]views.Inconsistency, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT o.id::text, NULL::text, ?::text
		FROM orders o
		WHERE o.deleted = false AND o.status = ?
			AND NOT EXISTS (SELECT 1 FROM assignments a WHERE a.order_id = o.id)
		UNION ALL
		SELECT o.id::text, a.id::text, ?::text
		FROM orders o
		JOIN assignments a ON a.order_id = o.id
		WHERE o.deleted = false AND o.status = ?
		UNION ALL
		SELECT a.order_id::text, a.id::text, ?::text
		FROM assignments a
		LEFT JOIN orders o ON o.id = a.order_id
		WHERE o.id IS NULL OR o.deleted = true
		UNION ALL
		SELECT a.order_id::text, a.id::text, ?::text
		FROM assignments a
		LEFT JOIN runs r ON r.id = a.run_id
		WHERE r.id IS NULL OR r.deleted = true
		ORDER BY 3, 1
	`,
		ProblemPlannedWithoutAssignment, int(order.Planned),
		ProblemNewWithAssignment, int(order.New),
		ProblemOrderMissing,
		ProblemRunMissing,
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]views.Inconsistency, 0)
	for rows.Next() {
		var (
			orderID      string
			assignmentID sql.NullString
			problem      string
		)
		if err = rows.Scan(&orderID, &assignmentID, &problem); err != nil {
			return nil, err
		}
		result = append(result, views.Inconsistency{
			OrderID:      orderID,
			AssignmentID: assignmentID.String,
			Problem:      problem,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
