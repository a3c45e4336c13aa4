// Package assignmentrepo persists order-to-run assignments. The unique index on
// order_id is what keeps an order on at most one run under concurrent writers.
package assignmentrepo

import (
	"time"

	"runplanner/internal/core/domain/model/assignment"
	"runplanner/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// UniqueOrderIndex names the index that rejects a second assignment of an order.
const UniqueOrderIndex = "ux_assignments_order_id"

type AssignmentDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_assignments_order_id"`
	RunID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Note      string    `gorm:"type:varchar(500)"`
	CreatedAt time.Time
}

func (AssignmentDTO) TableName() string {
	return "assignments"
}

func fromDomain(a *assignment.Assignment) AssignmentDTO {
	return AssignmentDTO{
		ID:      a.ID().Bytes(),
		OrderID: a.OrderID().Bytes(),
		RunID:   a.RunID().Bytes(),
		Note:    a.Note(),
	}
}

func toDomain(dto AssignmentDTO) (*assignment.Assignment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	runID, err := kernel.UUIDFromBytes(dto.RunID[:])
	if err != nil {
		return nil, err
	}
	return assignment.NewAssignment(id, orderID, runID, dto.Note)
}
