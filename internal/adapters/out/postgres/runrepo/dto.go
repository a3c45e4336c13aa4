// Package runrepo persists run aggregates.
package runrepo

import (
	"time"

	"runplanner/internal/core/domain/model/kernel"
	"runplanner/internal/core/domain/model/run"

	"github.com/google/uuid"
)

// RunDTO represents the database structure for persisting runs.
type RunDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Date      time.Time  `gorm:"type:date;not null;index"`
	Type      string     `gorm:"type:varchar(16);not null"`
	Status    int        `gorm:"type:smallint;not null"`
	DriverID  uuid.UUID  `gorm:"type:uuid;not null"`
	VehicleID uuid.UUID  `gorm:"type:uuid;not null;index"`
	TrailerID *uuid.UUID `gorm:"type:uuid"`
	Deleted   bool       `gorm:"not null;default:false"`
}

func (RunDTO) TableName() string {
	return "runs"
}

func fromDomain(aggregate *run.Run) RunDTO {
	var trailerID *uuid.UUID
	if id := aggregate.TrailerID(); id != nil {
		raw := id.Bytes()
		trailerID = &raw
	}

	return RunDTO{
		ID:        aggregate.ID().Bytes(),
		Date:      aggregate.Date(),
		Type:      string(aggregate.Type()),
		Status:    int(aggregate.Status()),
		DriverID:  aggregate.DriverID().Bytes(),
		VehicleID: aggregate.VehicleID().Bytes(),
		TrailerID: trailerID,
		Deleted:   aggregate.IsDeleted(),
	}
}

// ToDomain rebuilds a run from its row.
func ToDomain(dto RunDTO) (*run.Run, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	driverID, err := kernel.UUIDFromBytes(dto.DriverID[:])
	if err != nil {
		return nil, err
	}
	vehicleID, err := kernel.UUIDFromBytes(dto.VehicleID[:])
	if err != nil {
		return nil, err
	}

	var trailerID *kernel.UUID
	if dto.TrailerID != nil {
		tID, trailerErr := kernel.UUIDFromBytes((*dto.TrailerID)[:])
		if trailerErr != nil {
			return nil, trailerErr
		}
		trailerID = &tID
	}

	return run.RestoreRun(id, dto.Date, run.Type(dto.Type), run.Status(dto.Status), driverID, vehicleID, trailerID, dto.Deleted)
}
