// Package fleetrepo reads vehicle and trailer reference data.
package fleetrepo

import (
	"runplanner/internal/core/domain/model/fleet"
	"runplanner/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type VehicleDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Registration  string          `gorm:"type:varchar(16);not null;uniqueIndex"`
	Kind          string          `gorm:"type:varchar(16);not null"`
	PayloadWeight decimal.Decimal `gorm:"type:numeric(12,3);not null"`
	PalletSpaces  int             `gorm:"not null"`
}

func (VehicleDTO) TableName() string {
	return "vehicles"
}

type TrailerDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Registration  string          `gorm:"type:varchar(16);not null;uniqueIndex"`
	PayloadWeight decimal.Decimal `gorm:"type:numeric(12,3);not null"`
	PalletSpaces  int             `gorm:"not null"`
}

func (TrailerDTO) TableName() string {
	return "trailers"
}

func vehicleFromDomain(v *fleet.Vehicle) VehicleDTO {
	dto := VehicleDTO{
		ID:            v.ID().Bytes(),
		Registration:  v.Registration(),
		Kind:          string(v.Kind()),
		PayloadWeight: decimal.Zero,
	}
	if c, ok := v.Capacity(); ok {
		dto.PayloadWeight = c.Weight
		dto.PalletSpaces = c.Spaces
	}
	return dto
}

// VehicleToDomain rebuilds a vehicle from its row.
func VehicleToDomain(dto VehicleDTO) (*fleet.Vehicle, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return fleet.NewVehicle(id, dto.Registration, fleet.Kind(dto.Kind), fleet.Capacity{
		Weight: dto.PayloadWeight,
		Spaces: dto.PalletSpaces,
	})
}

func trailerFromDomain(t *fleet.Trailer) TrailerDTO {
	return TrailerDTO{
		ID:            t.ID().Bytes(),
		Registration:  t.Registration(),
		PayloadWeight: t.Capacity().Weight,
		PalletSpaces:  t.Capacity().Spaces,
	}
}

// TrailerToDomain rebuilds a trailer from its row.
func TrailerToDomain(dto TrailerDTO) (*fleet.Trailer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return fleet.NewTrailer(id, dto.Registration, fleet.Capacity{
		Weight: dto.PayloadWeight,
		Spaces: dto.PalletSpaces,
	})
}
