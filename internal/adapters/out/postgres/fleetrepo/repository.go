package fleetrepo

import (
	"context"
	"errors"

	"runplanner/internal/core/domain/model/fleet"
	"runplanner/internal/core/domain/model/kernel"
	"runplanner/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormFleetRepository implements FleetRepository using GORM.
type GormFleetRepository struct {
	db *gorm.DB
}

func NewGormFleetRepository(db *gorm.DB) *GormFleetRepository {
	return &GormFleetRepository{db: db}
}

func (r *GormFleetRepository) GetVehicle(ctx context.Context, id kernel.UUID) (*fleet.Vehicle, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto VehicleDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("vehicle", id.String())
		}
		return nil, err
	}
	return VehicleToDomain(dto)
}

func (r *GormFleetRepository) GetTrailer(ctx context.Context, id kernel.UUID) (*fleet.Trailer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TrailerDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("trailer", id.String())
		}
		return nil, err
	}
	return TrailerToDomain(dto)
}

func (r *GormFleetRepository) AddVehicle(ctx context.Context, v *fleet.Vehicle) error {
	if err := v.Validate(); err != nil {
		return err
	}
	dto := vehicleFromDomain(v)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormFleetRepository) AddTrailer(ctx context.Context, t *fleet.Trailer) error {
	if err := t.Validate(); err != nil {
		return err
	}
	dto := trailerFromDomain(t)
	return r.db.WithContext(ctx).Create(&dto).Error
}
