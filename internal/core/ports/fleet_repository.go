package ports

import (
	"context"

	"runplanner/internal/core/domain/model/fleet"
	"runplanner/internal/core/domain/model/kernel"
)

// FleetRepository reads vehicle and trailer reference data.
type FleetRepository interface {
	GetVehicle(ctx context.Context, id kernel.UUID) (*fleet.Vehicle, error)
	GetTrailer(ctx context.Context, id kernel.UUID) (*fleet.Trailer, error)
	AddVehicle(ctx context.Context, v *fleet.Vehicle) error
	AddTrailer(ctx context.Context, t *fleet.Trailer) error
}
