package queries

import (
	"context"

	"runplanner/internal/core/application/usecases/views"
	"runplanner/internal/core/domain/model/fleet"
	"runplanner/internal/core/domain/model/kernel"
	"runplanner/internal/core/domain/model/order"
	"runplanner/internal/core/domain/model/run"
	"runplanner/internal/core/domain/services"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ListRunsWithLoadQueryHandler assembles the run side of the planning board:
// every live run of the day with its label, fleet registrations, assigned
// orders and load against the fleet ceiling.
//
// Runs whose vehicle or trailer row is missing are still listed; they simply
// have no ceiling.
type ListRunsWithLoadQueryHandler struct {
	db         *gorm.DB
	classifier services.ZoneClassifier
	aggregator services.CapacityAggregator
}

func NewListRunsWithLoadQueryHandler(db *gorm.DB, classifier services.ZoneClassifier) ListRunsWithLoadQueryHandler {
	return ListRunsWithLoadQueryHandler{
		db:         db,
		classifier: classifier,
		aggregator: services.NewCapacityAggregator(),
	}
}

type runRow struct {
	run      views.Run
	vehicle  *fleet.Vehicle
	trailer  *fleet.Trailer
	position int
}

func (h ListRunsWithLoadQueryHandler) Handle(ctx context.Context, query ListRunsWithLoadQuery) ([]views.Run, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	runs, ids, err := h.readRuns(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []views.Run{}, nil
	}

	if err = h.readManifests(ctx, runs, ids); err != nil {
		return nil, err
	}

	result := make([]views.Run, len(ids))
	for _, row := range runs {
		weight, spaces := decimal.Zero, 0
		for _, o := range row.run.Orders {
			weight = weight.Add(o.TotalWeight)
			spaces += o.TotalSpaces
		}
		row.run.Load = views.NewLoad(h.aggregator.Measure(row.vehicle, row.trailer, weight, spaces))
		result[row.position] = row.run
	}
	return result, nil
}

func (h ListRunsWithLoadQueryHandler) readRuns(
	ctx context.Context,
	query ListRunsWithLoadQuery,
) (map[uuid.UUID]*runRow, []uuid.UUID, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			r.id,
			r.type,
			r.status,
			r.driver_id,
			r.vehicle_id,
			r.trailer_id,
			v.registration,
			v.kind,
			v.payload_weight,
			v.pallet_spaces,
			t.registration,
			t.payload_weight,
			t.pallet_spaces
		FROM runs r
		LEFT JOIN vehicles v ON v.id = r.vehicle_id
		LEFT JOIN trailers t ON t.id = r.trailer_id
		WHERE r.deleted = false AND r.date = ?::date
		ORDER BY r.type, v.registration, r.id
	`, query.Date().Format(run.DateLayout)).Rows()
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	runs := make(map[uuid.UUID]*runRow)
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var (
			id, driverID, vehicleID uuid.UUID
			trailerID               *uuid.UUID
			runType                 string
			status                  int
			vehicleReg, vehicleKind *string
			vehicleWeight           decimal.NullDecimal
			vehicleSpaces           *int
			trailerReg              *string
			trailerWeight           decimal.NullDecimal
			trailerSpaces           *int
		)
		if err = rows.Scan(
			&id, &runType, &status, &driverID, &vehicleID, &trailerID,
			&vehicleReg, &vehicleKind, &vehicleWeight, &vehicleSpaces,
			&trailerReg, &trailerWeight, &trailerSpaces,
		); err != nil {
			return nil, nil, err
		}

		row := &runRow{position: len(ids)}
		row.run = views.Run{
			ID:        id.String(),
			Date:      query.Date().Format(run.DateLayout),
			Type:      runType,
			Status:    run.Status(status).String(),
			DriverID:  driverID.String(),
			VehicleID: vehicleID.String(),
			Orders:    []views.Order{},
		}
		if vehicleReg != nil {
			row.run.VehicleRegistration = *vehicleReg
			unitID, idErr := kernel.UUIDFromBytes(vehicleID[:])
			if idErr != nil {
				return nil, nil, idErr
			}
			row.vehicle, err = fleet.NewVehicle(unitID, *vehicleReg,
				fleet.Kind(deref(vehicleKind)), fleet.Capacity{Weight: vehicleWeight.Decimal, Spaces: deref(vehicleSpaces)})
			if err != nil {
				return nil, nil, err
			}
		}
		if trailerID != nil {
			row.run.TrailerID = trailerID.String()
		}
		if trailerID != nil && trailerReg != nil {
			row.run.TrailerRegistration = *trailerReg
			unitID, idErr := kernel.UUIDFromBytes(trailerID[:])
			if idErr != nil {
				return nil, nil, idErr
			}
			row.trailer, err = fleet.NewTrailer(unitID, *trailerReg,
				fleet.Capacity{Weight: trailerWeight.Decimal, Spaces: deref(trailerSpaces)})
			if err != nil {
				return nil, nil, err
			}
		}
		row.run.Label = views.RunLabel(query.Date(), run.Type(runType),
			row.run.VehicleRegistration, row.run.TrailerRegistration)

		runs[id] = row
		ids = append(ids, id)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}
	return runs, ids, nil
}

// readManifests attaches assigned orders to their runs in assignment order.
func (h ListRunsWithLoadQueryHandler) readManifests(ctx context.Context, runs map[uuid.UUID]*runRow, ids []uuid.UUID) error {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			a.id,
			a.run_id,
			o.id,
			o.status,
			o.origin_name,
			o.origin_postcode,
			o.destination_name,
			o.destination_postcode,
			o.loading_at,
			o.unloading_at,
			COALESCE(SUM(l.weight), 0) AS total_weight,
			COALESCE(SUM(l.spaces), 0) AS total_spaces
		FROM assignments a
		JOIN orders o ON o.id = a.order_id AND o.deleted = false
		LEFT JOIN order_cargo_lines l ON l.order_id = o.id
		WHERE a.run_id IN ?
		GROUP BY a.id, o.id
		ORDER BY a.created_at, a.id
	`, ids).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			assignmentID, runID, orderID uuid.UUID
			status                       int
			originPostcode, destPostcode string
			totalWeight                  decimal.Decimal
			orderView                    views.Order
		)
		if err = rows.Scan(
			&assignmentID,
			&runID,
			&orderID,
			&status,
			&orderView.OriginName,
			&originPostcode,
			&orderView.DestinationName,
			&destPostcode,
			&orderView.LoadingAt,
			&orderView.UnloadingAt,
			&totalWeight,
			&orderView.TotalSpaces,
		); err != nil {
			return err
		}

		row, ok := runs[runID]
		if !ok {
			continue
		}
		orderView.ID = orderID.String()
		orderView.AssignmentID = assignmentID.String()
		orderView.Status = order.Status(status).String()
		orderView.TotalWeight = totalWeight

		tagZones(h.classifier, &orderView, kernel.NewPostcode(originPostcode), kernel.NewPostcode(destPostcode))

		row.run.Orders = append(row.run.Orders, orderView)
	}

	return rows.Err()
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
