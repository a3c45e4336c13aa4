package queries

import (
	"context"
	"time"

	"runplanner/internal/core/application/usecases/views"
	"runplanner/internal/core/domain/model/kernel"
	"runplanner/internal/core/domain/model/order"
	"runplanner/internal/core/domain/services"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ListAvailableOrdersQueryHandler reads the planning board's order pool.
// Each row carries its cargo totals and is tagged with the zone side and
// zone names of both ends.
type ListAvailableOrdersQueryHandler struct {
	db         *gorm.DB
	classifier services.ZoneClassifier
}

func NewListAvailableOrdersQueryHandler(db *gorm.DB, classifier services.ZoneClassifier) ListAvailableOrdersQueryHandler {
	return ListAvailableOrdersQueryHandler{db: db, classifier: classifier}
}

// Handle returns orders in status new, not soft-deleted, with no assignment,
// ordered by loading time.
func (h ListAvailableOrdersQueryHandler) Handle(ctx context.Context, query ListAvailableOrdersQuery) ([]views.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	from := query.Date()
	to := from.Add(24 * time.Hour)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
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
		FROM orders o
		LEFT JOIN order_cargo_lines l ON l.order_id = o.id
		WHERE o.deleted = false
			AND o.status = ?
			AND NOT EXISTS (SELECT 1 FROM assignments a WHERE a.order_id = o.id)
			AND ((o.loading_at >= ? AND o.loading_at < ?) OR (o.unloading_at >= ? AND o.unloading_at < ?))
		GROUP BY o.id
		ORDER BY o.loading_at, o.id
	`, int(order.New), from, to, from, to).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]views.Order, 0)
	for rows.Next() {
		var (
			id             uuid.UUID
			status         int
			originPostcode string
			destPostcode   string
			totalWeight    decimal.Decimal
			orderView      views.Order
		)
		if err = rows.Scan(
			&id,
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
			return nil, err
		}

		orderView.ID = id.String()
		orderView.Status = order.Status(status).String()
		orderView.TotalWeight = totalWeight
		tagZones(h.classifier, &orderView, kernel.NewPostcode(originPostcode), kernel.NewPostcode(destPostcode))
		result = append(result, orderView)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func tagZones(classifier services.ZoneClassifier, v *views.Order, origin, destination kernel.Postcode) {
	v.OriginPostcode = origin.String()
	v.DestinationPostcode = destination.String()
	v.Side = string(classifier.SideOf(origin, destination))
	v.OriginZone, _ = classifier.Classify(origin)
	v.DestinationZone, _ = classifier.Classify(destination)
}
