package services

import (
	"runplanner/internal/core/domain/model/fleet"
	"runplanner/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// Load is the aggregated manifest of a run against its ceiling.
type Load struct {
	TotalWeight    decimal.Decimal
	TotalSpaces    int
	Ceiling        fleet.Capacity
	HasCeiling     bool
	WeightExceeded bool
	SpacesExceeded bool
}

// IsOverloaded is true when either dimension strictly exceeds the ceiling.
// Runs without a ceiling are never overloaded.
func (l Load) IsOverloaded() bool {
	return l.WeightExceeded || l.SpacesExceeded
}

// CapacityAggregator sums cargo across a run's orders and compares the totals
// with the ceiling derived from fleet data.
type CapacityAggregator struct{}

func NewCapacityAggregator() CapacityAggregator {
	return CapacityAggregator{}
}

// Ceiling derives a run's limit. A rigid vehicle carries its own rating; a
// tractor unit takes the trailer's. A tractor without a trailer, or a missing
// vehicle, has no ceiling.
func (CapacityAggregator) Ceiling(vehicle *fleet.Vehicle, trailer *fleet.Trailer) (fleet.Capacity, bool) {
	if vehicle == nil {
		return fleet.Capacity{}, false
	}
	if c, ok := vehicle.Capacity(); ok {
		return c, true
	}
	if trailer == nil {
		return fleet.Capacity{}, false
	}
	return trailer.Capacity(), true
}

// Aggregate sums weight and pallet spaces of the given orders. Assigning past
// the ceiling is allowed; the result only flags it.
func (a CapacityAggregator) Aggregate(vehicle *fleet.Vehicle, trailer *fleet.Trailer, orders []*order.Order) Load {
	weight, spaces := decimal.Zero, 0
	for _, o := range orders {
		if o == nil {
			continue
		}
		weight = weight.Add(o.TotalWeight())
		spaces += o.TotalSpaces()
	}
	return a.Measure(vehicle, trailer, weight, spaces)
}

// Measure compares totals that were already summed, e.g. by the database,
// with the ceiling.
func (a CapacityAggregator) Measure(
	vehicle *fleet.Vehicle,
	trailer *fleet.Trailer,
	totalWeight decimal.Decimal,
	totalSpaces int,
) Load {
	ceiling, ok := a.Ceiling(vehicle, trailer)
	return a.Compare(ceiling, ok, totalWeight, totalSpaces)
}

// Compare checks totals against an already resolved ceiling. Planning views
// use it to preview a change from the ceiling they last received.
func (CapacityAggregator) Compare(ceiling fleet.Capacity, hasCeiling bool, totalWeight decimal.Decimal, totalSpaces int) Load {
	load := Load{TotalWeight: totalWeight, TotalSpaces: totalSpaces}
	if hasCeiling {
		load.Ceiling, load.HasCeiling = ceiling, true
		load.WeightExceeded = totalWeight.GreaterThan(ceiling.Weight)
		load.SpacesExceeded = totalSpaces > ceiling.Spaces
	}
	return load
}
