// Package views maps domain state to the read shapes returned to planning
// clients. Everything here is derived on each read and never persisted.
package views

import (
	"time"

	"runplanner/internal/core/domain/model/run"
	"runplanner/internal/core/domain/services"
	"runplanner/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// RunLabel renders the human-readable run name, e.g.
// "2026-03-02 Delivery AB12 CDE+TRL 7".
func RunLabel(date time.Time, runType run.Type, vehicleReg, trailerReg string) string {
	label := date.Format(run.DateLayout) + " " + runType.Title()
	if vehicleReg != "" {
		label += " " + vehicleReg
	}
	if trailerReg != "" {
		label += "+" + trailerReg
	}
	return label
}

// Load is the capacity summary of one run.
type Load struct {
	TotalWeight    decimal.Decimal  `json:"totalWeight"`
	TotalSpaces    int              `json:"totalSpaces"`
	HasCeiling     bool             `json:"hasCeiling"`
	CeilingWeight  *decimal.Decimal `json:"ceilingWeight,omitempty"`
	CeilingSpaces  *int             `json:"ceilingSpaces,omitempty"`
	WeightExceeded bool             `json:"weightExceeded"`
	SpacesExceeded bool             `json:"spacesExceeded"`
	Overloaded     bool             `json:"overloaded"`
}

func NewLoad(l services.Load) Load {
	v := Load{
		TotalWeight:    l.TotalWeight,
		TotalSpaces:    l.TotalSpaces,
		HasCeiling:     l.HasCeiling,
		WeightExceeded: l.WeightExceeded,
		SpacesExceeded: l.SpacesExceeded,
		Overloaded:     l.IsOverloaded(),
	}
	if l.HasCeiling {
		w, s := l.Ceiling.Weight, l.Ceiling.Spaces
		v.CeilingWeight = &w
		v.CeilingSpaces = &s
	}
	return v
}

// Assignment is an assignment enriched with its run label and the run's load
// after the change.
type Assignment struct {
	ID       string `json:"id"`
	OrderID  string `json:"orderId"`
	RunID    string `json:"runId"`
	Note     string `json:"note,omitempty"`
	RunLabel string `json:"runLabel"`
	Load     Load   `json:"load"`
}

// Order is one row of the planning board.
type Order struct {
	ID                  string          `json:"id"`
	Status              string          `json:"status"`
	OriginName          string          `json:"originName"`
	OriginPostcode      string          `json:"originPostcode"`
	DestinationName     string          `json:"destinationName"`
	DestinationPostcode string          `json:"destinationPostcode"`
	Side                string          `json:"side,omitempty"`
	OriginZone          string          `json:"originZone,omitempty"`
	DestinationZone     string          `json:"destinationZone,omitempty"`
	LoadingAt           time.Time       `json:"loadingAt"`
	UnloadingAt         time.Time       `json:"unloadingAt"`
	TotalWeight         decimal.Decimal `json:"totalWeight"`
	TotalSpaces         int             `json:"totalSpaces"`
	AssignmentID        string          `json:"assignmentId,omitempty"`
}

// Run is a run with its manifest and current load.
type Run struct {
	ID                  string  `json:"id"`
	Date                string  `json:"date"`
	Type                string  `json:"type"`
	Status              string  `json:"status"`
	Label               string  `json:"label"`
	DriverID            string  `json:"driverId"`
	VehicleID           string  `json:"vehicleId"`
	VehicleRegistration string  `json:"vehicleRegistration"`
	TrailerID           string  `json:"trailerId,omitempty"`
	TrailerRegistration string  `json:"trailerRegistration,omitempty"`
	Orders              []Order `json:"orders"`
	Load                Load    `json:"load"`
}

// BulkFailure names one item a bulk operation could not apply.
type BulkFailure struct {
	ID      string    `json:"id"`
	Kind    errs.Kind `json:"kind"`
	Message string    `json:"message"`
}

// BulkResult reports per-item outcomes of a bulk operation.
type BulkResult struct {
	Succeeded   int           `json:"succeeded"`
	Failed      int           `json:"failed"`
	Failures    []BulkFailure `json:"failures"`
	Assignments []Assignment  `json:"assignments,omitempty"`
}

func NewBulkResult() BulkResult {
	return BulkResult{Failures: []BulkFailure{}}
}

func (r *BulkResult) AddSuccess() {
	r.Succeeded++
}

func (r *BulkResult) AddFailure(id string, err error) {
	r.Failed++
	r.Failures = append(r.Failures, BulkFailure{ID: id, Kind: errs.KindOf(err), Message: err.Error()})
}

// Inconsistency is one violation found by the consistency audit.
type Inconsistency struct {
	OrderID      string `json:"orderId,omitempty"`
	AssignmentID string `json:"assignmentId,omitempty"`
	Problem      string `json:"problem"`
}
