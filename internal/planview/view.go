// Package planview is the client side of the planning board. A View holds
// what one planning window displays: the last server-confirmed snapshot plus
// at most one optimistic change in flight. Failed changes roll back to the
// confirmed snapshot; refresh signals refetch it.
package planview

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"runplanner/internal/core/application/usecases/views"
	"runplanner/internal/core/domain/model/fleet"
	"runplanner/internal/core/domain/services"
	"runplanner/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const (
	statusNew     = "new"
	statusPlanned = "planned"
)

// API is the server surface a View talks to.
type API interface {
	AvailableOrders(ctx context.Context, date time.Time) ([]views.Order, error)
	Runs(ctx context.Context, date time.Time) ([]views.Run, error)
	Assign(ctx context.Context, orderID, runID, note string) (views.Assignment, error)
	Unassign(ctx context.Context, assignmentID string) error
	Move(ctx context.Context, orderID, fromRunID, toRunID string) (views.Assignment, error)
	BulkAssign(ctx context.Context, runID string, orderIDs []string) (views.BulkResult, error)
}

// Snapshot is the board for one day.
type Snapshot struct {
	Date      time.Time
	Available []views.Order
	Runs      []views.Run
}

func (s Snapshot) clone() Snapshot {
	out := Snapshot{Date: s.Date, Available: slices.Clone(s.Available), Runs: slices.Clone(s.Runs)}
	for i := range out.Runs {
		out.Runs[i].Orders = slices.Clone(out.Runs[i].Orders)
	}
	return out
}

func (s *Snapshot) run(id string) *views.Run {
	for i := range s.Runs {
		if s.Runs[i].ID == id {
			return &s.Runs[i]
		}
	}
	return nil
}

func (s *Snapshot) takeAvailable(orderID string) (views.Order, bool) {
	for i, o := range s.Available {
		if o.ID == orderID {
			s.Available = slices.Delete(s.Available, i, i+1)
			return o, true
		}
	}
	return views.Order{}, false
}

// View is safe for concurrent use. Mutations are serialised so that a
// rollback never discards another change's optimistic state.
type View struct {
	api    API
	date   time.Time
	logger *slog.Logger

	opMu      sync.Mutex
	mu        sync.RWMutex
	confirmed Snapshot
	current   Snapshot
}

func NewView(api API, date time.Time, logger *slog.Logger) *View {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return &View{
		api:       api,
		date:      day,
		logger:    logger.With("component", "planview"),
		confirmed: Snapshot{Date: day},
		current:   Snapshot{Date: day},
	}
}

// Snapshot returns what the window displays, optimistic changes included.
func (v *View) Snapshot() Snapshot {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.current.clone()
}

// Confirmed returns the last state the server confirmed.
func (v *View) Confirmed() Snapshot {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.confirmed.clone()
}

// Refresh refetches the board. It waits for a change in flight to settle.
func (v *View) Refresh(ctx context.Context) error {
	v.opMu.Lock()
	defer v.opMu.Unlock()

	available, err := v.api.AvailableOrders(ctx, v.date)
	if err != nil {
		return err
	}
	runs, err := v.api.Runs(ctx, v.date)
	if err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.confirmed = Snapshot{Date: v.date, Available: available, Runs: runs}
	v.current = v.confirmed.clone()
	return nil
}

// Watch refreshes on every signal until ctx ends or signals is closed.
// A failed refresh is logged; the next signal retries.
func (v *View) Watch(ctx context.Context, signals <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-signals:
			if !ok {
				return
			}
			if err := v.Refresh(ctx); err != nil && ctx.Err() == nil {
				v.logger.WarnContext(ctx, "refresh failed", "error", err)
			}
		}
	}
}

// optimistic applies change to the displayed state, then asks the server.
// On failure the display returns to the confirmed snapshot; on success
// reconcile folds the server's answer in and the result becomes confirmed.
func (v *View) optimistic(change func(s *Snapshot) error, call func() error, reconcile func(s *Snapshot)) error {
	v.opMu.Lock()
	defer v.opMu.Unlock()

	v.mu.Lock()
	err := change(&v.current)
	v.mu.Unlock()
	if err != nil {
		return err
	}

	if err = call(); err != nil {
		v.mu.Lock()
		v.current = v.confirmed.clone()
		v.mu.Unlock()
		return err
	}

	v.mu.Lock()
	reconcile(&v.current)
	v.confirmed = v.current.clone()
	v.mu.Unlock()
	return nil
}

// Assign moves an available order onto a run.
func (v *View) Assign(ctx context.Context, orderID, runID, note string) (views.Assignment, error) {
	var confirmed views.Assignment
	err := v.optimistic(
		func(s *Snapshot) error {
			r := s.run(runID)
			if r == nil {
				return errs.NewObjectNotFoundError("run", runID)
			}
			o, ok := s.takeAvailable(orderID)
			if !ok {
				return errs.NewObjectNotFoundError("available order", orderID)
			}
			o.Status = statusPlanned
			r.Orders = append(r.Orders, o)
			r.Load = preview(r.Load, o.TotalWeight, o.TotalSpaces)
			return nil
		},
		func() (err error) {
			confirmed, err = v.api.Assign(ctx, orderID, runID, note)
			return err
		},
		func(s *Snapshot) {
			applyAssignment(s, orderID, confirmed)
		},
	)
	return confirmed, err
}

// Unassign returns an order to the available list.
func (v *View) Unassign(ctx context.Context, assignmentID string) error {
	return v.optimistic(
		func(s *Snapshot) error {
			for i := range s.Runs {
				r := &s.Runs[i]
				for j, o := range r.Orders {
					if o.AssignmentID != assignmentID {
						continue
					}
					r.Orders = slices.Delete(r.Orders, j, j+1)
					r.Load = preview(r.Load, o.TotalWeight.Neg(), -o.TotalSpaces)
					o.Status, o.AssignmentID = statusNew, ""
					s.Available = append(s.Available, o)
					return nil
				}
			}
			return errs.NewObjectNotFoundError("assignment", assignmentID)
		},
		func() error {
			return v.api.Unassign(ctx, assignmentID)
		},
		func(*Snapshot) {},
	)
}

// Move transfers an order between two runs.
func (v *View) Move(ctx context.Context, orderID, fromRunID, toRunID string) (views.Assignment, error) {
	var confirmed views.Assignment
	err := v.optimistic(
		func(s *Snapshot) error {
			from, to := s.run(fromRunID), s.run(toRunID)
			if from == nil {
				return errs.NewObjectNotFoundError("run", fromRunID)
			}
			if to == nil {
				return errs.NewObjectNotFoundError("run", toRunID)
			}
			idx := slices.IndexFunc(from.Orders, func(o views.Order) bool { return o.ID == orderID })
			if idx < 0 {
				return errs.NewObjectNotFoundError("order", orderID)
			}
			o := from.Orders[idx]
			from.Orders = slices.Delete(from.Orders, idx, idx+1)
			from.Load = preview(from.Load, o.TotalWeight.Neg(), -o.TotalSpaces)
			to.Orders = append(to.Orders, o)
			to.Load = preview(to.Load, o.TotalWeight, o.TotalSpaces)
			return nil
		},
		func() (err error) {
			confirmed, err = v.api.Move(ctx, orderID, fromRunID, toRunID)
			return err
		},
		func(s *Snapshot) {
			applyAssignment(s, orderID, confirmed)
		},
	)
	return confirmed, err
}

// BulkAssign assigns several available orders to one run. Orders the server
// rejected go back to the available list; the rest stay on the run.
func (v *View) BulkAssign(ctx context.Context, runID string, orderIDs []string) (views.BulkResult, error) {
	v.opMu.Lock()
	defer v.opMu.Unlock()

	v.mu.Lock()
	r := v.current.run(runID)
	if r == nil {
		v.mu.Unlock()
		return views.BulkResult{}, errs.NewObjectNotFoundError("run", runID)
	}
	for _, id := range orderIDs {
		if o, ok := v.current.takeAvailable(id); ok {
			o.Status = statusPlanned
			r.Orders = append(r.Orders, o)
			r.Load = preview(r.Load, o.TotalWeight, o.TotalSpaces)
		}
	}
	v.mu.Unlock()

	result, err := v.api.BulkAssign(ctx, runID, orderIDs)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.current = v.confirmed.clone()
	if err != nil {
		return views.BulkResult{}, err
	}
	for _, a := range result.Assignments {
		if o, ok := v.current.takeAvailable(a.OrderID); ok {
			o.Status = statusPlanned
			if target := v.current.run(a.RunID); target != nil {
				target.Orders = append(target.Orders, o)
			}
		}
		applyAssignment(&v.current, a.OrderID, a)
	}
	v.confirmed = v.current.clone()
	return result, nil
}

// applyAssignment stamps the server's assignment id on the order and takes
// the run load the server computed.
func applyAssignment(s *Snapshot, orderID string, a views.Assignment) {
	r := s.run(a.RunID)
	if r == nil {
		return
	}
	r.Load = a.Load
	for i := range r.Orders {
		if r.Orders[i].ID == orderID {
			r.Orders[i].AssignmentID = a.ID
			r.Orders[i].Status = statusPlanned
		}
	}
}

// preview recomputes a run's load locally after adding (or, with negative
// deltas, removing) cargo, against the ceiling the server last reported.
func preview(load views.Load, weight decimal.Decimal, spaces int) views.Load {
	var ceiling fleet.Capacity
	if load.HasCeiling && load.CeilingWeight != nil && load.CeilingSpaces != nil {
		ceiling = fleet.Capacity{Weight: *load.CeilingWeight, Spaces: *load.CeilingSpaces}
	}
	return views.NewLoad(services.NewCapacityAggregator().Compare(
		ceiling, load.HasCeiling, load.TotalWeight.Add(weight), load.TotalSpaces+spaces,
	))
}
