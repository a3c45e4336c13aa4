package commands

import (
	"context"
	"errors"
	"slices"
	"strings"

	"runplanner/internal/core/application/usecases/views"
	"runplanner/internal/core/domain/model/fleet"
	"runplanner/internal/core/domain/model/kernel"
	"runplanner/internal/core/domain/model/run"
	"runplanner/internal/core/domain/services"
	"runplanner/internal/core/ports"
	"runplanner/internal/pkg/errs"
)

// DefaultWorkspace is used when a caller does not name a workspace.
const DefaultWorkspace = "default"

var ErrWorkspaceIsRequired = errs.NewValueIsRequiredError("workspace")

func validateWorkspace(workspace string) error {
	if strings.TrimSpace(workspace) == "" {
		return ErrWorkspaceIsRequired
	}
	return nil
}

// publishRefresh signals every view of the workspace. Delivery is best effort
// and transports log their own failures, so the result is dropped here.
func publishRefresh(ctx context.Context, publisher ports.SyncPublisher, workspace string) {
	if publisher == nil {
		return
	}
	_ = publisher.Publish(ctx, workspace)
}

type loadReader interface {
	OrderRepoFactory
	AssignmentRepoFactory
	FleetRepoFactory
}

// runSummary reads a run's label and current load inside the caller's transaction.
func runSummary(ctx context.Context, uow loadReader, r *run.Run) (string, services.Load, error) {
	assignments, err := uow.AssignmentRepository().ListByRun(ctx, r.ID())
	if err != nil {
		return "", services.Load{}, err
	}

	orderIDs := make([]kernel.UUID, 0, len(assignments))
	for _, a := range assignments {
		orderIDs = append(orderIDs, a.OrderID())
	}
	orders, err := uow.OrderRepository().GetMany(ctx, orderIDs)
	if err != nil {
		return "", services.Load{}, err
	}

	vehicle, trailer, err := fleetOf(ctx, uow.FleetRepository(), r)
	if err != nil {
		return "", services.Load{}, err
	}

	var vehicleReg, trailerReg string
	if vehicle != nil {
		vehicleReg = vehicle.Registration()
	}
	if trailer != nil {
		trailerReg = trailer.Registration()
	}

	label := views.RunLabel(r.Date(), r.Type(), vehicleReg, trailerReg)
	return label, services.NewCapacityAggregator().Aggregate(vehicle, trailer, orders), nil
}

// fleetOf resolves the run's vehicle and trailer. Missing reference rows yield
// nil rather than an error: the run simply has no ceiling.
func fleetOf(ctx context.Context, repo ports.FleetRepository, r *run.Run) (*fleet.Vehicle, *fleet.Trailer, error) {
	vehicle, err := repo.GetVehicle(ctx, r.VehicleID())
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, nil, err
	}

	var trailer *fleet.Trailer
	if id := r.TrailerID(); id != nil {
		trailer, err = repo.GetTrailer(ctx, *id)
		if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
			return nil, nil, err
		}
	}
	return vehicle, trailer, nil
}

func assignmentView(id, orderID, runID kernel.UUID, note, label string, load services.Load) views.Assignment {
	return views.Assignment{
		ID:       id.String(),
		OrderID:  orderID.String(),
		RunID:    runID.String(),
		Note:     note,
		RunLabel: label,
		Load:     views.NewLoad(load),
	}
}

// lockOrder returns ids sorted so that transactions locking several runs
// always take the row locks in the same order.
func lockOrder(ids ...kernel.UUID) []kernel.UUID {
	out := slices.Clone(ids)
	slices.SortFunc(out, func(a, b kernel.UUID) int {
		return strings.Compare(a.String(), b.String())
	})
	return out
}
