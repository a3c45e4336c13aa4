package commands

import (
	"context"

	"runplanner/internal/core/application/usecases/views"
	"runplanner/internal/core/ports"
)

// BulkAssignOrdersCommandHandler applies assign per order. Partial success is
// expected: each order either succeeds or is listed with its failure kind.
// One refresh is published for the whole batch when anything changed.
type BulkAssignOrdersCommandHandler struct {
	assign    AssignOrderCommandHandler
	publisher ports.SyncPublisher
}

// NewBulkAssignOrdersCommandHandler creates a handler that assigns orders one
// transaction at a time.
func NewBulkAssignOrdersCommandHandler(uowFactory UoWFactory, publisher ports.SyncPublisher) BulkAssignOrdersCommandHandler {
	return BulkAssignOrdersCommandHandler{
		assign:    NewAssignOrderCommandHandler(uowFactory, nil),
		publisher: publisher,
	}
}

// Handle assigns each order independently and reports per-item failures.
// A refresh is published once when at least one order succeeded.
func (h BulkAssignOrdersCommandHandler) Handle(ctx context.Context, cmd BulkAssignOrdersCommand) (views.BulkResult, error) {
	if err := cmd.Validate(); err != nil {
		return views.BulkResult{}, err
	}

	result := views.NewBulkResult()
	for _, orderID := range cmd.OrderIDs() {
		view, err := h.assign.assign(ctx, orderID, cmd.RunID(), "")
		if err != nil {
			result.AddFailure(orderID.String(), err)
			continue
		}
		result.AddSuccess()
		result.Assignments = append(result.Assignments, view)
	}

	if result.Succeeded > 0 {
		publishRefresh(ctx, h.publisher, cmd.Workspace())
	}
	return result, nil
}

// BulkUnassignCommandHandler applies unassign per assignment with the same
// partial-success reporting as bulk assign.
type BulkUnassignCommandHandler struct {
	unassign  UnassignOrderCommandHandler
	publisher ports.SyncPublisher
}

// NewBulkUnassignCommandHandler creates a handler that removes assignments one
// transaction at a time.
func NewBulkUnassignCommandHandler(uowFactory UoWFactory, publisher ports.SyncPublisher) BulkUnassignCommandHandler {
	return BulkUnassignCommandHandler{
		unassign:  NewUnassignOrderCommandHandler(uowFactory, nil),
		publisher: publisher,
	}
}

// Handle removes each assignment independently and reports per-item failures.
func (h BulkUnassignCommandHandler) Handle(ctx context.Context, cmd BulkUnassignCommand) (views.BulkResult, error) {
	if err := cmd.Validate(); err != nil {
		return views.BulkResult{}, err
	}

	result := views.NewBulkResult()
	for _, id := range cmd.AssignmentIDs() {
		if err := h.unassign.unassign(ctx, id); err != nil {
			result.AddFailure(id.String(), err)
			continue
		}
		result.AddSuccess()
	}

	if result.Succeeded > 0 {
		publishRefresh(ctx, h.publisher, cmd.Workspace())
	}
	return result, nil
}

// BulkRemoveOrdersCommandHandler takes orders off one run, one transaction
// per order. An order that is not on the run is reported as not found.
type BulkRemoveOrdersCommandHandler struct {
	unassign  UnassignOrderCommandHandler
	publisher ports.SyncPublisher
}

// NewBulkRemoveOrdersCommandHandler creates a handler that takes orders off a
// run one transaction at a time.
func NewBulkRemoveOrdersCommandHandler(uowFactory UoWFactory, publisher ports.SyncPublisher) BulkRemoveOrdersCommandHandler {
	return BulkRemoveOrdersCommandHandler{
		unassign:  NewUnassignOrderCommandHandler(uowFactory, nil),
		publisher: publisher,
	}
}

// Handle removes each order from the run independently and reports per-item
// failures.
func (h BulkRemoveOrdersCommandHandler) Handle(ctx context.Context, cmd BulkRemoveOrdersCommand) (views.BulkResult, error) {
	if err := cmd.Validate(); err != nil {
		return views.BulkResult{}, err
	}

	result := views.NewBulkResult()
	for _, orderID := range cmd.OrderIDs() {
		if err := h.unassign.removeFromRun(ctx, cmd.RunID(), orderID); err != nil {
			result.AddFailure(orderID.String(), err)
			continue
		}
		result.AddSuccess()
	}

	if result.Succeeded > 0 {
		publishRefresh(ctx, h.publisher, cmd.Workspace())
	}
	return result, nil
}
