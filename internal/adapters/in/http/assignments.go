package http

import (
	"net/http"

	"runplanner/internal/core/application/usecases/commands"
	"runplanner/internal/core/application/usecases/views"

	"github.com/labstack/echo/v4"
)

// AssignOrder handles POST /api/v1/assignments.
func (s *Server) AssignOrder(c echo.Context) error {
	view, err := s.assignOrder(c)
	s.record("assign", err)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, view)
}

func (s *Server) assignOrder(c echo.Context) (views.Assignment, error) {
	var req NewAssignmentRequest
	if err := c.Bind(&req); err != nil {
		return views.Assignment{}, invalid("body", err)
	}
	orderID, err := uuidField("orderId", req.OrderID)
	if err != nil {
		return views.Assignment{}, err
	}
	runID, err := uuidField("runId", req.RunID)
	if err != nil {
		return views.Assignment{}, err
	}

	cmd, err := commands.NewAssignOrderCommand(workspaceOf(c), orderID, runID, req.Note)
	if err != nil {
		return views.Assignment{}, err
	}
	return s.handlers.AssignOrder.Handle(c.Request().Context(), cmd)
}

// UnassignOrder handles DELETE /api/v1/assignments/{assignmentId}.
func (s *Server) UnassignOrder(c echo.Context) error {
	err := s.unassignOrder(c)
	s.record("unassign", err)
	if err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) unassignOrder(c echo.Context) error {
	id, err := pathUUID(c, "assignmentId")
	if err != nil {
		return err
	}
	cmd, err := commands.NewUnassignOrderCommand(workspaceOf(c), id)
	if err != nil {
		return err
	}
	return s.handlers.UnassignOrder.Handle(c.Request().Context(), cmd)
}

// MoveOrder handles POST /api/v1/assignments/move.
func (s *Server) MoveOrder(c echo.Context) error {
	view, err := s.moveOrder(c)
	s.record("move", err)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

func (s *Server) moveOrder(c echo.Context) (views.Assignment, error) {
	var req MoveRequest
	if err := c.Bind(&req); err != nil {
		return views.Assignment{}, invalid("body", err)
	}
	orderID, err := uuidField("orderId", req.OrderID)
	if err != nil {
		return views.Assignment{}, err
	}
	fromRunID, err := uuidField("fromRunId", req.FromRunID)
	if err != nil {
		return views.Assignment{}, err
	}
	toRunID, err := uuidField("toRunId", req.ToRunID)
	if err != nil {
		return views.Assignment{}, err
	}

	cmd, err := commands.NewMoveOrderCommand(workspaceOf(c), orderID, fromRunID, toRunID)
	if err != nil {
		return views.Assignment{}, err
	}
	return s.handlers.MoveOrder.Handle(c.Request().Context(), cmd)
}

// BulkAssignOrders handles POST /api/v1/runs/{runId}/assignments/bulk.
func (s *Server) BulkAssignOrders(c echo.Context) error {
	result, err := s.bulkAssign(c)
	s.record("bulk_assign", err)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (s *Server) bulkAssign(c echo.Context) (views.BulkResult, error) {
	runID, err := pathUUID(c, "runId")
	if err != nil {
		return views.BulkResult{}, err
	}
	var req OrderIDsRequest
	if err = c.Bind(&req); err != nil {
		return views.BulkResult{}, invalid("body", err)
	}
	orderIDs, err := uuidFields("orderIds", req.OrderIDs)
	if err != nil {
		return views.BulkResult{}, err
	}

	cmd, err := commands.NewBulkAssignOrdersCommand(workspaceOf(c), runID, orderIDs)
	if err != nil {
		return views.BulkResult{}, err
	}
	return s.handlers.BulkAssign.Handle(c.Request().Context(), cmd)
}

// BulkUnassign handles POST /api/v1/assignments/bulk-delete.
func (s *Server) BulkUnassign(c echo.Context) error {
	result, err := s.bulkUnassign(c)
	s.record("bulk_unassign", err)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (s *Server) bulkUnassign(c echo.Context) (views.BulkResult, error) {
	var req AssignmentIDsRequest
	if err := c.Bind(&req); err != nil {
		return views.BulkResult{}, invalid("body", err)
	}
	ids, err := uuidFields("assignmentIds", req.AssignmentIDs)
	if err != nil {
		return views.BulkResult{}, err
	}

	cmd, err := commands.NewBulkUnassignCommand(workspaceOf(c), ids)
	if err != nil {
		return views.BulkResult{}, err
	}
	return s.handlers.BulkUnassign.Handle(c.Request().Context(), cmd)
}

// BulkRemoveOrders handles POST /api/v1/runs/{runId}/orders/remove.
func (s *Server) BulkRemoveOrders(c echo.Context) error {
	result, err := s.bulkRemove(c)
	s.record("bulk_remove", err)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (s *Server) bulkRemove(c echo.Context) (views.BulkResult, error) {
	runID, err := pathUUID(c, "runId")
	if err != nil {
		return views.BulkResult{}, err
	}
	var req OrderIDsRequest
	if err = c.Bind(&req); err != nil {
		return views.BulkResult{}, invalid("body", err)
	}
	orderIDs, err := uuidFields("orderIds", req.OrderIDs)
	if err != nil {
		return views.BulkResult{}, err
	}

	cmd, err := commands.NewBulkRemoveOrdersCommand(workspaceOf(c), runID, orderIDs)
	if err != nil {
		return views.BulkResult{}, err
	}
	return s.handlers.BulkRemove.Handle(c.Request().Context(), cmd)
}
