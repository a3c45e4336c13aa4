package http

import (
	"net/http"

	"runplanner/internal/core/application/usecases/commands"
	"runplanner/internal/core/application/usecases/queries"
	"runplanner/internal/core/domain/model/kernel"
	"runplanner/internal/core/domain/model/run"

	"github.com/labstack/echo/v4"
)

// ListRuns handles GET /api/v1/runs?date=.
func (s *Server) ListRuns(c echo.Context) error {
	date, err := queryDate(c, "date")
	if err != nil {
		return s.fail(c, err)
	}
	query, err := queries.NewListRunsWithLoadQuery(date)
	if err != nil {
		return s.fail(c, err)
	}

	runs, err := s.handlers.RunsWithLoad.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, runs)
}

// CreateRun handles POST /api/v1/runs.
func (s *Server) CreateRun(c echo.Context) error {
	err := s.createRun(c)
	s.record("create_run", err)
	if err != nil {
		return s.fail(c, err)
	}
	return nil
}

func (s *Server) createRun(c echo.Context) error {
	var req NewRunRequest
	if err := c.Bind(&req); err != nil {
		return invalid("body", err)
	}

	id, err := optionalUUID("id", req.ID)
	if err != nil {
		return err
	}
	runType, err := run.ParseType(req.Type)
	if err != nil {
		return err
	}
	driverID, err := uuidField("driverId", req.DriverID)
	if err != nil {
		return err
	}
	vehicleID, err := uuidField("vehicleId", req.VehicleID)
	if err != nil {
		return err
	}
	var trailerID *kernel.UUID
	if req.TrailerID != nil {
		tid, tErr := uuidField("trailerId", *req.TrailerID)
		if tErr != nil {
			return tErr
		}
		trailerID = &tid
	}

	cmd, err := commands.NewCreateRunCommand(workspaceOf(c), id, req.Date.Time, runType, driverID, vehicleID, trailerID)
	if err != nil {
		return err
	}
	if err = s.handlers.CreateRun.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, Created{ID: id.String()})
}

// StartRun handles POST /api/v1/runs/{runId}/start.
func (s *Server) StartRun(c echo.Context) error {
	err := s.startRun(c)
	s.record("start_run", err)
	if err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) startRun(c echo.Context) error {
	runID, err := pathUUID(c, "runId")
	if err != nil {
		return err
	}
	cmd, err := commands.NewStartRunCommand(workspaceOf(c), runID)
	if err != nil {
		return err
	}
	return s.handlers.RunTransition.Start(c.Request().Context(), cmd)
}

// CompleteRun handles POST /api/v1/runs/{runId}/complete.
func (s *Server) CompleteRun(c echo.Context) error {
	err := s.completeRun(c)
	s.record("complete_run", err)
	if err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) completeRun(c echo.Context) error {
	runID, err := pathUUID(c, "runId")
	if err != nil {
		return err
	}
	cmd, err := commands.NewCompleteRunCommand(workspaceOf(c), runID)
	if err != nil {
		return err
	}
	return s.handlers.RunTransition.Complete(c.Request().Context(), cmd)
}

// DeleteRun handles DELETE /api/v1/runs/{runId}.
func (s *Server) DeleteRun(c echo.Context) error {
	released, err := s.deleteRun(c)
	s.record("delete_run", err)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, DeletedRun{ReleasedOrders: released})
}

func (s *Server) deleteRun(c echo.Context) (int, error) {
	runID, err := pathUUID(c, "runId")
	if err != nil {
		return 0, err
	}
	cmd, err := commands.NewDeleteRunCommand(workspaceOf(c), runID)
	if err != nil {
		return 0, err
	}
	return s.handlers.DeleteRun.Handle(c.Request().Context(), cmd)
}
