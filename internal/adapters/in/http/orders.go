package http

import (
	"net/http"

	"runplanner/internal/core/application/usecases/commands"
	"runplanner/internal/core/application/usecases/queries"
	"runplanner/internal/core/domain/model/fleet"

	"github.com/labstack/echo/v4"
)

// ListAvailableOrders handles GET /api/v1/orders/available?date=.
func (s *Server) ListAvailableOrders(c echo.Context) error {
	date, err := queryDate(c, "date")
	if err != nil {
		return s.fail(c, err)
	}
	query, err := queries.NewListAvailableOrdersQuery(date)
	if err != nil {
		return s.fail(c, err)
	}

	orders, err := s.handlers.AvailableOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	err := s.createOrder(c)
	s.record("create_order", err)
	if err != nil {
		return s.fail(c, err)
	}
	return nil
}

func (s *Server) createOrder(c echo.Context) error {
	var req NewOrderRequest
	if err := c.Bind(&req); err != nil {
		return invalid("body", err)
	}

	id, err := optionalUUID("id", req.ID)
	if err != nil {
		return err
	}
	lines, err := req.cargoLines()
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateOrderCommand(
		workspaceOf(c), id,
		req.Origin.toAddress(), req.Destination.toAddress(),
		lines, req.LoadingAt, req.UnloadingAt,
	)
	if err != nil {
		return err
	}
	if err = s.handlers.CreateOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, Created{ID: id.String()})
}

// RegisterVehicle handles POST /api/v1/vehicles.
func (s *Server) RegisterVehicle(c echo.Context) error {
	var req NewVehicleRequest
	if err := c.Bind(&req); err != nil {
		return s.fail(c, invalid("body", err))
	}

	id, err := optionalUUID("id", req.ID)
	if err != nil {
		return s.fail(c, err)
	}
	capacity, err := fleet.NewCapacity(req.PayloadWeight, req.PalletSpaces)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewRegisterVehicleCommand(id, req.Registration, fleet.Kind(req.Kind), capacity)
	if err != nil {
		return s.fail(c, err)
	}
	return s.registerFleet(c, cmd)
}

// RegisterTrailer handles POST /api/v1/trailers.
func (s *Server) RegisterTrailer(c echo.Context) error {
	var req NewTrailerRequest
	if err := c.Bind(&req); err != nil {
		return s.fail(c, invalid("body", err))
	}

	id, err := optionalUUID("id", req.ID)
	if err != nil {
		return s.fail(c, err)
	}
	capacity, err := fleet.NewCapacity(req.PayloadWeight, req.PalletSpaces)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewRegisterTrailerCommand(id, req.Registration, capacity)
	if err != nil {
		return s.fail(c, err)
	}
	return s.registerFleet(c, cmd)
}

func (s *Server) registerFleet(c echo.Context, cmd commands.RegisterFleetCommand) error {
	if err := s.handlers.RegisterFleet.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, Created{ID: cmd.UnitID().String()})
}

// AuditConsistency handles GET /api/v1/audit.
func (s *Server) AuditConsistency(c echo.Context) error {
	problems, err := s.handlers.Audit.Handle(c.Request().Context(), queries.NewAuditConsistencyQuery())
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, problems)
}
