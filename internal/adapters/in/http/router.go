package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// NewEcho builds the HTTP surface: the API under /api/v1, validated against
// the embedded OpenAPI document, plus /health, /metrics and /swagger.
func NewEcho(ctx context.Context, s *Server, gatherer prometheus.Gatherer) (*echo.Echo, error) {
	doc, err := LoadDocument(ctx)
	if err != nil {
		return nil, err
	}
	validator, err := RequestValidator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(validator)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	registerDoc()
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/api/v1")
	v1.GET("/orders/available", s.ListAvailableOrders)
	v1.POST("/orders", s.CreateOrder)
	v1.GET("/runs", s.ListRuns)
	v1.POST("/runs", s.CreateRun)
	v1.DELETE("/runs/:runId", s.DeleteRun)
	v1.POST("/runs/:runId/start", s.StartRun)
	v1.POST("/runs/:runId/complete", s.CompleteRun)
	v1.POST("/runs/:runId/assignments/bulk", s.BulkAssignOrders)
	v1.POST("/runs/:runId/orders/remove", s.BulkRemoveOrders)
	v1.POST("/assignments", s.AssignOrder)
	v1.DELETE("/assignments/:assignmentId", s.UnassignOrder)
	v1.POST("/assignments/move", s.MoveOrder)
	v1.POST("/assignments/bulk-delete", s.BulkUnassign)
	v1.POST("/vehicles", s.RegisterVehicle)
	v1.POST("/trailers", s.RegisterTrailer)
	v1.GET("/audit", s.AuditConsistency)
	v1.GET("/workspaces/:workspace/events", s.StreamEvents)

	return e, nil
}
