package http

import (
	"context"
	"log/slog"
	"time"

	"runplanner/internal/core/application/usecases/commands"
	"runplanner/internal/core/application/usecases/queries"
	"runplanner/internal/core/application/usecases/views"
	"runplanner/internal/core/ports"
)

// Use case contracts the server depends on. The command and query handlers of
// the application layer satisfy them.
type (
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) error
	}

	CreateRunHandler interface {
		Handle(ctx context.Context, cmd commands.CreateRunCommand) error
	}

	RegisterFleetHandler interface {
		Handle(ctx context.Context, cmd commands.RegisterFleetCommand) error
	}

	AssignOrderHandler interface {
		Handle(ctx context.Context, cmd commands.AssignOrderCommand) (views.Assignment, error)
	}

	UnassignOrderHandler interface {
		Handle(ctx context.Context, cmd commands.UnassignOrderCommand) error
	}

	MoveOrderHandler interface {
		Handle(ctx context.Context, cmd commands.MoveOrderCommand) (views.Assignment, error)
	}

	BulkAssignOrdersHandler interface {
		Handle(ctx context.Context, cmd commands.BulkAssignOrdersCommand) (views.BulkResult, error)
	}

	BulkUnassignHandler interface {
		Handle(ctx context.Context, cmd commands.BulkUnassignCommand) (views.BulkResult, error)
	}

	BulkRemoveOrdersHandler interface {
		Handle(ctx context.Context, cmd commands.BulkRemoveOrdersCommand) (views.BulkResult, error)
	}

	RunTransitionHandler interface {
		Start(ctx context.Context, cmd commands.StartRunCommand) error
		Complete(ctx context.Context, cmd commands.CompleteRunCommand) error
	}

	DeleteRunHandler interface {
		Handle(ctx context.Context, cmd commands.DeleteRunCommand) (int, error)
	}

	ListAvailableOrdersHandler interface {
		Handle(ctx context.Context, query queries.ListAvailableOrdersQuery) ([]views.Order, error)
	}

	ListRunsWithLoadHandler interface {
		Handle(ctx context.Context, query queries.ListRunsWithLoadQuery) ([]views.Run, error)
	}

	AuditConsistencyHandler interface {
		Handle(ctx context.Context, query queries.AuditConsistencyQuery) ([]views.Inconsistency, error)
	}

	// OperationRecorder counts handled operations by outcome.
	OperationRecorder interface {
		RecordOperation(operation string, err error)
	}
)

// Handlers groups the use cases exposed over HTTP.
type Handlers struct {
	CreateOrder     CreateOrderHandler
	CreateRun       CreateRunHandler
	RegisterFleet   RegisterFleetHandler
	AssignOrder     AssignOrderHandler
	UnassignOrder   UnassignOrderHandler
	MoveOrder       MoveOrderHandler
	BulkAssign      BulkAssignOrdersHandler
	BulkUnassign    BulkUnassignHandler
	BulkRemove      BulkRemoveOrdersHandler
	RunTransition   RunTransitionHandler
	DeleteRun       DeleteRunHandler
	AvailableOrders ListAvailableOrdersHandler
	RunsWithLoad    ListRunsWithLoadHandler
	Audit           AuditConsistencyHandler
}

// Server handles HTTP requests and delegates to the application use cases.
type Server struct {
	handlers   Handlers
	subscriber ports.SyncSubscriber
	recorder   OperationRecorder
	logger     *slog.Logger

	keepAlive time.Duration
}

// NewServer creates a server. recorder may be nil.
func NewServer(handlers Handlers, subscriber ports.SyncSubscriber, recorder OperationRecorder, logger *slog.Logger) *Server {
	return &Server{
		handlers:   handlers,
		subscriber: subscriber,
		recorder:   recorder,
		logger:     logger.With("component", "http_server"),
		keepAlive:  15 * time.Second,
	}
}

func (s *Server) record(operation string, err error) {
	if s.recorder != nil {
		s.recorder.RecordOperation(operation, err)
	}
}
