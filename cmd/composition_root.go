package cmd

import (
	"context"
	"fmt"
	"log/slog"

	httpin "runplanner/internal/adapters/in/http"
	"runplanner/internal/adapters/out/metrics"
	"runplanner/internal/adapters/out/postgres"
	"runplanner/internal/adapters/out/syncbus"
	"runplanner/internal/core/application/usecases/commands"
	"runplanner/internal/core/application/usecases/queries"
	"runplanner/internal/core/domain/model/zone"
	"runplanner/internal/core/domain/services"
	"runplanner/internal/core/ports"
	"runplanner/internal/jobs"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

// syncTransport is a refresh signal transport shared by command handlers
// (publishing) and the event stream (subscribing).
type syncTransport interface {
	ports.SyncPublisher
	ports.SyncSubscriber
}

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	classifier services.ZoneClassifier
	registry   *prometheus.Registry
	sink       *metrics.PromSink
	hub        *syncbus.Hub
	transport  syncTransport
	publisher  ports.SyncPublisher
	background []func(ctx context.Context) error
	closers    []func()
	logger     *slog.Logger
}

// NewCompositionRoot wires the planner around gormDB. The configured sync
// transport is connected here; Run starts its background loops and Close
// releases it.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, zones zone.Set, logger *slog.Logger) (*CompositionRoot, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	sink, err := metrics.NewPromSink(registry)
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}

	c := &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		classifier: services.NewZoneClassifier(zones),
		registry:   registry,
		sink:       sink,
		hub:        syncbus.NewHub(),
		logger:     logger,
	}
	c.closers = append(c.closers, c.hub.Close)

	if err = c.connectSync(); err != nil {
		c.Close()
		return nil, err
	}
	c.publisher = syncbus.NewInstrumented(c.transport, cfg.SyncTransport, sink, logger)
	return c, nil
}

func (c *CompositionRoot) connectSync() error {
	switch c.cfg.SyncTransport {
	case SyncPostgres:
		listener := syncbus.NewPostgresListener(c.cfg.DSN(), c.logger)
		transport := syncbus.NewPostgresTransport(c.gormDB, listener, c.hub, c.logger)
		c.transport = transport
		c.background = append(c.background, transport.Run)
		c.closers = append(c.closers, func() { _ = transport.Close() })
	case SyncMQTT:
		client, err := syncbus.NewMQTTClient(c.cfg.MQTTBroker, c.cfg.MQTTClientID, func(o *mqtt.ClientOptions) {
			if c.cfg.MQTTUsername != "" {
				o.SetUsername(c.cfg.MQTTUsername)
				o.SetPassword(c.cfg.MQTTPassword)
			}
		})
		if err != nil {
			return fmt.Errorf("mqtt connect: %w", err)
		}
		transport := syncbus.NewMQTTTransport(client, c.hub, byte(c.cfg.MQTTQoS), c.logger)
		c.closers = append(c.closers, transport.Close)
		if err = transport.Start(); err != nil {
			return err
		}
		c.transport = transport
	default:
		c.transport = c.hub
	}
	return nil
}

// Run blocks running the transport loops until ctx is cancelled or one of
// them fails.
func (c *CompositionRoot) Run(ctx context.Context) error {
	errc := make(chan error, len(c.background))
	for _, run := range c.background {
		go func() { errc <- run(ctx) }()
	}
	for range c.background {
		select {
		case <-ctx.Done():
			return nil
		case err := <-errc:
			if err != nil {
				return err
			}
		}
	}
	<-ctx.Done()
	return nil
}

// Close releases the sync transport, newest first.
func (c *CompositionRoot) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}

func (c *CompositionRoot) Registry() *prometheus.Registry {
	return c.registry
}

func (c *CompositionRoot) Metrics() *metrics.PromSink {
	return c.sink
}

func (c *CompositionRoot) uow() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) runUoW() commands.RunUoWFactory {
	return FuncRunUoWFactory(func() commands.RunUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoW() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoW(), c.publisher)
}

func (c *CompositionRoot) CreateCreateRunCommandHandler() commands.CreateRunCommandHandler {
	return commands.NewCreateRunCommandHandler(c.runUoW(), c.publisher)
}

func (c *CompositionRoot) CreateRegisterFleetCommandHandler() commands.RegisterFleetCommandHandler {
	return commands.NewRegisterFleetCommandHandler(c.runUoW())
}

func (c *CompositionRoot) CreateAssignOrderCommandHandler() commands.AssignOrderCommandHandler {
	return commands.NewAssignOrderCommandHandler(c.uow(), c.publisher)
}

func (c *CompositionRoot) CreateUnassignOrderCommandHandler() commands.UnassignOrderCommandHandler {
	return commands.NewUnassignOrderCommandHandler(c.uow(), c.publisher)
}

func (c *CompositionRoot) CreateMoveOrderCommandHandler() commands.MoveOrderCommandHandler {
	return commands.NewMoveOrderCommandHandler(c.uow(), c.publisher)
}

func (c *CompositionRoot) CreateBulkAssignOrdersCommandHandler() commands.BulkAssignOrdersCommandHandler {
	return commands.NewBulkAssignOrdersCommandHandler(c.uow(), c.publisher)
}

func (c *CompositionRoot) CreateBulkUnassignCommandHandler() commands.BulkUnassignCommandHandler {
	return commands.NewBulkUnassignCommandHandler(c.uow(), c.publisher)
}

func (c *CompositionRoot) CreateBulkRemoveOrdersCommandHandler() commands.BulkRemoveOrdersCommandHandler {
	return commands.NewBulkRemoveOrdersCommandHandler(c.uow(), c.publisher)
}

func (c *CompositionRoot) CreateRunTransitionCommandHandler() commands.RunTransitionCommandHandler {
	return commands.NewRunTransitionCommandHandler(c.runUoW(), c.publisher)
}

func (c *CompositionRoot) CreateDeleteRunCommandHandler() commands.DeleteRunCommandHandler {
	return commands.NewDeleteRunCommandHandler(c.uow(), c.publisher)
}

func (c *CompositionRoot) CreateListAvailableOrdersQueryHandler() queries.ListAvailableOrdersQueryHandler {
	return queries.NewListAvailableOrdersQueryHandler(c.gormDB, c.classifier)
}

func (c *CompositionRoot) CreateListRunsWithLoadQueryHandler() queries.ListRunsWithLoadQueryHandler {
	return queries.NewListRunsWithLoadQueryHandler(c.gormDB, c.classifier)
}

func (c *CompositionRoot) CreateAuditConsistencyQueryHandler() queries.AuditConsistencyQueryHandler {
	return queries.NewAuditConsistencyQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateAuditJob() *jobs.AuditJob {
	return jobs.NewAuditJob(
		c.CreateAuditConsistencyQueryHandler(),
		c.CreateListRunsWithLoadQueryHandler(),
		c.sink,
		c.cfg.AuditSchedule,
		c.logger,
	)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	handlers := httpin.Handlers{
		CreateOrder:     c.CreateCreateOrderCommandHandler(),
		CreateRun:       c.CreateCreateRunCommandHandler(),
		RegisterFleet:   c.CreateRegisterFleetCommandHandler(),
		AssignOrder:     c.CreateAssignOrderCommandHandler(),
		UnassignOrder:   c.CreateUnassignOrderCommandHandler(),
		MoveOrder:       c.CreateMoveOrderCommandHandler(),
		BulkAssign:      c.CreateBulkAssignOrdersCommandHandler(),
		BulkUnassign:    c.CreateBulkUnassignCommandHandler(),
		BulkRemove:      c.CreateBulkRemoveOrdersCommandHandler(),
		RunTransition:   c.CreateRunTransitionCommandHandler(),
		DeleteRun:       c.CreateDeleteRunCommandHandler(),
		AvailableOrders: c.CreateListAvailableOrdersQueryHandler(),
		RunsWithLoad:    c.CreateListRunsWithLoadQueryHandler(),
		Audit:           c.CreateAuditConsistencyQueryHandler(),
	}
	return httpin.NewServer(handlers, c.transport, c.sink, c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncRunUoWFactory func() commands.RunUoW

func (f FuncRunUoWFactory) Create() commands.RunUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
