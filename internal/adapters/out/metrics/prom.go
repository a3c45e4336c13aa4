// Package metrics exports planner activity as Prometheus metrics.
package metrics

import (
	"errors"

	"runplanner/internal/pkg/errs"

	"github.com/prometheus/client_golang/prometheus"
)

// OutcomeOK labels operations that finished without error. Failed operations
// are labelled with their error kind.
const OutcomeOK = "ok"

// PromSink records planner metrics on a Prometheus registerer.
type PromSink struct {
	operations *prometheus.CounterVec
	signals    *prometheus.CounterVec
	incoherent prometheus.Gauge
	overloaded prometheus.Gauge
}

// NewPromSink registers the planner metrics on reg. If reg is nil the default
// registerer is used. Collectors that are already registered are reused.
func NewPromSink(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	operations, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "runplanner_operations_total",
		Help: "Planning operations by outcome",
	}, []string{"operation", "outcome"}))
	if err != nil {
		return nil, err
	}
	signals, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "runplanner_sync_signals_total",
		Help: "Refresh signals sent to clients",
	}, []string{"transport"}))
	if err != nil {
		return nil, err
	}
	incoherent, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "runplanner_incoherent_orders",
		Help: "Problems found by the last consistency audit",
	}))
	if err != nil {
		return nil, err
	}
	overloaded, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "runplanner_overloaded_runs",
		Help: "Runs of the current day whose load exceeds their ceiling",
	}))
	if err != nil {
		return nil, err
	}

	return &PromSink{
		operations: operations,
		signals:    signals,
		incoherent: incoherent,
		overloaded: overloaded,
	}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		var zero C
		return zero, err
	}
	return c, nil
}

// RecordOperation counts one planning operation.
func (s *PromSink) RecordOperation(operation string, err error) {
	outcome := OutcomeOK
	if err != nil {
		outcome = string(errs.KindOf(err))
	}
	s.operations.WithLabelValues(operation, outcome).Inc()
}

// RecordSignal counts one refresh signal sent through transport.
func (s *PromSink) RecordSignal(transport string) {
	s.signals.WithLabelValues(transport).Inc()
}

func (s *PromSink) SetIncoherentOrders(n int) {
	s.incoherent.Set(float64(n))
}

func (s *PromSink) SetOverloadedRuns(n int) {
	s.overloaded.Set(float64(n))
}
