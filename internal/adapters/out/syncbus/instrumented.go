package syncbus

import (
	"context"
	"log/slog"

	"runplanner/internal/core/ports"
)

// SignalRecorder counts refresh signals that left this instance.
type SignalRecorder interface {
	RecordSignal(transport string)
}

// Instrumented wraps a publisher with logging and signal counting. Command
// handlers ignore publish errors, so this is where failures surface.
type Instrumented struct {
	next      ports.SyncPublisher
	transport string
	recorder  SignalRecorder
	logger    *slog.Logger
}

func NewInstrumented(next ports.SyncPublisher, transport string, recorder SignalRecorder, logger *slog.Logger) *Instrumented {
	return &Instrumented{
		next:      next,
		transport: transport,
		recorder:  recorder,
		logger:    logger.With("component", "sync_publisher", "transport", transport),
	}
}

func (p *Instrumented) Publish(ctx context.Context, workspace string) error {
	if err := p.next.Publish(ctx, workspace); err != nil {
		p.logger.WarnContext(ctx, "refresh signal not delivered", "workspace", workspace, "error", err)
		return err
	}
	if p.recorder != nil {
		p.recorder.RecordSignal(p.transport)
	}
	return nil
}
