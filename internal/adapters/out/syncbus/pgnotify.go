package syncbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// NotifyChannel is the Postgres channel refresh signals travel on. The
// notification payload is the workspace name.
const NotifyChannel = "runplanner_refresh"

const listenerPingInterval = 90 * time.Second

// notificationSource is the part of *pq.Listener the transport uses.
type notificationSource interface {
	Listen(channel string) error
	NotificationChannel() <-chan *pq.Notification
	Ping() error
	Close() error
}

// PostgresTransport publishes with pg_notify and relays every notification on
// NotifyChannel, including those from other instances, into the local hub.
type PostgresTransport struct {
	db     *gorm.DB
	source notificationSource
	hub    *Hub
	logger *slog.Logger
}

// NewPostgresListener opens a dedicated LISTEN connection for dsn.
func NewPostgresListener(dsn string, logger *slog.Logger) *pq.Listener {
	logger = logger.With("component", "pg_listener")
	return pq.NewListener(dsn, 10*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		switch ev {
		case pq.ListenerEventConnectionAttemptFailed, pq.ListenerEventDisconnected:
			logger.Warn("listener connection lost", "error", err)
		case pq.ListenerEventReconnected:
			logger.Info("listener reconnected")
		case pq.ListenerEventConnected:
		}
	})
}

func NewPostgresTransport(db *gorm.DB, source notificationSource, hub *Hub, logger *slog.Logger) *PostgresTransport {
	return &PostgresTransport{
		db:     db,
		source: source,
		hub:    hub,
		logger: logger.With("component", "pg_sync_transport"),
	}
}

// Publish sends the workspace name on NotifyChannel. The local hub is fed
// by Run when the notification comes back, like every other instance.
func (t *PostgresTransport) Publish(ctx context.Context, workspace string) error {
	if err := t.db.WithContext(ctx).Exec("SELECT pg_notify(?, ?)", NotifyChannel, workspace).Error; err != nil {
		return fmt.Errorf("pg_notify: %w", err)
	}
	return nil
}

func (t *PostgresTransport) Subscribe(workspace string) (<-chan struct{}, func()) {
	return t.hub.Subscribe(workspace)
}

// Run listens until ctx is cancelled or the source is closed.
func (t *PostgresTransport) Run(ctx context.Context) error {
	if err := t.source.Listen(NotifyChannel); err != nil && !errors.Is(err, pq.ErrChannelAlreadyOpen) {
		return fmt.Errorf("listen %s: %w", NotifyChannel, err)
	}
	t.logger.InfoContext(ctx, "listening for refresh signals", "channel", NotifyChannel)

	ticker := time.NewTicker(listenerPingInterval)
	defer ticker.Stop()

	notifications := t.source.NotificationChannel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case n, ok := <-notifications:
			if !ok {
				return nil
			}
			// A nil notification follows a reconnect; anything sent meanwhile is lost.
			if n == nil {
				t.hub.PublishAll()
				continue
			}
			if err := t.hub.Publish(ctx, n.Extra); err != nil {
				return nil
			}
		case <-ticker.C:
			go func() {
				if err := t.source.Ping(); err != nil {
					t.logger.WarnContext(ctx, "listener ping failed", "error", err)
				}
			}()
		}
	}
}

func (t *PostgresTransport) Close() error {
	return t.source.Close()
}
