package ports

import "context"

// SyncPublisher broadcasts a payload-less "refresh" signal to every client
// viewing the given workspace. Delivery is best effort.
type SyncPublisher interface {
	Publish(ctx context.Context, workspace string) error
}

// SyncSubscriber delivers refresh signals for one workspace until the returned
// cancel function is called.
type SyncSubscriber interface {
	Subscribe(workspace string) (<-chan struct{}, func())
}
