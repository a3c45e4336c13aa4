// Package syncbus fans "refresh" signals out to every client viewing a
// workspace. The Hub delivers inside one process; the Postgres and MQTT
// transports relay signals between server instances and feed them back into
// the local Hub.
package syncbus

import (
	"context"
	"errors"
	"sync"
)

// ErrHubClosed is returned by Publish after Close.
var ErrHubClosed = errors.New("sync hub is closed")

const subscriberBuffer = 8

// Hub is an in-process fan-out of refresh signals keyed by workspace.
// Publishing never blocks: a subscriber whose buffer is full already has a
// refresh pending, so the extra signal is dropped.
type Hub struct {
	mu     sync.RWMutex
	subs   map[string][]chan struct{}
	closed bool
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string][]chan struct{})}
}

// Publish signals the subscribers of the workspace.
func (h *Hub) Publish(_ context.Context, workspace string) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		return ErrHubClosed
	}
	for _, ch := range h.subs[workspace] {
		notify(ch)
	}
	return nil
}

// PublishAll signals every subscriber of every workspace. Transports call it
// after reconnecting, when signals may have been missed.
func (h *Hub) PublishAll() {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		return
	}
	for _, chans := range h.subs {
		for _, ch := range chans {
			notify(ch)
		}
	}
}

func notify(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

// Subscribe registers a subscriber for the workspace. The returned cancel
// function unregisters it and closes the channel; calling it twice is safe.
func (h *Hub) Subscribe(workspace string) (<-chan struct{}, func()) {
	ch := make(chan struct{}, subscriberBuffer)

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	h.subs[workspace] = append(h.subs[workspace], ch)
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() { h.unsubscribe(workspace, ch) })
	}
}

func (h *Hub) unsubscribe(workspace string, sub chan struct{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	chans := h.subs[workspace]
	for i, ch := range chans {
		if ch == sub {
			chans = append(chans[:i], chans[i+1:]...)
			if len(chans) == 0 {
				delete(h.subs, workspace)
			} else {
				h.subs[workspace] = chans
			}
			if !h.closed {
				close(ch)
			}
			return
		}
	}
}

// Subscribers returns the number of live subscribers of the workspace.
func (h *Hub) Subscribers(workspace string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[workspace])
}

// Close closes all subscriber channels. Further publishes fail with
// ErrHubClosed and new subscriptions receive an already closed channel.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for _, chans := range h.subs {
		for _, ch := range chans {
			close(ch)
		}
	}
	h.subs = nil
}
