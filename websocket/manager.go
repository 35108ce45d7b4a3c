package websocket

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// Manager tracks connected clients and answers their selections. The client
// map is owned by the Run goroutine.
type Manager struct {
	selector   Selector
	recorder   Recorder
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	stopped    chan struct{}
	count      atomic.Int64
}

// NewManager creates a manager answering selections with sel. rec may be nil.
func NewManager(sel Selector, rec Recorder) *Manager {
	if rec == nil {
		rec = nopRecorder{}
	}
	return &Manager{
		selector:   sel,
		recorder:   rec,
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		stopped:    make(chan struct{}),
	}
}

// Run serves registrations until ctx is cancelled, then disconnects every
// client.
func (manager *Manager) Run(ctx context.Context) {
	defer close(manager.stopped)
	for {
		select {
		case client := <-manager.register:
			manager.clients[client.ID] = client
			manager.count.Add(1)
			manager.recorder.ClientConnected()
			slog.Info("websocket client connected", slog.String("client", client.ID))

		case client := <-manager.unregister:
			if _, ok := manager.clients[client.ID]; ok {
				manager.drop(client)
				slog.Info("websocket client disconnected", slog.String("client", client.ID))
			}

		case <-ctx.Done():
			for _, client := range manager.clients {
				manager.drop(client)
			}
			slog.Info("websocket manager stopped")
			return
		}
	}
}

func (manager *Manager) drop(client *Client) {
	delete(manager.clients, client.ID)
	close(client.done)
	manager.count.Add(-1)
	manager.recorder.ClientDisconnected()
}

// ClientCount returns the number of registered clients.
func (manager *Manager) ClientCount() int {
	return int(manager.count.Load())
}

// Stopped is closed once Run has returned.
func (manager *Manager) Stopped() <-chan struct{} {
	return manager.stopped
}

func (manager *Manager) add(client *Client) bool {
	select {
	case manager.register <- client:
		return true
	case <-manager.stopped:
		return false
	}
}

func (manager *Manager) remove(client *Client) {
	select {
	case manager.unregister <- client:
	case <-manager.stopped:
	}
}
