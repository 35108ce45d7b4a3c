package websocket

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
)

// HandleConnections upgrades the request and starts the client's pumps.
func (manager *Manager) HandleConnections(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", slog.String("remote", r.RemoteAddr), slog.String("error", err.Error()))
		return
	}

	client := &Client{
		ID:     uuid.NewString(),
		Socket: conn,
		Send:   make(chan []byte, sendBuffer),
		done:   make(chan struct{}),
	}
	if !manager.add(client) {
		conn.Close()
		return
	}
	slog.Debug("websocket connection", slog.String("client", client.ID), slog.String("remote", r.RemoteAddr))

	go client.writePump()
	go client.readPump(manager)
}
