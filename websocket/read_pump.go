package websocket

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/LilVoxy/sensor_dashboard/metrics"
	"github.com/gorilla/websocket"
)

// readPump handles inbound messages until the connection fails.
func (c *Client) readPump(manager *Manager) {
	defer func() {
		manager.remove(c)
		c.Socket.Close()
	}()

	c.Socket.SetReadLimit(maxMessageSize)
	c.Socket.SetReadDeadline(time.Now().Add(pongWait))
	c.Socket.SetPongHandler(func(string) error {
		c.Socket.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.Socket.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				slog.Warn("websocket read failed", slog.String("client", c.ID), slog.String("error", err.Error()))
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			c.replyError("malformed message")
			continue
		}

		switch msg.Type {
		case TypePing:
			c.reply(Message{Type: TypePong})

		case TypeSelect:
			if msg.SensorID == "" {
				c.replyError("sensorId is required")
				continue
			}
			start := time.Now()
			update := manager.selector.Update(msg.SensorID)
			manager.recorder.ObserveSelection(metrics.TransportWS, time.Since(start))
			slog.Debug("websocket selection",
				slog.String("client", c.ID),
				slog.String("previous", c.selected),
				slog.String("sensor", msg.SensorID),
				slog.Int("rows", update.Rows))
			c.selected = msg.SensorID
			c.reply(Message{Type: TypeFigures, SensorID: msg.SensorID, Update: &update})

		default:
			c.replyError("unknown message type " + msg.Type)
		}
	}
}
