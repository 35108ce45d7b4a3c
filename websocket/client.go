package websocket

import (
	"encoding/json"
	"log/slog"
)

// queue hands data to the write pump without blocking. It reports false when
// the client is gone or its buffer is full.
func (c *Client) queue(data []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.Send <- data:
		return true
	case <-c.done:
		return false
	default:
		slog.Warn("websocket send buffer full, dropping message", slog.String("client", c.ID))
		return false
	}
}

func (c *Client) reply(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("encode websocket message", slog.String("client", c.ID), slog.String("error", err.Error()))
		return
	}
	c.queue(data)
}

func (c *Client) replyError(content string) {
	c.reply(Message{Type: TypeError, Content: content})
}
