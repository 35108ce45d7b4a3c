// Package websocket lets browser clients change the selected sensor over a
// websocket and receive the redrawn figures.
package websocket

import (
	"time"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong from the peer.
	pongWait = 60 * time.Second

	// Pings are sent at this period; must be below pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Largest inbound message accepted. Selections are tiny.
	maxMessageSize = 64 * 1024

	// Outbound messages buffered per client before new ones are dropped.
	sendBuffer = 16
)

// Message types exchanged with the page.
const (
	TypeSelect  = "select"
	TypeFigures = "figures"
	TypePing    = "ping"
	TypePong    = "pong"
	TypeError   = "error"
)
