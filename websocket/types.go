package websocket

import (
	"net/http"
	"time"

	"github.com/LilVoxy/sensor_dashboard/dashboard"
	"github.com/gorilla/websocket"
)

// Message is the JSON envelope for both directions. Figure replies embed the
// dashboard update, so its header and figures appear at the top level.
type Message struct {
	Type     string `json:"type"`
	SensorID string `json:"sensorId,omitempty"`
	Content  string `json:"content,omitempty"`
	*dashboard.Update
}

// Selector answers a sensor selection. *dashboard.Viewer implements it.
type Selector interface {
	Update(sensorID string) dashboard.Update
}

// Recorder receives connection and selection events.
type Recorder interface {
	ObserveSelection(transport string, took time.Duration)
	ClientConnected()
	ClientDisconnected()
}

type nopRecorder struct{}

func (nopRecorder) ObserveSelection(string, time.Duration) {}
func (nopRecorder) ClientConnected()                       {}
func (nopRecorder) ClientDisconnected()                    {}

// Client is one connected page.
type Client struct {
	ID     string
	Socket *websocket.Conn
	Send   chan []byte
	// done is closed by the manager when the client must stop.
	done chan struct{}
	// last selection, read and written only by readPump
	selected string
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}
