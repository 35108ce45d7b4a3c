// Package routes wires the dashboard's HTTP surface onto a gorilla/mux router.
package routes

import (
	"net/http"
	"time"

	"github.com/LilVoxy/sensor_dashboard/dashboard"
	"github.com/gorilla/mux"
)

const (
	apiPrefix     = "/api/sensors/"
	websocketPath = "/ws"
)

// SelectionObserver is told about every selection the handlers serve.
type SelectionObserver interface {
	ObserveSelection(transport string, took time.Duration)
}

// Deps are the collaborators the handlers need.
type Deps struct {
	Viewer    *dashboard.Viewer
	Observer  SelectionObserver
	Websocket http.HandlerFunc // nil disables /ws
	Metrics   http.Handler     // nil disables /metrics
	Title     string
}

type nopObserver struct{}

func (nopObserver) ObserveSelection(string, time.Duration) {}

// SetupRoutes registers every route on router.
func SetupRoutes(router *mux.Router, deps Deps) {
	if deps.Observer == nil {
		deps.Observer = nopObserver{}
	}
	router.Use(CORSMiddleware)

	if deps.Websocket != nil {
		router.HandleFunc(websocketPath, deps.Websocket)
	}
	if deps.Metrics != nil {
		router.Handle("/metrics", deps.Metrics).Methods("GET")
	}
	router.HandleFunc("/healthz", HealthHandler(deps.Viewer)).Methods("GET", "OPTIONS")

	router.HandleFunc("/api/sensors", GetSensorsHandler(deps.Viewer)).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/sensors/{sensorId}/figures", GetFiguresHandler(deps.Viewer, deps.Observer)).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/sensors/{sensorId}/export", ExportHandler(deps.Viewer, deps.Observer)).Methods("GET", "OPTIONS")

	router.HandleFunc("/", PageHandler(deps.Viewer, deps.Observer, deps.Title)).Methods("GET")
}
