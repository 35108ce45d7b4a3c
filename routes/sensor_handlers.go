package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"time"

	"github.com/LilVoxy/sensor_dashboard/dashboard"
	"github.com/LilVoxy/sensor_dashboard/metrics"
	"github.com/gorilla/mux"
)

// SensorsResponse lists the dropdown entries.
type SensorsResponse struct {
	Sensors []dashboard.SensorOption `json:"sensors"`
}

// HealthResponse reports the loaded dataset size.
type HealthResponse struct {
	Status  string `json:"status"`
	Rows    int    `json:"rows"`
	Sensors int    `json:"sensors"`
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

func writeJSON(w http.ResponseWriter, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		slog.Error("encode json response", slog.String("error", err.Error()))
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Warn("write json response", slog.String("error", err.Error()))
	}
}

// GetSensorsHandler returns the distinct sensor identifiers.
func GetSensorsHandler(viewer *dashboard.Viewer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ids := viewer.Dataset().SensorIDs()
		writeJSON(w, SensorsResponse{Sensors: dashboard.SensorOptions(ids, "")})
	}
}

// GetFiguresHandler returns the header and the four figures for a sensor.
// Unknown sensors get empty figures, not an error.
func GetFiguresHandler(viewer *dashboard.Viewer, observer SelectionObserver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sensorID := mux.Vars(r)["sensorId"]
		start := time.Now()
		update := viewer.Update(sensorID)
		observer.ObserveSelection(metrics.TransportHTTP, time.Since(start))
		slog.Debug("figures served", slog.String("sensor", sensorID), slog.Int("rows", update.Rows))
		writeJSON(w, update)
	}
}

// ExportHandler streams the selection as an XLSX workbook.
func ExportHandler(viewer *dashboard.Viewer, observer SelectionObserver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sensorID := mux.Vars(r)["sensorId"]
		start := time.Now()
		update := viewer.Update(sensorID)
		observer.ObserveSelection(metrics.TransportHTTP, time.Since(start))

		var buf bytes.Buffer
		if err := dashboard.WriteWorkbook(&buf, update); err != nil {
			slog.Error("export workbook", slog.String("sensor", sensorID), slog.String("error", err.Error()))
			http.Error(w, "failed to build workbook", http.StatusInternalServerError)
			return
		}
		name := fmt.Sprintf("sensor_%s_trends.xlsx", unsafeFileChars.ReplaceAllString(sensorID, "_"))
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
		if _, err := w.Write(buf.Bytes()); err != nil {
			slog.Warn("write workbook", slog.String("error", err.Error()))
		}
	}
}

// HealthHandler reports that the dataset is loaded.
func HealthHandler(viewer *dashboard.Viewer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ds := viewer.Dataset()
		writeJSON(w, HealthResponse{Status: "ok", Rows: ds.Len(), Sensors: len(ds.SensorIDs())})
	}
}
