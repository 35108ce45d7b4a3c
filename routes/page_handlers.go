package routes

import (
	"bytes"
	"log/slog"
	"net/http"
	"time"

	"github.com/LilVoxy/sensor_dashboard/dashboard"
	"github.com/LilVoxy/sensor_dashboard/metrics"
)

// PageHandler renders the dashboard. The sensor query parameter picks the
// initial selection; it defaults to the first sensor in the dataset.
func PageHandler(viewer *dashboard.Viewer, observer SelectionObserver, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ids := viewer.Dataset().SensorIDs()
		selected := r.URL.Query().Get("sensor")
		if selected == "" && len(ids) > 0 {
			selected = ids[0]
		}

		start := time.Now()
		update := viewer.Update(selected)
		observer.ObserveSelection(metrics.TransportPage, time.Since(start))

		var buf bytes.Buffer
		err := dashboard.RenderPage(&buf, dashboard.PageData{
			Title:         title,
			Sensors:       dashboard.SensorOptions(ids, selected),
			Update:        update,
			WebsocketPath: websocketPath,
			APIPrefix:     apiPrefix,
		})
		if err != nil {
			slog.Error("render page", slog.String("sensor", selected), slog.String("error", err.Error()))
			http.Error(w, "failed to render dashboard", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if _, err := w.Write(buf.Bytes()); err != nil {
			slog.Warn("write page", slog.String("error", err.Error()))
		}
	}
}
