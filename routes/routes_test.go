package routes

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/LilVoxy/sensor_dashboard/dashboard"
	"github.com/LilVoxy/sensor_dashboard/dataset"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const sampleCSV = `sensor_id,recording_date,CONTRAST_SNR_mean,ENERGY_SNR_mean,CONTRAST_std,ENERGY_SNR_std
7,2023-01-01,10.0,0.50,1.5,0.05
9,2023-01-01,20.0,0.40,2.5,0.04
7,2023-01-02,11.0,0.48,1.4,0.05
9,2023-01-02,19.0,0.41,2.6,0.05
7,2023-01-03,NA,0.47,1.6,0.06
`

type observed struct {
	mu         sync.Mutex
	transports []string
}

func (o *observed) ObserveSelection(transport string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.transports = append(o.transports, transport)
}

func newRouter(t *testing.T) (*mux.Router, *observed) {
	t.Helper()
	ds, err := dataset.ReadCSV(strings.NewReader(sampleCSV), dataset.LoadOptions{})
	require.NoError(t, err)
	obs := &observed{}
	router := mux.NewRouter()
	SetupRoutes(router, Deps{
		Viewer:   dashboard.NewViewer(ds),
		Observer: obs,
		Metrics: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("metrics"))
		}),
		Title: "Sensor Data Dashboard",
	})
	return router, obs
}

func serve(router http.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestSensorsEndpoint(t *testing.T) {
	router, _ := newRouter(t)
	rec := serve(router, http.MethodGet, "/api/sensors")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.JSONEq(t, `{"sensors":[{"label":"Sensor 7","value":"7"},{"label":"Sensor 9","value":"9"}]}`, rec.Body.String())
}

func TestFiguresEndpoint(t *testing.T) {
	router, obs := newRouter(t)
	rec := serve(router, http.MethodGet, "/api/sensors/9/figures")
	require.Equal(t, http.StatusOK, rec.Code)

	var update dashboard.Update
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &update))
	assert.Equal(t, "Sensor 9", update.Header)
	assert.Equal(t, 2, update.Rows)
	assert.Less(t, update.Figures[0].Fit.A, 0.0)
	assert.Equal(t, []string{"http"}, obs.transports)
}

func TestFiguresUnknownSensorIsEmpty(t *testing.T) {
	router, _ := newRouter(t)
	rec := serve(router, http.MethodGet, "/api/sensors/404/figures")
	require.Equal(t, http.StatusOK, rec.Code)

	var update dashboard.Update
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &update))
	assert.Equal(t, 0, update.Rows)
	for _, fig := range update.Figures {
		assert.Empty(t, fig.Points)
		assert.True(t, fig.Fit.Degenerate)
	}
}

func TestPageDefaultsToFirstSensor(t *testing.T) {
	router, obs := newRouter(t)
	rec := serve(router, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Sensor Data Dashboard")
	assert.Contains(t, body, `<option value="7" selected>Sensor 7</option>`)
	assert.Contains(t, body, `<option value="9">Sensor 9</option>`)
	assert.Equal(t, []string{"page"}, obs.transports)
}

func TestPageHonoursSensorQuery(t *testing.T) {
	router, _ := newRouter(t)
	rec := serve(router, http.MethodGet, "/?sensor=9")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<option value="9" selected>Sensor 9</option>`)
}

func TestExportEndpoint(t *testing.T) {
	router, _ := newRouter(t)
	rec := serve(router, http.MethodGet, "/api/sensors/7/export")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="sensor_7_trends.xlsx"`, rec.Header().Get("Content-Disposition"))

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	header, err := f.GetCellValue("Fits", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Sensor 7", header)
	assert.Len(t, f.GetSheetList(), 1+dashboard.FigureCount)
}

func TestHealthAndMetrics(t *testing.T) {
	router, _ := newRouter(t)

	rec := serve(router, http.MethodGet, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","rows":4,"sensors":2}`, rec.Body.String())

	rec = serve(router, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "metrics", rec.Body.String())
}

func TestPreflight(t *testing.T) {
	router, obs := newRouter(t)
	rec := serve(router, http.MethodOptions, "/api/sensors/7/figures")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "GET, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Empty(t, rec.Body.String())
	assert.Empty(t, obs.transports)
}

func TestWriteJSONEncodeFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, map[string]float64{"y": math.Inf(1)})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotEqual(t, "application/json", rec.Header().Get("Content-Type"))
}
