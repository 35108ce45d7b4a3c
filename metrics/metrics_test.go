package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectionsCounted(t *testing.T) {
	m := New()
	m.ObserveSelection(TransportHTTP, time.Millisecond)
	m.ObserveSelection(TransportHTTP, time.Millisecond)
	m.ObserveSelection(TransportWS, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.selections.WithLabelValues(TransportHTTP)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.selections.WithLabelValues(TransportWS)))
}

func TestGauges(t *testing.T) {
	m := New()
	m.SetDataset(120, 3)
	m.ClientConnected()
	m.ClientConnected()
	m.ClientDisconnected()

	assert.Equal(t, 120.0, testutil.ToFloat64(m.rows))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.droppedRows))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.wsClients))
}

func TestHandlerExposition(t *testing.T) {
	m := New()
	m.SetDataset(7, 1)
	m.ObserveSelection(TransportPage, 2*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	text := string(body)
	assert.Contains(t, text, "sensor_dashboard_dataset_rows 7")
	assert.Contains(t, text, `sensor_dashboard_selections_total{transport="page"} 1`)
	assert.Contains(t, text, "sensor_dashboard_update_seconds_count 1")
}

func TestInstancesAreIndependent(t *testing.T) {
	a, b := New(), New()
	a.ObserveSelection(TransportWS, 0)
	assert.Equal(t, 0.0, testutil.ToFloat64(b.selections.WithLabelValues(TransportWS)))
}
