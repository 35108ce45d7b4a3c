// Package dashboard turns a sensor selection into the header and the four
// trend figures shown on the page.
package dashboard

import (
	"sort"
	"time"

	"github.com/LilVoxy/sensor_dashboard/dataset"
	"github.com/LilVoxy/sensor_dashboard/linear_regression"
)

const (
	xAxisLabel     = "Dates"
	regressionName = "Regression Line"
)

// Point is one chart coordinate. X is the timestamp in Unix milliseconds,
// which chart.js plots on a linear axis.
type Point struct {
	Date time.Time `json:"date"`
	X    int64     `json:"x"`
	Y    float64   `json:"y"`
}

// Figure describes one metric chart: the raw scatter plus the fitted line.
type Figure struct {
	ID       string                             `json:"id"`
	Metric   string                             `json:"metric"`
	Title    string                             `json:"title"`
	XLabel   string                             `json:"xLabel"`
	YLabel   string                             `json:"yLabel"`
	LineName string                             `json:"lineName"`
	Points   []Point                            `json:"points"`
	Line     []Point                            `json:"line"`
	Fit      linear_regression.RegressionResult `json:"fit"`
}

// FigureCount is the number of charts in every Update.
const FigureCount = len(dataset.Metrics)

// Update is everything the page redraws after a selection.
type Update struct {
	SensorID string              `json:"sensorId"`
	Header   string              `json:"header"`
	Rows     int                 `json:"rows"`
	Figures  [FigureCount]Figure `json:"figures"`
}

// Viewer answers selections against one immutable dataset. It holds no
// mutable state and is safe for concurrent use.
type Viewer struct {
	ds *dataset.Dataset
}

// NewViewer returns a Viewer over ds.
func NewViewer(ds *dataset.Dataset) *Viewer {
	return &Viewer{ds: ds}
}

// Dataset returns the dataset the viewer reads from.
func (v *Viewer) Dataset() *dataset.Dataset { return v.ds }

// Header is the text shown above the charts for a selection.
func Header(sensorID string) string {
	return "Sensor " + sensorID
}

// Update filters the dataset to sensorID and fits every metric
// independently. An unknown sensor yields four empty figures.
func (v *Viewer) Update(sensorID string) Update {
	var view []dataset.Record
	if v.ds.HasSensor(sensorID) {
		view = v.ds.Filter(sensorID)
	}
	u := Update{
		SensorID: sensorID,
		Header:   Header(sensorID),
		Rows:     len(view),
	}
	for i, m := range dataset.Metrics {
		u.Figures[i] = buildFigure(m, view)
	}
	return u
}

func buildFigure(m dataset.Metric, view []dataset.Record) Figure {
	fig := Figure{
		ID:       m.Key(),
		Metric:   m.Column(),
		Title:    m.Title(),
		XLabel:   xAxisLabel,
		YLabel:   m.Label(),
		LineName: regressionName,
		Points:   make([]Point, 0, len(view)),
		Line:     make([]Point, 0, len(view)),
	}

	data := make([]linear_regression.DataPoint, len(view))
	for i, r := range view {
		data[i] = linear_regression.DataPoint{
			X:    float64(dataset.OrdinalDay(r.RecordingDate)),
			Y:    m.Value(r),
			Date: r.RecordingDate,
		}
		fig.Points = append(fig.Points, newPoint(r.RecordingDate, data[i].Y))
	}

	fig.Fit = linear_regression.Fit(data)
	predicted := linear_regression.PredictAll(fig.Fit, data)
	for i, p := range data {
		fig.Line = append(fig.Line, newPoint(p.Date, predicted[i]))
	}
	sort.SliceStable(fig.Line, func(i, j int) bool {
		return fig.Line[i].Date.Before(fig.Line[j].Date)
	})
	return fig
}

func newPoint(t time.Time, y float64) Point {
	return Point{Date: t, X: t.UnixMilli(), Y: y}
}
