package dataset

import "time"

// Source column names.
const (
	ColumnSensorID      = "sensor_id"
	ColumnRecordingDate = "recording_date"
)

// Record is one cleaned row of the telemetry table.
type Record struct {
	Row             int // 1-based data row in the source, counted before cleaning
	SensorID        string
	RecordingDate   time.Time
	ContrastSNRMean float64
	EnergySNRMean   float64
	ContrastStd     float64
	EnergySNRStd    float64
}

// Metric identifies one of the four texture metric columns.
type Metric int

const (
	ContrastSNRMean Metric = iota
	EnergySNRMean
	ContrastStd
	EnergySNRStd
)

// Metrics lists every metric in display order.
var Metrics = [...]Metric{ContrastSNRMean, EnergySNRMean, ContrastStd, EnergySNRStd}

type metricInfo struct {
	column string
	label  string
	title  string
	key    string
}

var metricInfos = [...]metricInfo{
	ContrastSNRMean: {"CONTRAST_SNR_mean", "Contrast Mean", "Contrast_SNR_mean over Time", "contrast-graph-mean"},
	EnergySNRMean:   {"ENERGY_SNR_mean", "Energy Mean", "Energy_SNR_mean over Time", "energy-graph-mean"},
	ContrastStd:     {"CONTRAST_std", "Contrast STD", "CONTRAST_SNR_std over Time", "contrast-graph-std"},
	EnergySNRStd:    {"ENERGY_SNR_std", "Energy STD", "ENERGY_SNR_std over Time", "energy-graph-std"},
}

// Column is the source column name.
func (m Metric) Column() string { return metricInfos[m].column }

// Label is the axis label shown for the metric.
func (m Metric) Label() string { return metricInfos[m].label }

// Title is the chart title.
func (m Metric) Title() string { return metricInfos[m].title }

// Key is a stable identifier usable as a DOM id.
func (m Metric) Key() string { return metricInfos[m].key }

func (m Metric) String() string { return m.Column() }

// Value returns the metric's value in r.
func (m Metric) Value(r Record) float64 {
	switch m {
	case ContrastSNRMean:
		return r.ContrastSNRMean
	case EnergySNRMean:
		return r.EnergySNRMean
	case ContrastStd:
		return r.ContrastStd
	case EnergySNRStd:
		return r.EnergySNRStd
	}
	return 0
}

// RequiredColumns are the columns every source must provide, in the order
// the row parser expects them.
func RequiredColumns() []string {
	cols := []string{ColumnSensorID, ColumnRecordingDate}
	for _, m := range Metrics {
		cols = append(cols, m.Column())
	}
	return cols
}
