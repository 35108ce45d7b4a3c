// Package dataset loads and cleans sensor telemetry from CSV files or MySQL
// into an immutable Dataset.
package dataset

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// Dataset is the cleaned, read-only telemetry table. It is built once by a
// loader and may be shared between goroutines without locking.
type Dataset struct {
	records   []Record
	sensorIDs []string
	dropped   int
}

// New builds a Dataset from already-cleaned records. dropped is the number of
// source rows discarded for missing values.
func New(records []Record, dropped int) *Dataset {
	owned := make([]Record, len(records))
	copy(owned, records)

	seen := mapset.NewThreadUnsafeSet[string]()
	var ids []string
	for _, r := range owned {
		if seen.Add(r.SensorID) {
			ids = append(ids, r.SensorID)
		}
	}
	return &Dataset{records: owned, sensorIDs: ids, dropped: dropped}
}

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.records) }

// Dropped returns how many source rows were discarded during cleaning.
func (d *Dataset) Dropped() int { return d.dropped }

// Records returns a copy of all records in source order.
func (d *Dataset) Records() []Record {
	out := make([]Record, len(d.records))
	copy(out, d.records)
	return out
}

// SensorIDs returns the distinct sensor identifiers in order of first
// appearance.
func (d *Dataset) SensorIDs() []string {
	return append([]string(nil), d.sensorIDs...)
}

// HasSensor reports whether any record carries id.
func (d *Dataset) HasSensor(id string) bool {
	for _, s := range d.sensorIDs {
		if s == id {
			return true
		}
	}
	return false
}

// Filter returns the records whose sensor identifier equals id, in source
// order. The result is a fresh slice; an unknown id yields an empty one.
func (d *Dataset) Filter(id string) []Record {
	var out []Record
	for _, r := range d.records {
		if r.SensorID == id {
			out = append(out, r)
		}
	}
	return out
}
