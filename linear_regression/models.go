package linear_regression

import (
	"time"
)

// DataPoint is one observation fed to the regression.
type DataPoint struct {
	X    float64   // proleptic Gregorian ordinal of Date
	Y    float64   // metric value
	Date time.Time // original timestamp
}

// RegressionResult holds the fitted line y = A*x + B.
type RegressionResult struct {
	A           float64   `json:"slope"`
	B           float64   `json:"intercept"`
	R           float64   `json:"r"`  // Pearson correlation
	R2          float64   `json:"r2"` // coefficient of determination
	N           int       `json:"n"`
	PeriodStart time.Time `json:"periodStart"`
	PeriodEnd   time.Time `json:"periodEnd"`
	// Degenerate is set when fewer than two distinct X values were available
	// and the zero-slope fallback was used.
	Degenerate bool `json:"degenerate"`
}
