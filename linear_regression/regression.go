package linear_regression

import (
	"gonum.org/v1/gonum/stat"
)

// Fit computes the ordinary least squares line through points.
//
// With fewer than two distinct X values there is no unique slope; Fit then
// returns a horizontal line through the mean of Y and marks the result
// Degenerate. An empty input yields the zero result, also Degenerate.
func Fit(points []DataPoint) RegressionResult {
	result := RegressionResult{N: len(points)}
	if len(points) == 0 {
		result.Degenerate = true
		return result
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	result.PeriodStart = points[0].Date
	result.PeriodEnd = points[0].Date
	for i, p := range points {
		xs[i] = p.X
		ys[i] = p.Y
		if p.Date.Before(result.PeriodStart) {
			result.PeriodStart = p.Date
		}
		if p.Date.After(result.PeriodEnd) {
			result.PeriodEnd = p.Date
		}
	}

	if !hasSpread(xs) {
		result.B = stat.Mean(ys, nil)
		result.Degenerate = true
		return result
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	result.A = beta
	result.B = alpha

	if hasSpread(ys) {
		result.R = stat.Correlation(xs, ys, nil)
		result.R2 = stat.RSquared(xs, ys, nil, alpha, beta)
	}
	return result
}

// Predict evaluates the fitted line at x.
func Predict(result RegressionResult, x float64) float64 {
	return result.A*x + result.B
}

// PredictAll returns one prediction per point, aligned with points.
func PredictAll(result RegressionResult, points []DataPoint) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = Predict(result, p.X)
	}
	return out
}

func hasSpread(vs []float64) bool {
	for _, v := range vs[1:] {
		if v != vs[0] {
			return true
		}
	}
	return false
}
