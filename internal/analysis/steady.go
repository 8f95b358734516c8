// Package analysis inspects finished runs for long-time behavior.
package analysis

import (
	"math"

	"github.com/san-kum/traitsim/internal/grid"
	"github.com/san-kum/traitsim/internal/quad"
)

// L2Distance is the L2 norm of the difference between two sampled rows over
// the mesh pts. Rows of mismatched length yield +Inf.
func L2Distance(a, b, pts []float64) float64 {
	if len(a) != len(b) || len(a) != len(pts) {
		return math.Inf(1)
	}
	diff := make([]float64, len(a))
	for i := range diff {
		d := a[i] - b[i]
		diff[i] = d * d
	}
	return math.Sqrt(quad.Simpson(pts, diff))
}

// SteadyState scans a field for the first step where consecutive rows stay
// within Tol of each other for Window steps in a row.
type SteadyState struct {
	Tol    float64
	Window int
}

// Detect returns the first such step index and true, or the step count and
// false when the field never settles. rows bounds the scan to the part of
// the field actually written.
func (s SteadyState) Detect(field *grid.Field, pts []float64, rows int) (int, bool) {
	window := s.Window
	if window < 1 {
		window = 1
	}

	run := 0
	for n := 1; n < rows; n++ {
		if L2Distance(field.Row(n), field.Row(n-1), pts) <= s.Tol {
			run++
			if run >= window {
				return n, true
			}
		} else {
			run = 0
		}
	}
	return rows, false
}

// TraitVariance is the population-weighted variance of the trait under
// density u. An empty population has zero variance.
func TraitVariance(u, xs []float64) float64 {
	if len(u) != len(xs) {
		return 0
	}
	total := quad.Simpson(xs, u)
	if total == 0 {
		return 0
	}

	scratch := make([]float64, len(u))
	for i := range scratch {
		scratch[i] = xs[i] * u[i]
	}
	mean := quad.Simpson(xs, scratch) / total

	for i := range scratch {
		d := xs[i] - mean
		scratch[i] = d * d * u[i]
	}
	return quad.Simpson(xs, scratch) / total
}
