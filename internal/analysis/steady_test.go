package analysis

import (
	"math"
	"testing"

	"github.com/san-kum/traitsim/internal/grid"
)

func linspace(a, b float64, n int) []float64 {
	pts := make([]float64, n)
	step := (b - a) / float64(n-1)
	for i := range pts {
		pts[i] = a + float64(i)*step
	}
	pts[n-1] = b
	return pts
}

func constRow(n int, v float64) []float64 {
	row := make([]float64, n)
	for i := range row {
		row[i] = v
	}
	return row
}

func TestL2Distance(t *testing.T) {
	pts := linspace(0, 1, 5)

	if got := L2Distance(constRow(5, 1), constRow(5, 1), pts); got != 0 {
		t.Errorf("distance of identical rows = %v, want 0", got)
	}
	// Constant offset c has L2 norm c over a unit interval.
	if got := L2Distance(constRow(5, 3), constRow(5, 1), pts); math.Abs(got-2) > 1e-12 {
		t.Errorf("distance = %v, want 2", got)
	}
	if got := L2Distance(constRow(5, 1), constRow(4, 1), pts); !math.IsInf(got, 1) {
		t.Errorf("mismatched rows = %v, want +Inf", got)
	}
}

func TestSteadyStateDetect(t *testing.T) {
	pts := linspace(0, 1, 5)
	field := grid.NewField(6, 5)

	// Rows decay geometrically toward 1; successive distances shrink below
	// tolerance from step 4 on.
	levels := []float64{2, 1.5, 1.2, 1.05, 1.051, 1.0511}
	for n, v := range levels {
		if err := field.SetRow(n, constRow(5, v)); err != nil {
			t.Fatal(err)
		}
	}

	det := SteadyState{Tol: 0.01, Window: 2}
	step, ok := det.Detect(field, pts, 6)
	if !ok {
		t.Fatal("expected a steady state")
	}
	if step != 5 {
		t.Errorf("Detect = %d, want 5", step)
	}

	tight := SteadyState{Tol: 1e-9, Window: 1}
	if _, ok := tight.Detect(field, pts, 6); ok {
		t.Error("tight tolerance should not settle")
	}
}

func TestTraitVariance(t *testing.T) {
	pts := linspace(0, 1, 9)

	// A flat density over [0,1] has variance 1/12.
	if got := TraitVariance(constRow(9, 1), pts); math.Abs(got-1.0/12.0) > 1e-9 {
		t.Errorf("variance = %v, want 1/12", got)
	}
	if got := TraitVariance(constRow(9, 0), pts); got != 0 {
		t.Errorf("variance of empty population = %v, want 0", got)
	}
}
