package sim

import (
	"context"
	"fmt"
	"sync"
)

// Objective reduces a finished run to a single score for comparison across
// sweep points.
type Objective func(*Result) float64

// SweepPoint is the outcome of one run within a sweep.
type SweepPoint struct {
	Value float64
	Score float64
}

// SweepResult collects the scored points in input order; Best indexes the
// point with the highest score.
type SweepResult struct {
	Points []SweepPoint
	Best   int
}

// RunSweep solves build(v) for every value concurrently and scores each
// finished run. The first run error aborts the sweep.
func RunSweep(ctx context.Context, values []float64, build func(float64) Problem, score Objective) (*SweepResult, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("sim: sweep needs at least one value")
	}

	points := make([]SweepPoint, len(values))
	errs := make([]error, len(values))

	var wg sync.WaitGroup
	for i, v := range values {
		wg.Add(1)
		go func(idx int, val float64) {
			defer wg.Done()

			res, err := Solve(ctx, build(val))
			if err != nil {
				errs[idx] = err
				return
			}
			points[idx] = SweepPoint{Value: val, Score: score(res)}
		}(i, v)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("sim: sweep value %g: %w", values[i], err)
		}
	}

	best := 0
	for i, p := range points {
		if p.Score > points[best].Score {
			best = i
		}
	}
	return &SweepResult{Points: points, Best: best}, nil
}

// SweepValues builds an evenly spaced value grid, endpoints included.
func SweepValues(from, to float64, n int) []float64 {
	if n < 2 {
		return []float64{from}
	}
	values := make([]float64, n)
	step := (to - from) / float64(n-1)
	for i := range values {
		values[i] = from + float64(i)*step
	}
	values[n-1] = to
	return values
}
