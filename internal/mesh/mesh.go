// Package mesh builds the shared trait and resource discretization grids
// and samples continuous coefficient functions onto them.
package mesh

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Mesh is the fixed discretization both fields share. X spans the trait
// interval with N+2 points, Y the resource interval with M+2 points;
// neither changes after construction.
type Mesh struct {
	X, Y []float64
	H1   float64 // trait spacing
	H2   float64 // resource spacing
	Dt   float64
	N, M int
	T    int // number of time steps
}

func New(xLims, yLims [2]float64, n, m int, dt float64, steps int) (*Mesh, error) {
	if n < 1 || m < 1 {
		return nil, fmt.Errorf("mesh: interior point counts must be positive, got N=%d M=%d", n, m)
	}
	if dt <= 0 {
		return nil, fmt.Errorf("mesh: dt must be positive, got %f", dt)
	}
	if steps < 1 {
		return nil, fmt.Errorf("mesh: step count must be positive, got %d", steps)
	}
	if xLims[1] <= xLims[0] {
		return nil, fmt.Errorf("mesh: trait limits must be increasing, got %v", xLims)
	}
	if yLims[1] <= yLims[0] {
		return nil, fmt.Errorf("mesh: resource limits must be increasing, got %v", yLims)
	}

	x := linspace(xLims[0], xLims[1], n+2)
	y := linspace(yLims[0], yLims[1], m+2)

	return &Mesh{
		X:  x,
		Y:  y,
		H1: x[1] - x[0],
		H2: y[1] - y[0],
		Dt: dt,
		N:  n,
		M:  m,
		T:  steps,
	}, nil
}

func linspace(a, b float64, n int) []float64 {
	pts := make([]float64, n)
	step := (b - a) / float64(n-1)
	for i := range pts {
		pts[i] = a + float64(i)*step
	}
	pts[n-1] = b
	return pts
}

// Sample evaluates f at every mesh point.
func Sample(f func(float64) float64, pts []float64) []float64 {
	out := make([]float64, len(pts))
	for i, p := range pts {
		out[i] = f(p)
	}
	return out
}

// SampleKernel evaluates k on the full X×Y product grid, row i holding
// k(x_i, ·) over the resource mesh.
func SampleKernel(k func(x, y float64) float64, xs, ys []float64) *mat.Dense {
	out := mat.NewDense(len(xs), len(ys), nil)
	for i, x := range xs {
		for j, y := range ys {
			out.Set(i, j, k(x, y))
		}
	}
	return out
}
