// Package functional implements the memoized nonlocal integral terms that
// couple the consumer and resource fields.
//
// F(n, j) approximates the integral over y of K(x_j, y)·R(n, y), the total
// resource intake available to trait x_j. G(n, k) approximates the integral
// over x of r(x)·K(x, y_k)·u(n, x), the total consumption pressure on
// resource type y_k. Values are computed lazily and cached per
// (time, point) entry; actualizing a dependency row invalidates exactly the
// cache row that was derived from it.
package functional

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/traitsim/internal/grid"
	"github.com/san-kum/traitsim/internal/mesh"
	"github.com/san-kum/traitsim/internal/quad"
)

// F couples the resource field into the consumer equation. It holds a
// private copy of R; evaluation never mutates it.
type F struct {
	k         *mat.Dense  // (N+2)×(M+2) consumption kernel
	msh       *mesh.Mesh
	res       *grid.Field // private copy of R, (T+1)×(M+2)
	cache     *grid.Field // (T+1)×(N+2)
	mask      *grid.Mask
	integrate quad.Func
	scratch   []float64
}

func NewF(k *mat.Dense, r0 []float64, msh *mesh.Mesh, integrate quad.Func) (*F, error) {
	if err := checkKernel(k, msh); err != nil {
		return nil, err
	}
	if integrate == nil {
		integrate = quad.Simpson
	}
	res := grid.NewField(msh.T+1, msh.M+2)
	if err := res.SetRow(0, r0); err != nil {
		return nil, err
	}
	return &F{
		k:         k,
		msh:       msh,
		res:       res,
		cache:     grid.NewField(msh.T+1, msh.N+2),
		mask:      grid.NewMask(msh.T+1, msh.N+2),
		integrate: integrate,
		scratch:   make([]float64, msh.M+2),
	}, nil
}

// ActualizeRow replaces the functional's copy of the resource row n and
// invalidates every cached entry that was computed from it.
func (f *F) ActualizeRow(row []float64, n int) error {
	if err := f.res.SetRow(n, row); err != nil {
		return err
	}
	f.mask.ClearRow(n)
	return nil
}

// Eval returns the value at (n, j), computing the quadrature at most once
// between invalidations of row n.
func (f *F) Eval(n, j int) float64 {
	if f.mask.Valid(n, j) {
		return f.cache.Row(n)[j]
	}
	kj := f.k.RawRowView(j)
	rn := f.res.Row(n)
	for i := range f.scratch {
		f.scratch[i] = kj[i] * rn[i]
	}
	v := f.integrate(f.msh.Y, f.scratch)
	f.cache.Row(n)[j] = v
	f.mask.Set(n, j)
	return v
}

// G couples the consumer field into the resource equation. It holds a
// private copy of u plus the trait-dependent growth rate r.
type G struct {
	r         []float64
	k         *mat.Dense
	msh       *mesh.Mesh
	pop       *grid.Field // private copy of u, (T+1)×(N+2)
	cache     *grid.Field // (T+1)×(M+2)
	mask      *grid.Mask
	integrate quad.Func
	scratch   []float64
}

func NewG(r []float64, k *mat.Dense, u0 []float64, msh *mesh.Mesh, integrate quad.Func) (*G, error) {
	if err := checkKernel(k, msh); err != nil {
		return nil, err
	}
	if len(r) != msh.N+2 {
		return nil, fmt.Errorf("%w: growth rate has %d points, want %d", grid.ErrShapeMismatch, len(r), msh.N+2)
	}
	if integrate == nil {
		integrate = quad.Simpson
	}
	pop := grid.NewField(msh.T+1, msh.N+2)
	if err := pop.SetRow(0, u0); err != nil {
		return nil, err
	}
	return &G{
		r:         r,
		k:         k,
		msh:       msh,
		pop:       pop,
		cache:     grid.NewField(msh.T+1, msh.M+2),
		mask:      grid.NewMask(msh.T+1, msh.M+2),
		integrate: integrate,
		scratch:   make([]float64, msh.N+2),
	}, nil
}

// ActualizeRow replaces the functional's copy of the population row n and
// invalidates cache row n.
func (g *G) ActualizeRow(row []float64, n int) error {
	if err := g.pop.SetRow(n, row); err != nil {
		return err
	}
	g.mask.ClearRow(n)
	return nil
}

// Eval returns the value at (n, k), computing the quadrature at most once
// between invalidations of row n.
func (g *G) Eval(n, k int) float64 {
	if g.mask.Valid(n, k) {
		return g.cache.Row(n)[k]
	}
	un := g.pop.Row(n)
	for i := range g.scratch {
		g.scratch[i] = g.r[i] * g.k.At(i, k) * un[i]
	}
	v := g.integrate(g.msh.X, g.scratch)
	g.cache.Row(n)[k] = v
	g.mask.Set(n, k)
	return v
}

func checkKernel(k *mat.Dense, msh *mesh.Mesh) error {
	r, c := k.Dims()
	if r != msh.N+2 || c != msh.M+2 {
		return fmt.Errorf("%w: kernel is %dx%d, want %dx%d", grid.ErrShapeMismatch, r, c, msh.N+2, msh.M+2)
	}
	return nil
}
