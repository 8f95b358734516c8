package solver

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/traitsim/internal/functional"
	"github.com/san-kum/traitsim/internal/grid"
	"github.com/san-kum/traitsim/internal/mesh"
	"github.com/san-kum/traitsim/internal/quad"
)

// Consumer advances the trait-structured population u. Each step applies a
// tridiagonal transition operator Identity + dt·(diffusion + reaction); the
// boundary rows double their single off-diagonal weight, the discrete form
// of the zero-flux condition at the trait-space edges.
type Consumer struct {
	stepper
	msh  *mesh.Mesh
	m1   []float64
	r    []float64
	eps  float64
	u    *grid.Field
	res  *grid.Field // companion copy of R
	mask *grid.Mask
	f    *functional.F
	band []float64
	next *mat.VecDense
}

func NewConsumer(m1 []float64, eps float64, r []float64, k *mat.Dense, u0, r0 []float64, msh *mesh.Mesh, integrate quad.Func) (*Consumer, error) {
	if eps < 0 {
		return nil, fmt.Errorf("%w: mutation rate eps = %g", ErrParameterBounds, eps)
	}
	if err := checkLen("m1", m1, msh.N+2); err != nil {
		return nil, err
	}
	if err := checkLen("r", r, msh.N+2); err != nil {
		return nil, err
	}

	f, err := functional.NewF(k, r0, msh, integrate)
	if err != nil {
		return nil, err
	}

	u := grid.NewField(msh.T+1, msh.N+2)
	if err := u.SetRow(0, u0); err != nil {
		return nil, err
	}
	res := grid.NewField(msh.T+1, msh.M+2)
	if err := res.SetRow(0, r0); err != nil {
		return nil, err
	}
	mask := grid.NewMask(msh.T+1, msh.N+2)
	mask.SetRow(0)

	return &Consumer{
		msh:  msh,
		m1:   m1,
		r:    r,
		eps:  eps,
		u:    u,
		res:  res,
		mask: mask,
		f:    f,
		band: make([]float64, (msh.N+2)*3),
		next: mat.NewVecDense(msh.N+2, nil),
	}, nil
}

// ActualizeRow stores the freshly finalized resource row n, forwards it to
// the functional F, and marks the solver's own row n as unconfirmed.
func (c *Consumer) ActualizeRow(row []float64, n int) error {
	if err := c.res.SetRow(n, row); err != nil {
		return err
	}
	if err := c.f.ActualizeRow(row, n); err != nil {
		return err
	}
	c.mask.ClearRow(n)
	return nil
}

// ActualizeStep derives u[n+1] from u[n]. An already-finalized row is
// returned unchanged and does not move the step counter.
func (c *Consumer) ActualizeStep(n int) ([]float64, error) {
	if !c.isNextStep(n) {
		return nil, fmt.Errorf("%w: step %d with current step %d", ErrOutOfSequence, n, c.current)
	}
	if c.mask.RowValid(n + 1) {
		return c.u.Row(n + 1), nil
	}

	op := c.transition(n)
	c.next.MulVec(op, mat.NewVecDense(c.msh.N+2, c.u.Row(n)))
	if err := c.u.SetRow(n+1, c.next.RawVector().Data); err != nil {
		return nil, err
	}
	c.mask.SetRow(n + 1)
	c.advance(n)
	return c.u.Row(n + 1), nil
}

// transition assembles the banded operator for step n. alpha carries the
// mutation diffusion; the diagonal carries survival plus resource uptake
// through F.
func (c *Consumer) transition(n int) *mat.BandDense {
	size := c.msh.N + 2
	alpha := c.eps * c.msh.Dt / (c.msh.H1 * c.msh.H1)

	for i := 0; i < size; i++ {
		lower, upper := alpha, alpha
		switch i {
		case 0:
			lower, upper = 0, 2*alpha
		case size - 1:
			lower, upper = 2*alpha, 0
		}
		beta := 1 - 2*alpha + c.msh.Dt*(-c.m1[i]+c.r[i]*c.f.Eval(n, i))
		c.band[3*i] = lower
		c.band[3*i+1] = beta
		c.band[3*i+2] = upper
	}
	return mat.NewBandDense(size, size, 1, 1, c.band)
}

func (c *Consumer) Row(n int) []float64 { return c.u.Row(n) }

func (c *Consumer) Field() *grid.Field { return c.u }

func checkLen(name string, v []float64, want int) error {
	if len(v) != want {
		return fmt.Errorf("%w: %s has %d points, want %d", grid.ErrShapeMismatch, name, len(v), want)
	}
	return nil
}
