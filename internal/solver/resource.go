package solver

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/traitsim/internal/functional"
	"github.com/san-kum/traitsim/internal/grid"
	"github.com/san-kum/traitsim/internal/mesh"
	"github.com/san-kum/traitsim/internal/quad"
)

// resource holds the state shared by both resource update schemes.
type resource struct {
	stepper
	msh  *mesh.Mesh
	m2   []float64
	rin  []float64
	res  *grid.Field
	pop  *grid.Field // companion copy of u
	mask *grid.Mask
	g    *functional.G
	next []float64
}

func newResource(m2, rin, r []float64, k *mat.Dense, u0, r0 []float64, msh *mesh.Mesh, integrate quad.Func) (*resource, error) {
	if err := checkLen("m2", m2, msh.M+2); err != nil {
		return nil, err
	}
	if err := checkLen("R_in", rin, msh.M+2); err != nil {
		return nil, err
	}

	g, err := functional.NewG(r, k, u0, msh, integrate)
	if err != nil {
		return nil, err
	}

	res := grid.NewField(msh.T+1, msh.M+2)
	if err := res.SetRow(0, r0); err != nil {
		return nil, err
	}
	pop := grid.NewField(msh.T+1, msh.N+2)
	if err := pop.SetRow(0, u0); err != nil {
		return nil, err
	}
	mask := grid.NewMask(msh.T+1, msh.M+2)
	mask.SetRow(0)

	return &resource{
		msh:  msh,
		m2:   m2,
		rin:  rin,
		res:  res,
		pop:  pop,
		mask: mask,
		g:    g,
		next: make([]float64, msh.M+2),
	}, nil
}

// ActualizeRow stores the freshly derived population row n, forwards it to
// the functional G, and marks the solver's own row n as unconfirmed.
func (s *resource) ActualizeRow(row []float64, n int) error {
	if err := s.pop.SetRow(n, row); err != nil {
		return err
	}
	if err := s.g.ActualizeRow(row, n); err != nil {
		return err
	}
	s.mask.ClearRow(n)
	return nil
}

func (s *resource) Row(n int) []float64 { return s.res.Row(n) }

func (s *resource) Field() *grid.Field { return s.res }

// ExplicitResource steps the resource forward with the fully explicit
// update R[n+1] = (1 − dt·(m2 + G(n)))·R[n] + dt·R_in. Simple, but may go
// negative when dt is large relative to m2 + G(n).
type ExplicitResource struct {
	*resource
}

func NewExplicitResource(m2, rin, r []float64, k *mat.Dense, u0, r0 []float64, msh *mesh.Mesh, integrate quad.Func) (*ExplicitResource, error) {
	base, err := newResource(m2, rin, r, k, u0, r0, msh, integrate)
	if err != nil {
		return nil, err
	}
	return &ExplicitResource{resource: base}, nil
}

func (s *ExplicitResource) ActualizeStep(n int) ([]float64, error) {
	if !s.isNextStep(n) {
		return nil, fmt.Errorf("%w: step %d with current step %d", ErrOutOfSequence, n, s.current)
	}
	if s.mask.RowValid(n + 1) {
		return s.res.Row(n + 1), nil
	}

	prev := s.res.Row(n)
	dt := s.msh.Dt
	for k := range s.next {
		s.next[k] = (1-dt*(s.m2[k]+s.g.Eval(n, k)))*prev[k] + dt*s.rin[k]
	}
	if err := s.res.SetRow(n+1, s.next); err != nil {
		return nil, err
	}
	s.mask.SetRow(n + 1)
	s.advance(n)
	return s.res.Row(n + 1), nil
}

// QuasiStaticResource assumes the resource equilibrates within one step:
// R[n+1] = R_in / (m2 + G(n+1)). It reads the functional one row ahead, so
// the driver must supply u[n+1] first. The update stays non-negative
// whenever R_in and m2 are.
type QuasiStaticResource struct {
	*resource
}

func NewQuasiStaticResource(m2, rin, r []float64, k *mat.Dense, u0, r0 []float64, msh *mesh.Mesh, integrate quad.Func) (*QuasiStaticResource, error) {
	base, err := newResource(m2, rin, r, k, u0, r0, msh, integrate)
	if err != nil {
		return nil, err
	}
	return &QuasiStaticResource{resource: base}, nil
}

func (s *QuasiStaticResource) ActualizeStep(n int) ([]float64, error) {
	if !s.isNextStep(n) {
		return nil, fmt.Errorf("%w: step %d with current step %d", ErrOutOfSequence, n, s.current)
	}
	if s.mask.RowValid(n + 1) {
		return s.res.Row(n + 1), nil
	}

	for k := range s.next {
		s.next[k] = s.rin[k] / (s.m2[k] + s.g.Eval(n+1, k))
	}
	if err := s.res.SetRow(n+1, s.next); err != nil {
		return nil, err
	}
	s.mask.SetRow(n + 1)
	s.advance(n)
	return s.res.Row(n + 1), nil
}
