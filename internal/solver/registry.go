package solver

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/traitsim/internal/mesh"
	"github.com/san-kum/traitsim/internal/quad"
)

// Coeffs bundles the sampled model coefficients a scheme constructor needs.
type Coeffs struct {
	M1, M2 []float64
	R, Rin []float64
	K      *mat.Dense
	Eps    float64
	U0, R0 []float64
}

// Factory builds a solver for one field from the sampled coefficients.
type Factory func(c Coeffs, msh *mesh.Mesh, integrate quad.Func) (Solver, error)

// Schemes is the closed registry of update schemes, resolved at
// configuration time.
type Schemes struct {
	consumer map[string]Factory
	resource map[string]Factory
}

func DefaultSchemes() *Schemes {
	s := &Schemes{
		consumer: make(map[string]Factory),
		resource: make(map[string]Factory),
	}

	s.consumer["explicit"] = func(c Coeffs, msh *mesh.Mesh, integrate quad.Func) (Solver, error) {
		return NewConsumer(c.M1, c.Eps, c.R, c.K, c.U0, c.R0, msh, integrate)
	}

	s.resource["explicit"] = func(c Coeffs, msh *mesh.Mesh, integrate quad.Func) (Solver, error) {
		return NewExplicitResource(c.M2, c.Rin, c.R, c.K, c.U0, c.R0, msh, integrate)
	}
	s.resource["quasistatic"] = func(c Coeffs, msh *mesh.Mesh, integrate quad.Func) (Solver, error) {
		return NewQuasiStaticResource(c.M2, c.Rin, c.R, c.K, c.U0, c.R0, msh, integrate)
	}

	return s
}

func (s *Schemes) Consumer(name string) (Factory, error) {
	fn, ok := s.consumer[name]
	if !ok {
		return nil, fmt.Errorf("%w: consumer scheme %q", ErrUnknownScheme, name)
	}
	return fn, nil
}

func (s *Schemes) Resource(name string) (Factory, error) {
	fn, ok := s.resource[name]
	if !ok {
		return nil, fmt.Errorf("%w: resource scheme %q", ErrUnknownScheme, name)
	}
	return fn, nil
}

func (s *Schemes) ListConsumer() []string { return sortedKeys(s.consumer) }

func (s *Schemes) ListResource() []string { return sortedKeys(s.resource) }

func sortedKeys(m map[string]Factory) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
