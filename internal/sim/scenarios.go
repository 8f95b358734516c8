package sim

import (
	"fmt"
	"math"
	"sort"
)

// Params are the scalar knobs the built-in scenarios expose. M1, M2 and RIn
// are flat rates; KernelWidth shapes the consumption kernel where the
// scenario uses a non-flat one.
type Params struct {
	Eps         float64
	M1          float64
	M2          float64
	RIn         float64
	KernelWidth float64
}

// Scenarios maps names to built-in coefficient sets. The discretization
// fields of the returned Problem are left for the caller to fill in.
type Scenarios struct {
	byName map[string]func(Params) Problem
}

func DefaultScenarios() *Scenarios {
	s := &Scenarios{byName: make(map[string]func(Params) Problem)}

	// Flat kernel: every consumer eats every resource type equally.
	s.byName["uniform"] = func(p Params) Problem {
		return Problem{
			U0:    bump(0.5, 0.1),
			R0:    constant(equilibrium(p)),
			R:     constant(1),
			Rin:   constant(p.RIn),
			M1:    constant(p.M1),
			M2:    constant(p.M2),
			K:     func(x, y float64) float64 { return 1 },
			Eps:   p.Eps,
			XLims: [2]float64{0, 1},
		}
	}

	// Consumers feed preferentially on resource types near their own trait.
	s.byName["gaussian"] = func(p Params) Problem {
		w := p.KernelWidth
		return Problem{
			U0:    bump(0.5, 0.1),
			R0:    constant(equilibrium(p)),
			R:     constant(1),
			Rin:   constant(p.RIn),
			M1:    constant(p.M1),
			M2:    constant(p.M2),
			K:     gaussianKernel(w),
			Eps:   p.Eps,
			XLims: [2]float64{0, 1},
		}
	}

	// Narrow feeding range plus mortality rising away from the trait
	// center; selects for specialists near the middle of the interval.
	s.byName["specialist"] = func(p Params) Problem {
		w := p.KernelWidth / 2
		return Problem{
			U0:  bump(0.5, 0.15),
			R0:  constant(equilibrium(p)),
			R:   constant(1),
			Rin: constant(p.RIn),
			M1: func(x float64) float64 {
				d := x - 0.5
				return p.M1 * (1 + 4*d*d)
			},
			M2:    constant(p.M2),
			K:     gaussianKernel(w),
			Eps:   p.Eps,
			XLims: [2]float64{0, 1},
		}
	}

	return s
}

func (s *Scenarios) Get(name string) (func(Params) Problem, error) {
	fn, ok := s.byName[name]
	if !ok {
		return nil, fmt.Errorf("sim: unknown scenario %q (available: %v)", name, s.List())
	}
	return fn, nil
}

func (s *Scenarios) List() []string {
	names := make([]string, 0, len(s.byName))
	for name := range s.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func constant(v float64) func(float64) float64 {
	return func(float64) float64 { return v }
}

func bump(center, width float64) func(float64) float64 {
	return func(x float64) float64 {
		d := (x - center) / width
		return math.Exp(-d * d)
	}
}

func gaussianKernel(width float64) func(x, y float64) float64 {
	return func(x, y float64) float64 {
		d := x - y
		return math.Exp(-d * d / (2 * width * width))
	}
}

// equilibrium seeds the resource at its consumer-free steady state.
func equilibrium(p Params) float64 {
	if p.M2 > 0 {
		return p.RIn / p.M2
	}
	return p.RIn
}
