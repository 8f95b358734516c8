// Package sim orchestrates the coupled advancement of the consumer and
// resource fields.
//
// The two fields form a strict causal chain within each time index: the
// consumer at n+1 needs the resource at n, and the resource at n+1 needs
// the consumer at n+1. Step preserves that order; Solve repeats it across
// the full horizon.
package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/traitsim/internal/grid"
	"github.com/san-kum/traitsim/internal/mesh"
	"github.com/san-kum/traitsim/internal/quad"
	"github.com/san-kum/traitsim/internal/solver"
)

// Metric observes the freshly finalized rows after every step and reduces
// them to a single value over the run.
type Metric interface {
	Name() string
	Observe(u, r []float64, t float64)
	Value() float64
	Reset()
}

// Observer is notified with the finalized rows after every step.
type Observer interface {
	OnStep(u, r []float64, t float64)
}

// Engine runs coupled problems with optional metrics and observers.
type Engine struct {
	schemes   *solver.Schemes
	integrate quad.Func
	metrics   []Metric
	observers []Observer
}

func New() *Engine {
	return &Engine{
		schemes:   solver.DefaultSchemes(),
		integrate: quad.Simpson,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (e *Engine) AddMetric(m Metric)     { e.metrics = append(e.metrics, m) }
func (e *Engine) AddObserver(o Observer) { e.observers = append(e.observers, o) }

// SetQuadrature replaces the quadrature used by both functionals.
func (e *Engine) SetQuadrature(fn quad.Func) { e.integrate = fn }

// Result exposes the advanced fields of one run. U and R are views into the
// solvers' buffers; rows past StepsTaken are unwritten.
type Result struct {
	Mesh       *mesh.Mesh
	Consumer   solver.Solver
	Resource   solver.Solver
	U, R       *grid.Field
	Times      []float64
	Metrics    map[string]float64
	StepsTaken int
}

// Solve runs p to completion with a default engine.
func Solve(ctx context.Context, p Problem) (*Result, error) {
	return New().Solve(ctx, p)
}

// Build samples the problem coefficients and constructs both solvers
// without advancing them.
func (e *Engine) Build(p Problem) (solver.Solver, solver.Solver, *mesh.Mesh, error) {
	p = p.withDefaults()
	if err := p.validate(); err != nil {
		return nil, nil, nil, err
	}

	msh, err := mesh.New(p.XLims, p.YLims, p.N, p.M, p.Dt, p.Steps)
	if err != nil {
		return nil, nil, nil, err
	}

	coeffs := solver.Coeffs{
		M1:  mesh.Sample(p.M1, msh.X),
		M2:  mesh.Sample(p.M2, msh.Y),
		R:   mesh.Sample(p.R, msh.X),
		Rin: mesh.Sample(p.Rin, msh.Y),
		K:   mesh.SampleKernel(p.K, msh.X, msh.Y),
		Eps: p.Eps,
		U0:  mesh.Sample(p.U0, msh.X),
		R0:  mesh.Sample(p.R0, msh.Y),
	}

	makeConsumer, err := e.schemes.Consumer(p.ConsumerScheme)
	if err != nil {
		return nil, nil, nil, err
	}
	makeResource, err := e.schemes.Resource(p.ResourceScheme)
	if err != nil {
		return nil, nil, nil, err
	}

	consumer, err := makeConsumer(coeffs, msh, e.integrate)
	if err != nil {
		return nil, nil, nil, err
	}
	resource, err := makeResource(coeffs, msh, e.integrate)
	if err != nil {
		return nil, nil, nil, err
	}
	return consumer, resource, msh, nil
}

// Step advances both solvers across time index n in causal order:
// resource row n into the consumer, consumer row n+1 into the resource,
// then the resource step itself.
func Step(consumer, resource solver.Solver, n int) error {
	if err := consumer.ActualizeRow(resource.Row(n), n); err != nil {
		return fmt.Errorf("sim: consumer row %d: %w", n, err)
	}
	uNext, err := consumer.ActualizeStep(n)
	if err != nil {
		return fmt.Errorf("sim: consumer step %d: %w", n, err)
	}
	if err := resource.ActualizeRow(uNext, n+1); err != nil {
		return fmt.Errorf("sim: resource row %d: %w", n+1, err)
	}
	if _, err := resource.ActualizeStep(n); err != nil {
		return fmt.Errorf("sim: resource step %d: %w", n, err)
	}
	return nil
}

// Solve advances the coupled system across the full horizon. A canceled
// context returns the partial result together with the context error.
func (e *Engine) Solve(ctx context.Context, p Problem) (*Result, error) {
	consumer, resource, msh, err := e.Build(p)
	if err != nil {
		return nil, err
	}

	for _, m := range e.metrics {
		m.Reset()
	}

	result := &Result{
		Mesh:     msh,
		Consumer: consumer,
		Resource: resource,
		U:        consumer.Field(),
		R:        resource.Field(),
		Times:    make([]float64, 0, msh.T+1),
		Metrics:  make(map[string]float64),
	}
	result.Times = append(result.Times, 0)

	for n := 0; n < msh.T; n++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if err := Step(consumer, resource, n); err != nil {
			return nil, err
		}

		t := float64(n+1) * msh.Dt
		result.Times = append(result.Times, t)
		result.StepsTaken++

		for _, m := range e.metrics {
			m.Observe(consumer.Row(n+1), resource.Row(n+1), t)
		}
		for _, o := range e.observers {
			o.OnStep(consumer.Row(n+1), resource.Row(n+1), t)
		}
	}

	for _, m := range e.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}
