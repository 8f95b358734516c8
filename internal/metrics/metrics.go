// Package metrics implements run-level observables over the advancing
// fields.
package metrics

import (
	"github.com/san-kum/traitsim/internal/mesh"
	"github.com/san-kum/traitsim/internal/quad"
)

// Biomass tracks the total consumer population, the integral of u over the
// trait mesh at the last observed step.
type Biomass struct {
	xs        []float64
	integrate quad.Func
	last      float64
	samples   int
}

func NewBiomass(msh *mesh.Mesh) *Biomass {
	return &Biomass{xs: msh.X, integrate: quad.Simpson}
}

func (b *Biomass) Name() string { return "biomass" }

func (b *Biomass) Observe(u, r []float64, t float64) {
	if len(u) != len(b.xs) {
		return
	}
	b.last = b.integrate(b.xs, u)
	b.samples++
}

func (b *Biomass) Value() float64 {
	if b.samples == 0 {
		return 0
	}
	return b.last
}

func (b *Biomass) Reset() {
	b.last = 0
	b.samples = 0
}

// ResourceStock tracks the total standing resource, the integral of R over
// the resource mesh at the last observed step.
type ResourceStock struct {
	ys        []float64
	integrate quad.Func
	last      float64
	samples   int
}

func NewResourceStock(msh *mesh.Mesh) *ResourceStock {
	return &ResourceStock{ys: msh.Y, integrate: quad.Simpson}
}

func (s *ResourceStock) Name() string { return "resource_stock" }

func (s *ResourceStock) Observe(u, r []float64, t float64) {
	if len(r) != len(s.ys) {
		return
	}
	s.last = s.integrate(s.ys, r)
	s.samples++
}

func (s *ResourceStock) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return s.last
}

func (s *ResourceStock) Reset() {
	s.last = 0
	s.samples = 0
}

// MeanTrait tracks the population-weighted mean trait at the last observed
// step, the first moment of u over ∫u.
type MeanTrait struct {
	xs        []float64
	integrate quad.Func
	scratch   []float64
	last      float64
	samples   int
}

func NewMeanTrait(msh *mesh.Mesh) *MeanTrait {
	return &MeanTrait{
		xs:        msh.X,
		integrate: quad.Simpson,
		scratch:   make([]float64, len(msh.X)),
	}
}

func (m *MeanTrait) Name() string { return "mean_trait" }

func (m *MeanTrait) Observe(u, r []float64, t float64) {
	if len(u) != len(m.xs) {
		return
	}
	total := m.integrate(m.xs, u)
	if total == 0 {
		return
	}
	for i := range m.scratch {
		m.scratch[i] = m.xs[i] * u[i]
	}
	m.last = m.integrate(m.xs, m.scratch) / total
	m.samples++
}

func (m *MeanTrait) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.last
}

func (m *MeanTrait) Reset() {
	m.last = 0
	m.samples = 0
}
