package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/traitsim/internal/mesh"
)

func testMesh(t *testing.T) *mesh.Mesh {
	t.Helper()
	msh, err := mesh.New([2]float64{0, 1}, [2]float64{0, 1}, 3, 3, 0.1, 1)
	if err != nil {
		t.Fatalf("mesh.New: %v", err)
	}
	return msh
}

func constRow(n int, v float64) []float64 {
	row := make([]float64, n)
	for i := range row {
		row[i] = v
	}
	return row
}

func TestBiomass(t *testing.T) {
	msh := testMesh(t)
	b := NewBiomass(msh)

	if got := b.Value(); got != 0 {
		t.Errorf("Value before any observation = %v, want 0", got)
	}

	b.Observe(constRow(len(msh.X), 2), nil, 0.1)
	if got := b.Value(); math.Abs(got-2) > 1e-12 {
		t.Errorf("Value = %v, want 2", got)
	}

	// Mismatched rows are skipped, the last value stands.
	b.Observe(constRow(2, 99), nil, 0.2)
	if got := b.Value(); math.Abs(got-2) > 1e-12 {
		t.Errorf("Value after skipped observation = %v, want 2", got)
	}

	b.Reset()
	if got := b.Value(); got != 0 {
		t.Errorf("Value after Reset = %v, want 0", got)
	}
}

func TestResourceStock(t *testing.T) {
	msh := testMesh(t)
	s := NewResourceStock(msh)

	s.Observe(nil, constRow(len(msh.Y), 3), 0.1)
	if got := s.Value(); math.Abs(got-3) > 1e-12 {
		t.Errorf("Value = %v, want 3", got)
	}
	if s.Name() != "resource_stock" {
		t.Errorf("Name = %q", s.Name())
	}
}

func TestMeanTrait(t *testing.T) {
	msh := testMesh(t)
	m := NewMeanTrait(msh)

	// A flat population has its mean at the interval midpoint.
	m.Observe(constRow(len(msh.X), 1), nil, 0.1)
	if got := m.Value(); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("Value = %v, want 0.5", got)
	}

	// An empty population leaves the mean undefined; keep the last value.
	m.Observe(constRow(len(msh.X), 0), nil, 0.2)
	if got := m.Value(); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("Value after empty observation = %v, want 0.5", got)
	}
}

func TestMeanTraitWeighted(t *testing.T) {
	msh := testMesh(t)
	m := NewMeanTrait(msh)

	// Weight the population linearly: mean of x under density x over [0,1]
	// is (1/3)/(1/2) = 2/3.
	u := make([]float64, len(msh.X))
	for i, x := range msh.X {
		u[i] = x
	}
	m.Observe(u, nil, 0.1)
	if got := m.Value(); math.Abs(got-2.0/3.0) > 1e-9 {
		t.Errorf("Value = %v, want 2/3", got)
	}
}
