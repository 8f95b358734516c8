package mesh

import (
	"math"
	"testing"
)

func TestNewMesh(t *testing.T) {
	m, err := New([2]float64{0, 1}, [2]float64{0, 2}, 100, 50, 0.01, 200)
	if err != nil {
		t.Fatalf("mesh construction failed: %v", err)
	}

	if len(m.X) != 102 {
		t.Errorf("expected 102 trait points, got %d", len(m.X))
	}
	if len(m.Y) != 52 {
		t.Errorf("expected 52 resource points, got %d", len(m.Y))
	}
	if m.X[0] != 0 || m.X[len(m.X)-1] != 1 {
		t.Errorf("trait mesh endpoints wrong: %f, %f", m.X[0], m.X[len(m.X)-1])
	}
	if math.Abs(m.H1-1.0/101) > 1e-12 {
		t.Errorf("expected h1 %f, got %f", 1.0/101, m.H1)
	}
	if math.Abs(m.H2-2.0/51) > 1e-12 {
		t.Errorf("expected h2 %f, got %f", 2.0/51, m.H2)
	}
}

func TestNewMeshInvalid(t *testing.T) {
	tests := []struct {
		name  string
		xLims [2]float64
		yLims [2]float64
		n, m  int
		dt    float64
		steps int
	}{
		{"zero dt", [2]float64{0, 1}, [2]float64{0, 1}, 10, 10, 0, 10},
		{"negative dt", [2]float64{0, 1}, [2]float64{0, 1}, 10, 10, -0.1, 10},
		{"zero steps", [2]float64{0, 1}, [2]float64{0, 1}, 10, 10, 0.1, 0},
		{"zero n", [2]float64{0, 1}, [2]float64{0, 1}, 0, 10, 0.1, 10},
		{"zero m", [2]float64{0, 1}, [2]float64{0, 1}, 10, 0, 0.1, 10},
		{"reversed x limits", [2]float64{1, 0}, [2]float64{0, 1}, 10, 10, 0.1, 10},
		{"reversed y limits", [2]float64{0, 1}, [2]float64{1, 1}, 10, 10, 0.1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.xLims, tt.yLims, tt.n, tt.m, tt.dt, tt.steps); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestSample(t *testing.T) {
	m, err := New([2]float64{0, 1}, [2]float64{0, 1}, 2, 2, 0.1, 1)
	if err != nil {
		t.Fatal(err)
	}

	vals := Sample(func(x float64) float64 { return 2 * x }, m.X)
	if len(vals) != 4 {
		t.Fatalf("expected 4 samples, got %d", len(vals))
	}
	if vals[0] != 0 || vals[3] != 2 {
		t.Errorf("sampled endpoints wrong: %f, %f", vals[0], vals[3])
	}
}

func TestSampleKernel(t *testing.T) {
	xs := []float64{0, 0.5, 1}
	ys := []float64{0, 1}

	k := SampleKernel(func(x, y float64) float64 { return x + y }, xs, ys)
	r, c := k.Dims()
	if r != 3 || c != 2 {
		t.Fatalf("expected 3x2 kernel, got %dx%d", r, c)
	}
	if k.At(1, 1) != 1.5 {
		t.Errorf("expected k(0.5,1)=1.5, got %f", k.At(1, 1))
	}
}
