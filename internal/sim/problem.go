package sim

import "fmt"

// Problem describes a run in terms of continuous coefficient functions;
// Solve samples them onto the mesh it builds.
type Problem struct {
	U0, R0 func(float64) float64 // initial consumer / resource densities
	R      func(float64) float64 // trait-dependent growth rate
	Rin    func(float64) float64 // resource supply rate
	M1     func(float64) float64 // consumer mortality
	M2     func(float64) float64 // resource decay rate
	K      func(x, y float64) float64
	Eps    float64 // mutation rate

	XLims, YLims [2]float64
	N, M         int
	Dt           float64
	Steps        int

	ConsumerScheme string
	ResourceScheme string
}

// withDefaults mirrors the historical entry point: the resource interval
// defaults to the trait interval, M to N, and both schemes to "explicit".
func (p Problem) withDefaults() Problem {
	if p.YLims == ([2]float64{}) {
		p.YLims = p.XLims
	}
	if p.M == 0 {
		p.M = p.N
	}
	if p.ConsumerScheme == "" {
		p.ConsumerScheme = "explicit"
	}
	if p.ResourceScheme == "" {
		p.ResourceScheme = "explicit"
	}
	return p
}

func (p Problem) validate() error {
	for name, fn := range map[string]func(float64) float64{
		"U0": p.U0, "R0": p.R0, "R": p.R, "Rin": p.Rin, "M1": p.M1, "M2": p.M2,
	} {
		if fn == nil {
			return fmt.Errorf("sim: coefficient %s is nil", name)
		}
	}
	if p.K == nil {
		return fmt.Errorf("sim: kernel K is nil")
	}
	if p.Dt <= 0 {
		return fmt.Errorf("sim: dt must be positive, got %f", p.Dt)
	}
	if p.Steps < 1 {
		return fmt.Errorf("sim: step count must be positive, got %d", p.Steps)
	}
	if p.N < 1 || p.M < 1 {
		return fmt.Errorf("sim: mesh sizes must be positive, got N=%d M=%d", p.N, p.M)
	}
	return nil
}
