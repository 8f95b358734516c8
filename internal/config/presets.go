package config

import "sort"

var presets = map[string]*Config{
	"baseline": {
		Scenario: "uniform", ConsumerScheme: "explicit", ResourceScheme: "explicit",
		N: 100, M: 100, Dt: 0.01, Steps: 200,
		XLims: [2]float64{0, 1}, YLims: [2]float64{0, 1},
		Coefficients: CoefficientsConfig{Eps: 0, M1: 0.2, M2: 1.0, RIn: 1.0, KernelWidth: 0.2},
	},
	"mutation": {
		Scenario: "gaussian", ConsumerScheme: "explicit", ResourceScheme: "explicit",
		N: 100, M: 100, Dt: 0.005, Steps: 400,
		XLims: [2]float64{0, 1}, YLims: [2]float64{0, 1},
		Coefficients: CoefficientsConfig{Eps: 0.001, M1: 0.2, M2: 1.0, RIn: 1.0, KernelWidth: 0.2},
	},
	"quasistatic": {
		Scenario: "gaussian", ConsumerScheme: "explicit", ResourceScheme: "quasistatic",
		N: 100, M: 100, Dt: 0.01, Steps: 200,
		XLims: [2]float64{0, 1}, YLims: [2]float64{0, 1},
		Coefficients: CoefficientsConfig{Eps: 0.001, M1: 0.2, M2: 1.0, RIn: 1.0, KernelWidth: 0.2},
	},
	"specialists": {
		Scenario: "specialist", ConsumerScheme: "explicit", ResourceScheme: "quasistatic",
		N: 150, M: 150, Dt: 0.005, Steps: 600,
		XLims: [2]float64{0, 1}, YLims: [2]float64{0, 1},
		Coefficients: CoefficientsConfig{Eps: 0.0005, M1: 0.3, M2: 1.0, RIn: 1.5, KernelWidth: 0.15},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := presets[name]
	if !ok {
		return nil
	}
	copied := *cfg
	return &copied
}

func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
