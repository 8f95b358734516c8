package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt          = 0.01
	DefaultSteps       = 100
	DefaultN           = 100
	DefaultEps         = 0.0001
	DefaultM1          = 0.2
	DefaultM2          = 1.0
	DefaultRIn         = 1.0
	DefaultKernelWidth = 0.2
)

type Config struct {
	Scenario       string             `yaml:"scenario"`
	ConsumerScheme string             `yaml:"consumer_scheme"`
	ResourceScheme string             `yaml:"resource_scheme"`
	N              int                `yaml:"n"`
	M              int                `yaml:"m"`
	Dt             float64            `yaml:"dt"`
	Steps          int                `yaml:"steps"`
	XLims          [2]float64         `yaml:"x_lims,flow"`
	YLims          [2]float64         `yaml:"y_lims,flow"`
	Coefficients   CoefficientsConfig `yaml:"coefficients"`
}

type CoefficientsConfig struct {
	Eps         float64 `yaml:"eps"`
	M1          float64 `yaml:"m1"`
	M2          float64 `yaml:"m2"`
	RIn         float64 `yaml:"r_in"`
	KernelWidth float64 `yaml:"kernel_width"`
}

func DefaultConfig() *Config {
	return &Config{
		Scenario:       "uniform",
		ConsumerScheme: "explicit",
		ResourceScheme: "explicit",
		N:              DefaultN,
		M:              DefaultN,
		Dt:             DefaultDt,
		Steps:          DefaultSteps,
		XLims:          [2]float64{0, 1},
		YLims:          [2]float64{0, 1},
		Coefficients: CoefficientsConfig{
			Eps:         DefaultEps,
			M1:          DefaultM1,
			M2:          DefaultM2,
			RIn:         DefaultRIn,
			KernelWidth: DefaultKernelWidth,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("config: dt must be positive, got %f", c.Dt)
	}
	if c.Steps < 1 {
		return fmt.Errorf("config: steps must be positive, got %d", c.Steps)
	}
	if c.N < 1 || c.M < 1 {
		return fmt.Errorf("config: mesh sizes must be positive, got n=%d m=%d", c.N, c.M)
	}
	if c.Coefficients.Eps < 0 {
		return fmt.Errorf("config: eps must be non-negative, got %f", c.Coefficients.Eps)
	}
	return nil
}
