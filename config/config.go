// Package config loads the ambient analysis configuration: the process-wide
// clock-imperfection model (spec.md §4.1/§9) and the driver's fix-point
// iteration bound (§9's "max-iteration cap... should be a configurable
// parameter"), both YAML-decodable the way
// vanderheijden86-beadwork/pkg/config/config.go decodes its own Config.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/adfeel220/saihu/curve"
)

// ClockConfig is the YAML-decodable form of curve.ClockConfig. Fields left
// unset in the YAML document keep DefaultClockConfig's values, since Load
// starts from the default and decodes on top of it.
type ClockConfig struct {
	Rho     float64 `yaml:"rho,omitempty"`
	Eta     float64 `yaml:"eta,omitempty"`
	Delta   float64 `yaml:"delta,omitempty"`
	Sync    bool    `yaml:"sync,omitempty"`
	Perfect bool    `yaml:"perfect,omitempty"`
}

// DriverConfig bounds the xtfa.CyclicFixPointDriver's fix-point loop and
// carries a CeilBursts precision setting, both named as open-question
// parameters in spec.md §9.
type DriverConfig struct {
	// MaxIterations bounds the cyclic fix-point driver; 0 means "use the
	// driver's own default of 100".
	MaxIterations int `yaml:"max_iterations,omitempty"`

	// CeilBurstsPrecision is decoded from the document, but nothing reads
	// it: CeilBursts always rounds max-delay-from-source up to 15 decimal
	// places.
	CeilBurstsPrecision int `yaml:"ceil_bursts_precision,omitempty"`
}

// Config is the top-level analysis configuration document.
type Config struct {
	Clock  ClockConfig  `yaml:"clock,omitempty"`
	Driver DriverConfig `yaml:"driver,omitempty"`
}

// Default returns a Config carrying curve.DefaultClockConfig's values and
// the driver's built-in defaults (MaxIterations 0 lets the caller fall back
// to xtfa's own default of 100).
func Default() Config {
	d := curve.DefaultClockConfig()
	return Config{
		Clock: ClockConfig{
			Rho:   d.Rho,
			Eta:   d.Eta,
			Delta: d.Delta,
			Sync:  d.Sync,
		},
	}
}

// Load reads and decodes a YAML config document from path, starting from
// Default() so unset fields keep their defaults. A missing file is not an
// error: Default() is returned unchanged, matching
// vanderheijden86-beadwork/pkg/config/config.go's LoadFrom.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: reading %q: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parsing %q: %w", path, err)
	}
	return cfg, nil
}

// ClockConfig converts the decoded configuration into the curve package's
// runtime ClockConfig.
func (c Config) ClockConfig() curve.ClockConfig {
	return curve.ClockConfig{
		Rho:     c.Clock.Rho,
		Eta:     c.Clock.Eta,
		Delta:   c.Clock.Delta,
		Sync:    c.Clock.Sync,
		Perfect: c.Clock.Perfect,
	}
}
