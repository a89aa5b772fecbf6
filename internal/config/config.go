package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Limits caps the animation tables. Zero means unbounded.
type Limits struct {
	PosSlots   int `yaml:"pos_slots"`   // keyframes per layer
	Cycles     int `yaml:"cycles"`      // cycles in the pool
	CycleItems int `yaml:"cycle_items"` // items per cycle and cycles per layer
	Layers     int `yaml:"layers"`      // highest layer number in cycle text
}

type Preview struct {
	Scale  int  `yaml:"scale"`
	Labels bool `yaml:"labels"`
	// Size used for layers that carry no extent of their own
	BoxWidth  int `yaml:"box_width"`
	BoxHeight int `yaml:"box_height"`
}

type Config struct {
	Limits    Limits  `yaml:"limits"`
	Curviness float64 `yaml:"curviness"`
	FPS       int     `yaml:"fps"`
	Workers   int     `yaml:"workers"` // 0 picks the number of CPUs
	Preview   Preview `yaml:"preview"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Limits: Limits{
			PosSlots:   1024,
			Cycles:     100,
			CycleItems: 50,
			Layers:     100,
		},
		Curviness: 0.35,
		FPS:       10,
		Preview: Preview{
			Scale:     1,
			Labels:    true,
			BoxWidth:  32,
			BoxHeight: 32,
		},
	}
}

// Load reads path over the defaults. Keys missing from the file keep their
// default values.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}
	return c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
