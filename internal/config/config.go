package config

import (
	"fmt"
	"math"
	"os"

	"github.com/san-kum/phasependulum/internal/dynamo"
	"github.com/san-kum/phasependulum/internal/sim"
	"gopkg.in/yaml.v3"
)

const (
	DefaultGravity     = 9.8
	DefaultLength      = 10.0
	DefaultDamping     = 0.0
	DefaultAngle       = math.Pi / 4
	DefaultRange       = 2 * math.Pi
	DefaultInterval    = 20.0
	DefaultHeight      = 400.0
	DefaultVectorScale = 4.0
	DefaultColorScale  = 0.25
)

type Config struct {
	Params      dynamo.Params   `yaml:"params"`
	InitState   InitStateConfig `yaml:"init_state"`
	Propagation sim.Options     `yaml:"propagation"`
	Field       FieldConfig     `yaml:"field"`
}

type InitStateConfig struct {
	Angle    float64 `yaml:"angle"`
	Velocity float64 `yaml:"velocity"`
}

type FieldConfig struct {
	Range       float64 `yaml:"range"`
	Interval    float64 `yaml:"interval"`
	Height      float64 `yaml:"height"`
	VectorScale float64 `yaml:"vector_scale"`
	ColorScale  float64 `yaml:"color_scale"`
}

func DefaultConfig() *Config {
	return &Config{
		Params: dynamo.Params{
			Gravity: DefaultGravity,
			Length:  DefaultLength,
			Damping: DefaultDamping,
		},
		InitState: InitStateConfig{
			Angle: DefaultAngle,
		},
		Propagation: sim.DefaultOptions(),
		Field: FieldConfig{
			Range:       DefaultRange,
			Interval:    DefaultInterval,
			Height:      DefaultHeight,
			VectorScale: DefaultVectorScale,
			ColorScale:  DefaultColorScale,
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
		return nil, fmt.Errorf("parse %s: %w", path, err)
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

// Validate checks everything the core would otherwise reject at call time.
func (c *Config) Validate() error {
	if err := c.Params.Validate(); err != nil {
		return err
	}
	if err := dynamo.CheckBound("propagation.steps", c.Propagation.Steps); err != nil {
		return err
	}
	if !(c.Field.Range > 0) {
		return &dynamo.BoundError{Name: "field.range", Value: c.Field.Range, Wrapped: dynamo.ErrParameterBounds}
	}
	if !(c.Field.Interval > 0) {
		return &dynamo.BoundError{Name: "field.interval", Value: c.Field.Interval, Wrapped: dynamo.ErrParameterBounds}
	}
	if !(c.Field.Height >= 0) {
		return &dynamo.BoundError{Name: "field.height", Value: c.Field.Height, Wrapped: dynamo.ErrParameterBounds}
	}
	if !c.State().IsValid() {
		return fmt.Errorf("%w: init_state %v", dynamo.ErrInvalidState, c.State())
	}
	return nil
}

func (c *Config) State() dynamo.State {
	return dynamo.State{Angle: c.InitState.Angle, Velocity: c.InitState.Velocity}
}
