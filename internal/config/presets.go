package config

import (
	"math"
	"sort"

	"github.com/san-kum/phasependulum/internal/dynamo"
	"github.com/san-kum/phasependulum/internal/sim"
)

func preset(p dynamo.Params, angle, velocity float64) *Config {
	cfg := DefaultConfig()
	cfg.Params = p
	cfg.InitState = InitStateConfig{Angle: angle, Velocity: velocity}
	return cfg
}

var Presets = map[string]*Config{
	"undamped": preset(dynamo.Params{Gravity: 9.8, Length: 10, Damping: 0}, math.Pi/4, 0),
	"damped":   preset(dynamo.Params{Gravity: 9.8, Length: 10, Damping: 0.2}, math.Pi/2, 0),
	"heavy":    preset(dynamo.Params{Gravity: 20, Length: 5, Damping: 1}, 3.0, 0),
	"spinning": preset(dynamo.Params{Gravity: 9.8, Length: 10, Damping: 0}, 0, 2.5),
	"long": func() *Config {
		cfg := preset(dynamo.Params{Gravity: 9.8, Length: 30, Damping: 0.05}, 2.5, 0)
		cfg.Propagation = sim.Options{Delta: 0.05, Steps: 4000}
		return cfg
	}(),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
