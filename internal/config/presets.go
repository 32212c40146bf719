package config

import (
	"sort"
	"time"
)

var Presets = map[string]func() *Config{
	"rocket": DefaultConfig,
	"lazy": func() *Config {
		c := DefaultConfig()
		c.Physics = PhysicsConfig{
			MaxSpeed: 3, Acceleration: 0.1, SteeringSensitivity: 0.02, DragFactor: 0.97,
			FollowThreshold: 90, DecelerationDistance: 250,
		}
		return c
	},
	"snappy": func() *Config {
		c := DefaultConfig()
		c.Physics = PhysicsConfig{
			MaxSpeed: 10, Acceleration: 0.5, SteeringSensitivity: 0.2, DragFactor: 0.9,
			FollowThreshold: 40, DecelerationDistance: 150,
		}
		return c
	},
	"terminal": func() *Config {
		c := DefaultConfig()
		c.Physics = PhysicsConfig{
			MaxSpeed: 8, Acceleration: 0.4, SteeringSensitivity: 0.12, DragFactor: 0.9,
			FollowThreshold: 30, DecelerationDistance: 120,
		}
		c.Animation.TickInterval = 33 * time.Millisecond
		return c
	},
}

// GetPreset returns a fresh copy of the named preset, or nil.
func GetPreset(name string) *Config {
	build, ok := Presets[name]
	if !ok {
		return nil
	}
	return build()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
