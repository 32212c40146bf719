package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultMaxSpeed             = 6.0
	DefaultAcceleration         = 0.2
	DefaultSteeringSensitivity  = 0.05
	DefaultDragFactor           = 0.95
	DefaultFollowThreshold      = 70.0
	DefaultDecelerationDistance = 200.0
	DefaultTickInterval         = 10 * time.Millisecond
	DefaultTelemetryInterval    = time.Second
	DefaultSpriteSize           = 40
	DefaultCellWidth            = 10.0
	DefaultCellHeight           = 20.0
	DefaultTrail                = 24
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid value")

// Config is built once at start-up and never changed afterwards.
type Config struct {
	Physics   PhysicsConfig   `yaml:"physics"`
	Animation AnimationConfig `yaml:"animation"`
	Sprite    SpriteConfig    `yaml:"sprite"`
	Window    WindowConfig    `yaml:"window"`
	Terminal  TerminalConfig  `yaml:"terminal"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

type PhysicsConfig struct {
	MaxSpeed             float64 `yaml:"max_speed"`
	Acceleration         float64 `yaml:"acceleration"`
	SteeringSensitivity  float64 `yaml:"steering_sensitivity"`
	DragFactor           float64 `yaml:"drag_factor"`
	FollowThreshold      float64 `yaml:"follow_threshold"`
	DecelerationDistance float64 `yaml:"deceleration_distance"`
	NormalizeAngle       bool    `yaml:"normalize_angle"`
}

type AnimationConfig struct {
	TickInterval time.Duration `yaml:"tick_interval"`
}

type SpriteConfig struct {
	Path           string  `yaml:"path"`
	Size           int     `yaml:"size"`
	RotationOffset float64 `yaml:"rotation_offset"`
	Watch          bool    `yaml:"watch"`
}

// WindowConfig controls the desktop window. MousePassthrough lets clicks
// reach the desktop below; the rocket then cannot see the right click that
// dismisses it.
type WindowConfig struct {
	Title            string `yaml:"title"`
	Fullscreen       bool   `yaml:"fullscreen"`
	Transparent      bool   `yaml:"transparent"`
	Floating         bool   `yaml:"floating"`
	Decorated        bool   `yaml:"decorated"`
	MousePassthrough bool   `yaml:"mouse_passthrough"`
}

type TerminalConfig struct {
	CellWidth  float64 `yaml:"cell_width"`
	CellHeight float64 `yaml:"cell_height"`
	Trail      int     `yaml:"trail"`
}

type TelemetryConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Interval time.Duration `yaml:"interval"`
}

func DefaultConfig() *Config {
	return &Config{
		Physics: PhysicsConfig{
			MaxSpeed:             DefaultMaxSpeed,
			Acceleration:         DefaultAcceleration,
			SteeringSensitivity:  DefaultSteeringSensitivity,
			DragFactor:           DefaultDragFactor,
			FollowThreshold:      DefaultFollowThreshold,
			DecelerationDistance: DefaultDecelerationDistance,
		},
		Animation: AnimationConfig{TickInterval: DefaultTickInterval},
		Sprite:    SpriteConfig{Size: DefaultSpriteSize},
		Window: WindowConfig{
			Title:       "rocketpet",
			Fullscreen:  true,
			Transparent: true,
			Floating:    true,
		},
		Terminal: TerminalConfig{
			CellWidth:  DefaultCellWidth,
			CellHeight: DefaultCellHeight,
			Trail:      DefaultTrail,
		},
		Telemetry: TelemetryConfig{Enabled: true, Interval: DefaultTelemetryInterval},
	}
}

// Load reads a YAML file on top of the defaults.
func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads a YAML file on top of a copy of base. Keys absent from the
// file keep base's values.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Resolve builds the effective configuration from an optional preset and an
// optional YAML file, then validates it.
func Resolve(preset, path string) (*Config, error) {
	cfg := DefaultConfig()
	if preset != "" {
		cfg = GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, ListPresets())
		}
	}
	if path != "" {
		var err error
		if cfg, err = LoadOver(path, cfg); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

func (c *Config) Validate() error {
	p := c.Physics
	switch {
	case !(p.MaxSpeed > 0):
		return invalid("physics.max_speed", p.MaxSpeed, "must be positive")
	case !(p.Acceleration >= 0):
		return invalid("physics.acceleration", p.Acceleration, "must not be negative")
	case !(p.SteeringSensitivity > 0 && p.SteeringSensitivity <= 1):
		return invalid("physics.steering_sensitivity", p.SteeringSensitivity, "must be in (0, 1]")
	case !(p.DragFactor > 0 && p.DragFactor < 1):
		return invalid("physics.drag_factor", p.DragFactor, "must be in (0, 1)")
	case !(p.FollowThreshold >= 0):
		return invalid("physics.follow_threshold", p.FollowThreshold, "must not be negative")
	case !(p.DecelerationDistance >= 0):
		return invalid("physics.deceleration_distance", p.DecelerationDistance, "must not be negative")
	}
	if c.Animation.TickInterval <= 0 {
		return invalid("animation.tick_interval", c.Animation.TickInterval, "must be positive")
	}
	if c.Sprite.Size <= 0 {
		return invalid("sprite.size", c.Sprite.Size, "must be positive")
	}
	if c.Terminal.CellWidth <= 0 || c.Terminal.CellHeight <= 0 {
		return invalid("terminal.cell_width/cell_height", fmt.Sprintf("%gx%g", c.Terminal.CellWidth, c.Terminal.CellHeight), "must be positive")
	}
	if c.Terminal.Trail < 0 {
		return invalid("terminal.trail", c.Terminal.Trail, "must not be negative")
	}
	if c.Telemetry.Enabled && c.Telemetry.Interval <= 0 {
		return invalid("telemetry.interval", c.Telemetry.Interval, "must be positive")
	}
	return nil
}

func invalid(field string, value any, reason string) error {
	return fmt.Errorf("%w: %s=%v %s", ErrInvalid, field, value, reason)
}

// TPS converts the tick interval into ticks per second, at least 1.
func (a AnimationConfig) TPS() int {
	if a.TickInterval <= 0 {
		return 1
	}
	tps := int((time.Second + a.TickInterval/2) / a.TickInterval)
	if tps < 1 {
		return 1
	}
	return tps
}
