package target

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/zzzbluecode/Rocket-Pet-App/internal/motion"
	"gopkg.in/yaml.v3"
)

var ErrUnknownKind = errors.New("target: unknown segment kind")

// Scenario defines a scripted target path
type Scenario struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	Start       Point             `yaml:"start"`
	Segments    []ScenarioSegment `yaml:"segments"`
}

type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (p Point) Vec() motion.Vec2 { return motion.Vec2{X: p.X, Y: p.Y} }

// ScenarioSegment is a single step in a scenario
type ScenarioSegment struct {
	Kind   string  `yaml:"kind"`
	Ticks  int     `yaml:"ticks"`
	Point  Point   `yaml:"point"`
	Center Point   `yaml:"center"`
	Radius float64 `yaml:"radius"`
	Period int     `yaml:"period"`
	Dwell  int     `yaml:"dwell"`
	Points []Point `yaml:"points"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}

	return &scenario, nil
}

// Source builds the scripted target sequence.
func (sc *Scenario) Source() (*Sequence, error) {
	if !sc.Start.Vec().IsValid() {
		return nil, fmt.Errorf("start point %v is not finite", sc.Start)
	}
	segments := make([]Segment, 0, len(sc.Segments))

	for i, seg := range sc.Segments {
		if seg.Ticks <= 0 {
			return nil, fmt.Errorf("segment %d: ticks must be positive, got %d", i+1, seg.Ticks)
		}
		src, err := seg.source()
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i+1, err)
		}
		segments = append(segments, Segment{Source: src, Ticks: seg.Ticks})
	}

	return NewSequence(segments...), nil
}

func (seg ScenarioSegment) source() (motion.TargetSource, error) {
	switch seg.Kind {
	case "fixed":
		if !seg.Point.Vec().IsValid() {
			return nil, fmt.Errorf("point %v is not finite", seg.Point)
		}
		return &Fixed{Point: seg.Point.Vec()}, nil
	case "orbit":
		if !seg.Center.Vec().IsValid() || math.IsNaN(seg.Radius) || math.IsInf(seg.Radius, 0) {
			return nil, fmt.Errorf("orbit center %v radius %v must be finite", seg.Center, seg.Radius)
		}
		if seg.Period <= 0 {
			return nil, fmt.Errorf("orbit period must be positive, got %d", seg.Period)
		}
		return NewOrbit(seg.Center.Vec(), seg.Radius, seg.Period), nil
	case "waypoints":
		if len(seg.Points) == 0 {
			return nil, errors.New("waypoints need at least one point")
		}
		pts := make([]motion.Vec2, len(seg.Points))
		for i, p := range seg.Points {
			if !p.Vec().IsValid() {
				return nil, fmt.Errorf("waypoint %d %v is not finite", i+1, p)
			}
			pts[i] = p.Vec()
		}
		return NewWaypoints(seg.Dwell, pts...), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, seg.Kind)
	}
}

// Builtin returns a named scenario anchored at origin.
func Builtin(name string, origin motion.Vec2, ticks int) (*Scenario, error) {
	at := func(dx, dy float64) Point { return Point{X: origin.X + dx, Y: origin.Y + dy} }

	sc := &Scenario{Name: name, Start: at(0, 0)}
	switch name {
	case "fixed":
		sc.Description = "stationary target to the east"
		sc.Segments = []ScenarioSegment{{Kind: "fixed", Ticks: ticks, Point: at(300, 0)}}
	case "orbit":
		sc.Description = "target circling the start point"
		sc.Segments = []ScenarioSegment{{Kind: "orbit", Ticks: ticks, Center: at(0, 0), Radius: 250, Period: 600}}
	case "waypoints":
		sc.Description = "target hopping between square corners"
		sc.Segments = []ScenarioSegment{{
			Kind: "waypoints", Ticks: ticks, Dwell: 200,
			Points: []Point{at(300, -300), at(-300, -300), at(-300, 300), at(300, 300)},
		}}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, name)
	}
	return sc, nil
}

func BuiltinNames() []string { return []string{"fixed", "orbit", "waypoints"} }
