package motion

import "math"

type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) Scale(k float64) Vec2 { return Vec2{v.X * k, v.Y * k} }

func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

func (v Vec2) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// State is the mutable motion entity. Speed stays within [0, max speed]
// because only the speed controller writes it.
type State struct {
	Position Vec2
	Angle    float64
	Speed    float64
}

// NewState seeds a state at origin, facing east and at rest.
func NewState(origin Vec2) State {
	return State{Position: origin}
}

// Offset returns the vector from the state's position to target.
func (s State) Offset(target Vec2) Vec2 {
	return target.Sub(s.Position)
}

// Direction converts an angle in degrees to a screen-space unit vector.
func Direction(deg float64) Vec2 {
	rad := Radians(deg)
	return Vec2{math.Cos(rad), -math.Sin(rad)}
}

func Radians(deg float64) float64 { return deg * math.Pi / 180 }
func Degrees(rad float64) float64 { return rad * 180 / math.Pi }

type SteeringController interface {
	UpdateAngle(angle, dx, dy float64) float64
}

type SpeedController interface {
	UpdateSpeed(speed, dx, dy float64) float64
}

type PositionIntegrator interface {
	UpdatePosition(pos Vec2, angle, speed, dx, dy float64) Vec2
}

// TargetSource reports the most recent target sample. It must not block.
type TargetSource interface {
	Target() Vec2
}

type TargetFunc func() Vec2

func (f TargetFunc) Target() Vec2 { return f() }

// Sink consumes the state published at the end of every tick.
type Sink interface {
	Render(s State)
}

type SinkFunc func(State)

func (f SinkFunc) Render(s State) { f(s) }
