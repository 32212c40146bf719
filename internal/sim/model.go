package sim

import (
	"github.com/zzzbluecode/Rocket-Pet-App/internal/config"
	"github.com/zzzbluecode/Rocket-Pet-App/internal/control"
	"github.com/zzzbluecode/Rocket-Pet-App/internal/integrators"
	"github.com/zzzbluecode/Rocket-Pet-App/internal/motion"
)

// Model is the pure per-tick transition: steering, then speed, then
// position. Position is integrated with the angle produced in the same tick.
type Model struct {
	steering   motion.SteeringController
	speed      motion.SpeedController
	integrator motion.PositionIntegrator
}

func New(steering motion.SteeringController, speed motion.SpeedController, integrator motion.PositionIntegrator) *Model {
	return &Model{
		steering:   steering,
		speed:      speed,
		integrator: integrator,
	}
}

// NewModel builds the standard controllers from physics settings.
func NewModel(p config.PhysicsConfig) *Model {
	steer := control.NewSteering(p.SteeringSensitivity)
	steer.Normalize = p.NormalizeAngle
	return New(
		steer,
		control.NewThrottle(p.MaxSpeed, p.Acceleration, p.DragFactor, p.DecelerationDistance),
		integrators.NewHeading(p.FollowThreshold),
	)
}

type paramSource interface {
	GetParams() map[string]float64
}

// Params merges the tunable parameters of every component that exposes
// them.
func (m *Model) Params() map[string]float64 {
	out := make(map[string]float64)
	for _, c := range []any{m.steering, m.speed, m.integrator} {
		if p, ok := c.(paramSource); ok {
			for k, v := range p.GetParams() {
				out[k] = v
			}
		}
	}
	return out
}

// Step returns the state after one tick toward target. s is not modified.
func (m *Model) Step(s motion.State, target motion.Vec2) motion.State {
	return m.advance(s, s.Offset(target))
}

func (m *Model) advance(s motion.State, off motion.Vec2) motion.State {
	s.Angle = m.steering.UpdateAngle(s.Angle, off.X, off.Y)
	s.Speed = m.speed.UpdateSpeed(s.Speed, off.X, off.Y)
	s.Position = m.integrator.UpdatePosition(s.Position, s.Angle, s.Speed, off.X, off.Y)
	return s
}
