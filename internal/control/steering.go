package control

import (
	"math"

	"github.com/zzzbluecode/Rocket-Pet-App/internal/motion"
)

// Steering closes a fixed fraction of the angular gap to the target every
// tick, which gives an exponential-decay turning curve.
type Steering struct {
	Sensitivity float64
	// Normalize wraps the resulting angle into [-180, 180). The gap is
	// always measured before wrapping.
	Normalize bool
}

func NewSteering(sensitivity float64) *Steering {
	return &Steering{Sensitivity: sensitivity}
}

// UpdateAngle returns the new facing angle in degrees. A zero offset has no
// direction and leaves the angle untouched.
func (s *Steering) UpdateAngle(angle, dx, dy float64) float64 {
	if dx == 0 && dy == 0 {
		return angle
	}

	target := motion.Degrees(math.Atan2(-dy, dx))
	next := angle + ShortestArc(angle, target)*s.Sensitivity

	if s.Normalize {
		return NormalizeAngle(next)
	}
	return next
}

// GetParams returns the tunable parameters keyed by their config names.
func (s *Steering) GetParams() map[string]float64 {
	return map[string]float64{"steering_sensitivity": s.Sensitivity}
}

// ShortestArc returns the signed turn from one angle to another in
// [-180, 180), using floored modulo so negative gaps wrap correctly.
func ShortestArc(from, to float64) float64 {
	d := math.Mod(to-from+180, 360)
	if d < 0 {
		d += 360
	}
	if d >= 360 {
		d -= 360
	}
	return d - 180
}

// NormalizeAngle wraps deg into [-180, 180).
func NormalizeAngle(deg float64) float64 {
	return ShortestArc(0, deg)
}
