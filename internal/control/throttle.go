package control

import "math"

// Throttle ramps speed up linearly while the target is beyond
// BrakeDistance and decays it geometrically otherwise. There is no
// hysteresis band around BrakeDistance.
type Throttle struct {
	MaxSpeed      float64
	Acceleration  float64
	Drag          float64
	BrakeDistance float64
}

func NewThrottle(maxSpeed, acceleration, drag, brakeDistance float64) *Throttle {
	return &Throttle{
		MaxSpeed:      maxSpeed,
		Acceleration:  acceleration,
		Drag:          drag,
		BrakeDistance: brakeDistance,
	}
}

func (t *Throttle) UpdateSpeed(speed, dx, dy float64) float64 {
	if math.Hypot(dx, dy) > t.BrakeDistance {
		return math.Min(speed+t.Acceleration, t.MaxSpeed)
	}
	return speed * t.Drag
}

// GetParams returns the tunable parameters keyed by their config names.
func (t *Throttle) GetParams() map[string]float64 {
	return map[string]float64{
		"max_speed":             t.MaxSpeed,
		"acceleration":          t.Acceleration,
		"drag_factor":           t.Drag,
		"deceleration_distance": t.BrakeDistance,
	}
}

// TicksToRest returns the number of braking ticks after which speed drops
// below epsilon under a drag factor in (0, 1).
func TicksToRest(speed, epsilon, drag float64) int {
	if speed < epsilon {
		return 0
	}
	if drag <= 0 {
		return 1
	}
	if drag >= 1 || epsilon <= 0 {
		return math.MaxInt
	}
	n := math.Log(epsilon/speed) / math.Log(drag)
	return int(math.Floor(n)) + 1
}
