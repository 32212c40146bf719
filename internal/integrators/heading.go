package integrators

import (
	"math"

	"github.com/zzzbluecode/Rocket-Pet-App/internal/motion"
)

// Heading advances a position along its facing angle. Inside
// FollowThreshold the position is frozen even when speed is nonzero; speed
// itself is left to the speed controller.
type Heading struct {
	FollowThreshold float64
}

func NewHeading(followThreshold float64) *Heading {
	return &Heading{FollowThreshold: followThreshold}
}

func (h *Heading) GetParams() map[string]float64 {
	return map[string]float64{"follow_threshold": h.FollowThreshold}
}

func (h *Heading) UpdatePosition(pos motion.Vec2, angle, speed, dx, dy float64) motion.Vec2 {
	if math.Hypot(dx, dy) <= h.FollowThreshold {
		return pos
	}
	return pos.Add(motion.Direction(angle).Scale(speed))
}
