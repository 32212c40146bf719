package sim

import "github.com/zzzbluecode/Rocket-Pet-App/internal/motion"

// Metric summarises a run. Observe receives the post-tick state and the
// offset the tick was computed from.
type Metric interface {
	Name() string
	Observe(s motion.State, offset motion.Vec2)
	Value() float64
	Reset()
}

// Observer is notified after every completed tick.
type Observer interface {
	OnTick(tick uint64, s motion.State, offset motion.Vec2)
}

type Status int32

const (
	StatusRunning Status = iota
	StatusStopped
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusStopped:
		return "stopped"
	default:
		return "unknown"
	}
}
