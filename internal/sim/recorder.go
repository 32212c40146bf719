package sim

import "github.com/zzzbluecode/Rocket-Pet-App/internal/motion"

// Recorder keeps a per-tick history for headless runs.
type Recorder struct {
	States    []motion.State
	Distances []float64
	limit     int
}

// NewRecorder keeps at most limit samples; zero means unbounded.
func NewRecorder(limit int) *Recorder {
	return &Recorder{limit: limit}
}

func (r *Recorder) OnTick(tick uint64, s motion.State, offset motion.Vec2) {
	if r.limit > 0 && len(r.States) >= r.limit {
		r.States = r.States[1:]
		r.Distances = r.Distances[1:]
	}
	r.States = append(r.States, s)
	r.Distances = append(r.Distances, offset.Len())
}

func (r *Recorder) Speeds() []float64 {
	out := make([]float64, len(r.States))
	for i, s := range r.States {
		out[i] = s.Speed
	}
	return out
}

func (r *Recorder) Angles() []float64 {
	out := make([]float64, len(r.States))
	for i, s := range r.States {
		out[i] = s.Angle
	}
	return out
}

func (r *Recorder) Len() int { return len(r.States) }
