package metrics

import (
	"math"

	"github.com/zzzbluecode/Rocket-Pet-App/internal/motion"
)

type PeakSpeed struct {
	name string
	peak float64
}

func NewPeakSpeed() *PeakSpeed {
	return &PeakSpeed{name: "peak_speed"}
}

func (p *PeakSpeed) Name() string { return p.name }

func (p *PeakSpeed) Observe(s motion.State, offset motion.Vec2) {
	p.peak = math.Max(p.peak, s.Speed)
}

func (p *PeakSpeed) Value() float64 { return p.peak }
func (p *PeakSpeed) Reset()         { p.peak = 0 }

// MeanDistance averages the distance to target each tick was computed from.
type MeanDistance struct {
	name    string
	total   float64
	samples int
}

func NewMeanDistance() *MeanDistance {
	return &MeanDistance{name: "mean_distance"}
}

func (m *MeanDistance) Name() string { return m.name }

func (m *MeanDistance) Observe(s motion.State, offset motion.Vec2) {
	m.total += offset.Len()
	m.samples++
}

func (m *MeanDistance) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *MeanDistance) Reset() {
	m.total = 0
	m.samples = 0
}

// DeadZone is the fraction of ticks spent within the follow threshold.
type DeadZone struct {
	name      string
	threshold float64
	inside    int
	samples   int
}

func NewDeadZone(threshold float64) *DeadZone {
	return &DeadZone{
		name:      "dead_zone_ratio",
		threshold: threshold,
	}
}

func (d *DeadZone) Name() string { return d.name }

func (d *DeadZone) Observe(s motion.State, offset motion.Vec2) {
	d.samples++
	if offset.Len() <= d.threshold {
		d.inside++
	}
}

func (d *DeadZone) Value() float64 {
	if d.samples == 0 {
		return 0
	}
	return float64(d.inside) / float64(d.samples)
}

func (d *DeadZone) Reset() {
	d.inside = 0
	d.samples = 0
}

// Rest records the tick at which speed first fell below epsilon after the
// marker had been moving. Value is -1 until that happens.
type Rest struct {
	name    string
	epsilon float64
	samples int
	moving  bool
	restAt  int
}

func NewRest(epsilon float64) *Rest {
	return &Rest{
		name:    "ticks_to_rest",
		epsilon: epsilon,
		restAt:  -1,
	}
}

func (r *Rest) Name() string { return r.name }

func (r *Rest) Observe(s motion.State, offset motion.Vec2) {
	r.samples++
	if r.restAt >= 0 {
		return
	}
	if s.Speed >= r.epsilon {
		r.moving = true
		return
	}
	if r.moving {
		r.restAt = r.samples
	}
}

func (r *Rest) Value() float64 { return float64(r.restAt) }

func (r *Rest) Reset() {
	r.samples = 0
	r.moving = false
	r.restAt = -1
}
