// Package target provides scripted target sources for headless runs.
//
// Scripted sources advance by one tick every time they are queried, so a
// driver that samples once per tick sees a deterministic path.
package target

import (
	"math"

	"github.com/zzzbluecode/Rocket-Pet-App/internal/motion"
)

type Fixed struct {
	Point motion.Vec2
}

func (f *Fixed) Target() motion.Vec2 { return f.Point }

// Orbit traces a circle counter-clockwise on screen, one full turn every
// Period ticks.
type Orbit struct {
	Center motion.Vec2
	Radius float64
	Period int
	tick   int
}

func NewOrbit(center motion.Vec2, radius float64, period int) *Orbit {
	return &Orbit{Center: center, Radius: radius, Period: period}
}

func (o *Orbit) Target() motion.Vec2 {
	phase := 0.0
	if o.Period > 0 {
		phase = 2 * math.Pi * float64(o.tick%o.Period) / float64(o.Period)
	}
	o.tick++
	return motion.Vec2{
		X: o.Center.X + o.Radius*math.Cos(phase),
		Y: o.Center.Y - o.Radius*math.Sin(phase),
	}
}

// Waypoints holds each point for Dwell queries and then moves to the next,
// looping forever.
type Waypoints struct {
	Points []motion.Vec2
	Dwell  int
	tick   int
}

func NewWaypoints(dwell int, points ...motion.Vec2) *Waypoints {
	return &Waypoints{Points: points, Dwell: dwell}
}

func (w *Waypoints) Target() motion.Vec2 {
	if len(w.Points) == 0 {
		return motion.Vec2{}
	}
	dwell := w.Dwell
	if dwell < 1 {
		dwell = 1
	}
	p := w.Points[(w.tick/dwell)%len(w.Points)]
	w.tick++
	return p
}

// Segment runs Source for Ticks queries.
type Segment struct {
	Source motion.TargetSource
	Ticks  int
}

// Sequence plays segments back to back and keeps the last one once the
// script runs out.
type Sequence struct {
	segments []Segment
	current  int
	used     int
}

func NewSequence(segments ...Segment) *Sequence {
	return &Sequence{segments: segments}
}

func (s *Sequence) Target() motion.Vec2 {
	if len(s.segments) == 0 {
		return motion.Vec2{}
	}
	for s.current < len(s.segments)-1 && s.used >= s.segments[s.current].Ticks {
		s.current++
		s.used = 0
	}
	s.used++
	return s.segments[s.current].Source.Target()
}

// Total returns the number of scripted ticks.
func (s *Sequence) Total() int {
	n := 0
	for _, seg := range s.segments {
		n += seg.Ticks
	}
	return n
}
