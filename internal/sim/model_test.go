package sim

import (
	"math"
	"testing"

	"github.com/zzzbluecode/Rocket-Pet-App/internal/config"
	"github.com/zzzbluecode/Rocket-Pet-App/internal/control"
	"github.com/zzzbluecode/Rocket-Pet-App/internal/motion"
)

func defaultModel() *Model {
	return NewModel(config.DefaultConfig().Physics)
}

func TestScenarioAcceleratingFromRest(t *testing.T) {
	m := defaultModel()
	s := motion.NewState(motion.Vec2{X: 500, Y: 400})

	next := m.Step(s, motion.Vec2{X: 800, Y: 400})

	if next.Angle != 0 {
		t.Errorf("expected angle unchanged, got %v", next.Angle)
	}
	if math.Abs(next.Speed-0.2) > 1e-12 {
		t.Errorf("expected speed 0.2, got %v", next.Speed)
	}
	if math.Abs(next.Position.X-500.2) > 1e-9 || next.Position.Y != 400 {
		t.Errorf("expected shift by (0.2, 0), got %+v", next.Position)
	}
	if s.Speed != 0 {
		t.Error("Step modified its input")
	}
}

func TestScenarioDeadZoneBraking(t *testing.T) {
	m := defaultModel()
	s := motion.State{Position: motion.Vec2{X: 100, Y: 100}, Angle: 30, Speed: 2}

	next := m.Step(s, motion.Vec2{X: 130, Y: 140})

	if next.Position != s.Position {
		t.Errorf("expected position unchanged, got %+v", next.Position)
	}
	if math.Abs(next.Speed-1.9) > 1e-12 {
		t.Errorf("expected speed 1.9, got %v", next.Speed)
	}
}

func TestScenarioConvergesToRest(t *testing.T) {
	p := config.DefaultConfig().Physics
	m := NewModel(p)
	s := motion.State{Position: motion.Vec2{X: 0, Y: 0}, Speed: p.MaxSpeed}
	target := motion.Vec2{X: 150, Y: 0}

	bound := control.TicksToRest(s.Speed, 1e-3, p.DragFactor)
	ticks := 0
	for s.Speed >= 1e-3 {
		s = m.Step(s, target)
		ticks++
		if ticks > bound {
			t.Fatalf("speed %v still above 1e-3 after %d ticks", s.Speed, bound)
		}
	}
	if s.Position.X >= target.X {
		t.Errorf("marker overshot the target: %+v", s.Position)
	}
}

func TestNoTargetIsNoOp(t *testing.T) {
	m := defaultModel()
	s := motion.State{Position: motion.Vec2{X: 3, Y: 4}, Angle: 123, Speed: 5}

	next := m.Step(s, s.Position)

	if next.Angle != s.Angle {
		t.Errorf("angle changed to %v", next.Angle)
	}
	if next.Position != s.Position {
		t.Errorf("position changed to %+v", next.Position)
	}
	if next.Speed > s.Speed {
		t.Errorf("speed rose to %v", next.Speed)
	}
}

func TestDeadZoneInvariant(t *testing.T) {
	p := config.DefaultConfig().Physics
	m := NewModel(p)

	for angle := -360.0; angle < 360; angle += 45 {
		for _, speed := range []float64{0, 0.5, p.MaxSpeed} {
			for r := 0.0; r < p.FollowThreshold; r += 10 {
				s := motion.State{Position: motion.Vec2{X: 50, Y: 50}, Angle: angle, Speed: speed}
				target := motion.Vec2{X: 50 + r*math.Cos(angle), Y: 50 + r*math.Sin(angle)}
				if next := m.Step(s, target); next.Position != s.Position {
					t.Fatalf("moved inside dead zone: r=%v angle=%v speed=%v", r, angle, speed)
				}
			}
		}
	}

	edge := motion.State{Speed: p.MaxSpeed}
	if next := m.Step(edge, motion.Vec2{X: p.FollowThreshold}); next.Position != edge.Position {
		t.Errorf("moved exactly at the follow threshold: %+v", next.Position)
	}
}

func TestStepUsesUpdatedAngle(t *testing.T) {
	p := config.DefaultConfig().Physics
	p.SteeringSensitivity = 1
	m := NewModel(p)

	s := motion.State{Speed: 1}
	next := m.Step(s, motion.Vec2{X: 0, Y: -500})

	if math.Abs(next.Angle-90) > 1e-9 {
		t.Fatalf("expected a full turn to 90, got %v", next.Angle)
	}
	if math.Abs(next.Position.X) > 1e-9 || math.Abs(next.Position.Y+1.2) > 1e-9 {
		t.Errorf("expected to move up by the new speed, got %+v", next.Position)
	}
}

func TestHomingReachesTarget(t *testing.T) {
	m := defaultModel()
	s := motion.NewState(motion.Vec2{X: 960, Y: 540})
	target := motion.Vec2{X: 100, Y: 900}

	for i := 0; i < 5000; i++ {
		s = m.Step(s, target)
	}
	if d := s.Offset(target).Len(); d > config.DefaultDecelerationDistance {
		t.Errorf("expected to settle near target, still %v away", d)
	}
	if s.Speed > 1e-3 {
		t.Errorf("expected to come to rest, speed %v", s.Speed)
	}
}

func TestModelParams(t *testing.T) {
	p := config.DefaultConfig().Physics
	got := NewModel(p).Params()

	want := map[string]float64{
		"steering_sensitivity":  p.SteeringSensitivity,
		"max_speed":             p.MaxSpeed,
		"acceleration":          p.Acceleration,
		"drag_factor":           p.DragFactor,
		"deceleration_distance": p.DecelerationDistance,
		"follow_threshold":      p.FollowThreshold,
	}
	if len(got) != len(want) {
		t.Fatalf("Params() = %v, want %d entries", got, len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("Params()[%q] = %v, want %v", k, got[k], v)
		}
	}
}

func TestModelParamsSkipsOpaqueComponents(t *testing.T) {
	m := New(
		control.NewSteering(0.1),
		speedFunc(func(speed, dx, dy float64) float64 { return speed }),
		nil,
	)
	got := m.Params()
	if len(got) != 1 || got["steering_sensitivity"] != 0.1 {
		t.Errorf("Params() = %v, want only the steering entry", got)
	}
}

type speedFunc func(speed, dx, dy float64) float64

func (f speedFunc) UpdateSpeed(speed, dx, dy float64) float64 { return f(speed, dx, dy) }
