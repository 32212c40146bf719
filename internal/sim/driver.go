package sim

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/zzzbluecode/Rocket-Pet-App/internal/motion"
)

// Driver owns the motion state and the tick cadence. Tick, Run and the
// accessors must be called from a single goroutine; Stop and Status are
// safe from any goroutine.
type Driver struct {
	model     *Model
	source    motion.TargetSource
	sinks     []motion.Sink
	metrics   []Metric
	observers []Observer
	state     motion.State
	ticks     uint64
	status    atomic.Int32
}

func NewDriver(model *Model, source motion.TargetSource, initial motion.State) *Driver {
	return &Driver{
		model:     model,
		source:    source,
		state:     initial,
		sinks:     make([]motion.Sink, 0),
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (d *Driver) AddSink(s motion.Sink)  { d.sinks = append(d.sinks, s) }
func (d *Driver) AddMetric(m Metric)     { d.metrics = append(d.metrics, m) }
func (d *Driver) AddObserver(o Observer) { d.observers = append(d.observers, o) }
func (d *Driver) State() motion.State    { return d.state }
func (d *Driver) Ticks() uint64          { return d.ticks }
func (d *Driver) Status() Status         { return Status(d.status.Load()) }

// Stop moves the driver to StatusStopped. It reports whether this call made
// the transition. A tick already in progress completes normally.
func (d *Driver) Stop() bool {
	return d.status.CompareAndSwap(int32(StatusRunning), int32(StatusStopped))
}

// Tick samples the target, applies one full transition and publishes the
// result. It is a no-op returning false once the driver is stopped.
func (d *Driver) Tick() bool {
	if d.Status() == StatusStopped {
		return false
	}

	off := d.state.Offset(d.source.Target())
	d.state = d.model.advance(d.state, off)
	d.ticks++

	for _, m := range d.metrics {
		m.Observe(d.state, off)
	}
	for _, o := range d.observers {
		o.OnTick(d.ticks, d.state, off)
	}
	for _, s := range d.sinks {
		s.Render(d.state)
	}
	return true
}

// RunTicks ticks synchronously up to n times and returns how many ran.
func (d *Driver) RunTicks(n int) int {
	done := 0
	for done < n && d.Tick() {
		done++
	}
	return done
}

// Run ticks every interval until the driver is stopped or ctx ends. The
// next tick is scheduled only after the current one finishes, so a slow
// tick delays later ones instead of dropping them.
func (d *Driver) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("tick interval must be positive, got %v", interval)
	}

	timer := time.NewTimer(interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			d.Stop()
			return ctx.Err()
		case <-timer.C:
			if !d.Tick() {
				return nil
			}
			timer.Reset(interval)
		}
	}
}

// Metrics returns the current value of every registered metric.
func (d *Driver) Metrics() map[string]float64 {
	out := make(map[string]float64, len(d.metrics))
	for _, m := range d.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}
