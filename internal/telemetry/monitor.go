// Package telemetry samples process resource usage in the background.
//
// The monitor runs on its own goroutine, never touches motion state and
// stops through context cancellation checked once per sampling interval.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	ErrAlreadyStarted = errors.New("telemetry: monitor already started")
	ErrStopTimeout    = errors.New("telemetry: monitor did not stop in time")
)

type Sample struct {
	RSS        uint64
	CPUPercent float64 // normalised by core count
}

func (s Sample) MemoryMB() float64 { return float64(s.RSS) / (1024 * 1024) }

func (s Sample) String() string {
	return fmt.Sprintf("Memory: %.2f MB | CPU: %.2f%%", s.MemoryMB(), s.CPUPercent)
}

type Sampler interface {
	Sample(ctx context.Context) (Sample, error)
}

type Monitor struct {
	sampler  Sampler
	interval time.Duration
	logger   *zap.Logger
	report   []func(Sample)

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	stopped bool
}

func NewMonitor(sampler Sampler, interval time.Duration, logger *zap.Logger) *Monitor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		sampler:  sampler,
		interval: interval,
		logger:   logger.Named("telemetry"),
	}
}

// OnSample registers an extra consumer. Consumers run on the monitor's
// goroutine. Must be called before Start.
func (m *Monitor) OnSample(fn func(Sample)) {
	m.report = append(m.report, fn)
}

func (m *Monitor) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.done != nil {
		return ErrAlreadyStarted
	}
	if m.interval <= 0 {
		return fmt.Errorf("telemetry interval must be positive, got %v", m.interval)
	}

	ctx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.done = make(chan struct{})
	go m.loop(ctx, m.done)
	return nil
}

// Stop cancels the monitor and waits at most one sampling interval for it
// to exit. Calling Stop more than once, or before Start, is safe.
func (m *Monitor) Stop() error {
	m.mu.Lock()
	if m.done == nil || m.stopped {
		m.mu.Unlock()
		return nil
	}
	m.stopped = true
	m.cancel()
	done := m.done
	m.mu.Unlock()

	timer := time.NewTimer(m.interval)
	defer timer.Stop()

	select {
	case <-done:
		return nil
	case <-timer.C:
		m.logger.Warn("monitor did not stop within one interval", zap.Duration("interval", m.interval))
		return ErrStopTimeout
	}
}

func (m *Monitor) loop(ctx context.Context, done chan<- struct{}) {
	defer close(done)

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		s, err := m.sampler.Sample(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			m.logger.Warn("resource sample failed", zap.Error(err))
		} else {
			m.publish(s)
		}

		timer.Reset(m.interval)
	}
}

func (m *Monitor) publish(s Sample) {
	m.logger.Info(s.String(),
		zap.Float64("rss_mb", s.MemoryMB()),
		zap.Float64("cpu_percent", s.CPUPercent),
	)
	for _, fn := range m.report {
		fn(s)
	}
}
