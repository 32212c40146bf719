package app

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/zzzbluecode/Rocket-Pet-App/internal/motion"
	"github.com/zzzbluecode/Rocket-Pet-App/internal/sim"
)

// Headless is a frontend without a render surface. It ticks the driver on
// its own timer and logs progress.
type Headless struct {
	driver   *sim.Driver
	interval time.Duration
	limit    uint64
	every    uint64
	logger   *zap.Logger
}

// NewHeadless registers itself as an observer on d. A zero limit runs until
// stopped; a zero every disables progress logging.
func NewHeadless(d *sim.Driver, interval time.Duration, limit, every uint64, logger *zap.Logger) *Headless {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Headless{
		driver:   d,
		interval: interval,
		limit:    limit,
		every:    every,
		logger:   logger.Named("headless"),
	}
	d.AddObserver(h)
	return h
}

func (h *Headless) OnTick(tick uint64, s motion.State, offset motion.Vec2) {
	if h.every > 0 && tick%h.every == 0 {
		h.logger.Info("tick",
			zap.Uint64("tick", tick),
			zap.Float64("x", s.Position.X),
			zap.Float64("y", s.Position.Y),
			zap.Float64("angle", s.Angle),
			zap.Float64("speed", s.Speed),
			zap.Float64("distance", offset.Len()),
		)
	}
	if h.limit > 0 && tick >= h.limit {
		h.driver.Stop()
	}
}

func (h *Headless) Run(ctx context.Context) error {
	err := h.driver.Run(ctx, h.interval)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (h *Headless) Close() error {
	h.driver.Stop()
	return nil
}
