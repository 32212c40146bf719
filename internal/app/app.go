// Package app wires the motion driver, a frontend and the resource monitor
// into one process lifecycle with a single idempotent shutdown path.
package app

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"go.uber.org/zap"
)

// Frontend hosts the render surface. Run blocks until the surface closes;
// Close asks it to close and must not block.
type Frontend interface {
	Run(ctx context.Context) error
	Close() error
}

// Dismisser is implemented by frontends that offer a dismiss gesture.
type Dismisser interface {
	OnDismiss(fn func())
}

type Stopper interface {
	Stop() bool
}

type Monitor interface {
	Start(ctx context.Context) error
	Stop() error
}

type Option func(*App)

// WithMonitor runs a background resource monitor for the app's lifetime.
func WithMonitor(m Monitor) Option {
	return func(a *App) { a.monitor = m }
}

// WithSignals overrides the signals that trigger shutdown.
func WithSignals(sigs ...os.Signal) Option {
	return func(a *App) { a.signals = sigs }
}

type App struct {
	driver   Stopper
	frontend Frontend
	monitor  Monitor
	logger   *zap.Logger
	signals  []os.Signal

	once sync.Once
	done chan struct{}
}

func New(driver Stopper, frontend Frontend, logger *zap.Logger, opts ...Option) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &App{
		driver:   driver,
		frontend: frontend,
		logger:   logger.Named("app"),
		signals:  []os.Signal{os.Interrupt, syscall.SIGTERM},
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(a)
	}
	if d, ok := frontend.(Dismisser); ok {
		d.OnDismiss(a.Shutdown)
	}
	return a
}

// Run starts the monitor and runs the frontend on the calling goroutine.
// It returns once the frontend has exited and shutdown has completed.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, a.signals...)
	defer stop()

	if a.monitor != nil {
		if err := a.monitor.Start(ctx); err != nil {
			a.logger.Warn("resource monitor not started", zap.Error(err))
		}
	}

	go func() {
		select {
		case <-ctx.Done():
			a.logger.Info("interrupted", zap.Error(ctx.Err()))
			a.Shutdown()
		case <-a.done:
		}
	}()

	err := a.frontend.Run(ctx)
	a.Shutdown()
	if err != nil {
		a.logger.Error("frontend exited with error", zap.Error(err))
	}
	return err
}

// Shutdown stops the monitor, then the driver, then the frontend. Only the
// first call has any effect; it is safe from any goroutine, including the
// frontend's own event loop.
func (a *App) Shutdown() {
	a.once.Do(func() {
		a.logger.Info("shutting down")

		if a.monitor != nil {
			if err := a.monitor.Stop(); err != nil {
				a.logger.Warn("resource monitor stop", zap.Error(err))
			}
		}
		a.driver.Stop()
		if err := a.frontend.Close(); err != nil {
			a.logger.Warn("frontend close", zap.Error(err))
		}

		close(a.done)
		a.logger.Info("shutdown complete")
	})
}

// Done is closed once Shutdown has finished.
func (a *App) Done() <-chan struct{} { return a.done }
