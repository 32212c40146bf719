package tui

import (
	"context"
	"errors"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"go.uber.org/zap"

	"github.com/zzzbluecode/Rocket-Pet-App/internal/config"
	"github.com/zzzbluecode/Rocket-Pet-App/internal/motion"
)

// Frontend runs the terminal program.
type Frontend struct {
	model  *Model
	logger *zap.Logger

	mu      sync.Mutex
	program *tea.Program
	closed  bool
}

func NewFrontend(cfg *config.Config, logger *zap.Logger) *Frontend {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Frontend{model: NewModel(cfg), logger: logger.Named("tui")}
}

func (f *Frontend) Model() *Model { return f.model }

func (f *Frontend) OnDismiss(fn func()) { f.model.OnDismiss(fn) }

// ScreenCenter returns the world point at the middle of the terminal.
func ScreenCenter(cfg config.TerminalConfig) motion.Vec2 {
	w, h, err := term.GetSize(os.Stdout.Fd())
	if err != nil || w <= 0 || h <= 0 {
		w, h = 80, 24
	}
	return motion.Vec2{
		X: float64(w) / 2 * cfg.CellWidth,
		Y: float64(h-1) / 2 * cfg.CellHeight,
	}
}

func (f *Frontend) Run(ctx context.Context) error {
	p := tea.NewProgram(f.model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil
	}
	f.program = p
	f.mu.Unlock()

	f.logger.Debug("terminal program starting")
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// Notify shows a line of process statistics in the status bar. The send is
// asynchronous so a caller never waits on the program's event loop.
func (f *Frontend) Notify(line string) {
	f.mu.Lock()
	p, closed := f.program, f.closed
	f.mu.Unlock()
	if p == nil || closed {
		return
	}
	go p.Send(statsMsg(line))
}

// Close asks the program to quit. Quit is sent from a separate goroutine
// because Close may be reached from inside the program's own Update.
func (f *Frontend) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	f.closed = true
	if f.program != nil {
		go f.program.Quit()
	}
	return nil
}
