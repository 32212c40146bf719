// Package tui renders the rocket inside a terminal, chasing the mouse
// pointer across character cells.
package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zzzbluecode/Rocket-Pet-App/internal/config"
	"github.com/zzzbluecode/Rocket-Pet-App/internal/motion"
)

// Ticker advances the motion state by one step and reports whether it is
// still running.
type Ticker interface {
	Tick() bool
}

type (
	tickMsg  time.Time
	statsMsg string
)

// Model is the bubbletea model. It is also the driver's target source and
// sink; both are only touched from the bubbletea event loop.
type Model struct {
	term     config.TerminalConfig
	interval time.Duration

	ticker  Ticker
	dismiss func()

	cursor motion.Vec2
	state  motion.State
	trail  []motion.Vec2
	ticks  uint64
	stats  string
	width  int
	height int
}

func NewModel(cfg *config.Config) *Model {
	return &Model{
		term:     cfg.Terminal,
		interval: cfg.Animation.TickInterval,
		trail:    make([]motion.Vec2, 0, cfg.Terminal.Trail),
		width:    80,
		height:   24,
	}
}

func (m *Model) Bind(t Ticker)       { m.ticker = t }
func (m *Model) OnDismiss(fn func()) { m.dismiss = fn }

// SetCursor seeds the target used until the first mouse event arrives.
func (m *Model) SetCursor(p motion.Vec2) { m.cursor = p }

func (m *Model) Target() motion.Vec2 { return m.cursor }

func (m *Model) Render(s motion.State) {
	m.state = s
	if m.term.Trail == 0 {
		return
	}
	if len(m.trail) == m.term.Trail {
		copy(m.trail, m.trail[1:])
		m.trail = m.trail[:len(m.trail)-1]
	}
	m.trail = append(m.trail, s.Position)
}

// CellToWorld maps a terminal cell to the world point at its centre.
func (m *Model) CellToWorld(col, row int) motion.Vec2 {
	return motion.Vec2{
		X: (float64(col) + 0.5) * m.term.CellWidth,
		Y: (float64(row) + 0.5) * m.term.CellHeight,
	}
}

func (m *Model) WorldToCell(p motion.Vec2) (col, row int) {
	return int(math.Floor(p.X / m.term.CellWidth)), int(math.Floor(p.Y / m.term.CellHeight))
}

// tick schedules the next step one interval after the current one has
// finished, so a slow step delays the next rather than dropping it.
func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) Init() tea.Cmd { return m.tick() }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, m.quit()
		}
	case tea.MouseMsg:
		m.cursor = m.CellToWorld(msg.X, msg.Y)
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonRight {
			col, row := m.WorldToCell(m.state.Position)
			if col == msg.X && row == msg.Y {
				return m, m.quit()
			}
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case statsMsg:
		m.stats = string(msg)
	case tickMsg:
		if m.ticker == nil {
			return m, m.tick()
		}
		if !m.ticker.Tick() {
			return m, tea.Quit
		}
		m.ticks++
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) quit() tea.Cmd {
	if m.dismiss != nil {
		m.dismiss()
	}
	return tea.Quit
}

func (m *Model) View() string {
	rows := m.height - 1
	if rows < 1 || m.width < 1 {
		return ""
	}

	canvas := NewCanvas(m.width, rows)
	dotW, dotH := m.term.CellWidth/2, m.term.CellHeight/4
	for i := 1; i < len(m.trail); i++ {
		a, b := m.trail[i-1], m.trail[i]
		canvas.Line(int(a.X/dotW), int(a.Y/dotH), int(b.X/dotW), int(b.Y/dotH))
	}

	rc, rr := m.WorldToCell(m.state.Position)
	cc, cr := m.WorldToCell(m.cursor)

	var b strings.Builder
	for row := 0; row < rows; row++ {
		start := 0
		for col := 0; col <= m.width; col++ {
			var overlay string
			switch {
			case col == m.width:
			case col == rc && row == rr:
				overlay = rocketStyle.Render(string(Arrow(m.state.Angle)))
			case col == cc && row == cr:
				overlay = cursorStyle.Render("+")
			default:
				continue
			}
			if col > start {
				b.WriteString(trailStyle.Render(string(canvas.Grid[row][start:col])))
			}
			b.WriteString(overlay)
			start = col + 1
		}
		b.WriteByte('\n')
	}
	b.WriteString(m.status())
	return b.String()
}

func (m *Model) status() string {
	dist := m.state.Offset(m.cursor).Len()
	line := fmt.Sprintf("speed %s  angle %s  dist %s  ticks %s",
		metricValue.Render(fmt.Sprintf("%.2f", m.state.Speed)),
		metricValue.Render(fmt.Sprintf("%.0f°", m.state.Angle)),
		metricValue.Render(fmt.Sprintf("%.0f", dist)),
		metricValue.Render(fmt.Sprintf("%d", m.ticks)),
	)
	if m.stats != "" {
		line += "  " + m.stats
	}
	return statusBar.Render(line + "  " + keyHint.Render("right-click rocket or q to quit"))
}
