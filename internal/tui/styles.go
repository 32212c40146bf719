package tui

import (
	"math"

	"github.com/charmbracelet/lipgloss"
)

var (
	rocketStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff5f1f"))
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff"))
	trailStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#444466"))

	statusBar = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899")).
			Background(lipgloss.Color("#1a1a2e")).
			Padding(0, 1)
	metricValue = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ccff")).Bold(true)
	keyHint     = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688")).Italic(true)
)

var arrows = [8]rune{'→', '↗', '↑', '↖', '←', '↙', '↓', '↘'}

// Arrow picks the eighth-of-a-turn glyph closest to a heading in degrees.
func Arrow(angle float64) rune {
	a := math.Mod(angle, 360)
	if a < 0 {
		a += 360
	}
	return arrows[int((a+22.5)/45)%8]
}
