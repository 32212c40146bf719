package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/zzzbluecode/Rocket-Pet-App/internal/control"
	"github.com/zzzbluecode/Rocket-Pet-App/internal/metrics"
	"github.com/zzzbluecode/Rocket-Pet-App/internal/motion"
	"github.com/zzzbluecode/Rocket-Pet-App/internal/sim"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ffff"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888899")).Width(18)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ccff")).Bold(true)
	panel      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(0, 2)
)

func runTrace(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sc, seq, n, err := scriptedTarget(cmd)
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.New("nothing to trace: --ticks is 0")
	}

	model := sim.NewModel(cfg.Physics)
	driver := sim.NewDriver(model, seq, motion.NewState(sc.Start.Vec()))
	rec := sim.NewRecorder(0)
	driver.AddObserver(rec)
	driver.AddMetric(metrics.NewPeakSpeed())
	driver.AddMetric(metrics.NewMeanDistance())
	driver.AddMetric(metrics.NewDeadZone(cfg.Physics.FollowThreshold))
	driver.AddMetric(metrics.NewRest(restEpsilon))

	ran := driver.RunTicks(n)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "scenario: %s\n", sc.Name)
	if sc.Description != "" {
		fmt.Fprintf(out, "%s\n", sc.Description)
	}
	fmt.Fprintf(out, "ticks: %d\n\n", ran)

	plot(out, rec.Speeds(), "speed (px/tick)")
	plot(out, rec.Distances, "distance to target (px)")

	final := driver.State()
	rows := []string{titleStyle.Render("summary")}
	rows = append(rows, valueRows(driver.Metrics())...)
	rows = append(rows, "", titleStyle.Render("parameters"))
	rows = append(rows, valueRows(model.Params())...)
	rows = append(rows,
		row("final position", fmt.Sprintf("(%.1f, %.1f)", final.Position.X, final.Position.Y)),
		row("final angle", fmt.Sprintf("%.1f°", final.Angle)),
		row("rest bound", fmt.Sprintf("%d ticks from max speed", control.TicksToRest(cfg.Physics.MaxSpeed, restEpsilon, cfg.Physics.DragFactor))),
	)
	fmt.Fprintln(out, panel.Render(strings.Join(rows, "\n")))
	return nil
}

func plot(w io.Writer, data []float64, caption string) {
	if len(data) == 0 {
		return
	}
	fmt.Fprintln(w, asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	))
	fmt.Fprintln(w)
}

func valueRows(values map[string]float64) []string {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([]string, 0, len(names))
	for _, name := range names {
		v := values[name]
		text := fmt.Sprintf("%.3f", v)
		if name == "ticks_to_rest" {
			text = "never"
			if v >= 0 {
				text = fmt.Sprintf("%.0f", v)
			}
		}
		rows = append(rows, row(strings.ReplaceAll(name, "_", " "), text))
	}
	return rows
}

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), valueStyle.Render(value))
}
