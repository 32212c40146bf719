package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zzzbluecode/Rocket-Pet-App/internal/target"
)

var targetHelp = "builtin target: " + strings.Join(target.BuiltinNames(), ", ")

var (
	configFile  string
	preset      string
	debug       bool
	noTelemetry bool
	logFile     string

	maxSpeed     float64
	acceleration float64
	sensitivity  float64
	drag         float64
	follow       float64
	decel        float64
	tickInterval string
	spritePath   string
	passthrough  bool
)

// main registers the commands and runs the window frontend when no
// subcommand is given. It exits with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "rocketpet",
		Short:         "a rocket that chases your cursor",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runWindow,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "start from a named preset")
	pf.BoolVar(&debug, "debug", false, "development logging")
	pf.BoolVar(&noTelemetry, "no-telemetry", false, "disable the resource monitor")
	pf.StringVar(&logFile, "log-file", "", "write logs to a file instead of stderr")
	pf.Float64Var(&maxSpeed, "max-speed", 0, "override physics.max_speed")
	pf.Float64Var(&acceleration, "acceleration", 0, "override physics.acceleration")
	pf.Float64Var(&sensitivity, "sensitivity", 0, "override physics.steering_sensitivity")
	pf.Float64Var(&drag, "drag", 0, "override physics.drag_factor")
	pf.Float64Var(&follow, "follow", 0, "override physics.follow_threshold")
	pf.Float64Var(&decel, "decel", 0, "override physics.deceleration_distance")
	pf.StringVar(&tickInterval, "tick", "", "override animation.tick_interval (e.g. 10ms)")
	pf.StringVar(&spritePath, "sprite", "", "override sprite.path")
	pf.BoolVar(&passthrough, "passthrough", false, "let clicks through the window (disables right-click dismiss)")

	windowCmd := &cobra.Command{
		Use:   "window",
		Short: "fly the rocket over the desktop (default)",
		RunE:  runWindow,
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "fly the rocket inside the terminal",
		RunE:  runTUI,
	}

	traceCmd := &cobra.Command{
		Use:   "trace",
		Short: "run a scripted target offline and plot the motion",
		RunE:  runTrace,
	}
	traceCmd.Flags().String("target", "fixed", targetHelp)
	traceCmd.Flags().String("scenario", "", "scenario file (yaml), overrides --target")
	traceCmd.Flags().Int("ticks", 1000, "number of ticks")

	headlessCmd := &cobra.Command{
		Use:   "headless",
		Short: "tick in real time against a scripted target without a display",
		RunE:  runHeadless,
	}
	headlessCmd.Flags().String("target", "orbit", targetHelp)
	headlessCmd.Flags().String("scenario", "", "scenario file (yaml), overrides --target")
	headlessCmd.Flags().Int("ticks", 0, "stop after this many ticks (0 runs until interrupted)")
	headlessCmd.Flags().Int("report", 100, "log progress every n ticks (0 disables)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration",
		RunE:  printConfig,
	}

	rootCmd.AddCommand(windowCmd, tuiCmd, traceCmd, headlessCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
