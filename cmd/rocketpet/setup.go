package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zzzbluecode/Rocket-Pet-App/internal/app"
	"github.com/zzzbluecode/Rocket-Pet-App/internal/config"
	"github.com/zzzbluecode/Rocket-Pet-App/internal/motion"
	"github.com/zzzbluecode/Rocket-Pet-App/internal/target"
	"github.com/zzzbluecode/Rocket-Pet-App/internal/telemetry"
)

const restEpsilon = 0.01

// loadConfig resolves defaults, preset and file, then applies any physics
// flags the user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Resolve(preset, configFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	set := func(name string, dst *float64, v float64) {
		if flags.Changed(name) {
			*dst = v
		}
	}
	set("max-speed", &cfg.Physics.MaxSpeed, maxSpeed)
	set("acceleration", &cfg.Physics.Acceleration, acceleration)
	set("sensitivity", &cfg.Physics.SteeringSensitivity, sensitivity)
	set("drag", &cfg.Physics.DragFactor, drag)
	set("follow", &cfg.Physics.FollowThreshold, follow)
	set("decel", &cfg.Physics.DecelerationDistance, decel)

	if flags.Changed("tick") {
		d, err := time.ParseDuration(tickInterval)
		if err != nil {
			return nil, fmt.Errorf("invalid --tick: %w", err)
		}
		cfg.Animation.TickInterval = d
	}
	if flags.Changed("sprite") {
		cfg.Sprite.Path = spritePath
	}
	if flags.Changed("passthrough") {
		cfg.Window.MousePassthrough = passthrough
	}
	if noTelemetry {
		cfg.Telemetry.Enabled = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(path string) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if debug {
		zc = zap.NewDevelopmentConfig()
	}
	if path != "" {
		zc.OutputPaths = []string{path}
		zc.ErrorOutputPaths = []string{path}
	}
	return zc.Build()
}

func logStart(logger *zap.Logger, frontend string, cfg *config.Config) {
	logger.Info("starting",
		zap.String("frontend", frontend),
		zap.String("preset", preset),
		zap.String("config", configFile),
		zap.Duration("tick", cfg.Animation.TickInterval),
		zap.Float64("max_speed", cfg.Physics.MaxSpeed),
		zap.Bool("telemetry", cfg.Telemetry.Enabled),
	)
}

// monitorOption returns the app option carrying the resource monitor, or
// nil when telemetry is off or the process cannot be inspected.
func monitorOption(cfg *config.Config, logger *zap.Logger, extra ...func(telemetry.Sample)) app.Option {
	if !cfg.Telemetry.Enabled {
		return nil
	}
	sampler, err := telemetry.NewProcessSampler()
	if err != nil {
		logger.Warn("telemetry disabled", zap.Error(err))
		return nil
	}
	m := telemetry.NewMonitor(sampler, cfg.Telemetry.Interval, logger)
	for _, fn := range extra {
		m.OnSample(fn)
	}
	return app.WithMonitor(m)
}

func appOptions(opts ...app.Option) []app.Option {
	out := make([]app.Option, 0, len(opts))
	for _, o := range opts {
		if o != nil {
			out = append(out, o)
		}
	}
	return out
}

// scriptedTarget builds the target sequence for trace and headless runs:
// the --scenario file when given, otherwise the --target builtin. n is the
// requested tick count; a file scenario without an explicit --ticks runs
// for its own scripted length.
func scriptedTarget(cmd *cobra.Command) (*target.Scenario, *target.Sequence, int, error) {
	flags := cmd.Flags()
	name, _ := flags.GetString("target")
	file, _ := flags.GetString("scenario")
	n, _ := flags.GetInt("ticks")
	if n < 0 {
		return nil, nil, 0, fmt.Errorf("--ticks must not be negative, got %d", n)
	}

	var (
		sc  *target.Scenario
		err error
	)
	if file != "" {
		sc, err = target.LoadScenario(file)
	} else {
		// a single segment is held once it runs out, so an open-ended run
		// only needs a nominal length
		sc, err = target.Builtin(name, motion.Vec2{}, max(n, 1))
	}
	if err != nil {
		return nil, nil, 0, err
	}

	seq, err := sc.Source()
	if err != nil {
		return nil, nil, 0, fmt.Errorf("scenario %q: %w", sc.Name, err)
	}
	if file != "" && !flags.Changed("ticks") {
		n = seq.Total()
	}
	return sc, seq, n, nil
}
