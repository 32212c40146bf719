package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zzzbluecode/Rocket-Pet-App/internal/app"
	"github.com/zzzbluecode/Rocket-Pet-App/internal/gui"
	"github.com/zzzbluecode/Rocket-Pet-App/internal/motion"
	"github.com/zzzbluecode/Rocket-Pet-App/internal/sim"
	"github.com/zzzbluecode/Rocket-Pet-App/internal/telemetry"
	"github.com/zzzbluecode/Rocket-Pet-App/internal/tui"
)

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(logFile)
	if err != nil {
		return err
	}
	defer logger.Sync()
	logStart(logger, "window", cfg)

	front, err := gui.NewFrontend(cfg, logger)
	if err != nil {
		return err
	}
	game := front.Game()

	driver := sim.NewDriver(sim.NewModel(cfg.Physics), game, motion.NewState(gui.ScreenCenter()))
	driver.AddSink(game)
	game.Bind(driver)

	a := app.New(driver, front, logger, appOptions(monitorOption(cfg, logger))...)
	return a.Run(context.Background())
}

// runTUI keeps logs off the terminal unless --log-file is set; resource
// samples are shown in the status bar instead.
func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := zap.NewNop()
	if logFile != "" {
		if logger, err = newLogger(logFile); err != nil {
			return err
		}
	}
	defer logger.Sync()
	logStart(logger, "tui", cfg)

	front := tui.NewFrontend(cfg, logger)
	model := front.Model()

	// the rocket holds still at the centre until the mouse first moves
	start := tui.ScreenCenter(cfg.Terminal)
	model.SetCursor(start)
	driver := sim.NewDriver(sim.NewModel(cfg.Physics), model, motion.NewState(start))
	driver.AddSink(model)
	model.Bind(driver)

	stats := func(s telemetry.Sample) { front.Notify(s.String()) }
	a := app.New(driver, front, logger, appOptions(monitorOption(cfg, logger, stats))...)
	return a.Run(context.Background())
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(logFile)
	if err != nil {
		return err
	}
	defer logger.Sync()
	logStart(logger, "headless", cfg)

	sc, seq, n, err := scriptedTarget(cmd)
	if err != nil {
		return err
	}
	every, _ := cmd.Flags().GetInt("report")
	if every < 0 {
		every = 0
	}

	driver := sim.NewDriver(sim.NewModel(cfg.Physics), seq, motion.NewState(sc.Start.Vec()))
	front := app.NewHeadless(driver, cfg.Animation.TickInterval, uint64(n), uint64(every), logger)

	logger.Info("headless run",
		zap.String("scenario", sc.Name),
		zap.Int("ticks", n),
		zap.Duration("interval", cfg.Animation.TickInterval),
	)
	a := app.New(driver, front, logger, appOptions(monitorOption(cfg, logger))...)
	return a.Run(context.Background())
}
