package gui

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/zzzbluecode/Rocket-Pet-App/internal/config"
	"github.com/zzzbluecode/Rocket-Pet-App/internal/motion"
	"github.com/zzzbluecode/Rocket-Pet-App/internal/sprite"
)

const (
	fallbackWidth  = 1280
	fallbackHeight = 720
)

// Frontend owns the window. Run must be called from the main goroutine.
type Frontend struct {
	cfg     *config.Config
	game    *Game
	watcher *sprite.Watcher
	logger  *zap.Logger

	closed atomic.Bool
	once   sync.Once
}

func NewFrontend(cfg *config.Config, logger *zap.Logger) (*Frontend, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("gui")

	art, err := loadArt(cfg.Sprite)
	if err != nil {
		return nil, err
	}

	f := &Frontend{cfg: cfg, logger: logger}
	f.game = NewGame(cfg.Sprite, art, logger)
	f.game.closed = f.closed.Load

	if cfg.Sprite.Path != "" && cfg.Sprite.Watch {
		w, err := sprite.Watch(cfg.Sprite.Path, cfg.Sprite.Size)
		if err != nil {
			logger.Warn("sprite watch disabled", zap.String("path", cfg.Sprite.Path), zap.Error(err))
		} else {
			f.watcher = w
			f.game.reload = w.Images
			go f.logWatchErrors(w.Errors)
		}
	}
	return f, nil
}

func loadArt(cfg config.SpriteConfig) (image.Image, error) {
	if cfg.Path == "" {
		return sprite.Silhouette(cfg.Size), nil
	}
	img, err := sprite.Load(cfg.Path, cfg.Size)
	if err != nil {
		return nil, fmt.Errorf("load sprite: %w", err)
	}
	return img, nil
}

func (f *Frontend) logWatchErrors(errs <-chan error) {
	for err := range errs {
		f.logger.Warn("sprite reload failed", zap.Error(err))
	}
}

// Game exposes the window as a target source and sink for the driver.
func (f *Frontend) Game() *Game { return f.game }

func (f *Frontend) OnDismiss(fn func()) { f.game.OnDismiss(fn) }

// ScreenCenter returns the centre of the current monitor in world units.
func ScreenCenter() motion.Vec2 {
	w, h := fallbackWidth, fallbackHeight
	if m := ebiten.Monitor(); m != nil {
		if mw, mh := m.Size(); mw > 0 && mh > 0 {
			w, h = mw, mh
		}
	}
	return motion.Vec2{X: float64(w) / 2, Y: float64(h) / 2}
}

func (f *Frontend) Run(ctx context.Context) error {
	w := f.cfg.Window
	ebiten.SetWindowTitle(w.Title)
	ebiten.SetWindowDecorated(w.Decorated)
	ebiten.SetWindowFloating(w.Floating)
	ebiten.SetFullscreen(w.Fullscreen)
	ebiten.SetWindowMousePassthrough(w.MousePassthrough)
	if w.MousePassthrough {
		f.logger.Warn("mouse passthrough enabled, right-click dismiss is unavailable; stop with SIGINT or SIGTERM")
	}
	ebiten.SetTPS(f.cfg.Animation.TPS())

	go func() {
		<-ctx.Done()
		f.closed.Store(true)
	}()

	f.logger.Info("window opened",
		zap.Int("tps", f.cfg.Animation.TPS()),
		zap.Bool("fullscreen", w.Fullscreen),
		zap.Bool("transparent", w.Transparent),
	)
	err := ebiten.RunGameWithOptions(f.game, &ebiten.RunGameOptions{
		ScreenTransparent: w.Transparent,
	})
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// Close asks the game loop to exit on its next frame and stops the sprite
// watcher. It never blocks on the game thread.
func (f *Frontend) Close() error {
	var err error
	f.once.Do(func() {
		f.closed.Store(true)
		if f.watcher != nil {
			err = f.watcher.Close()
		}
	})
	return err
}
