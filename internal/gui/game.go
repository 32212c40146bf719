// Package gui renders the rocket in a borderless transparent window that
// follows the desktop cursor.
package gui

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/zzzbluecode/Rocket-Pet-App/internal/config"
	"github.com/zzzbluecode/Rocket-Pet-App/internal/motion"
	"github.com/zzzbluecode/Rocket-Pet-App/internal/sprite"
)

// Ticker advances the motion state by one step and reports whether it is
// still running.
type Ticker interface {
	Tick() bool
}

// Game is the ebiten game. It doubles as the driver's target source, since
// the cursor can only be read on the game thread, and as its sink.
type Game struct {
	cfg    config.SpriteConfig
	logger *zap.Logger

	ticker  Ticker
	dismiss func()
	reload  <-chan image.Image
	closed  func() bool

	img    *ebiten.Image
	cursor motion.Vec2
	state  motion.State
}

func NewGame(cfg config.SpriteConfig, art image.Image, logger *zap.Logger) *Game {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Game{
		cfg:    cfg,
		logger: logger,
		img:    ebiten.NewImageFromImage(art),
		closed: func() bool { return false },
	}
}

// Bind attaches the driver that Update ticks once per frame.
func (g *Game) Bind(t Ticker) { g.ticker = t }

// OnDismiss sets the callback run when the rocket is right-clicked.
func (g *Game) OnDismiss(fn func()) { g.dismiss = fn }

func (g *Game) Target() motion.Vec2 { return g.cursor }

func (g *Game) Render(s motion.State) { g.state = s }

// frameInput is what Update reads from ebiten each frame.
type frameInput struct {
	cursor     motion.Vec2
	rightClick bool
}

func (g *Game) Update() error {
	x, y := ebiten.CursorPosition()
	img, err := g.step(frameInput{
		cursor:     motion.Vec2{X: float64(x), Y: float64(y)},
		rightClick: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight),
	})
	if img != nil {
		g.img = ebiten.NewImageFromImage(img)
		g.logger.Info("sprite reloaded")
	}
	return err
}

// step advances one frame without touching ebiten state. It returns a
// freshly reloaded sprite, if any, and ebiten.Termination once the game
// should exit.
func (g *Game) step(in frameInput) (image.Image, error) {
	if g.closed() {
		return nil, ebiten.Termination
	}

	var reloaded image.Image
	select {
	case img, ok := <-g.reload:
		if ok {
			reloaded = img
		}
	default:
	}

	g.cursor = in.cursor
	if in.rightClick && sprite.Contains(g.state.Position, float64(g.cfg.Size), g.cursor) {
		g.logger.Info("dismissed by right click")
		if g.dismiss != nil {
			g.dismiss()
		}
		return reloaded, ebiten.Termination
	}

	if g.ticker != nil && !g.ticker.Tick() {
		return reloaded, ebiten.Termination
	}
	return reloaded, nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	b := g.img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(b.Dx())/2, -float64(b.Dy())/2)
	op.GeoM.Rotate(sprite.Rotation(g.state.Angle, g.cfg.RotationOffset))
	op.GeoM.Translate(g.state.Position.X, g.state.Position.Y)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(g.img, op)
}

// Layout keeps one world unit per screen pixel.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
