// internal/display/window/window.go
//
// Desktop window backend for the sprite demo (ebiten).
// Responsibilities:
//   - Implement motion.Surface: arrow keys, window size from Layout, draw position.
//   - Draw the label centered on the sprite with the Go regular font.
//   - Exit on Escape.

package window

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/robalobadob/wordle/internal/config"
	"github.com/robalobadob/wordle/internal/motion"
)

// Window is an ebiten.Game that also serves as the sprite's motion.Surface.
type Window struct {
	sprite *motion.Sprite
	label  string
	face   *text.GoTextFace

	width, height int
	pos           motion.Vec
}

// New loads the label font and centers the sprite.
func New(cfg config.Sprite) (*Window, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	return &Window{
		sprite: motion.NewSprite(cfg.Params),
		label:  cfg.Label,
		face:   &text.GoTextFace{Source: src, Size: cfg.Params.TextSize},
		width:  cfg.WindowWidth,
		height: cfg.WindowHeight,
	}, nil
}

// PressedKeys reads the arrow keys held this frame.
func (w *Window) PressedKeys() motion.KeySet {
	var keys motion.KeySet
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		keys = keys.With(motion.KeyLeft)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		keys = keys.With(motion.KeyRight)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		keys = keys.With(motion.KeyUp)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		keys = keys.With(motion.KeyDown)
	}
	return keys
}

// WindowSize returns the size last reported to Layout.
func (w *Window) WindowSize() (float64, float64) {
	return float64(w.width), float64(w.height)
}

// SetPosition stores the position Draw renders at.
func (w *Window) SetPosition(p motion.Vec) { w.pos = p }

func (w *Window) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	w.sprite.Update(w)
	return nil
}

func (w *Window) Draw(screen *ebiten.Image) {
	x, y := motion.ToScreen(w.pos, float64(w.width), float64(w.height))
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.ColorScale.ScaleWithColor(color.White)
	text.Draw(screen, w.label, w.face, op)
}

// Layout follows the window size so resizing moves the bounds.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	w.width, w.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// Run opens the window and blocks until it is closed or Escape is pressed.
func Run(cfg config.Sprite) error {
	w, err := New(cfg)
	if err != nil {
		return err
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.WindowWidth, cfg.WindowHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	log.Info().Str("backend", config.BackendWindow).Int("width", cfg.WindowWidth).Int("height", cfg.WindowHeight).Msg("sprite window opening")
	if err := ebiten.RunGame(w); err != nil {
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}
