// internal/display/terminal/terminal.go
//
// Text terminal backend for the sprite demo (tcell).
// Responsibilities:
//   - Implement motion.Surface on a tcell screen.
//   - Drive frames from a ticker and events from a PollEvent goroutine.
//   - Exit on Escape, Ctrl-C or q; redraw on resize.
//
// Notes:
//   - Terminals report key presses, not key state, so each press counts as held
//     for holdDuration.
//   - One cell stands for CellWidth x CellHeight pixels, so the pixel-based move
//     speed and text size carry over.

package terminal

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/internal/config"
	"github.com/robalobadob/wordle/internal/motion"
)

const (
	CellWidth  = 8
	CellHeight = 16

	holdDuration  = 120 * time.Millisecond
	frameInterval = 16 * time.Millisecond // ~60 FPS
)

// Terminal is a tcell screen acting as the sprite's motion.Surface.
type Terminal struct {
	screen tcell.Screen
	sprite *motion.Sprite
	label  string
	style  tcell.Style

	held map[motion.Key]time.Time
	now  func() time.Time
	pos  motion.Vec
}

// New wraps an initialized screen.
func New(screen tcell.Screen, cfg config.Sprite) *Terminal {
	return &Terminal{
		screen: screen,
		sprite: motion.NewSprite(cfg.Params),
		label:  cfg.Label,
		style:  tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true),
		held:   make(map[motion.Key]time.Time),
		now:    time.Now,
	}
}

// PressedKeys returns the keys pressed within the last holdDuration.
func (t *Terminal) PressedKeys() motion.KeySet {
	var keys motion.KeySet
	now := t.now()
	for k, until := range t.held {
		if now.Before(until) {
			keys = keys.With(k)
		}
	}
	return keys
}

// WindowSize converts the screen's cell size to pixels.
func (t *Terminal) WindowSize() (float64, float64) {
	cols, rows := t.screen.Size()
	return float64(cols * CellWidth), float64(rows * CellHeight)
}

func (t *Terminal) SetPosition(p motion.Vec) { t.pos = p }

func (t *Terminal) press(k motion.Key) {
	t.held[k] = t.now().Add(holdDuration)
}

// keyFor maps tcell arrow keys to sprite directions.
func keyFor(k tcell.Key) (motion.Key, bool) {
	switch k {
	case tcell.KeyLeft:
		return motion.KeyLeft, true
	case tcell.KeyRight:
		return motion.KeyRight, true
	case tcell.KeyUp:
		return motion.KeyUp, true
	case tcell.KeyDown:
		return motion.KeyDown, true
	}
	return 0, false
}

// handleEvent applies one terminal event. It returns false when the user asks to
// leave.
func (t *Terminal) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return false
		}
		if k, ok := keyFor(ev.Key()); ok {
			t.press(k)
		}
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return true
}

// Frame advances the sprite one step and redraws.
func (t *Terminal) Frame() {
	t.sprite.Update(t)
	t.draw()
}

// cell returns the screen cell of the label's first rune.
func (t *Terminal) cell() (col, row int) {
	w, h := t.WindowSize()
	x, y := motion.ToScreen(t.pos, w, h)
	col = int(x/CellWidth) - len([]rune(t.label))/2
	row = int(y / CellHeight)
	cols, rows := t.screen.Size()
	if row >= rows {
		row = rows - 1
	}
	if row < 0 {
		row = 0
	}
	if col < 0 {
		col = 0
	}
	if col >= cols {
		col = cols - 1
	}
	return col, row
}

func (t *Terminal) draw() {
	t.screen.Clear()
	col, row := t.cell()
	for i, r := range []rune(t.label) {
		t.screen.SetContent(col+i, row, r, nil, t.style)
	}
	t.screen.Show()
}

// Run drives frames until ctx is done or the user quits.
func (t *Terminal) Run(ctx context.Context) error {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	t.Frame()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok || !t.handleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			t.Frame()
		}
	}
}

// Run opens the terminal screen, plays until the user quits and restores the
// terminal.
func Run(ctx context.Context, cfg config.Sprite) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	cols, rows := screen.Size()

	err = New(screen, cfg).Run(ctx)
	screen.Fini()
	log.Info().Str("backend", config.BackendTerminal).Int("cols", cols).Int("rows", rows).Msg("sprite terminal closed")
	return err
}
