// internal/motion/motion.go
//
// Per-frame movement of a single text sprite inside a window.
// Responsibilities:
//   - Sum one fixed step per held direction key (opposites cancel).
//   - Recompute bounds from the window size every frame (resize aware).
//   - Clamp the moved position into [-bound, +bound] per axis.
//
// Notes:
//   - Coordinates are centered on the window with Y pointing up; ToScreen maps
//     them to top-left screen space for the backends.
//   - Surface is the only view of the display the sprite gets.

package motion

// Key is a directional key the sprite reacts to.
type Key uint8

const (
	KeyLeft Key = 1 << iota
	KeyRight
	KeyUp
	KeyDown
)

// KeySet is the set of keys held during one frame.
type KeySet uint8

// Keys builds a KeySet from individual keys.
func Keys(keys ...Key) KeySet {
	var s KeySet
	for _, k := range keys {
		s |= KeySet(k)
	}
	return s
}

// Has reports whether k is held.
func (s KeySet) Has(k Key) bool { return s&KeySet(k) != 0 }

// With returns s with k added.
func (s KeySet) With(k Key) KeySet { return s | KeySet(k) }

// Vec is a 2D position or displacement.
type Vec struct {
	X, Y float64
}

// Add returns v+o.
func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }

// Params are the per-frame movement constants.
// TextSize stands in for the label's width and height; it is the font size, not a
// measured glyph extent.
type Params struct {
	MoveSpeed float64
	TextSize  float64
}

// DefaultParams returns a 5 unit step and a 48 unit text size.
func DefaultParams() Params {
	return Params{MoveSpeed: 5, TextSize: 48}
}

// Surface is what a display backend offers the sprite each frame.
type Surface interface {
	// PressedKeys returns the keys held this frame.
	PressedKeys() KeySet
	// WindowSize returns the current drawable size in pixels.
	WindowSize() (width, height float64)
	// SetPosition hands the new sprite position to the renderer.
	SetPosition(p Vec)
}

// Direction sums one MoveSpeed step per held key. Opposing keys cancel.
func Direction(keys KeySet, speed float64) Vec {
	var d Vec
	if keys.Has(KeyLeft) {
		d.X -= speed
	}
	if keys.Has(KeyRight) {
		d.X += speed
	}
	if keys.Has(KeyUp) {
		d.Y += speed
	}
	if keys.Has(KeyDown) {
		d.Y -= speed
	}
	return d
}

// Bounds returns the largest absolute X and Y the sprite may reach in a window of
// the given size. A window smaller than the text yields zero on that axis.
func Bounds(width, height, textSize float64) Vec {
	return Vec{
		X: nonNegative(width/2 - textSize),
		Y: nonNegative(height/2 - textSize/2),
	}
}

// Step returns pos moved by the held keys and clamped to the window bounds.
func Step(pos Vec, keys KeySet, width, height float64, p Params) Vec {
	b := Bounds(width, height, p.TextSize)
	next := pos.Add(Direction(keys, p.MoveSpeed))
	return Vec{
		X: clamp(next.X, -b.X, b.X),
		Y: clamp(next.Y, -b.Y, b.Y),
	}
}

// Sprite is the one moving entity.
type Sprite struct {
	Pos    Vec
	Params Params
}

// NewSprite places a sprite at the window center.
func NewSprite(p Params) *Sprite {
	return &Sprite{Params: p}
}

// Update advances the sprite by one frame using the surface's snapshot and
// writes the result back to it.
func (s *Sprite) Update(surf Surface) {
	w, h := surf.WindowSize()
	s.Pos = Step(s.Pos, surf.PressedKeys(), w, h, s.Params)
	surf.SetPosition(s.Pos)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

// ToScreen converts a centered, Y-up position to top-left, Y-down screen
// coordinates for a window of the given size.
func ToScreen(p Vec, width, height float64) (x, y float64) {
	return width/2 + p.X, height/2 - p.Y
}
