package motion

import (
	"math/rand"
	"testing"
)

type fakeSurface struct {
	keys KeySet
	w, h float64
	set  []Vec
}

func (f *fakeSurface) PressedKeys() KeySet { return f.keys }
func (f *fakeSurface) WindowSize() (float64, float64) { return f.w, f.h }
func (f *fakeSurface) SetPosition(p Vec) { f.set = append(f.set, p) }

func TestDirection(t *testing.T) {
	tests := []struct {
		name string
		keys KeySet
		want Vec
	}{
		{"none", 0, Vec{}},
		{"left", Keys(KeyLeft), Vec{-5, 0}},
		{"right", Keys(KeyRight), Vec{5, 0}},
		{"up", Keys(KeyUp), Vec{0, 5}},
		{"down", Keys(KeyDown), Vec{0, -5}},
		{"diagonal", Keys(KeyUp, KeyRight), Vec{5, 5}},
		{"left+right cancel", Keys(KeyLeft, KeyRight), Vec{0, 0}},
		{"up+down cancel", Keys(KeyUp, KeyDown), Vec{0, 0}},
		{"all cancel", Keys(KeyLeft, KeyRight, KeyUp, KeyDown), Vec{0, 0}},
		{"opposite x, up y", Keys(KeyLeft, KeyRight, KeyUp), Vec{0, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Direction(tt.keys, 5); got != tt.want {
				t.Errorf("Direction = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBounds(t *testing.T) {
	b := Bounds(800, 600, 48)
	if b.X != 352 || b.Y != 276 {
		t.Errorf("Bounds(800, 600) = %+v, want {352 276}", b)
	}
	if b := Bounds(40, 20, 48); b.X != 0 || b.Y != 0 {
		t.Errorf("tiny window bounds = %+v, want zero", b)
	}
}

func TestStepClamps(t *testing.T) {
	p := DefaultParams()
	got := Step(Vec{350, 275}, Keys(KeyRight, KeyUp), 800, 600, p)
	if got != (Vec{352, 276}) {
		t.Errorf("Step at edge = %+v, want {352 276}", got)
	}
	got = Step(Vec{-352, -276}, Keys(KeyLeft, KeyDown), 800, 600, p)
	if got != (Vec{-352, -276}) {
		t.Errorf("Step past negative edge = %+v", got)
	}
}

func TestStepFollowsResize(t *testing.T) {
	p := DefaultParams()
	// Sprite far right in a large window, then the window shrinks.
	got := Step(Vec{500, 0}, 0, 400, 300, p)
	if got.X != 152 {
		t.Errorf("X after shrink = %v, want 152", got.X)
	}
}

func TestStepStaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p := DefaultParams()
	pos := Vec{}
	for i := 0; i < 5000; i++ {
		w := float64(rng.Intn(1200))
		h := float64(rng.Intn(900))
		keys := KeySet(rng.Intn(16))
		if rng.Intn(10) == 0 {
			pos = Vec{rng.Float64()*4000 - 2000, rng.Float64()*4000 - 2000}
		}
		pos = Step(pos, keys, w, h, p)
		b := Bounds(w, h, p.TextSize)
		if pos.X < -b.X || pos.X > b.X || pos.Y < -b.Y || pos.Y > b.Y {
			t.Fatalf("frame %d: %+v outside ±%+v (window %vx%v)", i, pos, b, w, h)
		}
	}
}

func TestSpriteUpdate(t *testing.T) {
	s := NewSprite(DefaultParams())
	surf := &fakeSurface{keys: Keys(KeyLeft, KeyUp), w: 800, h: 600}
	s.Update(surf)
	s.Update(surf)
	if s.Pos != (Vec{-10, 10}) {
		t.Errorf("pos = %+v, want {-10 10}", s.Pos)
	}
	if len(surf.set) != 2 || surf.set[1] != s.Pos {
		t.Errorf("surface positions = %+v", surf.set)
	}

	surf.keys = Keys(KeyLeft, KeyRight)
	s.Update(surf)
	if s.Pos.X != -10 {
		t.Errorf("opposite keys moved X to %v", s.Pos.X)
	}
}

func TestToScreen(t *testing.T) {
	tests := []struct {
		p            Vec
		wantX, wantY float64
	}{
		{Vec{}, 400, 300},
		{Vec{X: 352, Y: 276}, 752, 24},
		{Vec{X: -352, Y: -276}, 48, 576},
	}
	for _, tt := range tests {
		x, y := ToScreen(tt.p, 800, 600)
		if x != tt.wantX || y != tt.wantY {
			t.Errorf("ToScreen(%+v) = (%v, %v), want (%v, %v)", tt.p, x, y, tt.wantX, tt.wantY)
		}
	}
}
