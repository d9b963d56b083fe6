package input

import (
	"math/rand"
	"testing"
	"time"

	"github.com/tomz197/lanedodger/internal/object"
	"github.com/tomz197/lanedodger/internal/world"
)

func TestPointerTrackerMoved(t *testing.T) {
	tr := NewPointerTracker()
	touch := PointerID{Touch: 3}
	mouse := PointerID{Mouse: true}

	frames := []struct {
		name   string
		active []PointerSample
		want   []float64
	}{
		{"press", []PointerSample{{touch, 100}}, []float64{100}},
		{"held", []PointerSample{{touch, 100}}, nil},
		{"drag", []PointerSample{{touch, 120}}, []float64{120}},
		{"mouse joins", []PointerSample{{touch, 120}, {mouse, 300}}, []float64{300}},
		{"released", nil, nil},
		{"pressed again", []PointerSample{{touch, 120}}, []float64{120}},
	}
	for _, f := range frames {
		got := tr.Moved(f.active)
		if len(got) != len(f.want) {
			t.Fatalf("%s: Moved = %v, want %v", f.name, got, f.want)
		}
		for i := range got {
			if got[i] != f.want[i] {
				t.Fatalf("%s: Moved = %v, want %v", f.name, got, f.want)
			}
		}
	}
}

func TestHeldPointerStepsOnce(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	s := world.New(object.Surface{Width: 1280, Height: 720}, now, rand.New(rand.NewSource(1)))
	tr := NewPointerTracker()

	// Just below the player, closer than one step: stepping every frame
	// would bounce the player around the finger.
	held := []PointerSample{{ID: PointerID{Touch: 1}, Y: s.Player.Bottom() + 15}}

	ys := []float64{s.Player.Y}
	for i := 0; i < 8; i++ {
		for _, y := range tr.Moved(held) {
			s.Touch(y)
		}
		s.Tick(now)
		ys = append(ys, s.Player.Y)
	}

	moves := 0
	for i := 1; i < len(ys); i++ {
		if ys[i] != ys[i-1] {
			moves++
		}
	}
	if moves != 1 {
		t.Fatalf("held touch moved the player %d times, want 1: %v", moves, ys)
	}
}
