package object

import (
	"math/rand"
	"testing"
	"time"

	"github.com/tomz197/lanedodger/internal/loop/config"
)

func TestNewBandIsCenteredFraction(t *testing.T) {
	band := NewBand(Surface{Width: 1000, Height: 1000})
	if got, want := band.Height(), 870.0; got < want-1e-9 || got > want+1e-9 {
		t.Fatalf("band height = %f, want %f", got, want)
	}
	if got, want := band.Top, 65.0; got < want-1e-9 || got > want+1e-9 {
		t.Fatalf("band top = %f, want %f", got, want)
	}
}

func TestPlayerApplyClampsAndResets(t *testing.T) {
	surface := Surface{Width: 800, Height: 400}
	band := NewBand(surface)
	p := NewPlayer(surface)

	for i := 0; i < 20; i++ {
		p.Steer(DirectionUp)
		p.Apply(band)
		if p.DY != 0 {
			t.Fatalf("DY after Apply = %f, want 0", p.DY)
		}
	}
	if p.Y != band.Top {
		t.Fatalf("player y = %f, want band top %f", p.Y, band.Top)
	}

	for i := 0; i < 20; i++ {
		p.Steer(DirectionDown)
		p.Apply(band)
	}
	if want := band.Bottom - p.H; p.Y != want {
		t.Fatalf("player y = %f, want %f", p.Y, want)
	}
}

func TestPlayerSteerLastInputWins(t *testing.T) {
	p := NewPlayer(Surface{Width: 800, Height: 400})
	p.Steer(DirectionUp)
	p.Steer(DirectionDown)
	if p.DY != config.PlayerStep {
		t.Fatalf("DY = %f, want %f", p.DY, config.PlayerStep)
	}
	p.Steer(DirectionNone)
	if p.DY != config.PlayerStep {
		t.Fatalf("DirectionNone changed DY to %f", p.DY)
	}
}

func TestPlayerDirectionTo(t *testing.T) {
	p := NewPlayer(Surface{Width: 800, Height: 400})

	tests := []struct {
		name string
		y    float64
		want Direction
	}{
		{"above", p.Y - 1, DirectionUp},
		{"top edge", p.Y, DirectionNone},
		{"inside", p.Y + p.H/2, DirectionNone},
		{"bottom edge", p.Bottom(), DirectionNone},
		{"below", p.Bottom() + 1, DirectionDown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.DirectionTo(tt.y); got != tt.want {
				t.Errorf("DirectionTo(%f) = %v, want %v", tt.y, got, tt.want)
			}
		})
	}
}

func TestAdvanceAllDropsOffscreenBodies(t *testing.T) {
	bodies := []Body{
		NewBody(KindObstacle, 100, 0, 60),
		NewBody(KindObstacle, -40, 0, 60), // right edge 20 -> 0 after move, kept
		NewBody(KindObstacle, -41, 0, 60), // right edge 19 -> -1 after move, dropped
		NewBody(KindDistractor, 25, 0, 2),
	}

	kept := AdvanceAll(bodies, 20)
	if len(kept) != 3 {
		t.Fatalf("kept %d bodies, want 3", len(kept))
	}
	if kept[0].X != 80 || kept[1].X != -60 || kept[2].X != 5 {
		t.Fatalf("unexpected positions after advance: %+v", kept)
	}
	if kept[2].Kind != KindDistractor {
		t.Fatalf("order not preserved: %+v", kept)
	}
}

func TestSpawnerIntervalIsStrict(t *testing.T) {
	start := time.Unix(0, 0)
	surface := Surface{Width: 640, Height: 480}
	band := NewBand(surface)
	rng := rand.New(rand.NewSource(1))
	s := NewSpawner(KindObstacle, config.ObstacleSize, 140*time.Millisecond, start)

	if _, ok := s.Update(start.Add(140*time.Millisecond), rng, surface, band); ok {
		t.Fatalf("spawned at exactly the interval, want strictly greater")
	}
	now := start.Add(141 * time.Millisecond)
	b, ok := s.Update(now, rng, surface, band)
	if !ok {
		t.Fatalf("expected spawn after interval elapsed")
	}
	if !s.Last().Equal(now) {
		t.Fatalf("timer not reset: last=%v want %v", s.Last(), now)
	}
	if b.X != surface.Width {
		t.Fatalf("spawn x = %f, want right edge %f", b.X, surface.Width)
	}
	if b.Kind != KindObstacle || b.W != config.ObstacleSize || b.H != config.ObstacleSize {
		t.Fatalf("unexpected body %+v", b)
	}
}

func TestSpawnerStaysInsideBand(t *testing.T) {
	start := time.Unix(0, 0)
	surface := Surface{Width: 640, Height: 480}
	band := NewBand(surface)
	rng := rand.New(rand.NewSource(42))
	s := NewSpawner(KindObstacle, config.ObstacleSize, time.Millisecond, start)

	now := start
	for i := 0; i < 500; i++ {
		now = now.Add(2 * time.Millisecond)
		b, ok := s.Update(now, rng, surface, band)
		if !ok {
			t.Fatalf("iteration %d: expected spawn", i)
		}
		if b.Y < band.Top || b.Bottom() > band.Bottom {
			t.Fatalf("iteration %d: body %+v outside band %+v", i, b.Rect, band)
		}
	}
}
