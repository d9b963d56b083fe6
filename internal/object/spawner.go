package object

import (
	"math/rand"
	"time"
)

// Spawner emits bodies of one kind at a fixed interval, entering at the
// right edge of the surface at a random height inside the band.
type Spawner struct {
	Kind     Kind
	Size     float64
	Interval time.Duration
	last     time.Time
}

// NewSpawner creates a spawner whose timer starts at now.
func NewSpawner(kind Kind, size float64, interval time.Duration, now time.Time) *Spawner {
	return &Spawner{
		Kind:     kind,
		Size:     size,
		Interval: interval,
		last:     now,
	}
}

// Due reports whether strictly more than Interval has passed since the last spawn.
func (s *Spawner) Due(now time.Time) bool {
	return now.Sub(s.last) > s.Interval
}

// Update spawns one body if the interval elapsed and resets the timer.
func (s *Spawner) Update(now time.Time, rng *rand.Rand, surface Surface, band Band) (Body, bool) {
	if !s.Due(now) {
		return Body{}, false
	}
	s.last = now

	y := band.Top + rng.Float64()*(band.Height()-s.Size)
	return NewBody(s.Kind, surface.Width, y, s.Size), true
}

// Last returns the time of the last spawn (or the start time).
func (s *Spawner) Last() time.Time {
	return s.last
}
