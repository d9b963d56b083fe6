// Package object defines the entities that live in the lane: the player,
// obstacles and distractors, plus the surface and band they move within.
package object

import (
	"github.com/tomz197/lanedodger/internal/loop/config"
	"github.com/tomz197/lanedodger/internal/physics"
)

// Surface is the drawing area in logical units, fixed at startup.
type Surface struct {
	Width  float64
	Height float64
}

// Band is the playable vertical strip of the surface.
type Band struct {
	Top    float64
	Bottom float64
}

// NewBand returns the band occupying config.BandFraction of the surface
// height, vertically centered.
func NewBand(s Surface) Band {
	h := s.Height * config.BandFraction
	top := (s.Height - h) / 2
	return Band{Top: top, Bottom: top + h}
}

// Height returns the band height.
func (b Band) Height() float64 {
	return b.Bottom - b.Top
}

// ClampY clamps the top edge of an object of height h so it stays inside the band.
func (b Band) ClampY(y, h float64) float64 {
	return physics.Clamp(y, b.Top, b.Bottom-h)
}

// Kind identifies what a Body is.
type Kind int

const (
	KindObstacle   Kind = iota // Collides with the player
	KindDistractor             // Cosmetic only
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindObstacle:
		return "obstacle"
	case KindDistractor:
		return "distractor"
	default:
		return "unknown"
	}
}

// Body is a square that scrolls leftward across the lane.
type Body struct {
	physics.Rect
	Kind Kind
}

// NewBody creates a body of the given kind and edge length at (x, y).
func NewBody(kind Kind, x, y, size float64) Body {
	return Body{
		Rect: physics.Rect{X: x, Y: y, W: size, H: size},
		Kind: kind,
	}
}

// Advance moves the body left by speed. Returns true if the body has fully
// left the surface and should be removed.
func (b *Body) Advance(speed float64) (remove bool) {
	b.X -= speed
	return b.Right() < 0
}

// AdvanceAll moves every body left by speed and drops the ones that left the
// surface. The backing array of bodies is reused.
func AdvanceAll(bodies []Body, speed float64) []Body {
	kept := bodies[:0]
	for i := range bodies {
		b := bodies[i]
		if !b.Advance(speed) {
			kept = append(kept, b)
		}
	}
	return kept
}
