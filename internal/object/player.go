package object

import (
	"github.com/tomz197/lanedodger/internal/loop/config"
	"github.com/tomz197/lanedodger/internal/physics"
)

// Direction is a discrete vertical input.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionUp
	DirectionDown
)

// Player is the player-controlled square.
type Player struct {
	physics.Rect
	DY   float64 // Pending one-shot vertical move, consumed by Apply
	Step float64 // Distance of one input step
}

// NewPlayer creates the player at the configured start column, vertically
// centered on the surface.
func NewPlayer(s Surface) *Player {
	return &Player{
		Rect: physics.Rect{
			X: config.PlayerStartX,
			Y: s.Height/2 - config.PlayerSize/2,
			W: config.PlayerSize,
			H: config.PlayerSize,
		},
		Step: config.PlayerStep,
	}
}

// Steer queues a one-shot move. A later call before Apply overrides it.
func (p *Player) Steer(dir Direction) {
	switch dir {
	case DirectionUp:
		p.DY = -p.Step
	case DirectionDown:
		p.DY = p.Step
	}
}

// DirectionTo returns the direction that moves the player toward y, or
// DirectionNone if y is already within the player's vertical extent.
func (p *Player) DirectionTo(y float64) Direction {
	switch {
	case y < p.Y:
		return DirectionUp
	case y > p.Bottom():
		return DirectionDown
	default:
		return DirectionNone
	}
}

// Apply moves the player by the pending velocity, clamps it to the band
// and clears the velocity.
func (p *Player) Apply(band Band) {
	p.Y = band.ClampY(p.Y+p.DY, p.H)
	p.DY = 0
}
