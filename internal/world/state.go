// Package world holds the simulation of a single lane game: the explicit
// state struct and the per-frame operations that advance it. It has no
// rendering or input dependencies so every frontend shares it.
package world

import (
	"math/rand"
	"time"

	"github.com/tomz197/lanedodger/internal/loop/config"
	"github.com/tomz197/lanedodger/internal/object"
)

// Phase is the game's position in its one-way state machine.
type Phase int

const (
	PhaseRunning  Phase = iota // Entities move, score accrues
	PhaseGameOver              // Terminal; the scene is frozen
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhaseGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// State holds everything one game needs between frames.
type State struct {
	Surface     object.Surface
	Band        object.Band
	Player      *object.Player
	Obstacles   []object.Body
	Distractors []object.Body
	Score       int // Elapsed running time in milliseconds
	Phase       Phase
	Ticks       int // Frames advanced while running

	obstacleSpawner   *object.Spawner
	distractorSpawner *object.Spawner
	rng               *rand.Rand
}

// New creates a running game on a surface of the given size. Spawn timers
// start at now. A nil rng seeds one from the clock.
func New(surface object.Surface, now time.Time, rng *rand.Rand) *State {
	if rng == nil {
		rng = rand.New(rand.NewSource(now.UnixNano()))
	}
	return &State{
		Surface:           surface,
		Band:              object.NewBand(surface),
		Player:            object.NewPlayer(surface),
		Obstacles:         []object.Body{},
		Distractors:       []object.Body{},
		Phase:             PhaseRunning,
		obstacleSpawner:   object.NewSpawner(object.KindObstacle, config.ObstacleSize, config.ObstacleInterval, now),
		distractorSpawner: object.NewSpawner(object.KindDistractor, config.DistractorSize, config.DistractorInterval, now),
		rng:               rng,
	}
}

// Running reports whether the game has not ended.
func (s *State) Running() bool {
	return s.Phase == PhaseRunning
}

// Seconds returns the elapsed running time in whole seconds.
func (s *State) Seconds() int {
	return s.Score / 1000
}

// Record reports whether the elapsed time reached the record threshold.
func (s *State) Record() bool {
	return s.Seconds() >= config.RecordSeconds
}

// AddObstacle places an obstacle directly, bypassing the spawner.
func (s *State) AddObstacle(x, y float64) {
	s.Obstacles = append(s.Obstacles, object.NewBody(object.KindObstacle, x, y, config.ObstacleSize))
}

// AddDistractor places a distractor directly, bypassing the spawner.
func (s *State) AddDistractor(x, y float64) {
	s.Distractors = append(s.Distractors, object.NewBody(object.KindDistractor, x, y, config.DistractorSize))
}
