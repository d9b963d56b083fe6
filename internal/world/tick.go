package world

import (
	"time"

	"github.com/tomz197/lanedodger/internal/loop/config"
	"github.com/tomz197/lanedodger/internal/object"
)

// Tick advances the game by one frame. In GameOver it does nothing.
// Returns whether the game is still running afterwards.
func (s *State) Tick(now time.Time) bool {
	if s.Phase != PhaseRunning {
		return false
	}
	s.Ticks++

	s.Obstacles = object.AdvanceAll(s.Obstacles, config.BodySpeed)
	if s.collides() {
		s.Phase = PhaseGameOver
	}
	s.Distractors = object.AdvanceAll(s.Distractors, config.BodySpeed)

	if s.Phase == PhaseRunning {
		s.Score += config.ScorePerTick
	}

	s.Player.Apply(s.Band)
	s.spawn(now)

	return s.Phase == PhaseRunning
}

// Steer queues a one-shot vertical move for the next tick.
// Ignored once the game is over.
func (s *State) Steer(dir object.Direction) {
	if s.Phase != PhaseRunning {
		return
	}
	s.Player.Steer(dir)
}

// Touch steers toward a pointer at logical height y: up if above the
// player, down if below, nothing if level with it.
func (s *State) Touch(y float64) {
	s.Steer(s.Player.DirectionTo(y))
}

// collides reports whether any obstacle overlaps the player.
func (s *State) collides() bool {
	for i := range s.Obstacles {
		if s.Obstacles[i].Overlaps(s.Player.Rect) {
			return true
		}
	}
	return false
}

// spawn lets each spawner add a body if its interval elapsed.
func (s *State) spawn(now time.Time) {
	if b, ok := s.obstacleSpawner.Update(now, s.rng, s.Surface, s.Band); ok {
		s.Obstacles = append(s.Obstacles, b)
	}
	if b, ok := s.distractorSpawner.Update(now, s.rng, s.Surface, s.Band); ok {
		s.Distractors = append(s.Distractors, b)
	}
}
