package world

import "fmt"

// Overlay text shared by every renderer.
const (
	GameOverText = "Game Over"
	RecordText   = "Congratulations, new player record!"
)

// Readout returns the score line shown every frame.
func (s *State) Readout() string {
	return fmt.Sprintf("Time: %d", s.Seconds())
}

// Messages returns the centered overlay lines for the current phase,
// or nil while the game is running.
func (s *State) Messages() []string {
	if s.Phase != PhaseGameOver {
		return nil
	}
	if s.Record() {
		return []string{GameOverText, RecordText}
	}
	return []string{GameOverText}
}
