package client

import (
	"time"

	"github.com/tomz197/lanedodger/internal/input"
)

// GameState represents the current game phase for a client.
type GameState int

const (
	GameStatePlaying  GameState = iota // Obstacles scroll, time accrues
	GameStateOver                      // Collision happened; scene frozen
	GameStateShutdown                  // Server is shutting down
)

// ClientState holds per-session presentation state. The game itself lives
// in world.State.
type ClientState struct {
	Input         input.Input
	GameState     GameState     // This client's game phase
	Running       bool          // Client loop running
	delta         time.Duration // Frame delta time
	shutdownTimer float64       // Countdown before auto-disconnect on shutdown
	isInactive    bool          // Whether the client is in inactive warning state
	prevGameState GameState     // Game state drawn last frame
	wasInactive   bool          // Inactivity state drawn last frame
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		GameState:     GameStatePlaying,
		prevGameState: GameStatePlaying,
		Running:       true,
	}
}
