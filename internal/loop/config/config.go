// Package config centralizes all tunable game parameters.
package config

import "time"

// Entity sizes in logical units.
const (
	PlayerSize     = 20.0
	ObstacleSize   = 60.0
	DistractorSize = 2.0
)

// Movement
const (
	PlayerStartX = 50.0
	PlayerStep   = 50.0 // Distance moved per discrete up/down input
	BodySpeed    = 20.0 // Leftward distance per tick for obstacles and distractors
)

// Spawning
const (
	ObstacleInterval   = 140 * time.Millisecond
	DistractorInterval = 10 * time.Millisecond
)

// Playable band
const (
	BandFraction = 0.87 // Share of the surface height the band occupies, vertically centered
)

// Scoring
const (
	ScorePerTick  = 16 // Milliseconds credited per running tick (~60 FPS)
	RecordSeconds = 65 // Elapsed seconds at game over that earn the record message
)

// Terminal surface - logical units per sub-pixel on both axes.
// A terminal cell is two sub-pixels tall, so 10x20 units per cell keeps
// the logical aspect close to square.
const (
	UnitsPerSubPixel = 10.0
	HUDRows          = 1 // Rows reserved above the canvas for the score readout
)

// Desktop surface fallback when the host reports no viewport size.
const (
	DesktopWidth  = 1280
	DesktopHeight = 720
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)
