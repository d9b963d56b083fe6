// Package client runs one terminal session of the game: it reads input,
// advances the session's world each frame and renders it.
package client

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/tomz197/lanedodger/internal/draw"
	"github.com/tomz197/lanedodger/internal/input"
	"github.com/tomz197/lanedodger/internal/loop/config"
	"github.com/tomz197/lanedodger/internal/loop/server"
	"github.com/tomz197/lanedodger/internal/object"
	"github.com/tomz197/lanedodger/internal/world"
)

// Client handles rendering and input for a single connection.
type Client struct {
	server      server.GameServer
	handle      *server.ClientHandle
	state       *ClientState
	world       *world.State
	canvas      *draw.Canvas
	chunkWriter *draw.ChunkWriter // Accumulates output for chunked writes
	styles      *draw.Styles
	writer      io.Writer
	inputStream *input.Stream
	lastInput   time.Time
	username    string
	termWidth   int
	termHeight  int
	mouse       bool
	now         func() time.Time
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	DisableMouse bool             // Skip enabling terminal mouse reporting
	Now          func() time.Time // Clock; defaults to time.Now
	Rand         *rand.Rand       // Spawn randomness; defaults to a clock-seeded source
}

// NewClient creates a new client registered with the given server.
// The terminal size is read once: the game surface does not follow later resizes.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts ClientOptions) (*Client, error) {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	termWidth, termHeight, err := termSizeFunc()
	if err != nil {
		return nil, fmt.Errorf("read terminal size: %w", err)
	}
	canvasRows := termHeight - config.HUDRows
	if termWidth < 1 || canvasRows < 1 {
		return nil, fmt.Errorf("terminal too small: %dx%d", termWidth, termHeight)
	}

	surface := object.Surface{
		Width:  float64(termWidth) * config.UnitsPerSubPixel,
		Height: float64(canvasRows*2) * config.UnitsPerSubPixel,
	}
	canvas := draw.NewScaledCanvas(termWidth, canvasRows, surface.Width, surface.Height)
	canvas.SetOffset(0, config.HUDRows)

	started := now()
	return &Client{
		server:      gs,
		handle:      gs.RegisterClient(opts.Username),
		state:       NewClientState(),
		world:       world.New(surface, started, opts.Rand),
		canvas:      canvas,
		chunkWriter: draw.NewChunkWriter(w),
		styles:      draw.NewStyles(w),
		writer:      w,
		inputStream: input.StartStream(r),
		lastInput:   started,
		username:    opts.Username,
		termWidth:   termWidth,
		termHeight:  termHeight,
		mouse:       !opts.DisableMouse,
		now:         now,
	}, nil
}

// World returns the session's game state.
func (c *Client) World() *world.State {
	return c.world
}

// Run starts the client loop. Blocks until the player quits, goes idle,
// or the server shuts down.
func (c *Client) Run() error {
	draw.HideCursor(c.writer)
	if c.mouse {
		io.WriteString(c.writer, input.EnableMouse)
	}
	draw.ClearScreen(c.writer)
	defer func() {
		if c.mouse {
			io.WriteString(c.writer, input.DisableMouse)
		}
		draw.ClearScreen(c.writer)
		draw.ShowCursor(c.writer)
		c.server.UnregisterClient(c.handle.ID)
	}()

	lastTime := c.now()
	for c.state.Running {
		frameStart := c.now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		if err := c.step(frameStart); err != nil {
			return err
		}

		// Frame timing
		elapsed := c.now().Sub(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}
	return nil
}

// step runs one frame: input, server events, simulation, drawing.
func (c *Client) step(now time.Time) error {
	c.processInput(now)
	c.processServerEvents()

	switch c.state.GameState {
	case GameStatePlaying:
		c.updatePlayingState(now)
	case GameStateShutdown:
		c.updateShutdownState()
	}

	if err := c.drawFrame(); err != nil {
		return fmt.Errorf("draw frame: %w", err)
	}
	return nil
}

// processInput reads input and forwards steering to the world.
func (c *Client) processInput(now time.Time) {
	c.state.Input = input.ReadInput(c.inputStream)
	in := c.state.Input

	if len(in.Pressed) > 0 {
		c.lastInput = now
		c.state.isInactive = false
	} else if now.Sub(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.state.Running = false
	} else if now.Sub(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	if in.Quit {
		c.state.Running = false
	}

	if c.state.GameState != GameStatePlaying {
		return
	}
	if p := in.Pointer; p != nil && p.Row > config.HUDRows {
		_, y := c.canvas.TerminalToLogical(p.Col, p.Row)
		c.world.Touch(y)
	}
	switch {
	case in.Up:
		c.world.Steer(object.DirectionUp)
	case in.Down:
		c.world.Steer(object.DirectionDown)
	}
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				// Server closed the channel
				c.state.Running = false
				return
			}
			switch event.Type {
			case server.EventServerShutdown:
				c.state.GameState = GameStateShutdown
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// updatePlayingState advances the world one tick.
func (c *Client) updatePlayingState(now time.Time) {
	if !c.world.Tick(now) {
		c.state.GameState = GameStateOver
	}
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}
