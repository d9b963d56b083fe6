package client

import (
	"fmt"

	"github.com/tomz197/lanedodger/internal/draw"
	"github.com/tomz197/lanedodger/internal/loop/config"
	"github.com/tomz197/lanedodger/internal/physics"
	"github.com/tomz197/lanedodger/internal/world"
)

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On game state or inactivity transitions, do a full terminal clear
	// so UI elements from the previous state don't persist on screen.
	stateChanged := c.state.GameState != c.state.prevGameState
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if stateChanged || inactiveChanged {
		c.chunkWriter.WriteString("\033[0m\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.state.prevGameState = c.state.GameState
		c.state.wasInactive = c.state.isInactive
	}

	c.canvas.Clear()
	drawScene(c.canvas, c.world)
	if err := c.canvas.Render(c.chunkWriter); err != nil {
		return err
	}

	c.drawHUD()
	c.drawUI()

	return c.chunkWriter.Flush()
}

// drawScene paints the band and every entity of the world onto the canvas.
func drawScene(canvas *draw.Canvas, w *world.State) {
	canvas.FillRect(physics.Rect{
		X: 0,
		Y: w.Band.Top,
		W: w.Surface.Width,
		H: w.Band.Height(),
	}, draw.ColorBand)

	canvas.FillRect(w.Player.Rect, draw.ColorPlayer)
	for i := range w.Obstacles {
		canvas.FillRect(w.Obstacles[i].Rect, draw.ColorObstacle)
	}
	for i := range w.Distractors {
		canvas.FillRect(w.Distractors[i].Rect, draw.ColorDistractor)
	}
}

// drawHUD draws the score readout on the reserved top row.
func (c *Client) drawHUD() {
	cw := c.chunkWriter
	cw.ClearLine(1)
	cw.WriteAt(2, 1, c.styles.HUD.Render(c.world.Readout()))

	if players := c.server.Players(); players > 1 {
		text := fmt.Sprintf("Players online: %d", players)
		cw.WriteAt(c.termWidth-len(text), 1, text)
	}
}

// drawUI draws centered overlays for the current state.
func (c *Client) drawUI() {
	centerRow := config.HUDRows + c.canvas.TerminalHeight()/2

	if c.state.GameState == GameStateShutdown {
		c.drawShutdownScreen(centerRow)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(centerRow)
		return
	}

	if c.state.GameState == GameStateOver {
		c.drawGameOverScreen(centerRow)
	}
}

// writeCentered writes styled text centered on row and marks the cells
// beneath it so the canvas repaints them when the text goes away.
func (c *Client) writeCentered(row int, text, styled string) {
	col := draw.Centered(text, c.termWidth)
	c.chunkWriter.WriteAt(col, row, styled)
	c.canvas.MarkTextDirty(col, row, len([]rune(text)))
}

// drawGameOverScreen draws the game over message and, past the record
// threshold, the congratulation line below it.
func (c *Client) drawGameOverScreen(centerRow int) {
	for i, line := range c.world.Messages() {
		style := c.styles.Title
		if i > 0 {
			style = c.styles.Subtitle
		}
		c.writeCentered(centerRow+i*2, line, style.Render(line))
	}

	hint := "Press Q to quit"
	c.writeCentered(centerRow+5, hint, c.styles.Notice.Render(hint))
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerRow int) {
	title := "INACTIVITY WARNING"
	c.writeCentered(centerRow-2, title, c.styles.Title.Render(title))

	idle := c.now().Sub(c.lastInput)
	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(config.InactivityDisconnectUser-idle.Seconds()),
	)
	c.writeCentered(centerRow, msg, c.styles.Notice.Render(msg))

	hint := "Press any key to continue"
	c.writeCentered(centerRow+2, hint, c.styles.Notice.Render(hint))
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerRow int) {
	title := "SERVER SHUTTING DOWN"
	c.writeCentered(centerRow-3, title, c.styles.Title.Render(title))

	msg := "The server is restarting. Please reconnect in a moment."
	c.writeCentered(centerRow-1, msg, c.styles.Notice.Render(msg))

	remaining := int(c.state.shutdownTimer) + 1
	countdown := fmt.Sprintf("Disconnecting in %d seconds...", remaining)
	c.writeCentered(centerRow+1, countdown, countdown)

	hint := "Press Q to disconnect now"
	c.writeCentered(centerRow+3, hint, hint)
}
