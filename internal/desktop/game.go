// Package desktop adapts the game world to ebiten for desktop windows and
// the browser (GOOS=js GOARCH=wasm).
package desktop

import (
	"bytes"
	"fmt"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/tomz197/lanedodger/internal/input"
	"github.com/tomz197/lanedodger/internal/loop/config"
	"github.com/tomz197/lanedodger/internal/object"
	"github.com/tomz197/lanedodger/internal/world"
)

// Options configures a Game.
type Options struct {
	Width  int              // Fallback surface width when the window reports none
	Height int              // Fallback surface height
	Now    func() time.Time // Clock; defaults to time.Now
	Rand   *rand.Rand       // Spawn randomness; defaults to a clock-seeded source
}

// Game implements ebiten.Game over a world.State.
type Game struct {
	opts     Options
	world    *world.State
	width    int
	height   int
	touchIDs []ebiten.TouchID
	active   []input.PointerSample
	pointers *input.PointerTracker
	title    *text.GoTextFace
	subtitle *text.GoTextFace
	hud      *text.GoTextFace
}

// New creates a game. The world is created on the first Layout call, once
// the window size is known.
func New(opts Options) (*Game, error) {
	if opts.Width <= 0 {
		opts.Width = config.DesktopWidth
	}
	if opts.Height <= 0 {
		opts.Height = config.DesktopHeight
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}

	return &Game{
		opts:     opts,
		pointers: input.NewPointerTracker(),
		title:    &text.GoTextFace{Source: src, Size: 48},
		subtitle: &text.GoTextFace{Source: src, Size: 24},
		hud:      &text.GoTextFace{Source: src, Size: 20},
	}, nil
}

// World returns the game state, or nil before the first Layout.
func (g *Game) World() *world.State {
	return g.world
}

// Layout fixes the surface to the first size it is given. Later window
// resizes are scaled by ebiten and never change the playfield.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.world == nil {
		g.width, g.height = surfaceSize(outsideWidth, outsideHeight, g.opts.Width, g.opts.Height)
		surface := object.Surface{Width: float64(g.width), Height: float64(g.height)}
		g.world = world.New(surface, g.opts.Now(), g.opts.Rand)
	}
	return g.width, g.height
}

// Update polls input and advances the world one tick.
func (g *Game) Update() error {
	if g.world == nil {
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	c := controls{
		Up:   inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) || inpututil.IsKeyJustPressed(ebiten.KeyW),
		Down: inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) || inpututil.IsKeyJustPressed(ebiten.KeyS),
	}
	g.active = g.active[:0]
	g.touchIDs = ebiten.AppendTouchIDs(g.touchIDs[:0])
	for _, id := range g.touchIDs {
		_, y := ebiten.TouchPosition(id)
		g.active = append(g.active, input.PointerSample{ID: input.PointerID{Touch: int(id)}, Y: float64(y)})
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		_, y := ebiten.CursorPosition()
		g.active = append(g.active, input.PointerSample{ID: input.PointerID{Mouse: true}, Y: float64(y)})
	}
	c.Touches = g.pointers.Moved(g.active)

	c.apply(g.world)
	g.world.Tick(g.opts.Now())
	return nil
}

// controls is one frame of polled input.
type controls struct {
	Up      bool
	Down    bool
	Touches []float64 // Surface y of each pointer pressed or moved this frame
}

// apply forwards the frame's input to the world. Keys are applied after
// touches, so a key press wins within a frame.
func (c controls) apply(w *world.State) {
	for _, y := range c.Touches {
		w.Touch(y)
	}
	switch {
	case c.Up:
		w.Steer(object.DirectionUp)
	case c.Down:
		w.Steer(object.DirectionDown)
	}
}

// surfaceSize picks the window size when it is usable, the fallback otherwise.
func surfaceSize(outsideWidth, outsideHeight, fallbackWidth, fallbackHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		return fallbackWidth, fallbackHeight
	}
	return outsideWidth, outsideHeight
}
