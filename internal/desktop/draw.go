package desktop

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/tomz197/lanedodger/internal/physics"
)

var (
	colorBackground = color.Black
	colorBand       = color.NRGBA{R: 255, G: 255, B: 255, A: 26}
	colorPlayer     = color.White
	colorObstacle   = color.NRGBA{R: 255, A: 255}
	colorDistractor = color.NRGBA{R: 128, G: 128, B: 128, A: 255}
)

// Draw renders the band, the bodies, the readout and any end-of-game text.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	if g.world == nil {
		return
	}
	w := g.world

	fillRect(screen, physics.Rect{X: 0, Y: w.Band.Top, W: w.Surface.Width, H: w.Band.Height()}, colorBand)
	fillRect(screen, w.Player.Rect, colorPlayer)
	for i := range w.Obstacles {
		fillRect(screen, w.Obstacles[i].Rect, colorObstacle)
	}
	for i := range w.Distractors {
		fillRect(screen, w.Distractors[i].Rect, colorDistractor)
	}

	hud := &text.DrawOptions{}
	hud.GeoM.Translate(10, 6)
	hud.ColorScale.ScaleWithColor(color.White)
	text.Draw(screen, w.Readout(), g.hud, hud)

	cx, cy := w.Surface.Width/2, w.Surface.Height/2
	for i, line := range w.Messages() {
		face := g.title
		y := cy - face.Size/2
		if i > 0 {
			face = g.subtitle
			y = cy + 50 - face.Size/2
		}
		op := &text.DrawOptions{}
		op.GeoM.Translate(cx, y)
		op.ColorScale.ScaleWithColor(color.White)
		op.PrimaryAlign = text.AlignCenter
		text.Draw(screen, line, face, op)
	}
}

func fillRect(dst *ebiten.Image, r physics.Rect, c color.Color) {
	vector.FillRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), c, false)
}
