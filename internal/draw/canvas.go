package draw

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/tomz197/lanedodger/internal/physics"
)

// Color is a palette index for a canvas pixel. The zero value is the
// terminal's default background.
type Color uint8

const (
	ColorNone Color = iota
	ColorBand
	ColorPlayer
	ColorObstacle
	ColorDistractor
)

// palette maps canvas colors to xterm-256 color numbers.
var palette = [...]int{
	ColorBand:       236, // Dark gray lane background
	ColorPlayer:     15,  // White
	ColorObstacle:   9,   // Red
	ColorDistractor: 244, // Gray
}

// cell is what a terminal cell showed after the last render.
type cell struct {
	top, bottom Color
	valid       bool
}

// Canvas is a drawing buffer with 2x vertical resolution using half-block
// characters, each half independently colored.
// Logical coordinates are scaled to sub-pixels on every draw call.
type Canvas struct {
	termWidth      int     // Terminal columns covered by the canvas
	termHeight     int     // Terminal rows covered by the canvas
	subPixelHeight int     // termHeight * 2
	pixels         []Color // Flat slice: [y * termWidth + x]
	prev           []cell  // What each cell showed after the last Render

	// Scaling from logical to pixel coordinates
	scaleX float64 // termWidth / logical width
	scaleY float64 // (termHeight*2) / logical height

	// Offset of the canvas inside the terminal (columns/rows to skip).
	offsetCol int
	offsetRow int

	renderBuf strings.Builder
	numBuf    [20]byte
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space used by the simulation.
// termWidth/Height are the terminal cells the canvas covers.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	if termWidth < 1 {
		termWidth = 1
	}
	if termHeight < 1 {
		termHeight = 1
	}
	subPixelHeight := termHeight * 2
	return &Canvas{
		termWidth:      termWidth,
		termHeight:     termHeight,
		subPixelHeight: subPixelHeight,
		pixels:         make([]Color, subPixelHeight*termWidth),
		prev:           make([]cell, termHeight*termWidth),
		scaleX:         float64(termWidth) / logicalWidth,
		scaleY:         float64(subPixelHeight) / logicalHeight,
	}
}

// SetOffset sets the column and row offset of the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.ForceRedraw()
	}
	c.offsetCol = col
	c.offsetRow = row
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// ForceRedraw makes the next Render repaint every cell.
func (c *Canvas) ForceRedraw() {
	clear(c.prev)
}

// MarkTextDirty marks the cells under overlay text at a 1-based terminal
// position so the next Render repaints them once the text is gone.
func (c *Canvas) MarkTextDirty(col, row, width int) {
	cy := row - 1 - c.offsetRow
	if cy < 0 || cy >= c.termHeight {
		return
	}
	start := max(col-1-c.offsetCol, 0)
	end := min(col-1-c.offsetCol+width, c.termWidth)
	for cx := start; cx < end; cx++ {
		c.prev[cy*c.termWidth+cx] = cell{}
	}
}

// setPixel sets a pixel at actual sub-pixel coordinates (no scaling).
func (c *Canvas) setPixel(x, y int, color Color) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = color
	}
}

// Pixel returns the color at sub-pixel coordinates, or ColorNone if out of range.
func (c *Canvas) Pixel(x, y int) Color {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return ColorNone
	}
	return c.pixels[y*c.termWidth+x]
}

// FillRect fills every sub-pixel the logical rectangle covers.
// Rectangles smaller than a sub-pixel still paint one.
func (c *Canvas) FillRect(r physics.Rect, color Color) {
	x0, x1 := span(r.X, r.Right(), c.scaleX)
	y0, y1 := span(r.Y, r.Bottom(), c.scaleY)

	x0 = max(x0, 0)
	y0 = max(y0, 0)
	x1 = min(x1, c.termWidth)
	y1 = min(y1, c.subPixelHeight)

	for y := y0; y < y1; y++ {
		row := c.pixels[y*c.termWidth:]
		for x := x0; x < x1; x++ {
			row[x] = color
		}
	}
}

// span converts a logical interval to a half-open pixel interval of at least one pixel.
func span(lo, hi, scale float64) (int, int) {
	p0 := int(math.Floor(lo * scale))
	p1 := int(math.Ceil(hi * scale))
	if p1 <= p0 {
		p1 = p0 + 1
	}
	return p0, p1
}

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// 1500 bytes matches typical MTU size for smooth SSH/network transmission.
const maxChunkSize = 1400

// Render writes every cell that changed since the previous Render.
func (c *Canvas) Render(w io.Writer) error {
	c.renderBuf.Reset()

	var fg, bg = -1, -1 // Current SGR colors; -1 unknown, 0 default
	nextCol, nextRow := -1, -1

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for col := 0; col < c.termWidth; col++ {
			cur := cell{
				top:    c.pixels[topOffset+col],
				bottom: c.pixels[bottomOffset+col],
				valid:  true,
			}
			idx := row*c.termWidth + col
			if c.prev[idx] == cur {
				continue
			}
			c.prev[idx] = cur

			if row != nextRow || col != nextCol {
				c.moveCursor(col+1+c.offsetCol, row+1+c.offsetRow)
			}
			nextRow, nextCol = row, col+1

			glyph, wantFg, wantBg := cellGlyph(cur.top, cur.bottom)
			if wantFg != fg || wantBg != bg {
				c.writeSGR(wantFg, wantBg)
				fg, bg = wantFg, wantBg
			}
			c.renderBuf.WriteRune(glyph)
		}
	}

	if c.renderBuf.Len() == 0 {
		return nil
	}
	c.renderBuf.WriteString("\033[0m")

	// Write output in chunks for optimal network flow
	data := c.renderBuf.String()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		if _, err := io.WriteString(w, chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return nil
}

// cellGlyph picks the half-block and xterm colors (0 = default) that show
// top over bottom.
func cellGlyph(top, bottom Color) (glyph rune, fg, bg int) {
	switch {
	case top == ColorNone && bottom == ColorNone:
		return BlockEmpty, 0, 0
	case bottom == ColorNone:
		return BlockUpperHalf, colorCode(top), 0
	case top == ColorNone:
		return BlockLowerHalf, colorCode(bottom), 0
	default:
		return BlockUpperHalf, colorCode(top), colorCode(bottom)
	}
}

// colorCode returns the SGR 256-color number for a canvas color.
// Index 0 (black) is remapped to 16 so 0 can mean "default".
func colorCode(c Color) int {
	if int(c) >= len(palette) {
		return 0
	}
	code := palette[c]
	if code == 0 {
		return 16
	}
	return code
}

func (c *Canvas) moveCursor(col, row int) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col), 10))
	c.renderBuf.WriteByte('H')
}

func (c *Canvas) writeSGR(fg, bg int) {
	c.renderBuf.WriteString("\033[")
	if fg == 0 {
		c.renderBuf.WriteString("39")
	} else {
		c.renderBuf.WriteString("38;5;")
		c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(fg), 10))
	}
	c.renderBuf.WriteByte(';')
	if bg == 0 {
		c.renderBuf.WriteString("49")
	} else {
		c.renderBuf.WriteString("48;5;")
		c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(bg), 10))
	}
	c.renderBuf.WriteByte('m')
}

// TerminalHeight returns the canvas height in terminal rows.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// TerminalToLogical converts a 1-based terminal position to the logical
// coordinates of that cell's center.
func (c *Canvas) TerminalToLogical(col, row int) (x, y float64) {
	px := float64(col-1-c.offsetCol) + 0.5
	py := float64(row-1-c.offsetRow)*2 + 1
	return px / c.scaleX, py / c.scaleY
}
