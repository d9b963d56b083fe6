package draw

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles holds the text styles for overlays drawn on top of the canvas.
// Each session gets its own renderer so SSH clients do not share color
// detection with the server's stdout.
type Styles struct {
	HUD      lipgloss.Style
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Notice   lipgloss.Style
}

// NewStyles creates styles rendered for w. The canvas already emits
// 256-color sequences, so the overlay profile is pinned to match.
func NewStyles(w io.Writer) *Styles {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.ANSI256)

	return &Styles{
		HUD:      r.NewStyle().Bold(true).Foreground(lipgloss.Color("15")),
		Title:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("15")),
		Subtitle: r.NewStyle().Foreground(lipgloss.Color("220")),
		Notice:   r.NewStyle().Foreground(lipgloss.Color("208")),
	}
}

// Centered returns the 1-based column that centers text within width columns.
func Centered(text string, width int) int {
	col := (width-lipgloss.Width(text))/2 + 1
	if col < 1 {
		col = 1
	}
	return col
}
