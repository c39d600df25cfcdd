// Package render draws contrast results for terminals and as PNG swatch sheets.
package render

import (
	"io"
	"math"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/jmylchreest/contrastkit/internal/colour"
	"github.com/jmylchreest/contrastkit/internal/contrast"
	"github.com/jmylchreest/contrastkit/internal/palette"
	"github.com/jmylchreest/contrastkit/internal/search"
)

const (
	// DefaultMeterWidth is the number of cells in a contrast meter.
	DefaultMeterWidth = 24

	defaultTermWidth = 80

	meterFilled = '█'
	meterEmpty  = '░'
	meterMarker = '┃'

	sampleText = "Aa Sample"
)

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Width returns the column count of w, or 80 when w is not a terminal.
func Width(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return defaultTermWidth
	}
	cols, _, err := term.GetSize(int(f.Fd()))
	if err != nil || cols <= 0 {
		return defaultTermWidth
	}
	return cols
}

// Terminal renders swatches and meters for one output stream. Colour
// output follows the capabilities lipgloss detects for that stream, so
// pipes and files receive plain text.
type Terminal struct {
	r          *lipgloss.Renderer
	alg        contrast.Algorithm
	MeterWidth int
}

// NewTerminal creates a Terminal writing to w.
func NewTerminal(w io.Writer, alg contrast.Algorithm) *Terminal {
	return &Terminal{
		r:          lipgloss.NewRenderer(w),
		alg:        alg,
		MeterWidth: DefaultMeterWidth,
	}
}

// Swatch renders text in fg on bg. Colours that cannot be parsed are
// left unstyled.
func (t *Terminal) Swatch(bg, fg, text string) string {
	style := t.r.NewStyle().Padding(0, 1)
	if c, err := colour.Parse(bg); err == nil {
		style = style.Background(lipgloss.Color(c.Hex()))
	}
	if c, err := colour.Parse(fg); err == nil {
		style = style.Foreground(lipgloss.Color(c.Hex()))
	}
	return style.Render(text)
}

// Block renders a two cell block of a single colour.
func (t *Terminal) Block(value string) string {
	c, err := colour.Parse(value)
	if err != nil {
		return "??"
	}
	return t.r.NewStyle().Background(lipgloss.Color(c.Hex())).Render("  ")
}

// Meter renders a contrast meter for value with the reference markers
// for the algorithm.
func (t *Terminal) Meter(value float64) string {
	cells := meterCells(value, t.alg, t.MeterWidth)
	filled := 0
	for filled < len(cells) && cells[filled] == meterFilled {
		filled++
	}
	bar := t.r.NewStyle().Foreground(lipgloss.Color(contrast.MeterColour(value, t.alg))).Render(string(cells[:filled]))
	rest := t.r.NewStyle().Faint(true).Render(string(cells[filled:]))
	return bar + rest
}

// meterCells lays out a meter: filled cells up to the value, markers at
// each reference value beyond it, and empty cells elsewhere.
func meterCells(value float64, alg contrast.Algorithm, width int) []rune {
	if width <= 0 {
		return nil
	}
	cells := make([]rune, width)
	filled := cellIndex(contrast.MeterPercent(value, alg), width)
	for i := range cells {
		if i < filled {
			cells[i] = meterFilled
		} else {
			cells[i] = meterEmpty
		}
	}
	for _, m := range contrast.MeterMarkers(alg) {
		i := cellIndex(contrast.MeterPercent(m, alg), width)
		if i >= filled && i < width {
			cells[i] = meterMarker
		}
	}
	return cells
}

func cellIndex(percent float64, width int) int {
	return int(math.Round(percent / 100 * float64(width)))
}

// Combination renders a single search result as one line.
func (t *Terminal) Combination(c search.Combination) string {
	var b strings.Builder
	b.WriteString(t.Swatch(c.Background, c.Foreground, sampleText))
	b.WriteString("  ")
	b.WriteString(t.Meter(c.Contrast))
	b.WriteString("  ")
	b.WriteString(contrast.Describe(c.Contrast, t.alg))
	b.WriteString("  ")
	b.WriteString(c.Background)
	b.WriteString(" / ")
	b.WriteString(c.Foreground)
	return b.String()
}

// Combinations renders search results one per line.
func (t *Terminal) Combinations(combos []search.Combination) string {
	var b strings.Builder
	for _, c := range combos {
		b.WriteString(t.Combination(c))
		b.WriteByte('\n')
	}
	return b.String()
}

// Pair renders the detail view for a foreground/background pair under
// both algorithms.
func (t *Terminal) Pair(fg, bg string) string {
	var b strings.Builder
	b.WriteString(t.Swatch(bg, fg, sampleText))
	b.WriteByte('\n')
	for _, alg := range contrast.ValidAlgorithms() {
		value := contrast.Contrast(fg, bg, alg)
		m := &Terminal{r: t.r, alg: alg, MeterWidth: t.MeterWidth}
		b.WriteString(t.r.NewStyle().Bold(true).Width(8).Render(string(alg)))
		b.WriteString(m.Meter(value))
		b.WriteString("  ")
		b.WriteString(contrast.Describe(value, alg))
		b.WriteByte('\n')
	}
	return b.String()
}

// Palette renders each hue of p as a row of colour blocks.
func (t *Terminal) Palette(p *palette.Palette) string {
	nameWidth := 0
	for _, hue := range p.Hues() {
		nameWidth = max(nameWidth, lipgloss.Width(hue))
	}

	label := t.r.NewStyle().Width(nameWidth + 2)
	var b strings.Builder
	for _, hue := range p.Hues() {
		b.WriteString(label.Render(hue))
		for _, c := range p.Colours(hue) {
			b.WriteString(t.Block(c))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
