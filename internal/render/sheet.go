package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/jmylchreest/contrastkit/internal/colour"
	"github.com/jmylchreest/contrastkit/internal/contrast"
	"github.com/jmylchreest/contrastkit/internal/search"
)

// ErrNoCombinations is returned when a sheet has nothing to draw.
var ErrNoCombinations = errors.New("no combinations to draw")

// SheetOptions controls the layout of a swatch sheet.
type SheetOptions struct {
	// Columns is the number of cells per row.
	Columns int

	// CellWidth and CellHeight are the cell size in pixels.
	CellWidth  int
	CellHeight int

	// Gap is the spacing between cells in pixels.
	Gap int

	// Algorithm labels each cell with its contrast description.
	Algorithm contrast.Algorithm
}

// DefaultSheetOptions returns the default sheet layout.
func DefaultSheetOptions() SheetOptions {
	return SheetOptions{
		Columns:    4,
		CellWidth:  160,
		CellHeight: 64,
		Gap:        4,
		Algorithm:  contrast.WCAG21,
	}
}

func (o SheetOptions) normalise() SheetOptions {
	d := DefaultSheetOptions()
	if o.Columns <= 0 {
		o.Columns = d.Columns
	}
	if o.CellWidth <= 0 {
		o.CellWidth = d.CellWidth
	}
	if o.CellHeight <= 0 {
		o.CellHeight = d.CellHeight
	}
	if o.Gap < 0 {
		o.Gap = 0
	}
	if o.Algorithm == "" {
		o.Algorithm = d.Algorithm
	}
	return o
}

// Sheet draws combos as a grid of cells. Each cell is filled with the
// background colour and labelled in the foreground colour.
func Sheet(combos []search.Combination, opts SheetOptions) (*image.NRGBA, error) {
	if len(combos) == 0 {
		return nil, ErrNoCombinations
	}
	opts = opts.normalise()

	cols := min(opts.Columns, len(combos))
	rows := (len(combos) + cols - 1) / cols
	width := cols*opts.CellWidth + (cols+1)*opts.Gap
	height := rows*opts.CellHeight + (rows+1)*opts.Gap

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	for i, c := range combos {
		x := opts.Gap + (i%cols)*(opts.CellWidth+opts.Gap)
		y := opts.Gap + (i/cols)*(opts.CellHeight+opts.Gap)
		cell := image.Rect(x, y, x+opts.CellWidth, y+opts.CellHeight)
		drawCell(img, cell, c, opts.Algorithm)
	}
	return img, nil
}

// WriteSheet encodes a swatch sheet as PNG.
func WriteSheet(w io.Writer, combos []search.Combination, opts SheetOptions) error {
	img, err := Sheet(combos, opts)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode swatch sheet: %w", err)
	}
	return nil
}

func drawCell(img draw.Image, cell image.Rectangle, c search.Combination, alg contrast.Algorithm) {
	bg := imageColour(c.Background, color.White)
	fg := imageColour(c.Foreground, color.Black)
	draw.Draw(img, cell, image.NewUniform(bg), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	lineHeight := face.Metrics().Height.Ceil()
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(fg),
		Face: face,
	}

	lines := []string{sampleText, contrast.Describe(c.Contrast, alg)}
	top := cell.Min.Y + (cell.Dy()-len(lines)*lineHeight)/2
	for i, line := range lines {
		d.Dot = fixed.P(cell.Min.X+8, top+(i+1)*lineHeight-face.Descent)
		d.DrawString(clip(d, line, cell.Dx()-16))
	}
}

// clip shortens s until it fits within px pixels.
func clip(d *font.Drawer, s string, px int) string {
	for len(s) > 0 && d.MeasureString(s).Ceil() > px {
		s = s[:len(s)-1]
	}
	return s
}

func imageColour(value string, fallback color.Color) color.Color {
	c, err := colour.Parse(value)
	if err != nil {
		return fallback
	}
	return c.ImageColor()
}
