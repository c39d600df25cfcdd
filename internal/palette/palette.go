// Package palette provides the hue keyed colour palettes that combinations
// are searched in. A palette keeps its hues in insertion order, which is the
// order they are displayed and enumerated in.
package palette

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrUnknownPalette is returned when a named palette does not exist.
	ErrUnknownPalette = errors.New("unknown palette")

	// ErrEmptyPalette is returned when a palette defines no colours.
	ErrEmptyPalette = errors.New("palette has no colours")

	// ErrTooLarge is returned when a palette file exceeds MaxFileSize.
	ErrTooLarge = errors.New("palette file too large")
)

// Palette maps hue names to ordered colour sequences. Colours at the same
// index across hues are assumed to have a similar lightness rank.
type Palette struct {
	Name        string
	Description string

	hues    []string
	colours map[string][]string
}

// New creates an empty palette.
func New(name string) *Palette {
	return &Palette{
		Name:    name,
		colours: make(map[string][]string),
	}
}

// Add appends colours to a hue, creating the hue at the end of the key
// order if it does not exist yet.
func (p *Palette) Add(hue string, colours ...string) *Palette {
	if p.colours == nil {
		p.colours = make(map[string][]string)
	}
	if _, ok := p.colours[hue]; !ok {
		p.hues = append(p.hues, hue)
	}
	p.colours[hue] = append(p.colours[hue], colours...)
	return p
}

// Hues returns the hue names in key order.
func (p *Palette) Hues() []string {
	return slices.Clone(p.hues)
}

// Colours returns the colour sequence for a hue, or nil if the hue is unknown.
func (p *Palette) Colours(hue string) []string {
	return p.colours[hue]
}

// Has reports whether the palette defines hue.
func (p *Palette) Has(hue string) bool {
	_, ok := p.colours[hue]
	return ok
}

// HueIndex returns the position of hue in key order, or -1.
func (p *Palette) HueIndex(hue string) int {
	return slices.Index(p.hues, hue)
}

// Len returns the number of hues.
func (p *Palette) Len() int {
	return len(p.hues)
}

// Size returns the total number of colours across all hues.
func (p *Palette) Size() int {
	n := 0
	for _, c := range p.colours {
		n += len(c)
	}
	return n
}

// At returns the colour at index within hue.
func (p *Palette) At(hue string, index int) (string, bool) {
	c := p.colours[hue]
	if index < 0 || index >= len(c) {
		return "", false
	}
	return c[index], true
}

// Find returns the first hue and index holding colour, scanning hues in key
// order. The comparison is on the literal string.
func (p *Palette) Find(colour string) (hue string, index int, ok bool) {
	for _, h := range p.hues {
		if i := slices.Index(p.colours[h], colour); i >= 0 {
			return h, i, true
		}
	}
	return "", -1, false
}

// Validate checks the palette has at least one colour.
func (p *Palette) Validate() error {
	if p.Size() == 0 {
		name := p.Name
		if name == "" {
			name = "(unnamed)"
		}
		return fmt.Errorf("%s: %w", name, ErrEmptyPalette)
	}
	return nil
}

// Clone returns a deep copy of the palette.
func (p *Palette) Clone() *Palette {
	c := New(p.Name)
	c.Description = p.Description
	for _, hue := range p.hues {
		c.Add(hue, slices.Clone(p.colours[hue])...)
	}
	return c
}
