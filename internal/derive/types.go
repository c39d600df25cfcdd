// Package derive computes border and gradient colours for a background.
//
// The palette relative functions pick neighbouring entries from the
// background's own palette and never invent colours. The hue rotation
// functions work on a bare colour when no palette context is available.
package derive

import (
	"fmt"
	"strings"

	"github.com/jmylchreest/contrastkit/internal/search"
)

// BorderLevel selects how far a border moves from its background.
type BorderLevel string

const (
	BorderSubtle BorderLevel = "subtle"
	BorderStrong BorderLevel = "strong"
)

// ParseBorderLevel converts a name into a BorderLevel.
func ParseBorderLevel(name string) (BorderLevel, error) {
	switch l := BorderLevel(strings.ToLower(strings.TrimSpace(name))); l {
	case BorderSubtle, BorderStrong:
		return l, nil
	default:
		return "", fmt.Errorf("invalid border level: %s (must be 'subtle' or 'strong')", name)
	}
}

// step returns the number of palette positions a border moves.
func (l BorderLevel) step() int {
	if l == BorderSubtle {
		return 1
	}
	return 2
}

// amount returns the lightness change used by the hue rotation path.
func (l BorderLevel) amount() float64 {
	if l == BorderSubtle {
		return 0.1
	}
	return 0.2
}

// HueMode selects where a gradient's end colour is taken from.
type HueMode string

const (
	// ModeSameHue steps along the background's own hue.
	ModeSameHue HueMode = "same-hue"

	// ModeAdjacentHue uses the next or previous hue, chosen at random.
	ModeAdjacentHue HueMode = "adjacent-hue"

	// ModeComplementaryHue uses the hue half way round the palette's key order.
	ModeComplementaryHue HueMode = "complementary-hue"

	// ModeRandomHue uses any other hue, chosen at random.
	ModeRandomHue HueMode = "random-hue"
)

// ValidHueModes returns the accepted hue modes.
func ValidHueModes() []HueMode {
	return []HueMode{ModeSameHue, ModeAdjacentHue, ModeComplementaryHue, ModeRandomHue}
}

// ParseHueMode converts a name into a HueMode. The "-hue" suffix is optional.
func ParseHueMode(name string) (HueMode, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if !strings.HasSuffix(n, "-hue") {
		n += "-hue"
	}
	for _, m := range ValidHueModes() {
		if HueMode(n) == m {
			return m, nil
		}
	}
	return "", fmt.Errorf("invalid hue mode: %s (valid modes: %v)", name, ValidHueModes())
}

// GradientType is the CSS gradient function used.
type GradientType string

const (
	GradientLinear GradientType = "linear"
	GradientRadial GradientType = "radial"
)

// ParseGradientType converts a name into a GradientType.
func ParseGradientType(name string) (GradientType, error) {
	switch t := GradientType(strings.ToLower(strings.TrimSpace(name))); t {
	case GradientLinear, GradientRadial:
		return t, nil
	default:
		return "", fmt.Errorf("invalid gradient type: %s (must be 'linear' or 'radial')", name)
	}
}

// Direction is a linear gradient direction.
type Direction string

const (
	DirectionRight       Direction = "to right"
	DirectionBottom      Direction = "to bottom"
	DirectionBottomRight Direction = "to bottom right"
	DirectionBottomLeft  Direction = "to bottom left"
)

// ValidDirections returns the accepted gradient directions.
func ValidDirections() []Direction {
	return []Direction{DirectionRight, DirectionBottom, DirectionBottomRight, DirectionBottomLeft}
}

// ParseDirection converts a name such as "to bottom right", "to-bottom-right"
// or "bottom-right" into a Direction.
func ParseDirection(name string) (Direction, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.ReplaceAll(n, "-", " ")
	if !strings.HasPrefix(n, "to ") {
		n = "to " + n
	}
	for _, d := range ValidDirections() {
		if Direction(n) == d {
			return d, nil
		}
	}
	return "", fmt.Errorf("invalid gradient direction: %s (valid directions: %q)", name, ValidDirections())
}

// AdjacentDirection selects which neighbour AdjacentHue returns.
type AdjacentDirection string

const (
	AdjacentNext AdjacentDirection = "next"
	AdjacentPrev AdjacentDirection = "prev"
	AdjacentBoth AdjacentDirection = "both"
)

// Context locates a background colour within its palette.
// OK is false when the location is unknown.
type Context struct {
	Hue   string
	Index int
	OK    bool
}

// At returns a Context for the given hue and index.
func At(hue string, index int) Context {
	return Context{Hue: hue, Index: index, OK: hue != ""}
}

// FromCombination returns the background context of a search result.
func FromCombination(c search.Combination) Context {
	return Context{Hue: c.BgHue, Index: c.BgIndex, OK: c.HasContext}
}
