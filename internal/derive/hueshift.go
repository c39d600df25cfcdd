package derive

import (
	"github.com/jmylchreest/contrastkit/internal/colour"
)

// DefaultHueShift is the hue rotation, in degrees, used for gradients built
// without a palette.
const DefaultHueShift = 10.0

// darkLuminance is the relative luminance below which a border lightens
// rather than darkens.
const darkLuminance = 0.2

// BorderFromColor derives a border from base alone by lightening dark
// colours and darkening everything else by 0.1 (subtle) or 0.2 (strong) HSL
// lightness. Unparseable input is returned unchanged.
func BorderFromColor(base string, level BorderLevel) string {
	c, err := colour.Parse(base)
	if err != nil {
		return base
	}
	if colour.IsDark(c, darkLuminance) {
		return colour.Lighten(c, level.amount()).String()
	}
	return colour.Darken(c, level.amount()).String()
}

// GradientEndByHueShift rotates the hue of base by degrees. Unparseable input
// is returned unchanged.
func GradientEndByHueShift(base string, degrees float64) string {
	c, err := colour.Parse(base)
	if err != nil {
		return base
	}
	return colour.ShiftHue(c, degrees).String()
}

// HueShiftGradient returns a CSS gradient from base to base rotated by
// degrees. Unparseable input is returned unchanged as a solid colour.
func HueShiftGradient(base string, t GradientType, dir Direction, degrees float64) string {
	if !colour.IsValid(base) {
		return base
	}
	return GradientCSS(t, dir, base, GradientEndByHueShift(base, degrees))
}
