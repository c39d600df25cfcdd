package colour

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Lighten returns a copy of c with its HSL lightness increased by amount.
// amount is a unitless step (0.1 subtle, 0.2 strong); the result is clamped
// to [0, 1] and hue and saturation are unchanged.
func Lighten(c Color, amount float64) Color {
	return AdjustLightness(c, math.Abs(amount))
}

// Darken returns a copy of c with its HSL lightness decreased by amount.
func Darken(c Color, amount float64) Color {
	return AdjustLightness(c, -math.Abs(amount))
}

// AdjustLightness adjusts the HSL lightness of a colour by a delta value.
// delta > 0 makes the colour lighter.
// delta < 0 makes the colour darker.
// Result is clamped to [0.0, 1.0].
func AdjustLightness(c Color, delta float64) Color {
	h, s, l := c.HSL()
	return fromColorful(colorful.Hsl(h, s, clamp01(l+delta)), c.Alpha())
}

// ShiftHue rotates the HSL hue of a colour by degrees (mod 360), preserving
// saturation and lightness. Negative degrees rotate backwards.
func ShiftHue(c Color, degrees float64) Color {
	h, s, l := c.HSL()
	return fromColorful(colorful.Hsl(normaliseHue(h+degrees), s, l), c.Alpha())
}
