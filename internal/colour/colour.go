// Package colour provides the colour model used by the contrast engine:
// parsing of CSS colour strings, conversion between colour spaces, luminance
// and HSL based adjustments.
package colour

import (
	"errors"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColour is returned (wrapped) when a colour string cannot be parsed.
var ErrInvalidColour = errors.New("invalid colour")

// Space identifies the colour space a Color's channels are expressed in.
type Space string

const (
	SpaceSRGB       Space = "srgb"        // gamma encoded sRGB, channels 0-1
	SpaceSRGBLinear Space = "srgb-linear" // linear light sRGB, channels 0-1
	SpaceDisplayP3  Space = "display-p3"  // gamma encoded Display P3, channels 0-1
	SpaceHSL        Space = "hsl"         // hue 0-360, saturation 0-1, lightness 0-1
	SpaceOKLab      Space = "oklab"       // L 0-1, a and b roughly -0.4 to 0.4
	SpaceOKLCH      Space = "oklch"       // L 0-1, chroma 0-0.4, hue 0-360
)

// Color is an immutable colour value tagged with the space its channels
// belong to. The zero value is opaque black in sRGB.
type Color struct {
	space  Space
	ch     [3]float64
	alpha  float64
	source string
}

// New creates a Color in the given space. Alpha is clamped to [0, 1].
func New(space Space, c0, c1, c2, alpha float64) Color {
	if space == "" {
		space = SpaceSRGB
	}
	return Color{
		space: space,
		ch:    [3]float64{c0, c1, c2},
		alpha: clamp01(alpha),
	}
}

// FromRGB creates an opaque sRGB Color from 8-bit channels.
func FromRGB(rgb RGB) Color {
	return New(SpaceSRGB, float64(rgb.R)/255.0, float64(rgb.G)/255.0, float64(rgb.B)/255.0, 1)
}

// fromColorful wraps a go-colorful value as an sRGB Color.
func fromColorful(c colorful.Color, alpha float64) Color {
	return New(SpaceSRGB, c.R, c.G, c.B, alpha)
}

// Space returns the colour space of the channels.
func (c Color) Space() Space {
	if c.space == "" {
		return SpaceSRGB
	}
	return c.space
}

// Channels returns the raw channel values in the colour's own space.
func (c Color) Channels() [3]float64 { return c.ch }

// Alpha returns the opacity in [0, 1].
func (c Color) Alpha() float64 {
	if c.space == "" && c.source == "" && c.ch == [3]float64{} {
		return 1
	}
	return c.alpha
}

// Source returns the text the colour was parsed from, if any.
func (c Color) Source() string { return c.source }

// sRGB converts the colour to gamma encoded sRGB. Wide gamut colours may
// produce channels outside [0, 1]; callers that need displayable values
// should use Clamped.
func (c Color) sRGB() colorful.Color {
	switch c.Space() {
	case SpaceSRGBLinear:
		return colorful.LinearRgb(c.ch[0], c.ch[1], c.ch[2])
	case SpaceDisplayP3:
		x, y, z := displayP3ToXYZ(c.ch[0], c.ch[1], c.ch[2])
		return colorful.Xyz(x, y, z)
	case SpaceHSL:
		return colorful.Hsl(normaliseHue(c.ch[0]), clamp01(c.ch[1]), clamp01(c.ch[2]))
	case SpaceOKLab:
		return colorful.OkLab(c.ch[0], c.ch[1], c.ch[2])
	case SpaceOKLCH:
		return colorful.OkLch(c.ch[0], c.ch[1], normaliseHue(c.ch[2]))
	default:
		return colorful.Color{R: c.ch[0], G: c.ch[1], B: c.ch[2]}
	}
}

// linearRGB returns the colour as linear light sRGB channels.
func (c Color) linearRGB() (r, g, b float64) {
	switch c.Space() {
	case SpaceSRGBLinear:
		return c.ch[0], c.ch[1], c.ch[2]
	case SpaceDisplayP3:
		return colorful.XyzToLinearRgb(displayP3ToXYZ(c.ch[0], c.ch[1], c.ch[2]))
	default:
		return c.sRGB().LinearRgb()
	}
}

// SRGB returns the gamma encoded sRGB channels without gamut clipping.
func (c Color) SRGB() (r, g, b float64) {
	s := c.sRGB()
	return s.R, s.G, s.B
}

// Clamped returns the colour gamut mapped (by clipping) to sRGB.
func (c Color) Clamped() colorful.Color {
	return c.sRGB().Clamped()
}

// ToSRGB returns the colour converted to the sRGB space, clipped to gamut.
func (c Color) ToSRGB() Color {
	return fromColorful(c.Clamped(), c.Alpha())
}

// RGB returns the clipped 8-bit sRGB channels.
func (c Color) RGB() RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}

// InGamut reports whether the colour is displayable in sRGB without clipping.
func (c Color) InGamut() bool {
	return c.sRGB().IsValid()
}

// HSL returns the hue (0-360), saturation (0-1) and lightness (0-1) of the
// clipped sRGB colour.
func (c Color) HSL() (h, s, l float64) {
	return c.Clamped().Hsl()
}

// Equal reports whether two colours render to the same 8-bit sRGB value and alpha.
func (c Color) Equal(other Color) bool {
	return c.RGB() == other.RGB() && math.Abs(c.Alpha()-other.Alpha()) < 1.0/510
}

// Luminance calculates the relative luminance of a colour according to WCAG 2.x.
// Returns a value between 0 (darkest) and 1 (lightest).
// https://www.w3.org/TR/WCAG21/#dfn-relative-luminance.
func Luminance(c Color) float64 {
	r, g, b := c.linearRGB()
	return clamp01(0.2126*r + 0.7152*g + 0.0722*b)
}

// LuminanceOf parses text and returns its relative luminance. The boolean is
// false when the text is not a valid colour.
func LuminanceOf(text string) (float64, bool) {
	c, err := Parse(text)
	if err != nil {
		return 0, false
	}
	return Luminance(c), true
}

// IsDark reports whether the colour's relative luminance is below threshold.
func IsDark(c Color, threshold float64) bool {
	return Luminance(c) < threshold
}

// Display P3 to CIE XYZ (D65) matrix.
var p3ToXYZ = [3][3]float64{
	{0.4865709486482162, 0.26566769316909306, 0.1982172852343625},
	{0.2289745640697488, 0.6917385218365064, 0.079286914093745},
	{0.0, 0.04511338185890264, 1.043944368900976},
}

// CIE XYZ (D65) to Display P3 matrix.
var xyzToP3 = [3][3]float64{
	{2.493496911941425, -0.9313836179191239, -0.40271078445071684},
	{-0.8294889695615747, 1.7626640603183463, 0.023624685841943577},
	{0.03584583024378447, -0.07617238926804182, 0.9568845240076872},
}

// displayP3ToXYZ converts gamma encoded Display P3 channels to XYZ.
// Display P3 shares the sRGB transfer function.
func displayP3ToXYZ(r, g, b float64) (x, y, z float64) {
	lr, lg, lb := srgbToLinear(r), srgbToLinear(g), srgbToLinear(b)
	return mulMatrix(p3ToXYZ, lr, lg, lb)
}

// xyzToDisplayP3 converts XYZ to gamma encoded Display P3 channels.
func xyzToDisplayP3(x, y, z float64) (r, g, b float64) {
	lr, lg, lb := mulMatrix(xyzToP3, x, y, z)
	return linearToSRGB(lr), linearToSRGB(lg), linearToSRGB(lb)
}

func mulMatrix(m [3][3]float64, a, b, c float64) (float64, float64, float64) {
	return m[0][0]*a + m[0][1]*b + m[0][2]*c,
		m[1][0]*a + m[1][1]*b + m[1][2]*c,
		m[2][0]*a + m[2][1]*b + m[2][2]*c
}

// srgbToLinear applies the sRGB decoding curve, preserving sign for
// out-of-gamut values.
func srgbToLinear(v float64) float64 {
	sign := 1.0
	if v < 0 {
		sign, v = -1, -v
	}
	if v <= 0.04045 {
		return sign * v / 12.92
	}
	return sign * math.Pow((v+0.055)/1.055, 2.4)
}

// linearToSRGB applies the sRGB encoding curve, preserving sign.
func linearToSRGB(v float64) float64 {
	sign := 1.0
	if v < 0 {
		sign, v = -1, -v
	}
	if v <= 0.0031308 {
		return sign * 12.92 * v
	}
	return sign * (1.055*math.Pow(v, 1.0/2.4) - 0.055)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// normaliseHue maps any angle into [0, 360).
func normaliseHue(h float64) float64 {
	if math.IsNaN(h) {
		return 0
	}
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}
