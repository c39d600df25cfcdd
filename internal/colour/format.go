package colour

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ColorFormat represents different colour string formats.
type ColorFormat int

const (
	FormatHex       ColorFormat = iota // #rrggbb
	FormatHexAlpha                     // #rrggbbaa
	FormatRGB                          // rgb(r, g, b)
	FormatRGBA                         // rgba(r, g, b, a)
	FormatHSL                          // hsl(h s% l%)
	FormatDisplayP3                    // color(display-p3 r g b)
	FormatOKLCH                        // oklch(l c h)
	FormatOriginal                     // the parsed source text, hex when unknown
)

var formatNames = map[ColorFormat]string{
	FormatHex:       "hex",
	FormatHexAlpha:  "hexa",
	FormatRGB:       "rgb",
	FormatRGBA:      "rgba",
	FormatHSL:       "hsl",
	FormatDisplayP3: "p3",
	FormatOKLCH:     "oklch",
	FormatOriginal:  "original",
}

// String returns the flag name of the format.
func (f ColorFormat) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return "unknown"
}

// ValidFormats returns the accepted format names.
func ValidFormats() []string {
	return []string{"hex", "hexa", "rgb", "rgba", "hsl", "p3", "oklch", "original"}
}

// ParseFormat converts a format name into a ColorFormat.
func ParseFormat(name string) (ColorFormat, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for f, n := range formatNames {
		if n == name {
			return f, nil
		}
	}
	switch name {
	case "display-p3":
		return FormatDisplayP3, nil
	case "", "source":
		return FormatOriginal, nil
	}
	return FormatHex, fmt.Errorf("unknown colour format %q (valid: %s)", name, strings.Join(ValidFormats(), ", "))
}

// Format returns the colour serialised in the given format.
func Format(c Color, format ColorFormat) string {
	switch format {
	case FormatHexAlpha:
		return fmt.Sprintf("%s%02x", c.RGB().Hex(), uint8(c.Alpha()*255.0+0.5))
	case FormatRGB:
		return c.RGB().String()
	case FormatRGBA:
		rgb := c.RGB()
		return fmt.Sprintf("rgba(%d, %d, %d, %s)", rgb.R, rgb.G, rgb.B, trimFloat(c.Alpha(), 3))
	case FormatHSL:
		h, s, l := c.HSL()
		return fmt.Sprintf("hsl(%s %s%% %s%%%s)", trimFloat(h, 1), trimFloat(s*100, 1), trimFloat(l*100, 1), alphaSuffix(c))
	case FormatDisplayP3:
		r, g, b := c.displayP3()
		return fmt.Sprintf("color(display-p3 %s %s %s%s)", trimFloat(r, 4), trimFloat(g, 4), trimFloat(b, 4), alphaSuffix(c))
	case FormatOKLCH:
		l, ch, h := c.sRGB().OkLch()
		return fmt.Sprintf("oklch(%s %s %s%s)", trimFloat(l, 4), trimFloat(ch, 4), trimFloat(h, 2), alphaSuffix(c))
	case FormatOriginal:
		if c.source != "" {
			return c.source
		}
		return c.String()
	default:
		return c.RGB().Hex()
	}
}

// String returns the colour as hex, with an alpha byte when translucent.
func (c Color) String() string {
	if c.Alpha() < 1 {
		return Format(c, FormatHexAlpha)
	}
	return Format(c, FormatHex)
}

// Hex returns the clipped sRGB hex form (#rrggbb).
func (c Color) Hex() string { return Format(c, FormatHex) }

// displayP3 returns the colour's gamma encoded Display P3 channels.
func (c Color) displayP3() (r, g, b float64) {
	if c.Space() == SpaceDisplayP3 {
		return c.ch[0], c.ch[1], c.ch[2]
	}
	lr, lg, lb := c.linearRGB()
	r, g, b = xyzToDisplayP3(colorful.LinearRgbToXyz(lr, lg, lb))
	return clamp01(r), clamp01(g), clamp01(b)
}

// alphaSuffix returns " / a" for translucent colours in modern CSS syntax.
func alphaSuffix(c Color) string {
	if c.Alpha() >= 1 {
		return ""
	}
	return " / " + trimFloat(c.Alpha(), 3)
}

// trimFloat formats v with at most prec decimals and no trailing zeros.
func trimFloat(v float64, prec int) string {
	s := strconv.FormatFloat(v, 'f', prec, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s
}
