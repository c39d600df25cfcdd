package colour

import (
	"fmt"
	"image/color"
)

// RGB represents a colour as 8-bit sRGB channels.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB colour as a hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// ImageColor returns the colour as a color.NRGBA, clipped to sRGB.
func (c Color) ImageColor() color.NRGBA {
	rgb := c.RGB()
	return color.NRGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: uint8(c.Alpha()*255.0 + 0.5)}
}
