package contrast

import (
	"math"

	"github.com/jmylchreest/contrastkit/internal/colour"
)

// APCA 0.0.98G-4g constants.
const (
	apcaNormBG  = 0.56
	apcaNormTxt = 0.57
	apcaRevTxt  = 0.62
	apcaRevBG   = 0.65

	apcaBlkThrs   = 0.022
	apcaBlkClmp   = 1.414
	apcaLoClip    = 0.1
	apcaDeltaYMin = 0.0005

	apcaScaleBoW    = 1.14
	apcaLoBoWOffset = 0.027
	apcaScaleWoB    = 1.14
	apcaLoWoBOffset = 0.027
)

// APCAContrast returns the signed APCA lightness contrast (Lc) of text in
// the foreground colour on the background colour.
// Positive values are dark text on a light background, negative values are
// light text on a dark background. The inputs are not interchangeable:
// swapping them changes the magnitude as well as the sign.
func APCAContrast(foreground, background colour.Color) float64 {
	yTxt := apcaSoftClamp(apcaLuminance(foreground))
	yBg := apcaSoftClamp(apcaLuminance(background))

	if math.Abs(yBg-yTxt) < apcaDeltaYMin {
		return 0
	}

	var c float64
	if yBg > yTxt {
		// Dark text on light background.
		c = (math.Pow(yBg, apcaNormBG) - math.Pow(yTxt, apcaNormTxt)) * apcaScaleBoW
	} else {
		// Light text on dark background.
		c = (math.Pow(yBg, apcaRevBG) - math.Pow(yTxt, apcaRevTxt)) * apcaScaleWoB
	}

	var sapc float64
	switch {
	case math.Abs(c) < apcaLoClip:
		sapc = 0
	case c > 0:
		sapc = c - apcaLoBoWOffset
	default:
		sapc = c + apcaLoWoBOffset
	}

	return sapc * 100
}

// apcaLuminance estimates screen luminance with the APCA simple 2.4 exponent
// on unclipped sRGB channels.
func apcaLuminance(c colour.Color) float64 {
	r, g, b := c.SRGB()
	y := apcaLinearise(r)*0.2126729 + apcaLinearise(g)*0.7151522 + apcaLinearise(b)*0.0721750
	return math.Max(0, y)
}

func apcaLinearise(v float64) float64 {
	if v < 0 {
		return -math.Pow(-v, 2.4)
	}
	return math.Pow(v, 2.4)
}

// apcaSoftClamp lifts near-black luminance to model flare.
func apcaSoftClamp(y float64) float64 {
	if y >= apcaBlkThrs {
		return y
	}
	return y + math.Pow(apcaBlkThrs-y, apcaBlkClmp)
}
