// Package contrast computes WCAG 2.1 and APCA contrast between colours and
// classifies the results.
package contrast

import (
	"fmt"
	"math"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/contrastkit/internal/colour"
)

// Algorithm represents the contrast algorithm type.
type Algorithm string

const (
	// WCAG21 is the WCAG 2.1 relative luminance contrast ratio (1 to 21).
	WCAG21 Algorithm = "WCAG21"

	// APCA is the Advanced Perceptual Contrast Algorithm (Lc, roughly 0 to 108).
	APCA Algorithm = "APCA"
)

// ValidAlgorithms returns a list of valid algorithm names.
func ValidAlgorithms() []Algorithm {
	return []Algorithm{WCAG21, APCA}
}

// ParseAlgorithm converts a user supplied name into an Algorithm.
// Matching is case-insensitive and accepts "wcag", "wcag2" and "wcag21".
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "wcag", "wcag2", "wcag21", "wcag2.1":
		return WCAG21, nil
	case "apca":
		return APCA, nil
	default:
		return "", fmt.Errorf("unknown algorithm: %s (valid algorithms: %v)", name, ValidAlgorithms())
	}
}

// logger receives debug output for indeterminate contrast values.
var logger hclog.Logger = hclog.NewNullLogger()

// SetLogger sets the logger used by the package. A nil logger disables logging.
func SetLogger(l hclog.Logger) {
	if l == nil {
		l = hclog.NewNullLogger()
	}
	logger = l
}

// Contrast parses two colour strings and returns their contrast.
// foreground is the text colour and background the fill it sits on.
// Any parse or compute failure returns 0, which callers must treat as
// "indeterminate" rather than a real score.
func Contrast(foreground, background string, alg Algorithm) float64 {
	fg, err := colour.Parse(foreground)
	if err != nil {
		logger.Debug("indeterminate contrast", "foreground", foreground, "error", err)
		return 0
	}
	bg, err := colour.Parse(background)
	if err != nil {
		logger.Debug("indeterminate contrast", "background", background, "error", err)
		return 0
	}
	return ContrastColors(fg, bg, alg)
}

// ContrastColors returns the contrast of two parsed colours.
// WCAG21 yields a ratio in [1, 21]; APCA yields the absolute Lc value.
// Unknown algorithms and non-finite results return 0.
func ContrastColors(foreground, background colour.Color, alg Algorithm) float64 {
	var v float64
	switch alg {
	case WCAG21:
		v = Ratio(foreground, background)
	case APCA:
		v = math.Abs(APCAContrast(foreground, background))
	default:
		logger.Debug("indeterminate contrast", "algorithm", alg)
		return 0
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		logger.Debug("indeterminate contrast", "foreground", foreground.String(), "background", background.String(), "algorithm", alg)
		return 0
	}
	return v
}

// Ratio calculates the contrast ratio between two colours according to WCAG 2.1.
// Returns a value between 1 and 21, where 21 is maximum contrast (black vs white).
// The result is symmetric: the lighter colour is always the numerator.
// https://www.w3.org/TR/WCAG21/#dfn-contrast-ratio.
func Ratio(c1, c2 colour.Color) float64 {
	l1 := colour.Luminance(c1)
	l2 := colour.Luminance(c2)

	// Ensure l1 is the lighter colour.
	if l1 < l2 {
		l1, l2 = l2, l1
	}

	return (l1 + 0.05) / (l2 + 0.05)
}
