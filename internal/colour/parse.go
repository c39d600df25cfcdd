package colour

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// functionRegex matches CSS functional notation, e.g. "rgb(1 2 3)" or "color(display-p3 1 0 0 / 50%)".
var functionRegex = regexp.MustCompile(`^([a-z][a-z0-9-]*)\(\s*(.*?)\s*\)$`)

// oklabPercentScale is the value a/b/chroma take at 100% in oklab() and oklch().
const oklabPercentScale = 0.4

// Parse converts a CSS colour string into a Color.
// Supports: hex (#rgb, #rgba, #rrggbb, #rrggbbaa), rgb/rgba, hsl/hsla,
// named colours, color(srgb|srgb-linear|display-p3 ...), oklab and oklch.
func Parse(text string) (Color, error) {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return Color{}, fmt.Errorf("%w: empty string", ErrInvalidColour)
	}

	var (
		c   Color
		err error
	)
	switch {
	case strings.HasPrefix(s, "#"):
		c, err = parseHex(s)
	case functionRegex.MatchString(s):
		m := functionRegex.FindStringSubmatch(s)
		c, err = parseFunction(m[1], m[2])
	case s == "transparent":
		c = New(SpaceSRGB, 0, 0, 0, 0)
	default:
		named, ok := colornames.Map[s]
		if !ok {
			return Color{}, fmt.Errorf("%w: unknown colour name %q", ErrInvalidColour, text)
		}
		c = FromRGB(RGB{R: named.R, G: named.G, B: named.B})
	}
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q: %v", ErrInvalidColour, text, err)
	}

	c.source = strings.TrimSpace(text)
	return c, nil
}

// MustParse is like Parse but panics on error. Intended for constants and tests.
func MustParse(text string) Color {
	c, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return c
}

// IsValid reports whether text parses as a colour.
func IsValid(text string) bool {
	_, err := Parse(text)
	return err == nil
}

// parseHex parses #rgb, #rgba, #rrggbb and #rrggbbaa.
func parseHex(s string) (Color, error) {
	hex := strings.TrimPrefix(s, "#")

	// Expand shorthand format (RGB[A] -> RRGGBB[AA]).
	if len(hex) == 3 || len(hex) == 4 {
		expanded := make([]byte, 0, len(hex)*2)
		for i := 0; i < len(hex); i++ {
			expanded = append(expanded, hex[i], hex[i])
		}
		hex = string(expanded)
	}

	alpha := 1.0
	switch len(hex) {
	case 6:
	case 8:
		a, err := strconv.ParseUint(hex[6:8], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("invalid alpha component: %w", err)
		}
		alpha = float64(a) / 255.0
		hex = hex[:6]
	default:
		return Color{}, fmt.Errorf("invalid hex length: expected 3, 4, 6 or 8 digits, got %d", len(hex))
	}

	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return Color{}, err
	}
	return fromColorful(c, alpha), nil
}

// parseFunction dispatches on the CSS function name.
func parseFunction(name, body string) (Color, error) {
	args, alphaArg, err := splitArgs(body)
	if err != nil {
		return Color{}, err
	}

	switch name {
	case "rgb", "rgba":
		return parseRGBArgs(args, alphaArg)
	case "hsl", "hsla":
		return parseHSLArgs(args, alphaArg)
	case "color":
		return parseColorArgs(args, alphaArg)
	case "oklab":
		return parseOKLabArgs(args, alphaArg)
	case "oklch":
		return parseOKLCHArgs(args, alphaArg)
	default:
		return Color{}, fmt.Errorf("unsupported colour function %q", name)
	}
}

// splitArgs splits a function body into channel arguments and an optional
// alpha. Both the legacy comma form and the modern "a b c / alpha" form are
// accepted; a fourth comma separated argument is treated as alpha.
func splitArgs(body string) ([]string, string, error) {
	main, alphaArg := body, ""
	if idx := strings.Index(body, "/"); idx >= 0 {
		main = body[:idx]
		alphaArg = strings.TrimSpace(body[idx+1:])
		if alphaArg == "" {
			return nil, "", fmt.Errorf("missing alpha after '/'")
		}
	}

	args := strings.FieldsFunc(main, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	return args, alphaArg, nil
}

// takeAlpha resolves the alpha channel from the trailing argument forms.
func takeAlpha(args []string, alphaArg string, want int) ([]string, float64, error) {
	if alphaArg == "" && len(args) == want+1 {
		alphaArg = args[want]
		args = args[:want]
	}
	if len(args) != want {
		return nil, 0, fmt.Errorf("expected %d channel values, got %d", want, len(args))
	}
	if alphaArg == "" {
		return args, 1, nil
	}
	a, err := parseNumber(alphaArg, 1)
	if err != nil {
		return nil, 0, fmt.Errorf("alpha: %w", err)
	}
	return args, clamp01(a), nil
}

func parseRGBArgs(args []string, alphaArg string) (Color, error) {
	args, alpha, err := takeAlpha(args, alphaArg, 3)
	if err != nil {
		return Color{}, err
	}
	var ch [3]float64
	for i, arg := range args {
		v, err := parseNumber(arg, 255)
		if err != nil {
			return Color{}, fmt.Errorf("channel %d: %w", i+1, err)
		}
		ch[i] = clamp01(v / 255.0)
	}
	return New(SpaceSRGB, ch[0], ch[1], ch[2], alpha), nil
}

func parseHSLArgs(args []string, alphaArg string) (Color, error) {
	args, alpha, err := takeAlpha(args, alphaArg, 3)
	if err != nil {
		return Color{}, err
	}
	h, err := parseAngle(args[0])
	if err != nil {
		return Color{}, fmt.Errorf("hue: %w", err)
	}
	// Saturation and lightness are percentages; bare numbers are read as percent.
	s, err := parseNumber(strings.TrimSuffix(args[1], "%"), 100)
	if err != nil {
		return Color{}, fmt.Errorf("saturation: %w", err)
	}
	l, err := parseNumber(strings.TrimSuffix(args[2], "%"), 100)
	if err != nil {
		return Color{}, fmt.Errorf("lightness: %w", err)
	}
	return New(SpaceHSL, normaliseHue(h), clamp01(s/100), clamp01(l/100), alpha), nil
}

func parseColorArgs(args []string, alphaArg string) (Color, error) {
	if len(args) == 0 {
		return Color{}, fmt.Errorf("missing colour space")
	}
	space := Space(args[0])
	switch space {
	case SpaceSRGB, SpaceSRGBLinear, SpaceDisplayP3:
	default:
		return Color{}, fmt.Errorf("unsupported colour space %q", args[0])
	}

	rest, alpha, err := takeAlpha(args[1:], alphaArg, 3)
	if err != nil {
		return Color{}, err
	}
	var ch [3]float64
	for i, arg := range rest {
		v, err := parseNumber(arg, 1)
		if err != nil {
			return Color{}, fmt.Errorf("channel %d: %w", i+1, err)
		}
		ch[i] = v
	}
	return New(space, ch[0], ch[1], ch[2], alpha), nil
}

func parseOKLabArgs(args []string, alphaArg string) (Color, error) {
	args, alpha, err := takeAlpha(args, alphaArg, 3)
	if err != nil {
		return Color{}, err
	}
	l, err := parseNumber(args[0], 1)
	if err != nil {
		return Color{}, fmt.Errorf("lightness: %w", err)
	}
	a, err := parseNumber(args[1], oklabPercentScale)
	if err != nil {
		return Color{}, fmt.Errorf("a: %w", err)
	}
	b, err := parseNumber(args[2], oklabPercentScale)
	if err != nil {
		return Color{}, fmt.Errorf("b: %w", err)
	}
	return New(SpaceOKLab, clamp01(l), a, b, alpha), nil
}

func parseOKLCHArgs(args []string, alphaArg string) (Color, error) {
	args, alpha, err := takeAlpha(args, alphaArg, 3)
	if err != nil {
		return Color{}, err
	}
	l, err := parseNumber(args[0], 1)
	if err != nil {
		return Color{}, fmt.Errorf("lightness: %w", err)
	}
	c, err := parseNumber(args[1], oklabPercentScale)
	if err != nil {
		return Color{}, fmt.Errorf("chroma: %w", err)
	}
	h, err := parseAngle(args[2])
	if err != nil {
		return Color{}, fmt.Errorf("hue: %w", err)
	}
	return New(SpaceOKLCH, clamp01(l), math.Max(0, c), normaliseHue(h), alpha), nil
}

// parseNumber parses a number or percentage. A percentage is scaled so that
// 100% equals percentScale. The CSS keyword "none" is read as zero.
func parseNumber(tok string, percentScale float64) (float64, error) {
	if tok == "none" {
		return 0, nil
	}
	if strings.HasSuffix(tok, "%") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(tok, "%"), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid percentage %q", tok)
		}
		return v / 100 * percentScale, nil
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", tok)
	}
	return v, nil
}

// parseAngle parses a hue angle with an optional deg, rad, grad or turn unit.
func parseAngle(tok string) (float64, error) {
	if tok == "none" {
		return 0, nil
	}
	units := []struct {
		suffix string
		scale  float64
	}{
		{"deg", 1},
		{"grad", 0.9},
		{"rad", 180 / math.Pi},
		{"turn", 360},
	}
	for _, u := range units {
		if strings.HasSuffix(tok, u.suffix) {
			v, err := strconv.ParseFloat(strings.TrimSuffix(tok, u.suffix), 64)
			if err != nil {
				return 0, fmt.Errorf("invalid angle %q", tok)
			}
			return v * u.scale, nil
		}
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid angle %q", tok)
	}
	return v, nil
}
