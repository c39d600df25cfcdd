package derive

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/jmylchreest/contrastkit/internal/palette"
)

// darkIndexBound is the last index a border treats as the dark end of a
// hue's sequence.
const darkIndexBound = 3

// BorderColor returns the palette colour a border should use around base.
// Backgrounds at index 3 or below step up the sequence, others step down,
// by one (subtle) or two (strong) positions, clamped to the sequence.
// Without a usable context base is returned unchanged.
func BorderColor(base string, level BorderLevel, p *palette.Palette, ctx Context) string {
	colours, ok := contextColours(p, ctx)
	if !ok {
		return base
	}

	step := level.step()
	var target int
	if ctx.Index <= darkIndexBound {
		target = min(ctx.Index+step, len(colours)-1)
	} else {
		target = max(ctx.Index-step, 0)
	}
	return colours[target]
}

// GradientEnd returns the second colour of a gradient starting at base.
// rng drives the adjacent and random modes; nil uses the global source.
// Without a usable context, or when the chosen hue is empty, base is
// returned unchanged.
func GradientEnd(base string, hueStep int, mode HueMode, p *palette.Palette, ctx Context, rng *rand.Rand) string {
	colours, ok := contextColours(p, ctx)
	if !ok {
		return base
	}

	var target string
	switch mode {
	case ModeSameHue:
		// Dark end here is the first third of the sequence.
		var idx int
		if float64(ctx.Index) <= float64(len(colours))/3 {
			idx = min(ctx.Index+hueStep, len(colours)-1)
		} else {
			idx = max(ctx.Index-hueStep, 0)
		}
		if idx < 0 || idx >= len(colours) {
			return base
		}
		return colours[idx]
	case ModeAdjacentHue:
		dir := AdjacentNext
		if intN(rng, 2) == 1 {
			dir = AdjacentPrev
		}
		target = AdjacentHue(ctx.Hue, dir, p)[0]
	case ModeComplementaryHue:
		target = ComplementaryHue(ctx.Hue, p)
	case ModeRandomHue:
		target = RandomHue(ctx.Hue, p, rng)
	default:
		return base
	}

	dst := p.Colours(target)
	if len(dst) == 0 {
		return base
	}
	return dst[ProportionalIndex(ctx.Index, len(colours), len(dst))]
}

// ProportionalIndex maps index in a sequence of srcLen entries to the
// entry at the same relative depth in a sequence of dstLen entries.
func ProportionalIndex(index, srcLen, dstLen int) int {
	if srcLen <= 0 || dstLen <= 0 {
		return 0
	}
	i := int(math.Round(float64(index) / float64(srcLen) * float64(dstLen)))
	return max(0, min(i, dstLen-1))
}

// GradientOptions describes a palette gradient.
type GradientOptions struct {
	Type      GradientType
	Direction Direction
	Step      int
	Mode      HueMode
}

// DefaultGradientOptions returns a linear left to right gradient two steps
// along the same hue.
func DefaultGradientOptions() GradientOptions {
	return GradientOptions{
		Type:      GradientLinear,
		Direction: DirectionRight,
		Step:      2,
		Mode:      ModeSameHue,
	}
}

// Gradient returns a CSS gradient from base to a palette derived end colour.
// Without a usable context the solid base colour is returned.
func Gradient(base string, ctx Context, p *palette.Palette, opts GradientOptions, rng *rand.Rand) string {
	if _, ok := contextColours(p, ctx); !ok {
		return base
	}
	end := GradientEnd(base, opts.Step, opts.Mode, p, ctx, rng)
	return GradientCSS(opts.Type, opts.Direction, base, end)
}

// GradientCSS formats a two stop CSS gradient. Radial gradients ignore dir.
func GradientCSS(t GradientType, dir Direction, start, end string) string {
	if t == GradientRadial {
		return fmt.Sprintf("radial-gradient(circle, %s, %s)", start, end)
	}
	if dir == "" {
		dir = DirectionRight
	}
	return fmt.Sprintf("linear-gradient(%s, %s, %s)", dir, start, end)
}

// AdjacentHue returns the neighbouring hue names in key order, wrapping at
// either end. AdjacentBoth returns the next hue then the previous one.
// An unknown hue is returned on its own.
func AdjacentHue(current string, dir AdjacentDirection, p *palette.Palette) []string {
	hues := p.Hues()
	i := p.HueIndex(current)
	if i < 0 {
		return []string{current}
	}
	n := len(hues)
	next := hues[(i+1)%n]
	prev := hues[(i-1+n)%n]
	switch dir {
	case AdjacentNext:
		return []string{next}
	case AdjacentPrev:
		return []string{prev}
	default:
		return []string{next, prev}
	}
}

// ComplementaryHue returns the hue half way round the palette's key order.
// This is a position in the list, not a colour wheel complement.
func ComplementaryHue(current string, p *palette.Palette) string {
	hues := p.Hues()
	i := p.HueIndex(current)
	if i < 0 {
		return current
	}
	return hues[(i+len(hues)/2)%len(hues)]
}

// RandomHue returns a hue other than current chosen uniformly with rng.
// A palette with a single hue returns current.
func RandomHue(current string, p *palette.Palette, rng *rand.Rand) string {
	var others []string
	for _, h := range p.Hues() {
		if h != current {
			others = append(others, h)
		}
	}
	if len(others) == 0 || p.Len() <= 1 {
		return current
	}
	return others[intN(rng, len(others))]
}

// contextColours returns the sequence ctx points into. An index outside the
// sequence, including a negative one, is treated as no context.
func contextColours(p *palette.Palette, ctx Context) ([]string, bool) {
	if p == nil || !ctx.OK || ctx.Hue == "" || !p.Has(ctx.Hue) {
		return nil, false
	}
	colours := p.Colours(ctx.Hue)
	if len(colours) == 0 || ctx.Index < 0 || ctx.Index >= len(colours) {
		return nil, false
	}
	return colours, true
}

func intN(rng *rand.Rand, n int) int {
	if rng == nil {
		return rand.IntN(n)
	}
	return rng.IntN(n)
}
