package search

import (
	"cmp"
	"slices"

	"github.com/jmylchreest/contrastkit/internal/colour"
)

// Sort returns a copy of combos in the given order. Unknown orders keep the
// input order.
func Sort(combos []Combination, order Order) []Combination {
	switch order {
	case OrderBackground, "":
		return SortByBackgroundColor(combos)
	case OrderContrast:
		return SortByContrast(combos)
	default:
		return slices.Clone(combos)
	}
}

// SortByBackgroundColor returns a copy of combos stably sorted by background
// relative luminance, darkest first. Backgrounds that cannot be parsed
// compare equal to everything.
func SortByBackgroundColor(combos []Combination) []Combination {
	out := slices.Clone(combos)

	type lum struct {
		value float64
		ok    bool
	}
	cache := make(map[string]lum)
	luminance := func(text string) lum {
		if l, ok := cache[text]; ok {
			return l
		}
		v, ok := colour.LuminanceOf(text)
		cache[text] = lum{value: v, ok: ok}
		return cache[text]
	}

	slices.SortStableFunc(out, func(a, b Combination) int {
		la, lb := luminance(a.Background), luminance(b.Background)
		if !la.ok || !lb.ok {
			return 0
		}
		return cmp.Compare(la.value, lb.value)
	})
	return out
}

// SortByContrast returns a copy of combos stably sorted by contrast, highest
// first.
func SortByContrast(combos []Combination) []Combination {
	out := slices.Clone(combos)
	slices.SortStableFunc(out, func(a, b Combination) int {
		return cmp.Compare(b.Contrast, a.Contrast)
	})
	return out
}
