package search

// Group is the set of combinations sharing a background hue.
type Group struct {
	Hue          string        `json:"hue"`
	Combinations []Combination `json:"combinations"`
}

// Filter returns the combinations matching the given background and
// foreground hues. An empty hue matches anything.
func Filter(combos []Combination, bgHue, fgHue string) []Combination {
	if bgHue == "" && fgHue == "" {
		return combos
	}
	var out []Combination
	for _, c := range combos {
		if bgHue != "" && c.BgHue != bgHue {
			continue
		}
		if fgHue != "" && c.FgHue != fgHue {
			continue
		}
		out = append(out, c)
	}
	return out
}

// GroupByBackgroundHue splits combos by background hue. Groups appear in the
// order their hue is first seen and keep the input order within each group.
func GroupByBackgroundHue(combos []Combination) []Group {
	var groups []Group
	index := make(map[string]int)
	for _, c := range combos {
		i, ok := index[c.BgHue]
		if !ok {
			i = len(groups)
			index[c.BgHue] = i
			groups = append(groups, Group{Hue: c.BgHue})
		}
		groups[i].Combinations = append(groups[i].Combinations, c)
	}
	return groups
}

// Contains reports whether a pair with the given background and foreground
// is present. Used to decide whether a selection survives a recompute.
func Contains(combos []Combination, background, foreground string) bool {
	for _, c := range combos {
		if c.Background == background && c.Foreground == foreground {
			return true
		}
	}
	return false
}
