package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jmylchreest/contrastkit/internal/contrast"
	"github.com/jmylchreest/contrastkit/internal/palette"
	"github.com/jmylchreest/contrastkit/internal/render"
	"github.com/jmylchreest/contrastkit/internal/search"
)

// Output formats for search results.
const (
	formatTable  = "table"
	formatJSON   = "json"
	formatSwatch = "swatch"
)

// paletteFlags selects a built-in palette or a palette file.
type paletteFlags struct {
	name string
	file string
}

func (f *paletteFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.name, "palette", "p", "", fmt.Sprintf("built-in palette (%s)", strings.Join(palette.Names(), ", ")))
	fs.StringVar(&f.file, "palette-file", "", "palette file (.toml or .json)")
}

// resolve loads the selected palette. Flags win over configuration, and a
// file wins over a name at the same level.
func (f *paletteFlags) resolve() (*palette.Palette, error) {
	switch {
	case f.file != "":
		return palette.LoadFile(f.file)
	case f.name != "":
		return palette.Builtin(f.name)
	default:
		return palette.Resolve(settings.Palette, settings.PaletteFile)
	}
}

// algorithmFlags selects a contrast algorithm and threshold.
type algorithmFlags struct {
	algorithm string
	threshold float64
}

func (f *algorithmFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.algorithm, "algorithm", "a", "", "contrast algorithm (wcag21, apca)")
	fs.Float64VarP(&f.threshold, "threshold", "t", 0, "minimum contrast (default depends on the algorithm)")
}

// resolve returns the algorithm and threshold to use. A threshold from
// configuration only applies when the algorithm is unchanged.
func (f *algorithmFlags) resolve() (contrast.Algorithm, float64, error) {
	alg := settings.Algorithm
	if f.algorithm != "" {
		parsed, err := contrast.ParseAlgorithm(f.algorithm)
		if err != nil {
			return "", 0, err
		}
		alg = parsed
	}

	if f.threshold < 0 {
		return "", 0, fmt.Errorf("threshold must be non-negative, got %v", f.threshold)
	}

	threshold := f.threshold
	switch {
	case threshold > 0:
	case alg == settings.Algorithm:
		threshold = settings.EffectiveThreshold()
	default:
		threshold = contrast.DefaultThreshold(alg)
	}
	return alg, threshold, nil
}

// searchFlags are shared by commands that run a combination search.
type searchFlags struct {
	palette paletteFlags
	algorithmFlags
	limit int
	order string
	bgHue string
	fgHue string
}

func (f *searchFlags) register(fs *pflag.FlagSet) {
	f.palette.register(fs)
	f.algorithmFlags.register(fs)
	fs.IntVarP(&f.limit, "limit", "l", -1, "maximum number of results, 0 for unlimited (default from config)")
	fs.StringVar(&f.order, "order", "", "result order (background, contrast, none)")
	fs.StringVar(&f.bgHue, "bg-hue", "", "only show backgrounds from this hue")
	fs.StringVar(&f.fgHue, "fg-hue", "", "only show foregrounds from this hue")
}

// searchRequest is a fully resolved search.
type searchRequest struct {
	palette   *palette.Palette
	algorithm contrast.Algorithm
	threshold float64
	limit     int
	order     search.Order
	bgHue     string
	fgHue     string
}

func (f *searchFlags) resolve() (searchRequest, error) {
	p, err := f.palette.resolve()
	if err != nil {
		return searchRequest{}, err
	}
	return f.resolveWith(p)
}

// resolveWith resolves everything but the palette.
func (f *searchFlags) resolveWith(p *palette.Palette) (searchRequest, error) {
	alg, threshold, err := f.algorithmFlags.resolve()
	if err != nil {
		return searchRequest{}, err
	}

	limit := settings.Limit
	if f.limit >= 0 {
		limit = f.limit
	}

	order := settings.Order
	if f.order != "" {
		order, err = search.ParseOrder(f.order)
		if err != nil {
			return searchRequest{}, err
		}
	}

	for _, hue := range []string{f.bgHue, f.fgHue} {
		if hue != "" && !p.Has(hue) {
			return searchRequest{}, fmt.Errorf("palette %s has no hue %q (hues: %s)", p.Name, hue, strings.Join(p.Hues(), ", "))
		}
	}

	return searchRequest{
		palette:   p,
		algorithm: alg,
		threshold: threshold,
		limit:     limit,
		order:     order,
		bgHue:     f.bgHue,
		fgHue:     f.fgHue,
	}, nil
}

// run searches and applies the hue filters. The filters apply after the
// limit.
func (r searchRequest) run() []search.Combination {
	combos := search.FindAccessibleCombinations(r.palette, r.algorithm, r.threshold,
		search.WithLimit(r.limit),
		search.WithOrder(r.order))
	return search.Filter(combos, r.bgHue, r.fgHue)
}

// writeCombinations writes search results in the requested format.
func writeCombinations(w io.Writer, combos []search.Combination, alg contrast.Algorithm, format string, group bool) error {
	switch format {
	case formatJSON:
		var v any = combos
		if group {
			v = search.GroupByBackgroundHue(combos)
		}
		return writeJSON(w, v)

	case formatSwatch:
		term := render.NewTerminal(w, alg)
		if group {
			for _, g := range search.GroupByBackgroundHue(combos) {
				fmt.Fprintln(w, hueTitle(g.Hue))
				fmt.Fprint(w, term.Combinations(g.Combinations))
			}
			return nil
		}
		_, err := fmt.Fprint(w, term.Combinations(combos))
		return err

	case formatTable:
		if group {
			for i, g := range search.GroupByBackgroundHue(combos) {
				if i > 0 {
					fmt.Fprintln(w)
				}
				fmt.Fprintln(w, hueTitle(g.Hue))
				fmt.Fprint(w, combinationTable(g.Combinations, alg).Render())
			}
			return nil
		}
		_, err := fmt.Fprint(w, combinationTable(combos, alg).Render())
		return err

	default:
		return fmt.Errorf("invalid format: %s (valid formats: %s, %s, %s)", format, formatTable, formatJSON, formatSwatch)
	}
}

func combinationTable(combos []search.Combination, alg contrast.Algorithm) *Table {
	table := NewTable([]string{"Background", "Foreground", "Bg Hue", "Fg Hue", "Contrast", "Rating"})
	table.AlignRight(4)
	for _, c := range combos {
		table.AddRow([]string{
			c.Background,
			c.Foreground,
			c.BgHue,
			c.FgHue,
			contrast.Format(c.Contrast, alg),
			contrast.Classify(c.Contrast, alg),
		})
	}
	return table
}

// hueTitle formats a hue name for headings.
func hueTitle(hue string) string {
	if hue == "" {
		return "(no hue)"
	}
	return cases.Title(language.English).String(strings.NewReplacer("-", " ", "_", " ").Replace(hue))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
