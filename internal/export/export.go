// Package export renders background/foreground pairs and palettes as code
// snippets for CSS, Tailwind, Figma and SwiftUI.
package export

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jmylchreest/contrastkit/internal/colour"
	"github.com/jmylchreest/contrastkit/internal/palette"
	"github.com/jmylchreest/contrastkit/internal/search"
)

//go:embed templates/*.tmpl
var templates embed.FS

// Format is a snippet format.
type Format string

const (
	FormatCSS      Format = "css"
	FormatTailwind Format = "tailwind"
	FormatFigma    Format = "figma"
	FormatSwift    Format = "swift"
)

// ValidFormats returns the supported snippet formats.
func ValidFormats() []Format {
	return []Format{FormatCSS, FormatTailwind, FormatFigma, FormatSwift}
}

// ParseFormat converts a name into a Format.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	for _, valid := range ValidFormats() {
		if f == valid {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid export format: %s (valid formats: %v)", name, ValidFormats())
}

// Pair is a background/foreground pair to export.
type Pair struct {
	Background string
	Foreground string
	BgHue      string
	FgHue      string

	// Contrast is an optional description such as "AA (5.12:1)".
	Contrast string
}

// FromCombination builds a Pair from a search result.
func FromCombination(c search.Combination, contrastText string) Pair {
	return Pair{
		Background: c.Background,
		Foreground: c.Foreground,
		BgHue:      c.BgHue,
		FgHue:      c.FgHue,
		Contrast:   contrastText,
	}
}

// pairData is the template view of a Pair.
type pairData struct {
	Pair
	BgVar  string
	FgVar  string
	BgName string
	FgName string
}

func newPairData(p Pair) pairData {
	d := pairData{
		Pair:   p,
		BgVar:  "--color-bg",
		FgVar:  "--color-fg",
		BgName: "background",
		FgName: "foreground",
	}
	if p.BgHue != "" {
		d.BgVar = fmt.Sprintf("--color-%s-bg", p.BgHue)
		d.BgName = p.BgHue
	}
	if p.FgHue != "" {
		d.FgVar = fmt.Sprintf("--color-%s-fg", p.FgHue)
		d.FgName = p.FgHue
	}
	return d
}

// RenderPair renders a snippet for a single pair.
func RenderPair(format Format, p Pair) ([]byte, error) {
	if _, err := ParseFormat(string(format)); err != nil {
		return nil, err
	}
	return execute(string(format)+".tmpl", newPairData(p))
}

// paletteData is the template view of a palette.
type paletteData struct {
	Name        string
	Description string
	Hues        []hueData
}

type hueData struct {
	Name    string
	Colours []indexedColour
}

type indexedColour struct {
	Index int
	Value string
}

// RenderPalette renders a palette as CSS custom properties named
// --<hue>-<index>. Colour values are written as given.
func RenderPalette(p *palette.Palette) ([]byte, error) {
	data := paletteData{Name: p.Name, Description: p.Description}
	for _, hue := range p.Hues() {
		h := hueData{Name: cssIdent(hue)}
		for i, c := range p.Colours(hue) {
			h.Colours = append(h.Colours, indexedColour{Index: i, Value: c})
		}
		data.Hues = append(data.Hues, h)
	}
	return execute("palette.css.tmpl", data)
}

func execute(name string, data any) ([]byte, error) {
	content, err := templates.ReadFile("templates/" + name)
	if err != nil {
		return nil, fmt.Errorf("failed to read template %s: %w", name, err)
	}

	tmpl, err := template.New(name).Funcs(templateFuncs()).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// templateFuncs returns the functions available to snippet templates.
func templateFuncs() template.FuncMap {
	title := cases.Title(language.English)
	return template.FuncMap{
		"hex":   hexFunc,
		"rgb":   rgbFunc,
		"title": title.String,
	}
}

// hexFunc returns the sRGB hex form, or the input when it cannot be parsed.
func hexFunc(s string) string {
	c, err := colour.Parse(s)
	if err != nil {
		return s
	}
	return c.Hex()
}

// rgbFunc returns the rgb() form, or the input when it cannot be parsed.
func rgbFunc(s string) string {
	c, err := colour.Parse(s)
	if err != nil {
		return s
	}
	return colour.Format(c, colour.FormatRGB)
}

// cssIdent replaces characters that are not valid in a custom property name.
func cssIdent(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, s)
}
