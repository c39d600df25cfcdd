// Package search finds accessible background/foreground combinations in a
// palette and orders them for display.
package search

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/contrastkit/internal/colour"
	"github.com/jmylchreest/contrastkit/internal/contrast"
	"github.com/jmylchreest/contrastkit/internal/palette"
)

// Combination is an accepted background/foreground pair.
type Combination struct {
	Background string  `json:"background"`
	Foreground string  `json:"foreground"`
	Contrast   float64 `json:"contrast"`

	// BgHue, FgHue and BgIndex locate the pair in its palette. They are only
	// meaningful when HasContext is true.
	BgHue      string `json:"bgHue,omitempty"`
	FgHue      string `json:"fgHue,omitempty"`
	BgIndex    int    `json:"bgIndex"`
	HasContext bool   `json:"-"`
}

// Order selects how results are ordered before a limit is applied.
type Order string

const (
	// OrderBackground sorts by background luminance, darkest first.
	OrderBackground Order = "background"

	// OrderContrast sorts by contrast, highest first.
	OrderContrast Order = "contrast"

	// OrderNone keeps enumeration order (background hue, background index,
	// foreground hue, foreground index).
	OrderNone Order = "none"
)

// ValidOrders returns the accepted order names.
func ValidOrders() []Order {
	return []Order{OrderBackground, OrderContrast, OrderNone}
}

// ParseOrder converts a name into an Order.
func ParseOrder(name string) (Order, error) {
	o := Order(strings.ToLower(strings.TrimSpace(name)))
	for _, valid := range ValidOrders() {
		if o == valid {
			return o, nil
		}
	}
	return "", fmt.Errorf("invalid order: %s (valid orders: %v)", name, ValidOrders())
}

type options struct {
	limit int
	order Order
}

// Option configures FindAccessibleCombinations.
type Option func(*options)

// WithLimit caps the number of results returned after ordering. A limit of
// zero or less returns everything. The full cross product is always searched.
func WithLimit(n int) Option {
	return func(o *options) { o.limit = n }
}

// WithOrder sets the result order. The default is OrderBackground.
func WithOrder(order Order) Option {
	return func(o *options) { o.order = order }
}

var logger hclog.Logger = hclog.NewNullLogger()

// SetLogger sets the logger used by the package. A nil logger disables logging.
func SetLogger(l hclog.Logger) {
	if l == nil {
		l = hclog.NewNullLogger()
	}
	logger = l
}

// entry is a parsed palette colour with its position.
type entry struct {
	text   string
	hue    string
	index  int
	colour colour.Color
	valid  bool
}

// FindAccessibleCombinations evaluates every (background, foreground) pair
// in the palette's cross product, including self pairs, and returns those
// whose contrast is at least threshold.
func FindAccessibleCombinations(p *palette.Palette, alg contrast.Algorithm, threshold float64, opts ...Option) []Combination {
	o := options{order: OrderBackground}
	for _, opt := range opts {
		opt(&o)
	}

	if p == nil {
		return nil
	}

	entries := parseEntries(p)

	var combos []Combination
	evaluated := 0
	for _, bg := range entries {
		for _, fg := range entries {
			evaluated++
			var value float64
			if bg.valid && fg.valid {
				value = contrast.ContrastColors(fg.colour, bg.colour, alg)
			}
			if !contrast.Passes(value, threshold) {
				continue
			}
			combos = append(combos, Combination{
				Background: bg.text,
				Foreground: fg.text,
				Contrast:   value,
				BgHue:      bg.hue,
				FgHue:      fg.hue,
				BgIndex:    bg.index,
				HasContext: true,
			})
		}
	}

	logger.Debug("searched palette",
		"palette", p.Name,
		"algorithm", alg,
		"threshold", threshold,
		"pairs", evaluated,
		"accepted", len(combos))

	combos = Sort(combos, o.order)

	if o.limit > 0 && len(combos) > o.limit {
		combos = combos[:o.limit]
	}
	return combos
}

// parseEntries flattens the palette in key order, parsing each colour once.
func parseEntries(p *palette.Palette) []entry {
	entries := make([]entry, 0, p.Size())
	for _, hue := range p.Hues() {
		for i, text := range p.Colours(hue) {
			c, err := colour.Parse(text)
			if err != nil {
				logger.Debug("skipping unparseable colour", "hue", hue, "index", i, "error", err)
			}
			entries = append(entries, entry{
				text:   text,
				hue:    hue,
				index:  i,
				colour: c,
				valid:  err == nil,
			})
		}
	}
	return entries
}
