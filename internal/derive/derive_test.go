package derive

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/jmylchreest/contrastkit/internal/palette"
	"github.com/jmylchreest/contrastkit/internal/search"
)

// testPalette returns four hues of twelve placeholder colours each, named
// "<hue>-<index>" so results can be located easily.
func testPalette() *palette.Palette {
	p := palette.New("test")
	for _, hue := range []string{"gray", "blue", "green", "red"} {
		var colours []string
		for i := range 12 {
			colours = append(colours, fmt.Sprintf("%s-%d", hue, i))
		}
		p.Add(hue, colours...)
	}
	return p
}

func TestBorderColor(t *testing.T) {
	p := testPalette()
	p.Add("short", "short-0", "short-1")

	tests := []struct {
		name  string
		level BorderLevel
		ctx   Context
		want  string
	}{
		{name: "light end subtle steps down", level: BorderSubtle, ctx: At("blue", 10), want: "blue-9"},
		{name: "dark end strong steps up", level: BorderStrong, ctx: At("blue", 1), want: "blue-3"},
		{name: "index 3 is dark", level: BorderSubtle, ctx: At("blue", 3), want: "blue-4"},
		{name: "index 4 is light", level: BorderSubtle, ctx: At("blue", 4), want: "blue-3"},
		{name: "last index strong", level: BorderStrong, ctx: At("gray", 11), want: "gray-9"},
		{name: "clamped to last", level: BorderStrong, ctx: At("short", 1), want: "short-1"},
		{name: "no context", level: BorderSubtle, ctx: Context{}, want: "base"},
		{name: "unknown hue", level: BorderSubtle, ctx: At("purple", 2), want: "base"},
		{name: "index out of range", level: BorderSubtle, ctx: At("blue", 12), want: "base"},
		{name: "negative index", level: BorderSubtle, ctx: At("blue", -1), want: "base"},
		{name: "negative index strong", level: BorderStrong, ctx: At("blue", -1), want: "base"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BorderColor("base", tt.level, p, tt.ctx); got != tt.want {
				t.Errorf("BorderColor() = %s, want %s", got, tt.want)
			}
		})
	}

	if got := BorderColor("base", BorderSubtle, nil, At("blue", 1)); got != "base" {
		t.Errorf("BorderColor(nil palette) = %s, want base", got)
	}
}

func TestGradientEndSameHue(t *testing.T) {
	p := testPalette()

	tests := []struct {
		name string
		step int
		ctx  Context
		want string
	}{
		{name: "index at len/3 is dark", step: 2, ctx: At("green", 4), want: "green-6"},
		{name: "index past len/3 is light", step: 2, ctx: At("green", 5), want: "green-3"},
		{name: "clamped low", step: 20, ctx: At("green", 11), want: "green-0"},
		{name: "clamped high", step: 20, ctx: At("green", 0), want: "green-11"},
		{name: "no context", step: 2, ctx: Context{}, want: "base"},
		{name: "negative index", step: 2, ctx: At("green", -1), want: "base"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GradientEnd("base", tt.step, ModeSameHue, p, tt.ctx, nil); got != tt.want {
				t.Errorf("GradientEnd() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestGradientEndComplementary(t *testing.T) {
	p := testPalette()
	p.Add("purple", "purple-0", "purple-1", "purple-2", "purple-3", "purple-4", "purple-5")

	// Five hues: half is 2, so blue (1) maps to red (3).
	got := GradientEnd("base", 2, ModeComplementaryHue, p, At("blue", 6), nil)
	if got != "red-6" {
		t.Errorf("GradientEnd(complementary) = %s, want red-6", got)
	}

	// green (2) maps to purple (4), which has six entries so the index is scaled.
	if got := ComplementaryHue("green", p); got != "purple" {
		t.Errorf("ComplementaryHue(green) = %s, want purple", got)
	}
	if got := GradientEnd("base", 2, ModeComplementaryHue, p, At("green", 6), nil); got != "purple-3" {
		t.Errorf("GradientEnd(complementary, green) = %s, want purple-3", got)
	}

	// Deterministic regardless of the random source.
	for seed := range uint64(5) {
		rng := rand.New(rand.NewPCG(seed, seed))
		if again := GradientEnd("base", 2, ModeComplementaryHue, p, At("blue", 6), rng); again != "red-6" {
			t.Fatalf("complementary mode changed with seed %d: %s", seed, again)
		}
	}
}

func TestGradientEndAdjacent(t *testing.T) {
	p := testPalette()
	allowed := []string{"gray-6", "green-6"}

	seen := map[string]bool{}
	rng := rand.New(rand.NewPCG(1, 2))
	for range 50 {
		got := GradientEnd("base", 2, ModeAdjacentHue, p, At("blue", 6), rng)
		if !slices.Contains(allowed, got) {
			t.Fatalf("GradientEnd(adjacent) = %s, want one of %v", got, allowed)
		}
		seen[got] = true
	}
	if len(seen) != 2 {
		t.Errorf("expected both neighbours over 50 draws, saw %v", seen)
	}
}

func TestGradientEndRandom(t *testing.T) {
	p := testPalette()

	rng := rand.New(rand.NewPCG(7, 7))
	for range 50 {
		got := GradientEnd("base", 2, ModeRandomHue, p, At("red", 0), rng)
		if got == "red-0" || got == "base" {
			t.Fatalf("GradientEnd(random) = %s, should use another hue", got)
		}
	}

	single := palette.New("single").Add("gray", "a", "b", "c")
	if got := GradientEnd("b", 1, ModeRandomHue, single, At("gray", 1), rng); got != "b" {
		t.Errorf("GradientEnd(random, single hue) = %s, want b", got)
	}
}

func TestGradientEndSeededIsReproducible(t *testing.T) {
	p := testPalette()
	for _, mode := range ValidHueModes() {
		a := rand.New(rand.NewPCG(42, 42))
		b := rand.New(rand.NewPCG(42, 42))
		for i := range 10 {
			ga := GradientEnd("base", 2, mode, p, At("green", i), a)
			gb := GradientEnd("base", 2, mode, p, At("green", i), b)
			if ga != gb {
				t.Fatalf("%s: same seed gave %s and %s", mode, ga, gb)
			}
		}
	}
}

func TestGradientEndEmptyTarget(t *testing.T) {
	p := palette.New("gaps").Add("a", "a-0", "a-1").Add("b")
	if got := GradientEnd("a-1", 1, ModeAdjacentHue, p, At("a", 1), rand.New(rand.NewPCG(1, 1))); got != "a-1" {
		t.Errorf("GradientEnd() with empty neighbour = %s, want base", got)
	}
	if got := GradientEnd("a-1", 1, HueMode("sideways"), p, At("a", 1), nil); got != "a-1" {
		t.Errorf("GradientEnd() with unknown mode = %s, want base", got)
	}
}

func TestProportionalIndex(t *testing.T) {
	tests := []struct {
		index, src, dst int
		want            int
	}{
		{0, 12, 6, 0},
		{5, 12, 6, 3},
		{6, 12, 6, 3},
		{11, 12, 6, 5},
		{3, 6, 12, 6},
		{5, 6, 12, 10},
		{4, 12, 12, 4},
		{2, 0, 5, 0},
		{2, 5, 0, 0},
	}

	for _, tt := range tests {
		if got := ProportionalIndex(tt.index, tt.src, tt.dst); got != tt.want {
			t.Errorf("ProportionalIndex(%d, %d, %d) = %d, want %d", tt.index, tt.src, tt.dst, got, tt.want)
		}
	}
}

func TestAdjacentHue(t *testing.T) {
	p := testPalette()

	tests := []struct {
		name    string
		current string
		dir     AdjacentDirection
		want    []string
	}{
		{name: "next", current: "blue", dir: AdjacentNext, want: []string{"green"}},
		{name: "prev", current: "blue", dir: AdjacentPrev, want: []string{"gray"}},
		{name: "both", current: "blue", dir: AdjacentBoth, want: []string{"green", "gray"}},
		{name: "wraps forward", current: "red", dir: AdjacentNext, want: []string{"gray"}},
		{name: "wraps back", current: "gray", dir: AdjacentPrev, want: []string{"red"}},
		{name: "unknown", current: "teal", dir: AdjacentNext, want: []string{"teal"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AdjacentHue(tt.current, tt.dir, p); !slices.Equal(got, tt.want) {
				t.Errorf("AdjacentHue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRandomHue(t *testing.T) {
	p := testPalette()
	rng := rand.New(rand.NewPCG(3, 3))
	for range 30 {
		if got := RandomHue("gray", p, rng); got == "gray" || !p.Has(got) {
			t.Fatalf("RandomHue(gray) = %s", got)
		}
	}
	if got := RandomHue("only", palette.New("x").Add("only", "#000"), rng); got != "only" {
		t.Errorf("RandomHue() with one hue = %s, want only", got)
	}
}

func TestGradient(t *testing.T) {
	p := testPalette()

	tests := []struct {
		name string
		ctx  Context
		opts GradientOptions
		want string
	}{
		{
			name: "default linear",
			ctx:  At("blue", 6),
			opts: DefaultGradientOptions(),
			want: "linear-gradient(to right, blue-6, blue-4)",
		},
		{
			name: "direction",
			ctx:  At("blue", 1),
			opts: GradientOptions{Type: GradientLinear, Direction: DirectionBottomLeft, Step: 1, Mode: ModeSameHue},
			want: "linear-gradient(to bottom left, blue-1, blue-2)",
		},
		{
			name: "radial ignores direction",
			ctx:  At("blue", 6),
			opts: GradientOptions{Type: GradientRadial, Direction: DirectionBottom, Step: 2, Mode: ModeComplementaryHue},
			want: "radial-gradient(circle, blue-6, red-6)",
		},
		{
			name: "missing context is solid",
			ctx:  Context{},
			opts: DefaultGradientOptions(),
			want: "blue-6",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := "blue-6"
			if tt.ctx.OK {
				base, _ = p.At(tt.ctx.Hue, tt.ctx.Index)
			}
			if got := Gradient(base, tt.ctx, p, tt.opts, nil); got != tt.want {
				t.Errorf("Gradient() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestFromCombination(t *testing.T) {
	c := search.Combination{Background: "blue-3", BgHue: "blue", BgIndex: 3, HasContext: true}
	if got := BorderColor(c.Background, BorderSubtle, testPalette(), FromCombination(c)); got != "blue-4" {
		t.Errorf("BorderColor(FromCombination) = %s, want blue-4", got)
	}
	if got := FromCombination(search.Combination{Background: "#fff"}); got.OK {
		t.Error("combination without context should not be OK")
	}
}

func TestParseHelpers(t *testing.T) {
	if m, err := ParseHueMode("adjacent"); err != nil || m != ModeAdjacentHue {
		t.Errorf("ParseHueMode(adjacent) = %s, %v", m, err)
	}
	if _, err := ParseHueMode("opposite"); err == nil {
		t.Error("ParseHueMode(opposite) expected error")
	}
	if d, err := ParseDirection("bottom-right"); err != nil || d != DirectionBottomRight {
		t.Errorf("ParseDirection(bottom-right) = %s, %v", d, err)
	}
	if d, err := ParseDirection("to right"); err != nil || d != DirectionRight {
		t.Errorf("ParseDirection(to right) = %s, %v", d, err)
	}
	if _, err := ParseDirection("up"); err == nil {
		t.Error("ParseDirection(up) expected error")
	}
	if g, err := ParseGradientType("Radial"); err != nil || g != GradientRadial {
		t.Errorf("ParseGradientType(Radial) = %s, %v", g, err)
	}
	if l, err := ParseBorderLevel("strong"); err != nil || l != BorderStrong {
		t.Errorf("ParseBorderLevel(strong) = %s, %v", l, err)
	}
	if _, err := ParseBorderLevel("bold"); err == nil {
		t.Error("ParseBorderLevel(bold) expected error")
	}
}
