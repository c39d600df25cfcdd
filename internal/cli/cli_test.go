package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jmylchreest/contrastkit/internal/config"
	"github.com/jmylchreest/contrastkit/internal/contrast"
	"github.com/jmylchreest/contrastkit/internal/search"
)

const testPalette = `name = "brand"
description = "Test palette"

[hues]
blue = ["#eff6ff", "#dbeafe", "#bfdbfe", "#93c5fd", "#60a5fa", "#3b82f6"]
green = ["#f0fdf4", "#dcfce7", "#bbf7d0", "#86efac", "#4ade80", "#22c55e"]
red = ["#fef2f2", "#fee2e2", "#fecaca", "#fca5a5", "#f87171", "#ef4444"]
`

// isolate points configuration at an empty directory and clears the
// environment overrides.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, k := range []string{config.EnvAlgorithm, config.EnvThreshold, config.EnvPalette, config.EnvLimit} {
		t.Setenv(k, "")
	}
}

// execute runs the CLI with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writePalette(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "brand.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestContrastCommand(t *testing.T) {
	isolate(t)

	out, err := execute(t, "contrast", "--format", "json", "#ffffff", "#000000")
	if err != nil {
		t.Fatalf("contrast error = %v", err)
	}

	var report pairReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if math.Abs(report.WCAG21.Value-21) > 0.01 || report.WCAG21.Rating != "AAA" {
		t.Errorf("WCAG21 = %+v", report.WCAG21)
	}
	if report.APCA.Rating != "Perfect" || report.APCA.Value < 100 {
		t.Errorf("APCA = %+v", report.APCA)
	}

	out, err = execute(t, "contrast", "#ffffff", "#000000")
	if err != nil {
		t.Fatalf("contrast error = %v", err)
	}
	if !strings.Contains(out, "AAA (21.00:1)") || !strings.Contains(out, "Perfect (108 Lc)") {
		t.Errorf("swatch output missing descriptions:\n%s", out)
	}
}

func TestContrastCommandErrors(t *testing.T) {
	isolate(t)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "bad foreground", args: []string{"contrast", "nope", "#000"}, wantErr: "invalid foreground"},
		{name: "bad background", args: []string{"contrast", "#000", "nope"}, wantErr: "invalid background"},
		{name: "bad format", args: []string{"contrast", "-f", "xml", "#000", "#fff"}, wantErr: "invalid format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestCombosCommand(t *testing.T) {
	isolate(t)

	out, err := execute(t, "combos", "-p", "grayscale", "-a", "wcag21", "-t", "4.5", "-f", "json")
	if err != nil {
		t.Fatalf("combos error = %v", err)
	}
	var combos []search.Combination
	if err := json.Unmarshal([]byte(out), &combos); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(combos) == 0 {
		t.Fatal("expected combinations")
	}
	for _, c := range combos {
		if c.Contrast < 4.5 {
			t.Errorf("%s on %s = %v, below threshold", c.Foreground, c.Background, c.Contrast)
		}
	}
	if !search.Contains(combos, "#ffffff", "#000000") {
		t.Error("expected white background with black text")
	}

	out, err = execute(t, "combos", "-p", "grayscale", "-a", "wcag21", "-t", "4.5", "-l", "3", "-f", "json")
	if err != nil {
		t.Fatalf("combos error = %v", err)
	}
	var limited []search.Combination
	if err := json.Unmarshal([]byte(out), &limited); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(limited) != 3 {
		t.Errorf("limited results = %d, want 3", len(limited))
	}
}

func TestCombosCommandTableAndGroups(t *testing.T) {
	isolate(t)
	path := writePalette(t, testPalette)

	out, err := execute(t, "combos", "--palette-file", path, "-a", "wcag21", "-t", "3")
	if err != nil {
		t.Fatalf("combos error = %v", err)
	}
	if !strings.HasPrefix(out, "Background") || !strings.Contains(out, "blue") {
		t.Errorf("table output unexpected:\n%s", out)
	}

	out, err = execute(t, "combos", "--palette-file", path, "-a", "wcag21", "-t", "3", "-g", "-f", "json")
	if err != nil {
		t.Fatalf("combos error = %v", err)
	}
	var groups []search.Group
	if err := json.Unmarshal([]byte(out), &groups); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	for _, g := range groups {
		for _, c := range g.Combinations {
			if c.BgHue != g.Hue {
				t.Errorf("group %s contains %s background", g.Hue, c.BgHue)
			}
		}
	}

	out, err = execute(t, "combos", "--palette-file", path, "-a", "wcag21", "-t", "3", "--bg-hue", "red", "--fg-hue", "blue", "-f", "json")
	if err != nil {
		t.Fatalf("combos error = %v", err)
	}
	var filtered []search.Combination
	if err := json.Unmarshal([]byte(out), &filtered); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	for _, c := range filtered {
		if c.BgHue != "red" || c.FgHue != "blue" {
			t.Errorf("filtered result %+v", c)
		}
	}

	if _, err := execute(t, "combos", "--palette-file", path, "--bg-hue", "purple"); err == nil {
		t.Error("unknown hue expected error")
	}
	if _, err := execute(t, "combos", "-p", "neon"); err == nil {
		t.Error("unknown palette expected error")
	}
	if _, err := execute(t, "combos", "--watch", "-p", "rgb"); err == nil {
		t.Error("--watch without a file expected error")
	}
}

func TestCombosUsesEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv(config.EnvAlgorithm, "wcag21")
	t.Setenv(config.EnvThreshold, "7")
	t.Setenv(config.EnvPalette, "grayscale")

	out, err := execute(t, "combos", "-f", "json")
	if err != nil {
		t.Fatalf("combos error = %v", err)
	}
	var combos []search.Combination
	if err := json.Unmarshal([]byte(out), &combos); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(combos) == 0 {
		t.Fatal("expected combinations")
	}
	for _, c := range combos {
		if c.Contrast < 7 {
			t.Errorf("contrast %v below configured threshold", c.Contrast)
		}
	}
}

func TestConfigFlag(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`shade = "dark"`), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "--config", path, "version"); err == nil || !strings.Contains(err.Error(), "unknown keys") {
		t.Errorf("error = %v, want unknown keys", err)
	}
	if _, err := execute(t, "--config", filepath.Join(t.TempDir(), "missing.toml"), "version"); err == nil {
		t.Error("missing explicit config expected error")
	}
}

func TestAlgorithmFlagsThreshold(t *testing.T) {
	tests := []struct {
		name     string
		settings config.Config
		flags    algorithmFlags
		wantAlg  contrast.Algorithm
		want     float64
	}{
		{name: "config default", settings: config.Default(), wantAlg: contrast.APCA, want: 90},
		{name: "config threshold", settings: config.Config{Algorithm: contrast.APCA, Threshold: 60}, wantAlg: contrast.APCA, want: 60},
		{name: "algorithm switch drops config threshold", settings: config.Config{Algorithm: contrast.APCA, Threshold: 60}, flags: algorithmFlags{algorithm: "wcag"}, wantAlg: contrast.WCAG21, want: 4.5},
		{name: "explicit threshold", settings: config.Default(), flags: algorithmFlags{algorithm: "wcag", threshold: 7}, wantAlg: contrast.WCAG21, want: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			saved := settings
			t.Cleanup(func() { settings = saved })
			settings = tt.settings

			alg, threshold, err := tt.flags.resolve()
			if err != nil {
				t.Fatalf("resolve() error = %v", err)
			}
			if alg != tt.wantAlg || threshold != tt.want {
				t.Errorf("resolve() = %s, %v, want %s, %v", alg, threshold, tt.wantAlg, tt.want)
			}
		})
	}
}

func TestBorderCommand(t *testing.T) {
	isolate(t)
	path := writePalette(t, testPalette)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "palette light end", args: []string{"border", "--palette-file", path, "--hue", "blue", "--index", "5", "x"}, want: "#60a5fa"},
		{name: "palette dark end strong", args: []string{"border", "--palette-file", path, "--hue", "blue", "--index", "1", "--level", "strong", "x"}, want: "#93c5fd"},
		{name: "found in palette", args: []string{"border", "--palette-file", path, "#fca5a5"}, want: "#f87171"},
		{name: "hue rotation fallback", args: []string{"border", "#000000"}, want: "#1a1a1a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			if err != nil {
				t.Fatalf("border error = %v", err)
			}
			if got := strings.TrimSpace(out); got != tt.want {
				t.Errorf("border = %s, want %s", got, tt.want)
			}
		})
	}

	if _, err := execute(t, "border", "--hue", "blue", "#000"); err == nil {
		t.Error("--hue without --index expected error")
	}
	if _, err := execute(t, "border", "--palette-file", path, "--hue", "blue", "--index", "9", "#000"); err == nil {
		t.Error("index out of range expected error")
	}
	if _, err := execute(t, "border", "nope"); err == nil {
		t.Error("invalid colour expected error")
	}
}

func TestGradientCommand(t *testing.T) {
	isolate(t)
	path := writePalette(t, testPalette)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "complementary",
			args: []string{"gradient", "--palette-file", path, "--hue", "blue", "--index", "2", "--mode", "complementary", "--direction", "bottom", "x"},
			want: "linear-gradient(to bottom, #bfdbfe, #bbf7d0)",
		},
		{
			name: "same hue radial",
			args: []string{"gradient", "--palette-file", path, "--hue", "green", "--index", "1", "--type", "radial", "x"},
			want: "radial-gradient(circle, #dcfce7, #86efac)",
		},
		{
			name: "hue shift",
			args: []string{"gradient", "--shift", "120", "#ff0000"},
			want: "linear-gradient(to right, #ff0000, #00ff00)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			if err != nil {
				t.Fatalf("gradient error = %v", err)
			}
			if got := strings.TrimSpace(out); got != tt.want {
				t.Errorf("gradient = %s, want %s", got, tt.want)
			}
		})
	}

	seeded := []string{"gradient", "--palette-file", path, "--hue", "red", "--index", "3", "--mode", "random", "--seed", "11", "x"}
	first, err := execute(t, seeded...)
	if err != nil {
		t.Fatalf("gradient error = %v", err)
	}
	second, _ := execute(t, seeded...)
	if first != second {
		t.Errorf("seeded gradients differ: %s vs %s", first, second)
	}
	if strings.Contains(first, "#fca5a5)") {
		t.Errorf("random mode should leave the red hue: %s", first)
	}

	if _, err := execute(t, "gradient", "--mode", "sideways", "#fff"); err == nil {
		t.Error("invalid mode expected error")
	}
}

func TestPalettesCommands(t *testing.T) {
	isolate(t)

	out, err := execute(t, "palettes", "list")
	if err != nil {
		t.Fatalf("palettes list error = %v", err)
	}
	for _, want := range []string{"oklab *", "rgb", "display-p3", "grayscale"} {
		if !strings.Contains(out, want) {
			t.Errorf("list missing %q:\n%s", want, out)
		}
	}

	out, err = execute(t, "palettes", "show", "grayscale", "-f", "json")
	if err != nil {
		t.Fatalf("palettes show error = %v", err)
	}
	if !strings.Contains(out, `"gray"`) || !json.Valid([]byte(out)) {
		t.Errorf("show json unexpected:\n%s", out)
	}

	path := writePalette(t, testPalette)
	out, err = execute(t, "palettes", "show", "--palette-file", path, "-f", "css")
	if err != nil {
		t.Fatalf("palettes show error = %v", err)
	}
	if !strings.Contains(out, "--red-5: #ef4444;") {
		t.Errorf("show css unexpected:\n%s", out)
	}

	out, err = execute(t, "palettes", "show", "--palette-file", path, "-f", "toml")
	if err != nil {
		t.Fatalf("palettes show error = %v", err)
	}
	if strings.Index(out, "blue") > strings.Index(out, "green") {
		t.Errorf("toml output lost hue order:\n%s", out)
	}

	if _, err := execute(t, "palettes", "show", "neon"); err == nil {
		t.Error("unknown palette expected error")
	}
}

func TestExportCommand(t *testing.T) {
	isolate(t)

	out, err := execute(t, "export", "-f", "figma", "-a", "wcag21", "--bg-hue", "navy", "#000080", "#ffffff")
	if err != nil {
		t.Fatalf("export error = %v", err)
	}
	for _, want := range []string{"Name: Navy / Foreground", "Background: #000080", "Contrast: AAA"} {
		if !strings.Contains(out, want) {
			t.Errorf("export missing %q:\n%s", want, out)
		}
	}

	if _, err := execute(t, "export", "-f", "sass", "#000", "#fff"); err == nil {
		t.Error("invalid format expected error")
	}
}

func TestSwatchCommand(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "sheet.png")

	if _, err := execute(t, "swatch", "-p", "grayscale", "-a", "wcag21", "-t", "7", "-l", "6", "--columns", "3", "-o", path); err != nil {
		t.Fatalf("swatch error = %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Errorf("swatch output is not a PNG: %v", err)
	}

	if _, err := execute(t, "swatch", "-p", "grayscale", "-a", "wcag21", "-t", "22", "-o", path); err == nil {
		t.Error("empty search expected error")
	}
}

func TestVersionCommand(t *testing.T) {
	isolate(t)
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if !strings.HasPrefix(out, "contrastkit version ") {
		t.Errorf("version = %q", out)
	}
}

// syncBuffer is a bytes.Buffer safe for concurrent use.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("timed out")
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func TestWatchPalette(t *testing.T) {
	isolate(t)
	path := writePalette(t, testPalette)
	saved := settings
	t.Cleanup(func() { settings = saved })
	settings = config.Default()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var out syncBuffer
	flags := &searchFlags{algorithmFlags: algorithmFlags{algorithm: "wcag21", threshold: 1}, limit: -1}
	done := make(chan error, 1)
	go func() {
		done <- watchPalette(ctx, &out, logger, path, flags, formatJSON, false)
	}()

	waitFor(t, func() bool { return strings.Count(out.String(), "# brand:") == 1 })

	updated := testPalette + "gray = [\"#ffffff\", \"#000000\"]\n"
	if err := os.WriteFile(path, []byte(updated), 0o600); err != nil {
		t.Fatal(err)
	}
	waitFor(t, func() bool { return strings.Contains(out.String(), "#000000") })

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("watchPalette() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watchPalette did not stop")
	}
}
