package palette

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jmylchreest/contrastkit/internal/colour"
)

func TestAddPreservesOrder(t *testing.T) {
	p := New("test").
		Add("zinc", "#fafafa").
		Add("amber", "#fef3c7").
		Add("blue", "#dbeafe").
		Add("zinc", "#18181b")

	if diff := cmp.Diff([]string{"zinc", "amber", "blue"}, p.Hues()); diff != "" {
		t.Errorf("Hues() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"#fafafa", "#18181b"}, p.Colours("zinc")); diff != "" {
		t.Errorf("Colours(zinc) mismatch (-want +got):\n%s", diff)
	}
	if p.Len() != 3 || p.Size() != 4 {
		t.Errorf("Len() = %d, Size() = %d, want 3, 4", p.Len(), p.Size())
	}
}

func TestFindAndAt(t *testing.T) {
	p := New("test").Add("a", "#111", "#222").Add("b", "#222", "#333")

	hue, idx, ok := p.Find("#222")
	if !ok || hue != "a" || idx != 1 {
		t.Errorf("Find(#222) = %s, %d, %v, want a, 1, true", hue, idx, ok)
	}
	if _, _, ok := p.Find("#999"); ok {
		t.Error("Find(#999) should not be found")
	}
	if c, ok := p.At("b", 1); !ok || c != "#333" {
		t.Errorf("At(b, 1) = %s, %v", c, ok)
	}
	if _, ok := p.At("b", 2); ok {
		t.Error("At(b, 2) should be out of range")
	}
	if _, ok := p.At("missing", 0); ok {
		t.Error("At(missing, 0) should fail")
	}
}

func TestLoadTOMLKeyOrder(t *testing.T) {
	input := `
name = "brand"
description = "Brand colours"

[hues]
zinc = ["#fafafa", "#18181b"]
amber = ["#fef3c7", "#78350f"]
blue = ["#dbeafe", "#1e3a8a"]
`
	p, err := LoadTOML(strings.NewReader(input), "fallback")
	if err != nil {
		t.Fatalf("LoadTOML() error = %v", err)
	}
	if p.Name != "brand" || p.Description != "Brand colours" {
		t.Errorf("Name/Description = %q/%q", p.Name, p.Description)
	}
	if diff := cmp.Diff([]string{"zinc", "amber", "blue"}, p.Hues()); diff != "" {
		t.Errorf("Hues() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadTOMLErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "empty", input: `name = "x"`, wantErr: ErrEmptyPalette},
		{name: "unknown key", input: "colours = 1\n[hues]\na = [\"#000\"]"},
		{name: "bad syntax", input: "[hues\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTOML(strings.NewReader(tt.input), "x")
			if err == nil {
				t.Fatal("LoadTOML() expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("LoadTOML() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantName string
		wantHues []string
	}{
		{
			name:     "wrapped",
			input:    `{"name": "brand", "hues": {"zinc": ["#fafafa"], "amber": ["#fef3c7"], "blue": ["#dbeafe"]}}`,
			wantName: "brand",
			wantHues: []string{"zinc", "amber", "blue"},
		},
		{
			name:     "bare hue map",
			input:    `{"red": ["#fee2e2", "#7f1d1d"], "gray": ["#f9fafb", "#111827"]}`,
			wantName: "fallback",
			wantHues: []string{"red", "gray"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := LoadJSON(strings.NewReader(tt.input), "fallback")
			if err != nil {
				t.Fatalf("LoadJSON() error = %v", err)
			}
			if p.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", p.Name, tt.wantName)
			}
			if diff := cmp.Diff(tt.wantHues, p.Hues()); diff != "" {
				t.Errorf("Hues() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadJSONErrors(t *testing.T) {
	for _, input := range []string{`[]`, `{"red": "#fff"}`, `{}`, `{"hues": []}`, `{"red": ["#fff"]`} {
		if _, err := LoadJSON(strings.NewReader(input), "x"); err == nil {
			t.Errorf("LoadJSON(%s) expected error", input)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	orig := New("brand").Add("zinc", "#fafafa", "#18181b").Add("amber", "oklch(0.9 0.1 80)")
	orig.Description = "Brand colours"

	data, err := orig.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}
	fromJSON, err := LoadJSON(bytes.NewReader(data), "x")
	if err != nil {
		t.Fatalf("LoadJSON(ToJSON()) error = %v\n%s", err, data)
	}

	var buf bytes.Buffer
	if err := orig.ToTOML(&buf); err != nil {
		t.Fatalf("ToTOML() error = %v", err)
	}
	fromTOML, err := LoadTOML(&buf, "x")
	if err != nil {
		t.Fatalf("LoadTOML(ToTOML()) error = %v", err)
	}

	for name, got := range map[string]*Palette{"json": fromJSON, "toml": fromTOML} {
		if got.Name != orig.Name || got.Description != orig.Description {
			t.Errorf("%s: Name/Description = %q/%q", name, got.Name, got.Description)
		}
		if diff := cmp.Diff(orig.Hues(), got.Hues()); diff != "" {
			t.Errorf("%s: Hues() mismatch (-want +got):\n%s", name, diff)
		}
		for _, hue := range orig.Hues() {
			if diff := cmp.Diff(orig.Colours(hue), got.Colours(hue)); diff != "" {
				t.Errorf("%s: Colours(%s) mismatch (-want +got):\n%s", name, hue, diff)
			}
		}
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	tomlPath := filepath.Join(dir, "brand.toml")
	if err := os.WriteFile(tomlPath, []byte("[hues]\nblue = [\"#dbeafe\"]\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	p, err := LoadFile(tomlPath)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if p.Name != "brand" {
		t.Errorf("Name = %q, want file name", p.Name)
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("LoadFile(missing) expected error")
	}
	yamlPath := filepath.Join(dir, "brand.yaml")
	if err := os.WriteFile(yamlPath, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(yamlPath); err == nil {
		t.Error("LoadFile(.yaml) expected error")
	}
}

func TestLoadFileTooLarge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "huge.toml")
	content := "[hues]\nblue = [\"#dbeafe\"]\n" + strings.Repeat("# padding\n", MaxFileSize/10+1)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); !errors.Is(err, ErrTooLarge) {
		t.Errorf("LoadFile() error = %v, want ErrTooLarge", err)
	}
}

func TestLimitedReader(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		max     int64
		wantErr error
	}{
		{name: "under limit", input: "abc", max: 4},
		{name: "at limit", input: "abcd", max: 4},
		{name: "over limit", input: "abcde", max: 4, wantErr: ErrTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := io.ReadAll(newLimitedReader(strings.NewReader(tt.input), tt.max))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ReadAll() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && string(got) != tt.input {
				t.Errorf("ReadAll() = %q, want %q", got, tt.input)
			}
		})
	}
}

func TestBuiltins(t *testing.T) {
	names := Names()
	for _, want := range []string{"display-p3", "grayscale", "oklab", "rgb"} {
		found := false
		for _, n := range names {
			if n == want {
				found = true
			}
		}
		if !found {
			t.Errorf("built-in palette %q missing from %v", want, names)
		}
	}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			p, err := Builtin(name)
			if err != nil {
				t.Fatalf("Builtin(%s) error = %v", name, err)
			}
			for _, hue := range p.Hues() {
				for i, c := range p.Colours(hue) {
					if !colour.IsValid(c) {
						t.Errorf("%s[%d] = %q is not a valid colour", hue, i, c)
					}
				}
			}
		})
	}
}

func TestBuiltinReturnsCopy(t *testing.T) {
	a, err := Builtin("rgb")
	if err != nil {
		t.Fatal(err)
	}
	a.Add("extra", "#000")

	b, err := Builtin("rgb")
	if err != nil {
		t.Fatal(err)
	}
	if b.Has("extra") {
		t.Error("Builtin should return an independent copy")
	}
}

func TestBuiltinUnknown(t *testing.T) {
	if _, err := Builtin("nope"); !errors.Is(err, ErrUnknownPalette) {
		t.Errorf("Builtin(nope) error = %v, want ErrUnknownPalette", err)
	}
}

func TestResolve(t *testing.T) {
	p, err := Resolve("", "")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if p.Name != DefaultName {
		t.Errorf("Resolve() = %s, want %s", p.Name, DefaultName)
	}
}
