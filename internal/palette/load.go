package palette

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// paletteFile is the on-disk TOML layout:
//
//	name = "brand"
//	description = "..."
//
//	[hues]
//	gray = ["#fcfcfc", "#f9f9f9", ...]
//	blue = ["#fbfdff", ...]
type paletteFile struct {
	Name        string              `toml:"name"`
	Description string              `toml:"description"`
	Hues        map[string][]string `toml:"hues"`
}

// LoadFile loads a palette from a .toml or .json file. The file name
// (without extension) is used when the file does not name the palette.
func LoadFile(path string) (*Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open palette: %w", err)
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	r := newLimitedReader(f, MaxFileSize)

	var p *Palette
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		p, err = LoadTOML(r, name)
	case ".json":
		p, err = LoadJSON(r, name)
	default:
		return nil, fmt.Errorf("unsupported palette file %s (expected .toml or .json)", path)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// LoadTOML decodes a palette from TOML. Hue order follows the order the
// keys appear in the [hues] table.
func LoadTOML(r io.Reader, name string) (*Palette, error) {
	var file paletteFile
	md, err := toml.NewDecoder(r).Decode(&file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode palette: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown palette keys: %v", undecoded)
	}

	p := New(name)
	if file.Name != "" {
		p.Name = file.Name
	}
	p.Description = file.Description

	// Go maps lose key order; recover it from the decoder metadata.
	for _, key := range md.Keys() {
		if len(key) == 2 && key[0] == "hues" {
			p.Add(key[1], file.Hues[key[1]]...)
		}
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// LoadJSON decodes a palette from JSON. Both {"name": ..., "hues": {...}}
// and a bare {"hue": [...]} object are accepted. Hue order follows the
// order of the object keys.
func LoadJSON(r io.Reader, name string) (*Palette, error) {
	dec := json.NewDecoder(r)
	p := New(name)

	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}
	for dec.More() {
		key, err := objectKey(dec)
		if err != nil {
			return nil, err
		}
		switch key {
		case "name":
			if err := dec.Decode(&p.Name); err != nil {
				return nil, fmt.Errorf("failed to decode name: %w", err)
			}
		case "description":
			if err := dec.Decode(&p.Description); err != nil {
				return nil, fmt.Errorf("failed to decode description: %w", err)
			}
		case "hues":
			if err := decodeHues(dec, p); err != nil {
				return nil, err
			}
		default:
			var colours []string
			if err := dec.Decode(&colours); err != nil {
				return nil, fmt.Errorf("failed to decode hue %q: %w", key, err)
			}
			p.Add(key, colours...)
		}
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func decodeHues(dec *json.Decoder, p *Palette) error {
	if err := expectDelim(dec, '{'); err != nil {
		return fmt.Errorf("hues: %w", err)
	}
	for dec.More() {
		hue, err := objectKey(dec)
		if err != nil {
			return err
		}
		var colours []string
		if err := dec.Decode(&colours); err != nil {
			return fmt.Errorf("failed to decode hue %q: %w", hue, err)
		}
		p.Add(hue, colours...)
	}
	return expectDelim(dec, '}')
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to decode palette: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("failed to decode palette: expected %q, got %v", want, tok)
	}
	return nil
}

func objectKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", fmt.Errorf("failed to decode palette: %w", err)
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("failed to decode palette: expected key, got %v", tok)
	}
	return key, nil
}

// ToJSON serialises the palette with hues in key order.
func (p *Palette) ToJSON() ([]byte, error) {
	var b strings.Builder
	b.WriteString("{\n")
	writeField := func(key string, v any, last bool) error {
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		fmt.Fprintf(&b, "  %q: %s", key, data)
		if !last {
			b.WriteString(",")
		}
		b.WriteString("\n")
		return nil
	}
	if err := writeField("name", p.Name, false); err != nil {
		return nil, err
	}
	if err := writeField("description", p.Description, false); err != nil {
		return nil, err
	}
	b.WriteString("  \"hues\": {\n")
	for i, hue := range p.hues {
		data, err := json.Marshal(p.coloursOrEmpty(hue))
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(&b, "    %q: %s", hue, data)
		if i < len(p.hues)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("  }\n}\n")
	return []byte(b.String()), nil
}

// ToTOML serialises the palette with hues in key order.
func (p *Palette) ToTOML(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(struct {
		Name        string `toml:"name"`
		Description string `toml:"description,omitempty"`
	}{p.Name, p.Description}); err != nil {
		return fmt.Errorf("failed to encode palette: %w", err)
	}
	if _, err := fmt.Fprintln(w, "\n[hues]"); err != nil {
		return err
	}
	for _, hue := range p.hues {
		data, err := json.Marshal(p.coloursOrEmpty(hue))
		if err != nil {
			return err
		}
		// A JSON array of strings is also a valid TOML array.
		if _, err := fmt.Fprintf(w, "%s = %s\n", tomlKey(hue), data); err != nil {
			return err
		}
	}
	return nil
}

func (p *Palette) coloursOrEmpty(hue string) []string {
	if c := p.colours[hue]; c != nil {
		return c
	}
	return []string{}
}

func tomlKey(k string) string {
	if k == "" {
		return `""`
	}
	for _, r := range k {
		if !(r == '-' || r == '_' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return fmt.Sprintf("%q", k)
		}
	}
	return k
}
