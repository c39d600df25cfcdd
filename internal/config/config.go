// Package config resolves contrastkit defaults from a TOML file and the
// environment. Command line flags are applied on top by the CLI.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jmylchreest/contrastkit/internal/contrast"
	"github.com/jmylchreest/contrastkit/internal/palette"
	"github.com/jmylchreest/contrastkit/internal/search"
)

// Environment variables read by WithEnvConfig.
const (
	EnvAlgorithm = "CONTRASTKIT_ALGORITHM"
	EnvThreshold = "CONTRASTKIT_THRESHOLD"
	EnvPalette   = "CONTRASTKIT_PALETTE"
	EnvLimit     = "CONTRASTKIT_LIMIT"
)

// Config holds the search defaults.
type Config struct {
	Algorithm contrast.Algorithm `toml:"algorithm"`

	// Threshold is the minimum contrast to accept. Zero selects the
	// algorithm's default.
	Threshold float64 `toml:"threshold"`

	// Palette is a built-in palette name; PaletteFile takes precedence.
	Palette     string `toml:"palette"`
	PaletteFile string `toml:"palette_file"`

	// Limit caps the number of results. Zero means unlimited.
	Limit int `toml:"limit"`

	Order search.Order `toml:"order"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		Algorithm: contrast.APCA,
		Palette:   palette.DefaultName,
		Order:     search.OrderBackground,
	}
}

// EffectiveThreshold returns Threshold, or the algorithm default when unset.
func (c Config) EffectiveThreshold() float64 {
	if c.Threshold > 0 {
		return c.Threshold
	}
	return contrast.DefaultThreshold(c.Algorithm)
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if _, err := contrast.ParseAlgorithm(string(c.Algorithm)); err != nil {
		return err
	}
	if c.Threshold < 0 {
		return fmt.Errorf("threshold must be non-negative, got %v", c.Threshold)
	}
	if c.Limit < 0 {
		return fmt.Errorf("limit must be non-negative, got %d", c.Limit)
	}
	if _, err := search.ParseOrder(string(c.Order)); err != nil {
		return err
	}
	if c.PaletteFile == "" && c.Palette != "" {
		if _, err := palette.Builtin(c.Palette); err != nil {
			return err
		}
	}
	return nil
}

// DefaultPath returns $XDG_CONFIG_HOME/contrastkit/config.toml, falling back
// to the user config directory.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		var err error
		dir, err = os.UserConfigDir()
		if err != nil {
			return ""
		}
	}
	return filepath.Join(dir, "contrastkit", "config.toml")
}

// Builder resolves a Config from its layers.
type Builder struct {
	config   Config
	path     string
	required bool
	useEnv   bool
	getenv   func(string) string
}

// NewBuilder creates a Builder starting from Default.
func NewBuilder() *Builder {
	return &Builder{
		config: Default(),
		getenv: os.Getenv,
	}
}

// WithConfig replaces the base configuration.
func (b *Builder) WithConfig(c Config) *Builder {
	b.config = c
	return b
}

// WithFile loads the TOML file at path. A missing file is ignored unless
// required is set.
func (b *Builder) WithFile(path string, required bool) *Builder {
	b.path = path
	b.required = required
	return b
}

// WithEnvConfig applies the CONTRASTKIT_* environment variables, which
// override the file.
func (b *Builder) WithEnvConfig() *Builder {
	b.useEnv = true
	return b
}

// withGetenv replaces the environment lookup.
func (b *Builder) withGetenv(fn func(string) string) *Builder {
	b.getenv = fn
	return b
}

// Build resolves and validates the configuration.
func (b *Builder) Build() (Config, error) {
	config := b.config

	if b.path != "" {
		if err := loadFile(b.path, &config); err != nil {
			if !errors.Is(err, fs.ErrNotExist) || b.required {
				return Config{}, err
			}
		}
	}

	if b.useEnv {
		if err := applyEnv(b.getenv, &config); err != nil {
			return Config{}, err
		}
	}

	alg, err := contrast.ParseAlgorithm(string(config.Algorithm))
	if err != nil {
		return Config{}, err
	}
	config.Algorithm = alg

	if config.Order == "" {
		config.Order = search.OrderBackground
	}
	order, err := search.ParseOrder(string(config.Order))
	if err != nil {
		return Config{}, err
	}
	config.Order = order

	if err := config.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

func loadFile(path string, config *Config) error {
	md, err := toml.DecodeFile(path, config)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return fmt.Errorf("failed to load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown keys in config %s: %v", path, undecoded)
	}
	if config.PaletteFile != "" && !filepath.IsAbs(config.PaletteFile) {
		config.PaletteFile = filepath.Join(filepath.Dir(path), config.PaletteFile)
	}
	return nil
}

func applyEnv(getenv func(string) string, config *Config) error {
	if v := strings.TrimSpace(getenv(EnvAlgorithm)); v != "" {
		config.Algorithm = contrast.Algorithm(v)
	}
	if v := strings.TrimSpace(getenv(EnvThreshold)); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvThreshold, err)
		}
		config.Threshold = f
	}
	if v := strings.TrimSpace(getenv(EnvPalette)); v != "" {
		if strings.HasSuffix(v, ".toml") || strings.HasSuffix(v, ".json") {
			config.PaletteFile = v
		} else {
			config.Palette = v
			config.PaletteFile = ""
		}
	}
	if v := strings.TrimSpace(getenv(EnvLimit)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvLimit, err)
		}
		config.Limit = n
	}
	return nil
}
