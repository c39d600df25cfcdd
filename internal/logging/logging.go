// Package logging builds the hclog loggers shared by the CLI and the core packages.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// Options controls logger construction.
type Options struct {
	// Name is the logger name shown in each line.
	Name string

	// Verbose enables debug output.
	Verbose bool

	// Quiet disables all output.
	Quiet bool

	// Level overrides Verbose/Quiet when set (e.g. "trace", "info").
	Level string

	// Output defaults to os.Stderr.
	Output io.Writer

	// JSON switches to JSON formatted lines.
	JSON bool
}

// New creates a logger from the given options.
// Verbose logs at Debug, Quiet turns logging off, otherwise only warnings
// and errors are written.
func New(opts Options) hclog.Logger {
	if opts.Name == "" {
		opts.Name = "contrastkit"
	}

	level := hclog.Warn
	switch {
	case opts.Level != "":
		level = hclog.LevelFromString(strings.ToLower(opts.Level))
		if level == hclog.NoLevel {
			level = hclog.Warn
		}
	case opts.Quiet:
		level = hclog.Off
	case opts.Verbose:
		level = hclog.Debug
	}

	output := opts.Output
	if output == nil {
		output = os.Stderr
	}
	if level == hclog.Off {
		output = io.Discard
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:       opts.Name,
		Output:     output,
		Level:      level,
		JSONFormat: opts.JSON,
	})
}

// Discard returns a logger that drops everything.
func Discard() hclog.Logger {
	return hclog.NewNullLogger()
}

// OrDiscard returns l, or a null logger when l is nil.
func OrDiscard(l hclog.Logger) hclog.Logger {
	if l == nil {
		return hclog.NewNullLogger()
	}
	return l
}
