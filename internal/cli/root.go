// Package cli provides the command-line interface for contrastkit.
package cli

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/contrastkit/internal/config"
	"github.com/jmylchreest/contrastkit/internal/contrast"
	"github.com/jmylchreest/contrastkit/internal/logging"
	"github.com/jmylchreest/contrastkit/internal/search"
	"github.com/jmylchreest/contrastkit/internal/version"
)

var (
	// Global flags
	globalVerbose    bool
	globalQuiet      bool
	globalConfigPath string

	// settings holds the resolved file and environment defaults.
	settings = config.Default()

	// logger is shared by all commands once the root pre-run has executed.
	logger = logging.Discard()
)

// NewRootCmd builds the command tree. Each call returns fresh commands with
// flags reset to their defaults.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "contrastkit",
		Short: "Find accessible colour combinations",
		Long: `contrastkit measures foreground/background contrast with WCAG 2.1 and APCA,
searches palettes for every combination that meets a threshold, and derives
border and gradient colours that stay within the palette.

Defaults are read from $XDG_CONFIG_HOME/contrastkit/config.toml and the
CONTRASTKIT_ALGORITHM, CONTRASTKIT_THRESHOLD, CONTRASTKIT_PALETTE and
CONTRASTKIT_LIMIT environment variables. Flags override both.`,
		Version:           version.Short(),
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	rootCmd.PersistentFlags().BoolVarP(&globalVerbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&globalQuiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&globalConfigPath, "config", "", "config file (default: $XDG_CONFIG_HOME/contrastkit/config.toml)")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newContrastCmd())
	rootCmd.AddCommand(newCombosCmd())
	rootCmd.AddCommand(newBorderCmd())
	rootCmd.AddCommand(newGradientCmd())
	rootCmd.AddCommand(newPalettesCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newSwatchCmd())

	return rootCmd
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// setup builds the logger and resolves configuration before any command runs.
func setup(cmd *cobra.Command, _ []string) error {
	logger = logging.New(logging.Options{
		Name:    "contrastkit",
		Verbose: globalVerbose,
		Quiet:   globalQuiet,
		Output:  cmd.ErrOrStderr(),
	})
	contrast.SetLogger(logger.Named("contrast"))
	search.SetLogger(logger.Named("search"))

	path, required := globalConfigPath, true
	if path == "" {
		path, required = config.DefaultPath(), false
	}

	cfg, err := config.NewBuilder().
		WithFile(path, required).
		WithEnvConfig().
		Build()
	if err != nil {
		return err
	}
	settings = cfg

	logger.Debug("resolved configuration",
		"algorithm", settings.Algorithm,
		"threshold", settings.EffectiveThreshold(),
		"palette", settings.Palette,
		"palette_file", settings.PaletteFile,
		"limit", settings.Limit,
		"order", settings.Order)
	return nil
}

// commandLogger returns the shared logger named for cmd.
func commandLogger(cmd *cobra.Command) hclog.Logger {
	return logger.Named(cmd.Name())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.String())
			return err
		},
	}
}
