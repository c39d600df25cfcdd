package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/contrastkit/internal/colour"
	"github.com/jmylchreest/contrastkit/internal/contrast"
	"github.com/jmylchreest/contrastkit/internal/export"
)

var (
	// Export command flags
	exportFormat    string
	exportBgHue     string
	exportFgHue     string
	exportAlgorithm string
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <background> <foreground>",
		Short: "Export a colour pair as a code snippet",
		Long: `Export a background/foreground pair as a CSS, Tailwind, Figma or SwiftUI
snippet.

Examples:
  contrastkit export '#1e3a8a' '#ffffff'
  contrastkit export --format tailwind --bg-hue blue --fg-hue gray '#1e3a8a' '#f8fafc'`,
		Args: cobra.ExactArgs(2),
		RunE: runExport,
	}

	formats := make([]string, 0, len(export.ValidFormats()))
	for _, f := range export.ValidFormats() {
		formats = append(formats, string(f))
	}
	cmd.Flags().StringVarP(&exportFormat, "format", "f", string(export.FormatCSS), fmt.Sprintf("snippet format (%s)", strings.Join(formats, ", ")))
	cmd.Flags().StringVar(&exportBgHue, "bg-hue", "", "hue name used for the background variable")
	cmd.Flags().StringVar(&exportFgHue, "fg-hue", "", "hue name used for the foreground variable")
	cmd.Flags().StringVarP(&exportAlgorithm, "algorithm", "a", "", "algorithm for the contrast note (wcag21, apca)")
	return cmd
}

// runExport executes the export command.
func runExport(cmd *cobra.Command, args []string) error {
	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return err
	}

	bg, fg := args[0], args[1]
	if _, err := colour.Parse(bg); err != nil {
		return fmt.Errorf("invalid background: %w", err)
	}
	if _, err := colour.Parse(fg); err != nil {
		return fmt.Errorf("invalid foreground: %w", err)
	}

	alg := settings.Algorithm
	if exportAlgorithm != "" {
		if alg, err = contrast.ParseAlgorithm(exportAlgorithm); err != nil {
			return err
		}
	}

	data, err := export.RenderPair(format, export.Pair{
		Background: bg,
		Foreground: fg,
		BgHue:      exportBgHue,
		FgHue:      exportFgHue,
		Contrast:   contrast.Describe(contrast.Contrast(fg, bg, alg), alg),
	})
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
