package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/contrastkit/internal/colour"
	"github.com/jmylchreest/contrastkit/internal/contrast"
	"github.com/jmylchreest/contrastkit/internal/render"
)

var contrastFormat string

func newContrastCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contrast <foreground> <background>",
		Short: "Measure the contrast of a colour pair",
		Long: `Measure the contrast of a foreground colour on a background colour with
both WCAG 2.1 and APCA.

Colours may be hex, rgb(), hsl(), oklab(), oklch(), color(display-p3 ...) or
a CSS colour name.

Examples:
  # Contrast of white text on navy
  contrastkit contrast '#ffffff' navy

  # As JSON
  contrastkit contrast --format json 'oklch(0.9 0.05 250)' '#1e3a8a'`,
		Args: cobra.ExactArgs(2),
		RunE: runContrast,
	}
	cmd.Flags().StringVarP(&contrastFormat, "format", "f", formatSwatch, "output format (swatch, json)")
	return cmd
}

// pairReport is the JSON form of a contrast measurement.
type pairReport struct {
	Foreground string       `json:"foreground"`
	Background string       `json:"background"`
	WCAG21     metricReport `json:"wcag21"`
	APCA       metricReport `json:"apca"`
}

type metricReport struct {
	Value  float64 `json:"value"`
	Rating string  `json:"rating"`
	Text   string  `json:"text"`
}

func measure(value float64, alg contrast.Algorithm) metricReport {
	return metricReport{
		Value:  value,
		Rating: contrast.Classify(value, alg),
		Text:   contrast.Describe(value, alg),
	}
}

// runContrast executes the contrast command.
func runContrast(cmd *cobra.Command, args []string) error {
	fg, bg := args[0], args[1]
	if _, err := colour.Parse(fg); err != nil {
		return fmt.Errorf("invalid foreground: %w", err)
	}
	if _, err := colour.Parse(bg); err != nil {
		return fmt.Errorf("invalid background: %w", err)
	}

	out := cmd.OutOrStdout()
	switch contrastFormat {
	case formatJSON:
		return writeJSON(out, pairReport{
			Foreground: fg,
			Background: bg,
			WCAG21:     measure(contrast.Contrast(fg, bg, contrast.WCAG21), contrast.WCAG21),
			APCA:       measure(contrast.Contrast(fg, bg, contrast.APCA), contrast.APCA),
		})
	case formatSwatch:
		_, err := fmt.Fprint(out, render.NewTerminal(out, settings.Algorithm).Pair(fg, bg))
		return err
	default:
		return fmt.Errorf("invalid format: %s (valid formats: %s, %s)", contrastFormat, formatSwatch, formatJSON)
	}
}
