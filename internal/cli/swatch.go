package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/contrastkit/internal/render"
)

var (
	// Swatch command flags
	swatchSearch  searchFlags
	swatchOutput  string
	swatchColumns int
)

func newSwatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "swatch",
		Short: "Write a PNG sheet of accessible combinations",
		Long: `Run the same search as combos and draw each result as a labelled cell in a
PNG image.

Examples:
  contrastkit swatch -p rgb -a wcag21 -t 7 -o aaa.png
  contrastkit swatch --bg-hue blue --limit 12 -o blue.png`,
		Args: cobra.NoArgs,
		RunE: runSwatch,
	}
	swatchSearch.register(cmd.Flags())
	cmd.Flags().StringVarP(&swatchOutput, "output", "o", "", "PNG file to write (required)")
	cmd.Flags().IntVar(&swatchColumns, "columns", render.DefaultSheetOptions().Columns, "cells per row")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

// runSwatch executes the swatch command.
func runSwatch(cmd *cobra.Command, _ []string) (err error) {
	req, err := swatchSearch.resolve()
	if err != nil {
		return err
	}
	combos := req.run()
	if len(combos) == 0 {
		return render.ErrNoCombinations
	}

	opts := render.DefaultSheetOptions()
	opts.Columns = swatchColumns
	opts.Algorithm = req.algorithm

	f, err := os.Create(swatchOutput) // #nosec G304 - User-specified output path
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", swatchOutput, err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	if err := render.WriteSheet(f, combos, opts); err != nil {
		return err
	}
	commandLogger(cmd).Info("wrote swatch sheet", "path", swatchOutput, "combinations", len(combos))
	return nil
}
