package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/contrastkit/internal/contrast"
	"github.com/jmylchreest/contrastkit/internal/export"
	"github.com/jmylchreest/contrastkit/internal/palette"
	"github.com/jmylchreest/contrastkit/internal/render"
)

var (
	// Palettes show flags
	palettesShowFile   string
	palettesShowFormat string
)

func newPalettesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "palettes",
		Short: "List and show palettes",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the built-in palettes",
		Args:  cobra.NoArgs,
		RunE:  runPalettesList,
	}

	showCmd := &cobra.Command{
		Use:   "show [name]",
		Short: "Show a palette",
		Long: `Show a built-in palette, or a palette file with --palette-file.

Formats:
  swatch  colour blocks per hue (default)
  json    ordered JSON object
  toml    TOML with a [hues] table
  css     CSS custom properties named --<hue>-<index>`,
		Args: cobra.MaximumNArgs(1),
		RunE: runPalettesShow,
	}
	showCmd.Flags().StringVar(&palettesShowFile, "palette-file", "", "palette file (.toml or .json)")
	showCmd.Flags().StringVarP(&palettesShowFormat, "format", "f", formatSwatch, "output format (swatch, json, toml, css)")

	cmd.AddCommand(listCmd, showCmd)
	return cmd
}

// runPalettesList executes the palettes list command.
func runPalettesList(cmd *cobra.Command, _ []string) error {
	table := NewTable([]string{"Name", "Hues", "Colours", "Description"})
	table.AlignRight(1)
	table.AlignRight(2)
	table.SetColumnMaxWidth(3, 60)

	for _, name := range palette.Names() {
		p, err := palette.Builtin(name)
		if err != nil {
			return err
		}
		display := name
		if name == settings.Palette && settings.PaletteFile == "" {
			display += " *"
		}
		table.AddRow([]string{display, fmt.Sprint(p.Len()), fmt.Sprint(p.Size()), p.Description})
	}

	_, err := fmt.Fprint(cmd.OutOrStdout(), table.Render())
	return err
}

// runPalettesShow executes the palettes show command.
func runPalettesShow(cmd *cobra.Command, args []string) error {
	var (
		p   *palette.Palette
		err error
	)
	switch {
	case palettesShowFile != "":
		p, err = palette.LoadFile(palettesShowFile)
	case len(args) == 1:
		p, err = palette.Builtin(args[0])
	default:
		p, err = palette.Resolve(settings.Palette, settings.PaletteFile)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch palettesShowFormat {
	case formatSwatch:
		fmt.Fprintf(out, "%s: %s\n\n", p.Name, p.Description)
		_, err = fmt.Fprint(out, render.NewTerminal(out, contrast.WCAG21).Palette(p))
		return err
	case formatJSON:
		data, err := p.ToJSON()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	case "toml":
		return p.ToTOML(out)
	case "css":
		data, err := export.RenderPalette(p)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	default:
		return fmt.Errorf("invalid format: %s (valid formats: swatch, json, toml, css)", palettesShowFormat)
	}
}
