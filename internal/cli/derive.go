package cli

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/contrastkit/internal/colour"
	"github.com/jmylchreest/contrastkit/internal/contrast"
	"github.com/jmylchreest/contrastkit/internal/derive"
	"github.com/jmylchreest/contrastkit/internal/palette"
	"github.com/jmylchreest/contrastkit/internal/render"
)

// contextFlags locate a colour within a palette.
type contextFlags struct {
	palette paletteFlags
	hue     string
	index   int
}

func (f *contextFlags) register(fs *pflag.FlagSet) {
	f.palette.register(fs)
	fs.StringVar(&f.hue, "hue", "", "palette hue the colour belongs to")
	fs.IntVar(&f.index, "index", -1, "index of the colour within --hue")
}

// locate returns the palette and the position of base within it. An
// explicit --hue/--index wins, otherwise base is looked up in the palette.
// A zero Context selects the hue rotation fallback.
func (f *contextFlags) locate(base string) (*palette.Palette, derive.Context, error) {
	if (f.hue == "") != (f.index < 0) {
		return nil, derive.Context{}, errors.New("--hue and --index must be given together")
	}

	p, err := f.palette.resolve()
	if err != nil {
		return nil, derive.Context{}, err
	}

	if f.hue != "" {
		if _, ok := p.At(f.hue, f.index); !ok {
			return nil, derive.Context{}, fmt.Errorf("palette %s has no colour at %s[%d]", p.Name, f.hue, f.index)
		}
		return p, derive.At(f.hue, f.index), nil
	}
	if hue, index, ok := p.Find(base); ok {
		return p, derive.At(hue, index), nil
	}
	return p, derive.Context{}, nil
}

var (
	// Border command flags
	borderContext contextFlags
	borderLevel   string
)

func newBorderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "border <colour>",
		Short: "Derive a border colour for a background",
		Long: `Derive a border colour for a background.

When the colour is located in a palette (with --hue/--index, or because it
appears in the palette verbatim) the border is a neighbouring palette entry:
dark entries (index 3 or below) step lighter, others step darker. Otherwise
the colour's lightness is adjusted directly. With --hue and --index the
palette entry is used in place of the colour argument.

Examples:
  contrastkit border --palette rgb --hue blue --index 10
  contrastkit border --level strong '#1e3a8a'`,
		Args: cobra.ExactArgs(1),
		RunE: runBorder,
	}
	borderContext.register(cmd.Flags())
	cmd.Flags().StringVar(&borderLevel, "level", string(derive.BorderSubtle), "border strength (subtle, strong)")
	return cmd
}

// runBorder executes the border command.
func runBorder(cmd *cobra.Command, args []string) error {
	base := args[0]
	level, err := derive.ParseBorderLevel(borderLevel)
	if err != nil {
		return err
	}
	p, ctx, err := borderContext.locate(base)
	if err != nil {
		return err
	}

	var border string
	if ctx.OK {
		if borderContext.hue != "" {
			base, _ = p.At(ctx.Hue, ctx.Index)
		}
		border = derive.BorderColor(base, level, p, ctx)
	} else {
		if !colour.IsValid(base) {
			return fmt.Errorf("invalid colour: %s", base)
		}
		border = derive.BorderFromColor(base, level)
	}

	commandLogger(cmd).Debug("derived border", "base", base, "border", border, "hue", ctx.Hue, "index", ctx.Index, "palette_relative", ctx.OK)
	return writeDerived(cmd.OutOrStdout(), base, border, border)
}

var (
	// Gradient command flags
	gradientContext   contextFlags
	gradientType      string
	gradientDirection string
	gradientStep      int
	gradientMode      string
	gradientSeed      uint64
	gradientShift     float64
)

func newGradientCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gradient <colour>",
		Short: "Derive a CSS gradient from a background",
		Long: `Derive a CSS gradient that starts at a background colour.

When the colour is located in a palette the end colour is chosen from the
palette using --mode:
  same-hue           step along the same hue
  adjacent-hue       the next or previous hue
  complementary-hue  the hue half way round the palette
  random-hue         any other hue

Otherwise the end colour is the start colour with its hue rotated by --shift
degrees. With --hue and --index the palette entry is used in place of the
colour argument.

Examples:
  contrastkit gradient --palette rgb --hue green --index 4 --mode adjacent --seed 7
  contrastkit gradient --type radial --shift 30 '#7c3aed'`,
		Args: cobra.ExactArgs(1),
		RunE: runGradient,
	}
	d := derive.DefaultGradientOptions()
	gradientContext.register(cmd.Flags())
	cmd.Flags().StringVar(&gradientType, "type", string(d.Type), "gradient type (linear, radial)")
	cmd.Flags().StringVar(&gradientDirection, "direction", string(d.Direction), "linear direction (right, bottom, bottom-right, bottom-left)")
	cmd.Flags().IntVar(&gradientStep, "step", d.Step, "palette steps between start and end")
	cmd.Flags().StringVar(&gradientMode, "mode", string(d.Mode), "end hue selection (same, adjacent, complementary, random)")
	cmd.Flags().Uint64Var(&gradientSeed, "seed", 0, "random seed for adjacent and random modes (0 picks one)")
	cmd.Flags().Float64Var(&gradientShift, "shift", derive.DefaultHueShift, "hue rotation in degrees when the colour is not in a palette")
	return cmd
}

// runGradient executes the gradient command.
func runGradient(cmd *cobra.Command, args []string) error {
	base := args[0]

	opts := derive.GradientOptions{Step: gradientStep}
	var err error
	if opts.Type, err = derive.ParseGradientType(gradientType); err != nil {
		return err
	}
	if opts.Direction, err = derive.ParseDirection(gradientDirection); err != nil {
		return err
	}
	if opts.Mode, err = derive.ParseHueMode(gradientMode); err != nil {
		return err
	}
	if opts.Step < 0 {
		return fmt.Errorf("step must be non-negative, got %d", opts.Step)
	}

	p, ctx, err := gradientContext.locate(base)
	if err != nil {
		return err
	}

	var css, end string
	if ctx.OK {
		if gradientContext.hue != "" {
			base, _ = p.At(ctx.Hue, ctx.Index)
		}
		var rng *rand.Rand
		if gradientSeed != 0 {
			rng = rand.New(rand.NewPCG(gradientSeed, gradientSeed))
		}
		end = derive.GradientEnd(base, opts.Step, opts.Mode, p, ctx, rng)
		css = derive.GradientCSS(opts.Type, opts.Direction, base, end)
	} else {
		if !colour.IsValid(base) {
			return fmt.Errorf("invalid colour: %s", base)
		}
		end = derive.GradientEndByHueShift(base, gradientShift)
		css = derive.HueShiftGradient(base, opts.Type, opts.Direction, gradientShift)
	}

	commandLogger(cmd).Debug("derived gradient", "base", base, "end", end, "mode", opts.Mode, "palette_relative", ctx.OK)
	return writeDerived(cmd.OutOrStdout(), base, end, css)
}

// writeDerived prints the derived value, preceded by a preview of base and
// derived colours when writing to a terminal.
func writeDerived(w io.Writer, base, derived, value string) error {
	if render.IsTerminal(w) {
		term := render.NewTerminal(w, contrast.WCAG21)
		fmt.Fprintf(w, "%s %s  %s %s\n", term.Block(base), base, term.Block(derived), derived)
	}
	_, err := fmt.Fprintln(w, value)
	return err
}
