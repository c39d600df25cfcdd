package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jmylchreest/contrastkit/internal/contrast"
	"github.com/jmylchreest/contrastkit/internal/palette"
	"github.com/jmylchreest/contrastkit/internal/schedule"
	"github.com/jmylchreest/contrastkit/internal/search"
)

// watchDebounce is how long the palette file must be quiet before a
// recompute is scheduled.
const watchDebounce = 150 * time.Millisecond

var (
	// Combos command flags
	combosSearch searchFlags
	combosFormat string
	combosGroup  bool
	combosWatch  bool
)

func newCombosCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "combos",
		Short: "Find accessible background/foreground combinations",
		Long: `Search a palette for every background/foreground pair whose contrast meets
the threshold. Pairs include a colour against itself and both orientations
of each pair.

Results are ordered by background luminance (darkest first) unless --order
is given, and the limit applies after ordering.

Examples:
  # APCA Lc 90 combinations from the default palette
  contrastkit combos

  # WCAG AA from the rgb palette, blue backgrounds only, as JSON
  contrastkit combos -p rgb -a wcag21 -t 4.5 --bg-hue blue -f json

  # Recompute whenever a palette file changes
  contrastkit combos --palette-file brand.toml --watch`,
		Args: cobra.NoArgs,
		RunE: runCombos,
	}

	combosSearch.register(cmd.Flags())
	cmd.Flags().StringVarP(&combosFormat, "format", "f", formatTable, "output format (table, json, swatch)")
	cmd.Flags().BoolVarP(&combosGroup, "group", "g", false, "group results by background hue")
	cmd.Flags().BoolVarP(&combosWatch, "watch", "w", false, "recompute when the palette file changes")
	return cmd
}

// runCombos executes the combos command.
func runCombos(cmd *cobra.Command, _ []string) error {
	if combosWatch {
		path := combosSearch.palette.file
		if path == "" && combosSearch.palette.name == "" {
			path = settings.PaletteFile
		}
		if path == "" {
			return errors.New("--watch requires a palette file")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return watchPalette(ctx, cmd.OutOrStdout(), commandLogger(cmd), path, &combosSearch, combosFormat, combosGroup)
	}

	req, err := combosSearch.resolve()
	if err != nil {
		return err
	}

	log := commandLogger(cmd)
	log.Debug("searching", "palette", req.palette.Name, "algorithm", req.algorithm, "threshold", req.threshold)
	combos := req.run()
	log.Info("search complete", "combinations", len(combos))

	return writeCombinations(cmd.OutOrStdout(), combos, req.algorithm, combosFormat, combosGroup)
}

// watchResult is the outcome of one recompute.
type watchResult struct {
	palette   string
	algorithm contrast.Algorithm
	combos    []search.Combination
	err       error
}

// watchPalette searches the palette at path, then searches again each time
// the file changes until ctx is cancelled. Recomputes run on a background
// worker; a recompute that is overtaken by a newer change is discarded.
func watchPalette(ctx context.Context, w io.Writer, log hclog.Logger, path string, flags *searchFlags, format string, group bool) error {
	path, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve palette path: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fw.Close()

	// Watch the directory so editors that replace the file are seen.
	if err := fw.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	d := schedule.New[watchResult](schedule.WithSupersede(true), schedule.WithLogger(log.Named("schedule")))

	recompute := func() {
		gen, err := d.Submit(ctx, func(context.Context) watchResult {
			p, err := palette.LoadFile(path)
			if err != nil {
				return watchResult{err: err}
			}
			req, err := flags.resolveWith(p)
			if err != nil {
				return watchResult{err: err}
			}
			return watchResult{palette: p.Name, algorithm: req.algorithm, combos: req.run()}
		})
		if err != nil {
			log.Debug("recompute not scheduled", "error", err)
			return
		}
		log.Debug("recompute scheduled", "generation", gen)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	// Results are drained until the worker closes the channel, even after a
	// write error, so Close never blocks.
	g.Go(func() error {
		var writeErr error
		for r := range d.Results() {
			if writeErr != nil {
				continue
			}
			if r.Value.err != nil {
				log.Warn("palette reload failed", "path", path, "error", r.Value.err)
				continue
			}
			fmt.Fprintf(w, "# %s: %d combinations\n", r.Value.palette, len(r.Value.combos))
			if err := writeCombinations(w, r.Value.combos, r.Value.algorithm, format, group); err != nil {
				writeErr = err
				cancel()
			}
		}
		return writeErr
	})

	g.Go(func() error {
		defer d.Close()
		recompute()

		var debounce <-chan time.Time
		for {
			select {
			case event, ok := <-fw.Events:
				if !ok {
					return nil
				}
				if filepath.Clean(event.Name) != path || !event.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
					continue
				}
				debounce = time.After(watchDebounce)

			case <-debounce:
				debounce = nil
				recompute()

			case err, ok := <-fw.Errors:
				if !ok {
					return nil
				}
				log.Warn("watch error", "error", err)

			case <-gctx.Done():
				return nil
			}
		}
	})

	return g.Wait()
}
