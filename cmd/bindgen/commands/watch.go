package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/bindgen/logger"
	"github.com/teranos/bindgen/watch"
)

// WatchCmd regenerates on input changes
var WatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate when an input changes",
	Long: `Run every configured generator, then again whenever one of its inputs
changes: the Doxygen XML directory, the method docstring template, the ignore
CSV, the AST dump or the tables file. Bursts of changes are debounced
(watch.debounce_ms).

Stop with Ctrl-C.`,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	r, err := newRun(cmd)
	if err != nil {
		return err
	}
	if _, err := r.gen.All(r.cfg.Output.Dir); err != nil {
		return err
	}
	if err := r.finish(); err != nil {
		return err
	}

	// Each change reloads configuration and tables so edits to either apply.
	regenerate := func() error {
		next, err := newRun(cmd)
		if err != nil {
			return err
		}
		if _, err := next.gen.All(next.cfg.Output.Dir); err != nil {
			return err
		}
		return next.finish()
	}

	w, err := watch.New(r.gen.Inputs(), r.cfg.Debounce(), regenerate)
	if err != nil {
		return err
	}
	for _, path := range r.gen.OptionalInputs() {
		if err := w.AddOptional(path); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pterm.Info.Println("Watching inputs, press Ctrl-C to stop")
	logger.Debugw("watch started", "inputs", r.gen.Inputs())
	return w.Run(ctx)
}
