package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"portfolio/internal/history"
	"portfolio/internal/watch"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var skipInitial bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-run the pipeline whenever source images change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			store, err := ctx.openHistory()
			if err != nil {
				return err
			}
			if store != nil {
				defer store.Close()
			}

			out := cmd.OutOrStdout()
			runOnce := newWatchRun(ctx, logger, store, out)

			watchCtx := cmd.Context()
			if !skipInitial {
				if err := runOnce(watchCtx, nil); err != nil {
					return err
				}
			}

			debounce := time.Duration(cfg.Watch.DebounceMillis) * time.Millisecond
			w, err := watch.New(cfg.Paths.SourceDir, debounce, runOnce, logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Watching %s (%d directories, debounce %s)\n", cfg.Paths.SourceDir, len(w.WatchList()), debounce)

			if err := w.Run(watchCtx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&skipInitial, "skip-initial", false, "Wait for the first change instead of running immediately")
	return cmd
}

// newWatchRun builds a fresh runner for every triggered run so categories
// discovered after the watch started are picked up.
func newWatchRun(ctx *commandContext, logger *slog.Logger, store *history.Store, out io.Writer) watch.RunFunc {
	return func(runCtx context.Context, _ []string) error {
		runner, err := newRunner(ctx, logger, store, history.OriginWatch, false)
		if err != nil {
			return err
		}
		report, err := runner.Run(runCtx)
		if err != nil {
			return err
		}
		writeReport(out, report)
		return nil
	}
}
