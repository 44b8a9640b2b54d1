package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"portfolio/internal/history"
)

var errHistoryDisabled = errors.New("run history is disabled; set history.enabled = true in the config")

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect journaled pipeline runs",
	}
	historyCmd.AddCommand(newHistoryListCommand(ctx))
	historyCmd.AddCommand(newHistoryShowCommand(ctx))
	historyCmd.AddCommand(newHistoryPruneCommand(ctx))
	return historyCmd
}

func withHistory(ctx *commandContext, fn func(*history.Store) error) error {
	store, err := ctx.openHistory()
	if err != nil {
		return err
	}
	if store == nil {
		return errHistoryDisabled
	}
	defer store.Close()
	return fn(store)
}

func newHistoryListCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withHistory(ctx, func(store *history.Store) error {
				runs, err := store.List(cmd.Context(), limit)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(runs) == 0 {
					fmt.Fprintln(out, "No runs recorded")
					return nil
				}
				columns := []column{
					left("ID"), left("Origin"), left("Started"), right("Duration"),
					right("Categories"), right("Written"), right("Failed"), left("Canceled"),
				}
				rows := make([][]string, 0, len(runs))
				for _, run := range runs {
					rows = append(rows, []string{
						shortID(run.ID),
						run.Origin,
						run.Started.Local().Format(time.DateTime),
						run.Duration().Round(time.Millisecond).String(),
						strconv.Itoa(run.Categories),
						strconv.Itoa(run.Succeeded),
						strconv.Itoa(run.Failed),
						yesNo(run.Canceled),
					})
				}
				fmt.Fprintln(out, renderTable(columns, rows, nil))
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show")
	return cmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one run and its failures",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withHistory(ctx, func(store *history.Store) error {
				run, err := store.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Run:        %s\n", run.ID)
				fmt.Fprintf(out, "Origin:     %s\n", run.Origin)
				fmt.Fprintf(out, "Started:    %s\n", run.Started.Local().Format(time.DateTime))
				fmt.Fprintf(out, "Duration:   %s\n", run.Duration().Round(time.Millisecond))
				fmt.Fprintf(out, "Categories: %d (%d skipped)\n", run.Categories, run.Skipped)
				fmt.Fprintf(out, "Written:    %d\n", run.Succeeded)
				fmt.Fprintf(out, "Failed:     %d\n", run.Failed)
				fmt.Fprintf(out, "Canceled:   %s\n", yesNo(run.Canceled))
				if run.ManifestPath != "" {
					fmt.Fprintf(out, "Manifest:   %s\n", run.ManifestPath)
				}
				if len(run.Failures) == 0 {
					return nil
				}
				columns := []column{left("Category"), left("File"), left("Rendition"), left("Error")}
				rows := make([][]string, 0, len(run.Failures))
				for _, f := range run.Failures {
					rows = append(rows, []string{f.Category, f.Source, f.Rendition, f.Message})
				}
				fmt.Fprintln(out, renderTable(columns, rows, nil))
				return nil
			})
		},
	}
}

func newHistoryPruneCommand(ctx *commandContext) *cobra.Command {
	var keep int

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete all but the most recent runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if keep < 0 {
				return errors.New("--keep must be zero or positive")
			}
			return withHistory(ctx, func(store *history.Store) error {
				removed, err := store.Prune(cmd.Context(), keep)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d run(s), kept up to %d\n", removed, keep)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&keep, "keep", 50, "Number of recent runs to keep")
	return cmd
}
