package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"portfolio/internal/history"
	"portfolio/internal/pipeline"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Derive renditions for every catalog category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, ctx, dryRun)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Plan renditions without writing anything")
	return cmd
}

func runPipeline(cmd *cobra.Command, ctx *commandContext, dryRun bool) error {
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

	runner, err := newRunner(ctx, logger, store, history.OriginRun, dryRun)
	if err != nil {
		return err
	}

	report, err := runner.Run(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if dryRun {
		writePlan(out, report)
	} else {
		writeReport(out, report)
	}
	if report.Canceled {
		return context.Canceled
	}
	return nil
}

func newRunner(ctx *commandContext, logger *slog.Logger, store *history.Store, origin string, dryRun bool) (*pipeline.Runner, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	cat, err := ctx.catalog()
	if err != nil {
		return nil, err
	}
	opts := pipeline.Options{
		Config:     cfg,
		Catalog:    cat,
		Categories: ctx.categories(),
		Logger:     logger,
		Origin:     origin,
		DryRun:     dryRun,
	}
	if store != nil {
		opts.Journal = store
	}
	return pipeline.New(opts)
}

func writeReport(out io.Writer, report pipeline.Report) {
	columns := []column{left("Category"), left("Status"), right("Images"), right("Written"), right("Failed"), left("Hero")}
	rows := make([][]string, 0, len(report.Categories))
	for _, c := range report.Categories {
		rows = append(rows, []string{
			c.Category.Name,
			string(c.Status),
			strconv.Itoa(c.Images),
			strconv.Itoa(c.Succeeded),
			strconv.Itoa(c.Failed),
			c.Hero,
		})
	}
	footer := []string{"Total", "", "", strconv.Itoa(report.Succeeded), strconv.Itoa(report.Failed), ""}
	fmt.Fprintln(out, renderTable(columns, rows, footer))

	if len(report.Failures) > 0 {
		fmt.Fprintln(out, "Failures:")
		for _, f := range report.Failures {
			if f.Rendition == "" {
				fmt.Fprintf(out, "  %s/%s: %v\n", f.Category, f.Source, f.Err)
				continue
			}
			fmt.Fprintf(out, "  %s/%s (%s): %v\n", f.Category, f.Source, f.Rendition, f.Err)
		}
	}
	if report.ManifestPath != "" {
		fmt.Fprintf(out, "Manifest: %s\n", report.ManifestPath)
	}

	summary := fmt.Sprintf("Run %s: %d written, %d failed, %d categories skipped in %s",
		shortID(report.RunID), report.Succeeded, report.Failed, report.Skipped, report.Duration().Round(time.Millisecond))
	if report.Canceled {
		summary += " (canceled)"
	}
	fmt.Fprintln(out, summary)
}

func writePlan(out io.Writer, report pipeline.Report) {
	columns := []column{left("Category"), left("Status"), right("Images"), right("Jobs"), left("Hero"), left("Rule")}
	rows := make([][]string, 0, len(report.Categories))
	var unsafe, collisions []string
	for _, c := range report.Categories {
		rows = append(rows, []string{
			c.Category.Name,
			string(c.Status),
			strconv.Itoa(c.Images),
			strconv.Itoa(c.Jobs),
			c.Hero,
			c.HeroRule,
		})
		for _, name := range c.UnsafeNames {
			unsafe = append(unsafe, c.Category.Name+"/"+name)
		}
		for _, name := range c.Collisions {
			collisions = append(collisions, c.Category.Name+"/"+name)
		}
	}
	fmt.Fprintln(out, renderTable(columns, rows, []string{"Total", "", "", strconv.Itoa(report.Planned), "", ""}))
	if len(unsafe) > 0 {
		fmt.Fprintf(out, "Names needing URL encoding: %s\n", strings.Join(unsafe, ", "))
	}
	if len(collisions) > 0 {
		fmt.Fprintf(out, "Skipped, base name already used: %s\n", strings.Join(collisions, ", "))
	}
	fmt.Fprintf(out, "Planned %d renditions across %d categories (%d skipped)\n",
		report.Planned, len(report.Categories), report.Skipped)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
