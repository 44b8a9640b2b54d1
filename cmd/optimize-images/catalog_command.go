package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"portfolio/internal/catalog"
)

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List gallery categories and their source image counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cat, err := ctx.catalog()
			if err != nil {
				return err
			}
			categories := cat.Categories()
			if names := ctx.categories(); len(names) > 0 {
				if categories, err = cat.Select(names...); err != nil {
					return err
				}
			}

			walker := catalog.NewWalker(cfg.Paths.SourceDir)
			columns := []column{left("Category"), left("Slug"), left("Group"), left("Source"), right("Images")}
			rows := make([][]string, 0, len(categories))
			total := 0
			for _, category := range categories {
				source := "yes"
				count := "-"
				images, err := walker.Images(category)
				switch {
				case errors.Is(err, catalog.ErrCategoryMissing):
					source = "missing"
				case err != nil:
					source = "error"
				default:
					count = strconv.Itoa(len(images))
					total += len(images)
				}
				rows = append(rows, []string{category.Name, category.Slug(), category.Group, source, count})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(columns, rows, nil))
			fmt.Fprintf(out, "%d categories, %d source images under %s\n", len(categories), total, cfg.Paths.SourceDir)
			return nil
		},
	}
}
