package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"portfolio/internal/preflight"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check directories, catalog and publishing endpoints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			w := newStatusWriter(cmd.OutOrStdout())

			w.section("Configuration")
			w.line(statusInfo, "Config", configSource(ctx))
			w.line(statusInfo, "Hero policy", cfg.Pipeline.HeroPolicy)
			w.line(statusInfo, "Manifest", yesNo(cfg.Pipeline.WriteManifest))
			if cfg.Publish.PublicBaseURL == "" {
				w.line(statusWarn, "Public base URL", "not configured; manifest URLs are site-relative")
			} else {
				w.line(statusInfo, "Public base URL", cfg.Publish.PublicBaseURL)
			}

			cat, catErr := ctx.catalog()
			if catErr != nil {
				w.line(statusFail, "Catalog", catErr.Error())
			} else {
				w.line(statusOK, "Catalog", fmt.Sprintf("%d categories", cat.Len()))
			}

			w.section("Checks")
			for _, result := range preflight.RunAll(cmd.Context(), cfg, cat) {
				kind := statusOK
				if !result.Passed {
					kind = statusFail
				}
				w.line(kind, result.Name, result.Detail)
			}

			if failed := w.count(statusFail); failed > 0 {
				return fmt.Errorf("%d check(s) failed", failed)
			}
			return nil
		},
	}
}
