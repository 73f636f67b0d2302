package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"splice/internal/analysis"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var opts planOptions

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Build the filter graph and report buffering hazards",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			inspector, err := ctx.inspector()
			if err != nil {
				return err
			}
			defer ctx.closeCache()

			built, err := buildCommand(cmd.Context(), cfg, inspector, opts)
			if err != nil {
				return err
			}
			// Render first so structural errors surface before analysis.
			if _, err := built.Args(); err != nil {
				return err
			}

			var report analysis.Report
			if cfg.Analysis.Strict {
				if report, err = analysis.CheckStrict(built); err != nil {
					return err
				}
			} else {
				report = analysis.Check(built)
			}

			out := cmd.OutOrStdout()
			for _, skipped := range report.Skipped {
				fmt.Fprintf(out, "skipped %s: no stream metadata\n", skipped)
			}
			if report.Clean() {
				fmt.Fprintln(out, "No buffering hazards detected")
				return nil
			}

			rows := make([][]string, 0, len(report.Hazards))
			for _, h := range report.Hazards {
				rows = append(rows, []string{
					h.Stream,
					h.CodecA,
					fmt.Sprintf("%s..%s", h.SceneA.Start, h.SceneA.End()),
					h.CodecB,
					fmt.Sprintf("%s..%s", h.SceneB.Start, h.SceneB.End()),
				})
			}
			fmt.Fprintln(out, renderTable(out,
				[]string{"Stream", "Over-reader", "Needs", "Behind", "Still reading"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignRight},
			))
			return fmt.Errorf("%d buffering hazard(s) detected", len(report.Hazards))
		},
	}

	addPlanFlags(cmd, &opts)
	return cmd
}
