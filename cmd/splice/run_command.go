package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"splice/internal/analysis"
	"splice/internal/ffmpeg"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var opts planOptions
	var skipAnalysis bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Build the filter graph and execute the external encoder",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.ensureLogger()
			inspector, err := ctx.inspector()
			if err != nil {
				return err
			}
			defer ctx.closeCache()

			built, err := buildCommand(cmd.Context(), cfg, inspector, opts)
			if err != nil {
				return err
			}

			if !skipAnalysis {
				report := analysis.Check(built)
				for _, h := range report.Hazards {
					logger.Warn("buffering hazard", "detail", h.String())
				}
				if cfg.Analysis.AbortOnHazard && !report.Clean() {
					return fmt.Errorf("refusing to run: %d buffering hazard(s); use --skip-analysis to override", len(report.Hazards))
				}
			}

			runner := ffmpeg.NewRunner(logger)
			result, err := runner.Run(cmd.Context(), built)
			if err != nil {
				if result.Stderr != "" {
					fmt.Fprintln(cmd.ErrOrStderr(), result.Stderr)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Completed run %s\n", result.RunID)
			return nil
		},
	}

	addPlanFlags(cmd, &opts)
	cmd.Flags().BoolVar(&skipAnalysis, "skip-analysis", false, "Run without the pre-flight buffering check")
	return cmd
}
