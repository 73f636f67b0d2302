package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func addPlanFlags(cmd *cobra.Command, opts *planOptions) {
	cmd.Flags().StringArrayVarP(&opts.Inputs, "input", "i", nil, "Input media file (repeatable; several inputs are concatenated)")
	cmd.Flags().StringArrayVarP(&opts.Outputs, "output", "o", nil, "Output file, optionally with size and bitrate: out.mp4=1280x720@4000000 (repeatable)")
	cmd.Flags().StringVar(&opts.Trim, "trim", "", "Keep only the start:end window, e.g. 10:35.5")
	cmd.Flags().StringVar(&opts.VCodec, "vcodec", "libx264", "Video encoder name")
	cmd.Flags().StringVar(&opts.ACodec, "acodec", "aac", "Audio encoder name")
	cmd.Flags().BoolVar(&opts.NoAudio, "no-audio", false, "Drop audio streams entirely")
	cmd.Flags().BoolVar(&opts.NoProbe, "no-probe", false, "Skip probing; build the graph with unknown stream metadata")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")
}

func newPlanCommand(ctx *commandContext) *cobra.Command {
	var opts planOptions

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Build the filter graph and print the command line without running it",
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
			argv, err := built.Args()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(argv, " "))
			return nil
		},
	}

	addPlanFlags(cmd, &opts)
	return cmd
}
