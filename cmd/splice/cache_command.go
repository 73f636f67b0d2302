package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"splice/internal/probe"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Probe cache utilities",
	}

	cacheCmd.AddCommand(newCachePruneCommand(ctx))
	return cacheCmd
}

func newCachePruneCommand(ctx *commandContext) *cobra.Command {
	var olderThan time.Duration

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Remove stale probe cache entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			dir := cfg.CacheDir()
			if dir == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "Probe cache is disabled; nothing to prune")
				return nil
			}

			cache, err := probe.OpenCache(dir, ctx.ensureLogger())
			if err != nil {
				return err
			}
			defer cache.Close()

			removed, err := cache.Prune(cmd.Context(), olderThan)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cache entr(ies) older than %s\n", removed, olderThan)
			return nil
		},
	}

	cmd.Flags().DurationVar(&olderThan, "older-than", 30*24*time.Hour, "Remove entries cached earlier than this")
	return cmd
}
