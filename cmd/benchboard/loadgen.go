package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/benchboard/internal/loadgen"
)

func (c *cli) loadgenCmd() *cobra.Command {
	var cfg loadgen.Config
	cmd := &cobra.Command{
		Use:   "loadgen",
		Short: "Submit generated runs to a server and verify its board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, err := loadgen.Run(cmd.Context(), &cfg, c.log)
			if stats != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "submitted %d of %d runs (%d failed), verified %d board rows\n",
					stats.Successful, stats.Generated, stats.Failed, stats.Verified)
			}
			return err
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfg.BaseURL, "url", "http://localhost:9080", "base URL of the benchboard server")
	f.IntVar(&cfg.Scores, "scores", 1000, "runs to submit")
	f.IntVar(&cfg.Players, "players", 20, "distinct player names")
	f.IntVar(&cfg.Commands, "commands", 3, "distinct commands")
	f.IntVar(&cfg.Workers, "workers", 0, "concurrent submitters (0 for twice the CPU count)")
	f.DurationVar(&cfg.Timeout, "timeout", 10*time.Second, "per-request timeout")
	f.Uint64Var(&cfg.Seed, "seed", uint64(time.Now().UnixNano()), "random seed")
	return cmd
}
