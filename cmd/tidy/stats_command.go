package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tidy/internal/audit"
	"tidy/internal/config"
)

func newStatsCommand(flags *rootFlags) *cobra.Command {
	var since string
	var topN int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate statistics from the audit log",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrCreate(flags.configPath)
			if err != nil {
				return err
			}

			opts := audit.StatsOptions{TopN: topN}
			if since != "" {
				t, err := time.Parse("2006-01-02", since)
				if err != nil {
					return fmt.Errorf("invalid --since date %q (want YYYY-MM-DD): %w", since, err)
				}
				opts.Since = &t
			}

			stats, err := audit.AggregateStats(cfg.Audit.LogDirectory, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if stats.TotalRuns == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}

			fmt.Fprintf(out, "%d runs between %s and %s\n",
				stats.TotalRuns,
				stats.FirstRun.Local().Format("2006-01-02 15:04"),
				stats.LastRun.Local().Format("2006-01-02 15:04"))
			fmt.Fprintf(out, "%d moved, %d skipped, %d failed\n",
				stats.TotalMoved, stats.TotalSkipped, stats.TotalFailed)

			if len(stats.ByFolder) > 0 {
				rows := make([][]string, 0, len(stats.ByFolder))
				for _, folder := range sortedKeys(stats.ByFolder) {
					rows = append(rows, []string{folder, fmt.Sprintf("%d", stats.ByFolder[folder])})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"FOLDER", "FILES"},
					rows,
					[]columnAlignment{alignLeft, alignRight},
				))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&since, "since", "", "Only count runs on or after this date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&topN, "top", 0, "Show only the N busiest folders (0 = all)")

	return cmd
}
