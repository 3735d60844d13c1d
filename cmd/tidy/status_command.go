package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"tidy/internal/orchestrator"
)

func newStatusCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Preview pending files grouped by destination",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := orchestrator.StatusFromPath(flags.configPath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			dirs := make([]string, 0, len(result.BySource))
			for dir := range result.BySource {
				dirs = append(dirs, dir)
			}
			sort.Strings(dirs)

			var rows [][]string
			for _, dir := range dirs {
				status := result.BySource[dir]
				if status.Err != nil {
					rows = append(rows, []string{dir, "(unreadable)", "-"})
					fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", status.Err)
					continue
				}
				for _, folder := range status.Folders() {
					rows = append(rows, []string{
						dir,
						folder,
						fmt.Sprintf("%d", len(status.ByFolder[folder])),
					})
				}
				if n := len(status.Skipped); n > 0 {
					rows = append(rows, []string{dir, "(skipped)", fmt.Sprintf("%d", n)})
				}
			}

			if len(rows) == 0 {
				fmt.Fprintln(out, "Nothing to organize")
				return nil
			}

			fmt.Fprintln(out, renderTable(
				[]string{"DIRECTORY", "FOLDER", "FILES"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight},
			))
			fmt.Fprintf(out, "%d files pending\n", result.GrandTotal)
			return nil
		},
	}
}
