package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"tidy/internal/config"
	"tidy/internal/orchestrator"
	"tidy/internal/output"
)

func newRunCommand(flags *rootFlags) *cobra.Command {
	var includeHidden bool
	var fallback string
	var keepDuplicates bool
	var dryRun bool
	var statusLevel string
	var extensions []string

	cmd := &cobra.Command{
		Use:   "run [directory...]",
		Short: "Organize pending files in the source directories",
		Long: `Scans each source directory, classifies every file by extension and
moves it into its destination subfolder. Positional directories override
the configured ones for this invocation.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrCreate(flags.configPath)
			if err != nil {
				return err
			}

			if len(args) > 0 {
				cfg.SourceDirectories = args
			}
			if cmd.Flags().Changed("include-hidden") {
				cfg.IncludeHidden = includeHidden
			}
			if cmd.Flags().Changed("fallback") {
				cfg.FallbackFolder = fallback
			}
			if cmd.Flags().Changed("keep-duplicates") {
				cfg.KeepDuplicates = &keepDuplicates
			}
			if cmd.Flags().Changed("status-level") {
				cfg.StatusLevel = statusLevel
			}
			if len(extensions) > 0 {
				cfg.SetExtensions(extensions)
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			o, err := orchestrator.NewOrchestrator(cfg)
			if err != nil {
				return err
			}

			outputCfg := output.DefaultConfig()
			outputCfg.Verbose = flags.verbose
			outputCfg.StatusLevel = cfg.StatusLevel
			out := output.New(outputCfg)

			report, err := o.Run(orchestrator.RunOptions{
				DryRun:     dryRun,
				AppVersion: appVersion,
			})
			if err != nil {
				return err
			}

			printReport(out, report, flags.verbose)

			// Per-file failures exit zero; only directory-level scan errors
			// (and config errors above) are fatal.
			if n := len(report.DirectoryErrors); n > 0 {
				return fmt.Errorf("%d source directories could not be scanned", n)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&includeHidden, "include-hidden", false, "Organize hidden files too")
	cmd.Flags().StringVar(&fallback, "fallback", "", "Folder for unmapped extensions")
	cmd.Flags().BoolVar(&keepDuplicates, "keep-duplicates", true, "Rename colliding files instead of overwriting")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview decisions without moving anything")
	cmd.Flags().StringVar(&statusLevel, "status-level", "", "Which outcome lines to print: all, success or failed")
	cmd.Flags().StringArrayVar(&extensions, "ext", nil, `Extension mapping ".ext Folder" (repeatable)`)

	return cmd
}

// printReport writes per-file outcome lines and the closing summary.
func printReport(out *output.Output, report *orchestrator.RunReport, verbose bool) {
	verb := "moved"
	if report.DryRun {
		verb = "would move"
	}

	for _, dir := range report.Directories {
		out.Verbose("Organizing %s", dir.Directory)
		for _, outcome := range dir.Outcomes {
			name := filepath.Base(outcome.SourcePath)
			switch outcome.Status {
			case orchestrator.OutcomeMoved:
				if outcome.Renamed {
					out.Success("%s %s -> %s/%s", verb, name, outcome.Folder, filepath.Base(outcome.DestinationPath))
				} else {
					out.Success("%s %s -> %s", verb, name, outcome.Folder)
				}
			case orchestrator.OutcomeFailed:
				out.Failure("failed %s: %v", name, outcome.Err)
			case orchestrator.OutcomeSkipped:
				out.Verbose("skipped %s (%s)", name, outcome.SkipReason)
			}
		}
	}

	for _, dirErr := range report.DirectoryErrors {
		out.Error("error: %v", dirErr)
	}

	overview := orchestrator.GenerateOverview(report, verbose)
	label := ""
	if report.DryRun {
		label = " (dry run)"
	}
	out.Info("Processed %d files%s: %d moved, %d skipped, %d failed in %.2fs",
		overview.TotalFiles, label, overview.Moved, overview.Skipped, overview.Failed,
		overview.Duration.Seconds())

	if verbose && len(overview.ByFolder) > 0 {
		rows := make([][]string, 0, len(overview.ByFolder))
		for _, folder := range sortedKeys(overview.ByFolder) {
			rows = append(rows, []string{folder, fmt.Sprintf("%d", overview.ByFolder[folder])})
		}
		out.Info("%s", renderTable(
			[]string{"FOLDER", "FILES"},
			rows,
			[]columnAlignment{alignLeft, alignRight},
		))
	}
}
