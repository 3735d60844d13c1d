package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"tidy/internal/audit"
	"tidy/internal/classifier"
	"tidy/internal/config"
	"tidy/internal/organizer"
	"tidy/internal/output"
	"tidy/internal/scanner"
	"tidy/internal/watcher"
)

func newWatchCommand(flags *rootFlags) *cobra.Command {
	var includeHidden bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch source directories and organize new files as they arrive",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flags.configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("include-hidden") {
				cfg.IncludeHidden = includeHidden
			}

			m, err := cfg.BuildExtensionMap()
			if err != nil {
				return err
			}

			writer, err := audit.NewAuditWriter(*cfg.Audit)
			if err != nil {
				return err
			}
			defer writer.Close()

			runID, err := writer.StartRun(appVersion)
			if err != nil {
				return err
			}

			outputCfg := output.DefaultConfig()
			outputCfg.Verbose = flags.verbose
			outputCfg.StatusLevel = cfg.StatusLevel
			out := output.New(outputCfg)

			handler := func(path string) (watcher.Disposition, error) {
				name := filepath.Base(path)
				entry := scanner.FileEntry{
					Name:     name,
					FullPath: path,
					Hidden:   strings.HasPrefix(name, "."),
				}

				classification := classifier.Classify(entry, m, classifier.Options{
					IncludeHidden: cfg.IncludeHidden,
				})
				if classification.IsSkipped() {
					writer.WriteEvent(audit.CreateSkipEvent(runID, path, audit.ReasonCode(classification.Reason)))
					out.Verbose("skipped %s (%s)", name, classification.Reason)
					return watcher.Skipped, nil
				}

				result := organizer.Move(entry, classification.Folder, filepath.Dir(path), organizer.Options{
					KeepDuplicates: cfg.KeepDuplicatesEnabled(),
				})
				if result.Status == organizer.StatusFailed {
					writer.WriteEvent(audit.CreateErrorEvent(runID, path, "move", result.Err))
					out.Failure("failed %s: %v", name, result.Err)
					return watcher.Failed, nil
				}

				writer.WriteEvent(audit.CreateMoveEvent(runID, result.SourcePath, result.DestinationPath, classification.Folder, result.Renamed))
				out.Success("moved %s -> %s", name, classification.Folder)
				return watcher.Organized, nil
			}

			w := watcher.New(watchConfigFrom(cfg), handler)
			if err := w.Start(cfg.SourceDirectories); err != nil {
				writer.EndRun(runID, audit.RunStatusFailed, audit.RunSummary{})
				return err
			}

			out.Info("Watching %d directories; press Ctrl-C to stop", len(cfg.SourceDirectories))

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
			<-sig

			summary := w.Stop()
			writer.EndRun(runID, audit.RunStatusCompleted, audit.RunSummary{
				TotalFiles: summary.Organized + summary.Skipped + summary.Failed,
				Moved:      summary.Organized,
				Skipped:    summary.Skipped,
				Failed:     summary.Failed,
			})

			out.Info("Watched for %s: %d organized, %d skipped, %d failed",
				summary.Duration.Round(time.Second), summary.Organized, summary.Skipped, summary.Failed)
			return nil
		},
	}

	cmd.Flags().BoolVar(&includeHidden, "include-hidden", false, "Organize hidden files too")

	return cmd
}

// watchConfigFrom maps the config file's watch settings onto the watcher
// defaults.
func watchConfigFrom(cfg *config.Configuration) *watcher.WatchConfig {
	watchCfg := watcher.DefaultWatchConfig()
	if cfg.Watch == nil {
		return watchCfg
	}
	if cfg.Watch.DebounceSeconds > 0 {
		watchCfg.Debounce = time.Duration(cfg.Watch.DebounceSeconds) * time.Second
	}
	if cfg.Watch.StableThresholdMs > 0 {
		watchCfg.StableThreshold = time.Duration(cfg.Watch.StableThresholdMs) * time.Millisecond
	}
	if len(cfg.Watch.IgnorePatterns) > 0 {
		watchCfg.IgnorePatterns = cfg.Watch.IgnorePatterns
	}
	return watchCfg
}
