// Package orchestrator coordinates the file organization workflow for Tidy.
package orchestrator

import (
	"fmt"
	"time"

	"tidy/internal/audit"
	"tidy/internal/classifier"
	"tidy/internal/config"
	"tidy/internal/extmap"
	"tidy/internal/organizer"
	"tidy/internal/scanner"
)

// OutcomeStatus is the terminal state of one file in a run.
type OutcomeStatus string

const (
	// OutcomeMoved indicates the file reached its destination folder.
	OutcomeMoved OutcomeStatus = "MOVED"
	// OutcomeSkipped indicates the file was excluded from organization.
	OutcomeSkipped OutcomeStatus = "SKIPPED"
	// OutcomeFailed indicates the move was attempted and failed.
	OutcomeFailed OutcomeStatus = "FAILED"
)

// FileOutcome records what happened to a single file.
type FileOutcome struct {
	SourcePath      string
	DestinationPath string // Set for MOVED outcomes
	Folder          string // Destination folder name for MOVED outcomes
	Status          OutcomeStatus
	Renamed         bool                  // True if a collision suffix was applied
	SkipReason      classifier.SkipReason // Set for SKIPPED outcomes
	Err             error                 // Set for FAILED outcomes
}

// DirectorySummary aggregates outcomes for one source directory.
// Outcomes preserve the order files were processed in.
type DirectorySummary struct {
	Directory string
	Moved     int
	Skipped   int
	Failed    int
	Outcomes  []FileOutcome
	Duration  time.Duration
}

// TotalFiles returns the number of files processed in this directory.
func (d *DirectorySummary) TotalFiles() int {
	return d.Moved + d.Skipped + d.Failed
}

// DirectoryError records a source directory that could not be scanned.
// The run continues with the remaining directories.
type DirectoryError struct {
	Directory string
	Err       error
}

func (e *DirectoryError) Error() string {
	return fmt.Sprintf("failed to scan %s: %v", e.Directory, e.Err)
}

func (e *DirectoryError) Unwrap() error {
	return e.Err
}

// RunReport is the overall result of a run across all source directories.
type RunReport struct {
	RunID           audit.RunID // Empty for dry runs
	Directories     []DirectorySummary
	DirectoryErrors []*DirectoryError
	Duration        time.Duration
	DryRun          bool
}

// Totals sums per-directory counters into a single summary.
func (r *RunReport) Totals() audit.RunSummary {
	var summary audit.RunSummary
	for _, dir := range r.Directories {
		summary.Moved += dir.Moved
		summary.Skipped += dir.Skipped
		summary.Failed += dir.Failed
		summary.TotalFiles += dir.TotalFiles()
		for _, outcome := range dir.Outcomes {
			if outcome.Renamed {
				summary.Duplicates++
			}
		}
	}
	return summary
}

// HasFailures returns true if any file failed or any directory could not
// be scanned.
func (r *RunReport) HasFailures() bool {
	if len(r.DirectoryErrors) > 0 {
		return true
	}
	for _, dir := range r.Directories {
		if dir.Failed > 0 {
			return true
		}
	}
	return false
}

// RunOptions configures a single run.
type RunOptions struct {
	// DryRun previews decisions without touching the filesystem or the
	// audit log.
	DryRun bool
	// AppVersion is recorded in the audit trail's RUN_START event.
	AppVersion string
}

// Orchestrator wires configuration, classification and moving together.
type Orchestrator struct {
	config *config.Configuration
	extMap *extmap.Map
	writer *audit.AuditWriter
}

// NewOrchestrator creates an Orchestrator from a validated configuration.
// The extension map is built once up front so mapping errors surface
// before any filesystem access.
func NewOrchestrator(cfg *config.Configuration) (*Orchestrator, error) {
	m, err := cfg.BuildExtensionMap()
	if err != nil {
		return nil, err
	}
	return &Orchestrator{config: cfg, extMap: m}, nil
}

// NewOrchestratorFromPath creates an Orchestrator by loading configuration
// from a file.
func NewOrchestratorFromPath(configPath string) (*Orchestrator, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return NewOrchestrator(cfg)
}

// Config returns the configuration this orchestrator was built with.
func (o *Orchestrator) Config() *config.Configuration {
	return o.config
}

// Run processes every configured source directory in order. Directories
// that cannot be scanned are recorded and skipped; files that fail to
// move are recorded and do not stop the run. Run itself returns an error
// only when the audit trail cannot be opened.
func (o *Orchestrator) Run(opts RunOptions) (*RunReport, error) {
	start := time.Now()
	report := &RunReport{DryRun: opts.DryRun}

	if !opts.DryRun {
		writer, err := audit.NewAuditWriter(*o.config.Audit)
		if err != nil {
			return nil, fmt.Errorf("failed to open audit log: %w", err)
		}
		defer writer.Close()
		o.writer = writer
		defer func() { o.writer = nil }()

		runID, err := writer.StartRun(opts.AppVersion)
		if err != nil {
			return nil, fmt.Errorf("failed to start audit run: %w", err)
		}
		report.RunID = runID
	}

	for _, sourceDir := range o.config.SourceDirectories {
		files, err := scanner.Scan(sourceDir)
		if err != nil {
			report.DirectoryErrors = append(report.DirectoryErrors, &DirectoryError{
				Directory: sourceDir,
				Err:       err,
			})
			o.recordError(report.RunID, sourceDir, "scan", err)
			continue
		}

		dirStart := time.Now()
		summary := DirectorySummary{Directory: sourceDir}
		for _, file := range files {
			outcome := o.processFile(file, sourceDir, opts)
			summary.Outcomes = append(summary.Outcomes, outcome)
			switch outcome.Status {
			case OutcomeMoved:
				summary.Moved++
			case OutcomeSkipped:
				summary.Skipped++
			case OutcomeFailed:
				summary.Failed++
			}
		}
		summary.Duration = time.Since(dirStart)
		report.Directories = append(report.Directories, summary)
	}

	report.Duration = time.Since(start)

	if o.writer != nil {
		status := audit.RunStatusCompleted
		if report.HasFailures() {
			status = audit.RunStatusFailed
		}
		if err := o.writer.EndRun(report.RunID, status, report.Totals()); err != nil {
			return nil, fmt.Errorf("failed to finalize audit run: %w", err)
		}
	}

	return report, nil
}

// processFile classifies one file and, outside dry runs, moves it.
func (o *Orchestrator) processFile(file scanner.FileEntry, sourceDir string, opts RunOptions) FileOutcome {
	classification := classifier.Classify(file, o.extMap, classifier.Options{
		IncludeHidden: o.config.IncludeHidden,
	})

	if classification.IsSkipped() {
		o.recordSkip(file, classification.Reason)
		return FileOutcome{
			SourcePath: file.FullPath,
			Status:     OutcomeSkipped,
			SkipReason: classification.Reason,
		}
	}

	if opts.DryRun {
		return FileOutcome{
			SourcePath: file.FullPath,
			Folder:     classification.Folder,
			Status:     OutcomeMoved,
		}
	}

	result := organizer.Move(file, classification.Folder, sourceDir, organizer.Options{
		KeepDuplicates: o.config.KeepDuplicatesEnabled(),
	})

	if result.Status == organizer.StatusFailed {
		o.recordError(o.currentRunID(), file.FullPath, "move", result.Err)
		return FileOutcome{
			SourcePath: file.FullPath,
			Folder:     classification.Folder,
			Status:     OutcomeFailed,
			Err:        result.Err,
		}
	}

	o.recordMove(result, classification.Folder)
	return FileOutcome{
		SourcePath:      result.SourcePath,
		DestinationPath: result.DestinationPath,
		Folder:          classification.Folder,
		Status:          OutcomeMoved,
		Renamed:         result.Renamed,
	}
}

func (o *Orchestrator) currentRunID() audit.RunID {
	if o.writer == nil {
		return ""
	}
	return o.writer.CurrentRun()
}

func (o *Orchestrator) recordMove(result *organizer.Result, folder string) {
	if o.writer == nil {
		return
	}
	event := audit.CreateMoveEvent(o.currentRunID(), result.SourcePath, result.DestinationPath, folder, result.Renamed)
	o.writer.WriteEvent(event)
}

func (o *Orchestrator) recordSkip(file scanner.FileEntry, reason classifier.SkipReason) {
	if o.writer == nil {
		return
	}
	event := audit.CreateSkipEvent(o.currentRunID(), file.FullPath, skipReasonCode(reason))
	o.writer.WriteEvent(event)
}

func (o *Orchestrator) recordError(runID audit.RunID, path, operation string, err error) {
	if o.writer == nil {
		return
	}
	event := audit.CreateErrorEvent(runID, path, operation, err)
	o.writer.WriteEvent(event)
}

func skipReasonCode(reason classifier.SkipReason) audit.ReasonCode {
	switch reason {
	case classifier.HiddenFile:
		return audit.ReasonHiddenFile
	case classifier.IsDirectory:
		return audit.ReasonIsDirectory
	default:
		return audit.ReasonCode(reason)
	}
}
