// Package orchestrator provides the summary generator for run operations.
package orchestrator

import (
	"time"
)

// Overview contains display-ready statistics for a completed run.
type Overview struct {
	TotalFiles int
	Moved      int
	Skipped    int
	Failed     int
	Duplicates int
	ScanErrors int
	Duration   time.Duration
	ByFolder   map[string]int // Per-folder move counts (only populated in verbose mode)
}

// GenerateOverview condenses a run report into display statistics.
// When verbose is true, the ByFolder map is populated with a per-folder
// breakdown of moved files.
func GenerateOverview(report *RunReport, verbose bool) *Overview {
	if report == nil {
		return &Overview{}
	}

	totals := report.Totals()
	overview := &Overview{
		TotalFiles: totals.TotalFiles,
		Moved:      totals.Moved,
		Skipped:    totals.Skipped,
		Failed:     totals.Failed,
		Duplicates: totals.Duplicates,
		ScanErrors: len(report.DirectoryErrors),
		Duration:   report.Duration,
	}

	if verbose {
		overview.ByFolder = make(map[string]int)
		for _, dir := range report.Directories {
			for _, outcome := range dir.Outcomes {
				if outcome.Status == OutcomeMoved && outcome.Folder != "" {
					overview.ByFolder[outcome.Folder]++
				}
			}
		}
	}

	return overview
}
