// Package audit provides an append-only event log for Tidy file operations.
package audit

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"
)

// AuditStats contains aggregate metrics across all audit runs.
type AuditStats struct {
	TotalMoved   int            // Total files moved across all runs
	TotalSkipped int            // Total files skipped
	TotalFailed  int            // Total per-file failures
	TotalRuns    int            // Number of runs
	ByFolder     map[string]int // Moved files per destination folder (top N)
	FirstRun     time.Time      // Earliest run timestamp
	LastRun      time.Time      // Most recent run timestamp
}

// StatsOptions configures stats aggregation.
type StatsOptions struct {
	Since *time.Time // Filter to runs starting after this time
	TopN  int        // Number of top folders to show (0 = all)
}

// AggregateStats computes metrics across all audit logs in the given directory.
func AggregateStats(logDir string, opts StatsOptions) (*AuditStats, error) {
	reader := NewAuditReader(logDir)

	runs, err := reader.ListRuns()
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	stats := &AuditStats{
		ByFolder: make(map[string]int),
	}
	folderCounts := make(map[string]int)

	for _, run := range runs {
		if opts.Since != nil && run.StartTime.Before(*opts.Since) {
			continue
		}

		stats.TotalRuns++
		if stats.FirstRun.IsZero() || run.StartTime.Before(stats.FirstRun) {
			stats.FirstRun = run.StartTime
		}
		if stats.LastRun.IsZero() || run.StartTime.After(stats.LastRun) {
			stats.LastRun = run.StartTime
		}

		stats.TotalMoved += run.Summary.Moved
		stats.TotalSkipped += run.Summary.Skipped
		stats.TotalFailed += run.Summary.Failed

		events, err := reader.GetRun(run.RunID)
		if err != nil {
			continue
		}
		for _, event := range events {
			if event.EventType == EventMove && event.Status == StatusSuccess {
				if folder := moveEventFolder(event); folder != "" {
					folderCounts[folder]++
				}
			}
		}
	}

	stats.ByFolder = filterTopN(folderCounts, opts.TopN)
	return stats, nil
}

// moveEventFolder extracts the destination folder name from a MOVE event.
// Newer events carry the folder explicitly; older ones are derived from
// the destination path's parent directory.
func moveEventFolder(event AuditEvent) string {
	if event.Folder != "" {
		return event.Folder
	}
	if event.DestinationPath == "" {
		return ""
	}
	return filepath.Base(filepath.Dir(event.DestinationPath))
}

// filterTopN returns the top N entries from a map by value.
// If n <= 0, returns all entries.
func filterTopN(counts map[string]int, n int) map[string]int {
	if n <= 0 || len(counts) <= n {
		result := make(map[string]int, len(counts))
		for k, v := range counts {
			result[k] = v
		}
		return result
	}

	type kv struct {
		key   string
		value int
	}
	var sorted []kv
	for k, v := range counts {
		sorted = append(sorted, kv{k, v})
	}
	sort.Slice(sorted, func(i, j int) bool {
		// Sort by value descending, then by key ascending for stability.
		if sorted[i].value != sorted[j].value {
			return sorted[i].value > sorted[j].value
		}
		return sorted[i].key < sorted[j].key
	})

	result := make(map[string]int, n)
	for i := 0; i < n && i < len(sorted); i++ {
		result[sorted[i].key] = sorted[i].value
	}
	return result
}
