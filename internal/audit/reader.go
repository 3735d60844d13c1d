// Package audit provides an append-only event log for Tidy file operations.
package audit

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
)

// AuditReader reads and parses audit events from log files.
// It handles reading across multiple rotated segments.
type AuditReader struct {
	logDir string
}

// NewAuditReader creates a new AuditReader for the given log directory.
func NewAuditReader(logDir string) *AuditReader {
	return &AuditReader{logDir: logDir}
}

// ListRuns returns all runs with summary information, oldest first.
func (r *AuditReader) ListRuns() ([]RunInfo, error) {
	events, err := r.ReadAllEvents()
	if err != nil {
		return nil, fmt.Errorf("failed to read events: %w", err)
	}

	return r.extractRunInfos(events), nil
}

// GetRun returns all events for a specific run.
func (r *AuditReader) GetRun(runID RunID) ([]AuditEvent, error) {
	events, err := r.ReadAllEvents()
	if err != nil {
		return nil, fmt.Errorf("failed to read events: %w", err)
	}

	var runEvents []AuditEvent
	for _, event := range events {
		if event.RunID == runID {
			runEvents = append(runEvents, event)
		}
	}

	if len(runEvents) == 0 {
		return nil, fmt.Errorf("run not found: %s", runID)
	}

	return runEvents, nil
}

// GetLatestRun returns the most recent run by start timestamp.
func (r *AuditReader) GetLatestRun() (*RunInfo, error) {
	runs, err := r.ListRuns()
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, fmt.Errorf("no runs found")
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].StartTime.After(runs[j].StartTime)
	})

	return &runs[0], nil
}

// ReadAllEvents reads all events from all log segments in chronological order.
func (r *AuditReader) ReadAllEvents() ([]AuditEvent, error) {
	logFiles, err := GetAllLogFiles(r.logDir)
	if err != nil {
		return nil, fmt.Errorf("failed to get log files: %w", err)
	}

	var allEvents []AuditEvent
	for _, logFile := range logFiles {
		events, err := r.readEventsFromFile(logFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read events from %s: %w", logFile, err)
		}
		allEvents = append(allEvents, events...)
	}

	return allEvents, nil
}

// readEventsFromFile reads all events from a single log file.
func (r *AuditReader) readEventsFromFile(filePath string) ([]AuditEvent, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer file.Close()

	var events []AuditEvent
	scanner := bufio.NewScanner(file)

	// Long destination paths can push lines past the default token size.
	const maxScanTokenSize = 1024 * 1024
	buf := make([]byte, maxScanTokenSize)
	scanner.Buffer(buf, maxScanTokenSize)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		event, err := UnmarshalJSONLine(line)
		if err != nil {
			return nil, fmt.Errorf("failed to parse line %d: %w", lineNum, err)
		}
		events = append(events, *event)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading log file: %w", err)
	}

	return events, nil
}

// extractRunInfos groups events by run and builds RunInfo records.
func (r *AuditReader) extractRunInfos(events []AuditEvent) []RunInfo {
	runEvents := make(map[RunID][]AuditEvent)
	for _, event := range events {
		// System events (LOG_INITIALIZED, startup rotations) have no RunID.
		if event.RunID == "" {
			continue
		}
		runEvents[event.RunID] = append(runEvents[event.RunID], event)
	}

	var runs []RunInfo
	for runID, events := range runEvents {
		runs = append(runs, r.buildRunInfo(runID, events))
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].StartTime.Before(runs[j].StartTime)
	})

	return runs
}

// buildRunInfo constructs a RunInfo from the events of a single run.
// Runs without a RUN_END event stay IN_PROGRESS, which is also how an
// interrupted run appears in the log.
func (r *AuditReader) buildRunInfo(runID RunID, events []AuditEvent) RunInfo {
	info := RunInfo{
		RunID:  runID,
		Status: RunStatusInProgress,
	}

	for _, event := range events {
		switch event.EventType {
		case EventRunStart:
			info.StartTime = event.Timestamp
			if event.Metadata != nil {
				info.AppVersion = event.Metadata["appVersion"]
			}

		case EventRunEnd:
			endTime := event.Timestamp
			info.EndTime = &endTime
			if event.Metadata != nil {
				if status, ok := event.Metadata["status"]; ok {
					info.Status = RunStatus(status)
				}
				info.Summary = summaryFromMetadata(event.Metadata)
			}

		case EventMove:
			// Counted from RUN_END metadata when present; fall back to
			// event counting for interrupted runs.
			if info.EndTime == nil {
				info.Summary.Moved++
				info.Summary.TotalFiles++
				if event.ReasonCode == ReasonDuplicateRenamed {
					info.Summary.Duplicates++
				}
			}

		case EventSkip:
			if info.EndTime == nil {
				info.Summary.Skipped++
				info.Summary.TotalFiles++
			}

		case EventError:
			if info.EndTime == nil {
				info.Summary.Failed++
				info.Summary.TotalFiles++
			}
		}
	}

	return info
}

// summaryFromMetadata parses run summary counters out of RUN_END metadata.
func summaryFromMetadata(metadata map[string]string) RunSummary {
	atoi := func(key string) int {
		n, _ := strconv.Atoi(metadata[key])
		return n
	}
	return RunSummary{
		TotalFiles: atoi("totalFiles"),
		Moved:      atoi("moved"),
		Skipped:    atoi("skipped"),
		Failed:     atoi("failed"),
		Duplicates: atoi("duplicates"),
	}
}
