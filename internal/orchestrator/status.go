// Package orchestrator coordinates the file organization workflow for Tidy.
package orchestrator

import (
	"sort"

	"tidy/internal/classifier"
	"tidy/internal/scanner"
)

// StatusResult is a preview of what a run would do, without moving anything.
type StatusResult struct {
	BySource   map[string]*SourceStatus // Pending work per source directory
	GrandTotal int                      // Total pending files across all directories
}

// SourceStatus describes the pending files of one source directory.
type SourceStatus struct {
	Directory string              // The source directory path
	ByFolder  map[string][]string // Destination folder -> file paths headed there
	Skipped   []string            // Files that would be skipped
	Total     int                 // Files that would be moved
	Err       error               // Set when the directory could not be scanned
}

// Folders returns the destination folder names in sorted order.
func (s *SourceStatus) Folders() []string {
	folders := make([]string, 0, len(s.ByFolder))
	for folder := range s.ByFolder {
		folders = append(folders, folder)
	}
	sort.Strings(folders)
	return folders
}

// Status classifies every pending file in the configured source directories
// and groups them by destination folder. Nothing is moved and nothing is
// written to the audit log. Directories that cannot be scanned appear in
// the result with their scan error recorded.
func (o *Orchestrator) Status() (*StatusResult, error) {
	result := &StatusResult{
		BySource: make(map[string]*SourceStatus),
	}

	for _, sourceDir := range o.config.SourceDirectories {
		status := &SourceStatus{
			Directory: sourceDir,
			ByFolder:  make(map[string][]string),
		}
		result.BySource[sourceDir] = status

		files, err := scanner.Scan(sourceDir)
		if err != nil {
			status.Err = err
			continue
		}

		for _, file := range files {
			classification := classifier.Classify(file, o.extMap, classifier.Options{
				IncludeHidden: o.config.IncludeHidden,
			})
			if classification.IsSkipped() {
				status.Skipped = append(status.Skipped, file.FullPath)
				continue
			}
			status.ByFolder[classification.Folder] = append(
				status.ByFolder[classification.Folder],
				file.FullPath,
			)
			status.Total++
		}

		result.GrandTotal += status.Total
	}

	return result, nil
}

// StatusFromPath loads configuration and previews the pending work.
func StatusFromPath(configPath string) (*StatusResult, error) {
	o, err := NewOrchestratorFromPath(configPath)
	if err != nil {
		return nil, err
	}
	return o.Status()
}
