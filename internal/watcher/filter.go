package watcher

import (
	"path/filepath"
	"strings"
)

// DefaultIgnorePatterns returns the patterns for in-flight files the
// watcher should never touch.
func DefaultIgnorePatterns() []string {
	return []string{
		"*.tmp",
		"*.part",
		"*.partial",
		"*.download",
		"*.crdownload", // Chrome partial downloads
		".~*",          // Editor lock files
	}
}

// FileFilter matches file names against ignore patterns.
type FileFilter struct {
	patterns []string
}

// NewFileFilter creates a FileFilter. Empty patterns select the defaults.
func NewFileFilter(patterns []string) *FileFilter {
	if len(patterns) == 0 {
		patterns = DefaultIgnorePatterns()
	}
	return &FileFilter{patterns: patterns}
}

// ShouldIgnore reports whether the path's base name matches any pattern.
// Patterns use filepath.Match glob syntax. A bare extension pattern like
// ".tmp" also matches as a case-insensitive suffix.
func (f *FileFilter) ShouldIgnore(path string) bool {
	filename := filepath.Base(path)

	for _, pattern := range f.patterns {
		if matched, err := filepath.Match(pattern, filename); err == nil && matched {
			return true
		}
		if strings.HasPrefix(pattern, ".") && !strings.Contains(pattern, "*") {
			if strings.HasSuffix(strings.ToLower(filename), strings.ToLower(pattern)) {
				return true
			}
		}
	}
	return false
}

// Patterns returns a copy of the active patterns.
func (f *FileFilter) Patterns() []string {
	result := make([]string, len(f.patterns))
	copy(result, f.patterns)
	return result
}
