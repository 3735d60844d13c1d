// Package scanner handles directory enumeration for Tidy.
package scanner

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// ScanErrorType represents the type of scanning error.
type ScanErrorType string

const (
	// DirectoryNotFound indicates the source directory does not exist.
	DirectoryNotFound ScanErrorType = "DIRECTORY_NOT_FOUND"
	// NotADirectory indicates the source path exists but is not a directory.
	NotADirectory ScanErrorType = "NOT_A_DIRECTORY"
	// PermissionDenied indicates insufficient permissions to read the directory.
	PermissionDenied ScanErrorType = "PERMISSION_DENIED"
)

// ScanError represents an error that occurred during directory scanning.
// It is fatal for the directory being scanned but never for the whole process.
type ScanError struct {
	Type ScanErrorType
	Path string
	Err  error
}

func (e *ScanError) Error() string {
	return string(e.Type) + ": " + e.Path
}

func (e *ScanError) Unwrap() error {
	return e.Err
}

// TypeCode returns the failure class for the audit trail.
func (e *ScanError) TypeCode() string {
	return string(e.Type)
}

// FileEntry represents one immediate child of a scanned directory.
type FileEntry struct {
	Name     string // Base name only
	FullPath string // Absolute path
	IsDir    bool   // True for subdirectories
	Hidden   bool   // True iff the base name starts with '.'
}

// Extension returns the text after the last '.' of the base name,
// or the empty string if the name contains no dot. A leading dot
// (hidden-file marker) does not count as a separator, and neither
// does a trailing dot.
func (e FileEntry) Extension() string {
	name := strings.TrimPrefix(e.Name, ".")
	idx := strings.LastIndexByte(name, '.')
	if idx < 0 || idx == len(name)-1 {
		return ""
	}
	return name[idx+1:]
}

// Scan enumerates the immediate children of the given directory in
// filesystem-reported order. No recursion: subdirectories are returned
// as entries with IsDir set, never descended into. Symlinks are skipped.
func Scan(directory string) ([]FileEntry, error) {
	info, err := os.Stat(directory)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &ScanError{Type: DirectoryNotFound, Path: directory, Err: err}
		}
		if os.IsPermission(err) {
			return nil, &ScanError{Type: PermissionDenied, Path: directory, Err: err}
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, &ScanError{
			Type: NotADirectory,
			Path: directory,
			Err:  errors.New("path is not a directory"),
		}
	}

	dirEntries, err := os.ReadDir(directory)
	if err != nil {
		if os.IsPermission(err) {
			return nil, &ScanError{Type: PermissionDenied, Path: directory, Err: err}
		}
		return nil, err
	}

	entries := make([]FileEntry, 0, len(dirEntries))
	for _, entry := range dirEntries {
		fullPath := filepath.Join(directory, entry.Name())
		absPath, err := filepath.Abs(fullPath)
		if err != nil {
			absPath = fullPath
		}

		info, err := os.Lstat(fullPath)
		if err != nil {
			continue // Entry vanished between ReadDir and Lstat
		}
		if info.Mode()&os.ModeSymlink != 0 {
			continue
		}

		entries = append(entries, FileEntry{
			Name:     entry.Name(),
			FullPath: absPath,
			IsDir:    info.IsDir(),
			Hidden:   strings.HasPrefix(entry.Name(), "."),
		})
	}

	return entries, nil
}
