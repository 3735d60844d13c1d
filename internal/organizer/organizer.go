// Package organizer performs file moves for Tidy.
package organizer

import (
	"fmt"
	"os"
	"path/filepath"

	"tidy/internal/scanner"
)

// MoveErrorType represents the type of move error.
type MoveErrorType string

const (
	// SourceVanished indicates the source file disappeared before the move.
	SourceVanished MoveErrorType = "SOURCE_VANISHED"
	// DestinationBlocked indicates the destination folder name is occupied by a regular file.
	DestinationBlocked MoveErrorType = "DESTINATION_BLOCKED"
	// PermissionDenied indicates insufficient permissions for the operation.
	PermissionDenied MoveErrorType = "PERMISSION_DENIED"
)

// MoveError represents an error that occurred during a single file move.
// Move errors never propagate past the executor; they become FAILED results.
type MoveError struct {
	Type MoveErrorType
	Path string
	Err  error
}

func (e *MoveError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Path)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}

// TypeCode returns the failure class for the audit trail.
func (e *MoveError) TypeCode() string {
	return string(e.Type)
}

// Status is the terminal state of a move attempt.
type Status string

const (
	// StatusMoved indicates the file was moved to its destination.
	StatusMoved Status = "MOVED"
	// StatusFailed indicates the move failed; the batch continues.
	StatusFailed Status = "FAILED"
)

// Result represents the outcome of one move attempt.
type Result struct {
	Status          Status
	SourcePath      string
	DestinationPath string // Set for MOVED results
	Renamed         bool   // True if the file was renamed to avoid a collision
	OriginalName    string // Filename before collision renaming (empty if not renamed)
	Err             error  // Set for FAILED results
}

// Options configures move behavior.
type Options struct {
	// KeepDuplicates renames colliding files with a " (N)" suffix instead of
	// overwriting. Defaults to true at the configuration layer.
	KeepDuplicates bool
}

// Move places a file into sourceDir/folderName, creating the destination
// folder if needed. Destination folders are always direct children of the
// source directory, so only one level is ever created. A single move is
// attempted; any failure is captured in the result and never returned as
// an error, keeping one failing file from aborting the batch.
func Move(entry scanner.FileEntry, folderName string, sourceDir string, opts Options) *Result {
	destDir := filepath.Join(sourceDir, folderName)

	if err := ensureFolder(destDir); err != nil {
		return failed(entry, err)
	}

	if _, err := os.Stat(entry.FullPath); err != nil {
		if os.IsNotExist(err) {
			return failed(entry, &MoveError{Type: SourceVanished, Path: entry.FullPath, Err: err})
		}
		return failed(entry, err)
	}

	destName := entry.Name
	renamed := false
	if opts.KeepDuplicates && fileExists(filepath.Join(destDir, destName)) {
		destName = NextAvailableName(destDir, destName)
		renamed = true
	}
	destPath := filepath.Join(destDir, destName)

	if err := os.Rename(entry.FullPath, destPath); err != nil {
		if os.IsPermission(err) {
			return failed(entry, &MoveError{Type: PermissionDenied, Path: entry.FullPath, Err: err})
		}
		// Rename fails across filesystems; fall back to copy+delete.
		if err := copyAndDelete(entry.FullPath, destPath); err != nil {
			return failed(entry, err)
		}
	}

	result := &Result{
		Status:          StatusMoved,
		SourcePath:      entry.FullPath,
		DestinationPath: destPath,
		Renamed:         renamed,
	}
	if renamed {
		result.OriginalName = entry.Name
	}
	return result
}

func failed(entry scanner.FileEntry, err error) *Result {
	return &Result{
		Status:     StatusFailed,
		SourcePath: entry.FullPath,
		Err:        err,
	}
}

// ensureFolder creates the destination folder if it does not exist.
// Only a single level is created; a regular file occupying the name
// is reported as DestinationBlocked.
func ensureFolder(destDir string) error {
	info, err := os.Stat(destDir)
	if err == nil {
		if info.IsDir() {
			return nil
		}
		return &MoveError{
			Type: DestinationBlocked,
			Path: destDir,
			Err:  fmt.Errorf("a file named %q already exists", filepath.Base(destDir)),
		}
	}
	if !os.IsNotExist(err) {
		return err
	}

	if err := os.Mkdir(destDir, 0755); err != nil {
		if os.IsExist(err) {
			return nil // Created concurrently
		}
		if os.IsPermission(err) {
			return &MoveError{Type: PermissionDenied, Path: destDir, Err: err}
		}
		return err
	}
	return nil
}

// copyAndDelete copies a file to a new location and deletes the original.
// Used as a fallback when os.Rename fails (e.g., cross-device moves).
func copyAndDelete(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		if os.IsNotExist(err) {
			return &MoveError{Type: SourceVanished, Path: src, Err: err}
		}
		if os.IsPermission(err) {
			return &MoveError{Type: PermissionDenied, Path: src, Err: err}
		}
		return err
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	if err := os.WriteFile(dst, data, srcInfo.Mode()); err != nil {
		if os.IsPermission(err) {
			return &MoveError{Type: PermissionDenied, Path: dst, Err: err}
		}
		return err
	}

	if err := os.Remove(src); err != nil {
		// Keep the filesystem consistent: remove the copy we just made.
		os.Remove(dst)
		if os.IsPermission(err) {
			return &MoveError{Type: PermissionDenied, Path: src, Err: err}
		}
		return err
	}

	return nil
}
