// Package config handles configuration loading and validation for Tidy.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// ValidationSeverity represents the severity of a validation issue.
type ValidationSeverity string

const (
	SeverityError   ValidationSeverity = "error"
	SeverityWarning ValidationSeverity = "warning"
)

// ConfigValidationError represents a single validation issue.
type ConfigValidationError struct {
	Field    string             // Config field with issue (e.g., "sourceDirectories[0]")
	Message  string             // Human-readable description
	Severity ValidationSeverity // "error" or "warning"
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	Errors   []ConfigValidationError
	Warnings []ConfigValidationError
	Valid    bool // True if no errors (warnings OK)
}

// ValidateConfig checks the configuration against the filesystem and
// returns all findings. Unlike Validate, these checks are advisory:
// a missing source directory is a warning here because a run skips it
// and continues, while structural problems remain errors.
func ValidateConfig(cfg *Configuration) *ValidationResult {
	result := &ValidationResult{
		Errors:   []ConfigValidationError{},
		Warnings: []ConfigValidationError{},
		Valid:    true,
	}

	if err := cfg.Validate(); err != nil {
		result.Errors = append(result.Errors, ConfigValidationError{
			Field:    "(configuration)",
			Message:  err.Error(),
			Severity: SeverityError,
		})
	}

	for _, issue := range validateSourcePaths(cfg) {
		if issue.Severity == SeverityError {
			result.Errors = append(result.Errors, issue)
		} else {
			result.Warnings = append(result.Warnings, issue)
		}
	}

	if len(cfg.ExtensionFolders) == 0 {
		result.Warnings = append(result.Warnings, ConfigValidationError{
			Field:    "extensionFolders",
			Message:  fmt.Sprintf("no extensions mapped; every file will land in %q", cfg.FallbackFolder),
			Severity: SeverityWarning,
		})
	}

	result.Valid = len(result.Errors) == 0
	return result
}

// validateSourcePaths checks that source directories exist, are
// directories, and are writable.
func validateSourcePaths(cfg *Configuration) []ConfigValidationError {
	var issues []ConfigValidationError

	for i, dir := range cfg.SourceDirectories {
		field := fmt.Sprintf("sourceDirectories[%d]", i)

		info, err := os.Stat(dir)
		if err != nil {
			if os.IsNotExist(err) {
				issues = append(issues, ConfigValidationError{
					Field:    field,
					Message:  "directory does not exist: " + dir,
					Severity: SeverityWarning,
				})
			} else if os.IsPermission(err) {
				issues = append(issues, ConfigValidationError{
					Field:    field,
					Message:  "directory is not accessible: " + dir,
					Severity: SeverityError,
				})
			} else {
				issues = append(issues, ConfigValidationError{
					Field:    field,
					Message:  "error accessing directory: " + err.Error(),
					Severity: SeverityError,
				})
			}
			continue
		}

		if !info.IsDir() {
			issues = append(issues, ConfigValidationError{
				Field:    field,
				Message:  "path is not a directory: " + dir,
				Severity: SeverityError,
			})
			continue
		}

		// Moves create destination folders inside the source directory,
		// so the source itself must be writable.
		if !isDirectoryWritable(dir) {
			issues = append(issues, ConfigValidationError{
				Field:    field,
				Message:  "directory is not writable: " + dir,
				Severity: SeverityError,
			})
		}
	}

	return issues
}

// isDirectoryWritable checks if a directory is writable by attempting to create a temp file.
func isDirectoryWritable(dir string) bool {
	testFile := filepath.Join(dir, ".tidy_write_test")
	f, err := os.Create(testFile)
	if err != nil {
		return false
	}
	f.Close()
	os.Remove(testFile)
	return true
}
