// Package audit provides an append-only event log for Tidy file operations.
// Every run writes its outcomes as JSON lines, giving a complete history of
// what was moved where. The log records history only; it is never replayed
// to modify the filesystem.
package audit

import "time"

// RunID is a unique identifier for each program execution, in UUID v4 format.
type RunID string

// EventType represents the type of audit event.
type EventType string

const (
	// Run lifecycle events
	EventRunStart EventType = "RUN_START"
	EventRunEnd   EventType = "RUN_END"

	// File operation events
	EventMove  EventType = "MOVE"
	EventSkip  EventType = "SKIP"
	EventError EventType = "ERROR"

	// System events
	EventRotation       EventType = "ROTATION"
	EventLogInitialized EventType = "LOG_INITIALIZED"
)

// OperationStatus represents the outcome of an operation.
type OperationStatus string

const (
	StatusSuccess OperationStatus = "SUCCESS"
	StatusFailure OperationStatus = "FAILURE"
	StatusSkipped OperationStatus = "SKIPPED"
)

// ReasonCode provides the detailed reason for a skip or rename.
type ReasonCode string

const (
	// Skip reasons
	ReasonHiddenFile  ReasonCode = "HIDDEN_FILE"
	ReasonIsDirectory ReasonCode = "IS_DIRECTORY"

	// Collision handling
	ReasonDuplicateRenamed ReasonCode = "DUPLICATE_RENAMED"
)

// RunStatus represents the terminal status of a run.
type RunStatus string

const (
	RunStatusInProgress RunStatus = "IN_PROGRESS"
	RunStatusCompleted  RunStatus = "COMPLETED"
	RunStatusFailed     RunStatus = "FAILED"
)

// ErrorDetails contains detailed information about an error.
type ErrorDetails struct {
	ErrorType    string `json:"errorType"`
	ErrorMessage string `json:"errorMessage"`
	Operation    string `json:"operation"`
}

// AuditEvent represents a single audit record for a file operation or system event.
type AuditEvent struct {
	Timestamp       time.Time         `json:"timestamp"`                 // ISO 8601 format
	RunID           RunID             `json:"runId"`                     // Run identifier
	EventType       EventType         `json:"eventType"`                 // Type of event
	Status          OperationStatus   `json:"status"`                    // Operation outcome
	SourcePath      string            `json:"sourcePath,omitempty"`      // Original file path
	DestinationPath string            `json:"destinationPath,omitempty"` // Target file path
	Folder          string            `json:"folder,omitempty"`          // Destination folder name for moves
	ReasonCode      ReasonCode        `json:"reasonCode,omitempty"`      // Reason for skip/rename
	ErrorDetails    *ErrorDetails     `json:"errorDetails,omitempty"`    // Error information
	Metadata        map[string]string `json:"metadata,omitempty"`        // Additional metadata
}

// RunSummary contains statistics for a completed run.
type RunSummary struct {
	TotalFiles int `json:"totalFiles"`
	Moved      int `json:"moved"`
	Skipped    int `json:"skipped"`
	Failed     int `json:"failed"`
	Duplicates int `json:"duplicates"`
}

// RunInfo contains metadata and summary for a run.
type RunInfo struct {
	RunID      RunID      `json:"runId"`
	StartTime  time.Time  `json:"startTime"`
	EndTime    *time.Time `json:"endTime,omitempty"`
	Status     RunStatus  `json:"status"`
	AppVersion string     `json:"appVersion"`
	Summary    RunSummary `json:"summary"`
}

// AuditConfig holds configuration for the audit system.
type AuditConfig struct {
	LogDirectory   string `json:"logDirectory"`
	RotationSize   int64  `json:"rotationSizeBytes"` // Rotate when file exceeds this size
	RotationPeriod string `json:"rotationPeriod"`    // "daily", "weekly", or ""
}

// DefaultAuditConfig returns an AuditConfig with sensible defaults.
func DefaultAuditConfig() AuditConfig {
	return AuditConfig{
		LogDirectory:   ".tidy/audit",
		RotationSize:   10 * 1024 * 1024, // 10MB
		RotationPeriod: "",               // No time-based rotation by default
	}
}
