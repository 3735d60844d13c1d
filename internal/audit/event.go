// Package audit provides an append-only event log for Tidy file operations.
package audit

import (
	"encoding/json"
	"errors"
	"time"
)

// ISO8601Format is the time format used for audit event timestamps.
const ISO8601Format = time.RFC3339

// eventJSON is the internal representation for JSON marshaling/unmarshaling.
// It uses pointers for optional fields to properly handle omitempty.
type eventJSON struct {
	Timestamp       string            `json:"timestamp"`
	RunID           RunID             `json:"runId"`
	EventType       EventType         `json:"eventType"`
	Status          OperationStatus   `json:"status"`
	SourcePath      *string           `json:"sourcePath,omitempty"`
	DestinationPath *string           `json:"destinationPath,omitempty"`
	Folder          *string           `json:"folder,omitempty"`
	ReasonCode      *ReasonCode       `json:"reasonCode,omitempty"`
	ErrorDetails    *ErrorDetails     `json:"errorDetails,omitempty"`
	Metadata        map[string]string `json:"metadata,omitempty"`
}

// MarshalJSON implements json.Marshaler for AuditEvent.
// It ensures timestamps are in ISO 8601 format and optional fields are omitted when empty.
func (e AuditEvent) MarshalJSON() ([]byte, error) {
	ej := eventJSON{
		Timestamp:    e.Timestamp.Format(ISO8601Format),
		RunID:        e.RunID,
		EventType:    e.EventType,
		Status:       e.Status,
		ErrorDetails: e.ErrorDetails,
		Metadata:     e.Metadata,
	}

	if e.SourcePath != "" {
		ej.SourcePath = &e.SourcePath
	}
	if e.DestinationPath != "" {
		ej.DestinationPath = &e.DestinationPath
	}
	if e.Folder != "" {
		ej.Folder = &e.Folder
	}
	if e.ReasonCode != "" {
		ej.ReasonCode = &e.ReasonCode
	}

	return json.Marshal(ej)
}

// UnmarshalJSON implements json.Unmarshaler for AuditEvent.
func (e *AuditEvent) UnmarshalJSON(data []byte) error {
	var ej eventJSON
	if err := json.Unmarshal(data, &ej); err != nil {
		return err
	}

	t, err := time.Parse(ISO8601Format, ej.Timestamp)
	if err != nil {
		return err
	}

	e.Timestamp = t
	e.RunID = ej.RunID
	e.EventType = ej.EventType
	e.Status = ej.Status
	e.ErrorDetails = ej.ErrorDetails
	e.Metadata = ej.Metadata

	if ej.SourcePath != nil {
		e.SourcePath = *ej.SourcePath
	}
	if ej.DestinationPath != nil {
		e.DestinationPath = *ej.DestinationPath
	}
	if ej.Folder != nil {
		e.Folder = *ej.Folder
	}
	if ej.ReasonCode != nil {
		e.ReasonCode = *ej.ReasonCode
	}

	return nil
}

// MarshalJSONLine marshals an AuditEvent to a JSON line (no trailing newline).
func (e AuditEvent) MarshalJSONLine() ([]byte, error) {
	return e.MarshalJSON()
}

// UnmarshalJSONLine unmarshals a JSON line into an AuditEvent.
func UnmarshalJSONLine(data []byte) (*AuditEvent, error) {
	var e AuditEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// CreateMoveEvent builds a MOVE event for a completed file move.
// renamed marks files that received a collision suffix at the destination.
func CreateMoveEvent(runID RunID, sourcePath, destPath, folder string, renamed bool) AuditEvent {
	event := AuditEvent{
		Timestamp:       time.Now().UTC(),
		RunID:           runID,
		EventType:       EventMove,
		Status:          StatusSuccess,
		SourcePath:      sourcePath,
		DestinationPath: destPath,
		Folder:          folder,
	}
	if renamed {
		event.ReasonCode = ReasonDuplicateRenamed
	}
	return event
}

// CreateSkipEvent builds a SKIP event for an excluded entry.
func CreateSkipEvent(runID RunID, sourcePath string, reason ReasonCode) AuditEvent {
	return AuditEvent{
		Timestamp:  time.Now().UTC(),
		RunID:      runID,
		EventType:  EventSkip,
		Status:     StatusSkipped,
		SourcePath: sourcePath,
		ReasonCode: reason,
	}
}

// typedError is implemented by the organizer's and scanner's error structs,
// whose Type fields name the failure class for the audit trail.
type typedError interface {
	error
	TypeCode() string
}

// CreateErrorEvent builds an ERROR event for a failed file operation.
func CreateErrorEvent(runID RunID, sourcePath, operation string, err error) AuditEvent {
	details := &ErrorDetails{
		ErrorType: "UNKNOWN",
		Operation: operation,
	}
	if err != nil {
		details.ErrorMessage = err.Error()
		var typed typedError
		if errors.As(err, &typed) {
			details.ErrorType = typed.TypeCode()
		}
	}
	return AuditEvent{
		Timestamp:    time.Now().UTC(),
		RunID:        runID,
		EventType:    EventError,
		Status:       StatusFailure,
		SourcePath:   sourcePath,
		ErrorDetails: details,
	}
}

// CreateRotationEvent builds a ROTATION event recording the segment switch.
func CreateRotationEvent(runID RunID, oldFilename, newFilename string) AuditEvent {
	return AuditEvent{
		Timestamp: time.Now().UTC(),
		RunID:     runID,
		EventType: EventRotation,
		Status:    StatusSuccess,
		Metadata: map[string]string{
			"rotatedFrom": oldFilename,
			"rotatedTo":   newFilename,
		},
	}
}
