// Package audit provides an append-only event log for Tidy file operations.
package audit

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ActiveLogName is the filename of the active audit log segment.
const ActiveLogName = "tidy-audit.jsonl"

// AuditWriter handles all write operations to the audit log.
// It implements append-only semantics with fail-fast behavior.
type AuditWriter struct {
	mu         sync.Mutex
	file       *os.File
	writer     *bufio.Writer
	logPath    string
	currentRun *RunID
	config     AuditConfig
	rotation   *RotationManager
}

// NewAuditWriter creates a new AuditWriter with the given configuration.
// It creates the log directory if it doesn't exist and opens the log file for
// appending. A fresh log file starts with a LOG_INITIALIZED event.
func NewAuditWriter(config AuditConfig) (*AuditWriter, error) {
	if err := os.MkdirAll(config.LogDirectory, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	logPath := filepath.Join(config.LogDirectory, ActiveLogName)

	isNewLog := false
	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		isNewLog = true
	}

	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}

	writer := &AuditWriter{
		file:     file,
		writer:   bufio.NewWriter(file),
		logPath:  logPath,
		config:   config,
		rotation: NewRotationManager(config),
	}

	if isNewLog {
		if err := writer.writeLogInitialized(); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to write LOG_INITIALIZED event: %w", err)
		}
	}

	return writer, nil
}

// GenerateRunID generates a new UUID v4 Run ID.
func GenerateRunID() RunID {
	return RunID(uuid.NewString())
}

// StartRun initializes a new run and writes the RUN_START event.
func (w *AuditWriter) StartRun(appVersion string) (RunID, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	runID := GenerateRunID()

	event := AuditEvent{
		Timestamp: time.Now().UTC(),
		RunID:     runID,
		EventType: EventRunStart,
		Status:    StatusSuccess,
		Metadata: map[string]string{
			"appVersion": appVersion,
		},
	}

	if err := w.writeEventLocked(event); err != nil {
		return "", fmt.Errorf("failed to write RUN_START event: %w", err)
	}

	w.currentRun = &runID
	return runID, nil
}

// EndRun writes the RUN_END event with the run's terminal status and summary.
func (w *AuditWriter) EndRun(runID RunID, status RunStatus, summary RunSummary) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	event := AuditEvent{
		Timestamp: time.Now().UTC(),
		RunID:     runID,
		EventType: EventRunEnd,
		Status:    StatusSuccess,
		Metadata: map[string]string{
			"status":     string(status),
			"totalFiles": strconv.Itoa(summary.TotalFiles),
			"moved":      strconv.Itoa(summary.Moved),
			"skipped":    strconv.Itoa(summary.Skipped),
			"failed":     strconv.Itoa(summary.Failed),
			"duplicates": strconv.Itoa(summary.Duplicates),
		},
	}

	if err := w.writeEventLocked(event); err != nil {
		return fmt.Errorf("failed to write RUN_END event: %w", err)
	}

	w.currentRun = nil
	return nil
}

// WriteEvent writes a single audit event to the log.
// It fails fast if the write cannot be completed.
func (w *AuditWriter) WriteEvent(event AuditEvent) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.writeEventLocked(event)
}

// writeEventLocked writes an event while holding the lock.
// It marshals the event to JSON, appends a newline, flushes to disk,
// and checks whether the segment needs rotation.
func (w *AuditWriter) writeEventLocked(event AuditEvent) error {
	data, err := event.MarshalJSONLine()
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if _, err := w.writer.Write(data); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}
	if _, err := w.writer.WriteString("\n"); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	if err := w.writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush event: %w", err)
	}
	if err := w.file.Sync(); err != nil {
		return fmt.Errorf("failed to sync event to disk: %w", err)
	}

	// ROTATION events never trigger another rotation check.
	if event.EventType != EventRotation {
		if err := w.checkAndRotate(); err != nil {
			return fmt.Errorf("failed to rotate log: %w", err)
		}
	}

	return nil
}

// checkAndRotate rotates the active segment when the rotation policy says so.
// The ROTATION event naming the new segment is the last line of the old one.
func (w *AuditWriter) checkAndRotate() error {
	needsRotation, err := w.rotation.NeedsRotation(w.logPath)
	if err != nil {
		return err
	}
	if !needsRotation {
		return nil
	}

	rotatedFilename := w.rotation.GenerateRotatedFilename()

	var runID RunID
	if w.currentRun != nil {
		runID = *w.currentRun
	}
	rotationEvent := CreateRotationEvent(runID, filepath.Base(w.logPath), rotatedFilename)

	data, err := rotationEvent.MarshalJSONLine()
	if err != nil {
		return fmt.Errorf("failed to marshal rotation event: %w", err)
	}
	if _, err := w.writer.Write(data); err != nil {
		return fmt.Errorf("failed to write rotation event: %w", err)
	}
	if _, err := w.writer.WriteString("\n"); err != nil {
		return fmt.Errorf("failed to write rotation event newline: %w", err)
	}
	if err := w.writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush rotation event: %w", err)
	}
	if err := w.file.Sync(); err != nil {
		return fmt.Errorf("failed to sync rotation event: %w", err)
	}

	if err := w.file.Close(); err != nil {
		return fmt.Errorf("failed to close file for rotation: %w", err)
	}

	if _, err := w.rotation.RotateWithFilename(w.logPath, rotatedFilename); err != nil {
		return err
	}

	file, err := os.OpenFile(w.logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open new log segment: %w", err)
	}
	w.file = file
	w.writer = bufio.NewWriter(file)

	return nil
}

// writeLogInitialized writes the LOG_INITIALIZED event for a fresh log file.
func (w *AuditWriter) writeLogInitialized() error {
	event := AuditEvent{
		Timestamp: time.Now().UTC(),
		EventType: EventLogInitialized,
		Status:    StatusSuccess,
	}
	return w.writeEventLocked(event)
}

// Close flushes pending writes and closes the log file.
func (w *AuditWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.writer.Flush(); err != nil {
		w.file.Close()
		return fmt.Errorf("failed to flush audit log: %w", err)
	}
	return w.file.Close()
}

// LogPath returns the path of the active log segment.
func (w *AuditWriter) LogPath() string {
	return w.logPath
}

// CurrentRun returns the run ID of the run in progress, or "" if no run
// is active.
func (w *AuditWriter) CurrentRun() RunID {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.currentRun == nil {
		return ""
	}
	return *w.currentRun
}
