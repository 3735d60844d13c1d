// Package audit provides an append-only event log for Tidy file operations.
package audit

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// RotationManager handles log rotation logic.
type RotationManager struct {
	config AuditConfig
}

// NewRotationManager creates a new RotationManager with the given configuration.
func NewRotationManager(config AuditConfig) *RotationManager {
	return &RotationManager{config: config}
}

// NeedsRotation checks if the current log file needs rotation based on size or time.
func (rm *RotationManager) NeedsRotation(logPath string) (bool, error) {
	info, err := os.Stat(logPath)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat log file: %w", err)
	}

	if rm.config.RotationSize > 0 && info.Size() >= rm.config.RotationSize {
		return true, nil
	}

	if rm.config.RotationPeriod != "" {
		return rm.needsTimeBasedRotation(info.ModTime())
	}

	return false, nil
}

// needsTimeBasedRotation checks if rotation is needed based on time period.
func (rm *RotationManager) needsTimeBasedRotation(lastModTime time.Time) (bool, error) {
	now := time.Now()

	switch rm.config.RotationPeriod {
	case "daily":
		lastDay := lastModTime.Truncate(24 * time.Hour)
		today := now.Truncate(24 * time.Hour)
		return lastDay.Before(today), nil

	case "weekly":
		lastYear, lastWeek := lastModTime.ISOWeek()
		currentYear, currentWeek := now.ISOWeek()
		return lastYear != currentYear || lastWeek != currentWeek, nil

	case "":
		return false, nil

	default:
		return false, fmt.Errorf("unknown rotation period: %s", rm.config.RotationPeriod)
	}
}

// GenerateRotatedFilename creates a filename for a rotated log segment.
// Format: tidy-audit-YYYYMMDD-HHMMSS-NNN.jsonl (with milliseconds for uniqueness).
func (rm *RotationManager) GenerateRotatedFilename() string {
	now := time.Now()
	return fmt.Sprintf("tidy-audit-%s-%03d.jsonl", now.Format("20060102-150405"), now.Nanosecond()/1000000)
}

// RotateWithFilename renames the active log to the given segment filename.
func (rm *RotationManager) RotateWithFilename(logPath, rotatedFilename string) (string, error) {
	rotatedPath := filepath.Join(filepath.Dir(logPath), rotatedFilename)

	if err := os.Rename(logPath, rotatedPath); err != nil {
		return "", fmt.Errorf("failed to rename log file during rotation: %w", err)
	}

	return rotatedPath, nil
}

// GetAllLogFiles returns all log segments in the directory in chronological
// order: rotated segments first (their timestamped names sort by creation
// time), then the active log.
func GetAllLogFiles(logDir string) ([]string, error) {
	rotated, err := filepath.Glob(filepath.Join(logDir, "tidy-audit-*.jsonl"))
	if err != nil {
		return nil, fmt.Errorf("failed to list rotated segments: %w", err)
	}
	sort.Strings(rotated)

	activePath := filepath.Join(logDir, ActiveLogName)
	if _, err := os.Stat(activePath); err == nil {
		rotated = append(rotated, activePath)
	}

	return rotated, nil
}
