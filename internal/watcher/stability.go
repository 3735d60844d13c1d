package watcher

import (
	"context"
	"errors"
	"os"
	"time"
)

// ErrFileNotFound is returned when the file vanished before processing.
var ErrFileNotFound = errors.New("file not found")

// ErrFileUnstable is returned when the file kept changing size until the
// timeout.
var ErrFileUnstable = errors.New("file did not stabilize within timeout")

// StabilityChecker waits for a file's size to stop changing, so files
// still being written are never moved mid-stream.
type StabilityChecker struct {
	threshold time.Duration // Time the size must remain unchanged
	timeout   time.Duration // Maximum total wait
	interval  time.Duration // Polling interval
}

// NewStabilityChecker creates a checker with a 30 second timeout and a
// polling interval derived from the threshold.
func NewStabilityChecker(threshold time.Duration) *StabilityChecker {
	interval := threshold / 4
	if interval < 50*time.Millisecond {
		interval = 50 * time.Millisecond
	}
	return &StabilityChecker{
		threshold: threshold,
		timeout:   30 * time.Second,
		interval:  interval,
	}
}

// NewStabilityCheckerWithOptions creates a checker with explicit timing.
func NewStabilityCheckerWithOptions(threshold, timeout, interval time.Duration) *StabilityChecker {
	return &StabilityChecker{
		threshold: threshold,
		timeout:   timeout,
		interval:  interval,
	}
}

// WaitForStable blocks until the file size holds steady for the threshold
// duration. It returns ErrFileUnstable if the timeout passes first.
func (s *StabilityChecker) WaitForStable(path string) error {
	return s.WaitForStableContext(context.Background(), path)
}

// WaitForStableContext is WaitForStable with cancellation support.
func (s *StabilityChecker) WaitForStableContext(ctx context.Context, path string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	lastSize, err := s.fileSize(path)
	if err != nil {
		return err
	}
	lastChange := time.Now()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return ErrFileUnstable
			}
			return ctx.Err()
		case <-ticker.C:
			currentSize, err := s.fileSize(path)
			if err != nil {
				return err
			}

			if currentSize != lastSize {
				lastSize = currentSize
				lastChange = time.Now()
			} else if time.Since(lastChange) >= s.threshold {
				return nil
			}
		}
	}
}

func (s *StabilityChecker) fileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, ErrFileNotFound
		}
		return 0, err
	}
	return info.Size(), nil
}

// Threshold returns the configured stability threshold.
func (s *StabilityChecker) Threshold() time.Duration {
	return s.threshold
}
