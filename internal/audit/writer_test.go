package audit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testConfig(t *testing.T) AuditConfig {
	t.Helper()
	cfg := DefaultAuditConfig()
	cfg.LogDirectory = t.TempDir()
	return cfg
}

func TestNewWriterInitializesLog(t *testing.T) {
	cfg := testConfig(t)

	w, err := NewAuditWriter(cfg)
	if err != nil {
		t.Fatalf("NewAuditWriter failed: %v", err)
	}
	defer w.Close()

	events, err := NewAuditReader(cfg.LogDirectory).ReadAllEvents()
	if err != nil {
		t.Fatalf("ReadAllEvents failed: %v", err)
	}
	if len(events) != 1 || events[0].EventType != EventLogInitialized {
		t.Errorf("expected single LOG_INITIALIZED event, got %+v", events)
	}
}

func TestRunLifecycle(t *testing.T) {
	cfg := testConfig(t)
	w, err := NewAuditWriter(cfg)
	if err != nil {
		t.Fatalf("NewAuditWriter failed: %v", err)
	}

	runID, err := w.StartRun("1.0.0")
	if err != nil {
		t.Fatalf("StartRun failed: %v", err)
	}
	if runID == "" {
		t.Fatal("empty run ID")
	}

	if err := w.WriteEvent(CreateMoveEvent(runID, "/s/a.jpg", "/s/Images/a.jpg", "Images", false)); err != nil {
		t.Fatalf("WriteEvent failed: %v", err)
	}
	if err := w.WriteEvent(CreateSkipEvent(runID, "/s/.hidden", ReasonHiddenFile)); err != nil {
		t.Fatalf("WriteEvent failed: %v", err)
	}

	summary := RunSummary{TotalFiles: 2, Moved: 1, Skipped: 1}
	if err := w.EndRun(runID, RunStatusCompleted, summary); err != nil {
		t.Fatalf("EndRun failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	runs, err := NewAuditReader(cfg.LogDirectory).ListRuns()
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}

	run := runs[0]
	if run.RunID != runID || run.Status != RunStatusCompleted {
		t.Errorf("run = %+v", run)
	}
	if run.Summary != summary {
		t.Errorf("summary = %+v, want %+v", run.Summary, summary)
	}
	if run.AppVersion != "1.0.0" {
		t.Errorf("appVersion = %q", run.AppVersion)
	}
	if run.EndTime == nil {
		t.Error("EndTime not recorded")
	}
}

func TestWriterAppendsAcrossOpens(t *testing.T) {
	cfg := testConfig(t)

	for i := 0; i < 2; i++ {
		w, err := NewAuditWriter(cfg)
		if err != nil {
			t.Fatalf("NewAuditWriter failed: %v", err)
		}
		runID, err := w.StartRun("1.0.0")
		if err != nil {
			t.Fatalf("StartRun failed: %v", err)
		}
		if err := w.EndRun(runID, RunStatusCompleted, RunSummary{}); err != nil {
			t.Fatalf("EndRun failed: %v", err)
		}
		if err := w.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
	}

	runs, err := NewAuditReader(cfg.LogDirectory).ListRuns()
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs after reopen, got %d", len(runs))
	}
}

func TestSizeBasedRotation(t *testing.T) {
	cfg := testConfig(t)
	cfg.RotationSize = 512 // Tiny threshold to force rotation

	w, err := NewAuditWriter(cfg)
	if err != nil {
		t.Fatalf("NewAuditWriter failed: %v", err)
	}

	runID, err := w.StartRun("1.0.0")
	if err != nil {
		t.Fatalf("StartRun failed: %v", err)
	}
	for i := 0; i < 20; i++ {
		event := CreateMoveEvent(runID, "/source/some/long/path/file.jpg", "/source/Images/file.jpg", "Images", false)
		if err := w.WriteEvent(event); err != nil {
			t.Fatalf("WriteEvent %d failed: %v", i, err)
		}
	}
	if err := w.EndRun(runID, RunStatusCompleted, RunSummary{Moved: 20, TotalFiles: 20}); err != nil {
		t.Fatalf("EndRun failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	entries, err := os.ReadDir(cfg.LogDirectory)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}

	rotated := 0
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "tidy-audit-") && e.Name() != ActiveLogName {
			rotated++
		}
	}
	if rotated == 0 {
		t.Error("expected at least one rotated segment")
	}

	// All events remain readable across segments.
	events, err := NewAuditReader(cfg.LogDirectory).ReadAllEvents()
	if err != nil {
		t.Fatalf("ReadAllEvents failed: %v", err)
	}
	moves := 0
	for _, e := range events {
		if e.EventType == EventMove {
			moves++
		}
	}
	if moves != 20 {
		t.Errorf("expected 20 MOVE events across segments, got %d", moves)
	}
}

func TestGetAllLogFilesOrdering(t *testing.T) {
	dir := t.TempDir()

	seed := func(name string) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}\n"), 0644); err != nil {
			t.Fatalf("seed %s: %v", name, err)
		}
	}
	seed("tidy-audit-20260102-120000-000.jsonl")
	seed("tidy-audit-20260101-120000-000.jsonl")
	seed(ActiveLogName)

	files, err := GetAllLogFiles(dir)
	if err != nil {
		t.Fatalf("GetAllLogFiles failed: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("expected 3 files, got %v", files)
	}
	if filepath.Base(files[0]) != "tidy-audit-20260101-120000-000.jsonl" {
		t.Errorf("oldest segment not first: %v", files)
	}
	if filepath.Base(files[2]) != ActiveLogName {
		t.Errorf("active log not last: %v", files)
	}
}

func TestGenerateRunIDUnique(t *testing.T) {
	seen := make(map[RunID]bool)
	for i := 0; i < 100; i++ {
		id := GenerateRunID()
		if len(id) != 36 {
			t.Fatalf("unexpected run ID format: %q", id)
		}
		if seen[id] {
			t.Fatalf("duplicate run ID: %q", id)
		}
		seen[id] = true
	}
}
