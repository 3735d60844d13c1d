package orchestrator

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"tidy/internal/scanner"
)

func TestStatusGroupsByDestination(t *testing.T) {
	sourceDir := t.TempDir()
	writeTestFile(t, sourceDir, "a.jpg")
	writeTestFile(t, sourceDir, "b.jpg")
	writeTestFile(t, sourceDir, "c.pdf")
	writeTestFile(t, sourceDir, "notes")
	writeTestFile(t, sourceDir, ".hidden")

	o, err := NewOrchestrator(testConfig(t, sourceDir))
	if err != nil {
		t.Fatalf("NewOrchestrator failed: %v", err)
	}
	result, err := o.Status()
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}

	status, ok := result.BySource[sourceDir]
	if !ok {
		t.Fatalf("source directory missing from result: %v", result.BySource)
	}
	if status.Total != 4 {
		t.Errorf("Total = %d, want 4", status.Total)
	}
	if result.GrandTotal != 4 {
		t.Errorf("GrandTotal = %d, want 4", result.GrandTotal)
	}
	if len(status.ByFolder["Images"]) != 2 {
		t.Errorf("Images = %v, want 2 files", status.ByFolder["Images"])
	}
	if len(status.ByFolder["Documents"]) != 1 || len(status.ByFolder["OTHERS"]) != 1 {
		t.Errorf("ByFolder = %v", status.ByFolder)
	}
	if len(status.Skipped) != 1 {
		t.Errorf("Skipped = %v, want the hidden file", status.Skipped)
	}

	want := []string{"Documents", "Images", "OTHERS"}
	if got := status.Folders(); !reflect.DeepEqual(got, want) {
		t.Errorf("Folders() = %v, want %v", got, want)
	}
}

func TestStatusDoesNotModifyFilesystem(t *testing.T) {
	sourceDir := t.TempDir()
	writeTestFile(t, sourceDir, "a.jpg")

	o, err := NewOrchestrator(testConfig(t, sourceDir))
	if err != nil {
		t.Fatalf("NewOrchestrator failed: %v", err)
	}
	if _, err := o.Status(); err != nil {
		t.Fatalf("Status failed: %v", err)
	}

	entries, err := os.ReadDir(sourceDir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "a.jpg" {
		t.Errorf("source directory changed: %v", entries)
	}
}

func TestStatusIncludesUnscannableDirectories(t *testing.T) {
	goodDir := t.TempDir()
	writeTestFile(t, goodDir, "a.jpg")
	missingDir := filepath.Join(t.TempDir(), "missing")

	o, err := NewOrchestrator(testConfig(t, missingDir, goodDir))
	if err != nil {
		t.Fatalf("NewOrchestrator failed: %v", err)
	}
	result, err := o.Status()
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}

	status, ok := result.BySource[missingDir]
	if !ok {
		t.Fatal("missing directory not represented in result")
	}
	if status.Total != 0 || len(status.ByFolder) != 0 {
		t.Errorf("missing directory has non-empty status: %+v", status)
	}
	if status.Err == nil {
		t.Error("missing directory has no scan error recorded")
	}
	var scanErr *scanner.ScanError
	if !errors.As(status.Err, &scanErr) || scanErr.Type != scanner.DirectoryNotFound {
		t.Errorf("Err = %v, want DirectoryNotFound", status.Err)
	}
	if good := result.BySource[goodDir]; good.Err != nil {
		t.Errorf("readable directory has a scan error: %v", good.Err)
	}
	if result.GrandTotal != 1 {
		t.Errorf("GrandTotal = %d, want 1", result.GrandTotal)
	}
}

func TestStatusFromPath(t *testing.T) {
	sourceDir := t.TempDir()
	writeTestFile(t, sourceDir, "a.pdf")

	configPath := filepath.Join(t.TempDir(), "config.json")
	configJSON := `{
		"sourceDirectories": ["` + sourceDir + `"],
		"extensionFolders": {".pdf": "Documents"}
	}`
	if err := os.WriteFile(configPath, []byte(configJSON), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	result, err := StatusFromPath(configPath)
	if err != nil {
		t.Fatalf("StatusFromPath failed: %v", err)
	}
	if result.GrandTotal != 1 {
		t.Errorf("GrandTotal = %d, want 1", result.GrandTotal)
	}
}
