package classifier

import (
	"testing"

	"tidy/internal/extmap"
	"tidy/internal/scanner"
)

func testMap(t *testing.T) *extmap.Map {
	t.Helper()
	m, err := extmap.New(map[string]string{
		"jpg": "Images",
		"pdf": "Documents",
	}, "")
	if err != nil {
		t.Fatalf("extmap.New failed: %v", err)
	}
	return m
}

func TestClassifyMappedExtension(t *testing.T) {
	m := testMap(t)

	c := Classify(scanner.FileEntry{Name: "photo.jpg"}, m, Options{})
	if !c.IsClassified() {
		t.Fatalf("expected CLASSIFIED, got %s (%s)", c.Type, c.Reason)
	}
	if c.Folder != "Images" {
		t.Errorf("Folder = %q, want Images", c.Folder)
	}
	if c.Extension != "jpg" {
		t.Errorf("Extension = %q, want jpg", c.Extension)
	}
}

func TestClassifyUnmappedExtensionUsesFallback(t *testing.T) {
	m := testMap(t)

	for _, name := range []string{"notes", "video.mkv", "trailing."} {
		c := Classify(scanner.FileEntry{Name: name}, m, Options{})
		if !c.IsClassified() {
			t.Fatalf("expected CLASSIFIED for %q, got %s", name, c.Type)
		}
		if c.Folder != extmap.DefaultFallbackFolder {
			t.Errorf("Folder for %q = %q, want %q", name, c.Folder, extmap.DefaultFallbackFolder)
		}
	}
}

func TestClassifySkipsDirectories(t *testing.T) {
	m := testMap(t)

	// Directories are skipped even with IncludeHidden set
	for _, opts := range []Options{{}, {IncludeHidden: true}} {
		c := Classify(scanner.FileEntry{Name: "sub", IsDir: true}, m, opts)
		if !c.IsSkipped() || c.Reason != IsDirectory {
			t.Errorf("opts %+v: expected SKIPPED/IS_DIRECTORY, got %s/%s", opts, c.Type, c.Reason)
		}
	}
}

func TestClassifySkipsHiddenByDefault(t *testing.T) {
	m := testMap(t)

	c := Classify(scanner.FileEntry{Name: ".hidden", Hidden: true}, m, Options{})
	if !c.IsSkipped() || c.Reason != HiddenFile {
		t.Fatalf("expected SKIPPED/HIDDEN_FILE, got %s/%s", c.Type, c.Reason)
	}
}

func TestClassifyIncludeHiddenOverride(t *testing.T) {
	m := testMap(t)

	c := Classify(scanner.FileEntry{Name: ".hidden", Hidden: true}, m, Options{IncludeHidden: true})
	if !c.IsClassified() {
		t.Fatalf("expected CLASSIFIED with IncludeHidden, got %s (%s)", c.Type, c.Reason)
	}
	if c.Folder != extmap.DefaultFallbackFolder {
		t.Errorf("Folder = %q, want fallback", c.Folder)
	}
}

func TestClassifyCaseInsensitiveExtension(t *testing.T) {
	m := testMap(t)

	c := Classify(scanner.FileEntry{Name: "SCAN.PDF"}, m, Options{})
	if c.Folder != "Documents" {
		t.Errorf("Folder = %q, want Documents", c.Folder)
	}
}
