package extmap

import (
	"errors"
	"testing"
)

func TestResolveMappedExtension(t *testing.T) {
	m, err := New(map[string]string{
		"jpg":  "Images",
		".pdf": "Documents",
		"MP3":  "Music",
	}, "")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	tests := []struct {
		ext  string
		want string
	}{
		{"jpg", "Images"},
		{".jpg", "Images"},
		{"JPG", "Images"},
		{"pdf", "Documents"},
		{".PDF", "Documents"},
		{"mp3", "Music"},
	}

	for _, tt := range tests {
		if got := m.Resolve(tt.ext); got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.ext, got, tt.want)
		}
	}
}

func TestResolveUnmappedExtensionUsesFallback(t *testing.T) {
	m, err := New(map[string]string{"jpg": "Images"}, "")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	for _, ext := range []string{"txt", "", "tar", ".docx"} {
		if got := m.Resolve(ext); got != DefaultFallbackFolder {
			t.Errorf("Resolve(%q) = %q, want fallback %q", ext, got, DefaultFallbackFolder)
		}
	}
}

func TestCustomFallback(t *testing.T) {
	m, err := New(nil, "Misc")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if got := m.Resolve("xyz"); got != "Misc" {
		t.Errorf("Resolve = %q, want Misc", got)
	}
	if m.Fallback() != "Misc" {
		t.Errorf("Fallback() = %q, want Misc", m.Fallback())
	}
}

func TestDuplicateKeysDifferingByCase(t *testing.T) {
	_, err := New(map[string]string{
		"JPG": "Images",
		"jpg": "Pictures",
	}, "")
	if err == nil {
		t.Fatal("expected error for case-duplicate keys")
	}

	var mapErr *MapError
	if !errors.As(err, &mapErr) {
		t.Fatalf("expected *MapError, got %T", err)
	}
	if mapErr.Type != DuplicateKey {
		t.Errorf("error type = %s, want %s", mapErr.Type, DuplicateKey)
	}
}

func TestDuplicateKeysDifferingByDot(t *testing.T) {
	_, err := New(map[string]string{
		".pdf": "Documents",
		"pdf":  "Papers",
	}, "")
	var mapErr *MapError
	if !errors.As(err, &mapErr) || mapErr.Type != DuplicateKey {
		t.Fatalf("expected DuplicateKey error, got %v", err)
	}
}

func TestInvalidKeysAndFolders(t *testing.T) {
	tests := []struct {
		name     string
		mapping  map[string]string
		fallback string
		wantType MapErrorType
	}{
		{"empty key", map[string]string{"": "Images"}, "", EmptyExtension},
		{"dot-only key", map[string]string{".": "Images"}, "", EmptyExtension},
		{"empty folder", map[string]string{"jpg": ""}, "", EmptyFolder},
		{"folder with slash", map[string]string{"jpg": "a/b"}, "", InvalidFolder},
		{"folder with backslash", map[string]string{"jpg": `a\b`}, "", InvalidFolder},
		{"dot folder", map[string]string{"jpg": ".."}, "", InvalidFolder},
		{"fallback with slash", map[string]string{"jpg": "Images"}, "x/y", InvalidFolder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.mapping, tt.fallback)
			var mapErr *MapError
			if !errors.As(err, &mapErr) {
				t.Fatalf("expected *MapError, got %v", err)
			}
			if mapErr.Type != tt.wantType {
				t.Errorf("error type = %s, want %s", mapErr.Type, tt.wantType)
			}
		})
	}
}

func TestFolders(t *testing.T) {
	m, err := New(map[string]string{
		"jpg": "Images",
		"png": "Images",
		"pdf": "Documents",
	}, "")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	folders := m.Folders()
	if len(folders) != 2 {
		t.Errorf("Folders() returned %d names, want 2: %v", len(folders), folders)
	}
	if m.Len() != 3 {
		t.Errorf("Len() = %d, want 3", m.Len())
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{".pdf", "pdf"},
		{"PDF", "pdf"},
		{".Tar.Gz", "tar.gz"},
		{"", ""},
		{".", ""},
		{"..", "."},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
