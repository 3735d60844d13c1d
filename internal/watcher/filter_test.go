package watcher

import "testing"

func TestShouldIgnoreDefaults(t *testing.T) {
	filter := NewFileFilter(nil)

	tests := []struct {
		path   string
		ignore bool
	}{
		{"/downloads/report.pdf", false},
		{"/downloads/report.pdf.tmp", true},
		{"/downloads/movie.mkv.part", true},
		{"/downloads/track.mp3.download", true},
		{"/downloads/installer.exe.crdownload", true},
		{"/downloads/archive.partial", true},
		{"/downloads/.~lock.report.odt", true},
		{"/downloads/photo.jpg", false},
		{"/downloads/notes", false},
	}

	for _, tt := range tests {
		if got := filter.ShouldIgnore(tt.path); got != tt.ignore {
			t.Errorf("ShouldIgnore(%q) = %v, want %v", tt.path, got, tt.ignore)
		}
	}
}

func TestShouldIgnoreCustomPatterns(t *testing.T) {
	filter := NewFileFilter([]string{"*.bak", "draft-*"})

	if !filter.ShouldIgnore("/src/config.bak") {
		t.Error("*.bak pattern not applied")
	}
	if !filter.ShouldIgnore("/src/draft-letter.doc") {
		t.Error("draft-* pattern not applied")
	}
	// Custom patterns replace the defaults entirely.
	if filter.ShouldIgnore("/src/file.tmp") {
		t.Error("default pattern applied despite custom set")
	}
}

func TestShouldIgnoreBareExtensionSuffix(t *testing.T) {
	filter := NewFileFilter([]string{".tmp"})

	if !filter.ShouldIgnore("/src/data.TMP") {
		t.Error("bare extension should match case-insensitively as suffix")
	}
	if filter.ShouldIgnore("/src/data.tmpx") {
		t.Error("suffix match too loose")
	}
}

func TestPatternsReturnsCopy(t *testing.T) {
	filter := NewFileFilter([]string{"*.bak"})
	patterns := filter.Patterns()
	patterns[0] = "*.changed"

	if filter.Patterns()[0] != "*.bak" {
		t.Error("Patterns exposed internal slice")
	}
}
