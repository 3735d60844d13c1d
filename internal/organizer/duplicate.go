// Package organizer performs file moves for Tidy.
package organizer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tidy/internal/scanner"
)

// fileExists checks if anything exists at the given path.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// NextAvailableName returns a collision-free filename for destDir by
// appending a numeric suffix before the extension, starting at 1.
//
// Examples:
//   - "file.pdf" -> "file (1).pdf" (if file.pdf exists)
//   - "file.pdf" -> "file (2).pdf" (if file (1).pdf also exists)
//   - "notes"    -> "notes (1)"
//   - ".bashrc"  -> ".bashrc (1)"
//
// If the original name is free, it is returned unchanged.
func NextAvailableName(destDir, filename string) string {
	if !fileExists(filepath.Join(destDir, filename)) {
		return filename
	}

	// Split the name the same way classification does, so a dotfile's
	// leading dot is a hidden marker, not an extension separator.
	ext := ""
	if e := (scanner.FileEntry{Name: filename}).Extension(); e != "" {
		ext = "." + e
	}
	stem := strings.TrimSuffix(filename, ext)

	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s (%d)%s", stem, n, ext)
		if !fileExists(filepath.Join(destDir, candidate)) {
			return candidate
		}
	}
}
