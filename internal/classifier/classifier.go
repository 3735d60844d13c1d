// Package classifier decides the destination folder for directory entries in Tidy.
package classifier

import (
	"tidy/internal/extmap"
	"tidy/internal/scanner"
)

// SkipReason represents why an entry was excluded from organization.
type SkipReason string

const (
	// HiddenFile indicates the entry's base name starts with '.'.
	HiddenFile SkipReason = "HIDDEN_FILE"
	// IsDirectory indicates the entry is a subdirectory.
	IsDirectory SkipReason = "IS_DIRECTORY"
)

// Classification types.
const (
	TypeClassified = "CLASSIFIED"
	TypeSkipped    = "SKIPPED"
)

// Classification represents the routing decision for a single entry.
// It is either CLASSIFIED (with a destination folder) or SKIPPED (with a reason).
type Classification struct {
	Type      string
	Folder    string // Destination folder name for CLASSIFIED entries
	Extension string // Extracted extension (may be empty)
	Reason    SkipReason
}

// Options configures classification behavior.
type Options struct {
	IncludeHidden bool // Classify hidden files instead of skipping them
}

// Classify determines the destination for a directory entry.
// Subdirectories are always skipped. Hidden files are skipped unless
// IncludeHidden is set. Everything else resolves through the extension map.
func Classify(entry scanner.FileEntry, m *extmap.Map, opts Options) *Classification {
	if entry.IsDir {
		return &Classification{Type: TypeSkipped, Reason: IsDirectory}
	}
	if entry.Hidden && !opts.IncludeHidden {
		return &Classification{Type: TypeSkipped, Reason: HiddenFile}
	}

	ext := entry.Extension()
	return &Classification{
		Type:      TypeClassified,
		Folder:    m.Resolve(ext),
		Extension: ext,
	}
}

// IsClassified returns true if the classification is CLASSIFIED.
func (c *Classification) IsClassified() bool {
	return c.Type == TypeClassified
}

// IsSkipped returns true if the classification is SKIPPED.
func (c *Classification) IsSkipped() bool {
	return c.Type == TypeSkipped
}
