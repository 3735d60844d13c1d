// Package extmap resolves file extensions to destination folder names for Tidy.
package extmap

import (
	"fmt"
	"strings"
)

// DefaultFallbackFolder is the destination for files whose extension has no mapping.
const DefaultFallbackFolder = "OTHERS"

// MapErrorType represents the type of mapping construction error.
type MapErrorType string

const (
	// DuplicateKey indicates two keys normalize to the same extension.
	DuplicateKey MapErrorType = "DUPLICATE_KEY"
	// EmptyExtension indicates a key that normalizes to the empty string.
	EmptyExtension MapErrorType = "EMPTY_EXTENSION"
	// EmptyFolder indicates a mapping with an empty destination folder name.
	EmptyFolder MapErrorType = "EMPTY_FOLDER"
	// InvalidFolder indicates a destination folder name that is not a single path segment.
	InvalidFolder MapErrorType = "INVALID_FOLDER"
)

// MapError represents an error that occurred while building an extension map.
type MapError struct {
	Type    MapErrorType
	Key     string
	Message string
}

func (e *MapError) Error() string {
	switch e.Type {
	case DuplicateKey:
		return fmt.Sprintf("duplicate extension mapping: %s", e.Message)
	case EmptyExtension:
		return fmt.Sprintf("extension key %q normalizes to an empty string", e.Key)
	case EmptyFolder:
		return fmt.Sprintf("extension %q maps to an empty folder name", e.Key)
	case InvalidFolder:
		return fmt.Sprintf("extension %q maps to an invalid folder name: %s", e.Key, e.Message)
	default:
		return fmt.Sprintf("extension mapping error: %s", e.Message)
	}
}

// Map resolves normalized extensions to destination folder names.
// It is immutable after construction.
type Map struct {
	folders  map[string]string
	fallback string
}

// Normalize canonicalizes an extension key: one leading dot is stripped
// and the result is lower-cased. "PDF", ".pdf" and "pdf" all normalize to "pdf".
func Normalize(ext string) string {
	ext = strings.TrimPrefix(ext, ".")
	return strings.ToLower(ext)
}

// New builds a Map from an extension-to-folder mapping and a fallback folder name.
// Keys are normalized on load. Keys that collide after normalization, keys that
// normalize to the empty string, and folder names that are empty or contain a
// path separator are rejected. If fallback is empty, DefaultFallbackFolder is used.
func New(mapping map[string]string, fallback string) (*Map, error) {
	if fallback == "" {
		fallback = DefaultFallbackFolder
	}
	if err := validateFolderName("(fallback)", fallback); err != nil {
		return nil, err
	}

	folders := make(map[string]string, len(mapping))
	// Track the original key spelling so duplicate errors can name both sides.
	origin := make(map[string]string, len(mapping))

	for key, folder := range mapping {
		normalized := Normalize(key)
		if normalized == "" {
			return nil, &MapError{Type: EmptyExtension, Key: key}
		}
		if folder == "" {
			return nil, &MapError{Type: EmptyFolder, Key: key}
		}
		if err := validateFolderName(key, folder); err != nil {
			return nil, err
		}
		if first, exists := origin[normalized]; exists {
			return nil, &MapError{
				Type:    DuplicateKey,
				Key:     key,
				Message: fmt.Sprintf("%q and %q both normalize to %q", first, key, normalized),
			}
		}
		origin[normalized] = key
		folders[normalized] = folder
	}

	return &Map{folders: folders, fallback: fallback}, nil
}

// validateFolderName rejects folder names that are not a single path segment.
// Destination folders are always direct children of the source directory.
func validateFolderName(key, folder string) error {
	if strings.ContainsAny(folder, "/\\") {
		return &MapError{
			Type:    InvalidFolder,
			Key:     key,
			Message: fmt.Sprintf("%q contains a path separator", folder),
		}
	}
	if folder == "." || folder == ".." {
		return &MapError{
			Type:    InvalidFolder,
			Key:     key,
			Message: fmt.Sprintf("%q is not a valid folder name", folder),
		}
	}
	return nil
}

// Resolve returns the destination folder for an extension.
// The input is normalized before lookup; unmapped extensions resolve
// to the fallback folder.
func (m *Map) Resolve(ext string) string {
	if folder, ok := m.folders[Normalize(ext)]; ok {
		return folder
	}
	return m.fallback
}

// Fallback returns the configured fallback folder name.
func (m *Map) Fallback() string {
	return m.fallback
}

// Len returns the number of mapped extensions.
func (m *Map) Len() int {
	return len(m.folders)
}

// Folders returns the set of distinct destination folder names,
// excluding the fallback.
func (m *Map) Folders() []string {
	seen := make(map[string]bool, len(m.folders))
	var folders []string
	for _, folder := range m.folders {
		if !seen[folder] {
			seen[folder] = true
			folders = append(folders, folder)
		}
	}
	return folders
}
