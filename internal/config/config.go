// Package config handles configuration loading and validation for Tidy.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"tidy/internal/audit"
	"tidy/internal/extmap"
)

// Status levels for console output filtering.
const (
	StatusLevelAll     = "all"
	StatusLevelSuccess = "success"
	StatusLevelFailed  = "failed"
)

// MaxSourceDirectories bounds the number of directories per invocation.
const MaxSourceDirectories = 20

// ConfigErrorType represents the type of configuration error.
type ConfigErrorType string

const (
	FileNotFound    ConfigErrorType = "FILE_NOT_FOUND"
	InvalidJSON     ConfigErrorType = "INVALID_JSON"
	ValidationError ConfigErrorType = "VALIDATION_ERROR"
)

// ConfigError represents an error that occurred during configuration loading.
// Configuration errors are fatal for the whole process.
type ConfigError struct {
	Type    ConfigErrorType
	Path    string
	Message string
}

func (e *ConfigError) Error() string {
	switch e.Type {
	case FileNotFound:
		return fmt.Sprintf("configuration file not found: %s", e.Path)
	case InvalidJSON:
		return fmt.Sprintf("invalid JSON in configuration file: %s", e.Message)
	case ValidationError:
		return fmt.Sprintf("configuration validation error: %s", e.Message)
	default:
		return fmt.Sprintf("configuration error: %s", e.Message)
	}
}

// WatchSettings holds watch-mode tuning. Durations are plain numbers in
// JSON to keep the file hand-editable.
type WatchSettings struct {
	DebounceSeconds   int      `json:"debounceSeconds,omitempty"`
	StableThresholdMs int      `json:"stableThresholdMs,omitempty"`
	IgnorePatterns    []string `json:"ignorePatterns,omitempty"`
}

// Configuration holds all settings for Tidy.
type Configuration struct {
	SourceDirectories []string           `json:"sourceDirectories"`
	ExtensionFolders  map[string]string  `json:"extensionFolders"`
	FallbackFolder    string             `json:"fallbackFolder,omitempty"`
	IncludeHidden     bool               `json:"includeHidden,omitempty"`
	KeepDuplicates    *bool              `json:"keepDuplicates,omitempty"`
	StatusLevel       string             `json:"statusLevel,omitempty"`
	Audit             *audit.AuditConfig `json:"audit,omitempty"`
	Watch             *WatchSettings     `json:"watch,omitempty"`
}

// ApplyDefaults fills in defaults for fields that were omitted.
func (c *Configuration) ApplyDefaults() {
	if c.FallbackFolder == "" {
		c.FallbackFolder = extmap.DefaultFallbackFolder
	}
	if c.KeepDuplicates == nil {
		keep := true
		c.KeepDuplicates = &keep
	}
	if c.StatusLevel == "" {
		c.StatusLevel = StatusLevelAll
	}

	auditDefaults := audit.DefaultAuditConfig()
	if c.Audit == nil {
		c.Audit = &auditDefaults
		return
	}
	if c.Audit.LogDirectory == "" {
		c.Audit.LogDirectory = auditDefaults.LogDirectory
	}
	if c.Audit.RotationSize == 0 {
		c.Audit.RotationSize = auditDefaults.RotationSize
	}
}

// KeepDuplicatesEnabled reports whether colliding files are renamed
// rather than overwritten. Defaults to true.
func (c *Configuration) KeepDuplicatesEnabled() bool {
	return c.KeepDuplicates == nil || *c.KeepDuplicates
}

// Validate checks that the configuration is structurally sound.
// The extension mapping is validated by building it, so ambiguous keys
// (for example "JPG" and "jpg") fail here, before any filesystem access.
func (c *Configuration) Validate() error {
	if len(c.SourceDirectories) == 0 {
		return &ConfigError{
			Type:    ValidationError,
			Message: "sourceDirectories must contain at least one directory",
		}
	}
	if len(c.SourceDirectories) > MaxSourceDirectories {
		return &ConfigError{
			Type:    ValidationError,
			Message: fmt.Sprintf("sourceDirectories has %d entries; at most %d are allowed", len(c.SourceDirectories), MaxSourceDirectories),
		}
	}
	for i, dir := range c.SourceDirectories {
		if dir == "" {
			return &ConfigError{
				Type:    ValidationError,
				Message: fmt.Sprintf("sourceDirectories[%d] is empty", i),
			}
		}
	}

	switch c.StatusLevel {
	case "", StatusLevelAll, StatusLevelSuccess, StatusLevelFailed:
	default:
		return &ConfigError{
			Type:    ValidationError,
			Message: fmt.Sprintf("statusLevel must be %q, %q or %q, got %q", StatusLevelAll, StatusLevelSuccess, StatusLevelFailed, c.StatusLevel),
		}
	}

	if _, err := extmap.New(c.ExtensionFolders, c.FallbackFolder); err != nil {
		return &ConfigError{
			Type:    ValidationError,
			Message: err.Error(),
		}
	}

	return nil
}

// BuildExtensionMap constructs the immutable extension map from the
// configured mapping and fallback folder.
func (c *Configuration) BuildExtensionMap() (*extmap.Map, error) {
	m, err := extmap.New(c.ExtensionFolders, c.FallbackFolder)
	if err != nil {
		return nil, &ConfigError{
			Type:    ValidationError,
			Message: err.Error(),
		}
	}
	return m, nil
}

// SetExtensions parses extension assignments in the original CLI format
// ".ext FolderName" and merges them into the mapping. Entries that do not
// split into an extension and a folder are ignored, matching the original
// tool's lenient handling of the --ext flag.
func (c *Configuration) SetExtensions(assignments []string) {
	if c.ExtensionFolders == nil {
		c.ExtensionFolders = make(map[string]string)
	}
	for _, assignment := range assignments {
		assignment = strings.TrimSpace(assignment)
		if assignment == "" {
			continue
		}
		parts := strings.SplitN(assignment, " ", 2)
		if len(parts) != 2 {
			continue
		}
		ext := strings.TrimSpace(parts[0])
		folder := strings.TrimSpace(parts[1])
		if ext == "" || folder == "" {
			continue
		}
		// Replace any existing key that normalizes to the same extension
		// so the merge cannot introduce a case-duplicate.
		normalized := extmap.Normalize(ext)
		for key := range c.ExtensionFolders {
			if extmap.Normalize(key) == normalized {
				delete(c.ExtensionFolders, key)
			}
		}
		c.ExtensionFolders[ext] = folder
	}
}

// HasSourceDirectory checks if a directory is already configured.
func (c *Configuration) HasSourceDirectory(dir string) bool {
	for _, d := range c.SourceDirectories {
		if d == dir {
			return true
		}
	}
	return false
}

// AddSourceDirectory adds a directory if it doesn't already exist.
// Returns true if the directory was added, false if it was a duplicate.
func (c *Configuration) AddSourceDirectory(dir string) bool {
	if c.HasSourceDirectory(dir) {
		return false
	}
	c.SourceDirectories = append(c.SourceDirectories, dir)
	return true
}

// Load reads, parses and validates a configuration file from the given path.
func Load(filePath string) (*Configuration, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &ConfigError{Type: FileNotFound, Path: filePath}
		}
		return nil, &ConfigError{
			Type:    FileNotFound,
			Path:    filePath,
			Message: err.Error(),
		}
	}

	var cfg Configuration
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, &ConfigError{
			Type:    InvalidJSON,
			Message: err.Error(),
		}
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadOrCreate loads config if it exists, or returns an empty config
// with defaults applied if the file doesn't exist.
func LoadOrCreate(filePath string) (*Configuration, error) {
	if _, err := os.Stat(filePath); errors.Is(err, os.ErrNotExist) {
		cfg := &Configuration{
			SourceDirectories: []string{},
			ExtensionFolders:  map[string]string{},
		}
		cfg.ApplyDefaults()
		return cfg, nil
	}
	return Load(filePath)
}

// Save serializes and writes a configuration to the given path.
func Save(cfg *Configuration, filePath string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return &ConfigError{
			Type:    InvalidJSON,
			Message: err.Error(),
		}
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return &ConfigError{
			Type:    ValidationError,
			Message: fmt.Sprintf("failed to write configuration file: %s", err.Error()),
		}
	}

	return nil
}
