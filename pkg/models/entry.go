package models

import (
	"fmt"

	"github.com/kazuma-desu/showmore/pkg/truncate"
)

// Entry is a single piece of text to truncate, addressed by key.
// Entries read from a plain text file or from arguments use an empty key.
type Entry struct {
	Key  string
	Text string
}

// String returns a representation of the entry suitable for debug logs
func (e *Entry) String() string {
	if e.Key == "" {
		return fmt.Sprintf("%q", e.Text)
	}
	return fmt.Sprintf("%s: %q", e.Key, e.Text)
}

// TruncatedEntry pairs an entry key with its truncation result
type TruncatedEntry struct {
	Key             string `json:"key,omitempty" yaml:"key,omitempty"`
	truncate.Result `yaml:",inline"`
}

// TruncateAll applies the same thresholds to every entry, preserving order.
func TruncateAll(entries []*Entry, th truncate.Thresholds) []*TruncatedEntry {
	out := make([]*TruncatedEntry, len(entries))
	for i, e := range entries {
		out[i] = &TruncatedEntry{
			Key:    e.Key,
			Result: truncate.Truncate(e.Text, th),
		}
	}
	return out
}

// FormatType represents the type of input document format
type FormatType string

const (
	FormatAuto FormatType = "auto"
	FormatText FormatType = "text"
	FormatYAML FormatType = "yaml"
	FormatJSON FormatType = "json"
	FormatTOML FormatType = "toml"
)

// IsValid checks if the format type is valid
func (f FormatType) IsValid() bool {
	switch f {
	case FormatAuto, FormatText, FormatYAML, FormatJSON, FormatTOML:
		return true
	default:
		return false
	}
}

// TruncateOptions contains options for the truncate command
type TruncateOptions struct {
	FilePath   string
	Format     FormatType
	Thresholds truncate.Thresholds
	MoreLabel  string
	LessLabel  string
	Expand     bool
	Follow     bool
}

// ValidateOptions contains options for validation
type ValidateOptions struct {
	FilePath   string
	Format     FormatType
	Thresholds truncate.Thresholds
	MoreLabel  string
	LessLabel  string
	Strict     bool
}
