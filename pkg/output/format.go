package output

import (
	"fmt"
	"slices"
	"strings"
)

// Format represents a supported output format.
type Format string

const (
	FormatSimple Format = "simple"
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatTable  Format = "table"
	FormatTree   Format = "tree"
)

var allFormats = []Format{
	FormatSimple,
	FormatJSON,
	FormatYAML,
	FormatTable,
	FormatTree,
}

// AllFormats returns a copy of all supported formats.
func AllFormats() []Format {
	return slices.Clone(allFormats)
}

// FormatNames returns the supported formats as strings, for flag help and completion.
func FormatNames(formats ...Format) []string {
	if len(formats) == 0 {
		formats = allFormats
	}
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return names
}

func (f Format) String() string {
	return string(f)
}

// IsValid checks if the format is supported.
func (f Format) IsValid() bool {
	return slices.Contains(allFormats, f)
}

// IsStructured reports whether the format is meant for other programs.
// Log output is suppressed for structured formats so stdout stays parseable.
func (f Format) IsStructured() bool {
	return f == FormatJSON || f == FormatYAML
}

// ParseFormat parses a string into Format, validating it.
func ParseFormat(s string) (Format, error) {
	f := Format(s)
	if !f.IsValid() {
		return "", fmt.Errorf("invalid output format: %s (use %s)", s, strings.Join(FormatNames(), ", "))
	}
	return f, nil
}

// ValidateFormat validates the requested output format against allowed formats.
func ValidateFormat(requested string, allowed []string) error {
	if slices.Contains(allowed, requested) {
		return nil
	}
	return fmt.Errorf("invalid format: %s (valid: %s)",
		requested, strings.Join(allowed, ", "))
}
