package parsers

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kazuma-desu/showmore/pkg/models"
)

// Parser defines the interface that all input document parsers must implement
type Parser interface {
	// Parse reads a document and returns the entries to truncate, in document order
	Parse(ctx context.Context, path string) ([]*models.Entry, error)

	// FormatName returns the name of the format this parser handles
	FormatName() string
}

// Registry maintains a mapping of format types to their parsers
type Registry struct {
	parsers map[models.FormatType]Parser
}

// NewRegistry creates a new parser registry with default parsers
func NewRegistry() *Registry {
	r := &Registry{
		parsers: make(map[models.FormatType]Parser),
	}

	r.Register(models.FormatText, &TextParser{})
	r.Register(models.FormatYAML, &YAMLParser{})
	r.Register(models.FormatJSON, &JSONParser{})
	r.Register(models.FormatTOML, &TOMLParser{})

	return r
}

// Register adds a parser to the registry
func (r *Registry) Register(format models.FormatType, parser Parser) {
	r.parsers[format] = parser
}

// GetParser returns the parser for the specified format
func (r *Registry) GetParser(format models.FormatType) (Parser, error) {
	parser, ok := r.parsers[format]
	if !ok {
		return nil, fmt.Errorf("no parser registered for format: %s", format)
	}
	return parser, nil
}

// DetectFormat picks a format from the file extension.
// Anything that is not YAML, JSON or TOML is treated as plain text.
func (r *Registry) DetectFormat(path string) (models.FormatType, error) {
	if path == "" {
		return "", fmt.Errorf("cannot detect format: empty path")
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return models.FormatYAML, nil
	case ".json":
		return models.FormatJSON, nil
	case ".toml":
		return models.FormatTOML, nil
	default:
		return models.FormatText, nil
	}
}
