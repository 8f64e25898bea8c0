package parsers

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/kazuma-desu/showmore/pkg/models"
)

// TextParser treats the whole file as a single entry.
type TextParser struct{}

func (p *TextParser) FormatName() string {
	return "text"
}

func (p *TextParser) Parse(ctx context.Context, path string) ([]*models.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ParseText(file)
}

// ParseText reads r to the end and returns it as one unkeyed entry.
// The text is kept byte for byte, including any trailing newline.
func ParseText(r io.Reader) ([]*models.Entry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read text: %w", err)
	}
	return []*models.Entry{{Text: string(data)}}, nil
}
