package parsers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/kazuma-desu/showmore/pkg/logger"
	"github.com/kazuma-desu/showmore/pkg/models"

	"gopkg.in/yaml.v3"
)

var ErrRootNotMap = errors.New("YAML root must be a map, not an array or scalar")

type YAMLParser struct{}

func (p *YAMLParser) FormatName() string {
	return "yaml"
}

func (p *YAMLParser) Parse(ctx context.Context, path string) ([]*models.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)

	var data map[string]any
	var entries []*models.Entry
	docCount := 0

	for {
		err := decoder.Decode(&data)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var typeErr *yaml.TypeError
			if errors.As(err, &typeErr) {
				return nil, ErrRootNotMap
			}
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}

		docCount++
		switch docCount {
		case 1:
			entries = FlattenMap(data)
		case 2:
			logger.Log.Warnw("YAML file contains multiple documents, only the first document is parsed",
				"file", path)
		}

		data = nil
	}

	return entries, nil
}
