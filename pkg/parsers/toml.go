package parsers

import (
	"context"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/kazuma-desu/showmore/pkg/logger"
	"github.com/kazuma-desu/showmore/pkg/models"
)

// TOMLParser flattens a TOML document. Arrays of tables are addressed by index.
type TOMLParser struct{}

func (p *TOMLParser) FormatName() string {
	return "toml"
}

func (p *TOMLParser) Parse(ctx context.Context, path string) ([]*models.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var data map[string]any
	meta, err := toml.DecodeFile(path, &data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		logger.Log.Debugw("TOML keys left undecoded", "file", path, "keys", len(undecoded))
	}

	return FlattenMap(data), nil
}
