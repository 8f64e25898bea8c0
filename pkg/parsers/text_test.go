package parsers

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextParser_FormatName(t *testing.T) {
	assert.Equal(t, "text", (&TextParser{}).FormatName())
}

func TestTextParser_Parse(t *testing.T) {
	content := "first line\nsecond line\n"
	path := writeTemp(t, "note.txt", content)

	entries, err := (&TextParser{}).Parse(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Empty(t, entries[0].Key)
	assert.Equal(t, content, entries[0].Text)
}

func TestTextParser_EmptyFile(t *testing.T) {
	path := writeTemp(t, "empty.txt", "")

	entries, err := (&TextParser{}).Parse(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "", entries[0].Text)
}

func TestParseText(t *testing.T) {
	entries, err := ParseText(strings.NewReader("  keep  spacing "))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "  keep  spacing ", entries[0].Text)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("boom")
}

func TestParseText_ReadError(t *testing.T) {
	_, err := ParseText(failingReader{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read text")
}
