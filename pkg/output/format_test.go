package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"simple", "json", "yaml", "table", "tree"} {
		f, err := ParseFormat(name)
		require.NoError(t, err)
		assert.Equal(t, name, f.String())
	}

	_, err := ParseFormat("xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format: xml")
	assert.Contains(t, err.Error(), "simple, json, yaml, table, tree")
}

func TestFormat_IsStructured(t *testing.T) {
	assert.True(t, FormatJSON.IsStructured())
	assert.True(t, FormatYAML.IsStructured())
	assert.False(t, FormatSimple.IsStructured())
	assert.False(t, FormatTable.IsStructured())
	assert.False(t, FormatTree.IsStructured())
}

func TestAllFormats_ReturnsCopy(t *testing.T) {
	formats := AllFormats()
	formats[0] = "mutated"
	assert.Equal(t, FormatSimple, AllFormats()[0])
}

func TestFormatNames(t *testing.T) {
	assert.Len(t, FormatNames(), 5)
	assert.Equal(t, []string{"json", "yaml"}, FormatNames(FormatJSON, FormatYAML))
}

func TestValidateFormat(t *testing.T) {
	allowed := []string{"simple", "json", "table"}

	assert.NoError(t, ValidateFormat("json", allowed))
	assert.NoError(t, ValidateFormat("simple", allowed))

	err := ValidateFormat("tree", allowed)
	require.Error(t, err)
	assert.Equal(t, "invalid format: tree (valid: simple, json, table)", err.Error())
}
