package parsers

import (
	"sort"
	"strconv"

	"github.com/kazuma-desu/showmore/pkg/models"
)

// FlattenMap recursively flattens a nested document into keyed entries.
// Keys are constructed as paths with "/" delimiter (e.g., /posts/intro/body).
// List items are addressed by index (e.g., /comments/0). Map keys are visited
// in sorted order so output is deterministic. Null and empty values are skipped.
func FlattenMap(data map[string]any) []*models.Entry {
	var entries []*models.Entry
	flattenRecursive("", data, &entries)
	return entries
}

func flattenRecursive(prefix string, data map[string]any, entries *[]*models.Entry) {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		flattenValue(prefix+"/"+key, data[key], entries)
	}
}

func flattenValue(key string, value any, entries *[]*models.Entry) {
	if value == nil {
		return
	}

	switch v := value.(type) {
	case map[string]any:
		flattenRecursive(key, v, entries)

	case []any:
		for i, item := range v {
			flattenValue(key+"/"+strconv.Itoa(i), item, entries)
		}

	case []map[string]any:
		for i, item := range v {
			flattenRecursive(key+"/"+strconv.Itoa(i), item, entries)
		}

	default:
		text := models.FormatValue(v)
		if text == "" {
			return
		}
		*entries = append(*entries, &models.Entry{
			Key:  key,
			Text: text,
		})
	}
}
