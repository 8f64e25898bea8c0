package models

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// FormatValue converts a decoded document value to the text that gets truncated.
// Supports: string, integers, floats, bool, map[string]any, fmt.Stringer, and nil.
// Returns empty string for nil values.
func FormatValue(val any) string {
	if val == nil {
		return ""
	}

	switch v := val.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case map[string]any:
		if len(v) == 0 {
			return ""
		}
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		lines := make([]string, len(keys))
		for i, k := range keys {
			lines[i] = fmt.Sprintf("%s: %s", k, FormatValue(v[k]))
		}
		return strings.Join(lines, "\n")
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
