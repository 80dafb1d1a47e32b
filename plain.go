package tableprint

import "strings"

// dump renders records that resolve to no fields as one bracketed line, the
// way a slice prints with %v.
func dump(items []any, layout string) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = stringify(item, layout)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
