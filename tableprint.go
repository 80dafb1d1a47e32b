package tableprint

import (
	"io"
	"os"
	"reflect"
	"slices"
	"time"
)

const (
	// Separator joins the cells of a row.
	Separator = "  | "

	// NoData is the whole output when there are no records.
	NoData = "No data."

	// DefaultMaxWidth caps a column's width unless overridden.
	DefaultMaxWidth = 30
)

// Render formats records as an aligned text table: a header row, a rule of
// hyphens, and one row per record, joined by newlines without a trailing
// newline.
//
// Nil records are dropped. A single slice or array argument is expanded into
// its elements. With no records left Render returns [NoData]; when no field
// resolves it returns a raw %v-style dump of the records instead.
func Render[T any](opts Options, records ...T) string {
	return newRenderer(opts).render(normalize(records))
}

// Columns returns the column plan Render would use for records: the selected
// fields in order with their computed widths.
func Columns[T any](opts Options, records ...T) []Column {
	return newRenderer(opts).columns(normalize(records))
}

// Write renders records and writes the table to w followed by a newline.
func Write[T any](w io.Writer, opts Options, records ...T) error {
	_, err := io.WriteString(w, Render(opts, records...)+"\n")
	return err
}

// Print writes the table to standard output and reports how long rendering
// and writing took.
func Print[T any](opts Options, records ...T) (time.Duration, error) {
	start := time.Now()
	err := Write(os.Stdout, opts, records...)
	return time.Since(start), err
}

func normalize[T any](records []T) []any {
	items := make([]any, 0, len(records))
	for _, rec := range records {
		items = append(items, any(rec))
	}
	if len(items) == 1 {
		items = expand(items[0])
	}
	return slices.DeleteFunc(items, isNil)
}

// expand unwraps a single slice or array argument into its elements. Byte
// slices and records that describe their own fields are treated as one value.
func expand(v any) []any {
	switch v.(type) {
	case Fielded, Getter:
		return []any{v}
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return []any{v}
		}
	default:
		return []any{v}
	}
	items := make([]any, rv.Len())
	for i := range rv.Len() {
		items[i] = rv.Index(i).Interface()
	}
	return items
}
