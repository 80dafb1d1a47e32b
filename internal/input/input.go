// Package input decodes records for the tp command from JSON, JSON lines,
// YAML, CSV, TSV and SQL queries.
package input

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"
)

// ErrUnsupportedFormat reports an unknown input format.
var ErrUnsupportedFormat = errors.New("unsupported input format")

// Format is an input encoding.
type Format string

const (
	JSON  Format = "json"
	JSONL Format = "jsonl"
	YAML  Format = "yaml"
	CSV   Format = "csv"
	TSV   Format = "tsv"
)

var formats = []Format{JSON, JSONL, YAML, CSV, TSV}

// String returns the format name.
func (f Format) String() string { return string(f) }

// Formats returns all supported input formats.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// ParseFormat parses a format name. "yml" and "ndjson" are accepted as
// aliases.
func ParseFormat(s string) (Format, error) {
	switch s = strings.ToLower(s); s {
	case "yml":
		return YAML, nil
	case "ndjson":
		return JSONL, nil
	}
	for _, f := range formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// FormatOf picks a format from a file name's extension.
func FormatOf(path string) (Format, error) {
	return ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
}

// Record is one decoded row. It keeps its keys in the order they were first
// seen, which becomes the default column order.
type Record struct {
	keys   []string
	values map[string]any
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{values: make(map[string]any)}
}

// Put sets key to v, appending key to the field order when it is new.
func (r *Record) Put(key string, v any) {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = v
}

// Fields returns the keys in first-seen order.
func (r *Record) Fields() []string { return slices.Clone(r.keys) }

// Get returns the value stored under field.
func (r *Record) Get(field string) (any, bool) {
	v, ok := r.values[field]
	return v, ok
}

// Read decodes every record in r. Mapping values become *Record; any other
// top-level value is returned as decoded.
func Read(r io.Reader, f Format) ([]any, error) {
	switch f {
	case JSON, YAML:
		return readYAML(r)
	case JSONL:
		return readJSONL(r)
	case CSV:
		return ReadCSV(r, ',')
	case TSV:
		return ReadCSV(r, '\t')
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}
