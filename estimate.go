package tableprint

import (
	"reflect"
	"time"

	"github.com/mattn/go-runewidth"
)

// DefaultSampleBudget bounds how long the width scan of one column may run
// before the records seen so far are taken as representative.
const DefaultSampleBudget = 2 * time.Second

// boolWidth fits "false", the longer boolean rendering.
const boolWidth = len("false")

// estimator infers column widths by sampling field values.
type estimator struct {
	access *fieldAccess
	budget time.Duration
	now    func() time.Time
	layout string
}

// width returns the render width of field. An explicit width skips sampling.
// Otherwise the scan starts from the display name's width and stops early on
// a fixed-width value (timestamp or boolean), once maxWidth is reached, or
// when the time budget runs out. Values past an expired budget may later be
// truncated.
func (e *estimator) width(records []any, field, name string, maxWidth, explicit int) int {
	if explicit > 0 {
		return clampWidth(explicit, maxWidth)
	}

	length := runewidth.StringWidth(name)
	start := e.now()
	for _, rec := range records {
		v, _ := e.access.value(rec, field)
		switch {
		case isTimestamp(v):
			return clampWidth(max(length, runewidth.StringWidth(stringify(v, e.layout))), maxWidth)
		case isBool(v):
			return clampWidth(max(length, boolWidth), maxWidth)
		}

		length = max(length, runewidth.StringWidth(stringify(v, e.layout)))
		if length >= maxWidth {
			break
		}
		if e.now().Sub(start) > e.budget {
			break
		}
	}
	return clampWidth(length, maxWidth)
}

func clampWidth(n, maxWidth int) int {
	return max(1, min(n, maxWidth))
}

func isTimestamp(v any) bool {
	switch t := v.(type) {
	case time.Time:
		return true
	case *time.Time:
		return t != nil
	}
	return false
}

func isBool(v any) bool {
	return v != nil && reflect.TypeOf(v).Kind() == reflect.Bool
}
