package tableprint

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
)

// DefaultTimeLayout renders timestamps at a fixed width.
const DefaultTimeLayout = "2006-01-02 15:04:05 -0700"

const ellipsis = "..."

// formatCell left-justifies s into exactly width cells. Text wider than the
// column is cut to fit and ends in an ellipsis unless the limit is too small
// to hold one.
func formatCell(s string, width, maxWidth int) string {
	return alignLeft(truncate(s, min(width, maxWidth)), width)
}

func truncate(s string, limit int) string {
	if runewidth.StringWidth(s) <= limit {
		return s
	}
	if limit <= len(ellipsis) {
		return runewidth.Truncate(s, limit, "")
	}
	return runewidth.Truncate(s, limit, ellipsis)
}

func alignLeft(s string, width int) string {
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	return s + strings.Repeat(" ", pad)
}

// stringify returns the text form of a field value. Missing values and nil
// pointers render empty.
func stringify(v any, layout string) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case time.Time:
		return x.Format(layout)
	case *time.Time:
		if x == nil {
			return ""
		}
		return x.Format(layout)
	case fmt.Stringer, error:
		if isNil(v) {
			return ""
		}
		return fmt.Sprint(v)
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ""
		}
		return stringify(rv.Elem().Interface(), layout)
	}
	return fmt.Sprint(v)
}
