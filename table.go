package tableprint

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Column is the rendering plan for one selected field. Columns are built
// once per render and never shared between renders.
type Column struct {
	// Name is the display name; headers render it upper-cased.
	Name string
	// Field is the record field the column reads.
	Field string
	// Width is the exact cell width of every row in the column.
	Width int
	// MaxWidth caps Width and bounds cell text.
	MaxWidth int
}

func (c Column) header() string {
	return formatCell(strings.ToUpper(c.Name), c.Width, c.MaxWidth)
}

func (c Column) cell(s string) string {
	return formatCell(s, c.Width, c.MaxWidth)
}

// renderer holds the per-render state: options, the field access cache and
// the width estimator.
type renderer struct {
	opts   Options
	access *fieldAccess
	est    estimator
}

func newRenderer(opts Options) *renderer {
	access := newFieldAccess()
	return &renderer{
		opts:   opts,
		access: access,
		est: estimator{
			access: access,
			budget: opts.sampleBudget(),
			now:    opts.clock(),
			layout: opts.timeLayout(),
		},
	}
}

// columns selects the fields of records and sizes a column for each.
func (r *renderer) columns(records []any) []Column {
	if len(records) == 0 {
		return nil
	}
	fields := selectFields(records[0], r.opts, r.access)
	cols := make([]Column, len(fields))
	for i, field := range fields {
		name := r.opts.displayName(field)
		maxWidth := r.opts.maxWidth(field)
		cols[i] = Column{
			Name:     name,
			Field:    field,
			Width:    r.est.width(records, field, name, maxWidth, r.opts.Columns[field].Width),
			MaxWidth: maxWidth,
		}
	}
	return cols
}

func (r *renderer) render(records []any) string {
	if len(records) == 0 {
		return NoData
	}
	cols := r.columns(records)
	if len(cols) == 0 {
		return dump(records, r.est.layout)
	}

	lines := make([]string, 0, len(records)+2)
	cells := make([]string, len(cols))
	for i, col := range cols {
		cells[i] = col.header()
	}
	header := strings.Join(cells, Separator)
	lines = append(lines, header, strings.Repeat("-", runewidth.StringWidth(header)))

	for _, rec := range records {
		for i, col := range cols {
			v, _ := r.access.value(rec, col.Field)
			cells[i] = col.cell(stringify(v, r.est.layout))
		}
		lines = append(lines, strings.Join(cells, Separator))
	}
	return strings.Join(lines, "\n")
}
