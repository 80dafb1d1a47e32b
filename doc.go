// Package tableprint renders records as aligned, human-readable text tables.
//
// The central entry point is [Render], which accepts [Options] and variadic
// records of any type. It picks the fields to show, sizes a column for each,
// and returns a header row, a rule of hyphens, and one row per record:
//
//	NAME   | AGE  | ACTIVE
//	----------------------
//	Alice  | 30   | true
//	Bob    | 25   | false
//
// [Write], [Print], [RenderSeq] and [WriteSeq] are thin wrappers for writers,
// standard output and iterators.
//
// # Fields
//
// The default fields of a record depend on its type:
//
//   - [Fielded] records declare them, e.g. a model's column names
//   - structs expose exported fields in declaration order, then exported
//     methods that take no arguments and return one value; setters such as
//     SetName are skipped
//   - numbers, strings, slices, maps and timestamps expose none
//
// Struct tags rename or hide fields:
//
//	type User struct {
//		ID       int    `tp:"id"`
//		Password string `tp:"-"`
//	}
//
// [Getter] records resolve values themselves. String-keyed maps support their
// keys, so Only and Include work on them even though they have no defaults.
//
// # Selection
//
// Options.Only, Options.Include and Options.Except are validated against the
// first record: empty names and names it does not support are dropped. A
// non-empty valid Only list replaces everything else. Otherwise the default
// fields are extended by Include and reduced by Except, in first-seen order.
//
// # Widths
//
// Each column starts as wide as its header and grows with the values it
// samples, up to its maximum (30 unless overridden). Sampling stops early at
// the first timestamp or boolean, once the maximum is reached, or after
// Options.SampleBudget (2s) has elapsed. A fixed width from
// [ColumnOptions].Width skips sampling. Longer values are truncated and end in
// "...".
//
// # Fallbacks
//
// Rendering never fails. With no records the output is [NoData]; when no
// field resolves, it is a raw dump of the records.
//
// # Configuration
//
// [LoadOptions] and [DecodeOptions] read options from YAML, JSON or TOML.
// Field lists may be a single name or a list:
//
//	only: name
//	except: [password, token]
//	max_field_length: 40
//	columns:
//	  created_at:
//	    name: created
//	    field_length: 10
//
// # Errors
//
// The package exports one sentinel error for option handling:
//
//   - [ErrInvalidOptions]: options that fail to decode or validate
package tableprint
