package tableprint

import (
	"reflect"
	"runtime"
	"slices"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Fielded declares the fields a record shows by default, for example the
// column names of a database-backed model. It takes precedence over struct
// reflection.
type Fielded interface {
	Fields() []string
}

// Getter resolves field values itself. ok reports whether the record
// supports the field at all; a supported field may still hold nil.
type Getter interface {
	Get(field string) (value any, ok bool)
}

// tagName is the struct tag consulted for field names. `tp:"id"` renames a
// field and `tp:"-"` hides it.
const tagName = "tp"

var timeType = reflect.TypeFor[time.Time]()

// Methods that satisfy the readable-member shape but are never data.
var reservedMethods = map[string]bool{
	"Error":    true,
	"Fields":   true,
	"GoString": true,
	"String":   true,
}

// typeInfo is the field metadata of one record type.
type typeInfo struct {
	defaults []string
	fields   map[string][]int
	methods  map[string]bool
}

// fieldAccess reads named fields from records. Type metadata is resolved
// once per record type and kept for the lifetime of a single render.
type fieldAccess struct {
	types map[reflect.Type]*typeInfo
}

func newFieldAccess() *fieldAccess {
	return &fieldAccess{types: make(map[reflect.Type]*typeInfo)}
}

func (a *fieldAccess) info(t reflect.Type) *typeInfo {
	if ti, ok := a.types[t]; ok {
		return ti
	}
	ti := inspectType(t)
	a.types[t] = ti
	return ti
}

// defaults returns the fields shown for rec when no selection applies.
func (a *fieldAccess) defaults(rec any) []string {
	if f, ok := rec.(Fielded); ok {
		return f.Fields()
	}
	return a.info(reflect.TypeOf(rec)).defaults
}

// supports reports whether rec can produce a value for field. Methods are
// never called here.
func (a *fieldAccess) supports(rec any, field string) bool {
	if g, ok := rec.(Getter); ok {
		if _, ok := g.Get(field); ok {
			return true
		}
	}
	if f, ok := rec.(Fielded); ok && slices.Contains(f.Fields(), field) {
		return true
	}
	rv := reflect.ValueOf(rec)
	ti := a.info(rv.Type())
	if _, ok := ti.fields[field]; ok || ti.methods[field] {
		return true
	}
	_, ok := mapValue(rv, field)
	return ok
}

// value reads field from rec. It never panics on unsupported fields; it
// reports them with ok == false instead.
func (a *fieldAccess) value(rec any, field string) (any, bool) {
	if g, ok := rec.(Getter); ok {
		if v, ok := g.Get(field); ok {
			return v, true
		}
	}
	rv := reflect.ValueOf(rec)
	if !rv.IsValid() {
		return nil, false
	}
	ti := a.info(rv.Type())
	if idx, ok := ti.fields[field]; ok {
		sv := reflect.Indirect(rv)
		if !sv.IsValid() {
			return nil, false
		}
		fv, err := sv.FieldByIndexErr(idx)
		if err != nil {
			// nil embedded pointer on the path
			return nil, false
		}
		return fv.Interface(), true
	}
	if ti.methods[field] {
		if rv.Kind() == reflect.Pointer && rv.IsNil() {
			return nil, false
		}
		return callMethod(rv, field)
	}
	return mapValue(rv, field)
}

// callMethod calls a zero-argument method. A method promoted through a nil
// embedded pointer fails at run time; the field is then reported missing.
func callMethod(rv reflect.Value, name string) (v any, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if _, isRuntime := r.(runtime.Error); !isRuntime {
				panic(r)
			}
			v, ok = nil, false
		}
	}()
	return rv.MethodByName(name).Call(nil)[0].Interface(), true
}

func inspectType(t reflect.Type) *typeInfo {
	ti := &typeInfo{
		fields:  make(map[string][]int),
		methods: make(map[string]bool),
	}
	seen := make(map[string]bool)
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			ti.defaults = append(ti.defaults, name)
		}
	}

	st := t
	if st.Kind() == reflect.Pointer {
		st = st.Elem()
	}
	// Timestamps are structs, but their state is not a set of fields.
	plain := st.Kind() == reflect.Struct && st != timeType

	if plain {
		for _, f := range reflect.VisibleFields(st) {
			if !f.IsExported() || f.Anonymous {
				continue
			}
			name := f.Name
			if tag, ok := f.Tag.Lookup(tagName); ok {
				tag, _, _ = strings.Cut(tag, ",")
				if tag == "-" {
					continue
				}
				if tag != "" {
					name = tag
				}
			}
			if _, dup := ti.fields[name]; dup {
				continue
			}
			ti.fields[name] = f.Index
			add(name)
		}
	}

	for i := range t.NumMethod() {
		m := t.Method(i)
		// The receiver is the first input of a method obtained from a type.
		if m.Type.NumIn() != 1 || m.Type.NumOut() != 1 {
			continue
		}
		if reservedMethods[m.Name] || isSetter(m.Name) {
			continue
		}
		ti.methods[m.Name] = true
		if plain {
			add(m.Name)
		}
	}
	return ti
}

// isSetter reports writer-style names such as SetName.
func isSetter(name string) bool {
	rest, ok := strings.CutPrefix(name, "Set")
	if !ok {
		return false
	}
	if rest == "" {
		return true
	}
	r, _ := utf8.DecodeRuneInString(rest)
	return unicode.IsUpper(r) || r == '_'
}

// mapValue looks key up in a string-keyed map.
func mapValue(rv reflect.Value, key string) (any, bool) {
	rv = reflect.Indirect(rv)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	v := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
	if !v.IsValid() {
		return nil, false
	}
	return v.Interface(), true
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
