package tableprint

import "slices"

// selectFields decides which fields become columns. Names from Only, Include
// and Except are validated against first, the first record of the set.
//
// A non-empty valid Only list wins outright. Otherwise the record's default
// fields are extended with Include and then reduced by Except, keeping
// first-seen order.
func selectFields(first any, opts Options, access *fieldAccess) []string {
	if only := validFields(first, opts.Only, access); len(only) > 0 {
		return only
	}

	include := validFields(first, opts.Include, access)
	except := validFields(first, opts.Except, access)

	fields := unique(append(slices.Clone(access.defaults(first)), include...))
	return slices.DeleteFunc(fields, func(f string) bool {
		return slices.Contains(except, f)
	})
}

// validFields drops empty names and names first does not support.
func validFields(first any, names []string, access *fieldAccess) []string {
	var valid []string
	for _, name := range names {
		if name == "" || !access.supports(first, name) {
			continue
		}
		valid = append(valid, name)
	}
	return unique(valid)
}

// unique removes repeated names in place, keeping the first occurrence.
func unique(names []string) []string {
	seen := make(map[string]bool, len(names))
	return slices.DeleteFunc(names, func(name string) bool {
		if seen[name] {
			return true
		}
		seen[name] = true
		return false
	})
}
