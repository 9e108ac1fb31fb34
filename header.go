package hdrmap

import "slices"

// HeaderMap maps a declaring header to the identifiers it declares.
type HeaderMap map[string]IdentifierSet

// Add unions ids into the set of header.
func (m HeaderMap) Add(header string, ids ...string) {
	set, ok := m[header]
	if !ok {
		set = make(IdentifierSet, len(ids))
		m[header] = set
	}
	set.Add(ids...)
}

// Union unions every member of ids into the set of header.
func (m HeaderMap) Union(header string, ids IdentifierSet) {
	set, ok := m[header]
	if !ok {
		set = make(IdentifierSet, len(ids))
		m[header] = set
	}
	set.Union(ids)
}

// Headers returns the header keys in lexical order.
func (m HeaderMap) Headers() []string {
	headers := make([]string, 0, len(m))
	for h := range m {
		headers = append(headers, h)
	}
	slices.Sort(headers)
	return headers
}

// IdentifierCount returns the number of (header, identifier) pairs.
func (m HeaderMap) IdentifierCount() int {
	var n int
	for _, set := range m {
		n += len(set)
	}
	return n
}

// Sorted returns the map with each identifier set as a sorted slice.
func (m HeaderMap) Sorted() map[string][]string {
	out := make(map[string][]string, len(m))
	for h, set := range m {
		out[h] = set.Sorted()
	}
	return out
}
