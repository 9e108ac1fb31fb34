package hdrmap

import (
	"slices"
)

// NormalizeIdentifier returns the longest identifier lexeme
// ([A-Za-z_][A-Za-z0-9_]*) starting at the first letter or underscore of raw.
// Leading decorations such as parentheses, angle brackets, whitespace or a
// "::" qualifier are skipped.
//
// An EMALFORMED error is returned when no character of raw can begin a lexeme.
// Callers treat it as fatal: the page markup no longer matches what the
// parsers expect.
func NormalizeIdentifier(raw string) (string, error) {
	start := -1
	for i := 0; i < len(raw); i++ {
		if isIdentStart(raw[i]) {
			start = i
			break
		}
	}
	if start < 0 {
		return "", Errorf(EMALFORMED, "no identifier in %q", raw)
	}

	end := start + 1
	for end < len(raw) && isIdentPart(raw[end]) {
		end++
	}
	return raw[start:end], nil
}

func isIdentStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || ('0' <= c && c <= '9')
}

// IdentifierSet is a set of identifiers.
type IdentifierSet map[string]struct{}

// NewIdentifierSet returns a set holding ids.
func NewIdentifierSet(ids ...string) IdentifierSet {
	s := make(IdentifierSet, len(ids))
	s.Add(ids...)
	return s
}

// Add inserts ids into the set.
func (s IdentifierSet) Add(ids ...string) {
	for _, id := range ids {
		s[id] = struct{}{}
	}
}

// Union inserts every member of other into the set.
func (s IdentifierSet) Union(other IdentifierSet) {
	for id := range other {
		s[id] = struct{}{}
	}
}

// Has reports whether id is a member of the set.
func (s IdentifierSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the members in lexical order.
func (s IdentifierSet) Sorted() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
