package hdrmap

// IndexEntry is one qualifying symbol link found on the index page.
type IndexEntry struct {
	Identifier string
	URL        string // absolute detail page URL
}

// IndexParser turns the symbol index page into its symbol links.
type IndexParser interface {
	// ParseIndex returns entries in document order. The baseURL is used to
	// resolve relative links. An EMALFORMED error is returned when the page
	// does not have the expected structure.
	ParseIndex(html string, baseURL string) ([]IndexEntry, error)
}

// IndexMap maps an identifier to the detail page the index links it to.
type IndexMap map[string]string

// NewIndexMap builds an IndexMap from entries. When an identifier appears more
// than once, the later entry wins.
func NewIndexMap(entries []IndexEntry) IndexMap {
	m := make(IndexMap, len(entries))
	for _, e := range entries {
		m[e.Identifier] = e.URL
	}
	return m
}

// Invert returns the identifiers contributed by the index for each page URL.
func (m IndexMap) Invert() map[string]IdentifierSet {
	inv := make(map[string]IdentifierSet)
	for id, u := range m {
		set, ok := inv[u]
		if !ok {
			set = make(IdentifierSet)
			inv[u] = set
		}
		set.Add(id)
	}
	return inv
}

// DuplicatePolicy decides what happens when the index links one identifier to
// several pages.
type DuplicatePolicy int

const (
	// DuplicateLastWins keeps only the last page linked for an identifier.
	DuplicateLastWins DuplicatePolicy = iota
	// DuplicateKeepAll attributes the identifier to every page linked for it.
	DuplicateKeepAll
)

// String returns the policy name.
func (p DuplicatePolicy) String() string {
	switch p {
	case DuplicateKeepAll:
		return "keep-all"
	default:
		return "last-wins"
	}
}

// URLToIdentifiers inverts index entries into the set of identifiers each
// distinct page URL was linked from, applying policy to duplicated identifiers.
func URLToIdentifiers(entries []IndexEntry, policy DuplicatePolicy) map[string]IdentifierSet {
	if policy == DuplicateLastWins {
		return NewIndexMap(entries).Invert()
	}

	inv := make(map[string]IdentifierSet)
	for _, e := range entries {
		set, ok := inv[e.URL]
		if !ok {
			set = make(IdentifierSet)
			inv[e.URL] = set
		}
		set.Add(e.Identifier)
	}
	return inv
}
