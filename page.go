package hdrmap

import "strings"

// PageResult is what a detail page yields.
type PageResult struct {
	// Identifiers declared in the page heading, normalized and deduplicated.
	Identifiers []string

	// Header is the declaring header without its angle-bracket delimiters.
	// Empty when the page has no "Defined in header" line.
	Header string
}

// Skipped reports whether the page was classified as a listing page rather
// than a symbol detail page.
func (r *PageResult) Skipped() bool {
	return r.Header == "" && len(r.Identifiers) == 0
}

// PageExtractor turns one detail page into its identifiers and header.
type PageExtractor interface {
	// ExtractPage processes raw HTML of a detail page.
	// An EMALFORMED error is returned when a heading candidate that should
	// name an identifier contains no identifier lexeme.
	ExtractPage(html string) (*PageResult, error)
}

// MatchPolicy decides whether a heading names genuine namespace members.
type MatchPolicy int

const (
	// MatchAny accepts a heading when at least one candidate carries the
	// namespace prefix. Candidates without it are ignored.
	MatchAny MatchPolicy = iota
	// MatchAll accepts a heading only when every candidate carries the
	// namespace prefix.
	MatchAll
)

// String returns the policy name.
func (p MatchPolicy) String() string {
	switch p {
	case MatchAll:
		return "all"
	default:
		return "any"
	}
}

// ParseMatchPolicy parses "any" or "all".
func ParseMatchPolicy(s string) (MatchPolicy, error) {
	switch s {
	case "any", "":
		return MatchAny, nil
	case "all":
		return MatchAll, nil
	default:
		return MatchAny, Errorf(EINVALID, "unknown match policy %q", s)
	}
}

// Select returns the candidates to treat as identifiers, with prefix stripped.
// It returns nil when the heading is classified as a listing page.
func (p MatchPolicy) Select(candidates []string, prefix string) []string {
	var selected []string
	for _, c := range candidates {
		if rest, ok := strings.CutPrefix(c, prefix); ok {
			selected = append(selected, rest)
		} else if p == MatchAll {
			return nil
		}
	}
	return selected
}
