package goquery

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/hdrmap"
)

// Ensure PageExtractor implements hdrmap.PageExtractor at compile time.
var _ hdrmap.PageExtractor = (*PageExtractor)(nil)

// PageExtractor reads the identifiers and declaring header of a detail page.
type PageExtractor struct {
	headingSelector string
	namespacePrefix string
	headerMarker    string
	policy          hdrmap.MatchPolicy
}

// PageOption configures a PageExtractor.
type PageOption func(*PageExtractor)

// WithHeadingSelector sets the selector of the page's primary heading.
func WithHeadingSelector(s string) PageOption {
	return func(e *PageExtractor) {
		e.headingSelector = s
	}
}

// WithNamespacePrefix sets the qualification prefix genuine identifiers carry
// in the heading.
func WithNamespacePrefix(prefix string) PageOption {
	return func(e *PageExtractor) {
		e.namespacePrefix = prefix
	}
}

// WithHeaderMarker sets the text introducing the declaring header.
func WithHeaderMarker(marker string) PageOption {
	return func(e *PageExtractor) {
		e.headerMarker = marker
	}
}

// WithMatchPolicy sets how headings are classified.
// Defaults to hdrmap.MatchAny.
func WithMatchPolicy(policy hdrmap.MatchPolicy) PageOption {
	return func(e *PageExtractor) {
		e.policy = policy
	}
}

// NewPageExtractor creates a new PageExtractor.
func NewPageExtractor(opts ...PageOption) *PageExtractor {
	e := &PageExtractor{
		headingSelector: DefaultHeadingSelector,
		namespacePrefix: DefaultNamespacePrefix,
		headerMarker:    DefaultHeaderMarker,
		policy:          hdrmap.MatchAny,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractPage returns the identifiers named in the heading and the header
// named on the "Defined in header" line. A page whose heading does not pass
// the match policy is a listing page: it yields an empty result.
func (e *PageExtractor) ExtractPage(html string) (*hdrmap.PageResult, error) {
	doc, err := parseDocument(html)
	if err != nil {
		return nil, err
	}

	heading := doc.Find(e.headingSelector).First()
	if heading.Length() == 0 {
		return &hdrmap.PageResult{}, nil
	}

	var candidates []string
	for _, c := range strings.Split(heading.Text(), ",") {
		if c = strings.TrimSpace(c); c != "" {
			candidates = append(candidates, c)
		}
	}

	selected := e.policy.Select(candidates, e.namespacePrefix)
	if len(selected) == 0 {
		return &hdrmap.PageResult{}, nil
	}

	seen := make(hdrmap.IdentifierSet, len(selected))
	ids := make([]string, 0, len(selected))
	for _, raw := range selected {
		id, err := hdrmap.NormalizeIdentifier(raw)
		if err != nil {
			return nil, fmt.Errorf("heading %q: %w", heading.Text(), err)
		}
		if seen.Has(id) {
			continue
		}
		seen.Add(id)
		ids = append(ids, id)
	}

	return &hdrmap.PageResult{
		Identifiers: ids,
		Header:      e.findHeader(doc),
	}, nil
}

// findHeader returns the text of the first code element inside the element
// whose own text carries the header marker.
func (e *PageExtractor) findHeader(doc *goquery.Document) string {
	var header string
	doc.Find("body *").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if !strings.Contains(ownText(sel), e.headerMarker) {
			return true
		}
		code := sel.Find("code").First()
		if code.Length() == 0 {
			return true
		}
		header = strings.Trim(strings.TrimSpace(code.Text()), "<>")
		return header == ""
	})
	return header
}
