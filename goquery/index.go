package goquery

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/hdrmap"
)

// Ensure IndexParser implements hdrmap.IndexParser at compile time.
var _ hdrmap.IndexParser = (*IndexParser)(nil)

// IndexParser extracts symbol links from the symbol index page.
//
// An anchor qualifies when it has both href and title, its href minus a fixed
// prefix equals the title with underscores written as spaces, and it wraps a
// monospace element. The last two checks separate symbol links from
// navigation and prose links.
type IndexParser struct {
	contentSelector   string
	monospaceSelector string
	hrefPrefixLen     int
}

// IndexOption configures an IndexParser.
type IndexOption func(*IndexParser)

// WithContentSelector sets the selector of the primary content region.
func WithContentSelector(s string) IndexOption {
	return func(p *IndexParser) {
		p.contentSelector = s
	}
}

// WithMonospaceSelector sets the selector of the inline code element
// wrapping the identifier text.
func WithMonospaceSelector(s string) IndexOption {
	return func(p *IndexParser) {
		p.monospaceSelector = s
	}
}

// WithHrefPrefixLen sets how many leading bytes of the href are ignored
// when comparing it with the title.
func WithHrefPrefixLen(n int) IndexOption {
	return func(p *IndexParser) {
		p.hrefPrefixLen = n
	}
}

// NewIndexParser creates a new IndexParser.
func NewIndexParser(opts ...IndexOption) *IndexParser {
	p := &IndexParser{
		contentSelector:   DefaultContentSelector,
		monospaceSelector: DefaultMonospaceSelector,
		hrefPrefixLen:     DefaultHrefPrefixLen,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseIndex returns the qualifying symbol links in document order.
func (p *IndexParser) ParseIndex(html string, baseURL string) ([]hdrmap.IndexEntry, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, hdrmap.Errorf(hdrmap.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := parseDocument(html)
	if err != nil {
		return nil, err
	}

	root := doc.Find(p.contentSelector).First()
	if root.Length() == 0 {
		return nil, hdrmap.Errorf(hdrmap.EMALFORMED, "content region %q not found on %s", p.contentSelector, baseURL)
	}

	var entries []hdrmap.IndexEntry
	var parseErr error
	root.Find("a[href][title]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		title, _ := sel.Attr("title")
		if !p.isSymbolLink(href, title) {
			return true
		}

		mono := sel.ChildrenFiltered(p.monospaceSelector).First()
		if mono.Length() == 0 {
			return true
		}

		raw := strings.Trim(mono.Text(), "()<>")
		id, err := hdrmap.NormalizeIdentifier(raw)
		if err != nil {
			parseErr = fmt.Errorf("index link %s: %w", href, err)
			return false
		}

		resolved := resolveURL(base, href)
		if resolved == "" {
			return true
		}

		entries = append(entries, hdrmap.IndexEntry{Identifier: id, URL: resolved})
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return entries, nil
}

// isSymbolLink checks that the href path (after the fixed prefix) and the
// title name the same page.
func (p *IndexParser) isSymbolLink(href, title string) bool {
	if href == "" || title == "" || len(href) < p.hrefPrefixLen {
		return false
	}
	return strings.ReplaceAll(href[p.hrefPrefixLen:], "_", " ") == title
}
