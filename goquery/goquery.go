// Package goquery implements hdrmap.IndexParser and hdrmap.PageExtractor
// with CSS selectors over the reference site's markup.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/hdrmap"
	"golang.org/x/net/html"
)

// Markup defaults of the reference site.
const (
	DefaultContentSelector   = "div#mw-content-text"
	DefaultMonospaceSelector = "tt"
	DefaultHrefPrefixLen     = 3 // len("/w/")
	DefaultHeadingSelector   = "#firstHeading"
	DefaultNamespacePrefix   = "std::"
	DefaultHeaderMarker      = "Defined in header"
)

func parseDocument(h string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(h))
	if err != nil {
		return nil, hdrmap.Errorf(hdrmap.EINVALID, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

// resolveURL resolves a relative URL against a base URL.
// Fragments are stripped since they do not change the fetched page.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""
	return resolved.String()
}

// ownText returns the text of the selection's direct text children,
// ignoring text inside descendant elements. Runs of whitespace collapse
// to one space.
func ownText(sel *goquery.Selection) string {
	var b strings.Builder
	for _, n := range sel.Nodes {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				b.WriteString(c.Data)
				b.WriteByte(' ')
			}
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
