package mock

import "github.com/fwojciec/hdrmap"

var _ hdrmap.IndexParser = (*IndexParser)(nil)

// IndexParser is a mock implementation of hdrmap.IndexParser.
type IndexParser struct {
	ParseIndexFn func(html string, baseURL string) ([]hdrmap.IndexEntry, error)
}

func (p *IndexParser) ParseIndex(html string, baseURL string) ([]hdrmap.IndexEntry, error) {
	return p.ParseIndexFn(html, baseURL)
}
