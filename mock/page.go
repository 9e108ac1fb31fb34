package mock

import "github.com/fwojciec/hdrmap"

var _ hdrmap.PageExtractor = (*PageExtractor)(nil)

// PageExtractor is a mock implementation of hdrmap.PageExtractor.
type PageExtractor struct {
	ExtractPageFn func(html string) (*hdrmap.PageResult, error)
}

func (e *PageExtractor) ExtractPage(html string) (*hdrmap.PageResult, error) {
	return e.ExtractPageFn(html)
}
