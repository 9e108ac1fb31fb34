package crawl

import (
	"slices"
	"strings"
	"sync"

	"github.com/fwojciec/hdrmap"
)

// Accumulator collects page outcomes into a HeaderMap.
// It is safe for concurrent use by multiple goroutines.
type Accumulator struct {
	mu         sync.Mutex
	headers    hdrmap.HeaderMap
	resolved   map[string]string               // page URL -> header
	unresolved map[string]hdrmap.IdentifierSet // page URL -> index identifiers
	pages      map[string]*hdrmap.PageRecord
}

// NewAccumulator returns an empty Accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{
		headers:    make(hdrmap.HeaderMap),
		resolved:   make(map[string]string),
		unresolved: make(map[string]hdrmap.IdentifierSet),
		pages:      make(map[string]*hdrmap.PageRecord),
	}
}

// Resolve attributes the page's own identifiers and the index identifiers
// pointing at it to header.
func (a *Accumulator) Resolve(rec *hdrmap.PageRecord, header string, indexIDs hdrmap.IdentifierSet) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.headers.Add(header, rec.PageIdentifiers...)
	a.headers.Union(header, indexIDs)
	a.resolved[rec.URL] = header

	rec.Status = hdrmap.PageResolved
	rec.Header = header
	a.pages[rec.URL] = rec
}

// Unresolve remembers a page without header for reconciliation.
// It contributes nothing to the HeaderMap, and counts as dropped, until
// Reconcile finds it a header.
func (a *Accumulator) Unresolve(rec *hdrmap.PageRecord, indexIDs hdrmap.IdentifierSet) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.unresolved[rec.URL] = indexIDs

	rec.Status = hdrmap.PageDropped
	a.pages[rec.URL] = rec
}

// Skip records a listing page. Its identifiers are discarded.
func (a *Accumulator) Skip(rec *hdrmap.PageRecord) {
	a.record(rec, hdrmap.PageSkipped)
}

// Fail records a page that could not be fetched.
func (a *Accumulator) Fail(rec *hdrmap.PageRecord) {
	a.record(rec, hdrmap.PageFailed)
}

func (a *Accumulator) record(rec *hdrmap.PageRecord, status hdrmap.PageStatus) {
	a.mu.Lock()
	defer a.mu.Unlock()

	rec.Status = status
	a.pages[rec.URL] = rec
}

// Reconcile attributes each unresolved page to the header of the first
// resolved page (in URL order) whose URL is a string prefix of its own.
// Unmatched pages stay dropped. The records of all formerly unresolved pages
// are returned in URL order.
func (a *Accumulator) Reconcile() []*hdrmap.PageRecord {
	a.mu.Lock()
	defer a.mu.Unlock()

	resolvedURLs := make([]string, 0, len(a.resolved))
	for u := range a.resolved {
		resolvedURLs = append(resolvedURLs, u)
	}
	slices.Sort(resolvedURLs)

	unresolvedURLs := make([]string, 0, len(a.unresolved))
	for u := range a.unresolved {
		unresolvedURLs = append(unresolvedURLs, u)
	}
	slices.Sort(unresolvedURLs)

	records := make([]*hdrmap.PageRecord, 0, len(unresolvedURLs))
	for _, u := range unresolvedURLs {
		rec := a.pages[u]
		for _, r := range resolvedURLs {
			if !strings.HasPrefix(u, r) {
				continue
			}
			header := a.resolved[r]
			a.headers.Union(header, a.unresolved[u])
			rec.Status = hdrmap.PageReconciled
			rec.Header = header
			rec.ReconciledFrom = r
			break
		}
		records = append(records, rec)
	}
	clear(a.unresolved)

	return records
}

// Headers returns the accumulated HeaderMap.
func (a *Accumulator) Headers() hdrmap.HeaderMap {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.headers
}

// Pages returns every recorded page in URL order.
func (a *Accumulator) Pages() []*hdrmap.PageRecord {
	a.mu.Lock()
	defer a.mu.Unlock()

	pages := make([]*hdrmap.PageRecord, 0, len(a.pages))
	for _, p := range a.pages {
		pages = append(pages, p)
	}
	slices.SortFunc(pages, func(x, y *hdrmap.PageRecord) int {
		return strings.Compare(x.URL, y.URL)
	})
	return pages
}
