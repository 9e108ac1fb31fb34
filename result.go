package hdrmap

import (
	"context"
	"time"
)

// PageStatus is the outcome of processing one distinct page URL.
type PageStatus string

// Page statuses. Resolved pages carry their own header. Reconciled and
// dropped pages had no header: reconciled ones borrowed it from a resolved
// page whose URL is a prefix of theirs, dropped ones found none.
const (
	PageResolved   PageStatus = "resolved"
	PageReconciled PageStatus = "reconciled"
	PageDropped    PageStatus = "dropped"
	PageSkipped    PageStatus = "skipped"
	PageFailed     PageStatus = "failed"
)

// PageRecord describes how one page URL contributed to the result.
type PageRecord struct {
	URL    string
	Status PageStatus

	// Header the page's identifiers were attributed to, if any.
	Header string

	// IndexIdentifiers are the identifiers the index linked to this page.
	IndexIdentifiers []string

	// PageIdentifiers are the identifiers named in the page heading.
	PageIdentifiers []string

	// ReconciledFrom is the resolved URL used for reconciliation.
	ReconciledFrom string

	ContentHash string
	Bytes       int
	Error       string
}

// Result is the outcome of a crawl.
type Result struct {
	RunID      string
	IndexURL   string
	StartedAt  time.Time
	FinishedAt time.Time
	Headers    HeaderMap
	Pages      []*PageRecord
}

// Count returns the number of pages with the given status.
func (r *Result) Count(status PageStatus) int {
	var n int
	for _, p := range r.Pages {
		if p.Status == status {
			n++
		}
	}
	return n
}

// Bytes returns the total size of fetched detail pages.
func (r *Result) Bytes() int {
	var n int
	for _, p := range r.Pages {
		n += p.Bytes
	}
	return n
}

// Emitter persists a crawl result.
type Emitter interface {
	Emit(ctx context.Context, result *Result) error
}
