// Package crawl provides symbol index crawling orchestration.
// It coordinates index parsing, deduplicated concurrent fetching, detail
// page extraction, and reconciliation of pages without a declaring header.
package crawl

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/fwojciec/hdrmap"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the default number of pages fetched at once.
const DefaultConcurrency = 16

// Crawler orchestrates the crawl of a symbol index and its detail pages.
type Crawler struct {
	IndexURL    string
	Fetcher     hdrmap.Fetcher
	Index       hdrmap.IndexParser
	Extractor   hdrmap.PageExtractor
	Duplicates  hdrmap.DuplicatePolicy
	Concurrency int
	Retry       *RetryPolicy // nil uses DefaultRetryPolicy
	RetryLog    LogFunc
}

// ProgressEvent reports progress during a crawl operation.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Page      *hdrmap.PageRecord
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	// ProgressStarted is sent once the index is parsed; Total holds the
	// number of distinct pages.
	ProgressStarted ProgressType = iota
	// ProgressCompleted is sent for each page that was fetched and extracted.
	ProgressCompleted
	// ProgressFailed is sent for each page whose retries ran out.
	ProgressFailed
	// ProgressReconciled is sent for each page without header after
	// reconciliation, whether or not a header was found.
	ProgressReconciled
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// pageOutcome holds the outcome of processing a single URL.
type pageOutcome struct {
	record   *hdrmap.PageRecord
	indexIDs hdrmap.IdentifierSet
	result   *hdrmap.PageResult
	fetchErr error
	err      error
}

// Crawl parses the index, processes every distinct detail page once and
// reconciles pages without a header. It fails on the first malformed page;
// pages that could not be fetched are recorded as failed.
// The progress callback, if provided, receives events as crawling proceeds.
func (c *Crawler) Crawl(ctx context.Context, progress ProgressFunc) (*hdrmap.Result, error) {
	if c.IndexURL == "" {
		return nil, hdrmap.Errorf(hdrmap.EINVALID, "index URL required")
	}

	result := &hdrmap.Result{
		RunID:     uuid.NewString(),
		IndexURL:  c.IndexURL,
		StartedAt: time.Now().UTC(),
	}

	indexHTML, err := FetchWithRetry(ctx, c.IndexURL, c.Fetcher.Fetch, c.RetryLog, c.retryPolicy())
	if err != nil {
		return nil, fmt.Errorf("fetch index: %w", err)
	}

	entries, err := c.Index.ParseIndex(indexHTML, c.IndexURL)
	if err != nil {
		return nil, fmt.Errorf("parse index: %w", err)
	}

	byURL := hdrmap.URLToIdentifiers(entries, c.Duplicates)
	urls := make([]string, 0, len(byURL))
	for u := range byURL {
		urls = append(urls, u)
	}
	slices.Sort(urls)

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	total := len(urls)
	if progress != nil {
		progress(ProgressEvent{
			Type:  ProgressStarted,
			Total: total,
		})
	}

	// Channel for collecting outcomes
	outcomeCh := make(chan pageOutcome, concurrency)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var waitErr error
	go func() {
		for _, u := range urls {
			g.Go(func() error {
				out := c.processURL(gctx, u, byURL[u])
				if out.err != nil {
					return out.err
				}
				outcomeCh <- out
				return nil
			})
		}
		waitErr = g.Wait()
		close(outcomeCh)
	}()

	acc := NewAccumulator()
	var completed int
	for out := range outcomeCh {
		completed++
		rec := out.record

		eventType := ProgressCompleted
		switch {
		case out.result == nil:
			acc.Fail(rec)
			eventType = ProgressFailed
		case out.result.Header != "":
			acc.Resolve(rec, out.result.Header, out.indexIDs)
		case out.result.Skipped():
			acc.Skip(rec)
		default:
			acc.Unresolve(rec, out.indexIDs)
		}

		if progress != nil {
			progress(ProgressEvent{
				Type:      eventType,
				Completed: completed,
				Total:     total,
				URL:       rec.URL,
				Page:      rec,
				Error:     out.fetchErr,
			})
		}
	}
	if waitErr != nil {
		return nil, waitErr
	}

	for _, rec := range acc.Reconcile() {
		if progress != nil {
			progress(ProgressEvent{
				Type: ProgressReconciled,
				URL:  rec.URL,
				Page: rec,
			})
		}
	}

	result.Headers = acc.Headers()
	result.Pages = acc.Pages()
	result.FinishedAt = time.Now().UTC()

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: total,
			Total:     total,
		})
	}

	return result, nil
}

// processURL fetches and extracts a single page. A non-nil err in the
// outcome aborts the crawl; a fetch that ran out of retries does not.
func (c *Crawler) processURL(ctx context.Context, url string, indexIDs hdrmap.IdentifierSet) pageOutcome {
	out := pageOutcome{
		record: &hdrmap.PageRecord{
			URL:              url,
			IndexIdentifiers: indexIDs.Sorted(),
		},
		indexIDs: indexIDs,
	}

	if err := ctx.Err(); err != nil {
		out.err = err
		return out
	}

	html, err := FetchWithRetry(ctx, url, c.Fetcher.Fetch, c.RetryLog, c.retryPolicy())
	if err != nil {
		if ctx.Err() != nil {
			out.err = ctx.Err()
			return out
		}
		out.record.Error = err.Error()
		out.fetchErr = err
		return out
	}
	out.record.ContentHash = computeHash(html)
	out.record.Bytes = len(html)

	page, err := c.Extractor.ExtractPage(html)
	if err != nil {
		out.err = fmt.Errorf("extract %s: %w", url, err)
		return out
	}
	out.record.PageIdentifiers = page.Identifiers
	out.result = page

	return out
}

func (c *Crawler) retryPolicy() RetryPolicy {
	if c.Retry == nil {
		return DefaultRetryPolicy()
	}
	return *c.Retry
}
