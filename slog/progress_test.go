package slog_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/hdrmap"
	"github.com/fwojciec/hdrmap/crawl"
	hdrslog "github.com/fwojciec/hdrmap/slog"
	"github.com/stretchr/testify/assert"
)

func TestProgressLogger(t *testing.T) {
	t.Parallel()

	t.Run("reports skipped and dropped pages at info level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		progress := hdrslog.NewProgressLogger(slog.New(slog.NewTextHandler(&buf, nil)))

		progress(crawl.ProgressEvent{Type: crawl.ProgressStarted, Total: 3})
		progress(crawl.ProgressEvent{
			Type: crawl.ProgressCompleted,
			URL:  "https://site/index",
			Page: &hdrmap.PageRecord{Status: hdrmap.PageSkipped},
		})
		progress(crawl.ProgressEvent{
			Type: crawl.ProgressCompleted,
			URL:  "https://site/ok",
			Page: &hdrmap.PageRecord{Status: hdrmap.PageResolved, Header: "cstdio"},
		})
		progress(crawl.ProgressEvent{
			Type: crawl.ProgressReconciled,
			URL:  "https://site/u/2",
			Page: &hdrmap.PageRecord{Status: hdrmap.PageDropped, IndexIdentifiers: []string{"baz"}},
		})

		output := buf.String()
		assert.Contains(t, output, "crawl started")
		assert.Contains(t, output, "pages=3")
		assert.Contains(t, output, "page skipped")
		assert.Contains(t, output, "url=https://site/index")
		assert.Contains(t, output, "page dropped")
		assert.Contains(t, output, "identifiers=[baz]")
		assert.NotContains(t, output, "page resolved")
	})

	t.Run("reports reconciliation source", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		progress := hdrslog.NewProgressLogger(slog.New(slog.NewTextHandler(&buf, nil)))

		progress(crawl.ProgressEvent{
			Type: crawl.ProgressReconciled,
			URL:  "https://site/a/b",
			Page: &hdrmap.PageRecord{
				Status:         hdrmap.PageReconciled,
				Header:         "a.h",
				ReconciledFrom: "https://site/a",
			},
		})

		output := buf.String()
		assert.Contains(t, output, "page reconciled")
		assert.Contains(t, output, "header=a.h")
		assert.Contains(t, output, "from=https://site/a")
	})

	t.Run("reports failures as warnings", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		progress := hdrslog.NewProgressLogger(slog.New(slog.NewTextHandler(&buf, nil)))

		progress(crawl.ProgressEvent{
			Type:  crawl.ProgressFailed,
			URL:   "https://site/down",
			Page:  &hdrmap.PageRecord{Status: hdrmap.PageFailed},
			Error: errors.New("timeout"),
		})

		output := buf.String()
		assert.Contains(t, output, "level=WARN")
		assert.Contains(t, output, "err=timeout")
	})
}

func TestRetryLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logf := hdrslog.NewRetryLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	logf("retry %s (attempt %d): %v", "https://site/x", 2, errors.New("reset"))

	output := buf.String()
	assert.Contains(t, output, "level=WARN")
	assert.Contains(t, output, "retry https://site/x (attempt 2): reset")
}
