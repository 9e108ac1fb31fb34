package slog

import (
	"fmt"
	"log/slog"

	"github.com/fwojciec/hdrmap"
	"github.com/fwojciec/hdrmap/crawl"
)

// NewProgressLogger returns a crawl.ProgressFunc reporting crawl milestones
// and the pages whose identifiers did not reach a header.
func NewProgressLogger(logger *slog.Logger) crawl.ProgressFunc {
	return func(e crawl.ProgressEvent) {
		switch e.Type {
		case crawl.ProgressStarted:
			logger.Info("crawl started", "pages", e.Total)
		case crawl.ProgressFailed:
			logger.Warn("page failed", "url", e.URL, "err", e.Error)
		case crawl.ProgressCompleted:
			switch e.Page.Status {
			case hdrmap.PageSkipped:
				logger.Info("page skipped", "url", e.URL, "reason", "listing page")
			case hdrmap.PageDropped:
				logger.Debug("page has no header", "url", e.URL, "identifiers", e.Page.PageIdentifiers)
			default:
				logger.Debug("page resolved", "url", e.URL, "header", e.Page.Header)
			}
		case crawl.ProgressReconciled:
			if e.Page.Status == hdrmap.PageReconciled {
				logger.Info("page reconciled",
					"url", e.URL,
					"header", e.Page.Header,
					"from", e.Page.ReconciledFrom,
				)
			} else {
				logger.Info("page dropped",
					"url", e.URL,
					"identifiers", e.Page.IndexIdentifiers,
				)
			}
		case crawl.ProgressFinished:
			logger.Info("crawl finished", "pages", e.Total)
		}
	}
}

// NewRetryLogger returns a crawl.LogFunc writing retry attempts as warnings.
func NewRetryLogger(logger *slog.Logger) crawl.LogFunc {
	return func(format string, args ...any) {
		logger.Warn(fmt.Sprintf(format, args...))
	}
}
