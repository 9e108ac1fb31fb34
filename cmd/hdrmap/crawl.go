package main

import (
	"fmt"
	"io"
	"time"

	"github.com/fwojciec/hdrmap"
	"github.com/fwojciec/hdrmap/crawl"
	hdrslog "github.com/fwojciec/hdrmap/slog"
	"github.com/schollz/progressbar/v3"
)

// Run crawls the symbol index and writes the header map.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	progress := hdrslog.NewProgressLogger(deps.Logger)
	if c.Progress {
		progress = withProgressBar(progress, deps.Stderr)
	}

	result, err := deps.Crawler.Crawl(deps.Ctx, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error crawling: %s\n", hdrmap.ErrorMessage(err))
		return err
	}

	if err := deps.Emitter.Emit(deps.Ctx, result); err != nil {
		fmt.Fprintf(deps.Stderr, "error writing %s: %s\n", c.Output, hdrmap.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Wrote %s: %s\n", c.Output, crawl.FormatSummary(result))
	return nil
}

// progressURLWidth bounds the page URL shown next to the progress bar.
const progressURLWidth = 32

// withProgressBar advances a progress bar for every fetched page before
// passing the event on to next. The bar describes the latest page.
func withProgressBar(next crawl.ProgressFunc, w io.Writer) crawl.ProgressFunc {
	var bar *progressbar.ProgressBar
	return func(e crawl.ProgressEvent) {
		switch e.Type {
		case crawl.ProgressStarted:
			bar = progressbar.NewOptions(e.Total,
				progressbar.OptionSetWriter(w),
				progressbar.OptionSetDescription("Fetching pages"),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionShowIts(),
				progressbar.OptionSetItsString("pages/s"),
				progressbar.OptionThrottle(65*time.Millisecond),
				progressbar.OptionShowElapsedTimeOnFinish(),
				progressbar.OptionOnCompletion(func() {
					fmt.Fprintln(w)
				}),
			)
		case crawl.ProgressCompleted, crawl.ProgressFailed:
			if bar != nil {
				bar.Describe(crawl.TruncateURL(e.URL, progressURLWidth))
				_ = bar.Add(1)
			}
		case crawl.ProgressFinished:
			if bar != nil {
				_ = bar.Finish()
			}
		}
		next(e)
	}
}
