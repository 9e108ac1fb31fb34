package crawl

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/hdrmap"
)

// computeHash computes a hash of the content using xxhash.
func computeHash(content string) string {
	h := xxhash.Sum64String(content)
	return fmt.Sprintf("%x", h)
}

// TruncateURL shortens u to at most maxLen bytes for display. The tail is
// kept behind a "..." marker, cut at a path separator when one falls inside it.
func TruncateURL(u string, maxLen int) string {
	switch {
	case len(u) <= maxLen:
		return u
	case maxLen <= len(ellipsis):
		return ellipsis[:max(maxLen, 0)]
	}
	tail := u[len(u)-(maxLen-len(ellipsis)):]
	if i := strings.IndexByte(tail, '/'); i >= 0 {
		tail = "/" + strings.TrimLeft(tail[i:], "/")
	}
	return ellipsis + tail
}

const ellipsis = "..."

// FormatBytes formats bytes in human-readable form.
func FormatBytes(bytes int) string {
	const (
		KB = 1024
		MB = KB * 1024
	)
	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// FormatSummary describes a crawl result in one line.
func FormatSummary(r *hdrmap.Result) string {
	return fmt.Sprintf("%d headers, %d identifiers from %d pages (%d resolved, %d reconciled, %d dropped, %d skipped, %d failed), %s",
		len(r.Headers),
		r.Headers.IdentifierCount(),
		len(r.Pages),
		r.Count(hdrmap.PageResolved),
		r.Count(hdrmap.PageReconciled),
		r.Count(hdrmap.PageDropped),
		r.Count(hdrmap.PageSkipped),
		r.Count(hdrmap.PageFailed),
		FormatBytes(r.Bytes()),
	)
}
