package hdrmap

import "context"

// Fetcher retrieves page content from URLs.
type Fetcher interface {
	// Fetch performs one retrieval of the URL and returns its body.
	// Retrying is the caller's concern.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases transport resources.
	Close() error
}
