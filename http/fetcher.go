// Package http provides an HTTP-based implementation of hdrmap.Fetcher.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/hdrmap"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 30 * time.Second

// DefaultMaxConnsPerHost matches the crawl's default worker count.
const DefaultMaxConnsPerHost = 16

// Ensure Fetcher implements hdrmap.Fetcher at compile time.
var _ hdrmap.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves page content with plain GET requests.
// It owns its transport; share one Fetcher between crawl workers.
type Fetcher struct {
	client          *http.Client
	transport       *http.Transport
	timeout         time.Duration
	maxConnsPerHost int
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (30s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxConnsPerHost limits concurrent connections to one host.
// Defaults to DefaultMaxConnsPerHost (16) if not specified.
func WithMaxConnsPerHost(n int) Option {
	return func(f *Fetcher) {
		f.maxConnsPerHost = n
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:         DefaultFetchTimeout,
		maxConnsPerHost: DefaultMaxConnsPerHost,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.transport = http.DefaultTransport.(*http.Transport).Clone()
	f.transport.MaxConnsPerHost = f.maxConnsPerHost
	f.transport.MaxIdleConnsPerHost = f.maxConnsPerHost

	f.client = &http.Client{
		Transport: f.transport,
		Timeout:   f.timeout,
	}

	return f
}

// Fetch retrieves the content at the given URL.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// Close releases idle connections held by the transport.
func (f *Fetcher) Close() error {
	f.transport.CloseIdleConnections()
	return nil
}
