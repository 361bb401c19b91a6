// Package http provides the direct (non-rendered) fetcher and the HTTP
// transport exposing the export operation.
package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rocthinc/rocthinc"
)

// DefaultFetchTimeout is the default deadline for a direct fetch.
const DefaultFetchTimeout = 20 * time.Second

// userAgent identifies the exporter to origin servers.
const userAgent = "rocthinc/1.0"

// Ensure Fetcher implements rocthinc.Fetcher at compile time.
var _ rocthinc.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML with a plain HTTP GET. It does not execute
// JavaScript; the rod package covers pages that need rendering.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
	limiter *HostLimiter
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the per-request deadline.
// Defaults to DefaultFetchTimeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithHostLimiter rate-limits requests per origin host.
func WithHostLimiter(l *HostLimiter) Option {
	return func(f *Fetcher) {
		f.limiter = l
	}
}

// NewFetcher creates a new direct Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the document at rawURL. Network failures and timeouts
// map to EUNREACHABLE, non-success statuses to EBADSTATUS; both are
// recoverable conditions the caller may answer with a rendered fetch.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	if f.limiter != nil {
		u, err := url.Parse(rawURL)
		if err != nil {
			return "", rocthinc.Errorf(rocthinc.EINVALID, "invalid URL %q: %v", rawURL, err)
		}
		if err := f.limiter.Wait(ctx, u.Host); err != nil {
			return "", err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", rocthinc.Errorf(rocthinc.EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return "", err
		}
		return "", rocthinc.Errorf(rocthinc.EUNREACHABLE, "error fetching %s: %v", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", rocthinc.Errorf(rocthinc.EBADSTATUS, "fetch of %s failed with status %d", rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", rocthinc.Errorf(rocthinc.EUNREACHABLE, "error reading %s: %v", rawURL, err)
	}

	return string(body), nil
}

// Close releases resources. No-op: http.Client needs no explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
