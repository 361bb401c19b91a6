package rod

import (
	"context"
	"errors"
	"time"

	"github.com/go-rod/rod"

	"github.com/rocthinc/rocthinc"
)

const (
	// DefaultNavTimeout bounds navigation plus network quiescence.
	DefaultNavTimeout = 60 * time.Second

	// DefaultSelectorTimeout bounds the optional wait for a content
	// selector to appear. A miss is not fatal: the page HTML is
	// returned as-is and downstream extraction decides what it got.
	DefaultSelectorTimeout = 25 * time.Second
)

// Fetcher retrieves fully rendered page HTML through a shared browser.
type Fetcher struct {
	manager         *Manager
	waitSelector    string
	navTimeout      time.Duration
	selectorTimeout time.Duration
}

var _ rocthinc.Fetcher = (*Fetcher)(nil)

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithWaitSelector makes the fetcher wait for a CSS selector to appear
// after the page settles, up to the selector timeout.
func WithWaitSelector(selector string) FetcherOption {
	return func(f *Fetcher) {
		f.waitSelector = selector
	}
}

// WithNavTimeout overrides the navigation timeout.
func WithNavTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.navTimeout = d
	}
}

// WithSelectorTimeout overrides the selector wait timeout.
func WithSelectorTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.selectorTimeout = d
	}
}

// NewFetcher creates a Fetcher backed by the given Manager. The Manager is
// shared and not owned: closing the Fetcher does not close the browser.
func NewFetcher(manager *Manager, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		manager:         manager,
		navTimeout:      DefaultNavTimeout,
		selectorTimeout: DefaultSelectorTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch navigates to url in a fresh page, waits for the page to settle and
// optionally for the configured selector, then returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	page, err := f.manager.Page()
	if err != nil {
		return "", rocthinc.Errorf(rocthinc.EINTERNAL, "could not open browser page: %v", err)
	}
	defer page.Close()

	navCtx, cancel := context.WithTimeout(ctx, f.navTimeout)
	defer cancel()
	page = page.Context(navCtx)

	if err := page.Navigate(url); err != nil {
		return "", renderErr(ctx, url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", renderErr(ctx, url, err)
	}
	if err := waitIdle(page); err != nil {
		return "", renderErr(ctx, url, err)
	}

	if f.waitSelector != "" {
		selCtx, selCancel := context.WithTimeout(ctx, f.selectorTimeout)
		waitPage := page.Context(selCtx)
		// Selector misses are tolerated: not every page of a chat
		// domain carries messages, and the wall detector needs the
		// HTML either way.
		_, _ = waitPage.Element(f.waitSelector)
		selCancel()
		if err := ctx.Err(); err != nil {
			return "", err
		}
	}

	html, err := page.HTML()
	if err != nil {
		return "", renderErr(ctx, url, err)
	}
	return html, nil
}

// Close implements rocthinc.Fetcher. The shared Manager stays open.
func (f *Fetcher) Close() error {
	return nil
}

// waitIdle waits for network quiescence after load.
func waitIdle(page *rod.Page) error {
	return rod.Try(func() {
		wait := page.MustWaitRequestIdle()
		wait()
	})
}

// renderErr maps a rendering failure to a domain error. Caller-initiated
// cancellation passes through so it is not reported as a site failure.
func renderErr(ctx context.Context, url string, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return ctx.Err()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return rocthinc.Errorf(rocthinc.ERENDERTIMEOUT, "rendering of %s timed out", url)
	}
	return rocthinc.Errorf(rocthinc.EUNREACHABLE, "could not render %s: %v", url, err)
}
