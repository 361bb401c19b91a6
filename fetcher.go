package rocthinc

import "context"

// Fetcher retrieves HTML for a URL.
// Implementations may use browser automation to handle JavaScript-rendered
// content; see the http and rod packages.
type Fetcher interface {
	// Fetch acquires the document markup for the URL.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
