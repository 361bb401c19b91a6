package export

import (
	"context"
	"errors"

	"github.com/rocthinc/rocthinc"
)

// Ensure FallbackFetcher implements rocthinc.Fetcher.
var _ rocthinc.Fetcher = (*FallbackFetcher)(nil)

// FallbackFetcher tries a cheap direct HTTP fetch first and escalates to a
// rendering browser when the direct result is unusable: a transport or
// status failure, or HTML the wall policy flags. Chat platforms almost
// always take the rendered path since their direct HTML carries no
// transcript, but the direct attempt stays because share pages sometimes
// serve server-rendered markup.
type FallbackFetcher struct {
	direct   rocthinc.Fetcher
	rendered rocthinc.Fetcher
	chat     rocthinc.Fetcher
	wall     *rocthinc.WallPolicy
}

// NewFallbackFetcher creates a FallbackFetcher. The chat fetcher is used
// for chat platforms so it can wait for message markers; pass nil to use
// the rendered fetcher for every platform.
func NewFallbackFetcher(direct, rendered, chat rocthinc.Fetcher, wall *rocthinc.WallPolicy) *FallbackFetcher {
	if chat == nil {
		chat = rendered
	}
	return &FallbackFetcher{direct: direct, rendered: rendered, chat: chat, wall: wall}
}

// Fetch returns page HTML, falling back from direct to rendered fetching.
// A rendered-path failure is reported as-is: a render timeout after a 403
// direct response is a rendering problem, not a status problem.
func (f *FallbackFetcher) Fetch(ctx context.Context, url string) (string, error) {
	platform := rocthinc.Classify(url)

	html, err := f.direct.Fetch(ctx, url)
	if err == nil && !f.wall.Detect(html, platform) {
		return html, nil
	}
	if err != nil && !retriable(err) {
		return "", err
	}

	renderer := f.rendered
	if platform.IsChat() {
		renderer = f.chat
	}
	return renderer.Fetch(ctx, url)
}

// Close closes all underlying fetchers, returning the first error.
func (f *FallbackFetcher) Close() error {
	err := f.direct.Close()
	if cerr := f.rendered.Close(); err == nil {
		err = cerr
	}
	if f.chat != f.rendered {
		if cerr := f.chat.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// retriable reports whether a direct-fetch failure is worth a rendered
// retry. Caller cancellation and invalid input are final.
func retriable(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	switch rocthinc.ErrorCode(err) {
	case rocthinc.EBADSTATUS, rocthinc.EUNREACHABLE:
		return true
	}
	return false
}
