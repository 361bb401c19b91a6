//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocthinc/rocthinc"
	"github.com/rocthinc/rocthinc/rod"
)

// Ensure Fetcher implements rocthinc.Fetcher.
var _ rocthinc.Fetcher = (*rod.Fetcher)(nil)

func TestFetcher_Fetch_ReturnsRenderedHTML(t *testing.T) {
	t.Parallel()

	// Serve a page that uses JavaScript to add content
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Test Page</title></head>
<body>
<div id="content">Loading...</div>
<script>
document.getElementById('content').textContent = 'JavaScript Rendered';
</script>
</body>
</html>`))
	}))
	defer srv.Close()

	manager := rod.NewManager()
	defer manager.Close()
	fetcher := rod.NewFetcher(manager)
	defer fetcher.Close()

	html, err := fetcher.Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Contains(t, html, "JavaScript Rendered")
	assert.NotContains(t, html, "Loading...")
}

func TestFetcher_Fetch_WaitsForSelector(t *testing.T) {
	t.Parallel()

	// Messages are injected after a short delay, as a chat app would
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Chat</title></head>
<body>
<main id="thread"></main>
<script>
setTimeout(function() {
  var el = document.createElement('div');
  el.setAttribute('data-message-author-role', 'user');
  el.textContent = 'Hello';
  document.getElementById('thread').appendChild(el);
}, 200);
</script>
</body>
</html>`))
	}))
	defer srv.Close()

	manager := rod.NewManager()
	defer manager.Close()
	fetcher := rod.NewFetcher(manager, rod.WithWaitSelector(rocthinc.RoleSelector))
	defer fetcher.Close()

	html, err := fetcher.Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Contains(t, html, `data-message-author-role="user"`)
}

func TestFetcher_Fetch_SelectorMissIsNotFatal(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><p>no messages here</p></body></html>`))
	}))
	defer srv.Close()

	manager := rod.NewManager()
	defer manager.Close()
	fetcher := rod.NewFetcher(manager,
		rod.WithWaitSelector(rocthinc.RoleSelector),
		rod.WithSelectorTimeout(500*time.Millisecond),
	)
	defer fetcher.Close()

	html, err := fetcher.Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Contains(t, html, "no messages here")
}

func TestFetcher_Fetch_ContextCancellation(t *testing.T) {
	t.Parallel()

	// Server that delays response
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Don't respond - let context cancellation win
		select {}
	}))
	defer srv.Close()

	manager := rod.NewManager()
	defer manager.Close()
	fetcher := rod.NewFetcher(manager)
	defer fetcher.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	_, err := fetcher.Fetch(ctx, srv.URL)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetcher_Fetch_SlowPageReportsRenderTimeout(t *testing.T) {
	t.Parallel()

	// Server that delays longer than the navigation timeout
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body>delayed</body></html>`))
	}))
	defer srv.Close()

	manager := rod.NewManager()
	defer manager.Close()
	fetcher := rod.NewFetcher(manager, rod.WithNavTimeout(300*time.Millisecond))
	defer fetcher.Close()

	_, err := fetcher.Fetch(context.Background(), srv.URL)

	require.Error(t, err)
	assert.Equal(t, rocthinc.ERENDERTIMEOUT, rocthinc.ErrorCode(err))
}
