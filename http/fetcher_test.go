package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rocthinc/rocthinc"
	rochttp "github.com/rocthinc/rocthinc/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Fetcher implements rocthinc.Fetcher at compile time.
var _ rocthinc.Fetcher = (*rochttp.Fetcher)(nil)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns body on success", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html><body>ok</body></html>"))
		}))
		defer srv.Close()

		f := rochttp.NewFetcher()
		defer f.Close()

		html, err := f.Fetch(context.Background(), srv.URL)

		require.NoError(t, err)
		assert.Equal(t, "<html><body>ok</body></html>", html)
	})

	t.Run("sends identifying user agent", func(t *testing.T) {
		t.Parallel()

		var gotUA string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
		}))
		defer srv.Close()

		f := rochttp.NewFetcher()
		defer f.Close()

		_, err := f.Fetch(context.Background(), srv.URL)

		require.NoError(t, err)
		assert.Equal(t, "rocthinc/1.0", gotUA)
	})

	t.Run("maps non-success status to EBADSTATUS", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer srv.Close()

		f := rochttp.NewFetcher()
		defer f.Close()

		_, err := f.Fetch(context.Background(), srv.URL)

		require.Error(t, err)
		assert.Equal(t, rocthinc.EBADSTATUS, rocthinc.ErrorCode(err))
		assert.Contains(t, rocthinc.ErrorMessage(err), "403")
	})

	t.Run("maps connection failure to EUNREACHABLE", func(t *testing.T) {
		t.Parallel()

		// Grab a port nobody is listening on.
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		dead := srv.URL
		srv.Close()

		f := rochttp.NewFetcher()
		defer f.Close()

		_, err := f.Fetch(context.Background(), dead)

		require.Error(t, err)
		assert.Equal(t, rocthinc.EUNREACHABLE, rocthinc.ErrorCode(err))
	})

	t.Run("times out slow servers", func(t *testing.T) {
		t.Parallel()

		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-release
		}))
		defer func() {
			close(release)
			srv.Close()
		}()

		f := rochttp.NewFetcher(rochttp.WithTimeout(50 * time.Millisecond))
		defer f.Close()

		_, err := f.Fetch(context.Background(), srv.URL)

		require.Error(t, err)
		assert.Equal(t, rocthinc.EUNREACHABLE, rocthinc.ErrorCode(err))
	})

	t.Run("rejects malformed URL", func(t *testing.T) {
		t.Parallel()

		f := rochttp.NewFetcher()
		defer f.Close()

		_, err := f.Fetch(context.Background(), "http://missing port:  /")

		require.Error(t, err)
		assert.Equal(t, rocthinc.EINVALID, rocthinc.ErrorCode(err))
	})
}

func TestHostLimiter_Wait(t *testing.T) {
	t.Parallel()

	t.Run("throttles repeated requests to one host", func(t *testing.T) {
		t.Parallel()

		limiter := rochttp.NewHostLimiter(20) // 50ms between requests

		begin := time.Now()
		for i := 0; i < 3; i++ {
			require.NoError(t, limiter.Wait(context.Background(), "example.com"))
		}
		assert.GreaterOrEqual(t, time.Since(begin), 90*time.Millisecond)
	})

	t.Run("different hosts do not share a bucket", func(t *testing.T) {
		t.Parallel()

		limiter := rochttp.NewHostLimiter(1)

		begin := time.Now()
		require.NoError(t, limiter.Wait(context.Background(), "a.example.com"))
		require.NoError(t, limiter.Wait(context.Background(), "b.example.com"))
		assert.Less(t, time.Since(begin), 500*time.Millisecond)
	})

	t.Run("canceled context aborts the wait", func(t *testing.T) {
		t.Parallel()

		limiter := rochttp.NewHostLimiter(0.001)
		require.NoError(t, limiter.Wait(context.Background(), "slow.example.com"))

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		err := limiter.Wait(ctx, "slow.example.com")
		assert.Error(t, err)
	})
}
