package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const postingHTML = `<html><body>
<nav>Home | Jobs</nav>
<div class="job-description">
  <h2>Senior Go Engineer</h2>
  <ul><li>Build   services in Go</li><li>Run Kubernetes</li></ul>
</div>
<form id="application-form">Apply now</form>
<footer>© Acme</footer>
</body></html>`

func TestExtractMainText(t *testing.T) {
	text, err := ExtractMainText(postingHTML, JobPostingSelectors(), PlatformNoiseSelectors(PlatformUnknown)...)

	require.NoError(t, err)
	assert.Equal(t, "Senior Go Engineer\nBuild services in Go\nRun Kubernetes", text)
}

func TestExtractMainText_FallsBackToBody(t *testing.T) {
	text, err := ExtractMainText("<html><body><p>Only body</p><script>x()</script></body></html>", []string{".missing"})

	require.NoError(t, err)
	assert.Equal(t, "Only body", text)
}

func TestURL_InvalidURL(t *testing.T) {
	for _, u := range []string{"", "not a url", "ftp://example.com/job"} {
		_, err := URL(context.Background(), u, nil)
		var fetchErr *Error
		require.ErrorAs(t, err, &fetchErr, u)
		assert.Equal(t, "invalid URL", fetchErr.Message)
	}
}

func TestURL_Success(t *testing.T) {
	var gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.UserAgent()
		w.Header().Set("Content-Type", "text/html")
		_, _ = fmt.Fprint(w, postingHTML)
	}))
	defer srv.Close()

	res, err := URL(context.Background(), srv.URL, nil)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "text/html", res.ContentType)
	assert.Equal(t, DefaultUserAgent, gotAgent)
}

func TestURL_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	res, err := URL(context.Background(), srv.URL, nil)

	require.Error(t, err)
	require.NotNil(t, res)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Contains(t, err.Error(), "HTTP status 404")
}

func TestURL_BodyLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprint(w, strings.Repeat("a", 100))
	}))
	defer srv.Close()

	res, err := URL(context.Background(), srv.URL, &Options{MaxBodyBytes: 10})

	require.NoError(t, err)
	assert.Len(t, res.HTML, 10)
}

func TestJobDescription_StaticPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprint(w, postingHTML)
	}))
	defer srv.Close()

	rendered := false
	res, err := JobDescription(context.Background(), srv.URL, &Options{
		Render: func(context.Context, string, time.Duration) (string, error) {
			rendered = true
			return "", nil
		},
	})

	require.NoError(t, err)
	assert.False(t, rendered)
	assert.False(t, res.Rendered)
	assert.Contains(t, res.Text, "Senior Go Engineer")
}

func TestJobDescription_BrowserFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprint(w, `<html><body><div id="root"></div></body></html>`)
	}))
	defer srv.Close()

	long := strings.Repeat("Kubernetes operators in Go. ", 30)
	res, err := JobDescription(context.Background(), srv.URL, &Options{
		UseBrowser: true,
		Render: func(_ context.Context, url string, _ time.Duration) (string, error) {
			assert.Equal(t, srv.URL, url)
			return "<html><body><main><p>" + long + "</p></main></body></html>", nil
		},
	})

	require.NoError(t, err)
	assert.True(t, res.Rendered)
	assert.Equal(t, strings.TrimSpace(long), res.Text)
}

func TestJobDescription_BrowserFailureKeepsStaticText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprint(w, `<html><body><main>Short posting</main></body></html>`)
	}))
	defer srv.Close()

	res, err := JobDescription(context.Background(), srv.URL, &Options{
		UseBrowser: true,
		Render: func(context.Context, string, time.Duration) (string, error) {
			return "", errors.New("chrome not installed")
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "Short posting", res.Text)
}

func TestJobDescription_HTTPErrorWithoutBrowser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := JobDescription(context.Background(), srv.URL, nil)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, srv.URL, fetchErr.URL)
}

func TestCachedFetcher(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = fmt.Fprint(w, postingHTML)
	}))
	defer srv.Close()

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	f := NewCachedFetcher(nil, time.Minute)
	f.now = func() time.Time { return now }

	first, cached, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.False(t, cached)

	second, cached, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Same(t, first, second)
	assert.Equal(t, int32(1), hits.Load())

	now = now.Add(2 * time.Minute)
	_, cached, err = f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, int32(2), hits.Load())

	f.Invalidate(srv.URL)
	_, cached, _ = f.Fetch(context.Background(), srv.URL)
	assert.False(t, cached)
}

func TestCachedFetcher_DoesNotCacheFailures(t *testing.T) {
	calls := 0
	f := NewCachedFetcher(nil, 0)
	f.fetch = func(context.Context, string, *Options) (*Result, error) {
		calls++
		return nil, errors.New("down")
	}

	_, _, err := f.Fetch(context.Background(), "https://example.com/job")
	require.Error(t, err)
	_, _, err = f.Fetch(context.Background(), "https://example.com/job")
	require.Error(t, err)
	assert.Equal(t, 2, calls)
}

func TestCachedFetcher_Evicts(t *testing.T) {
	f := NewCachedFetcher(nil, time.Minute)
	f.maxEntries = 2
	f.fetch = func(_ context.Context, url string, _ *Options) (*Result, error) {
		return &Result{URL: url}, nil
	}

	for _, u := range []string{"a", "b", "c"} {
		_, _, err := f.Fetch(context.Background(), u)
		require.NoError(t, err)
	}

	assert.Len(t, f.entries, 2)
	assert.Contains(t, f.entries, "c")
}

func TestShouldUseBrowser(t *testing.T) {
	assert.True(t, ShouldUseBrowser("   short   "))
	assert.False(t, ShouldUseBrowser(strings.Repeat("x", MinContentLength)))
}
