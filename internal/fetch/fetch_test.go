package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body><h1>Test</h1></body></html>"))
	}))
	defer server.Close()

	page, err := Get(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, server.URL, page.URL)
	assert.Contains(t, page.HTML, "<h1>Test</h1>")
	assert.Equal(t, http.StatusOK, page.StatusCode)
}

func TestGet_InvalidURL(t *testing.T) {
	for _, raw := range []string{"not-a-valid-url", "ftp://example.com/file"} {
		_, err := Get(context.Background(), raw, nil)
		var fetchErr *Error
		require.ErrorAs(t, err, &fetchErr)
		assert.Contains(t, err.Error(), "invalid URL")
		assert.False(t, fetchErr.Retryable)
	}
}

func TestGet_HTTPStatus(t *testing.T) {
	var status atomic.Int32
	status.Store(http.StatusNotFound)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(int(status.Load()))
	}))
	defer server.Close()

	page, err := Get(context.Background(), server.URL, nil)
	require.Error(t, err)
	require.NotNil(t, page)
	assert.Equal(t, http.StatusNotFound, page.StatusCode)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.False(t, fetchErr.Retryable)

	status.Store(http.StatusServiceUnavailable)
	_, err = Get(context.Background(), server.URL, nil)
	require.ErrorAs(t, err, &fetchErr)
	assert.True(t, fetchErr.Retryable)
}

func TestExtractText(t *testing.T) {
	html := `
	<html>
		<head><title> Acme Robotics </title></head>
		<body>
			<nav>Navigation</nav>
			<main>
				<h1>Robots   for   farms</h1>
				<p>We build autonomous harvesters.</p>
			</main>
			<footer>Footer</footer>
		</body>
	</html>`

	title, text, err := ExtractText(html)
	require.NoError(t, err)
	assert.Equal(t, "Acme Robotics", title)
	assert.Contains(t, text, "Robots for farms")
	assert.Contains(t, text, "autonomous harvesters")
	assert.NotContains(t, text, "Navigation")
	assert.NotContains(t, text, "Footer")
}

func TestExtractText_FallbackToBody(t *testing.T) {
	_, text, err := ExtractText(`<html><body><div>Some content here.</div><script>var x</script></body></html>`)
	require.NoError(t, err)
	assert.Equal(t, "Some content here.", text)
}

func longHTML(body string) string {
	return "<html><body><main>" + strings.Repeat(body+" ", 50) + "</main></body></html>"
}

func TestScraper_CachesPages(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(longHTML("pricing and features")))
	}))
	defer server.Close()

	s := NewScraper(ScraperConfig{}, nil)
	first, err := s.Scrape(context.Background(), server.URL)
	require.NoError(t, err)
	second, err := s.Scrape(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), hits.Load())

	s.Invalidate(server.URL)
	_, err = s.Scrape(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

func TestScraper_CacheExpires(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(longHTML("content")))
	}))
	defer server.Close()

	now := time.Now()
	s := NewScraper(ScraperConfig{CacheTTL: time.Minute}, nil)
	s.now = func() time.Time { return now }

	_, err := s.Scrape(context.Background(), server.URL)
	require.NoError(t, err)
	now = now.Add(2 * time.Minute)
	_, err = s.Scrape(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

func TestScraper_BrowserFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><div id="root"></div></body></html>`))
	}))
	defer server.Close()

	var rendered bool
	s := NewScraper(ScraperConfig{Render: func(_ context.Context, _ string) (string, error) {
		rendered = true
		return longHTML("client rendered"), nil
	}}, nil)

	page, err := s.Scrape(context.Background(), server.URL)
	require.NoError(t, err)
	assert.True(t, rendered)
	assert.True(t, page.Rendered)
	assert.Contains(t, page.Text, "client rendered")
}

func TestScraper_BrowserFailureKeepsHTTPText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><main>tiny</main></body></html>`))
	}))
	defer server.Close()

	s := NewScraper(ScraperConfig{Render: func(context.Context, string) (string, error) {
		return "", errors.New("chrome not installed")
	}}, nil)

	page, err := s.Scrape(context.Background(), server.URL)
	require.NoError(t, err)
	assert.False(t, page.Rendered)
	assert.Equal(t, "tiny", page.Text)
}

func TestShouldUseBrowser(t *testing.T) {
	assert.True(t, ShouldUseBrowser("   short   "))
	assert.False(t, ShouldUseBrowser(strings.Repeat("x", MinContentLength)))
}
