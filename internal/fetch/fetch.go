// Package fetch retrieves job postings from the web and reduces them to plain text.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; ATSService/1.0)"

// DefaultMaxBodyBytes caps how much of a page is read.
const DefaultMaxBodyBytes = 5 << 20

// Result holds the raw and processed content from a URL fetch.
type Result struct {
	URL         string
	HTML        string
	Text        string
	ContentType string
	StatusCode  int
	Rendered    bool
}

// Error represents an error during URL fetching.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// RenderFunc loads a page in a browser and returns the rendered HTML.
type RenderFunc func(ctx context.Context, url string, timeout time.Duration) (string, error)

// Options configures the fetch behavior.
type Options struct {
	Timeout      time.Duration
	UserAgent    string
	Headers      map[string]string
	MaxBodyBytes int64
	// UseBrowser renders pages whose static HTML yields too little text.
	UseBrowser bool
	// Render overrides the headless browser, mainly for tests.
	Render     RenderFunc
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// DefaultOptions returns sensible defaults for fetching.
func DefaultOptions() *Options {
	return &Options{
		Timeout:      DefaultTimeout,
		UserAgent:    DefaultUserAgent,
		MaxBodyBytes: DefaultMaxBodyBytes,
	}
}

func (o *Options) withDefaults() *Options {
	out := DefaultOptions()
	if o != nil {
		*out = *o
	}
	if out.Timeout <= 0 {
		out.Timeout = DefaultTimeout
	}
	if out.UserAgent == "" {
		out.UserAgent = DefaultUserAgent
	}
	if out.MaxBodyBytes <= 0 {
		out.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if out.Render == nil {
		out.Render = WithBrowser
	}
	if out.Logger == nil {
		out.Logger = zap.NewNop()
	}
	return out
}

// URL retrieves HTML content from a URL.
func URL(ctx context.Context, urlStr string, opts *Options) (*Result, error) {
	opts = opts.withDefaults()

	parsedURL, err := url.Parse(urlStr)
	if err != nil || parsedURL.Host == "" || (parsedURL.Scheme != "http" && parsedURL.Scheme != "https") {
		return nil, &Error{URL: urlStr, Message: "invalid URL", Cause: err}
	}

	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", opts.UserAgent)
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, opts.MaxBodyBytes))
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to read response body", Cause: err}
	}

	result := &Result{
		URL:         urlStr,
		HTML:        string(body),
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}
	if resp.StatusCode != http.StatusOK {
		return result, &Error{URL: urlStr, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}
	return result, nil
}

// JobDescription fetches a job posting and returns its description text.
// Known job boards get platform-specific selectors. When UseBrowser is set and
// the static page yields less than MinContentLength characters, the page is
// rendered in a headless browser and extracted again.
func JobDescription(ctx context.Context, urlStr string, opts *Options) (*Result, error) {
	opts = opts.withDefaults()
	platform := DetectPlatform(urlStr)
	content, noise := PlatformContentSelectors(platform), PlatformNoiseSelectors(platform)

	result, err := URL(ctx, urlStr, opts)
	if err != nil && !opts.UseBrowser {
		return nil, err
	}
	if err == nil {
		text, extractErr := ExtractMainText(result.HTML, content, noise...)
		if extractErr != nil {
			return nil, &Error{URL: urlStr, Message: "failed to extract text", Cause: extractErr}
		}
		result.Text = text
		if !opts.UseBrowser || !ShouldUseBrowser(text) {
			return result, nil
		}
	}

	opts.Logger.Info("rendering job posting in browser",
		zap.String("url", urlStr),
		zap.String("platform", string(platform)))

	html, renderErr := opts.Render(ctx, urlStr, opts.Timeout)
	if renderErr != nil {
		if result != nil && result.Text != "" {
			opts.Logger.Warn("browser rendering failed, using static page", zap.Error(renderErr))
			return result, nil
		}
		return nil, &Error{URL: urlStr, Message: "browser rendering failed", Cause: renderErr}
	}

	text, err := ExtractMainText(html, content, noise...)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to extract rendered text", Cause: err}
	}
	return &Result{URL: urlStr, HTML: html, Text: text, StatusCode: http.StatusOK, Rendered: true}, nil
}

// ExtractMainText parses HTML and returns the main body text.
// It removes noise elements using noiseSelectors, then finds content using contentSelectors.
// If no content selectors match, it falls back to the body element.
func ExtractMainText(html string, contentSelectors []string, noiseSelectors ...string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("nav, footer, header, script, style, noscript, .ad, .advertisement, .ads, .sidebar, .cookie-banner, .popup").Remove()
	if len(noiseSelectors) > 0 {
		doc.Find(strings.Join(noiseSelectors, ", ")).Remove()
	}

	var main *goquery.Selection
	for _, selector := range contentSelectors {
		if selection := doc.Find(selector); selection.Length() > 0 {
			main = selection.First()
			break
		}
	}
	if main == nil {
		main = doc.Find("body")
	}

	// Block elements end a line so list items and paragraphs stay separate.
	main.Find("p, li, br, h1, h2, h3, h4, h5, h6, div, tr").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	return cleanWhitespace(main.Text()), nil
}

// JobPostingSelectors returns selectors optimized for job board pages.
func JobPostingSelectors() []string {
	return []string{
		".job-description",
		".job-content",
		"#job-description",
		"#job-content",
		".posting-content",
		".job-details",
		"[data-testid='job-description']",
		"main",
		"article",
		".content",
		"#content",
	}
}

// cleanWhitespace trims every line, collapses inner space runs and drops blank lines.
func cleanWhitespace(text string) string {
	var cleaned []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
