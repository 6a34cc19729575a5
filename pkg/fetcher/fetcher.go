// Package fetcher retrieves pages for the audit pipeline. It is the fetch
// collaborator from the engine's point of view: the pipeline only ever sees
// the resulting FetchResult, never the transport.
package fetcher

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/net/html/charset"

	"github.com/K-Bak/geo-checker/models"
	"github.com/K-Bak/geo-checker/pkg/caching"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) " +
	"Chrome/124.0.0.0 Safari/537.36"

// DefaultTimeout bounds every network operation. On timeout the fetch is
// treated as failed, not as an error to propagate.
const DefaultTimeout = 25 * time.Second

// Client is what the audit pipeline depends on. A failed fetch yields empty
// HTML and StatusCode 0; downstream treats "no content" as a terminal
// analysis outcome rather than a system fault.
type Client interface {
	Fetch(ctx context.Context, rawURL string) models.FetchResult
}

// Fetcher is the HTTP implementation of Client with an optional injected
// TTL cache.
type Fetcher struct {
	client *http.Client
	cache  caching.Store
}

// New creates a Fetcher. cache may be nil to disable caching.
func New(cache caching.Store, timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
		cache:  cache,
	}
}

// Fetch retrieves a URL, following redirects. Network errors, timeouts and
// unreadable bodies all collapse to an empty result with status 0.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) models.FetchResult {
	if f.cache != nil {
		if data, ok := f.cache.Get(rawURL); ok {
			var cached models.FetchResult
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached
			}
		}
	}

	result := f.fetch(ctx, rawURL)

	if f.cache != nil && result.HTML != "" {
		if data, err := json.Marshal(result); err == nil {
			_ = f.cache.Set(rawURL, data)
		}
	}
	return result
}

func (f *Fetcher) fetch(ctx context.Context, rawURL string) models.FetchResult {
	failed := models.FetchResult{FinalURL: rawURL, StatusCode: 0, Headers: map[string]string{}}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return failed
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "da,en-US;q=0.8,en;q=0.7")

	resp, err := f.client.Do(req)
	if err != nil {
		return failed
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return failed
	}

	headers := make(map[string]string, len(resp.Header))
	for k := range resp.Header {
		headers[k] = resp.Header.Get(k)
	}

	return models.FetchResult{
		FinalURL:   resp.Request.URL.String(),
		HTML:       decodeToUTF8(body, resp.Header.Get("Content-Type")),
		StatusCode: resp.StatusCode,
		Headers:    headers,
	}
}

// decodeToUTF8 converts a response body to UTF-8 based on the declared
// content type and byte sniffing, falling back to the raw bytes when they are
// already valid UTF-8.
func decodeToUTF8(data []byte, contentType string) string {
	enc, _, _ := charset.DetermineEncoding(data, contentType)
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		if utf8.Valid(data) {
			return string(data)
		}
		return ""
	}
	return string(decoded)
}

// FromPaste wraps a pasted blob as a synthetic fetched page. Plain text is
// wrapped in a minimal HTML shell so the extractors see one main paragraph.
func FromPaste(blob string) models.FetchResult {
	if !strings.Contains(blob, "<") && !strings.Contains(blob, ">") {
		blob = "<html><head><title></title></head><body><main><p>" +
			blob + "</p></main></body></html>"
	}
	return models.FetchResult{
		FinalURL:   "(pasted)",
		HTML:       blob,
		StatusCode: 200,
		Headers:    map[string]string{},
	}
}

// OriginRobotsURL resolves the robots.txt URL for a page URL, or "" when the
// page URL has no usable origin (pasted content).
func OriginRobotsURL(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host + "/robots.txt"
}
