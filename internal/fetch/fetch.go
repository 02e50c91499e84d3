// ABOUTME: Resilient HTTP fetcher for feed documents with SSRF and DoS protection
// ABOUTME: Falls back through CORS proxy intermediaries when direct fetches fail

package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// MaxResponseSize bounds how much of a response body is read. 10MB.
	MaxResponseSize = 10 * 1024 * 1024

	// DefaultTimeout is the per-attempt timeout for direct fetches.
	DefaultTimeout = 15 * time.Second

	// proxyExtraTimeout is added on top of the direct timeout for each proxy
	// attempt, since the proxy adds its own round trip.
	proxyExtraTimeout = 5 * time.Second

	userAgent    = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
	acceptHeader = "application/rss+xml, application/atom+xml, application/xml;q=0.9, text/xml;q=0.8, */*;q=0.5"
)

// FetchError reports that a feed document could not be retrieved by any
// means. Err is the direct-fetch failure, not the last proxy's.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// statusError marks a clean non-2xx HTTP response. The server answered; the
// answer was no. These are never retried through proxies.
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.code)
}

// Client fetches feed documents and article pages, trying configured proxy
// templates when a direct request fails for network-class reasons.
type Client struct {
	httpClient *http.Client
	timeout    time.Duration
	proxies    []string
}

// NewClient creates a fetch client. Each proxy is a URL template taking the
// URL-encoded target either at a %s placeholder or appended.
func NewClient(timeout time.Duration, proxies []string) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{},
		timeout:    timeout,
		proxies:    proxies,
	}
}

// isPrivateIP checks if an IP address is in a private range (excluding
// loopback so tests can use local servers).
func isPrivateIP(ip net.IP) bool {
	if ip.IsLoopback() {
		return false
	}
	return ip.IsPrivate() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast()
}

// FetchFeed retrieves the feed document at feedURL. It first tries a direct
// GET; a body is accepted only when the status is 2xx and the trimmed body
// opens with an XML/RSS/Atom/RDF preamble. On a network-, timeout-, or
// CORS-class failure it walks the proxy list in order; a clean non-2xx HTTP
// response fails immediately without touching proxies. When every attempt
// fails, the original direct-fetch error is surfaced inside a *FetchError.
func (c *Client) FetchFeed(ctx context.Context, feedURL string) (string, error) {
	body, directErr := c.attempt(ctx, feedURL, c.timeout)
	if directErr == nil {
		if looksLikeFeed(body) {
			return body, nil
		}
		directErr = fmt.Errorf("response does not look like a feed document")
	}

	var se *statusError
	if errors.As(directErr, &se) {
		return "", &FetchError{URL: feedURL, Err: directErr}
	}

	for _, template := range c.proxies {
		proxied, err := c.attempt(ctx, proxyURL(template, feedURL), c.timeout+proxyExtraTimeout)
		if err != nil {
			continue
		}
		proxied = unwrapEnvelope(proxied)
		if looksLikeFeed(proxied) || strings.Contains(proxied, "<channel>") || strings.Contains(proxied, "<entry>") {
			return proxied, nil
		}
	}

	return "", &FetchError{URL: feedURL, Err: directErr}
}

// FetchPage retrieves an arbitrary article page with the same proxy
// fallback, accepting any non-empty 2xx body.
func (c *Client) FetchPage(ctx context.Context, pageURL string) (string, error) {
	body, directErr := c.attempt(ctx, pageURL, c.timeout)
	if directErr == nil && body != "" {
		return body, nil
	}
	if directErr == nil {
		directErr = fmt.Errorf("empty response body")
	}

	var se *statusError
	if errors.As(directErr, &se) {
		return "", &FetchError{URL: pageURL, Err: directErr}
	}

	for _, template := range c.proxies {
		proxied, err := c.attempt(ctx, proxyURL(template, pageURL), c.timeout+proxyExtraTimeout)
		if err != nil {
			continue
		}
		if proxied = unwrapEnvelope(proxied); proxied != "" {
			return proxied, nil
		}
	}

	return "", &FetchError{URL: pageURL, Err: directErr}
}

// attempt performs a single GET bound to its own timeout-triggered
// cancellation signal.
func (c *Client) attempt(ctx context.Context, target string, timeout time.Duration) (string, error) {
	parsed, err := url.Parse(target)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}

	// SSRF protection: block private IP ranges
	if ips, err := net.LookupIP(parsed.Hostname()); err == nil {
		for _, ip := range ips {
			if isPrivateIP(ip) {
				return "", fmt.Errorf("access to private IP ranges is not allowed")
			}
		}
	}

	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, target, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", acceptHeader)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &statusError{code: resp.StatusCode}
	}

	limited := io.LimitReader(resp.Body, MaxResponseSize+1)
	body, err := io.ReadAll(limited)
	if err != nil {
		return "", fmt.Errorf("read response body: %w", err)
	}
	if int64(len(body)) > MaxResponseSize {
		return "", fmt.Errorf("response too large (exceeds %d bytes)", MaxResponseSize)
	}

	return string(body), nil
}

// proxyURL substitutes the URL-encoded target into a proxy template.
func proxyURL(template, target string) string {
	encoded := url.QueryEscape(target)
	if strings.Contains(template, "%s") {
		return strings.Replace(template, "%s", encoded, 1)
	}
	return template + encoded
}

// looksLikeFeed checks for an XML/RSS/Atom/RDF preamble at the start of the
// trimmed body.
func looksLikeFeed(body string) bool {
	trimmed := strings.TrimLeft(strings.TrimPrefix(strings.TrimSpace(body), "\uFEFF"), " \t\r\n")
	lower := strings.ToLower(trimmed)
	for _, prefix := range []string{"<?xml", "<rss", "<feed", "<rdf"} {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

// unwrapEnvelope extracts the wrapped document from a JSON proxy envelope
// ({"contents": ...} or {"data": ...}); non-JSON bodies pass through
// unchanged.
func unwrapEnvelope(body string) string {
	trimmed := strings.TrimSpace(body)
	if !strings.HasPrefix(trimmed, "{") {
		return body
	}

	var envelope struct {
		Contents string `json:"contents"`
		Data     string `json:"data"`
	}
	if err := json.Unmarshal([]byte(trimmed), &envelope); err != nil {
		return body
	}
	if envelope.Contents != "" {
		return envelope.Contents
	}
	if envelope.Data != "" {
		return envelope.Data
	}
	return body
}
