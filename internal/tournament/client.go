package tournament

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Fetcher defines the interface for probing and fetching the tournament feed.
// This interface is implemented by *Client and can be used for testing.
type Fetcher interface {
	Probe(ctx context.Context) (string, error)
	Fetch(ctx context.Context) (*Snapshot, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// Client retrieves the tournament JSON document over HTTP.
type Client struct {
	feedURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultUserAgent      = "cueview/0.1"
	defaultRequestTimeout = 10 * time.Second
)

// NewClient builds a Client for the given feed URL. A non-positive timeout
// falls back to the default request timeout.
func NewClient(feedURL string, timeout time.Duration) (*Client, error) {
	parsed, err := parseFeedURL(feedURL)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &Client{
		feedURL: parsed,
		http: &http.Client{
			Timeout: timeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// Probe performs a lightweight HEAD request and returns the document's
// change token (the Last-Modified header value). The token is opaque: it is
// only ever compared for inequality against a previously returned token. An
// empty token means the server did not report one.
func (c *Client) Probe(ctx context.Context) (string, error) {
	if c == nil {
		return "", fmt.Errorf("client is nil")
	}
	req, err := c.newRequest(ctx, http.MethodHead)
	if err != nil {
		return "", err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("probe feed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("feed returned status %d", resp.StatusCode)
	}
	return resp.Header.Get("Last-Modified"), nil
}

// Fetch retrieves and validates the full tournament document.
func (c *Client) Fetch(ctx context.Context) (*Snapshot, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	req, err := c.newRequest(ctx, http.MethodGet)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	var snap Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode feed: %w", err)
	}
	if err := snap.Validate(); err != nil {
		return nil, fmt.Errorf("invalid feed document: %w", err)
	}
	return &snap, nil
}

func (c *Client) newRequest(ctx context.Context, method string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.feedURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	// Always bypass intermediate caches; change detection relies on the
	// origin's Last-Modified value.
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("User-Agent", c.userAgent)
	return req, nil
}

func parseFeedURL(feedURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(feedURL)
	if trimmed == "" {
		return nil, fmt.Errorf("feed url is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse feed url %q: %w", feedURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported feed url scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("feed url %q has no host", feedURL)
	}
	u.Fragment = ""
	return u, nil
}
