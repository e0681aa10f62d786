// Package webpage fetches product pages and reduces them to plain text.
package webpage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"vibedezine_server/internal/types"
)

const (
	// DefaultFetchTimeout bounds a whole page fetch.
	DefaultFetchTimeout = 10 * time.Second

	// DefaultUserAgent identifies the fetcher to the sites it visits.
	DefaultUserAgent = "Mozilla/5.0 (compatible; Vibedezine/1.0; +https://vibedezine.com)"

	// DefaultMaxBodyBytes caps how much of a response body is read.
	DefaultMaxBodyBytes = 5 << 20
)

// Fetcher retrieves HTML over plain HTTP. It does not execute JavaScript.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	maxBytes  int64
	transport http.RoundTripper
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for the whole request including the body.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) { f.timeout = d }
}

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) { f.userAgent = ua }
}

// WithMaxBodyBytes limits how many body bytes are read.
func WithMaxBodyBytes(n int64) Option {
	return func(f *Fetcher) { f.maxBytes = n }
}

// WithTransport replaces the HTTP transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(f *Fetcher) { f.transport = rt }
}

// NewFetcher returns a Fetcher using DefaultFetchTimeout, DefaultUserAgent
// and DefaultMaxBodyBytes unless opts override them.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
		maxBytes:  DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout:   f.timeout,
		Transport: f.transport,
	}
	return f
}

// Fetch returns the body of rawURL. All failures carry HTTP status 400
// because they stem from the URL the caller supplied.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fetchError(types.EINVALID, "Invalid URL", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fetchError(types.EINVALID, "Invalid URL", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", classify(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fetchError(types.EUPSTREAM, fmt.Sprintf("Failed to fetch URL: %d", resp.StatusCode), nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return "", classify(err)
	}
	return string(body), nil
}

func classify(err error) error {
	if isTimeout(err) {
		return fetchError(types.ETIMEOUT, "URL fetch timed out", err)
	}
	return fetchError(types.EUPSTREAM, "Failed to fetch URL content", err)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func fetchError(code, message string, err error) error {
	return &types.Error{Code: code, Message: message, Status: http.StatusBadRequest, Err: err}
}
