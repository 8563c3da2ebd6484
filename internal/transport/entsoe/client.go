// Package entsoe fetches raw publication documents from the transparency
// platform. It is deliberately thin: pacing, retries and caching live
// here; everything about the document's content is the pipeline's job.
package entsoe

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"entsocli/internal/config"
)

// periodLayout is the query timestamp format the platform expects.
const periodLayout = "200601021504"

// DocumentCache is the optional raw-document cache the client consults
// before going to the network.
type DocumentCache interface {
	Get(key string) ([]byte, bool, error)
	Put(key string, value []byte) error
}

// FetchRequest describes one document to retrieve. Extra carries
// caller-supplied query values verbatim; the client adds nothing beyond
// what is listed here.
type FetchRequest struct {
	DocumentType string `validate:"required"`
	ProcessType  string
	InDomain     string `validate:"required"`
	OutDomain    string
	PeriodStart  time.Time `validate:"required"`
	PeriodEnd    time.Time `validate:"required"`
	Extra        url.Values
}

// CacheKey derives a stable cache key for the request.
func (r FetchRequest) CacheKey() string {
	return fmt.Sprintf("%s/%s/%s/%s/%s",
		r.DocumentType, r.InDomain, r.OutDomain,
		r.PeriodStart.UTC().Format(periodLayout),
		r.PeriodEnd.UTC().Format(periodLayout))
}

// Client retrieves raw XML documents with request pacing and bounded
// retries. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	maxRetries int
	backoff    time.Duration
	cache      DocumentCache
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithCache attaches a raw-document cache to the client.
func WithCache(cache DocumentCache) Option {
	return func(c *Client) { c.cache = cache }
}

// WithHTTPClient replaces the underlying HTTP client, mainly for tests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// NewClient builds a Client from configuration.
func NewClient(cfg config.ClientConfig, logger *slog.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		limiter:    rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.RateBurst),
		maxRetries: cfg.MaxRetries,
		backoff:    cfg.RetryBackoff,
		logger:     logger.With(slog.String("component", "entsoe_client")),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchDocument retrieves one raw XML document. On a cache hit no network
// request is made. Transient upstream failures (429 and 5xx) are retried
// with linear backoff up to the configured limit.
func (c *Client) FetchDocument(ctx context.Context, req FetchRequest) ([]byte, error) {
	key := req.CacheKey()
	if c.cache != nil {
		if raw, ok, err := c.cache.Get(key); err != nil {
			c.logger.WarnContext(ctx, "cache lookup failed, fetching upstream",
				slog.String("key", key), slog.String("error", err.Error()))
		} else if ok {
			c.logger.DebugContext(ctx, "cache hit", slog.String("key", key))
			return raw, nil
		}
	}

	requestURL, err := c.buildURL(req)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * c.backoff):
			}
			c.logger.WarnContext(ctx, "retrying document fetch",
				slog.Int("attempt", attempt),
				slog.String("error", lastErr.Error()))
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait: %w", err)
		}

		raw, retryable, err := c.doRequest(ctx, requestURL)
		if err == nil {
			if c.cache != nil {
				if err := c.cache.Put(key, raw); err != nil {
					c.logger.WarnContext(ctx, "cache write failed",
						slog.String("key", key), slog.String("error", err.Error()))
				}
			}
			return raw, nil
		}
		lastErr = err
		if !retryable {
			break
		}
	}
	return nil, fmt.Errorf("failed to fetch document after %d attempts: %w", c.maxRetries+1, lastErr)
}

func (c *Client) buildURL(req FetchRequest) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", c.baseURL, err)
	}

	q := u.Query()
	q.Set("documentType", req.DocumentType)
	if req.ProcessType != "" {
		q.Set("processType", req.ProcessType)
	}
	q.Set("in_Domain", req.InDomain)
	if req.OutDomain != "" {
		q.Set("out_Domain", req.OutDomain)
	}
	q.Set("periodStart", req.PeriodStart.UTC().Format(periodLayout))
	q.Set("periodEnd", req.PeriodEnd.UTC().Format(periodLayout))
	for key, values := range req.Extra {
		for _, value := range values {
			q.Add(key, value)
		}
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// doRequest performs one HTTP round trip. The second return reports
// whether the failure is worth retrying.
func (c *Client) doRequest(ctx context.Context, requestURL string) ([]byte, bool, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/xml")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, true, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("failed to read response body: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, false, nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, true, fmt.Errorf("upstream returned %d", resp.StatusCode)
	default:
		return nil, false, fmt.Errorf("upstream returned %d", resp.StatusCode)
	}
}
