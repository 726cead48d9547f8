package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"market-pulse/internal/logger"
)

const (
	defaultMaxAttempts = 3
	defaultRetryDelay  = 5 * time.Second
	defaultTimeout     = 15 * time.Second
)

// Client is the uniform request wrapper shared by every external data
// source. It enforces per-call timeouts, classifies failures into the
// transient/permanent taxonomy and retries only the transient ones.
type Client struct {
	source      string
	httpClient  *http.Client
	limiter     *RateLimiter
	maxAttempts int
	retryDelay  time.Duration
	headers     map[string]string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithRetry overrides the retry policy. Attempts counts the first try.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(c *Client) {
		c.maxAttempts = attempts
		c.retryDelay = delay
	}
}

// WithRateLimit attaches a token bucket consulted before every attempt.
func WithRateLimit(maxTokens int, refillRate time.Duration) Option {
	return func(c *Client) { c.limiter = NewRateLimiter(maxTokens, refillRate) }
}

// WithHeader adds a header sent on every request.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		if c.headers == nil {
			c.headers = map[string]string{}
		}
		c.headers[key] = value
	}
}

// NewClient creates a client for one named external source.
func NewClient(source string, opts ...Option) *Client {
	c := &Client{
		source:      source,
		httpClient:  &http.Client{Timeout: defaultTimeout},
		maxAttempts: defaultMaxAttempts,
		retryDelay:  defaultRetryDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetBody performs a GET and returns the raw response body, retrying
// transient failures up to the configured attempt budget.
func (c *Client) GetBody(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 {
			logger.Warn(ctx, "Retrying provider request",
				"source", c.source, "attempt", attempt, "error", lastErr)
			select {
			case <-ctx.Done():
				return nil, &TransientError{Source: c.source, Err: ctx.Err()}
			case <-time.After(c.retryDelay):
			}
		}

		body, err := c.doOnce(ctx, url)
		if err == nil {
			return body, nil
		}
		if !IsTransient(err) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

// GetJSON performs a GET and decodes the body into out. Decode failures
// are ParseErrors, not retried.
func (c *Client) GetJSON(ctx context.Context, url string, out any) error {
	body, err := c.GetBody(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &ParseError{Source: c.source, Err: err}
	}
	return nil
}

func (c *Client) doOnce(ctx context.Context, url string) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &TransientError{Source: c.source, Err: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &PermanentError{Source: c.source, Err: err}
	}
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Timeouts and connection errors all land here.
		return nil, &TransientError{Source: c.source, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return nil, &TransientError{Source: c.source, Err: fmt.Errorf("http %d", resp.StatusCode)}
	default:
		return nil, &PermanentError{Source: c.source, Err: fmt.Errorf("http %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransientError{Source: c.source, Err: err}
	}
	return body, nil
}

// Source returns the name this client was created for.
func (c *Client) Source() string { return c.source }
