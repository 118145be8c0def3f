package httputil

import (
	"context"
	"errors"
	"math/rand"
	"net"
	"net/http"
	"strconv"
	"time"
)

const (
	defaultMaxAttempts = 4
	defaultBaseDelay   = 500 * time.Millisecond
	defaultMaxDelay    = 8 * time.Second
)

// Client wraps an http.Client with bounded retries for transient failures:
// network timeouts, 429 and 5xx responses. Retry-After is honored when the
// server sends one.
type Client struct {
	inner       *http.Client
	maxAttempts int
	baseDelay   time.Duration
	maxDelay    time.Duration
}

type Option func(*Client)

func WithMaxAttempts(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

func WithBackoff(base, max time.Duration) Option {
	return func(c *Client) {
		if base > 0 {
			c.baseDelay = base
		}
		if max > 0 {
			c.maxDelay = max
		}
	}
}

func NewClient(inner *http.Client, opts ...Option) *Client {
	if inner == nil {
		inner = http.DefaultClient
	}

	c := &Client{
		inner:       inner,
		maxAttempts: defaultMaxAttempts,
		baseDelay:   defaultBaseDelay,
		maxDelay:    defaultMaxDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Do(req *http.Request) (*http.Response, error) {
	var lastResp *http.Response
	var lastErr error

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 {
			if err := c.rewindBody(req); err != nil {
				return nil, err
			}
			if err := sleepCtx(req.Context(), c.delayFor(attempt, lastResp)); err != nil {
				return nil, err
			}
		}

		if lastResp != nil {
			_ = lastResp.Body.Close()
		}

		lastResp, lastErr = c.inner.Do(req)
		if !retryable(lastResp, lastErr) {
			return lastResp, lastErr
		}
	}

	return lastResp, lastErr
}

func (c *Client) rewindBody(req *http.Request) error {
	if req.GetBody == nil {
		return nil
	}
	body, err := req.GetBody()
	if err != nil {
		return err
	}
	req.Body = body
	return nil
}

func (c *Client) delayFor(attempt int, resp *http.Response) time.Duration {
	if resp != nil {
		if after := resp.Header.Get("Retry-After"); after != "" {
			if secs, err := strconv.Atoi(after); err == nil && secs > 0 {
				return time.Duration(secs) * time.Second
			}
		}
	}

	delay := c.baseDelay << (attempt - 2)
	if delay > c.maxDelay {
		delay = c.maxDelay
	}
	// +/-10% jitter keeps synchronized callers from hammering in lockstep
	return time.Duration(float64(delay) * (0.9 + rand.Float64()*0.2))
}

func retryable(resp *http.Response, err error) bool {
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return true
		}
		var opErr *net.OpError
		var dnsErr *net.DNSError
		return errors.As(err, &opErr) || errors.As(err, &dnsErr)
	}

	return resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
