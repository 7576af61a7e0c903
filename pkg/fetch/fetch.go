// Package fetch implements a JSON fetch client with classified exponential
// backoff retry. Responses with 5xx or 429 status are retried, all other
// non-2xx responses fail immediately, and transport failures count as
// retryable.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// Default retry configuration values
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = 500 * time.Millisecond
	DefaultMaxDelay    = 8 * time.Second

	defaultHTTPTimeout = 10 * time.Second
)

// Config controls the retry behavior of a single logical fetch.
type Config struct {
	MaxAttempts int           // total attempts, at least 1
	BaseDelay   time.Duration // delay before the second attempt, > 0
	MaxDelay    time.Duration // backoff ceiling, >= BaseDelay
}

// DefaultConfig returns the retry configuration used when callers pass a zero Config.
func DefaultConfig() Config {
	return Config{
		MaxAttempts: DefaultMaxAttempts,
		BaseDelay:   DefaultBaseDelay,
		MaxDelay:    DefaultMaxDelay,
	}
}

// withDefaults fills in invalid or zero fields.
func (c Config) withDefaults() Config {
	if c.MaxAttempts < 1 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	if c.BaseDelay <= 0 {
		c.BaseDelay = DefaultBaseDelay
	}
	if c.MaxDelay < c.BaseDelay {
		c.MaxDelay = c.BaseDelay
	}
	return c
}

// Error is the typed failure returned by FetchJSON. StatusCode is the last
// observed HTTP status, or 0 when the last failure happened below HTTP
// (timeout, DNS, connection reset).
type Error struct {
	StatusCode int
	Attempts   int
	Retryable  bool
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch failed after %d attempt(s): %v", e.Attempts, e.Cause)
	}
	return fmt.Sprintf("fetch failed after %d attempt(s): status %d", e.Attempts, e.StatusCode)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// IsRetryable reports whether err is a fetch error flagged as retryable.
func IsRetryable(err error) bool {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Retryable
	}
	return false
}

// HTTPDoer is the subset of *http.Client the fetch client uses.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// SleepFunc suspends between attempts. It returns early with the context
// error when the context is cancelled during the wait.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Client performs retrying JSON GET requests.
type Client struct {
	httpClient HTTPDoer
	sleep      SleepFunc
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(doer HTTPDoer) Option {
	return func(c *Client) {
		if doer != nil {
			c.httpClient = doer
		}
	}
}

// WithSleep sets a custom sleep function, used by tests to avoid wall-clock waits.
func WithSleep(sleep SleepFunc) Option {
	return func(c *Client) {
		if sleep != nil {
			c.sleep = sleep
		}
	}
}

// New creates a fetch client.
func New(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		sleep:      defaultSleep,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CalculateBackoffDelay returns min(BaseDelay * 2^attempt, MaxDelay).
// The result equals BaseDelay at attempt 0 and never decreases as attempt grows.
func CalculateBackoffDelay(attempt int, cfg Config) time.Duration {
	cfg = cfg.withDefaults()
	if attempt <= 0 {
		return cfg.BaseDelay
	}
	// Shifting past 62 bits overflows Duration before MaxDelay can cap it.
	if attempt >= 62 {
		return cfg.MaxDelay
	}
	delay := cfg.BaseDelay << uint(attempt)
	if delay <= 0 || delay > cfg.MaxDelay {
		return cfg.MaxDelay
	}
	return delay
}

// retryableStatus classifies an HTTP status: 5xx and 429 are transient.
func retryableStatus(status int) bool {
	return status >= 500 || status == http.StatusTooManyRequests
}

// FetchJSON performs a GET against url and decodes the 2xx response body into
// out. Transient failures are retried up to cfg.MaxAttempts times with
// exponential backoff; terminal HTTP errors return after a single call.
func (c *Client) FetchJSON(ctx context.Context, url string, out interface{}, cfg Config) error {
	cfg = cfg.withDefaults()

	var lastStatus int
	var lastErr error

	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		status, err := c.attempt(ctx, url, out)
		if err == nil {
			return nil
		}

		if status != 0 && !retryableStatus(status) {
			return &Error{
				StatusCode: status,
				Attempts:   attempt + 1,
				Retryable:  false,
				Cause:      err,
			}
		}

		lastStatus = status
		lastErr = err

		if attempt < cfg.MaxAttempts-1 {
			if sleepErr := c.sleep(ctx, CalculateBackoffDelay(attempt, cfg)); sleepErr != nil {
				return &Error{
					StatusCode: lastStatus,
					Attempts:   attempt + 1,
					Retryable:  true,
					Cause:      sleepErr,
				}
			}
		}
	}

	return &Error{
		StatusCode: lastStatus,
		Attempts:   cfg.MaxAttempts,
		Retryable:  true,
		Cause:      lastErr,
	}
}

// attempt makes one network call. It returns the HTTP status when a response
// was received, or 0 for transport-level failures.
func (c *Client) attempt(ctx context.Context, url string, out interface{}) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return resp.StatusCode, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if out == nil {
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("failed to decode response body: %w", err)
	}
	return resp.StatusCode, nil
}

// defaultSleep waits for d or until the context is cancelled.
func defaultSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
