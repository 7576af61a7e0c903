// Package httputil provides HTTP client utilities with standard configurations.
package httputil

import (
	"net/http"
	"time"
)

const (
	// Default timeout for HTTP requests
	defaultTimeout = 10 * time.Second

	// Transport configuration constants
	maxIdleConns        = 10
	maxIdleConnsPerHost = 2
	idleConnTimeout     = 30 * time.Second
)

// NewHTTPClient creates a new HTTP client with the specified timeout.
// The client is configured with connection pooling and idle connection management.
// The timeout is per provider call; a timed-out call surfaces as a transport
// failure to the caller.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        maxIdleConns,
			MaxIdleConnsPerHost: maxIdleConnsPerHost,
			IdleConnTimeout:     idleConnTimeout,
		},
	}
}

// NewDefaultHTTPClient creates a new HTTP client with the default 10 second timeout.
// This is suitable for metadata provider API calls.
func NewDefaultHTTPClient() *http.Client {
	return NewHTTPClient(defaultTimeout)
}
