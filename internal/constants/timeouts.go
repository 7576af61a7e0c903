// Package constants defines timeout values and retry limits used throughout the application.
package constants

import "time"

// Timeout constants for various operations
const (
	// Per provider call; a timed-out call counts as a transport failure
	ProviderCallTimeout = 10 * time.Second

	// HTTP server shutdown grace period
	ShutdownTimeout = 5 * time.Second
)

// Retry defaults for provider calls
const (
	RetryMaxAttempts = 3
	RetryBaseDelay   = 500 * time.Millisecond
	RetryMaxDelay    = 8 * time.Second
)
