// Package errors defines the error taxonomy for the adapter layer.
// Callers use the type constants to distinguish transient failures worth
// retrying from permanent ones.
package errors

import (
	"errors"
	"fmt"
)

// AppError represents a classified failure from the adapter layer.
type AppError struct {
	Type    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Error type constants
const (
	ErrorTypeConfigurationInvalid = "CONFIGURATION_INVALID"
	ErrorTypeAPIKeyMissing        = "API_KEY_MISSING"
	ErrorTypeProviderFailure      = "PROVIDER_FAILURE"
	ErrorTypeEntityNotFound       = "ENTITY_NOT_FOUND"
	ErrorTypeInvalidID            = "INVALID_ID"
)

// NewAppError creates a new AppError
func NewAppError(errorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// NewConfigurationError creates a configuration-related error
func NewConfigurationError(message string, cause error) *AppError {
	return NewAppError(ErrorTypeConfigurationInvalid, message, cause)
}

// NewAPIKeyMissingError names both the provider and the environment variable
// the operator has to set.
func NewAPIKeyMissingError(provider, envVar string) *AppError {
	return NewAppError(ErrorTypeAPIKeyMissing,
		fmt.Sprintf("API key missing for provider %s: set the %s environment variable", provider, envVar), nil)
}

// NewProviderError creates an error for a failed provider call
func NewProviderError(provider, message string, cause error) *AppError {
	return NewAppError(ErrorTypeProviderFailure, fmt.Sprintf("[%s] %s", provider, message), cause)
}

// NewEntityNotFoundError reports that the provider explicitly said the entity
// does not exist. Not retryable and never conflated with HTTP-level failures.
func NewEntityNotFoundError(provider, mediaType string, id int) *AppError {
	return NewAppError(ErrorTypeEntityNotFound,
		fmt.Sprintf("[%s] %s with id %d not found", provider, mediaType, id), nil)
}

// IsNotFound reports whether err is an entity-not-found error.
func IsNotFound(err error) bool {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Type == ErrorTypeEntityNotFound
	}
	return false
}
