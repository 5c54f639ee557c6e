// Package errors provides error types for lazymvn.
// This file contains registry, network and timeout-related errors.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// Network-related error constructors.

// NetworkUnavailable creates an error for registry connectivity issues.
func NetworkUnavailable(host string, cause error) *AppError {
	err := &AppError{
		Kind:    ErrNetwork,
		Message: "network unavailable",
		Cause:   cause,
		Suggestion: `Check your network connection:

  1. Verify internet connectivity
  2. Check if a VPN or firewall is blocking access
  3. Try: curl -I https://search.maven.org

If you're behind a proxy:
  export HTTPS_PROXY=http://proxy:port`,
	}
	if host != "" {
		err.Details = map[string]string{"host": host}
	}
	return err
}

// RegistryStatus creates an error for a non-2xx registry response.
func RegistryStatus(status int, body string) *AppError {
	err := &AppError{
		Kind:    ErrRegistry,
		Message: fmt.Sprintf("registry returned status %d", status),
		Details: map[string]string{
			"status": fmt.Sprintf("%d", status),
		},
	}
	if body != "" {
		err.Details["body"] = body
	}
	if status == 429 {
		err.Suggestion = "The registry is rate limiting requests. Wait a moment and search again."
	}
	return err
}

// RegistryDecode creates an error for a registry payload that could not be parsed.
func RegistryDecode(cause error) *AppError {
	return &AppError{
		Kind:    ErrRegistry,
		Message: "malformed registry response",
		Cause:   cause,
	}
}

// Timeout-related error constructors.

// RequestTimeout creates an error for a registry request that took too long.
func RequestTimeout(operation string, limit time.Duration) *AppError {
	return &AppError{
		Kind:    ErrTimeout,
		Message: fmt.Sprintf("%s timed out after %v", operation, limit.Round(time.Millisecond)),
		Details: map[string]string{
			"operation": operation,
			"limit":     limit.Round(time.Millisecond).String(),
		},
		Suggestion: "Raise registry.timeout in .lazymvn.yaml if the registry is slow from your network.",
	}
}

// Helper functions for error detection.

// IsRetryable returns true if the error is likely transient and retrying may succeed.
func IsRetryable(err error) bool {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return false
	}

	switch appErr.Kind {
	case ErrNetwork, ErrTimeout:
		return true
	case ErrRegistry:
		return appErr.Details["status"] == "429" || appErr.Details["status"] == "503"
	default:
		return false
	}
}

// IsUserError returns true if the error is due to user input or setup.
func IsUserError(err error) bool {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return false
	}

	switch appErr.Kind {
	case ErrConfig, ErrDocument:
		return true
	default:
		return false
	}
}
