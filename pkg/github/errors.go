package github

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/v68/github"
)

// APIError carries the HTTP status of a failed GitHub API call so callers
// can classify the failure without string matching.
type APIError struct {
	StatusCode int
	Message    string
	RateLimit  *RateLimitInfo
}

// RateLimitInfo describes the rate limit state attached to a 403/429 failure.
type RateLimitInfo struct {
	Limit     int
	Remaining int
	Reset     int64
}

// Error returns the error message
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("GitHub API error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("GitHub API error (status %d)", e.StatusCode)
}

// normalizeError converts go-github SDK error types into *APIError so that
// classification works uniformly. Errors that carry no HTTP status (network
// faults, context cancellation) pass through unchanged.
func normalizeError(err error) error {
	if err == nil {
		return nil
	}

	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		status := http.StatusForbidden
		if rateErr.Response != nil {
			status = rateErr.Response.StatusCode
		}
		return &APIError{
			StatusCode: status,
			Message:    rateErr.Message,
			RateLimit: &RateLimitInfo{
				Limit:     rateErr.Rate.Limit,
				Remaining: rateErr.Rate.Remaining,
				Reset:     rateErr.Rate.Reset.Unix(),
			},
		}
	}

	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		status := http.StatusForbidden
		if abuseErr.Response != nil {
			status = abuseErr.Response.StatusCode
		}
		return &APIError{
			StatusCode: status,
			Message:    abuseErr.Message,
			RateLimit:  &RateLimitInfo{},
		}
	}

	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) {
		status := 0
		if ghErr.Response != nil {
			status = ghErr.Response.StatusCode
		}
		return &APIError{
			StatusCode: status,
			Message:    ghErr.Message,
		}
	}

	return err
}

// StatusOf extracts the HTTP status from an error chain, or 0 when the error
// carries none.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	return StatusOf(err) == http.StatusNotFound
}

// IsUnauthorized reports whether err is a 401 from the API.
func IsUnauthorized(err error) bool {
	return StatusOf(err) == http.StatusUnauthorized
}

// IsForbidden reports whether err is a 403 from the API.
func IsForbidden(err error) bool {
	return StatusOf(err) == http.StatusForbidden
}

// IsRateLimitError reports whether err is a rate limit failure: either a 429
// or a 403 carrying rate limit metadata.
func IsRateLimitError(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.StatusCode == http.StatusTooManyRequests {
		return true
	}
	return apiErr.StatusCode == http.StatusForbidden && apiErr.RateLimit != nil
}
