package github

import (
	"sync"
	"time"

	"github.com/google/go-github/v68/github"
)

// defaultRateLimit is GitHub's documented authenticated-request quota.
const defaultRateLimit = 5000

// RateLimitStatus represents the current rate limit status
type RateLimitStatus struct {
	Limit     int       `json:"limit"`
	Remaining int       `json:"remaining"`
	Reset     time.Time `json:"reset"`
}

// RateLimitTracker records rate limit information from API responses. It is
// observational only: nothing in this system gates or delays calls on it.
type RateLimitTracker struct {
	mu    sync.RWMutex
	limit RateLimitStatus
}

// NewRateLimitTracker creates a new rate limit tracker
func NewRateLimitTracker() *RateLimitTracker {
	return &RateLimitTracker{
		limit: RateLimitStatus{
			Limit:     defaultRateLimit,
			Remaining: defaultRateLimit,
		},
	}
}

// Update updates the rate limit status from an API response
func (r *RateLimitTracker) Update(resp *github.Response) {
	if resp == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if resp.Rate.Limit > 0 {
		r.limit.Limit = resp.Rate.Limit
	}
	r.limit.Remaining = resp.Rate.Remaining
	if !resp.Rate.Reset.IsZero() {
		r.limit.Reset = resp.Rate.Reset.Time
	}
}

// GetStatus returns a copy of the current rate limit status
func (r *RateLimitTracker) GetStatus() RateLimitStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.limit
}
