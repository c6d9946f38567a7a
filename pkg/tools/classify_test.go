package tools

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/forgebridge/forgebridge/pkg/github"
)

func TestDiagnose(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "401 points at the token",
			err:  fmt.Errorf("failed to list pull requests: %w", &github.APIError{StatusCode: 401}),
			want: "authentication failed: check your token",
		},
		{
			name: "403 points at permissions",
			err:  fmt.Errorf("failed to delete repository: %w", &github.APIError{StatusCode: 403}),
			want: "permission denied: check token permissions",
		},
		{
			name: "403 with rate limit metadata names the quota",
			err: fmt.Errorf("call: %w", &github.APIError{
				StatusCode: 403,
				RateLimit:  &github.RateLimitInfo{Remaining: 0},
			}),
			want: "rate limit exceeded: wait before retrying",
		},
		{
			name: "404 names absence",
			err:  fmt.Errorf("probe: %w", &github.APIError{StatusCode: 404}),
			want: "resource does not exist",
		},
		{
			name: "unclassified surfaces raw message",
			err:  errors.New("dial tcp 10.0.0.1: i/o timeout"),
			want: "dial tcp 10.0.0.1: i/o timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Diagnose(tt.err))
		})
	}
}

func TestFailureEnvelope(t *testing.T) {
	err := fmt.Errorf("x: %w", &github.APIError{StatusCode: 401})
	res := Failure("failed to merge pull request", err)
	assert.True(t, res.IsError)
	assert.Equal(t, "failed to merge pull request: authentication failed: check your token", res.Content[0].Text)
}
