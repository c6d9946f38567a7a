// Package github wraps the GitHub REST API behind a typed client. Tool
// handlers consume it through narrow interfaces so tests can substitute
// stubs; the real client carries a single fixed credential and no other
// state across calls.
package github

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"
)

// Client is the authenticated GitHub API client handle.
type Client struct {
	gh   *github.Client
	rate *RateLimitTracker
}

// ClientOptions configures a new Client.
type ClientOptions struct {
	// Token is the API credential. An empty token builds an unauthenticated
	// client; the failure then surfaces as a 401 on the first call.
	Token string

	// BaseURL overrides the API endpoint, e.g. for GitHub Enterprise.
	// Empty means api.github.com.
	BaseURL string
}

// NewClient creates a GitHub API client from the given options.
func NewClient(opts ClientOptions) (*Client, error) {
	httpClient := oauth2.NewClient(context.Background(),
		oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token}))
	if opts.Token == "" {
		httpClient = nil
	}

	gh := github.NewClient(httpClient)
	if opts.BaseURL != "" {
		base := opts.BaseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("invalid API base URL %q: %w", opts.BaseURL, err)
		}
		gh.BaseURL = u
	}

	return &Client{
		gh:   gh,
		rate: NewRateLimitTracker(),
	}, nil
}

// GitHubClient exposes the underlying SDK client.
func (c *Client) GitHubClient() *github.Client {
	return c.gh
}

// RateLimit returns the most recently observed rate limit status.
func (c *Client) RateLimit() RateLimitStatus {
	return c.rate.GetStatus()
}

// RateLimitTracker exposes the tracker itself for callers that poll it.
func (c *Client) RateLimitTracker() *RateLimitTracker {
	return c.rate
}

// track records rate limit headers from a completed API response.
func (c *Client) track(resp *github.Response) {
	if resp != nil {
		c.rate.Update(resp)
	}
}
