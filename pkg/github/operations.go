package github

import (
	"context"
	"fmt"

	"github.com/google/go-github/v68/github"
)

// listPerPage is the page size requested from list endpoints. A single
// upstream call is issued; whatever one page returns is the result.
const listPerPage = 100

// ListPullRequests lists pull requests filtered by state ("open", "closed"
// or "all"). The forge's ordering is preserved.
func (c *Client) ListPullRequests(ctx context.Context, owner, repo, state string) ([]*PullRequest, error) {
	opts := &github.PullRequestListOptions{
		State:       state,
		ListOptions: github.ListOptions{PerPage: listPerPage},
	}

	prs, resp, err := c.gh.PullRequests.List(ctx, owner, repo, opts)
	c.track(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to list pull requests: %w", normalizeError(err))
	}

	result := make([]*PullRequest, 0, len(prs))
	for _, pr := range prs {
		result = append(result, convertFromGitHubPR(pr))
	}
	return result, nil
}

// GetPullRequest fetches a single pull request.
func (c *Client) GetPullRequest(ctx context.Context, owner, repo string, number int) (*PullRequest, error) {
	pr, resp, err := c.gh.PullRequests.Get(ctx, owner, repo, number)
	c.track(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pull request: %w", normalizeError(err))
	}
	return convertFromGitHubPR(pr), nil
}

// convertFromGitHubPR converts a github.PullRequest to our PullRequest type
func convertFromGitHubPR(pr *github.PullRequest) *PullRequest {
	author := ""
	if user := pr.GetUser(); user != nil {
		author = user.GetLogin()
	}

	return &PullRequest{
		Number:    pr.GetNumber(),
		Title:     pr.GetTitle(),
		Body:      pr.GetBody(),
		URL:       pr.GetHTMLURL(),
		State:     pr.GetState(),
		CreatedAt: pr.GetCreatedAt().Time,
		Author:    author,
		Mergeable: pr.Mergeable,
	}
}

// ListPullRequestFiles fetches the changed-file list of a pull request.
func (c *Client) ListPullRequestFiles(ctx context.Context, owner, repo string, number int) ([]*PullRequestFile, error) {
	files, resp, err := c.gh.PullRequests.ListFiles(ctx, owner, repo, number, &github.ListOptions{PerPage: listPerPage})
	c.track(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to list pull request files: %w", normalizeError(err))
	}

	result := make([]*PullRequestFile, 0, len(files))
	for _, f := range files {
		result = append(result, &PullRequestFile{
			Filename:  f.GetFilename(),
			Status:    f.GetStatus(),
			Additions: f.GetAdditions(),
			Deletions: f.GetDeletions(),
			Changes:   f.GetChanges(),
			Patch:     f.GetPatch(),
		})
	}
	return result, nil
}

// CreateIssueComment posts a comment on an issue or pull request. A PR is
// addressable as an issue for comment purposes.
func (c *Client) CreateIssueComment(ctx context.Context, owner, repo string, number int, body string) (string, error) {
	comment, resp, err := c.gh.Issues.CreateComment(ctx, owner, repo, number, &github.IssueComment{Body: &body})
	c.track(resp)
	if err != nil {
		return "", fmt.Errorf("failed to create comment: %w", normalizeError(err))
	}
	return comment.GetHTMLURL(), nil
}

// RequestReviewers adds the given reviewers to a pull request in one call.
func (c *Client) RequestReviewers(ctx context.Context, owner, repo string, number int, reviewers []string) error {
	_, resp, err := c.gh.PullRequests.RequestReviewers(ctx, owner, repo, number, github.ReviewersRequest{
		Reviewers: reviewers,
	})
	c.track(resp)
	if err != nil {
		return fmt.Errorf("failed to request reviewers: %w", normalizeError(err))
	}
	return nil
}

// MergePullRequest merges a pull request using the plain merge method.
// Squash and rebase variants are not supported.
func (c *Client) MergePullRequest(ctx context.Context, owner, repo string, number int, commitTitle, commitMessage string) (*MergeResult, error) {
	opts := &github.PullRequestOptions{
		CommitTitle: commitTitle,
		MergeMethod: "merge",
	}

	result, resp, err := c.gh.PullRequests.Merge(ctx, owner, repo, number, commitMessage, opts)
	c.track(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to merge pull request: %w", normalizeError(err))
	}

	return &MergeResult{
		Merged:  result.GetMerged(),
		SHA:     result.GetSHA(),
		Message: result.GetMessage(),
	}, nil
}

// ClosePullRequest sets a pull request's state to closed via the issue
// update endpoint.
func (c *Client) ClosePullRequest(ctx context.Context, owner, repo string, number int) error {
	state := "closed"
	_, resp, err := c.gh.Issues.Edit(ctx, owner, repo, number, &github.IssueRequest{State: &state})
	c.track(resp)
	if err != nil {
		return fmt.Errorf("failed to close pull request: %w", normalizeError(err))
	}
	return nil
}
