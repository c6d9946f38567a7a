// Package pr implements the pull request tools: list, discuss, summarize,
// comment, request-reviewers, merge and close.
package pr

import (
	"context"
	"fmt"

	"github.com/forgebridge/forgebridge/pkg/envelope"
	"github.com/forgebridge/forgebridge/pkg/github"
	"github.com/forgebridge/forgebridge/pkg/tools"
)

// Client is the slice of the forge API these handlers consume. The real
// *github.Client satisfies it; tests substitute stubs.
type Client interface {
	ListPullRequests(ctx context.Context, owner, repo, state string) ([]*github.PullRequest, error)
	GetPullRequest(ctx context.Context, owner, repo string, number int) (*github.PullRequest, error)
	ListPullRequestFiles(ctx context.Context, owner, repo string, number int) ([]*github.PullRequestFile, error)
	CreateIssueComment(ctx context.Context, owner, repo string, number int, body string) (string, error)
	RequestReviewers(ctx context.Context, owner, repo string, number int, reviewers []string) error
	MergePullRequest(ctx context.Context, owner, repo string, number int, commitTitle, commitMessage string) (*github.MergeResult, error)
	ClosePullRequest(ctx context.Context, owner, repo string, number int) error
}

const (
	// commentPreviewLimit caps the echoed preview of a posted comment.
	commentPreviewLimit = 200

	// patchExcerptLimit caps the per-file diff excerpt in summaries.
	patchExcerptLimit = 600
)

// List renders the pull requests of a repository filtered by state. An empty
// result is a success with an explicit "none found" text, never an error.
func List(ctx context.Context, c Client, owner, repo, state string) envelope.Result {
	prs, err := c.ListPullRequests(ctx, owner, repo, state)
	if err != nil {
		return tools.Failure("failed to list pull requests", err)
	}
	if len(prs) == 0 {
		return envelope.Textf("No pull requests found in %s/%s (state: %s)", owner, repo, state)
	}
	return envelope.Text(renderList(owner, repo, state, prs))
}

// DiscussMode selects between browsing open pull requests and inspecting a
// single one. The two behaviors are distinct contracts, so the choice is a
// tagged variant rather than a nullability check.
type DiscussMode interface {
	isDiscussMode()
}

// Browse lists open pull requests.
type Browse struct{}

// Inspect fetches one pull request; an optional free-text query is echoed
// alongside the detail, never interpreted or sent anywhere.
type Inspect struct {
	Number int
	Query  string
}

func (Browse) isDiscussMode()  {}
func (Inspect) isDiscussMode() {}

// Discuss handles the dual-mode browse-or-inspect contract.
func Discuss(ctx context.Context, c Client, owner, repo string, mode DiscussMode) envelope.Result {
	switch m := mode.(type) {
	case Inspect:
		pr, err := c.GetPullRequest(ctx, owner, repo, m.Number)
		if err != nil {
			return tools.Failure(fmt.Sprintf("failed to fetch pull request #%d", m.Number), err)
		}
		return envelope.Text(renderDetail(pr, m.Query))
	default:
		return List(ctx, c, owner, repo, "open")
	}
}

// Summarize fetches a pull request and its changed files, aggregates the
// per-file addition/deletion counts and renders a report with truncated diff
// excerpts.
func Summarize(ctx context.Context, c Client, owner, repo string, number int) envelope.Result {
	pr, err := c.GetPullRequest(ctx, owner, repo, number)
	if err != nil {
		return tools.Failure(fmt.Sprintf("failed to fetch pull request #%d", number), err)
	}

	files, err := c.ListPullRequestFiles(ctx, owner, repo, number)
	if err != nil {
		return tools.Failure(fmt.Sprintf("failed to fetch files for pull request #%d", number), err)
	}

	return envelope.Text(renderSummary(pr, files))
}

// Comment posts a comment on a pull request through the issue-comment
// endpoint and echoes a truncated preview on success.
func Comment(ctx context.Context, c Client, owner, repo string, number int, body string) envelope.Result {
	url, err := c.CreateIssueComment(ctx, owner, repo, number, body)
	if err != nil {
		return tools.Failure(fmt.Sprintf("failed to comment on pull request #%d", number), err)
	}

	preview := envelope.Truncate(body, commentPreviewLimit)
	return envelope.Textf("Comment posted on pull request #%d: %s\n\n> %s", number, url, preview)
}

// RequestReviewers adds all given reviewers to a pull request in one call.
func RequestReviewers(ctx context.Context, c Client, owner, repo string, number int, reviewers []string) envelope.Result {
	if len(reviewers) == 0 {
		return envelope.Errorf("no reviewers given for pull request #%d", number)
	}

	if err := c.RequestReviewers(ctx, owner, repo, number, reviewers); err != nil {
		return tools.Failure(fmt.Sprintf("failed to request reviewers for pull request #%d", number), err)
	}

	return envelope.Text(renderReviewersRequested(number, reviewers))
}

// Merge merges a pull request after checking its mergeable flag. A pull
// request the forge reports as unmergeable (or not yet computed) is a valid
// terminal outcome, not a failure: no merge call is issued and the envelope
// is informational. The snapshot and the merge call are not atomic; the
// forge arbitrates any race between them.
func Merge(ctx context.Context, c Client, owner, repo string, number int, commitTitle, commitMessage string) envelope.Result {
	pr, err := c.GetPullRequest(ctx, owner, repo, number)
	if err != nil {
		return tools.Failure(fmt.Sprintf("failed to fetch pull request #%d", number), err)
	}

	if pr.Mergeable == nil {
		return envelope.Textf("Pull request #%d cannot be merged yet: mergeability has not been computed, try again shortly", number)
	}
	if !*pr.Mergeable {
		return envelope.Textf("Pull request #%d is not mergeable: it may have conflicts that need to be resolved", number)
	}

	result, err := c.MergePullRequest(ctx, owner, repo, number, commitTitle, commitMessage)
	if err != nil {
		return tools.Failure(fmt.Sprintf("failed to merge pull request #%d", number), err)
	}

	return envelope.Textf("Pull request #%d merged: %s (%s)", number, result.Message, result.SHA)
}

// Close closes an open pull request, then optionally posts the reason as a
// follow-up comment. The two writes are sequential and not transactional:
// when the comment fails after the close succeeded, the pull request stays
// closed and the comment failure surfaces in the envelope.
func Close(ctx context.Context, c Client, owner, repo string, number int, reason string) envelope.Result {
	pr, err := c.GetPullRequest(ctx, owner, repo, number)
	if err != nil {
		return tools.Failure(fmt.Sprintf("failed to fetch pull request #%d", number), err)
	}

	if pr.State != "open" {
		return envelope.Textf("Pull request #%d is already %s, nothing to do", number, pr.State)
	}

	if err := c.ClosePullRequest(ctx, owner, repo, number); err != nil {
		return tools.Failure(fmt.Sprintf("failed to close pull request #%d", number), err)
	}

	if reason != "" {
		if _, err := c.CreateIssueComment(ctx, owner, repo, number, reason); err != nil {
			return envelope.Errorf("pull request #%d was closed, but posting the closing reason failed: %s",
				number, tools.Diagnose(err))
		}
		return envelope.Textf("Pull request #%d closed, reason posted as a comment", number)
	}

	return envelope.Textf("Pull request #%d closed", number)
}
