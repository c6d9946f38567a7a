package pr

import (
	"fmt"
	"strings"

	"github.com/forgebridge/forgebridge/pkg/envelope"
	"github.com/forgebridge/forgebridge/pkg/github"
)

const noDescription = "(no description provided)"

// renderList renders pull requests in the order the forge returned them.
func renderList(owner, repo, state string, prs []*github.PullRequest) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Pull requests in %s/%s (state: %s)\n\n", owner, repo, state)
	for _, pr := range prs {
		fmt.Fprintf(&sb, "- #%d %s [%s] by %s", pr.Number, pr.Title, pr.State, pr.Author)
		if !pr.CreatedAt.IsZero() {
			fmt.Fprintf(&sb, " (opened %s)", pr.CreatedAt.Format("2006-01-02"))
		}
		if pr.URL != "" {
			fmt.Fprintf(&sb, "\n  %s", pr.URL)
		}
		sb.WriteString("\n")
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// renderDetail renders the full detail of a single pull request. A non-empty
// query is echoed verbatim for the calling agent; it has no semantics here.
func renderDetail(pr *github.PullRequest, query string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Pull request #%d: %s\n\n", pr.Number, pr.Title)
	fmt.Fprintf(&sb, "- State: %s\n", pr.State)
	fmt.Fprintf(&sb, "- Author: %s\n", pr.Author)
	if !pr.CreatedAt.IsZero() {
		fmt.Fprintf(&sb, "- Opened: %s\n", pr.CreatedAt.Format("2006-01-02"))
	}
	fmt.Fprintf(&sb, "- Mergeable: %s\n", mergeableText(pr.Mergeable))
	if pr.URL != "" {
		fmt.Fprintf(&sb, "- URL: %s\n", pr.URL)
	}

	body := pr.Body
	if body == "" {
		body = noDescription
	}
	fmt.Fprintf(&sb, "\n%s", body)

	if query != "" {
		fmt.Fprintf(&sb, "\n\nQuestion about this pull request: %s", query)
	}
	return sb.String()
}

func mergeableText(m *bool) string {
	switch {
	case m == nil:
		return "unknown"
	case *m:
		return "yes"
	default:
		return "no"
	}
}

// renderSummary renders the aggregate change report for a pull request.
func renderSummary(pr *github.PullRequest, files []*github.PullRequestFile) string {
	totalAdditions := 0
	totalDeletions := 0
	for _, f := range files {
		totalAdditions += f.Additions
		totalDeletions += f.Deletions
	}

	body := pr.Body
	if body == "" {
		body = noDescription
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# Summary of pull request #%d: %s\n\n", pr.Number, pr.Title)
	fmt.Fprintf(&sb, "%s\n\n", body)
	fmt.Fprintf(&sb, "Files changed: %d\n", len(files))
	fmt.Fprintf(&sb, "Total additions: %d\n", totalAdditions)
	fmt.Fprintf(&sb, "Total deletions: %d\n", totalDeletions)

	for _, f := range files {
		fmt.Fprintf(&sb, "\n## %s (%s, +%d/-%d)\n", f.Filename, f.Status, f.Additions, f.Deletions)
		if f.Patch != "" {
			fmt.Fprintf(&sb, "```diff\n%s\n```\n", envelope.Truncate(f.Patch, patchExcerptLimit))
		}
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// renderReviewersRequested names the count and handles requested.
func renderReviewersRequested(number int, reviewers []string) string {
	noun := "reviewers"
	if len(reviewers) == 1 {
		noun = "reviewer"
	}
	return fmt.Sprintf("Requested %d %s on pull request #%d: %s",
		len(reviewers), noun, number, strings.Join(reviewers, ", "))
}
