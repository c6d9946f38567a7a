package pr

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/forgebridge/forgebridge/pkg/envelope"
	"github.com/forgebridge/forgebridge/pkg/tools"
)

// Register wires the pull request tools into the registry, bound to the
// given client.
func Register(reg *tools.Registry, c Client) {
	reg.MustRegister(tools.Tool{
		Name:        "list-prs",
		Description: "List pull requests in a repository, optionally filtered by state (open, closed, all).",
		InputSchema: tools.ObjectSchema(map[string]tools.Property{
			"owner": {Type: "string", Description: "Repository owner"},
			"repo":  {Type: "string", Description: "Repository name"},
			"state": {Type: "string", Description: "Filter by state", Enum: []string{"open", "closed", "all"}},
		}, "owner", "repo"),
		Handler: func(ctx context.Context, args json.RawMessage) (envelope.Result, error) {
			var params struct {
				Owner string `json:"owner"`
				Repo  string `json:"repo"`
				State string `json:"state"`
			}
			if err := json.Unmarshal(args, &params); err != nil {
				return envelope.Result{}, fmt.Errorf("failed to decode arguments: %w", err)
			}
			if params.State == "" {
				params.State = "open"
			}
			return List(ctx, c, params.Owner, params.Repo, params.State), nil
		},
	})

	reg.MustRegister(tools.Tool{
		Name:        "discuss-pr",
		Description: "Browse open pull requests, or inspect a single one when a number is given. An optional query is echoed with the detail.",
		InputSchema: tools.ObjectSchema(map[string]tools.Property{
			"owner":  {Type: "string", Description: "Repository owner"},
			"repo":   {Type: "string", Description: "Repository name"},
			"number": {Type: "number", Description: "Pull request number to inspect"},
			"query":  {Type: "string", Description: "Free-text question about the pull request"},
		}, "owner", "repo"),
		Handler: func(ctx context.Context, args json.RawMessage) (envelope.Result, error) {
			var params struct {
				Owner  string `json:"owner"`
				Repo   string `json:"repo"`
				Number *int   `json:"number"`
				Query  string `json:"query"`
			}
			if err := json.Unmarshal(args, &params); err != nil {
				return envelope.Result{}, fmt.Errorf("failed to decode arguments: %w", err)
			}
			var mode DiscussMode = Browse{}
			if params.Number != nil {
				mode = Inspect{Number: *params.Number, Query: params.Query}
			}
			return Discuss(ctx, c, params.Owner, params.Repo, mode), nil
		},
	})

	reg.MustRegister(tools.Tool{
		Name:        "summarize-pr",
		Description: "Summarize a pull request: description, change totals and truncated per-file diff excerpts.",
		InputSchema: tools.ObjectSchema(map[string]tools.Property{
			"owner":  {Type: "string", Description: "Repository owner"},
			"repo":   {Type: "string", Description: "Repository name"},
			"number": {Type: "number", Description: "Pull request number"},
		}, "owner", "repo", "number"),
		Handler: func(ctx context.Context, args json.RawMessage) (envelope.Result, error) {
			var params struct {
				Owner  string `json:"owner"`
				Repo   string `json:"repo"`
				Number int    `json:"number"`
			}
			if err := json.Unmarshal(args, &params); err != nil {
				return envelope.Result{}, fmt.Errorf("failed to decode arguments: %w", err)
			}
			return Summarize(ctx, c, params.Owner, params.Repo, params.Number), nil
		},
	})

	reg.MustRegister(tools.Tool{
		Name:        "comment-on-pr",
		Description: "Post a comment on a pull request.",
		InputSchema: tools.ObjectSchema(map[string]tools.Property{
			"owner":   {Type: "string", Description: "Repository owner"},
			"repo":    {Type: "string", Description: "Repository name"},
			"number":  {Type: "number", Description: "Pull request number"},
			"comment": {Type: "string", Description: "Comment text"},
		}, "owner", "repo", "number", "comment"),
		Handler: func(ctx context.Context, args json.RawMessage) (envelope.Result, error) {
			var params struct {
				Owner   string `json:"owner"`
				Repo    string `json:"repo"`
				Number  int    `json:"number"`
				Comment string `json:"comment"`
			}
			if err := json.Unmarshal(args, &params); err != nil {
				return envelope.Result{}, fmt.Errorf("failed to decode arguments: %w", err)
			}
			return Comment(ctx, c, params.Owner, params.Repo, params.Number, params.Comment), nil
		},
	})

	reg.MustRegister(tools.Tool{
		Name:        "request-reviewers",
		Description: "Request reviews from one or more users on a pull request.",
		InputSchema: tools.ObjectSchema(map[string]tools.Property{
			"owner":     {Type: "string", Description: "Repository owner"},
			"repo":      {Type: "string", Description: "Repository name"},
			"number":    {Type: "number", Description: "Pull request number"},
			"reviewers": {Type: "array", Description: "Reviewer handles", Items: &tools.Property{Type: "string"}},
		}, "owner", "repo", "number", "reviewers"),
		Handler: func(ctx context.Context, args json.RawMessage) (envelope.Result, error) {
			var params struct {
				Owner     string   `json:"owner"`
				Repo      string   `json:"repo"`
				Number    int      `json:"number"`
				Reviewers []string `json:"reviewers"`
			}
			if err := json.Unmarshal(args, &params); err != nil {
				return envelope.Result{}, fmt.Errorf("failed to decode arguments: %w", err)
			}
			return RequestReviewers(ctx, c, params.Owner, params.Repo, params.Number, params.Reviewers), nil
		},
	})

	reg.MustRegister(tools.Tool{
		Name:        "merge-pr",
		Description: "Merge a pull request if the forge reports it mergeable. Plain merge only, no squash or rebase.",
		InputSchema: tools.ObjectSchema(map[string]tools.Property{
			"owner":         {Type: "string", Description: "Repository owner"},
			"repo":          {Type: "string", Description: "Repository name"},
			"number":        {Type: "number", Description: "Pull request number"},
			"commitTitle":   {Type: "string", Description: "Title for the merge commit"},
			"commitMessage": {Type: "string", Description: "Message body for the merge commit"},
		}, "owner", "repo", "number"),
		Handler: func(ctx context.Context, args json.RawMessage) (envelope.Result, error) {
			var params struct {
				Owner         string `json:"owner"`
				Repo          string `json:"repo"`
				Number        int    `json:"number"`
				CommitTitle   string `json:"commitTitle"`
				CommitMessage string `json:"commitMessage"`
			}
			if err := json.Unmarshal(args, &params); err != nil {
				return envelope.Result{}, fmt.Errorf("failed to decode arguments: %w", err)
			}
			return Merge(ctx, c, params.Owner, params.Repo, params.Number, params.CommitTitle, params.CommitMessage), nil
		},
	})

	reg.MustRegister(tools.Tool{
		Name:        "close-pr",
		Description: "Close an open pull request, optionally posting a reason as a follow-up comment.",
		InputSchema: tools.ObjectSchema(map[string]tools.Property{
			"owner":  {Type: "string", Description: "Repository owner"},
			"repo":   {Type: "string", Description: "Repository name"},
			"number": {Type: "number", Description: "Pull request number"},
			"reason": {Type: "string", Description: "Reason for closing"},
		}, "owner", "repo", "number"),
		Handler: func(ctx context.Context, args json.RawMessage) (envelope.Result, error) {
			var params struct {
				Owner  string `json:"owner"`
				Repo   string `json:"repo"`
				Number int    `json:"number"`
				Reason string `json:"reason"`
			}
			if err := json.Unmarshal(args, &params); err != nil {
				return envelope.Result{}, fmt.Errorf("failed to decode arguments: %w", err)
			}
			return Close(ctx, c, params.Owner, params.Repo, params.Number, params.Reason), nil
		},
	})
}
