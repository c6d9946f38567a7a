package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/forgebridge/forgebridge/pkg/envelope"
	"github.com/forgebridge/forgebridge/pkg/github"
	"github.com/forgebridge/forgebridge/pkg/tools"
)

// Register wires the repository tools into the registry, bound to the given
// client.
func Register(reg *tools.Registry, c Client) {
	reg.MustRegister(tools.Tool{
		Name:        "create-repository",
		Description: "Create a repository, optionally landing an initial set of files in a single commit.",
		InputSchema: tools.ObjectSchema(map[string]tools.Property{
			"owner":                {Type: "string", Description: "Organization to create under; omit to create under the authenticated user"},
			"name":                 {Type: "string", Description: "Repository name"},
			"description":          {Type: "string", Description: "Repository description"},
			"private":              {Type: "boolean", Description: "Create as private (default false)"},
			"files":                {Type: "array", Description: "Files for the initial commit, each {path, content}", Items: &tools.Property{Type: "object"}},
			"initializeWithReadme": {Type: "boolean", Description: "Seed the repository with a README (default true)"},
		}, "name"),
		Handler: func(ctx context.Context, args json.RawMessage) (envelope.Result, error) {
			var params struct {
				Owner                string                  `json:"owner"`
				Name                 string                  `json:"name"`
				Description          string                  `json:"description"`
				Private              bool                    `json:"private"`
				Files                []github.RepositoryFile `json:"files"`
				InitializeWithReadme *bool                   `json:"initializeWithReadme"`
			}
			if err := json.Unmarshal(args, &params); err != nil {
				return envelope.Result{}, fmt.Errorf("failed to decode arguments: %w", err)
			}

			autoInit := true
			if params.InitializeWithReadme != nil {
				autoInit = *params.InitializeWithReadme
			}

			return Create(ctx, c, CreateParams{
				Owner:                params.Owner,
				Name:                 params.Name,
				Description:          params.Description,
				Private:              params.Private,
				Files:                params.Files,
				InitializeWithReadme: autoInit,
			}), nil
		},
	})

	reg.MustRegister(tools.Tool{
		Name:        "delete-repository",
		Description: "Permanently delete a repository. Requires explicit confirmation; without it nothing happens.",
		InputSchema: tools.ObjectSchema(map[string]tools.Property{
			"owner":        {Type: "string", Description: "Repository owner"},
			"repo":         {Type: "string", Description: "Repository name"},
			"confirmation": {Type: "boolean", Description: "Must be true to actually delete"},
		}, "owner", "repo"),
		Handler: func(ctx context.Context, args json.RawMessage) (envelope.Result, error) {
			var params struct {
				Owner        string `json:"owner"`
				Repo         string `json:"repo"`
				Confirmation bool   `json:"confirmation"`
			}
			if err := json.Unmarshal(args, &params); err != nil {
				return envelope.Result{}, fmt.Errorf("failed to decode arguments: %w", err)
			}
			return Delete(ctx, c, params.Owner, params.Repo, params.Confirmation), nil
		},
	})
}
