// Package repo implements the repository tools: the multi-step creation
// workflow and the confirmation-gated deletion.
package repo

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/forgebridge/forgebridge/pkg/envelope"
	"github.com/forgebridge/forgebridge/pkg/github"
	"github.com/forgebridge/forgebridge/pkg/tools"
)

// Client is the slice of the forge API the repository workflows consume.
type Client interface {
	CreateRepository(ctx context.Context, owner string, params github.CreateRepositoryParams) (*github.Repository, error)
	GetRepository(ctx context.Context, owner, repo string) (*github.Repository, error)
	DeleteRepository(ctx context.Context, owner, repo string) error
	GetRef(ctx context.Context, owner, repo, branch string) (*github.GitRef, error)
	CreateBlob(ctx context.Context, owner, repo, content string) (string, error)
	GetTree(ctx context.Context, owner, repo, sha string) (string, error)
	CreateTree(ctx context.Context, owner, repo, baseTree string, entries []github.TreeEntry) (string, error)
	CreateCommit(ctx context.Context, owner, repo, message, treeSHA, parentSHA string) (string, error)
	UpdateRef(ctx context.Context, owner, repo, branch, commitSHA string) error
}

// initialCommitMessage is the message of the commit landing the caller's
// files in a freshly created repository.
const initialCommitMessage = "Add initial files"

// CreateParams describes the create-repository workflow inputs.
type CreateParams struct {
	// Owner selects the organization to create under; empty means the
	// authenticated identity. The two are distinct underlying endpoints.
	Owner                string
	Name                 string
	Description          string
	Private              bool
	Files                []github.RepositoryFile
	InitializeWithReadme bool
}

// Step names of the initialization sequence, in execution order.
const (
	stepFetchRef      = "fetch-ref"
	stepCreateBlobs   = "create-blobs"
	stepFetchBaseTree = "fetch-base-tree"
	stepCreateTree    = "create-tree"
	stepCreateCommit  = "create-commit"
	stepUpdateRef     = "update-ref"
)

// initStepError reports which initialization step failed. The workflow is
// linear, so the failed step tells the caller exactly how far it got.
type initStepError struct {
	Step string
	Err  error
}

func (e *initStepError) Error() string {
	return fmt.Sprintf("step %s failed: %v", e.Step, e.Err)
}

func (e *initStepError) Unwrap() error {
	return e.Err
}

// Create runs the repository creation workflow.
//
// With no files to land the workflow is a single create call: an
// auto-initialized repository already has its one commit and one ref. With
// files, the workflow builds a tree explicitly so all files land in a single
// commit: fetch the default ref, create one blob per file (the only parallel
// step), fetch the base tree, layer a new tree, commit it and move the ref.
//
// A failure after the create call leaves a created but incompletely
// initialized repository behind. No rollback is attempted; the envelope
// names the failed step and leaves cleanup to the caller.
func Create(ctx context.Context, c Client, params CreateParams) envelope.Result {
	created, err := c.CreateRepository(ctx, params.Owner, github.CreateRepositoryParams{
		Name:        params.Name,
		Description: params.Description,
		Private:     params.Private,
		AutoInit:    params.InitializeWithReadme,
	})
	if err != nil {
		return tools.Failure(fmt.Sprintf("failed to create repository %s", params.Name), err)
	}

	if len(params.Files) == 0 {
		return envelope.Textf("Repository %s/%s created: %s", created.Owner, created.Name, created.URL)
	}

	if err := pushInitialFiles(ctx, c, created, params.Files); err != nil {
		step := "initialization"
		var stepErr *initStepError
		if errors.As(err, &stepErr) {
			step = stepErr.Step
		}
		return envelope.Errorf("repository %s/%s was created, but initializing it failed at step %s: %s",
			created.Owner, created.Name, step, tools.Diagnose(err))
	}

	return envelope.Textf("Repository %s/%s created with %d file(s): %s",
		created.Owner, created.Name, len(params.Files), created.URL)
}

// pushInitialFiles lands the given files in one commit on the repository's
// default branch. Every step strictly depends on the previous step's sha or
// ref except blob creation, which has no inter-file dependency and runs
// concurrently. One blob failing fails the whole step before any tree is
// built.
func pushInitialFiles(ctx context.Context, c Client, repo *github.Repository, files []github.RepositoryFile) error {
	branch := repo.DefaultBranch
	if branch == "" {
		branch = "main"
	}

	ref, err := c.GetRef(ctx, repo.Owner, repo.Name, branch)
	if err != nil {
		return &initStepError{Step: stepFetchRef, Err: err}
	}

	entries := make([]github.TreeEntry, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			sha, err := c.CreateBlob(gctx, repo.Owner, repo.Name, f.Content)
			if err != nil {
				return err
			}
			entries[i] = github.TreeEntry{Path: f.Path, SHA: sha}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return &initStepError{Step: stepCreateBlobs, Err: err}
	}

	baseTree, err := c.GetTree(ctx, repo.Owner, repo.Name, ref.SHA)
	if err != nil {
		return &initStepError{Step: stepFetchBaseTree, Err: err}
	}

	treeSHA, err := c.CreateTree(ctx, repo.Owner, repo.Name, baseTree, entries)
	if err != nil {
		return &initStepError{Step: stepCreateTree, Err: err}
	}

	commitSHA, err := c.CreateCommit(ctx, repo.Owner, repo.Name, initialCommitMessage, treeSHA, ref.SHA)
	if err != nil {
		return &initStepError{Step: stepCreateCommit, Err: err}
	}

	if err := c.UpdateRef(ctx, repo.Owner, repo.Name, branch, commitSHA); err != nil {
		return &initStepError{Step: stepUpdateRef, Err: err}
	}

	return nil
}
