package github

import (
	"context"
	"fmt"

	"github.com/google/go-github/v68/github"
)

// CreateRepositoryParams describes a repository to create.
type CreateRepositoryParams struct {
	Name        string
	Description string
	Private     bool

	// AutoInit asks the forge to seed the repository with a README, giving
	// it an initial commit and default ref.
	AutoInit bool
}

// CreateRepository creates a repository. An empty owner creates under the
// authenticated identity; a non-empty owner creates under that organization.
// These are two distinct underlying endpoints chosen by presence.
func (c *Client) CreateRepository(ctx context.Context, owner string, params CreateRepositoryParams) (*Repository, error) {
	repo := &github.Repository{
		Name:        github.String(params.Name),
		Description: github.String(params.Description),
		Private:     github.Bool(params.Private),
		AutoInit:    github.Bool(params.AutoInit),
	}

	created, resp, err := c.gh.Repositories.Create(ctx, owner, repo)
	c.track(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to create repository: %w", normalizeError(err))
	}
	return convertFromGitHubRepo(created), nil
}

// GetRepository fetches a repository, doubling as an existence probe.
func (c *Client) GetRepository(ctx context.Context, owner, repo string) (*Repository, error) {
	r, resp, err := c.gh.Repositories.Get(ctx, owner, repo)
	c.track(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch repository: %w", normalizeError(err))
	}
	return convertFromGitHubRepo(r), nil
}

// DeleteRepository deletes a repository. Irreversible through the API.
func (c *Client) DeleteRepository(ctx context.Context, owner, repo string) error {
	resp, err := c.gh.Repositories.Delete(ctx, owner, repo)
	c.track(resp)
	if err != nil {
		return fmt.Errorf("failed to delete repository: %w", normalizeError(err))
	}
	return nil
}

// convertFromGitHubRepo converts a github.Repository to our Repository type
func convertFromGitHubRepo(r *github.Repository) *Repository {
	owner := ""
	if o := r.GetOwner(); o != nil {
		owner = o.GetLogin()
	}

	return &Repository{
		Owner:         owner,
		Name:          r.GetName(),
		Private:       r.GetPrivate(),
		DefaultBranch: r.GetDefaultBranch(),
		URL:           r.GetHTMLURL(),
	}
}

// GetRef resolves a branch name to its current commit sha.
func (c *Client) GetRef(ctx context.Context, owner, repo, branch string) (*GitRef, error) {
	ref, resp, err := c.gh.Git.GetRef(ctx, owner, repo, "heads/"+branch)
	c.track(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ref for branch %q: %w", branch, normalizeError(err))
	}
	return &GitRef{
		Ref: ref.GetRef(),
		SHA: ref.GetObject().GetSHA(),
	}, nil
}

// CreateBlob uploads file content as a blob and returns its sha.
func (c *Client) CreateBlob(ctx context.Context, owner, repo, content string) (string, error) {
	blob, resp, err := c.gh.Git.CreateBlob(ctx, owner, repo, &github.Blob{
		Content:  github.String(content),
		Encoding: github.String("utf-8"),
	})
	c.track(resp)
	if err != nil {
		return "", fmt.Errorf("failed to create blob: %w", normalizeError(err))
	}
	return blob.GetSHA(), nil
}

// GetTree fetches the tree addressed by sha, recursively.
func (c *Client) GetTree(ctx context.Context, owner, repo, sha string) (string, error) {
	tree, resp, err := c.gh.Git.GetTree(ctx, owner, repo, sha, true)
	c.track(resp)
	if err != nil {
		return "", fmt.Errorf("failed to fetch tree: %w", normalizeError(err))
	}
	return tree.GetSHA(), nil
}

// CreateTree layers the given blob entries on a base tree and returns the
// new tree's sha. All entries are regular files.
func (c *Client) CreateTree(ctx context.Context, owner, repo, baseTree string, entries []TreeEntry) (string, error) {
	treeEntries := make([]*github.TreeEntry, 0, len(entries))
	for _, e := range entries {
		treeEntries = append(treeEntries, &github.TreeEntry{
			Path: github.String(e.Path),
			Mode: github.String("100644"),
			Type: github.String("blob"),
			SHA:  github.String(e.SHA),
		})
	}

	tree, resp, err := c.gh.Git.CreateTree(ctx, owner, repo, baseTree, treeEntries)
	c.track(resp)
	if err != nil {
		return "", fmt.Errorf("failed to create tree: %w", normalizeError(err))
	}
	return tree.GetSHA(), nil
}

// CreateCommit creates a commit pointing at a tree with a single parent.
func (c *Client) CreateCommit(ctx context.Context, owner, repo, message, treeSHA, parentSHA string) (string, error) {
	commit := &github.Commit{
		Message: github.String(message),
		Tree:    &github.Tree{SHA: github.String(treeSHA)},
		Parents: []*github.Commit{{SHA: github.String(parentSHA)}},
	}

	created, resp, err := c.gh.Git.CreateCommit(ctx, owner, repo, commit, nil)
	c.track(resp)
	if err != nil {
		return "", fmt.Errorf("failed to create commit: %w", normalizeError(err))
	}
	return created.GetSHA(), nil
}

// UpdateRef moves a branch to point at the given commit sha.
func (c *Client) UpdateRef(ctx context.Context, owner, repo, branch, commitSHA string) error {
	ref := &github.Reference{
		Ref:    github.String("refs/heads/" + branch),
		Object: &github.GitObject{SHA: github.String(commitSHA)},
	}

	_, resp, err := c.gh.Git.UpdateRef(ctx, owner, repo, ref, false)
	c.track(resp)
	if err != nil {
		return fmt.Errorf("failed to update ref for branch %q: %w", branch, normalizeError(err))
	}
	return nil
}
