package github

import "time"

// PullRequest is the forge-owned pull request record as this system reads it.
// The number is forge-assigned and immutable; nothing here is cached across
// invocations.
type PullRequest struct {
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	Body      string    `json:"body,omitempty"`
	URL       string    `json:"url"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"created_at"`
	Author    string    `json:"author"`

	// Mergeable is tri-state: nil means the forge has not computed it yet.
	Mergeable *bool `json:"mergeable,omitempty"`
}

// PullRequestFile is one changed file in a pull request.
type PullRequestFile struct {
	Filename  string `json:"filename"`
	Status    string `json:"status"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
	Changes   int    `json:"changes"`

	// Patch may be empty for binary or oversized diffs.
	Patch string `json:"patch,omitempty"`
}

// Repository is the forge-owned repository record.
type Repository struct {
	Owner         string `json:"owner"`
	Name          string `json:"name"`
	Private       bool   `json:"private"`
	DefaultBranch string `json:"default_branch"`
	URL           string `json:"url"`
}

// RepositoryFile is a caller-supplied file to land in a new repository's
// initial commit. It exists only for the duration of the create workflow.
type RepositoryFile struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// MergeResult reports the outcome of a merge call.
type MergeResult struct {
	Merged  bool   `json:"merged"`
	SHA     string `json:"sha,omitempty"`
	Message string `json:"message,omitempty"`
}

// GitRef is a branch name to commit sha pointer.
type GitRef struct {
	Ref string `json:"ref"`
	SHA string `json:"sha"`
}

// TreeEntry places a blob at a path inside a tree under construction.
type TreeEntry struct {
	Path string `json:"path"`
	SHA  string `json:"sha"`
}
