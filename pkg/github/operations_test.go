package github

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	gh "github.com/google/go-github/v68/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient creates a Client pointed at a mock GitHub API server.
func newTestClient(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client, err := NewClient(ClientOptions{BaseURL: server.URL + "/"})
	require.NoError(t, err)
	return client
}

func TestListPullRequests(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo/hello/pulls", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "open", r.URL.Query().Get("state"))

		w.Header().Set("Content-Type", "application/json")
		prs := []*gh.PullRequest{
			{
				Number:  gh.Int(7),
				Title:   gh.String("Add feature"),
				State:   gh.String("open"),
				HTMLURL: gh.String("https://github.com/octo/hello/pull/7"),
				User:    &gh.User{Login: gh.String("alice")},
			},
		}
		require.NoError(t, json.NewEncoder(w).Encode(prs))
	})

	client := newTestClient(t, mux)
	prs, err := client.ListPullRequests(context.Background(), "octo", "hello", "open")
	require.NoError(t, err)
	require.Len(t, prs, 1)
	assert.Equal(t, 7, prs[0].Number)
	assert.Equal(t, "Add feature", prs[0].Title)
	assert.Equal(t, "alice", prs[0].Author)
	assert.Nil(t, prs[0].Mergeable)
}

func TestGetPullRequestMergeableTriState(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo/hello/pulls/3", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		pr := &gh.PullRequest{
			Number:    gh.Int(3),
			Title:     gh.String("Fix bug"),
			State:     gh.String("open"),
			Mergeable: gh.Bool(false),
		}
		require.NoError(t, json.NewEncoder(w).Encode(pr))
	})

	client := newTestClient(t, mux)
	pr, err := client.GetPullRequest(context.Background(), "octo", "hello", 3)
	require.NoError(t, err)
	require.NotNil(t, pr.Mergeable)
	assert.False(t, *pr.Mergeable)
}

func TestGetPullRequestNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo/hello/pulls/99", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message": "Not Found"}`))
	})

	client := newTestClient(t, mux)
	_, err := client.GetPullRequest(context.Background(), "octo", "hello", 99)
	require.Error(t, err)
	assert.True(t, IsNotFound(err), "expected 404 classification, got %v", err)
}

func TestCreateIssueComment(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo/hello/issues/5/comments", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		var body gh.IssueComment
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "looks good", body.GetBody())

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		created := &gh.IssueComment{
			ID:      gh.Int64(42),
			Body:    body.Body,
			HTMLURL: gh.String("https://github.com/octo/hello/pull/5#issuecomment-42"),
		}
		require.NoError(t, json.NewEncoder(w).Encode(created))
	})

	client := newTestClient(t, mux)
	url, err := client.CreateIssueComment(context.Background(), "octo", "hello", 5, "looks good")
	require.NoError(t, err)
	assert.Contains(t, url, "issuecomment-42")
}

func TestCreateRepositoryOwnerSelectsEndpoint(t *testing.T) {
	tests := []struct {
		name     string
		owner    string
		wantPath string
	}{
		{"user repo", "", "/user/repos"},
		{"org repo", "acme", "/orgs/acme/repos"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath string
			mux := http.NewServeMux()
			mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusCreated)
				repo := &gh.Repository{
					Name:          gh.String("hello"),
					DefaultBranch: gh.String("main"),
					Owner:         &gh.User{Login: gh.String("octo")},
				}
				require.NoError(t, json.NewEncoder(w).Encode(repo))
			})

			client := newTestClient(t, mux)
			created, err := client.CreateRepository(context.Background(), tt.owner, CreateRepositoryParams{
				Name:     "hello",
				AutoInit: true,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantPath, gotPath)
			assert.Equal(t, "main", created.DefaultBranch)
		})
	}
}

func TestGitPrimitives(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo/hello/git/ref/heads/main", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		ref := &gh.Reference{
			Ref:    gh.String("refs/heads/main"),
			Object: &gh.GitObject{SHA: gh.String("headsha")},
		}
		require.NoError(t, json.NewEncoder(w).Encode(ref))
	})
	mux.HandleFunc("/repos/octo/hello/git/blobs", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		require.NoError(t, json.NewEncoder(w).Encode(&gh.Blob{SHA: gh.String("blobsha")}))
	})
	mux.HandleFunc("/repos/octo/hello/git/trees/headsha", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(&gh.Tree{SHA: gh.String("basetreesha")}))
	})
	mux.HandleFunc("/repos/octo/hello/git/trees", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			BaseTree string          `json:"base_tree"`
			Tree     []*gh.TreeEntry `json:"tree"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "basetreesha", req.BaseTree)
		require.Len(t, req.Tree, 1)
		assert.Equal(t, "100644", req.Tree[0].GetMode())

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		require.NoError(t, json.NewEncoder(w).Encode(&gh.Tree{SHA: gh.String("newtreesha")}))
	})
	mux.HandleFunc("/repos/octo/hello/git/commits", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		require.NoError(t, json.NewEncoder(w).Encode(&gh.Commit{SHA: gh.String("commitsha")}))
	})
	mux.HandleFunc("/repos/octo/hello/git/refs/heads/main", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		w.Header().Set("Content-Type", "application/json")
		ref := &gh.Reference{
			Ref:    gh.String("refs/heads/main"),
			Object: &gh.GitObject{SHA: gh.String("commitsha")},
		}
		require.NoError(t, json.NewEncoder(w).Encode(ref))
	})

	client := newTestClient(t, mux)
	ctx := context.Background()

	ref, err := client.GetRef(ctx, "octo", "hello", "main")
	require.NoError(t, err)
	assert.Equal(t, "headsha", ref.SHA)

	blobSHA, err := client.CreateBlob(ctx, "octo", "hello", "file content")
	require.NoError(t, err)
	assert.Equal(t, "blobsha", blobSHA)

	baseTree, err := client.GetTree(ctx, "octo", "hello", ref.SHA)
	require.NoError(t, err)
	assert.Equal(t, "basetreesha", baseTree)

	treeSHA, err := client.CreateTree(ctx, "octo", "hello", baseTree, []TreeEntry{{Path: "README.md", SHA: blobSHA}})
	require.NoError(t, err)
	assert.Equal(t, "newtreesha", treeSHA)

	commitSHA, err := client.CreateCommit(ctx, "octo", "hello", "Add initial files", treeSHA, ref.SHA)
	require.NoError(t, err)
	assert.Equal(t, "commitsha", commitSHA)

	require.NoError(t, client.UpdateRef(ctx, "octo", "hello", "main", commitSHA))
}
