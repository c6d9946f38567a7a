package pr

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/forgebridge/forgebridge/pkg/github"
)

func TestRenderDetailPlaceholderBody(t *testing.T) {
	pr := openPR(3, "No body")
	text := renderDetail(pr, "")
	assert.Contains(t, text, noDescription)
	assert.NotContains(t, text, "Question about this pull request")
}

func TestRenderDetailMergeableTriState(t *testing.T) {
	yes, no := true, false
	tests := []struct {
		name string
		m    *bool
		want string
	}{
		{"unknown", nil, "Mergeable: unknown"},
		{"true", &yes, "Mergeable: yes"},
		{"false", &no, "Mergeable: no"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pr := openPR(1, "x")
			pr.Mergeable = tt.m
			assert.Contains(t, renderDetail(pr, ""), tt.want)
		})
	}
}

func TestRenderSummaryOmitsFenceForMissingPatch(t *testing.T) {
	pr := openPR(2, "Binary change")
	files := []*github.PullRequestFile{
		{Filename: "logo.png", Status: "added", Additions: 0, Deletions: 0},
	}
	text := renderSummary(pr, files)
	assert.Contains(t, text, "logo.png")
	assert.NotContains(t, text, "```diff")
}

func TestRenderReviewersSingular(t *testing.T) {
	assert.Contains(t, renderReviewersRequested(1, []string{"bob"}), "1 reviewer on")
}
