package repo

import (
	"context"
	"fmt"

	"github.com/forgebridge/forgebridge/pkg/envelope"
	"github.com/forgebridge/forgebridge/pkg/github"
	"github.com/forgebridge/forgebridge/pkg/tools"
)

// Delete deletes a repository behind an explicit confirmation gate.
//
// Deletion is the only operation here that is unrecoverable through the
// forge's API, so it is the only one gated: without confirmation it is a
// no-op with an informational envelope and zero remote calls. With
// confirmation, the repository's existence is probed first; a 404 there is
// an informational outcome, while an authorization failure is classified
// like any other endpoint's.
func Delete(ctx context.Context, c Client, owner, repo string, confirmed bool) envelope.Result {
	if !confirmed {
		return envelope.Textf("Deletion of %s/%s not confirmed. Set confirmation to true to permanently delete it. No action was taken.",
			owner, repo)
	}

	if _, err := c.GetRepository(ctx, owner, repo); err != nil {
		if github.IsNotFound(err) {
			return envelope.Textf("Repository %s/%s does not exist, nothing to delete", owner, repo)
		}
		return tools.Failure(fmt.Sprintf("failed to check repository %s/%s", owner, repo), err)
	}

	if err := c.DeleteRepository(ctx, owner, repo); err != nil {
		return tools.Failure(fmt.Sprintf("failed to delete repository %s/%s", owner, repo), err)
	}

	return envelope.Textf("Repository %s/%s permanently deleted", owner, repo)
}
