package tools

import (
	"github.com/forgebridge/forgebridge/pkg/envelope"
	"github.com/forgebridge/forgebridge/pkg/github"
)

// Diagnose maps a failed remote call to a human-readable diagnosis. The
// hints are targeted: authorization failures point at the token, not-found
// at the entity, everything else surfaces the raw message.
func Diagnose(err error) string {
	switch {
	case github.IsUnauthorized(err):
		return "authentication failed: check your token"
	case github.IsRateLimitError(err):
		return "rate limit exceeded: wait before retrying"
	case github.IsForbidden(err):
		return "permission denied: check token permissions"
	case github.IsNotFound(err):
		return "resource does not exist"
	default:
		return err.Error()
	}
}

// Failure builds an error envelope for a failed remote call, prefixed with
// the action that was being attempted.
func Failure(action string, err error) envelope.Result {
	return envelope.Errorf("%s: %s", action, Diagnose(err))
}
