package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/forgebridge/forgebridge/pkg/github"
)

func TestDeleteWithoutConfirmationMakesNoCalls(t *testing.T) {
	c := &stubClient{}
	res := Delete(context.Background(), c, "octo", "hello", false)

	assert.Empty(t, c.callLog(), "unconfirmed deletion must not touch the forge")
	assert.False(t, res.IsError, "the guard is an informational outcome, not a failure")
	assert.Contains(t, res.Content[0].Text, "not confirmed")
}

func TestDeleteMissingRepositoryIsInformational(t *testing.T) {
	c := &stubClient{getErr: &github.APIError{StatusCode: 404}}
	res := Delete(context.Background(), c, "octo", "gone", true)

	assert.Equal(t, []string{"probe"}, c.callLog(), "a 404 probe short-circuits the delete call")
	assert.False(t, res.IsError)
	assert.Contains(t, res.Content[0].Text, "does not exist")
}

func TestDeleteProbeAuthFailureIsClassified(t *testing.T) {
	c := &stubClient{getErr: &github.APIError{StatusCode: 401}}
	res := Delete(context.Background(), c, "octo", "hello", true)

	assert.Equal(t, []string{"probe"}, c.callLog())
	assert.True(t, res.IsError)
	assert.Contains(t, res.Content[0].Text, "check your token")
}

func TestDeleteConfirmedProbesThenDeletes(t *testing.T) {
	c := &stubClient{}
	res := Delete(context.Background(), c, "octo", "hello", true)

	assert.Equal(t, []string{"probe", "delete"}, c.callLog())
	assert.False(t, res.IsError)
	assert.Contains(t, res.Content[0].Text, "permanently deleted")
}

func TestDeleteCallFailureSurfaces(t *testing.T) {
	c := &stubClient{deleteErr: &github.APIError{StatusCode: 403}}
	res := Delete(context.Background(), c, "octo", "hello", true)

	assert.True(t, res.IsError)
	assert.Contains(t, res.Content[0].Text, "check token permissions")
}
