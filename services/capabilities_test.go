package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"extend-xmlrpc/models"
)

func TestCanEditPost(t *testing.T) {
	own := func(status, typ string) *models.Post {
		return &models.Post{ID: 1, AuthorID: 5, Status: status, Type: typ}
	}
	others := &models.Post{ID: 2, AuthorID: 6, Status: models.StatusDraft, Type: "post"}

	admin := &models.User{ID: 1, Role: models.RoleAdministrator}
	editor := &models.User{ID: 2, Role: models.RoleEditor}
	author := &models.User{ID: 5, Role: models.RoleAuthor}
	contributor := &models.User{ID: 5, Role: models.RoleContributor}
	subscriber := &models.User{ID: 5, Role: models.RoleSubscriber}

	assert.True(t, CanEditPost(admin, others))
	assert.True(t, CanEditPost(editor, own(models.StatusPublish, "page")))

	assert.True(t, CanEditPost(author, own(models.StatusPublish, "post")))
	assert.False(t, CanEditPost(author, own(models.StatusDraft, "page")))
	assert.False(t, CanEditPost(author, others))

	assert.True(t, CanEditPost(contributor, own(models.StatusDraft, "post")))
	assert.True(t, CanEditPost(contributor, own(models.StatusPending, "post")))
	assert.False(t, CanEditPost(contributor, own(models.StatusPublish, "post")))
	assert.False(t, CanEditPost(contributor, own(models.StatusFuture, "post")))
	assert.False(t, CanEditPost(contributor, others))

	assert.False(t, CanEditPost(subscriber, own(models.StatusDraft, "post")))
	assert.False(t, CanEditPost(nil, others))
	assert.False(t, CanEditPost(admin, nil))
}
