package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"extend-xmlrpc/models"
)

func TestPermalink(t *testing.T) {
	pl := NewPermalinker("https://news.example.com/", "/%year%/%monthnum%/%day%/%postname%/")

	published := &models.Post{ID: 7, Type: "post", Status: models.StatusPublish, Name: "big-game", Date: "2024-03-09 18:05:00"}
	assert.Equal(t, "https://news.example.com/2024/03/09/big-game/", pl.Permalink(published))

	private := *published
	private.Status = models.StatusPrivate
	assert.Equal(t, "https://news.example.com/2024/03/09/big-game/", pl.Permalink(&private))

	draft := *published
	draft.Status = models.StatusDraft
	assert.Equal(t, "https://news.example.com/?p=7", pl.Permalink(&draft))

	future := *published
	future.Status = models.StatusFuture
	assert.Equal(t, "https://news.example.com/?p=7", pl.Permalink(&future))

	page := &models.Post{ID: 8, Type: "page", Status: models.StatusPublish, Name: "about"}
	assert.Equal(t, "https://news.example.com/about/", pl.Permalink(page))
	page.Status = models.StatusPending
	assert.Equal(t, "https://news.example.com/?page_id=8", pl.Permalink(page))

	custom := &models.Post{ID: 9, Type: "obituary", Status: models.StatusPublish, Name: "jane-doe"}
	assert.Equal(t, "https://news.example.com/obituary/jane-doe/", pl.Permalink(custom))
	custom.Status = models.StatusDraft
	assert.Equal(t, "https://news.example.com/?post_type=obituary&p=9", pl.Permalink(custom))
}

func TestPermalinkTokens(t *testing.T) {
	pl := NewPermalinker("https://example.com", "%post_id%-%hour%%minute%%second%")
	post := &models.Post{ID: 42, Type: "post", Status: models.StatusPublish, Name: "x", Date: "2024-03-09 08:07:06"}
	assert.Equal(t, "https://example.com/42-080706", pl.Permalink(post))
}

func TestPermalinkPlainStructure(t *testing.T) {
	pl := NewPermalinker("https://example.com", "")
	post := &models.Post{ID: 42, Type: "post", Status: models.StatusPublish, Name: "x"}
	assert.Equal(t, "https://example.com/?p=42", pl.Permalink(post))
	assert.Equal(t, "", pl.Permalink(nil))
}
