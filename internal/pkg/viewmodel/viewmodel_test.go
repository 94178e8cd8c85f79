package viewmodel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/conduitapp/conduit/app/models"
)

func TestNewProfileCarriesFollowState(t *testing.T) {
	alice := &models.User{ID: 1, Username: "alice", Bio: "bio", Image: "img"}

	viewed := NewProfile(alice, true)
	assert.Equal(t, "alice", viewed.Username)
	assert.True(t, viewed.Following)

	anonymous := NewProfile(alice, false)
	assert.False(t, anonymous.Following)
}

func TestNewUserIncludesToken(t *testing.T) {
	u := &models.User{ID: 1, Username: "alice", Email: "alice@example.com"}

	view := NewUser(u, "jwt-token")
	assert.Equal(t, "alice@example.com", view.Email)
	assert.Equal(t, "jwt-token", view.Token)
}

func TestNewArticleDefaultsTagListToEmpty(t *testing.T) {
	now := time.Now()
	a := &models.Article{
		Slug:      "hello-abc12345",
		Title:     "Hello",
		CreatedAt: now,
		UpdatedAt: now,
	}

	view := NewArticle(a, nil, false, 0, Profile{Username: "alice"})
	assert.NotNil(t, view.TagList)
	assert.Empty(t, view.TagList)
	assert.Equal(t, "hello-abc12345", view.Slug)
}

func TestNewArticlePreservesTagOrder(t *testing.T) {
	a := &models.Article{Slug: "s", Title: "t"}

	view := NewArticle(a, []string{"go", "web"}, true, 3, Profile{})
	assert.Equal(t, []string{"go", "web"}, view.TagList)
	assert.True(t, view.Favorited)
	assert.EqualValues(t, 3, view.FavoritesCount)
}

func TestNewComment(t *testing.T) {
	c := &models.Comment{ID: 9, Body: "nice"}

	view := NewComment(c, Profile{Username: "bob", Following: true})
	assert.EqualValues(t, 9, view.ID)
	assert.Equal(t, "nice", view.Body)
	assert.True(t, view.Author.Following)
}
