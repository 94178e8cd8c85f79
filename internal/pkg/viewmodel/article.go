package viewmodel

import (
	"time"

	"github.com/conduitapp/conduit/app/models"
)

// Article is the response view of an article, personalized for the
// viewer via the favorited flag and the author's following flag.
type Article struct {
	Slug           string    `json:"slug"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Body           string    `json:"body"`
	TagList        []string  `json:"tagList"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	Favorited      bool      `json:"favorited"`
	FavoritesCount int64     `json:"favoritesCount"`
	Author         Profile   `json:"author"`
}

// Comment is the response view of a comment.
type Comment struct {
	ID        uint      `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Body      string    `json:"body"`
	Author    Profile   `json:"author"`
}

// NewArticle composes an article view from already-loaded state. The
// tag list keeps the order the caller resolved (join-row position).
func NewArticle(a *models.Article, tagList []string, favorited bool, favoritesCount int64, author Profile) Article {
	if tagList == nil {
		tagList = []string{}
	}
	return Article{
		Slug:           a.Slug,
		Title:          a.Title,
		Description:    a.Description,
		Body:           a.Body,
		TagList:        tagList,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
		Favorited:      favorited,
		FavoritesCount: favoritesCount,
		Author:         author,
	}
}

func NewComment(c *models.Comment, author Profile) Comment {
	return Comment{
		ID:        c.ID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Body:      c.Body,
		Author:    author,
	}
}
