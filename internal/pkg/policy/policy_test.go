package policy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/conduitapp/conduit/app/models"
	"github.com/conduitapp/conduit/internal/pkg/apperrors"
)

func TestCanUpdateArticle(t *testing.T) {
	article := &models.Article{ID: 1, UserID: 7}

	assert.True(t, CanUpdateArticle(7, article))
	assert.False(t, CanUpdateArticle(8, article))
}

func TestCanDeleteArticle(t *testing.T) {
	article := &models.Article{ID: 1, UserID: 7}

	assert.NoError(t, CanDeleteArticle(7, article))

	err := CanDeleteArticle(8, article)
	assert.ErrorIs(t, err, apperrors.ErrNotAuthor)
}

func TestCanDeleteComment(t *testing.T) {
	comment := &models.Comment{ID: 1, UserID: 3, ArticleID: 1}

	assert.True(t, CanDeleteComment(3, comment))
	// owning the article grants no override
	assert.False(t, CanDeleteComment(7, comment))
}

func TestCanFollow(t *testing.T) {
	assert.False(t, CanFollow(5, 5))
	assert.True(t, CanFollow(5, 6))
}

func TestRetentionPolicyDisabledFallsBackToOwnership(t *testing.T) {
	article := oldArticleWithThirdPartyComments()
	p := RetentionPolicy{Enabled: false}

	assert.NoError(t, p.AuthorizeDelete(7, article, nil, time.Now()))
	assert.ErrorIs(t, p.AuthorizeDelete(8, article, nil, time.Now()), apperrors.ErrNotAuthor)
}

func TestRetentionPolicyBlocksOldCommentedTaggedArticle(t *testing.T) {
	article := oldArticleWithThirdPartyComments()
	p := RetentionPolicy{Enabled: true}

	err := p.AuthorizeDelete(7, article, nil, time.Now())
	assert.ErrorIs(t, err, apperrors.ErrRetentionPolicy)
}

func TestRetentionPolicyAllowsOldArticleWithOwnCommentsOnly(t *testing.T) {
	article := oldArticleWithThirdPartyComments()
	article.Comments = []models.Comment{{UserID: 7}, {UserID: 7}}
	p := RetentionPolicy{Enabled: true}

	assert.NoError(t, p.AuthorizeDelete(7, article, nil, time.Now()))
}

func TestRetentionPolicyAllowsOldArticleWithFewTags(t *testing.T) {
	article := oldArticleWithThirdPartyComments()
	article.Tags = []models.Tag{{ID: 1, Name: "go"}, {ID: 2, Name: "web"}}
	p := RetentionPolicy{Enabled: true}

	assert.NoError(t, p.AuthorizeDelete(7, article, nil, time.Now()))
}

func TestRetentionPolicyBlocksLongBodyWithPopularTag(t *testing.T) {
	body := make([]byte, 1001)
	for i := range body {
		body[i] = 'a'
	}
	article := &models.Article{
		ID:        1,
		UserID:    7,
		Body:      string(body),
		Tags:      []models.Tag{{ID: 4, Name: "golang"}},
		CreatedAt: time.Now(),
	}
	p := RetentionPolicy{Enabled: true}

	counts := map[uint]int64{4: 6}
	assert.ErrorIs(t, p.AuthorizeDelete(7, article, counts, time.Now()), apperrors.ErrRetentionPolicy)

	counts[4] = 5
	assert.NoError(t, p.AuthorizeDelete(7, article, counts, time.Now()))
}

func TestRetentionPolicyAllowsShortBodyWithPopularTag(t *testing.T) {
	article := &models.Article{
		ID:        1,
		UserID:    7,
		Body:      "short",
		Tags:      []models.Tag{{ID: 4, Name: "golang"}},
		CreatedAt: time.Now(),
	}
	p := RetentionPolicy{Enabled: true}

	assert.NoError(t, p.AuthorizeDelete(7, article, map[uint]int64{4: 100}, time.Now()))
}

// oldArticleWithThirdPartyComments is 31 days old, carries three tags
// and has a comment by a non-owner, tripping the age retention rule.
func oldArticleWithThirdPartyComments() *models.Article {
	return &models.Article{
		ID:        1,
		UserID:    7,
		Body:      "short body",
		CreatedAt: time.Now().Add(-31 * 24 * time.Hour),
		Comments:  []models.Comment{{UserID: 9}},
		Tags: []models.Tag{
			{ID: 1, Name: "go"},
			{ID: 2, Name: "web"},
			{ID: 3, Name: "testing"},
		},
	}
}
