package policy

import (
	"time"

	"github.com/conduitapp/conduit/app/models"
	"github.com/conduitapp/conduit/internal/pkg/apperrors"
	"github.com/conduitapp/conduit/internal/pkg/env"
)

const (
	retentionMinAge    = 30 * 24 * time.Hour
	retentionMinTags   = 3
	longBodyChars      = 1000
	popularTagArticles = 5
)

// RetentionPolicy optionally blocks owner-initiated article deletes.
// It implements the same delete contract as CanDeleteArticle but layers
// two additional retention rules on top:
//
//   - an article older than 30 days that carries a comment by someone
//     other than the owner and at least 3 tags is retained
//   - an article with a body over 1000 characters is retained while any
//     of its tags is attached to more than 5 articles
//
// Disabled, it degrades to the plain ownership rule.
type RetentionPolicy struct {
	Enabled bool
}

// NewRetentionPolicyFromEnv reads the ARTICLE_RETENTION_POLICY toggle.
func NewRetentionPolicyFromEnv() RetentionPolicy {
	return RetentionPolicy{Enabled: env.GetEnv("ARTICLE_RETENTION_POLICY", "0") == "1"}
}

// AuthorizeDelete decides whether the actor may delete the article.
// The article must be loaded with its Comments and Tags;
// tagArticleCounts maps each attached tag ID to the number of articles
// carrying that tag. Returns apperrors.ErrNotAuthor on ownership
// failure and apperrors.ErrRetentionPolicy when a retention rule blocks
// an otherwise-authorized delete.
func (p RetentionPolicy) AuthorizeDelete(actorID uint, article *models.Article, tagArticleCounts map[uint]int64, now time.Time) error {
	if err := CanDeleteArticle(actorID, article); err != nil {
		return err
	}
	if !p.Enabled {
		return nil
	}

	if now.Sub(article.CreatedAt) > retentionMinAge &&
		hasThirdPartyComment(article, actorID) &&
		len(article.Tags) >= retentionMinTags {
		return apperrors.ErrRetentionPolicy
	}

	if len(article.Body) > longBodyChars {
		for _, tag := range article.Tags {
			if tagArticleCounts[tag.ID] > popularTagArticles {
				return apperrors.ErrRetentionPolicy
			}
		}
	}

	return nil
}

func hasThirdPartyComment(article *models.Article, actorID uint) bool {
	for _, comment := range article.Comments {
		if comment.UserID != actorID {
			return true
		}
	}
	return false
}
