// Package policy holds the pure authorization rules for the article,
// comment and follow domain. All functions decide over already-loaded
// entity state and never touch the datastore.
package policy

import (
	"github.com/conduitapp/conduit/app/models"
	"github.com/conduitapp/conduit/internal/pkg/apperrors"
)

// CanUpdateArticle reports whether the actor may mutate the article.
// Only the author may.
func CanUpdateArticle(actorID uint, article *models.Article) bool {
	return article.UserID == actorID
}

// CanDeleteArticle applies the baseline ownership rule for deletes.
// Retention heuristics are layered separately, see RetentionPolicy.
func CanDeleteArticle(actorID uint, article *models.Article) error {
	if article.UserID != actorID {
		return apperrors.ErrNotAuthor
	}
	return nil
}

// CanDeleteComment reports whether the actor may delete the comment.
// Only the comment author may; owning the article grants no override.
func CanDeleteComment(actorID uint, comment *models.Comment) bool {
	return comment.UserID == actorID
}

// CanFollow forbids self-follows. The rule lives here and not in the
// schema: the join table happily stores a self-loop if asked.
func CanFollow(actorID, targetID uint) bool {
	return actorID != targetID
}
