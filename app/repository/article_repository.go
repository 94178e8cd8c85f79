package repository

import (
	"github.com/conduitapp/conduit/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// articleRepository implements the ArticleRepository interface
type articleRepository struct {
	db *gorm.DB
}

// NewArticleRepository creates a new article repository instance
func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

// Create persists the article and its tag set in one transaction.
func (r *articleRepository) Create(article *models.Article, tagNames []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(article).Error; err != nil {
			return err
		}
		return replaceTags(tx, article.ID, tagNames)
	})
}

// GetBySlug retrieves an article with its author preloaded
func (r *articleRepository) GetBySlug(slug string) (*models.Article, error) {
	var article models.Article
	err := r.db.Preload("Author").Where("slug = ?", slug).First(&article).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// GetBySlugWithRelations additionally preloads comments and tags, which
// the delete policy needs to decide on retention.
func (r *articleRepository) GetBySlugWithRelations(slug string) (*models.Article, error) {
	var article models.Article
	err := r.db.
		Preload("Author").
		Preload("Comments").
		Preload("Tags").
		Where("slug = ?", slug).
		First(&article).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// Update saves the article's scalar fields
func (r *articleRepository) Update(article *models.Article) error {
	return r.db.Save(article).Error
}

// UpdateWithTags saves the article's scalar fields and rewrites its tag
// set in one transaction: a failing tag rewrite rolls back the scalar
// change too, so a failed update is never partially visible.
func (r *articleRepository) UpdateWithTags(article *models.Article, tagNames []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(article).Error; err != nil {
			return err
		}
		return replaceTags(tx, article.ID, tagNames)
	})
}

// ReplaceTags rewrites the article's tag set in one transaction.
func (r *articleRepository) ReplaceTags(articleID uint, tagNames []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return replaceTags(tx, articleID, tagNames)
	})
}

// replaceTags deduplicates the input (first occurrence wins),
// finds-or-creates each tag by exact name and rewrites the join rows.
// Orphaned tags are left in place, they are never garbage-collected.
func replaceTags(tx *gorm.DB, articleID uint, tagNames []string) error {
	names := dedupeNames(tagNames)

	if err := tx.Where("article_id = ?", articleID).Delete(&models.ArticleTag{}).Error; err != nil {
		return err
	}

	for position, name := range names {
		tag := models.Tag{Name: name}
		if err := tag.FindOrCreate(tx); err != nil {
			return err
		}
		row := models.ArticleTag{ArticleID: articleID, TagID: tag.ID, Position: position}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

// dedupeNames drops duplicate tag names, preserving first occurrence order.
func dedupeNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// Delete removes an article; comments, tag rows and favorites cascade.
func (r *articleRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("article_id = ?", id).Delete(&models.ArticleTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("article_id = ?", id).Delete(&models.ArticleFavorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("article_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Article{}, id).Error
	})
}

// List returns the filtered, paginated articles plus the total count of
// the filtered set before pagination.
func (r *articleRepository) List(filter ArticleFilter) ([]models.Article, int64, error) {
	base := r.applyFilter(r.db.Model(&models.Article{}), filter)

	var total int64
	if err := base.Session(&gorm.Session{}).Distinct("articles.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}

	var articles []models.Article
	err := base.Session(&gorm.Session{}).
		Preload("Author").
		Select("articles.*").
		Group("articles.id").
		Order("articles.created_at DESC, articles.id DESC").
		Limit(limit).
		Offset(filter.Offset).
		Find(&articles).Error
	if err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}

func (r *articleRepository) applyFilter(q *gorm.DB, filter ArticleFilter) *gorm.DB {
	if filter.Author != "" {
		q = q.Joins("JOIN users AS authors ON authors.id = articles.user_id").
			Where("authors.username = ?", filter.Author)
	}
	if filter.FavoritedBy != "" {
		q = q.Joins("JOIN article_favorites ON article_favorites.article_id = articles.id").
			Joins("JOIN users AS favoriters ON favoriters.id = article_favorites.user_id").
			Where("favoriters.username = ?", filter.FavoritedBy)
	}
	if filter.Tag != "" {
		q = q.Joins("JOIN article_tags ON article_tags.article_id = articles.id").
			Joins("JOIN tags ON tags.id = article_tags.tag_id").
			Where("tags.name = ?", filter.Tag)
	}
	if filter.FollowedBy != 0 {
		q = q.Where("articles.user_id IN (SELECT followed_id FROM follows WHERE follower_id = ?)", filter.FollowedBy)
	}
	return q
}

// Favorite inserts a favorite edge; repeated favorites are no-ops
// thanks to the composite primary key plus ON CONFLICT DO NOTHING.
func (r *articleRepository) Favorite(articleID, userID uint) error {
	fav := models.ArticleFavorite{ArticleID: articleID, UserID: userID}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&fav).Error
}

// Unfavorite removes a favorite edge; removing a missing one is a no-op.
func (r *articleRepository) Unfavorite(articleID, userID uint) error {
	return r.db.
		Where("article_id = ? AND user_id = ?", articleID, userID).
		Delete(&models.ArticleFavorite{}).Error
}

// IsFavorited reports whether the user favorited the article
func (r *articleRepository) IsFavorited(articleID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.ArticleFavorite{}).
		Where("article_id = ? AND user_id = ?", articleID, userID).
		Count(&count).Error
	return count > 0, err
}

// FavoritedSet returns which of the given articles the user favorited.
// A zero user ID (anonymous viewer) yields an empty set.
func (r *articleRepository) FavoritedSet(userID uint, articleIDs []uint) (map[uint]bool, error) {
	set := make(map[uint]bool, len(articleIDs))
	if userID == 0 || len(articleIDs) == 0 {
		return set, nil
	}

	var favorites []models.ArticleFavorite
	err := r.db.
		Where("user_id = ? AND article_id IN ?", userID, articleIDs).
		Find(&favorites).Error
	if err != nil {
		return nil, err
	}
	for _, fav := range favorites {
		set[fav.ArticleID] = true
	}
	return set, nil
}

// FavoritesCounts returns the favorite count per article
func (r *articleRepository) FavoritesCounts(articleIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(articleIDs))
	if len(articleIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		ArticleID uint
		Count     int64
	}
	err := r.db.Model(&models.ArticleFavorite{}).
		Select("article_id, COUNT(*) AS count").
		Where("article_id IN ?", articleIDs).
		Group("article_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.ArticleID] = row.Count
	}
	return counts, nil
}

// TagNames returns each article's tag names ordered by join-row
// position, i.e. the order the deduplicated input sequence had.
func (r *articleRepository) TagNames(articleIDs []uint) (map[uint][]string, error) {
	names := make(map[uint][]string, len(articleIDs))
	if len(articleIDs) == 0 {
		return names, nil
	}

	var rows []struct {
		ArticleID uint
		Name      string
	}
	err := r.db.Model(&models.ArticleTag{}).
		Select("article_tags.article_id, tags.name").
		Joins("JOIN tags ON tags.id = article_tags.tag_id").
		Where("article_tags.article_id IN ?", articleIDs).
		Order("article_tags.article_id, article_tags.position").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		names[row.ArticleID] = append(names[row.ArticleID], row.Name)
	}
	return names, nil
}

// TagArticleCounts returns how many articles carry each of the given tags
func (r *articleRepository) TagArticleCounts(tagIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(tagIDs))
	if len(tagIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		TagID uint
		Count int64
	}
	err := r.db.Model(&models.ArticleTag{}).
		Select("tag_id, COUNT(*) AS count").
		Where("tag_id IN ?", tagIDs).
		Group("tag_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.TagID] = row.Count
	}
	return counts, nil
}
