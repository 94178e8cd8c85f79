package repository

import (
	"github.com/conduitapp/conduit/app/models"
	"gorm.io/gorm"
)

// ArticleFilter narrows article listings. All fields are optional and
// compose with AND semantics. Author, FavoritedBy and Tag filter by
// username/tag name; FollowedBy restricts to authors the given user
// follows (the feed).
type ArticleFilter struct {
	Author      string
	FavoritedBy string
	Tag         string
	FollowedBy  uint
	Limit       int
	Offset      int
}

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	Update(user *models.User) error
	Delete(id uint) error
	Follow(followerID, followedID uint) error
	Unfollow(followerID, followedID uint) error
	IsFollowing(followerID, followedID uint) (bool, error)
	FollowingSet(followerID uint, followedIDs []uint) (map[uint]bool, error)
}

// ArticleRepository defines the interface for article-related database operations
type ArticleRepository interface {
	Create(article *models.Article, tagNames []string) error
	GetBySlug(slug string) (*models.Article, error)
	GetBySlugWithRelations(slug string) (*models.Article, error)
	Update(article *models.Article) error
	UpdateWithTags(article *models.Article, tagNames []string) error
	ReplaceTags(articleID uint, tagNames []string) error
	Delete(id uint) error
	List(filter ArticleFilter) ([]models.Article, int64, error)
	Favorite(articleID, userID uint) error
	Unfavorite(articleID, userID uint) error
	IsFavorited(articleID, userID uint) (bool, error)
	FavoritedSet(userID uint, articleIDs []uint) (map[uint]bool, error)
	FavoritesCounts(articleIDs []uint) (map[uint]int64, error)
	TagNames(articleIDs []uint) (map[uint][]string, error)
	TagArticleCounts(tagIDs []uint) (map[uint]int64, error)
}

// CommentRepository defines the interface for comment-related database operations
type CommentRepository interface {
	Create(comment *models.Comment) error
	GetByID(id uint) (*models.Comment, error)
	ListByArticle(articleID uint) ([]models.Comment, error)
	Delete(id uint) error
}

// TagRepository defines the interface for tag listing
type TagRepository interface {
	ListNames() ([]string, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	User    UserRepository
	Article ArticleRepository
	Comment CommentRepository
	Tag     TagRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:    NewUserRepository(db),
		Article: NewArticleRepository(db),
		Comment: NewCommentRepository(db),
		Tag:     NewTagRepository(db),
	}
}
