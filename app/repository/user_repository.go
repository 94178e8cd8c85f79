package repository

import (
	"github.com/conduitapp/conduit/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// userRepository implements the UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user in the database
func (r *userRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// GetByID retrieves a user by their ID
func (r *userRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user by their email address
func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsername retrieves a user by their username
func (r *userRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	err := r.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update updates an existing user in the database
func (r *userRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// Delete removes a user; articles and comments cascade via FK.
func (r *userRepository) Delete(id uint) error {
	return r.db.Delete(&models.User{}, id).Error
}

// Follow inserts a follow edge. The composite primary key plus
// ON CONFLICT DO NOTHING makes a repeated follow a no-op instead of an
// error, closing the check-then-act race at the storage layer.
func (r *userRepository) Follow(followerID, followedID uint) error {
	edge := models.Follow{FollowerID: followerID, FollowedID: followedID}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&edge).Error
}

// Unfollow removes a follow edge; removing a missing edge is a no-op.
func (r *userRepository) Unfollow(followerID, followedID uint) error {
	return r.db.
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&models.Follow{}).Error
}

// IsFollowing reports whether follower follows followed
func (r *userRepository) IsFollowing(followerID, followedID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error
	return count > 0, err
}

// FollowingSet returns which of the given users the follower follows.
// A zero follower ID (anonymous viewer) yields an empty set.
func (r *userRepository) FollowingSet(followerID uint, followedIDs []uint) (map[uint]bool, error) {
	set := make(map[uint]bool, len(followedIDs))
	if followerID == 0 || len(followedIDs) == 0 {
		return set, nil
	}

	var edges []models.Follow
	err := r.db.
		Where("follower_id = ? AND followed_id IN ?", followerID, followedIDs).
		Find(&edges).Error
	if err != nil {
		return nil, err
	}
	for _, edge := range edges {
		set[edge.FollowedID] = true
	}
	return set, nil
}
