package repository

import (
	"github.com/conduitapp/conduit/app/models"
	"gorm.io/gorm"
)

// tagRepository implements the TagRepository interface
type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new tag repository instance
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

// ListNames returns all known tag names. Orphaned tags (no remaining
// articles) stay listed; they are never pruned.
func (r *tagRepository) ListNames() ([]string, error) {
	var names []string
	err := r.db.Model(&models.Tag{}).
		Order("name ASC").
		Pluck("name", &names).Error
	return names, err
}
