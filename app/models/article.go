package models

import (
	"time"
)

type Article struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Slug        string    `gorm:"uniqueIndex;type:varchar(255) CHARACTER SET utf8 COLLATE utf8_bin" json:"slug" validate:"required,max=255"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title" validate:"required,min=1,max=255"`
	Description string    `gorm:"type:varchar(255)" json:"description" validate:"max=255"`
	Body        string    `gorm:"type:text" json:"body"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	Author      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	Tags        []Tag     `gorm:"many2many:article_tags;" json:"tags,omitempty"`
	Comments    []Comment `gorm:"foreignKey:ArticleID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
