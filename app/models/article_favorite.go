package models

import "time"

// ArticleFavorite marks an article as favorited by a user. The composite
// primary key makes favorite/unfavorite idempotent at the storage layer.
type ArticleFavorite struct {
	ArticleID uint      `gorm:"primaryKey;autoIncrement:false" json:"article_id"`
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
