package models

import "time"

// ArticleTag joins articles and tags. Position preserves the order of
// the deduplicated input sequence for display; set membership itself is
// guarded by the composite primary key.
type ArticleTag struct {
	ArticleID uint      `gorm:"primaryKey;autoIncrement:false" json:"article_id"`
	TagID     uint      `gorm:"primaryKey;autoIncrement:false" json:"tag_id"`
	Position  int       `gorm:"not null;default:0" json:"position"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
