package models

import "time"

// Follow is a directed edge follower -> followed. The composite primary
// key is the authoritative duplicate guard; the no-self-follow rule is
// enforced by the policy layer, not by the schema.
type Follow struct {
	FollowerID uint      `gorm:"primaryKey;autoIncrement:false" json:"follower_id"`
	FollowedID uint      `gorm:"primaryKey;autoIncrement:false" json:"followed_id"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}
