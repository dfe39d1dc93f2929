package models

import "time"

// Followship is a directed edge: follower follows following. Self-edges are
// rejected above the storage layer; duplicate edges are blocked by the
// composite unique index.
type Followship struct {
	ID          uint `gorm:"primaryKey"`
	FollowerID  uint `gorm:"not null;uniqueIndex:idx_follower_following"`
	FollowingID uint `gorm:"not null;uniqueIndex:idx_follower_following"`
	CreatedAt   time.Time
}
