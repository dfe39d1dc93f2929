package models

import "time"

// Reply is a comment on a tweet. Replies are immutable once created.
type Reply struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index;not null"`
	TweetID   uint   `gorm:"index;not null"`
	Comment   string `gorm:"type:text;not null"`
	CreatedAt time.Time
}
