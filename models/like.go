package models

import "time"

// Like records that a user liked a tweet. The composite unique index is the
// storage-level backstop for the handler's existence pre-check, so concurrent
// duplicate likes surface as a constraint violation instead of a second row.
type Like struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_like_user_tweet"`
	TweetID   uint `gorm:"not null;uniqueIndex:idx_like_user_tweet"`
	CreatedAt time.Time

	Tweet Tweet `gorm:"foreignKey:TweetID"`
}
