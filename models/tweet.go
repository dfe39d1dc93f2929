package models

import "time"

// MaxTweetLength is the hard ceiling on tweet descriptions, counted in runes.
const MaxTweetLength = 140

// Tweet is a post authored by a user.
type Tweet struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      uint   `gorm:"index;not null"`
	Description string `gorm:"size:140;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	User    User    `gorm:"foreignKey:UserID"`
	Likes   []Like  `gorm:"foreignKey:TweetID"`
	Replies []Reply `gorm:"foreignKey:TweetID"`
}
