package dto

import "time"

// Profile is the aggregated view of a single user: denormalized fields plus
// read-time counts and the viewer-relative isFollowing flag.
type Profile struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	Account        string `json:"account"`
	Introduction   string `json:"introduction"`
	Avatar         string `json:"avatar"`
	Cover          string `json:"cover"`
	FollowingCount int64  `json:"followingCount"`
	FollowerCount  int64  `json:"followerCount"`
	TweetCount     int64  `json:"tweetCount"`
	IsFollowing    bool   `json:"isFollowing"`
}

// TweetProjection is one timeline entry: the tweet, its author's display
// fields, counts and the viewer's isLiked flag.
type TweetProjection struct {
	TweetID     uint      `json:"tweetId"`
	UserID      uint      `json:"userId"`
	UserName    string    `json:"userName"`
	UserAccount string    `json:"userAccount"`
	UserAvatar  string    `json:"userAvatar"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	ReplyCount  int       `json:"replyCount"`
	LikeCount   int       `json:"likeCount"`
	IsLiked     bool      `json:"isLiked"`
}

// LikedTweet is one entry of a user's like list: the liked tweet with its
// author and counts, stamped with the viewer's own isLiked flag.
type LikedTweet struct {
	TweetID     uint      `json:"TweetId"`
	UserID      uint      `json:"userId"`
	UserName    string    `json:"userName"`
	UserAccount string    `json:"userAccount"`
	UserAvatar  string    `json:"userAvatar"`
	Description string    `json:"description"`
	LikeCount   int       `json:"likeCount"`
	ReplyCount  int       `json:"replyCount"`
	IsLiked     bool      `json:"isLiked"`
	LikedAt     time.Time `json:"likedAt"`
}

// FollowListEntry is one entry of a follower or following list. IsFollowing
// is the viewer's flag toward the listed user, so a UI can offer follow-back.
type FollowListEntry struct {
	UserID       uint   `json:"id"`
	Name         string `json:"name"`
	Account      string `json:"account"`
	Avatar       string `json:"avatar"`
	Introduction string `json:"introduction"`
	IsFollowing  bool   `json:"isFollowing"`
}

// TopUser is one leaderboard row.
type TopUser struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	Account        string `json:"account"`
	Avatar         string `json:"avatar"`
	FollowersCount int64  `json:"followersCount"`
	IsFollowing    bool   `json:"isFollowing"`
}

// UserSummary is the flat shape used for the current-user endpoint and the
// sign-in response.
type UserSummary struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Account      string `json:"account"`
	Email        string `json:"email"`
	Avatar       string `json:"avatar"`
	Cover        string `json:"cover"`
	Introduction string `json:"introduction"`
	Role         string `json:"role"`
}
