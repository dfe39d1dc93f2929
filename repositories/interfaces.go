package repositories

import (
	"context"

	"twitterapi/dto"
	"twitterapi/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByAccount(ctx context.Context, account string) (*models.User, error)
	ExistsByAccount(ctx context.Context, account string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *models.User) error

	// Profile computes the aggregated profile view: read-time counts and the
	// viewer's isFollowing flag pushed down into the query.
	Profile(ctx context.Context, viewerID, userID uint) (*dto.Profile, error)

	// TopUsers ranks non-admin users by (isFollowing, followersCount), both
	// descending, capped at limit.
	TopUsers(ctx context.Context, viewerID uint, limit int) ([]dto.TopUser, error)
}

type TweetRepository interface {
	Create(ctx context.Context, tweet *models.Tweet) error
	FindByID(ctx context.Context, id uint) (*models.Tweet, error)
	FindByIDWithReplies(ctx context.Context, id uint) (*models.Tweet, error)
	UpdateDescription(ctx context.Context, id uint, description string) (*models.Tweet, error)
	ListAll(ctx context.Context) ([]models.Tweet, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Tweet, error)
	RepliesByUser(ctx context.Context, userID uint) ([]models.Reply, error)
	CreateReply(ctx context.Context, reply *models.Reply) error

	Like(ctx context.Context, userID, tweetID uint) error
	Unlike(ctx context.Context, userID, tweetID uint) error
	HasLiked(ctx context.Context, userID, tweetID uint) (bool, error)
	LikedTweetIDs(ctx context.Context, userID uint) ([]uint, error)
	LikesByUser(ctx context.Context, userID uint) ([]models.Like, error)
	CountLikes(ctx context.Context, tweetID uint) (int64, error)
}

type FollowshipRepository interface {
	Create(ctx context.Context, followerID, followingID uint) error
	Delete(ctx context.Context, followerID, followingID uint) error
	Exists(ctx context.Context, followerID, followingID uint) (bool, error)
	FollowingIDs(ctx context.Context, userID uint) ([]uint, error)
	CountFollowers(ctx context.Context, userID uint) (int64, error)

	// Followers and Followings list the users connected to userID, ordered
	// by edge creation time descending. The viewer's isFollowing flag is
	// stamped on afterwards by the handler (set-membership strategy).
	Followers(ctx context.Context, userID uint) ([]dto.FollowListEntry, error)
	Followings(ctx context.Context, userID uint) ([]dto.FollowListEntry, error)
}
