package repositories

import (
	"context"

	"gorm.io/gorm"

	"twitterapi/apperr"
	"twitterapi/models"
)

type tweetRepository struct {
	db *gorm.DB
}

func NewTweetRepository(db *gorm.DB) TweetRepository {
	return &tweetRepository{db: db}
}

func (r *tweetRepository) Create(ctx context.Context, tweet *models.Tweet) error {
	return r.db.WithContext(ctx).Create(tweet).Error
}

func (r *tweetRepository) FindByID(ctx context.Context, id uint) (*models.Tweet, error) {
	var tweet models.Tweet
	err := r.db.WithContext(ctx).First(&tweet, id).Error
	if err != nil {
		return nil, apperr.FromDB(err, "tweet not found", "")
	}
	return &tweet, nil
}

func (r *tweetRepository) FindByIDWithReplies(ctx context.Context, id uint) (*models.Tweet, error) {
	var tweet models.Tweet
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("replies.created_at DESC, replies.id ASC")
		}).
		Preload("Likes").
		First(&tweet, id).Error
	if err != nil {
		return nil, apperr.FromDB(err, "tweet not found", "")
	}
	return &tweet, nil
}

func (r *tweetRepository) UpdateDescription(ctx context.Context, id uint, description string) (*models.Tweet, error) {
	tweet, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	tweet.Description = description
	if err := r.db.WithContext(ctx).Save(tweet).Error; err != nil {
		return nil, err
	}
	return tweet, nil
}

// ListAll returns every tweet newest first, with author and like/reply sets
// preloaded for count derivation. The id tie-break keeps same-timestamp
// tweets in insertion order.
func (r *tweetRepository) ListAll(ctx context.Context) ([]models.Tweet, error) {
	var tweets []models.Tweet
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Likes").
		Preload("Replies").
		Order("tweets.created_at DESC, tweets.id ASC").
		Find(&tweets).Error
	return tweets, err
}

func (r *tweetRepository) ListByUser(ctx context.Context, userID uint) ([]models.Tweet, error) {
	var tweets []models.Tweet
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Likes").
		Preload("Replies").
		Order("tweets.created_at DESC, tweets.id ASC").
		Find(&tweets).Error
	return tweets, err
}

func (r *tweetRepository) RepliesByUser(ctx context.Context, userID uint) ([]models.Reply, error) {
	var replies []models.Reply
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("replies.created_at DESC, replies.id ASC").
		Find(&replies).Error
	return replies, err
}

func (r *tweetRepository) CreateReply(ctx context.Context, reply *models.Reply) error {
	return r.db.WithContext(ctx).Create(reply).Error
}

// Like inserts the like row. The pre-check lives in the handler for the
// friendly message; the unique index catches the race and comes back as the
// same conflict.
func (r *tweetRepository) Like(ctx context.Context, userID, tweetID uint) error {
	like := models.Like{UserID: userID, TweetID: tweetID}
	err := r.db.WithContext(ctx).Create(&like).Error
	return apperr.FromDB(err, "tweet not found", "you had already liked this tweet")
}

func (r *tweetRepository) Unlike(ctx context.Context, userID, tweetID uint) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND tweet_id = ?", userID, tweetID).
		Delete(&models.Like{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("like already been removed")
	}
	return nil
}

func (r *tweetRepository) HasLiked(ctx context.Context, userID, tweetID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ? AND tweet_id = ?", userID, tweetID).
		Count(&count).Error
	return count > 0, err
}

func (r *tweetRepository) LikedTweetIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ?", userID).
		Pluck("tweet_id", &ids).Error
	return ids, err
}

// LikesByUser returns the user's likes newest first, each with the liked
// tweet, its author and its like/reply sets preloaded.
func (r *tweetRepository) LikesByUser(ctx context.Context, userID uint) ([]models.Like, error) {
	var likes []models.Like
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Tweet").
		Preload("Tweet.User").
		Preload("Tweet.Likes").
		Preload("Tweet.Replies").
		Order("likes.created_at DESC, likes.id ASC").
		Find(&likes).Error
	return likes, err
}

func (r *tweetRepository) CountLikes(ctx context.Context, tweetID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("tweet_id = ?", tweetID).
		Count(&count).Error
	return count, err
}
