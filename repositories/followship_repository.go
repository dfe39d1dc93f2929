package repositories

import (
	"context"

	"gorm.io/gorm"

	"twitterapi/apperr"
	"twitterapi/dto"
	"twitterapi/models"
)

type followshipRepository struct {
	db *gorm.DB
}

func NewFollowshipRepository(db *gorm.DB) FollowshipRepository {
	return &followshipRepository{db: db}
}

// Create inserts the edge. Duplicate edges hit the composite unique index
// and surface as a conflict, which also closes the check-then-act race.
func (r *followshipRepository) Create(ctx context.Context, followerID, followingID uint) error {
	edge := models.Followship{FollowerID: followerID, FollowingID: followingID}
	err := r.db.WithContext(ctx).Create(&edge).Error
	return apperr.FromDB(err, "user not found", "you are already following this user")
}

func (r *followshipRepository) Delete(ctx context.Context, followerID, followingID uint) error {
	res := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Followship{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("you are not following this user")
	}
	return nil
}

func (r *followshipRepository) Exists(ctx context.Context, followerID, followingID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Followship{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	return count > 0, err
}

func (r *followshipRepository) FollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Followship{}).
		Where("follower_id = ?", userID).
		Pluck("following_id", &ids).Error
	return ids, err
}

func (r *followshipRepository) CountFollowers(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Followship{}).
		Where("following_id = ?", userID).
		Count(&count).Error
	return count, err
}

// Followers joins the users who follow userID, newest edge first.
func (r *followshipRepository) Followers(ctx context.Context, userID uint) ([]dto.FollowListEntry, error) {
	var entries []dto.FollowListEntry
	err := r.db.WithContext(ctx).Model(&models.Followship{}).
		Select("users.id AS user_id, users.name, users.account, users.avatar, users.introduction").
		Joins("JOIN users ON users.id = followships.follower_id").
		Where("followships.following_id = ?", userID).
		Order("followships.created_at DESC, followships.id ASC").
		Find(&entries).Error
	return entries, err
}

// Followings joins the users userID follows, newest edge first.
func (r *followshipRepository) Followings(ctx context.Context, userID uint) ([]dto.FollowListEntry, error) {
	var entries []dto.FollowListEntry
	err := r.db.WithContext(ctx).Model(&models.Followship{}).
		Select("users.id AS user_id, users.name, users.account, users.avatar, users.introduction").
		Joins("JOIN users ON users.id = followships.following_id").
		Where("followships.follower_id = ?", userID).
		Order("followships.created_at DESC, followships.id ASC").
		Find(&entries).Error
	return entries, err
}
