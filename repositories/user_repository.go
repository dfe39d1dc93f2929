package repositories

import (
	"context"

	"gorm.io/gorm"

	"twitterapi/apperr"
	"twitterapi/dto"
	"twitterapi/models"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	return apperr.FromDB(err, "user not found", "account or email already taken")
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		return nil, apperr.FromDB(err, "user not found", "")
	}
	return &user, nil
}

func (r *userRepository) FindByAccount(ctx context.Context, account string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("account = ?", account).First(&user).Error
	if err != nil {
		return nil, apperr.FromDB(err, "account not registered", "")
	}
	return &user, nil
}

func (r *userRepository) ExistsByAccount(ctx context.Context, account string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("account = ?", account).Count(&count).Error
	return count > 0, err
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Save(user).Error
	return apperr.FromDB(err, "user not found", "account or email already taken")
}

// Profile selects the user row together with subquery counts and the EXISTS
// pushdown for the viewer's isFollowing flag, so the whole projection is one
// round trip.
func (r *userRepository) Profile(ctx context.Context, viewerID, userID uint) (*dto.Profile, error) {
	var profile dto.Profile
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Select(`users.id, users.name, users.account, users.introduction, users.avatar, users.cover,
			(SELECT COUNT(*) FROM followships WHERE followships.follower_id = users.id) AS following_count,
			(SELECT COUNT(*) FROM followships WHERE followships.following_id = users.id) AS follower_count,
			(SELECT COUNT(*) FROM tweets WHERE tweets.user_id = users.id) AS tweet_count,
			EXISTS (SELECT 1 FROM followships WHERE followships.follower_id = ? AND followships.following_id = users.id) AS is_following`,
			viewerID).
		Where("users.id = ?", userID).
		Take(&profile).Error
	if err != nil {
		return nil, apperr.FromDB(err, "user not found", "")
	}
	return &profile, nil
}

// TopUsers excludes admins and orders by the composite key
// (isFollowing DESC, followersCount DESC). Ties fall back to id so the
// ranking is deterministic.
func (r *userRepository) TopUsers(ctx context.Context, viewerID uint, limit int) ([]dto.TopUser, error) {
	var users []dto.TopUser
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Select(`users.id, users.name, users.account, users.avatar,
			(SELECT COUNT(*) FROM followships WHERE followships.following_id = users.id) AS followers_count,
			EXISTS (SELECT 1 FROM followships WHERE followships.follower_id = ? AND followships.following_id = users.id) AS is_following`,
			viewerID).
		Where("users.role <> ?", models.RoleAdmin).
		Order("is_following DESC, followers_count DESC, users.id ASC").
		Limit(limit).
		Find(&users).Error
	return users, err
}
