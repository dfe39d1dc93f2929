package repositories

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"twitterapi/database"
	"twitterapi/models"
)

// openTestDB opens an in-memory SQLite database and applies migrations.
// A shared cache keeps the database alive across pooled connections.
func openTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"),
		&gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		_ = sqlDB.Close()
	})
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func createUser(t *testing.T, db *gorm.DB, account string) *models.User {
	t.Helper()
	user := models.User{
		Name:     account,
		Account:  account,
		Email:    account + "@example.com",
		Password: "hashed",
		Role:     models.RoleUser,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", account, err)
	}
	return &user
}

func createUserModel(account, email string) *models.User {
	return &models.User{
		Name:     account,
		Account:  account,
		Email:    email,
		Password: "hashed",
		Role:     models.RoleUser,
	}
}

func createAdmin(t *testing.T, db *gorm.DB, account string) *models.User {
	t.Helper()
	user := createUser(t, db, account)
	if err := db.Model(user).Update("role", models.RoleAdmin).Error; err != nil {
		t.Fatalf("promote admin: %v", err)
	}
	user.Role = models.RoleAdmin
	return user
}

func createTweetAt(t *testing.T, db *gorm.DB, userID uint, description string, at time.Time) *models.Tweet {
	t.Helper()
	tweet := models.Tweet{UserID: userID, Description: description, CreatedAt: at, UpdatedAt: at}
	if err := db.Create(&tweet).Error; err != nil {
		t.Fatalf("create tweet: %v", err)
	}
	return &tweet
}

func followAt(t *testing.T, db *gorm.DB, followerID, followingID uint, at time.Time) {
	t.Helper()
	edge := models.Followship{FollowerID: followerID, FollowingID: followingID, CreatedAt: at}
	if err := db.Create(&edge).Error; err != nil {
		t.Fatalf("create followship: %v", err)
	}
}
