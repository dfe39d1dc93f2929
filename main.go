package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"twitterapi/auth"
	"twitterapi/database"
	"twitterapi/handlers"
	"twitterapi/logger"
	"twitterapi/repositories"
	"twitterapi/routes"
	"twitterapi/storage"
)

const defaultTokenTTL = 30 * 24 * time.Hour

func main() {
	_ = godotenv.Load() // load .env if present (ok if missing in prod)
	logger.InitLogger()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		logrus.Fatal("missing required env JWT_SECRET")
	}

	db, err := database.Connect()
	if err != nil {
		logrus.Fatalf("database connection failed: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}

	images, err := storage.NewLocalImageStore(
		getenvDefault("UPLOAD_DIR", "./uploads"),
		getenvDefault("UPLOAD_BASE_URL", "/uploads"),
	)
	if err != nil {
		logrus.Fatalf("image store init failed: %v", err)
	}

	userRepo := repositories.NewUserRepository(db)
	tweetRepo := repositories.NewTweetRepository(db)
	followshipRepo := repositories.NewFollowshipRepository(db)

	authHandler := handlers.NewAuthHandler(userRepo, secret, defaultTokenTTL)
	tweetHandler := handlers.NewTweetHandler(tweetRepo)
	userHandler := handlers.NewUserHandler(userRepo, tweetRepo, followshipRepo, images)

	router := routes.SetupRoutes(authHandler, tweetHandler, userHandler, secret,
		viewerLoader(userRepo, tweetRepo, followshipRepo), healthz(db))

	addr := ":" + getenvDefault("PORT", "3000")
	logrus.Infof("Server running on %s", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		logrus.Fatalf("server stopped: %v", err)
	}
}

// viewerLoader builds the per-request identity context: the user row plus
// the liked-tweet and following id-sets the projection layer reads.
func viewerLoader(users repositories.UserRepository, tweets repositories.TweetRepository,
	followships repositories.FollowshipRepository) auth.ViewerLoader {
	return func(ctx context.Context, userID uint) (*auth.Viewer, error) {
		user, err := users.FindByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		likedIDs, err := tweets.LikedTweetIDs(ctx, userID)
		if err != nil {
			return nil, err
		}
		followingIDs, err := followships.FollowingIDs(ctx, userID)
		if err != nil {
			return nil, err
		}
		return auth.NewViewer(*user, likedIDs, followingIDs), nil
	}
}

func healthz(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := database.Ping(db); err != nil {
			http.Error(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}
}

func getenvDefault(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
