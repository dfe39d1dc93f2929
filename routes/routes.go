package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"twitterapi/auth"
	"twitterapi/handlers"
	"twitterapi/monitoring"
)

// SetupRoutes initializes all the application routes
// The routing logic is isolated here
func SetupRoutes(authHandler *handlers.AuthHandler, tweetHandler *handlers.TweetHandler,
	userHandler *handlers.UserHandler, secret string, loadViewer auth.ViewerLoader,
	healthz http.HandlerFunc) http.Handler {
	router := mux.NewRouter()

	// Public routes
	router.HandleFunc("/api/signin", authHandler.SignIn).Methods("POST")
	router.HandleFunc("/api/users", authHandler.SignUp).Methods("POST")

	// Operational routes
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")
	router.HandleFunc("/healthz", healthz).Methods("GET")

	// Everything below requires a bearer token
	api := router.PathPrefix("/api").Subrouter()
	api.Use(auth.Middleware(secret, loadViewer))

	// Tweet routes
	api.HandleFunc("/tweets", tweetHandler.GetTweets).Methods("GET")
	api.HandleFunc("/tweets", tweetHandler.PostTweet).Methods("POST")
	api.HandleFunc("/tweets/{tweetId}", tweetHandler.GetTweet).Methods("GET")
	api.HandleFunc("/tweets/{tweetId}", tweetHandler.PutTweet).Methods("PUT")
	api.HandleFunc("/tweets/{tweetId}/like", tweetHandler.LikeTweet).Methods("POST")
	api.HandleFunc("/tweets/{tweetId}/unlike", tweetHandler.UnlikeTweet).Methods("POST")
	api.HandleFunc("/tweets/{tweetId}/replies", tweetHandler.PostReply).Methods("POST")

	// User routes; fixed paths go before the {userId} catch-alls
	api.HandleFunc("/users/top", userHandler.GetTopUsers).Methods("GET")
	api.HandleFunc("/users/current", userHandler.GetCurrentUser).Methods("GET")
	api.HandleFunc("/users/{userId}", userHandler.GetUser).Methods("GET")
	api.HandleFunc("/users/{userId}", userHandler.PutUser).Methods("PUT")
	api.HandleFunc("/users/{userId}/tweets", userHandler.GetUserTweets).Methods("GET")
	api.HandleFunc("/users/{userId}/replied_tweets", userHandler.GetReplies).Methods("GET")
	api.HandleFunc("/users/{userId}/likes", userHandler.GetLikes).Methods("GET")
	api.HandleFunc("/users/{userId}/followings", userHandler.GetFollowings).Methods("GET")
	api.HandleFunc("/users/{userId}/followers", userHandler.GetFollowers).Methods("GET")

	// Followship routes
	api.HandleFunc("/followships", userHandler.AddFollowing).Methods("POST")
	api.HandleFunc("/followships/{followingId}", userHandler.RemoveFollowing).Methods("DELETE")

	return monitoring.InstrumentHandler(router)
}
