package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gorilla/mux"

	"twitterapi/apperr"
	"twitterapi/auth"
	"twitterapi/dto"
	"twitterapi/models"
	"twitterapi/monitoring"
	"twitterapi/repositories"
)

// TweetHandler handles tweet CRUD and the like/unlike toggles.
type TweetHandler struct {
	TweetRepo repositories.TweetRepository
}

func NewTweetHandler(tweetRepo repositories.TweetRepository) *TweetHandler {
	return &TweetHandler{TweetRepo: tweetRepo}
}

// GetTweets lists every tweet newest first, projected with author fields,
// counts and the viewer's isLiked flag.
func (h *TweetHandler) GetTweets(w http.ResponseWriter, r *http.Request) {
	v := viewer(r)

	tweets, err := h.TweetRepo.ListAll(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	projections := make([]dto.TweetProjection, len(tweets))
	for i, t := range tweets {
		projections[i] = projectTweet(t, t.User, v)
	}
	respondJSON(w, http.StatusOK, projections)
}

// GetTweet returns one tweet with its author and replies.
func (h *TweetHandler) GetTweet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "tweetId")
	if err != nil {
		respondError(w, err)
		return
	}

	tweet, err := h.TweetRepo.FindByIDWithReplies(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	v := viewer(r)
	replies := make([]map[string]interface{}, len(tweet.Replies))
	for i, reply := range tweet.Replies {
		replies[i] = map[string]interface{}{
			"id":        reply.ID,
			"userId":    reply.UserID,
			"tweetId":   reply.TweetID,
			"comment":   reply.Comment,
			"createdAt": reply.CreatedAt,
		}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"tweet":   projectTweet(*tweet, tweet.User, v),
		"replies": replies,
	})
}

// PostTweet creates a tweet after validating the description.
func (h *TweetHandler) PostTweet(w http.ResponseWriter, r *http.Request) {
	var requestData struct {
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil {
		respondError(w, apperr.Validation("invalid JSON"))
		return
	}

	if err := validateDescription(requestData.Description); err != nil {
		respondError(w, err)
		return
	}

	tweet := models.Tweet{
		UserID:      viewer(r).ID(),
		Description: requestData.Description,
	}
	if err := h.TweetRepo.Create(r.Context(), &tweet); err != nil {
		respondError(w, err)
		return
	}

	monitoring.TweetsPosted.Inc()
	respondJSON(w, http.StatusOK, tweetJSON(&tweet))
}

// PutTweet replaces the description only. A missing tweet is a not-found
// error, same as every other read path.
func (h *TweetHandler) PutTweet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "tweetId")
	if err != nil {
		respondError(w, err)
		return
	}

	var requestData struct {
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil {
		respondError(w, apperr.Validation("invalid JSON"))
		return
	}
	if err := validateDescription(requestData.Description); err != nil {
		respondError(w, err)
		return
	}

	tweet, err := h.TweetRepo.UpdateDescription(r.Context(), id, requestData.Description)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tweetJSON(tweet))
}

// LikeTweet rejects duplicates with a conflict. The existence pre-check gives
// the friendly message; the unique index closes the race behind it.
func (h *TweetHandler) LikeTweet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "tweetId")
	if err != nil {
		respondError(w, err)
		return
	}

	if _, err := h.TweetRepo.FindByID(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}

	v := viewer(r)
	liked, err := h.TweetRepo.HasLiked(r.Context(), v.ID(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	if liked {
		respondError(w, apperr.Conflict("you had already liked this tweet"))
		return
	}

	if err := h.TweetRepo.Like(r.Context(), v.ID(), id); err != nil {
		respondError(w, err)
		return
	}

	monitoring.LikesAdded.Inc()
	respondSuccess(w, "like this tweet successfully")
}

// UnlikeTweet requires an existing like; absence is an already-removed error.
func (h *TweetHandler) UnlikeTweet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "tweetId")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.TweetRepo.Unlike(r.Context(), viewer(r).ID(), id); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "unlike successfully")
}

// PostReply adds a comment to a tweet. Replies are immutable once created.
func (h *TweetHandler) PostReply(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "tweetId")
	if err != nil {
		respondError(w, err)
		return
	}

	var requestData struct {
		Comment string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil {
		respondError(w, apperr.Validation("invalid JSON"))
		return
	}
	if strings.TrimSpace(requestData.Comment) == "" {
		respondError(w, apperr.Validation("comment is required"))
		return
	}

	if _, err := h.TweetRepo.FindByID(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}

	reply := models.Reply{
		UserID:  viewer(r).ID(),
		TweetID: id,
		Comment: requestData.Comment,
	}
	if err := h.TweetRepo.CreateReply(r.Context(), &reply); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"id":        reply.ID,
		"userId":    reply.UserID,
		"tweetId":   reply.TweetID,
		"comment":   reply.Comment,
		"createdAt": reply.CreatedAt,
	})
}

func tweetJSON(t *models.Tweet) map[string]interface{} {
	return map[string]interface{}{
		"id":          t.ID,
		"userId":      t.UserID,
		"description": t.Description,
		"createdAt":   t.CreatedAt,
		"updatedAt":   t.UpdatedAt,
	}
}

func validateDescription(description string) error {
	if description == "" {
		return apperr.Validation("description is required")
	}
	if utf8.RuneCountInString(description) > models.MaxTweetLength {
		return apperr.Validation("description exceeds 140 characters")
	}
	return nil
}

// projectTweet builds the timeline projection for one tweet: denormalized
// author fields, counts from the preloaded sets, and the viewer's isLiked
// flag from the per-request liked-set.
func projectTweet(t models.Tweet, author models.User, v *auth.Viewer) dto.TweetProjection {
	return dto.TweetProjection{
		TweetID:     t.ID,
		UserID:      t.UserID,
		UserName:    author.Name,
		UserAccount: author.Account,
		UserAvatar:  author.Avatar,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
		ReplyCount:  len(t.Replies),
		LikeCount:   len(t.Likes),
		IsLiked:     v.HasLiked(t.ID),
	}
}

func pathID(r *http.Request, name string) (uint, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, apperr.Validation("invalid " + name)
	}
	return uint(id), nil
}
