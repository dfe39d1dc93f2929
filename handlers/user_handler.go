package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/mail"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"twitterapi/apperr"
	"twitterapi/dto"
	"twitterapi/models"
	"twitterapi/monitoring"
	"twitterapi/repositories"
	"twitterapi/storage"
)

const topUsersLimit = 10

// UserHandler handles profile views, list projections, follow toggles and
// profile edits.
type UserHandler struct {
	UserRepo       repositories.UserRepository
	TweetRepo      repositories.TweetRepository
	FollowshipRepo repositories.FollowshipRepository
	Images         storage.ImageStore
}

func NewUserHandler(userRepo repositories.UserRepository, tweetRepo repositories.TweetRepository,
	followshipRepo repositories.FollowshipRepository, images storage.ImageStore) *UserHandler {
	return &UserHandler{
		UserRepo:       userRepo,
		TweetRepo:      tweetRepo,
		FollowshipRepo: followshipRepo,
		Images:         images,
	}
}

// GetUser returns the aggregated profile: counts computed at read time and
// the viewer's isFollowing flag pushed down into the query.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "userId")
	if err != nil {
		respondError(w, err)
		return
	}

	profile, err := h.UserRepo.Profile(r.Context(), viewer(r).ID(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

// GetUserTweets lists the target user's tweets newest first, each carrying
// the denormalized author fields and the viewer's isLiked flag.
func (h *UserHandler) GetUserTweets(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "userId")
	if err != nil {
		respondError(w, err)
		return
	}

	user, err := h.UserRepo.FindByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	tweets, err := h.TweetRepo.ListByUser(r.Context(), user.ID)
	if err != nil {
		respondError(w, err)
		return
	}

	v := viewer(r)
	projections := make([]dto.TweetProjection, len(tweets))
	for i, t := range tweets {
		projections[i] = projectTweet(t, *user, v)
	}
	respondJSON(w, http.StatusOK, projections)
}

// GetReplies lists the target user's replies newest first.
func (h *UserHandler) GetReplies(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "userId")
	if err != nil {
		respondError(w, err)
		return
	}

	if _, err := h.UserRepo.FindByID(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}

	replies, err := h.TweetRepo.RepliesByUser(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	response := make([]map[string]interface{}, len(replies))
	for i, reply := range replies {
		response[i] = map[string]interface{}{
			"id":        reply.ID,
			"userId":    reply.UserID,
			"tweetId":   reply.TweetID,
			"comment":   reply.Comment,
			"createdAt": reply.CreatedAt,
		}
	}
	respondJSON(w, http.StatusOK, response)
}

// GetLikes lists the tweets the target user liked, newest like first. The
// isLiked flag is the *viewer's*, so viewing someone else's like list still
// computes it correctly.
func (h *UserHandler) GetLikes(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "userId")
	if err != nil {
		respondError(w, err)
		return
	}

	if _, err := h.UserRepo.FindByID(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}

	likes, err := h.TweetRepo.LikesByUser(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	v := viewer(r)
	response := make([]dto.LikedTweet, len(likes))
	for i, like := range likes {
		response[i] = dto.LikedTweet{
			TweetID:     like.TweetID,
			UserID:      like.Tweet.User.ID,
			UserName:    like.Tweet.User.Name,
			UserAccount: like.Tweet.User.Account,
			UserAvatar:  like.Tweet.User.Avatar,
			Description: like.Tweet.Description,
			LikeCount:   len(like.Tweet.Likes),
			ReplyCount:  len(like.Tweet.Replies),
			IsLiked:     v.HasLiked(like.TweetID),
			LikedAt:     like.CreatedAt,
		}
	}
	respondJSON(w, http.StatusOK, response)
}

// GetFollowings lists who the target user follows, newest edge first, each
// entry stamped with the viewer's own isFollowing flag (set-membership
// strategy).
func (h *UserHandler) GetFollowings(w http.ResponseWriter, r *http.Request) {
	h.followList(w, r, h.FollowshipRepo.Followings)
}

// GetFollowers lists who follows the target user, stamped the same way so
// the UI can offer follow-back.
func (h *UserHandler) GetFollowers(w http.ResponseWriter, r *http.Request) {
	h.followList(w, r, h.FollowshipRepo.Followers)
}

func (h *UserHandler) followList(w http.ResponseWriter, r *http.Request,
	list func(ctx context.Context, userID uint) ([]dto.FollowListEntry, error)) {
	id, err := pathID(r, "userId")
	if err != nil {
		respondError(w, err)
		return
	}

	if _, err := h.UserRepo.FindByID(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}

	entries, err := list(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	v := viewer(r)
	for i := range entries {
		entries[i].IsFollowing = v.IsFollowing(entries[i].UserID)
	}
	respondJSON(w, http.StatusOK, entries)
}

// AddFollowing creates a follow edge. Self-follows and duplicates are
// conflicts; the unique index backs the pre-check under races.
func (h *UserHandler) AddFollowing(w http.ResponseWriter, r *http.Request) {
	var requestData struct {
		ID uint `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil {
		respondError(w, apperr.Validation("invalid JSON"))
		return
	}

	v := viewer(r)
	if requestData.ID == v.ID() {
		respondError(w, apperr.Conflict("you cannot follow yourself"))
		return
	}

	if _, err := h.UserRepo.FindByID(r.Context(), requestData.ID); err != nil {
		respondError(w, err)
		return
	}

	following, err := h.FollowshipRepo.Exists(r.Context(), v.ID(), requestData.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	if following {
		respondError(w, apperr.Conflict("you are already following this user"))
		return
	}

	if err := h.FollowshipRepo.Create(r.Context(), v.ID(), requestData.ID); err != nil {
		respondError(w, err)
		return
	}

	monitoring.FollowsAdded.Inc()
	respondSuccess(w, "follow successfully")
}

// RemoveFollowing deletes the edge. A missing edge is a not-found error and
// performs no mutation.
func (h *UserHandler) RemoveFollowing(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "followingId")
	if err != nil {
		respondError(w, err)
		return
	}

	v := viewer(r)
	if id == v.ID() {
		respondError(w, apperr.Conflict("you cannot unfollow yourself"))
		return
	}

	if err := h.FollowshipRepo.Delete(r.Context(), v.ID(), id); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "unfollow successfully")
}

// GetTopUsers returns the popularity leaderboard: non-admin users ranked by
// (isFollowing DESC, followersCount DESC), capped at ten.
func (h *UserHandler) GetTopUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserRepo.TopUsers(r.Context(), viewer(r).ID(), topUsersLimit)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}

// GetCurrentUser returns the viewer's own summary.
func (h *UserHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	u := viewer(r).User
	respondJSON(w, http.StatusOK, dto.UserSummary{
		ID:           u.ID,
		Name:         u.Name,
		Account:      u.Account,
		Email:        u.Email,
		Avatar:       u.Avatar,
		Cover:        u.Cover,
		Introduction: u.Introduction,
		Role:         u.Role,
	})
}

// PutUser edits the viewer's own record. Account settings come as JSON with
// "setting" set; profile edits come as multipart with optional avatar/cover
// uploads or as plain JSON without "setting".
func (h *UserHandler) PutUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "userId")
	if err != nil {
		respondError(w, err)
		return
	}

	v := viewer(r)
	if id != v.ID() {
		respondError(w, apperr.Forbidden("you can only edit your own profile"))
		return
	}

	user, err := h.UserRepo.FindByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		h.putProfileMultipart(w, r, user)
		return
	}

	var requestData struct {
		Setting       bool   `json:"setting"`
		Name          string `json:"name"`
		Introduction  string `json:"introduction"`
		Account       string `json:"account"`
		Email         string `json:"email"`
		Password      string `json:"password"`
		CheckPassword string `json:"checkPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil {
		respondError(w, apperr.Validation("invalid JSON"))
		return
	}

	if requestData.Setting {
		err = h.updateSettings(r.Context(), user, requestData.Name, requestData.Account,
			requestData.Email, requestData.Password, requestData.CheckPassword)
	} else {
		err = h.updateProfile(r.Context(), user, requestData.Name, requestData.Introduction, "", "")
	}
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "update successfully")
}

func (h *UserHandler) putProfileMultipart(w http.ResponseWriter, r *http.Request, user *models.User) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		respondError(w, apperr.Validation("invalid multipart form"))
		return
	}

	avatarURL, err := h.uploadFormImage(r, "avatar")
	if err != nil {
		respondError(w, err)
		return
	}
	coverURL, err := h.uploadFormImage(r, "cover")
	if err != nil {
		respondError(w, err)
		return
	}

	err = h.updateProfile(r.Context(), user,
		r.FormValue("name"), r.FormValue("introduction"), avatarURL, coverURL)
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "update successfully")
}

func (h *UserHandler) uploadFormImage(r *http.Request, field string) (string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return "", nil
		}
		return "", apperr.Validation("invalid " + field + " upload")
	}
	defer file.Close()
	return h.Images.Upload(r.Context(), header.Filename, file)
}

func (h *UserHandler) updateProfile(ctx context.Context, user *models.User,
	name, introduction, avatarURL, coverURL string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperr.Validation("name is required")
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return apperr.Validation("name must be 50 characters or fewer")
	}

	user.Name = name
	user.Introduction = introduction
	if avatarURL != "" {
		user.Avatar = avatarURL
	}
	if coverURL != "" {
		user.Cover = coverURL
	}
	return h.UserRepo.Update(ctx, user)
}

func (h *UserHandler) updateSettings(ctx context.Context, user *models.User,
	name, account, email, password, checkPassword string) error {
	name = strings.TrimSpace(name)
	account = strings.TrimSpace(account)

	if name == "" || account == "" || email == "" || password == "" {
		return apperr.Validation("name, account, email and password are required")
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return apperr.Validation("name must be 50 characters or fewer")
	}
	if password != checkPassword {
		return apperr.Validation("password confirmation does not match")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return apperr.Validation("email address is invalid")
	}

	if account != user.Account {
		taken, err := h.UserRepo.ExistsByAccount(ctx, account)
		if err != nil {
			return err
		}
		if taken {
			return apperr.Conflict("account already taken")
		}
	}
	if email != user.Email {
		taken, err := h.UserRepo.ExistsByEmail(ctx, email)
		if err != nil {
			return err
		}
		if taken {
			return apperr.Conflict("email already taken")
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.Name = name
	user.Account = account
	user.Email = email
	user.Password = string(hashed)
	return h.UserRepo.Update(ctx, user)
}
