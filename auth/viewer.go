package auth

import (
	"context"

	"twitterapi/models"
)

// Viewer is the per-request identity context: the authenticated user plus
// the two id-sets the projection layer needs for viewer-relative flags. It is
// built once by the middleware, carried in the request context and never
// outlives the request.
type Viewer struct {
	User models.User

	liked     map[uint]struct{}
	following map[uint]struct{}
}

// NewViewer builds a viewer from the user row and the viewer's liked tweet
// ids and followed user ids.
func NewViewer(user models.User, likedTweetIDs, followingIDs []uint) *Viewer {
	v := &Viewer{
		User:      user,
		liked:     make(map[uint]struct{}, len(likedTweetIDs)),
		following: make(map[uint]struct{}, len(followingIDs)),
	}
	for _, id := range likedTweetIDs {
		v.liked[id] = struct{}{}
	}
	for _, id := range followingIDs {
		v.following[id] = struct{}{}
	}
	return v
}

// ID returns the viewer's user id.
func (v *Viewer) ID() uint { return v.User.ID }

// HasLiked reports whether the viewer liked the tweet. A missing or empty
// liked-set yields false, never an error.
func (v *Viewer) HasLiked(tweetID uint) bool {
	if v == nil || v.liked == nil {
		return false
	}
	_, ok := v.liked[tweetID]
	return ok
}

// IsFollowing reports whether the viewer follows the user. This is the
// set-membership strategy; it must agree with the EXISTS pushdown the
// profile and leaderboard queries use.
func (v *Viewer) IsFollowing(userID uint) bool {
	if v == nil || v.following == nil {
		return false
	}
	_, ok := v.following[userID]
	return ok
}

type viewerKey struct{}

// WithViewer stores the viewer in the context.
func WithViewer(ctx context.Context, v *Viewer) context.Context {
	return context.WithValue(ctx, viewerKey{}, v)
}

// ViewerFromContext retrieves the viewer from the context (if any).
func ViewerFromContext(ctx context.Context) (*Viewer, bool) {
	v, ok := ctx.Value(viewerKey{}).(*Viewer)
	return v, ok
}
