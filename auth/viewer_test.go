package auth

import (
	"context"
	"testing"

	"twitterapi/models"
)

func TestViewerSets(t *testing.T) {
	v := NewViewer(models.User{ID: 1}, []uint{10, 11}, []uint{2})

	if !v.HasLiked(10) || !v.HasLiked(11) {
		t.Error("liked ids should be members")
	}
	if v.HasLiked(12) {
		t.Error("unliked tweet reported as liked")
	}
	if !v.IsFollowing(2) {
		t.Error("followed user should be a member")
	}
	if v.IsFollowing(3) {
		t.Error("unfollowed user reported as followed")
	}
}

// Empty or missing sets default to false instead of erroring.
func TestViewerEmptySets(t *testing.T) {
	v := NewViewer(models.User{ID: 1}, nil, nil)
	if v.HasLiked(1) || v.IsFollowing(1) {
		t.Error("empty sets must yield false")
	}

	var nilViewer *Viewer
	if nilViewer.HasLiked(1) || nilViewer.IsFollowing(1) {
		t.Error("nil viewer must yield false")
	}
}

func TestViewerContextRoundTrip(t *testing.T) {
	v := NewViewer(models.User{ID: 7}, nil, nil)
	ctx := WithViewer(context.Background(), v)

	got, ok := ViewerFromContext(ctx)
	if !ok || got.ID() != 7 {
		t.Fatalf("viewer not round-tripped: %v %v", got, ok)
	}

	if _, ok := ViewerFromContext(context.Background()); ok {
		t.Fatal("empty context should have no viewer")
	}
}
