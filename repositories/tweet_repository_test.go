package repositories

import (
	"context"
	"testing"
	"time"

	"twitterapi/apperr"
	"twitterapi/models"
)

func TestTweetRepository_Ordering(t *testing.T) {
	db := openTestDB(t, "tweetrepo_ordering")
	tweets := NewTweetRepository(db)
	ctx := context.Background()

	author := createUser(t, db, "author")

	base := time.Now().Add(-time.Hour)
	t1 := createTweetAt(t, db, author.ID, "oldest", base)
	t2 := createTweetAt(t, db, author.ID, "middle", base.Add(time.Minute))
	t3 := createTweetAt(t, db, author.ID, "newest", base.Add(2*time.Minute))

	list, err := tweets.ListByUser(ctx, author.ID)
	if err != nil {
		t.Fatalf("listByUser: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("len = %d, want 3", len(list))
	}
	want := []uint{t3.ID, t2.ID, t1.ID}
	for i, tw := range list {
		if tw.ID != want[i] {
			t.Errorf("position %d: got tweet %d, want %d", i, tw.ID, want[i])
		}
	}
}

// Same-timestamp tweets come back in insertion order.
func TestTweetRepository_OrderingTieBreak(t *testing.T) {
	db := openTestDB(t, "tweetrepo_tiebreak")
	tweets := NewTweetRepository(db)
	ctx := context.Background()

	author := createUser(t, db, "author")
	at := time.Now().Truncate(time.Second)
	first := createTweetAt(t, db, author.ID, "first", at)
	second := createTweetAt(t, db, author.ID, "second", at)

	list, err := tweets.ListByUser(ctx, author.ID)
	if err != nil {
		t.Fatalf("listByUser: %v", err)
	}
	if len(list) != 2 || list[0].ID != first.ID || list[1].ID != second.ID {
		t.Fatalf("tie-break broke insertion order: %v then %v", list[0].ID, list[1].ID)
	}
}

func TestTweetRepository_ListAllEmbedsAuthorAndCounts(t *testing.T) {
	db := openTestDB(t, "tweetrepo_listall")
	tweets := NewTweetRepository(db)
	ctx := context.Background()

	author := createUser(t, db, "author")
	fan := createUser(t, db, "fan")
	tw := createTweetAt(t, db, author.ID, "hello", time.Now())

	if err := tweets.Like(ctx, fan.ID, tw.ID); err != nil {
		t.Fatalf("like: %v", err)
	}
	reply := models.Reply{UserID: fan.ID, TweetID: tw.ID, Comment: "nice"}
	if err := tweets.CreateReply(ctx, &reply); err != nil {
		t.Fatalf("reply: %v", err)
	}

	list, err := tweets.ListAll(ctx)
	if err != nil {
		t.Fatalf("listAll: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("len = %d, want 1", len(list))
	}
	got := list[0]
	if got.User.Account != "author" {
		t.Errorf("author not preloaded: %+v", got.User)
	}
	if len(got.Likes) != 1 || len(got.Replies) != 1 {
		t.Errorf("likes=%d replies=%d, want 1 and 1", len(got.Likes), len(got.Replies))
	}
}

func TestTweetRepository_LikeUnlikeRoundTrip(t *testing.T) {
	db := openTestDB(t, "tweetrepo_likeroundtrip")
	tweets := NewTweetRepository(db)
	ctx := context.Background()

	author := createUser(t, db, "author")
	fan := createUser(t, db, "fan")
	tw := createTweetAt(t, db, author.ID, "hello", time.Now())

	before, err := tweets.CountLikes(ctx, tw.ID)
	if err != nil {
		t.Fatalf("countLikes: %v", err)
	}

	if err := tweets.Like(ctx, fan.ID, tw.ID); err != nil {
		t.Fatalf("like: %v", err)
	}
	mid, _ := tweets.CountLikes(ctx, tw.ID)
	if mid != before+1 {
		t.Errorf("count after like = %d, want %d", mid, before+1)
	}

	if err := tweets.Unlike(ctx, fan.ID, tw.ID); err != nil {
		t.Fatalf("unlike: %v", err)
	}
	after, _ := tweets.CountLikes(ctx, tw.ID)
	if after != before {
		t.Errorf("count after unlike = %d, want %d", after, before)
	}
}

// The unique index turns a duplicate like into a conflict and leaves the
// count unchanged, even without the handler pre-check.
func TestTweetRepository_DuplicateLikeConflict(t *testing.T) {
	db := openTestDB(t, "tweetrepo_duplicatelike")
	tweets := NewTweetRepository(db)
	ctx := context.Background()

	author := createUser(t, db, "author")
	fan := createUser(t, db, "fan")
	tw := createTweetAt(t, db, author.ID, "hello", time.Now())

	if err := tweets.Like(ctx, fan.ID, tw.ID); err != nil {
		t.Fatalf("first like: %v", err)
	}
	if err := tweets.Like(ctx, fan.ID, tw.ID); apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("second like should be a conflict, got %v", err)
	}
	count, _ := tweets.CountLikes(ctx, tw.ID)
	if count != 1 {
		t.Errorf("count after duplicate like = %d, want 1", count)
	}
}

func TestTweetRepository_UnlikeWithoutLike(t *testing.T) {
	db := openTestDB(t, "tweetrepo_unlikemissing")
	tweets := NewTweetRepository(db)
	ctx := context.Background()

	author := createUser(t, db, "author")
	fan := createUser(t, db, "fan")
	tw := createTweetAt(t, db, author.ID, "hello", time.Now())

	if err := tweets.Unlike(ctx, fan.ID, tw.ID); apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("unlike without like should be not-found, got %v", err)
	}
}

func TestTweetRepository_LikedTweetIDs(t *testing.T) {
	db := openTestDB(t, "tweetrepo_likedids")
	tweets := NewTweetRepository(db)
	ctx := context.Background()

	author := createUser(t, db, "author")
	fan := createUser(t, db, "fan")
	tw1 := createTweetAt(t, db, author.ID, "one", time.Now())
	tw2 := createTweetAt(t, db, author.ID, "two", time.Now())

	if err := tweets.Like(ctx, fan.ID, tw1.ID); err != nil {
		t.Fatalf("like: %v", err)
	}

	ids, err := tweets.LikedTweetIDs(ctx, fan.ID)
	if err != nil {
		t.Fatalf("likedTweetIDs: %v", err)
	}
	if len(ids) != 1 || ids[0] != tw1.ID {
		t.Fatalf("ids = %v, want [%d]", ids, tw1.ID)
	}
	_ = tw2
}

func TestTweetRepository_LikesByUserOrder(t *testing.T) {
	db := openTestDB(t, "tweetrepo_likesbyuser")
	tweets := NewTweetRepository(db)
	ctx := context.Background()

	author := createUser(t, db, "author")
	fan := createUser(t, db, "fan")
	tw1 := createTweetAt(t, db, author.ID, "one", time.Now())
	tw2 := createTweetAt(t, db, author.ID, "two", time.Now())

	base := time.Now().Add(-time.Hour)
	oldLike := models.Like{UserID: fan.ID, TweetID: tw1.ID, CreatedAt: base}
	newLike := models.Like{UserID: fan.ID, TweetID: tw2.ID, CreatedAt: base.Add(time.Minute)}
	if err := db.Create(&oldLike).Error; err != nil {
		t.Fatalf("seed like: %v", err)
	}
	if err := db.Create(&newLike).Error; err != nil {
		t.Fatalf("seed like: %v", err)
	}

	likes, err := tweets.LikesByUser(ctx, fan.ID)
	if err != nil {
		t.Fatalf("likesByUser: %v", err)
	}
	if len(likes) != 2 {
		t.Fatalf("len = %d, want 2", len(likes))
	}
	if likes[0].TweetID != tw2.ID || likes[1].TweetID != tw1.ID {
		t.Errorf("likes not in newest-first order: %d then %d", likes[0].TweetID, likes[1].TweetID)
	}
	if likes[0].Tweet.User.Account != "author" {
		t.Errorf("tweet author not preloaded: %+v", likes[0].Tweet.User)
	}
}

func TestTweetRepository_UpdateDescription(t *testing.T) {
	db := openTestDB(t, "tweetrepo_update")
	tweets := NewTweetRepository(db)
	ctx := context.Background()

	author := createUser(t, db, "author")
	tw := createTweetAt(t, db, author.ID, "before", time.Now())

	updated, err := tweets.UpdateDescription(ctx, tw.ID, "after")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Description != "after" {
		t.Errorf("description = %q, want %q", updated.Description, "after")
	}

	if _, err := tweets.UpdateDescription(ctx, 9999, "nope"); apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("updating a missing tweet should be not-found, got %v", err)
	}
}

func TestTweetRepository_RepliesByUserOrder(t *testing.T) {
	db := openTestDB(t, "tweetrepo_replies")
	tweets := NewTweetRepository(db)
	ctx := context.Background()

	author := createUser(t, db, "author")
	commenter := createUser(t, db, "commenter")
	tw := createTweetAt(t, db, author.ID, "hello", time.Now())

	base := time.Now().Add(-time.Hour)
	older := models.Reply{UserID: commenter.ID, TweetID: tw.ID, Comment: "older", CreatedAt: base}
	newer := models.Reply{UserID: commenter.ID, TweetID: tw.ID, Comment: "newer", CreatedAt: base.Add(time.Minute)}
	if err := db.Create(&older).Error; err != nil {
		t.Fatalf("seed reply: %v", err)
	}
	if err := db.Create(&newer).Error; err != nil {
		t.Fatalf("seed reply: %v", err)
	}

	replies, err := tweets.RepliesByUser(ctx, commenter.ID)
	if err != nil {
		t.Fatalf("repliesByUser: %v", err)
	}
	if len(replies) != 2 || replies[0].Comment != "newer" || replies[1].Comment != "older" {
		t.Fatalf("replies not newest-first: %+v", replies)
	}
}
