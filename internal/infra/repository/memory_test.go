package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/yomogi/ghostboard/internal/domain"
)

func TestMemoryToggleLikeRoundTrip(t *testing.T) {
	repo := NewMemoryEngagementRepository()
	ctx := context.Background()

	liked, count, err := repo.ToggleLike(ctx, "c1", "user-1")
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if !liked || count != 1 {
		t.Fatalf("first toggle should like, got liked=%v count=%d", liked, count)
	}

	liked, count, err = repo.ToggleLike(ctx, "c1", "user-1")
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if liked || count != 0 {
		t.Fatalf("second toggle should unlike, got liked=%v count=%d", liked, count)
	}
}

func TestMemoryLikeCountMatchesMembership(t *testing.T) {
	repo := NewMemoryEngagementRepository()
	ctx := context.Background()

	const users = 32
	var wg sync.WaitGroup
	for i := 0; i < users; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			repo.ToggleLike(ctx, "c1", fmt.Sprintf("user-%d", i))
		}(i)
	}
	wg.Wait()

	count, _, err := repo.LikeStatus(ctx, "c1", "")
	if err != nil {
		t.Fatalf("like status failed: %v", err)
	}
	if count != users {
		t.Fatalf("count diverged from set cardinality: got %d want %d", count, users)
	}
}

func TestMemoryLikeStatusAnonymous(t *testing.T) {
	repo := NewMemoryEngagementRepository()
	ctx := context.Background()

	repo.ToggleLike(ctx, "c1", "user-1")

	count, liked, err := repo.LikeStatus(ctx, "c1", "")
	if err != nil {
		t.Fatalf("like status failed: %v", err)
	}
	if count != 1 || liked {
		t.Fatalf("anonymous reads must never report liked, got count=%d liked=%v", count, liked)
	}
}

func TestMemorySaveConfessionMetaIsSetOnce(t *testing.T) {
	repo := NewMemoryEngagementRepository()
	ctx := context.Background()

	first := domain.ConfessionMeta{ID: "c1", Tags: []string{"fun"}, AllowComments: true}
	if err := repo.SaveConfessionMeta(ctx, first); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	overwrite := domain.ConfessionMeta{ID: "c1", Tags: []string{"changed"}, AllowComments: false}
	if err := repo.SaveConfessionMeta(ctx, overwrite); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	meta, err := repo.GetConfessionMeta(ctx, "c1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !meta.AllowComments || meta.Tags[0] != "fun" {
		t.Fatalf("meta was overwritten: %+v", meta)
	}
}

func TestMemoryListCommentsNewestFirst(t *testing.T) {
	repo := NewMemoryEngagementRepository()
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		repo.AddComment(ctx, domain.Comment{
			ConfessionID: "c1",
			UserID:       "user-1",
			Text:         fmt.Sprintf("comment %d", i),
			CreatedAt:    base.Add(time.Duration(i) * time.Minute),
		})
	}

	comments, err := repo.ListComments(ctx, "c1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(comments) != 3 {
		t.Fatalf("expected 3 comments got %d", len(comments))
	}
	if comments[0].Text != "comment 2" || comments[2].Text != "comment 0" {
		t.Fatalf("comments not newest first: %+v", comments)
	}
}

func TestMemoryLocalStateDefaults(t *testing.T) {
	repo := NewMemoryEngagementRepository()

	state, err := repo.LocalState(context.Background(), "never-seen")
	if err != nil {
		t.Fatalf("local state failed: %v", err)
	}
	if !state.Meta.AllowComments || state.LikeCount != 0 || state.CommentCount != 0 {
		t.Fatalf("unexpected defaults: %+v", state)
	}
	if state.Meta.Tags == nil || len(state.Meta.Tags) != 0 {
		t.Fatalf("expected empty tag slice got %+v", state.Meta.Tags)
	}
}

func TestMemoryBookmarkToggleAndOrder(t *testing.T) {
	repo := NewMemoryEngagementRepository()
	ctx := context.Background()

	for _, id := range []string{"c1", "c2", "c3"} {
		bookmarked, err := repo.ToggleBookmark(ctx, "user-1", id)
		if err != nil || !bookmarked {
			t.Fatalf("bookmark %s failed: bookmarked=%v err=%v", id, bookmarked, err)
		}
	}

	// remove the middle one
	bookmarked, err := repo.ToggleBookmark(ctx, "user-1", "c2")
	if err != nil || bookmarked {
		t.Fatalf("unbookmark failed: bookmarked=%v err=%v", bookmarked, err)
	}

	ids, err := repo.ListBookmarks(ctx, "user-1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(ids) != 2 || ids[0] != "c1" || ids[1] != "c3" {
		t.Fatalf("unexpected bookmark order: %v", ids)
	}

	other, err := repo.ListBookmarks(ctx, "user-2")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if other == nil || len(other) != 0 {
		t.Fatalf("expected empty slice for unknown user, got %v", other)
	}
}
