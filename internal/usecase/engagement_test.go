package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yomogi/ghostboard/internal/domain"
)

type mockSessionStore struct {
	sessions map[string]domain.Session
}

func (m *mockSessionStore) Put(ctx context.Context, session domain.Session, ttl time.Duration) error {
	if m.sessions == nil {
		m.sessions = make(map[string]domain.Session)
	}
	m.sessions[session.UserID] = session
	return nil
}

func (m *mockSessionStore) Get(ctx context.Context, userID string) (domain.Session, error) {
	if session, ok := m.sessions[userID]; ok {
		return session, nil
	}
	return domain.Session{}, domain.NotFoundError{Resource: "session"}
}

func TestToggleLikeRequiresIdentifiers(t *testing.T) {
	uc := NewEngagementUsecase(&mockEngagementRepo{}, &mockModeration{}, nil)

	if _, _, err := uc.ToggleLike(context.Background(), "", "user-1"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("missing confessionId should fail validation, got %v", err)
	}
	if _, _, err := uc.ToggleLike(context.Background(), "c1", ""); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("missing userId should fail validation, got %v", err)
	}
}

func TestAddCommentBlockedWhenDisabled(t *testing.T) {
	repo := &mockEngagementRepo{
		meta: map[string]domain.ConfessionMeta{
			"c1": {ID: "c1", AllowComments: false},
		},
	}
	uc := NewEngagementUsecase(repo, &mockModeration{}, nil)

	err := uc.AddComment(context.Background(), "c1", "user-1", "hi there")
	if !errors.Is(err, domain.ErrCommentsDisabled) {
		t.Fatalf("expected CommentsDisabled got %v", err)
	}
	if len(repo.comments) != 0 {
		t.Fatalf("comment was persisted despite disabled comments")
	}
}

func TestAddCommentOnUnknownConfession(t *testing.T) {
	// remote-only confessions have no local meta; comments default to allowed
	repo := &mockEngagementRepo{}
	uc := NewEngagementUsecase(repo, &mockModeration{}, nil)

	stamp := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("JST", 9*3600))
	uc.now = func() time.Time { return stamp }

	if err := uc.AddComment(context.Background(), "remote-1", "user-1", "first!"); err != nil {
		t.Fatalf("add comment failed: %v", err)
	}

	if len(repo.comments) != 1 {
		t.Fatalf("expected one comment got %d", len(repo.comments))
	}
	got := repo.comments[0]
	if !got.CreatedAt.Equal(stamp) || got.CreatedAt.Location() != time.UTC {
		t.Fatalf("timestamp must be server-assigned UTC, got %v", got.CreatedAt)
	}
}

func TestAddCommentModerationBlocks(t *testing.T) {
	repo := &mockEngagementRepo{}
	uc := NewEngagementUsecase(repo, &mockModeration{matches: []string{"spam"}}, nil)

	err := uc.AddComment(context.Background(), "c1", "user-1", "buy spam now")
	if !errors.Is(err, domain.ErrModeration) {
		t.Fatalf("expected moderation error got %v", err)
	}
	if len(repo.comments) != 0 {
		t.Fatalf("moderated comment was persisted")
	}
}

func TestListCommentsResolvesGhostNames(t *testing.T) {
	repo := &mockEngagementRepo{
		comments: []domain.Comment{
			{ConfessionID: "c1", UserID: "user-known", Text: "one"},
			{ConfessionID: "c1", UserID: "user-expired", Text: "two"},
		},
	}
	sessions := &mockSessionStore{
		sessions: map[string]domain.Session{
			"user-known": {UserID: "user-known", GhostName: "Phantom512"},
		},
	}
	uc := NewEngagementUsecase(repo, &mockModeration{}, sessions)

	comments, err := uc.ListComments(context.Background(), "c1")
	if err != nil {
		t.Fatalf("list comments failed: %v", err)
	}
	if comments[0].GhostName != "Phantom512" {
		t.Fatalf("known session not resolved: %+v", comments[0])
	}
	if comments[1].GhostName != "Ghost" {
		t.Fatalf("expired session should fall back to Ghost: %+v", comments[1])
	}
}

func TestToggleBookmarkRequiresIdentifiers(t *testing.T) {
	uc := NewEngagementUsecase(&mockEngagementRepo{}, &mockModeration{}, nil)

	if _, err := uc.ToggleBookmark(context.Background(), "", "c1"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("missing userId should fail validation, got %v", err)
	}
}
