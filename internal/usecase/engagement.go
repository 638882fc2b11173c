package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/yomogi/ghostboard/internal/domain"
)

// EngagementUsecase implements the toggle-like, toggle-bookmark and
// add-comment operations. Each is independent of the feed cache: counters
// are read fresh from the store at feed-read time, never cached.
type EngagementUsecase struct {
	repo       EngagementRepository
	moderation ModerationChecker
	sessions   SessionStore

	now func() time.Time
}

func NewEngagementUsecase(
	repo EngagementRepository,
	moderation ModerationChecker,
	sessions SessionStore,
) *EngagementUsecase {
	return &EngagementUsecase{
		repo:       repo,
		moderation: moderation,
		sessions:   sessions,
		now:        time.Now,
	}
}

// ToggleLike flips the user's membership in the confession's like set and
// returns the new membership state with the set's cardinality.
func (uc *EngagementUsecase) ToggleLike(ctx context.Context, confessionID, userID string) (bool, int64, error) {
	ctx, span := tracer.Start(ctx, "Engagement.Usecase.ToggleLike")
	defer span.End()

	if confessionID == "" || userID == "" {
		return false, 0, domain.ValidationError{Reason: "confessionId and userId are required"}
	}

	liked, count, err := uc.repo.ToggleLike(ctx, confessionID, userID)
	if err != nil {
		span.RecordError(err)
		return false, 0, domain.StoreError{Err: err}
	}
	return liked, count, nil
}

// LikeStatus reports the like count and, when userID is non-empty, whether
// that user is a member of the like set.
func (uc *EngagementUsecase) LikeStatus(ctx context.Context, confessionID, userID string) (int64, bool, error) {
	if confessionID == "" {
		return 0, false, domain.ValidationError{Reason: "confessionId is required"}
	}

	count, liked, err := uc.repo.LikeStatus(ctx, confessionID, userID)
	if err != nil {
		return 0, false, domain.StoreError{Err: err}
	}
	return count, liked, nil
}

// AddComment appends a comment with a server-assigned timestamp. Comment
// text passes the same moderation gate as submissions.
func (uc *EngagementUsecase) AddComment(ctx context.Context, confessionID, userID, text string) error {
	ctx, span := tracer.Start(ctx, "Engagement.Usecase.AddComment")
	defer span.End()

	if confessionID == "" || userID == "" {
		return domain.ValidationError{Reason: "confessionId and userId are required"}
	}
	if strings.TrimSpace(text) == "" {
		return domain.ValidationError{Reason: "comment text is empty"}
	}

	if clean, matches := uc.moderation.Check(text); !clean {
		return domain.ModerationError{Matches: matches}
	}

	meta, err := uc.repo.GetConfessionMeta(ctx, confessionID)
	if err == nil && !meta.AllowComments {
		return domain.CommentsDisabledError{ConfessionID: confessionID}
	}
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return domain.StoreError{Err: err}
	}

	comment := domain.Comment{
		ConfessionID: confessionID,
		UserID:       userID,
		Text:         text,
		CreatedAt:    uc.now().UTC(),
	}

	if err := uc.repo.AddComment(ctx, comment); err != nil {
		span.RecordError(err)
		return domain.StoreError{Err: err}
	}
	return nil
}

// ListComments returns a confession's comments newest first, with ghost
// names resolved at read time. Expired sessions fall back to "Ghost".
func (uc *EngagementUsecase) ListComments(ctx context.Context, confessionID string) ([]domain.Comment, error) {
	if confessionID == "" {
		return nil, domain.ValidationError{Reason: "confessionId is required"}
	}

	comments, err := uc.repo.ListComments(ctx, confessionID)
	if err != nil {
		return nil, domain.StoreError{Err: err}
	}

	for i := range comments {
		comments[i].GhostName = uc.ghostName(ctx, comments[i].UserID)
	}
	return comments, nil
}

// ToggleBookmark flips the confession's membership in the user's bookmark
// set. Bookmarks are keyed from the user side for cheap listing.
func (uc *EngagementUsecase) ToggleBookmark(ctx context.Context, userID, confessionID string) (bool, error) {
	if confessionID == "" || userID == "" {
		return false, domain.ValidationError{Reason: "confessionId and userId are required"}
	}

	bookmarked, err := uc.repo.ToggleBookmark(ctx, userID, confessionID)
	if err != nil {
		return false, domain.StoreError{Err: err}
	}
	return bookmarked, nil
}

// ListBookmarks returns the confession ids the user has bookmarked.
func (uc *EngagementUsecase) ListBookmarks(ctx context.Context, userID string) ([]string, error) {
	if userID == "" {
		return nil, domain.ValidationError{Reason: "userId is required"}
	}

	ids, err := uc.repo.ListBookmarks(ctx, userID)
	if err != nil {
		return nil, domain.StoreError{Err: err}
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

func (uc *EngagementUsecase) ghostName(ctx context.Context, userID string) string {
	if uc.sessions == nil {
		return "Ghost"
	}
	session, err := uc.sessions.Get(ctx, userID)
	if err != nil || session.GhostName == "" {
		return "Ghost"
	}
	return session.GhostName
}
