package usecase

import (
	"context"
	"time"

	"github.com/yomogi/ghostboard/internal/domain"
)

// EngagementRepository persists everything the remote feed service doesn't
// know about: confession metadata, likes, comments, bookmarks. Counts must
// always equal the cardinality of the underlying membership set.
type EngagementRepository interface {
	SaveConfessionMeta(ctx context.Context, meta domain.ConfessionMeta) error
	GetConfessionMeta(ctx context.Context, confessionID string) (domain.ConfessionMeta, error)

	// LocalState joins meta and counters for one confession id. Unknown
	// ids return domain.DefaultLocalState(), not an error.
	LocalState(ctx context.Context, confessionID string) (domain.LocalState, error)

	ToggleLike(ctx context.Context, confessionID, userID string) (liked bool, count int64, err error)
	LikeStatus(ctx context.Context, confessionID, userID string) (count int64, liked bool, err error)

	AddComment(ctx context.Context, comment domain.Comment) error
	ListComments(ctx context.Context, confessionID string) ([]domain.Comment, error)

	ToggleBookmark(ctx context.Context, userID, confessionID string) (bookmarked bool, err error)
	ListBookmarks(ctx context.Context, userID string) ([]string, error)
}

// FeedGateway encapsulates the remote, rate-limited feed service.
type FeedGateway interface {
	PostStatus(ctx context.Context, text string) (domain.RemoteStatus, error)
	ListRecent(ctx context.Context, accountRef string, limit int) ([]domain.RemoteStatus, error)
}

// ModerationChecker matches text against the prohibited-word policy.
type ModerationChecker interface {
	Check(text string) (clean bool, matches []string)
}

// SessionStore keeps anonymous sessions resolvable for ghost-name display.
type SessionStore interface {
	Put(ctx context.Context, session domain.Session, ttl time.Duration) error
	Get(ctx context.Context, userID string) (domain.Session, error)
}

// EventPublisher fans out board events to realtime listeners.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}

// TokenIssuer mints bearer tokens for newly issued sessions.
type TokenIssuer interface {
	IssueToken(userID string, ttl time.Duration) (string, error)
}
