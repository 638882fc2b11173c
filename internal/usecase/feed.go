package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/yomogi/ghostboard/internal/domain"
)

var tracer = otel.Tracer("usecase")

// feedEntry is the single process-wide cache slot: the last successful
// fetch plus its timestamp. Replaced wholesale, never mutated in place.
type feedEntry struct {
	items     []domain.RemoteStatus
	fetchedAt time.Time
}

// FeedUsecase owns the feed cache-and-merge logic: it decides when to
// refetch the remote timeline, degrades to stale data when the remote
// fails, and joins engagement state into every item at read time.
type FeedUsecase struct {
	repo    EngagementRepository
	gateway FeedGateway

	accountRef string
	fetchLimit int
	freshFor   time.Duration

	mu    sync.RWMutex
	entry *feedEntry

	// refreshMu serializes refresh attempts so concurrent stale reads
	// trigger at most one remote call.
	refreshMu sync.Mutex

	now func() time.Time
}

func NewFeedUsecase(
	repo EngagementRepository,
	gateway FeedGateway,
	accountRef string,
	fetchLimit int,
	freshFor time.Duration,
) *FeedUsecase {
	return &FeedUsecase{
		repo:       repo,
		gateway:    gateway,
		accountRef: accountRef,
		fetchLimit: fetchLimit,
		freshFor:   freshFor,
		now:        time.Now,
	}
}

// GetFeed returns the enriched feed, newest first as the remote orders it.
// It fails with RemoteUnavailableError only when the remote call fails and
// no prior cache entry exists.
func (uc *FeedUsecase) GetFeed(ctx context.Context) ([]domain.EnrichedConfession, error) {
	ctx, span := tracer.Start(ctx, "Feed.Usecase.GetFeed")
	defer span.End()

	items, err := uc.snapshot(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	return uc.merge(ctx, items)
}

func (uc *FeedUsecase) snapshot(ctx context.Context) ([]domain.RemoteStatus, error) {
	if items, ok := uc.freshItems(); ok {
		return items, nil
	}
	return uc.refresh(ctx)
}

func (uc *FeedUsecase) freshItems() ([]domain.RemoteStatus, bool) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	if uc.entry == nil {
		return nil, false
	}
	if uc.now().Sub(uc.entry.fetchedAt) >= uc.freshFor {
		return nil, false
	}
	return uc.entry.items, true
}

func (uc *FeedUsecase) refresh(ctx context.Context) ([]domain.RemoteStatus, error) {
	uc.refreshMu.Lock()
	defer uc.refreshMu.Unlock()

	// another reader may have refreshed while we waited for the lock
	if items, ok := uc.freshItems(); ok {
		return items, nil
	}

	fetched, err := uc.gateway.ListRecent(ctx, uc.accountRef, uc.fetchLimit)
	if err != nil {
		// a failed refresh never clears the existing cache; serve stale
		// with no upper bound on staleness
		uc.mu.RLock()
		entry := uc.entry
		uc.mu.RUnlock()

		if entry != nil {
			slog.WarnContext(
				ctx, "remote fetch failed, serving stale feed",
				slog.String("error", err.Error()),
				slog.String("module", "feed"),
			)
			return entry.items, nil
		}

		return nil, domain.RemoteUnavailableError{Detail: err.Error(), Err: err}
	}

	// an empty remote result is a valid fresh state
	if fetched == nil {
		fetched = []domain.RemoteStatus{}
	}

	uc.mu.Lock()
	uc.entry = &feedEntry{items: fetched, fetchedAt: uc.now()}
	uc.mu.Unlock()

	return fetched, nil
}

func (uc *FeedUsecase) merge(ctx context.Context, items []domain.RemoteStatus) ([]domain.EnrichedConfession, error) {
	out := make([]domain.EnrichedConfession, 0, len(items))
	for _, item := range items {
		state, err := uc.repo.LocalState(ctx, item.ID)
		if err != nil {
			return nil, domain.StoreError{Err: err}
		}
		out = append(out, mergeItem(item, state))
	}
	return out, nil
}

// mergeItem joins one remote status with locally tracked state. The
// remote's id, text and timestamp always win; tags, the allow-comments
// flag and both counters are joined from local state, which defaults to
// empty tags, comments allowed and zero counts for ids the engagement
// store has never seen.
func mergeItem(item domain.RemoteStatus, state domain.LocalState) domain.EnrichedConfession {
	tags := state.Meta.Tags
	if tags == nil {
		tags = []string{}
	}

	return domain.EnrichedConfession{
		Confession: domain.Confession{
			ID:            item.ID,
			Text:          item.Text,
			CreatedAt:     item.CreatedAt,
			Tags:          tags,
			AuthorID:      state.Meta.AuthorID,
			AllowComments: state.Meta.AllowComments,
		},
		LikeCount:    state.LikeCount,
		CommentCount: state.CommentCount,
	}
}
