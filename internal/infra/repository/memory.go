package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/yomogi/ghostboard/internal/domain"
	"github.com/yomogi/ghostboard/internal/usecase"
)

// MemoryEngagementRepository keeps engagement state in process memory.
// Used when no postgres DSN is configured; state is lost on restart.
type MemoryEngagementRepository struct {
	mu        sync.RWMutex
	meta      map[string]domain.ConfessionMeta
	likes     map[string]map[string]struct{} // confession id -> user set
	comments  map[string][]domain.Comment
	bookmarks map[string]map[string]struct{} // user id -> confession set
	bookOrder map[string][]string            // insertion order per user
}

func NewMemoryEngagementRepository() *MemoryEngagementRepository {
	return &MemoryEngagementRepository{
		meta:      make(map[string]domain.ConfessionMeta),
		likes:     make(map[string]map[string]struct{}),
		comments:  make(map[string][]domain.Comment),
		bookmarks: make(map[string]map[string]struct{}),
		bookOrder: make(map[string][]string),
	}
}

func (r *MemoryEngagementRepository) SaveConfessionMeta(ctx context.Context, meta domain.ConfessionMeta) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// set once at creation, no edit path
	if _, ok := r.meta[meta.ID]; ok {
		return nil
	}
	if meta.Tags == nil {
		meta.Tags = []string{}
	}
	r.meta[meta.ID] = meta
	return nil
}

func (r *MemoryEngagementRepository) GetConfessionMeta(ctx context.Context, confessionID string) (domain.ConfessionMeta, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	meta, ok := r.meta[confessionID]
	if !ok {
		return domain.ConfessionMeta{}, domain.NotFoundError{Resource: "confession"}
	}
	return meta, nil
}

func (r *MemoryEngagementRepository) LocalState(ctx context.Context, confessionID string) (domain.LocalState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state := domain.DefaultLocalState()
	if meta, ok := r.meta[confessionID]; ok {
		state.Meta = meta
	}
	state.LikeCount = int64(len(r.likes[confessionID]))
	state.CommentCount = int64(len(r.comments[confessionID]))
	return state, nil
}

func (r *MemoryEngagementRepository) ToggleLike(ctx context.Context, confessionID, userID string) (bool, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.likes[confessionID]
	if !ok {
		set = make(map[string]struct{})
		r.likes[confessionID] = set
	}

	var liked bool
	if _, member := set[userID]; member {
		delete(set, userID)
		liked = false
	} else {
		set[userID] = struct{}{}
		liked = true
	}

	return liked, int64(len(set)), nil
}

func (r *MemoryEngagementRepository) LikeStatus(ctx context.Context, confessionID, userID string) (int64, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set := r.likes[confessionID]
	_, liked := set[userID]
	return int64(len(set)), liked && userID != "", nil
}

func (r *MemoryEngagementRepository) AddComment(ctx context.Context, comment domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.comments[comment.ConfessionID] = append(r.comments[comment.ConfessionID], comment)
	return nil
}

func (r *MemoryEngagementRepository) ListComments(ctx context.Context, confessionID string) ([]domain.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.comments[confessionID]
	comments := make([]domain.Comment, len(stored))
	copy(comments, stored)

	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreatedAt.After(comments[j].CreatedAt)
	})
	return comments, nil
}

func (r *MemoryEngagementRepository) ToggleBookmark(ctx context.Context, userID, confessionID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.bookmarks[userID]
	if !ok {
		set = make(map[string]struct{})
		r.bookmarks[userID] = set
	}

	if _, member := set[confessionID]; member {
		delete(set, confessionID)
		order := r.bookOrder[userID]
		for i, id := range order {
			if id == confessionID {
				r.bookOrder[userID] = append(order[:i], order[i+1:]...)
				break
			}
		}
		return false, nil
	}

	set[confessionID] = struct{}{}
	r.bookOrder[userID] = append(r.bookOrder[userID], confessionID)
	return true, nil
}

func (r *MemoryEngagementRepository) ListBookmarks(ctx context.Context, userID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order := r.bookOrder[userID]
	ids := make([]string, len(order))
	copy(ids, order)
	return ids, nil
}

var _ usecase.EngagementRepository = (*MemoryEngagementRepository)(nil)
