package repository

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yomogi/ghostboard/internal/domain"
	"github.com/yomogi/ghostboard/internal/infra/database/models"
	"github.com/yomogi/ghostboard/internal/usecase"
)

// EngagementRepository is the postgres-backed engagement store. Toggles
// run inside a transaction so the returned count always reflects the set's
// true cardinality.
type EngagementRepository struct {
	db *gorm.DB
}

func NewEngagementRepository(db *gorm.DB) *EngagementRepository {
	return &EngagementRepository{db: db}
}

func (r *EngagementRepository) SaveConfessionMeta(ctx context.Context, meta domain.ConfessionMeta) error {
	tags, err := json.Marshal(meta.Tags)
	if err != nil {
		return err
	}

	row := models.ConfessionMeta{
		ID:            meta.ID,
		AuthorID:      meta.AuthorID,
		Tags:          string(tags),
		AllowComments: meta.AllowComments,
	}

	// metadata is set once at creation, there is no edit path
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		DoNothing: true,
	}).Create(&row).Error
}

func (r *EngagementRepository) GetConfessionMeta(ctx context.Context, confessionID string) (domain.ConfessionMeta, error) {
	var row models.ConfessionMeta
	err := r.db.WithContext(ctx).
		Where("id = ?", confessionID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ConfessionMeta{}, domain.NotFoundError{Resource: "confession"}
	}
	if err != nil {
		return domain.ConfessionMeta{}, err
	}

	return unmarshalMeta(row)
}

func (r *EngagementRepository) LocalState(ctx context.Context, confessionID string) (domain.LocalState, error) {
	state := domain.DefaultLocalState()

	meta, err := r.GetConfessionMeta(ctx, confessionID)
	if err == nil {
		state.Meta = meta
	} else if !errors.Is(err, domain.ErrNotFound) {
		return domain.LocalState{}, err
	}

	err = r.db.WithContext(ctx).Model(&models.Like{}).
		Where("confession_id = ?", confessionID).
		Count(&state.LikeCount).Error
	if err != nil {
		return domain.LocalState{}, err
	}

	err = r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("confession_id = ?", confessionID).
		Count(&state.CommentCount).Error
	if err != nil {
		return domain.LocalState{}, err
	}

	return state, nil
}

func (r *EngagementRepository) ToggleLike(ctx context.Context, confessionID, userID string) (bool, int64, error) {
	var liked bool
	var count int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Like
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("confession_id = ? AND user_id = ?", confessionID, userID).
			Take(&existing).Error

		switch {
		case err == nil:
			if err := tx.Delete(&models.Like{}, "confession_id = ? AND user_id = ?", confessionID, userID).Error; err != nil {
				return err
			}
			liked = false
		case errors.Is(err, gorm.ErrRecordNotFound):
			row := models.Like{ConfessionID: confessionID, UserID: userID}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
				return err
			}
			liked = true
		default:
			return err
		}

		return tx.Model(&models.Like{}).
			Where("confession_id = ?", confessionID).
			Count(&count).Error
	})
	if err != nil {
		return false, 0, err
	}

	return liked, count, nil
}

func (r *EngagementRepository) LikeStatus(ctx context.Context, confessionID, userID string) (int64, bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("confession_id = ?", confessionID).
		Count(&count).Error
	if err != nil {
		return 0, false, err
	}

	if userID == "" {
		return count, false, nil
	}

	var existing models.Like
	err = r.db.WithContext(ctx).
		Where("confession_id = ? AND user_id = ?", confessionID, userID).
		Take(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return count, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	return count, true, nil
}

func (r *EngagementRepository) AddComment(ctx context.Context, comment domain.Comment) error {
	row := models.Comment{
		ConfessionID: comment.ConfessionID,
		UserID:       comment.UserID,
		Text:         comment.Text,
		CDate:        comment.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *EngagementRepository) ListComments(ctx context.Context, confessionID string) ([]domain.Comment, error) {
	var rows []models.Comment
	err := r.db.WithContext(ctx).
		Where("confession_id = ?", confessionID).
		Order("c_date DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	comments := make([]domain.Comment, len(rows))
	for i, row := range rows {
		comments[i] = domain.Comment{
			ConfessionID: row.ConfessionID,
			UserID:       row.UserID,
			Text:         row.Text,
			CreatedAt:    row.CDate,
		}
	}
	return comments, nil
}

func (r *EngagementRepository) ToggleBookmark(ctx context.Context, userID, confessionID string) (bool, error) {
	var bookmarked bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Bookmark
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND confession_id = ?", userID, confessionID).
			Take(&existing).Error

		switch {
		case err == nil:
			bookmarked = false
			return tx.Delete(&models.Bookmark{}, "user_id = ? AND confession_id = ?", userID, confessionID).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			bookmarked = true
			row := models.Bookmark{UserID: userID, ConfessionID: confessionID}
			return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error
		default:
			return err
		}
	})
	if err != nil {
		return false, err
	}

	return bookmarked, nil
}

func (r *EngagementRepository) ListBookmarks(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&models.Bookmark{}).
		Where("user_id = ?", userID).
		Order("c_date DESC").
		Pluck("confession_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func unmarshalMeta(row models.ConfessionMeta) (domain.ConfessionMeta, error) {
	tags := []string{}
	if row.Tags != "" {
		if err := json.Unmarshal([]byte(row.Tags), &tags); err != nil {
			return domain.ConfessionMeta{}, err
		}
	}

	return domain.ConfessionMeta{
		ID:            row.ID,
		AuthorID:      row.AuthorID,
		Tags:          tags,
		AllowComments: row.AllowComments,
		CreatedAt:     row.CDate,
	}, nil
}

var _ usecase.EngagementRepository = (*EngagementRepository)(nil)
