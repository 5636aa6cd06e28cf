// Package adapters provides the GORM repository for videos.
package adapters

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vidtube_backend/internal/feature/video/domain/entity"
	"vidtube_backend/internal/feature/video/usecase"
	platformdb "vidtube_backend/internal/platform/db"
)

// sortColumns maps sort fields to columns. Unknown fields never reach SQL.
var sortColumns = map[usecase.SortField]string{
	usecase.SortCreatedAt: "created_at",
	usecase.SortViews:     "views",
	usecase.SortDuration:  "duration",
	usecase.SortTitle:     "title",
}

type videoGorm struct {
	db *gorm.DB
}

var _ usecase.VideoRepository = (*videoGorm)(nil)

func NewVideoGorm(db *gorm.DB) *videoGorm {
	return &videoGorm{db: db}
}

func (r *videoGorm) Create(ctx context.Context, v *entity.Video) error {
	if err := r.db.WithContext(ctx).Create(v).Error; err != nil {
		return fmt.Errorf("failed to create video: %w", err)
	}
	return nil
}

func (r *videoGorm) FindByID(ctx context.Context, id uuid.UUID) (*entity.Video, error) {
	var v entity.Video
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&v).Error; err != nil {
		if platformdb.IsNotFound(err) {
			return nil, usecase.ErrVideoNotFound
		}
		return nil, err
	}
	return &v, nil
}

// List filters, counts and pages videos. Ties are broken by id so pages are stable.
func (r *videoGorm) List(ctx context.Context, q usecase.ListQuery) ([]entity.Video, int64, error) {
	tx := r.db.WithContext(ctx).Model(&entity.Video{})
	if !q.IncludeUnpublished {
		tx = tx.Where("is_published = ?", true)
	}
	if q.OwnerID != uuid.Nil {
		tx = tx.Where("owner_id = ?", q.OwnerID)
	}
	if q.Search != "" {
		like := "%" + strings.ToLower(q.Search) + "%"
		tx = tx.Where("(LOWER(title) LIKE ? OR LOWER(description) LIKE ?)", like, like)
	}

	var total int64
	if err := tx.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count videos: %w", err)
	}

	col, ok := sortColumns[q.SortBy]
	if !ok {
		col = sortColumns[usecase.SortCreatedAt]
	}
	dir := " ASC"
	if q.Desc {
		dir = " DESC"
	}

	var videos []entity.Video
	err := tx.Order(col + dir).Order("id" + dir).
		Offset(q.Page.Skip()).Limit(q.Page.Limit).
		Find(&videos).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list videos: %w", err)
	}
	return videos, total, nil
}

func (r *videoGorm) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*entity.Video, error) {
	res := r.db.WithContext(ctx).Model(&entity.Video{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update video: %w", res.Error)
	}
	return r.FindByID(ctx, id)
}

func (r *videoGorm) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Video{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete video: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return usecase.ErrVideoNotFound
	}
	return nil
}

// IncrementViews bumps the counter in place so concurrent views are not lost.
func (r *videoGorm) IncrementViews(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&entity.Video{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1))
	if res.Error != nil {
		return fmt.Errorf("failed to increment views: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return usecase.ErrVideoNotFound
	}
	return nil
}
