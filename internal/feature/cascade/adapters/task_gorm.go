package adapters

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vidtube_backend/internal/feature/cascade/domain/entity"
	"vidtube_backend/internal/feature/cascade/usecase"
)

type taskGorm struct {
	db *gorm.DB
}

var _ usecase.TaskRepository = (*taskGorm)(nil)

func NewTaskGorm(db *gorm.DB) *taskGorm {
	return &taskGorm{db: db}
}

func (r *taskGorm) Enqueue(ctx context.Context, t *entity.Task) error {
	if t.Status == "" {
		t.Status = entity.StatusPending
	}
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("failed to enqueue cascade task: %w", err)
	}
	return nil
}

// Pending returns the least-attempted pending tasks first, oldest first among
// equals, so tasks that keep failing cannot starve newer ones.
func (r *taskGorm) Pending(ctx context.Context, limit int) ([]entity.Task, error) {
	if limit <= 0 {
		return nil, nil
	}
	var tasks []entity.Task
	err := r.db.WithContext(ctx).
		Where("status = ?", entity.StatusPending).
		Order("attempts ASC").
		Order("id ASC").
		Limit(limit).
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load pending cascade tasks: %w", err)
	}
	return tasks, nil
}

func (r *taskGorm) MarkDone(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Model(&entity.Task{}).Where("id = ?", id).
		Updates(map[string]any{"status": entity.StatusDone, "last_error": ""}).Error
	if err != nil {
		return fmt.Errorf("failed to mark cascade task done: %w", err)
	}
	return nil
}

func (r *taskGorm) MarkFailed(ctx context.Context, id uuid.UUID, lastErr string) error {
	err := r.db.WithContext(ctx).Model(&entity.Task{}).Where("id = ?", id).
		Updates(map[string]any{"attempts": gorm.Expr("attempts + ?", 1), "last_error": lastErr}).Error
	if err != nil {
		return fmt.Errorf("failed to record cascade task failure: %w", err)
	}
	return nil
}
