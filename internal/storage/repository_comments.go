package storage

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Shishlyannikovvv/project-planner/internal/domain"
)

func (r *Repository) CreateComment(ctx context.Context, comment *domain.TaskComment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *Repository) GetCommentByID(ctx context.Context, id string) (*domain.TaskComment, error) {
	var comment domain.TaskComment
	err := r.db.WithContext(ctx).First(&comment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

func (r *Repository) SaveComment(ctx context.Context, comment *domain.TaskComment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

func (r *Repository) DeleteComment(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.TaskComment{}, "id = ?", id).Error
}

// ListComments возвращает комментарии от новых к старым
func (r *Repository) ListComments(ctx context.Context, taskID string, limit int) ([]domain.TaskComment, error) {
	q := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var comments []domain.TaskComment
	err := q.Find(&comments).Error
	return comments, err
}
