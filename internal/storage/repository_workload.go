package storage

import (
	"context"
	"time"

	"gorm.io/gorm/clause"

	"github.com/Shishlyannikovvv/project-planner/internal/domain"
)

// UpsertWorkloadEntry пишет часы по ключу (user, task, date): повторная
// аллокация на тот же день перезаписывает запись, а не дублирует ее
func (r *Repository) UpsertWorkloadEntry(ctx context.Context, entry *domain.WorkloadEntry) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"}, {Name: "task_id"}, {Name: "date"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"project_id", "allocated_hours", "actual_hours", "updated_at",
			}),
		}).
		Create(entry).Error
}

func (r *Repository) ListWorkloadByUser(ctx context.Context, userID string, from, to time.Time) ([]domain.WorkloadEntry, error) {
	var entries []domain.WorkloadEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date").
		Find(&entries).Error
	return entries, err
}

func (r *Repository) ListWorkloadByProject(ctx context.Context, projectID string, from, to time.Time) ([]domain.WorkloadEntry, error) {
	var entries []domain.WorkloadEntry
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND date >= ? AND date <= ?", projectID, from, to).
		Order("date").
		Find(&entries).Error
	return entries, err
}
