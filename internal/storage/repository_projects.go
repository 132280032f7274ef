package storage

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Shishlyannikovvv/project-planner/internal/domain"
)

// --- Projects ---

func (r *Repository) CreateProject(ctx context.Context, project *domain.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *Repository) GetProjectByID(ctx context.Context, id string) (*domain.Project, error) {
	var project domain.Project
	err := r.db.WithContext(ctx).First(&project, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

func (r *Repository) SaveProject(ctx context.Context, project *domain.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

// DeleteProject удаляет только сам проект: задачи, комментарии и записи
// загрузки не каскадируются и остаются доступными по project_id
func (r *Repository) DeleteProject(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.Project{}, "id = ?", id).Error
}

func (r *Repository) ListProjectsByOwner(ctx context.Context, userID string) ([]domain.Project, error) {
	var projects []domain.Project
	err := r.db.WithContext(ctx).Where("owner_id = ?", userID).Find(&projects).Error
	return projects, err
}

func (r *Repository) ListProjectsByMember(ctx context.Context, userID string) ([]domain.Project, error) {
	var projects []domain.Project
	err := r.db.WithContext(ctx).
		Joins("JOIN project_members ON project_members.project_id = projects.id").
		Where("project_members.user_id = ?", userID).
		Find(&projects).Error
	return projects, err
}

// ListProjectsByUserTeams возвращает проекты, ассоциированные с командами,
// в которых состоит пользователь
func (r *Repository) ListProjectsByUserTeams(ctx context.Context, userID string) ([]domain.Project, error) {
	var projects []domain.Project
	err := r.db.WithContext(ctx).
		Joins("JOIN project_teams ON project_teams.project_id = projects.id").
		Joins("JOIN team_members ON team_members.team_id = project_teams.team_id").
		Where("team_members.user_id = ?", userID).
		Find(&projects).Error
	return projects, err
}

// --- Project members ---

func (r *Repository) CreateProjectMember(ctx context.Context, member *domain.ProjectMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *Repository) GetProjectMember(ctx context.Context, projectID, userID string) (*domain.ProjectMember, error) {
	var member domain.ProjectMember
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

func (r *Repository) ListProjectMembers(ctx context.Context, projectID string) ([]domain.ProjectMember, error) {
	var members []domain.ProjectMember
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("joined_at").
		Find(&members).Error
	return members, err
}

func (r *Repository) DeleteProjectMember(ctx context.Context, projectID, userID string) error {
	return r.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&domain.ProjectMember{}).Error
}

// HasProjectAccess проверяет предикат доступа: владелец, прямой участник
// или участник команды, ассоциированной с проектом
func (r *Repository) HasProjectAccess(ctx context.Context, projectID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Project{}).
		Where("id = ? AND owner_id = ?", projectID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}

	err = r.db.WithContext(ctx).Model(&domain.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}

	err = r.db.WithContext(ctx).Model(&domain.ProjectTeam{}).
		Joins("JOIN team_members ON team_members.team_id = project_teams.team_id").
		Where("project_teams.project_id = ? AND team_members.user_id = ?", projectID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
