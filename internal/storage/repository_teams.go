package storage

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/Shishlyannikovvv/project-planner/internal/domain"
)

// --- Teams ---

func (r *Repository) CreateTeam(ctx context.Context, team *domain.Team) error {
	return r.db.WithContext(ctx).Create(team).Error
}

func (r *Repository) GetTeamByID(ctx context.Context, id string) (*domain.Team, error) {
	var team domain.Team
	err := r.db.WithContext(ctx).First(&team, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTeamNotFound
		}
		return nil, err
	}
	return &team, nil
}

func (r *Repository) SaveTeam(ctx context.Context, team *domain.Team) error {
	return r.db.WithContext(ctx).Save(team).Error
}

func (r *Repository) DeleteTeam(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.Team{}, "id = ?", id).Error
}

func (r *Repository) SearchTeams(ctx context.Context, query string) ([]domain.Team, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	var teams []domain.Team
	err := r.db.WithContext(ctx).
		Where("lower(name) LIKE ? OR lower(description) LIKE ?", pattern, pattern).
		Order("name").
		Find(&teams).Error
	return teams, err
}

// --- Team members ---

func (r *Repository) CreateTeamMember(ctx context.Context, member *domain.TeamMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *Repository) GetTeamMember(ctx context.Context, teamID, userID string) (*domain.TeamMember, error) {
	var member domain.TeamMember
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

func (r *Repository) SaveTeamMember(ctx context.Context, member *domain.TeamMember) error {
	return r.db.WithContext(ctx).Save(member).Error
}

func (r *Repository) DeleteTeamMember(ctx context.Context, teamID, userID string) error {
	return r.db.WithContext(ctx).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Delete(&domain.TeamMember{}).Error
}

func (r *Repository) ListTeamMembers(ctx context.Context, teamID string) ([]domain.TeamMember, error) {
	var members []domain.TeamMember
	err := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("joined_at").
		Find(&members).Error
	return members, err
}

func (r *Repository) ListTeamsByUser(ctx context.Context, userID string) ([]domain.Team, error) {
	var teams []domain.Team
	err := r.db.WithContext(ctx).
		Joins("JOIN team_members ON team_members.team_id = teams.id").
		Where("team_members.user_id = ?", userID).
		Find(&teams).Error
	return teams, err
}

func (r *Repository) CountTeamOwners(ctx context.Context, teamID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.TeamMember{}).
		Where("team_id = ? AND role = ?", teamID, domain.TeamRoleOwner).
		Count(&count).Error
	return count, err
}

// --- Project associations ---

func (r *Repository) CreateProjectTeam(ctx context.Context, link *domain.ProjectTeam) error {
	return r.db.WithContext(ctx).Create(link).Error
}

func (r *Repository) DeleteProjectTeam(ctx context.Context, projectID, teamID string) error {
	return r.db.WithContext(ctx).
		Where("project_id = ? AND team_id = ?", projectID, teamID).
		Delete(&domain.ProjectTeam{}).Error
}

func (r *Repository) ListTeamProjectLinks(ctx context.Context, teamID string) ([]domain.ProjectTeam, error) {
	var links []domain.ProjectTeam
	err := r.db.WithContext(ctx).Where("team_id = ?", teamID).Find(&links).Error
	return links, err
}
