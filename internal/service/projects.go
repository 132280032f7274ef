package service

import (
	"context"

	"github.com/Shishlyannikovvv/project-planner/internal/domain"
	"github.com/Shishlyannikovvv/project-planner/internal/logger"
)

// Projects - проекты и членство в них
type Projects struct {
	repo domain.Repository
}

func NewProjects(repo domain.Repository) *Projects {
	return &Projects{repo: repo}
}

// Create сохраняет проект и добавляет владельца участником с ролью owner.
// Шаг с членством best-effort: его сбой логируется и не откатывает проект.
func (s *Projects) Create(ctx context.Context, in domain.CreateProjectInput) (*domain.Project, error) {
	status := in.Status
	if status == "" {
		status = domain.ProjectStatusPlanning
	}
	project := &domain.Project{
		Name:        in.Name,
		Description: in.Description,
		OwnerID:     in.OwnerID,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Status:      status,
	}
	if err := s.repo.CreateProject(ctx, project); err != nil {
		return nil, err
	}

	member := &domain.ProjectMember{
		ProjectID: project.ID,
		UserID:    project.OwnerID,
		Role:      domain.ProjectRoleOwner,
	}
	if err := s.repo.CreateProjectMember(ctx, member); err != nil {
		logger.Warn("failed to add owner as project member",
			"project_id", project.ID, "owner_id", project.OwnerID, "error", err)
	}

	return project, nil
}

// CreateWithInitialMembers создает проект и добавляет стартовый состав.
// Каждое добавление независимое: сбой по одному участнику не прерывает
// остальных.
func (s *Projects) CreateWithInitialMembers(ctx context.Context, in domain.CreateProjectInput, memberIDs []string) (*domain.Project, error) {
	project, err := s.Create(ctx, in)
	if err != nil {
		return nil, err
	}

	for _, userID := range memberIDs {
		if userID == project.OwnerID {
			continue // владелец уже добавлен
		}
		member := &domain.ProjectMember{
			ProjectID: project.ID,
			UserID:    userID,
			Role:      domain.ProjectRoleMember,
		}
		if err := s.repo.CreateProjectMember(ctx, member); err != nil {
			logger.Warn("failed to add initial project member",
				"project_id", project.ID, "user_id", userID, "error", err)
		}
	}

	return project, nil
}

func (s *Projects) Get(ctx context.Context, id, requesterID string) (*domain.Project, error) {
	project, err := s.repo.GetProjectByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.requireAccess(ctx, id, requesterID); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *Projects) Update(ctx context.Context, id string, patch domain.ProjectPatch, requesterID string) (*domain.Project, error) {
	project, err := s.repo.GetProjectByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.requireAccess(ctx, id, requesterID); err != nil {
		return nil, err
	}

	if patch.Name != nil {
		project.Name = *patch.Name
	}
	if patch.Description != nil {
		project.Description = *patch.Description
	}
	if patch.StartDate != nil {
		project.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		project.EndDate = patch.EndDate
	}
	if patch.Status != nil {
		project.Status = *patch.Status
	}

	if err := s.repo.SaveProject(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Delete доступен только владельцу. Задачи проекта не каскадируются.
func (s *Projects) Delete(ctx context.Context, id, requesterID string) error {
	project, err := s.repo.GetProjectByID(ctx, id)
	if err != nil {
		return err
	}
	if project.OwnerID != requesterID {
		return domain.ErrPermissionDenied
	}
	return s.repo.DeleteProject(ctx, id)
}

// ListForUser - объединение собственных и членских проектов без дублей
func (s *Projects) ListForUser(ctx context.Context, userID string) ([]domain.Project, error) {
	owned, err := s.repo.ListProjectsByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	membered, err := s.repo.ListProjectsByMember(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dedupeProjects(owned, membered), nil
}

// ListForUserIncludingTeams дополняет ListForUser проектами, доступными
// через команды пользователя
func (s *Projects) ListForUserIncludingTeams(ctx context.Context, userID string) ([]domain.Project, error) {
	direct, err := s.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	viaTeams, err := s.repo.ListProjectsByUserTeams(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dedupeProjects(direct, viaTeams), nil
}

// ListMembers возвращает участников проекта с данными пользователей.
// Неразрешимый пользователь не фатален: запись остается с заглушкой.
func (s *Projects) ListMembers(ctx context.Context, projectID, requesterID string) ([]domain.ProjectMemberView, error) {
	if err := s.requireAccess(ctx, projectID, requesterID); err != nil {
		return nil, err
	}
	members, err := s.repo.ListProjectMembers(ctx, projectID)
	if err != nil {
		return nil, err
	}

	views := make([]domain.ProjectMemberView, 0, len(members))
	for _, m := range members {
		view := domain.ProjectMemberView{ProjectMember: m, UserName: domain.UnknownUserName}
		user, err := s.repo.GetUserByID(ctx, m.UserID)
		if err != nil {
			logger.Warn("failed to resolve project member user",
				"project_id", projectID, "user_id", m.UserID, "error", err)
		} else {
			view.UserName = user.Name
			view.UserEmail = user.Email
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *Projects) HasAccess(ctx context.Context, projectID, userID string) (bool, error) {
	return s.repo.HasProjectAccess(ctx, projectID, userID)
}

func (s *Projects) requireAccess(ctx context.Context, projectID, userID string) error {
	ok, err := s.repo.HasProjectAccess(ctx, projectID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrAccessDenied
	}
	return nil
}

func dedupeProjects(lists ...[]domain.Project) []domain.Project {
	seen := make(map[string]bool)
	result := make([]domain.Project, 0)
	for _, list := range lists {
		for _, p := range list {
			if seen[p.ID] {
				continue
			}
			seen[p.ID] = true
			result = append(result, p)
		}
	}
	return result
}
