package service

import (
	"context"

	"github.com/Shishlyannikovvv/project-planner/internal/domain"
	"github.com/Shishlyannikovvv/project-planner/internal/logger"
)

// Teams - команды, их участники и привязка к проектам
type Teams struct {
	repo domain.Repository
}

func NewTeams(repo domain.Repository) *Teams {
	return &Teams{repo: repo}
}

// Create создает команду и добавляет создателя владельцем. Добавление
// самого себя при создании освобождено от проверки ролей.
func (s *Teams) Create(ctx context.Context, in domain.CreateTeamInput, creatorID string) (*domain.Team, error) {
	team := &domain.Team{
		Name:        in.Name,
		Description: in.Description,
	}
	if err := s.repo.CreateTeam(ctx, team); err != nil {
		return nil, err
	}

	member := &domain.TeamMember{
		TeamID: team.ID,
		UserID: creatorID,
		Role:   domain.TeamRoleOwner,
	}
	if err := s.repo.CreateTeamMember(ctx, member); err != nil {
		logger.Warn("failed to add creator as team owner",
			"team_id", team.ID, "user_id", creatorID, "error", err)
	}

	return team, nil
}

func (s *Teams) Get(ctx context.Context, id string) (*domain.Team, error) {
	return s.repo.GetTeamByID(ctx, id)
}

func (s *Teams) Update(ctx context.Context, id string, patch domain.TeamPatch, actorID string) (*domain.Team, error) {
	team, err := s.repo.GetTeamByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.requireManager(ctx, id, actorID); err != nil {
		return nil, err
	}

	if patch.Name != nil {
		team.Name = *patch.Name
	}
	if patch.Description != nil {
		team.Description = *patch.Description
	}

	if err := s.repo.SaveTeam(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

// Delete снимает всех участников и все привязки к проектам, затем удаляет
// команду. Каждое удаление best-effort: сбой логируется, остальные шаги
// продолжаются, отката нет.
func (s *Teams) Delete(ctx context.Context, id, actorID string) error {
	if _, err := s.repo.GetTeamByID(ctx, id); err != nil {
		return err
	}
	if err := s.requireManager(ctx, id, actorID); err != nil {
		return err
	}

	members, err := s.repo.ListTeamMembers(ctx, id)
	if err != nil {
		logger.Warn("failed to list team members for cascade delete", "team_id", id, "error", err)
		members = nil
	}
	for _, m := range members {
		if err := s.repo.DeleteTeamMember(ctx, id, m.UserID); err != nil {
			logger.Warn("failed to remove team member during delete",
				"team_id", id, "user_id", m.UserID, "error", err)
		}
	}

	links, err := s.repo.ListTeamProjectLinks(ctx, id)
	if err != nil {
		logger.Warn("failed to list team project links for cascade delete", "team_id", id, "error", err)
		links = nil
	}
	for _, l := range links {
		if err := s.repo.DeleteProjectTeam(ctx, l.ProjectID, id); err != nil {
			logger.Warn("failed to remove team project link during delete",
				"team_id", id, "project_id", l.ProjectID, "error", err)
		}
	}

	return s.repo.DeleteTeam(ctx, id)
}

func (s *Teams) Search(ctx context.Context, query string) ([]domain.Team, error) {
	return s.repo.SearchTeams(ctx, query)
}

func (s *Teams) AddMember(ctx context.Context, teamID, userID string, role domain.TeamRole, actorID string) (*domain.TeamMember, error) {
	if _, err := s.repo.GetTeamByID(ctx, teamID); err != nil {
		return nil, err
	}
	if err := s.requireManager(ctx, teamID, actorID); err != nil {
		return nil, err
	}

	member := &domain.TeamMember{
		TeamID: teamID,
		UserID: userID,
		Role:   role,
	}
	if err := s.repo.CreateTeamMember(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// RemoveMember: участник может выйти сам, для остальных нужна роль
// owner/admin. Последнего владельца удалить нельзя.
func (s *Teams) RemoveMember(ctx context.Context, teamID, userID, actorID string) error {
	member, err := s.repo.GetTeamMember(ctx, teamID, userID)
	if err != nil {
		return err
	}
	if actorID != userID {
		if err := s.requireManager(ctx, teamID, actorID); err != nil {
			return err
		}
	}
	if err := s.requireNotLastOwner(ctx, teamID, member); err != nil {
		return err
	}
	return s.repo.DeleteTeamMember(ctx, teamID, userID)
}

// UpdateMemberRole меняет роль участника; понижение последнего владельца
// запрещено
func (s *Teams) UpdateMemberRole(ctx context.Context, teamID, userID string, role domain.TeamRole, actorID string) (*domain.TeamMember, error) {
	member, err := s.repo.GetTeamMember(ctx, teamID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.requireManager(ctx, teamID, actorID); err != nil {
		return nil, err
	}
	if member.Role == domain.TeamRoleOwner && role != domain.TeamRoleOwner {
		if err := s.requireNotLastOwner(ctx, teamID, member); err != nil {
			return nil, err
		}
	}

	member.Role = role
	if err := s.repo.SaveTeamMember(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// ListMembers возвращает участников с данными пользователей; неразрешимый
// пользователь не фатален
func (s *Teams) ListMembers(ctx context.Context, teamID string) ([]domain.TeamMemberView, error) {
	if _, err := s.repo.GetTeamByID(ctx, teamID); err != nil {
		return nil, err
	}
	members, err := s.repo.ListTeamMembers(ctx, teamID)
	if err != nil {
		return nil, err
	}

	views := make([]domain.TeamMemberView, 0, len(members))
	for _, m := range members {
		view := domain.TeamMemberView{TeamMember: m, UserName: domain.UnknownUserName}
		user, err := s.repo.GetUserByID(ctx, m.UserID)
		if err != nil {
			logger.Warn("failed to resolve team member user",
				"team_id", teamID, "user_id", m.UserID, "error", err)
		} else {
			view.UserName = user.Name
			view.UserEmail = user.Email
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *Teams) ListForUser(ctx context.Context, userID string) ([]domain.Team, error) {
	return s.repo.ListTeamsByUser(ctx, userID)
}

func (s *Teams) AddToProject(ctx context.Context, teamID, projectID, actorID string) error {
	if _, err := s.repo.GetTeamByID(ctx, teamID); err != nil {
		return err
	}
	if err := s.requireManager(ctx, teamID, actorID); err != nil {
		return err
	}
	link := &domain.ProjectTeam{
		ProjectID: projectID,
		TeamID:    teamID,
	}
	return s.repo.CreateProjectTeam(ctx, link)
}

func (s *Teams) RemoveFromProject(ctx context.Context, teamID, projectID, actorID string) error {
	if err := s.requireManager(ctx, teamID, actorID); err != nil {
		return err
	}
	return s.repo.DeleteProjectTeam(ctx, projectID, teamID)
}

// requireManager требует у актора роль owner или admin в команде
func (s *Teams) requireManager(ctx context.Context, teamID, actorID string) error {
	member, err := s.repo.GetTeamMember(ctx, teamID, actorID)
	if err != nil {
		if err == domain.ErrMemberNotFound {
			return domain.ErrPermissionDenied
		}
		return err
	}
	switch member.Role {
	case domain.TeamRoleOwner, domain.TeamRoleAdmin:
		return nil
	case domain.TeamRoleMember:
		return domain.ErrPermissionDenied
	}
	return domain.ErrPermissionDenied
}

// requireNotLastOwner запрещает операции, оставляющие команду без владельца
func (s *Teams) requireNotLastOwner(ctx context.Context, teamID string, member *domain.TeamMember) error {
	if member.Role != domain.TeamRoleOwner {
		return nil
	}
	owners, err := s.repo.CountTeamOwners(ctx, teamID)
	if err != nil {
		return err
	}
	if owners <= 1 {
		return domain.ErrLastOwner
	}
	return nil
}
