package service

import (
	"context"

	"gorm.io/datatypes"

	"github.com/Shishlyannikovvv/project-planner/internal/domain"
)

// Tasks - задачи. Проверка доступа к проекту не дублируется, а
// делегируется проектному сервису.
type Tasks struct {
	repo     domain.Repository
	projects domain.ProjectService
}

func NewTasks(repo domain.Repository, projects domain.ProjectService) *Tasks {
	return &Tasks{repo: repo, projects: projects}
}

func (s *Tasks) ListForProject(ctx context.Context, projectID, requesterID string) ([]domain.Task, error) {
	if err := s.requireProjectAccess(ctx, projectID, requesterID); err != nil {
		return nil, err
	}
	return s.repo.ListTasksByProject(ctx, projectID)
}

// Create задает дефолты: статус todo, приоритет medium, пустые
// зависимости; даты нормализуются до дневной гранулярности
func (s *Tasks) Create(ctx context.Context, in domain.CreateTaskInput, requesterID string) (*domain.Task, error) {
	if err := s.requireProjectAccess(ctx, in.ProjectID, requesterID); err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = domain.TaskStatusTodo
	}
	priority := in.Priority
	if priority == "" {
		priority = domain.TaskPriorityMedium
	}
	deps := in.Dependencies
	if deps == nil {
		deps = []string{}
	}

	task := &domain.Task{
		Title:          in.Title,
		Description:    in.Description,
		ProjectID:      in.ProjectID,
		AssigneeID:     in.AssigneeID,
		Status:         status,
		Priority:       priority,
		StartDate:      normalizeDayPtr(in.StartDate),
		EndDate:        normalizeDayPtr(in.EndDate),
		EstimatedHours: in.EstimatedHours,
		Dependencies:   datatypes.NewJSONSlice(deps),
	}
	if err := s.repo.CreateTask(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *Tasks) Get(ctx context.Context, id, requesterID string) (*domain.Task, error) {
	task, err := s.repo.GetTaskByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.requireProjectAccess(ctx, task.ProjectID, requesterID); err != nil {
		return nil, err
	}
	return task, nil
}

// Update применяет только присутствующие в патче поля; отсутствующие
// не трогаются. AssigneeID="" снимает исполнителя.
func (s *Tasks) Update(ctx context.Context, id string, patch domain.TaskPatch, requesterID string) (*domain.Task, error) {
	task, err := s.repo.GetTaskByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.requireProjectAccess(ctx, task.ProjectID, requesterID); err != nil {
		return nil, err
	}

	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.AssigneeID != nil {
		if *patch.AssigneeID == "" {
			task.AssigneeID = nil
		} else {
			task.AssigneeID = patch.AssigneeID
		}
	}
	if patch.Status != nil {
		task.Status = *patch.Status
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	if patch.StartDate != nil {
		task.StartDate = normalizeDayPtr(patch.StartDate)
	}
	if patch.EndDate != nil {
		task.EndDate = normalizeDayPtr(patch.EndDate)
	}
	if patch.EstimatedHours != nil {
		task.EstimatedHours = patch.EstimatedHours
	}
	if patch.ActualHours != nil {
		task.ActualHours = patch.ActualHours
	}
	if patch.Dependencies != nil {
		task.Dependencies = datatypes.NewJSONSlice(*patch.Dependencies)
	}

	if err := s.repo.SaveTask(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *Tasks) Delete(ctx context.Context, id, requesterID string) error {
	task, err := s.repo.GetTaskByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.requireProjectAccess(ctx, task.ProjectID, requesterID); err != nil {
		return err
	}
	return s.repo.DeleteTask(ctx, id)
}

func (s *Tasks) ListForAssignee(ctx context.Context, userID string) ([]domain.Task, error) {
	return s.repo.ListTasksByAssignee(ctx, userID)
}

func (s *Tasks) requireProjectAccess(ctx context.Context, projectID, userID string) error {
	ok, err := s.projects.HasAccess(ctx, projectID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrAccessDenied
	}
	return nil
}
