package service

import (
	"context"
	"errors"
	"time"

	"github.com/Shishlyannikovvv/project-planner/internal/domain"
	"github.com/Shishlyannikovvv/project-planner/internal/logger"
)

// Timeline - представление задач для диаграммы Ганта и перенос сроков с
// проверкой зависимостей
type Timeline struct {
	repo     domain.Repository
	tasks    domain.TaskService
	projects domain.ProjectService
}

func NewTimeline(repo domain.Repository, tasks domain.TaskService, projects domain.ProjectService) *Timeline {
	return &Timeline{repo: repo, tasks: tasks, projects: projects}
}

// ProgressForStatus - процент выполнения для отображения на таймлайне
func ProgressForStatus(status domain.TaskStatus) int {
	switch status {
	case domain.TaskStatusTodo:
		return 0
	case domain.TaskStatusInProgress:
		return 50
	case domain.TaskStatusInReview:
		return 80
	case domain.TaskStatusDone:
		return 100
	case domain.TaskStatusBlocked:
		return 25
	}
	return 0
}

// ProjectTimeline строит строки Ганта по задачам проекта. Имя исполнителя
// подставляется best-effort.
func (s *Timeline) ProjectTimeline(ctx context.Context, projectID, requesterID string) (*domain.ProjectTimeline, error) {
	project, err := s.projects.Get(ctx, projectID, requesterID)
	if err != nil {
		return nil, err
	}
	tasks, err := s.repo.ListTasksByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	timeline := &domain.ProjectTimeline{
		ProjectID:   project.ID,
		ProjectName: project.Name,
		Rows:        make([]domain.TimelineRow, 0, len(tasks)),
	}
	for _, t := range tasks {
		timeline.Rows = append(timeline.Rows, s.buildRow(ctx, t))
	}
	return timeline, nil
}

// UserTimeline собирает таймлайны всех проектов пользователя. Сбой по
// одному проекту логируется и пропускается, не прерывая остальные.
func (s *Timeline) UserTimeline(ctx context.Context, userID string) ([]domain.ProjectTimeline, error) {
	projects, err := s.projects.ListForUserIncludingTeams(ctx, userID)
	if err != nil {
		return nil, err
	}

	timelines := make([]domain.ProjectTimeline, 0, len(projects))
	for _, p := range projects {
		timeline, err := s.ProjectTimeline(ctx, p.ID, userID)
		if err != nil {
			logger.Warn("skipping project in user timeline",
				"project_id", p.ID, "user_id", userID, "error", err)
			continue
		}
		timelines = append(timelines, *timeline)
	}
	return timelines, nil
}

// MoveTask переносит дату начала задачи (и дату конца на ту же дельту),
// предварительно проверяя зависимости
func (s *Timeline) MoveTask(ctx context.Context, taskID string, newStart time.Time, requesterID string) (*domain.Task, error) {
	task, err := s.tasks.Get(ctx, taskID, requesterID)
	if err != nil {
		return nil, err
	}

	newStart = normalizeDay(newStart)
	if err := s.validateDependencies(ctx, task, newStart); err != nil {
		return nil, err
	}

	patch := domain.TaskPatch{StartDate: &newStart}
	if task.StartDate != nil && task.EndDate != nil {
		newEnd := task.EndDate.Add(newStart.Sub(normalizeDay(*task.StartDate)))
		patch.EndDate = &newEnd
	}
	return s.tasks.Update(ctx, taskID, patch, requesterID)
}

// validateDependencies проверяет, что ни одна зависимость не кончается
// позже новой даты начала. Удаленная (ненаходимая) зависимость считается
// выполненной и пропускается; любая другая ошибка трактуется как
// нарушение - проверка закрывается в сторону отказа.
func (s *Timeline) validateDependencies(ctx context.Context, task *domain.Task, newStart time.Time) error {
	for _, depID := range task.Dependencies {
		dep, err := s.repo.GetTaskByID(ctx, depID)
		if err != nil {
			if errors.Is(err, domain.ErrTaskNotFound) {
				logger.Warn("skipping unresolvable task dependency",
					"task_id", task.ID, "dependency_id", depID)
				continue
			}
			logger.Error("dependency validation failed",
				"task_id", task.ID, "dependency_id", depID, "error", err)
			return domain.ErrDependencyViolation
		}
		if dep.EndDate != nil && dep.EndDate.After(newStart) {
			return domain.ErrDependencyViolation
		}
	}
	return nil
}

func (s *Timeline) buildRow(ctx context.Context, task domain.Task) domain.TimelineRow {
	row := domain.TimelineRow{
		TaskID:       task.ID,
		Title:        task.Title,
		Status:       task.Status,
		Progress:     ProgressForStatus(task.Status),
		StartDate:    task.StartDate,
		EndDate:      task.EndDate,
		AssigneeID:   task.AssigneeID,
		Dependencies: []string(task.Dependencies),
	}
	if task.AssigneeID != nil {
		user, err := s.repo.GetUserByID(ctx, *task.AssigneeID)
		if err != nil {
			logger.Warn("failed to resolve task assignee",
				"task_id", task.ID, "assignee_id", *task.AssigneeID, "error", err)
			row.AssigneeName = domain.UnknownUserName
		} else {
			row.AssigneeName = user.Name
		}
	}
	return row
}
