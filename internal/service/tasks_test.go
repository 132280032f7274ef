package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shishlyannikovvv/project-planner/internal/domain"
)

func TestTaskCreateDefaults(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	owner := e.createUser(t, "Task Owner")
	project := e.createProject(t, "Tasks", owner.ID)

	task, err := e.tasks.Create(ctx, domain.CreateTaskInput{
		Title:     "Just a title",
		ProjectID: project.ID,
	}, owner.ID)
	require.NoError(t, err)

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, domain.TaskStatusTodo, task.Status)
	assert.Equal(t, domain.TaskPriorityMedium, task.Priority)
	assert.Empty(t, []string(task.Dependencies))
	assert.Nil(t, task.AssigneeID)
}

func TestTaskCreateNormalizesDates(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	owner := e.createUser(t, "Date Owner")
	project := e.createProject(t, "Dates", owner.ID)

	// Время внутри дня должно обрезаться до полуночи UTC
	noisy := time.Date(2026, 3, 5, 15, 42, 7, 0, time.FixedZone("MSK", 3*3600))
	task, err := e.tasks.Create(ctx, domain.CreateTaskInput{
		Title:     "Noisy dates",
		ProjectID: project.ID,
		StartDate: &noisy,
	}, owner.ID)
	require.NoError(t, err)

	require.NotNil(t, task.StartDate)
	assert.Equal(t, date(2026, 3, 5), task.StartDate.UTC())
}

func TestTaskUpdatePatchSemantics(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	owner := e.createUser(t, "Patch Owner")
	assignee := e.createUser(t, "Patch Assignee")
	project := e.createProject(t, "Patch", owner.ID)

	task, err := e.tasks.Create(ctx, domain.CreateTaskInput{
		Title:          "Original",
		Description:    "Keep me",
		ProjectID:      project.ID,
		AssigneeID:     &assignee.ID,
		EstimatedHours: ptr(16.0),
	}, owner.ID)
	require.NoError(t, err)

	// Обновляем только заголовок: остальные поля не трогаются
	updated, err := e.tasks.Update(ctx, task.ID, domain.TaskPatch{Title: ptr("Renamed")}, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, "Keep me", updated.Description)
	require.NotNil(t, updated.AssigneeID)
	assert.Equal(t, assignee.ID, *updated.AssigneeID)
	require.NotNil(t, updated.EstimatedHours)
	assert.Equal(t, 16.0, *updated.EstimatedHours)

	// Пустой assignee_id снимает исполнителя
	updated, err = e.tasks.Update(ctx, task.ID, domain.TaskPatch{AssigneeID: ptr("")}, owner.ID)
	require.NoError(t, err)
	assert.Nil(t, updated.AssigneeID)
}

func TestTaskAccessDelegatedToProject(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	owner := e.createUser(t, "Delegate Owner")
	stranger := e.createUser(t, "Delegate Stranger")
	project := e.createProject(t, "Delegate", owner.ID)

	task, err := e.tasks.Create(ctx, domain.CreateTaskInput{
		Title:     "Secret",
		ProjectID: project.ID,
	}, owner.ID)
	require.NoError(t, err)

	// Чужому запрещено все: создание, чтение, правка, удаление
	_, err = e.tasks.Create(ctx, domain.CreateTaskInput{Title: "Nope", ProjectID: project.ID}, stranger.ID)
	assert.ErrorIs(t, err, domain.ErrAccessDenied)

	_, err = e.tasks.Get(ctx, task.ID, stranger.ID)
	assert.ErrorIs(t, err, domain.ErrAccessDenied)

	_, err = e.tasks.Update(ctx, task.ID, domain.TaskPatch{Title: ptr("Nope")}, stranger.ID)
	assert.ErrorIs(t, err, domain.ErrAccessDenied)

	err = e.tasks.Delete(ctx, task.ID, stranger.ID)
	assert.ErrorIs(t, err, domain.ErrAccessDenied)

	_, err = e.tasks.ListForProject(ctx, project.ID, stranger.ID)
	assert.ErrorIs(t, err, domain.ErrAccessDenied)
}

func TestTaskNotFoundBeforeAccessCheck(t *testing.T) {
	e := newEnv(t)

	_, err := e.tasks.Get(context.Background(), "no-such-task", "whoever")
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestListForAssignee(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	owner := e.createUser(t, "List Owner")
	assignee := e.createUser(t, "List Assignee")
	project := e.createProject(t, "List", owner.ID)

	_, err := e.tasks.Create(ctx, domain.CreateTaskInput{
		Title: "Mine", ProjectID: project.ID, AssigneeID: &assignee.ID,
	}, owner.ID)
	require.NoError(t, err)
	_, err = e.tasks.Create(ctx, domain.CreateTaskInput{
		Title: "Unassigned", ProjectID: project.ID,
	}, owner.ID)
	require.NoError(t, err)

	tasks, err := e.tasks.ListForAssignee(ctx, assignee.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Mine", tasks[0].Title)
}
