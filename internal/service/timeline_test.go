package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shishlyannikovvv/project-planner/internal/domain"
	"github.com/Shishlyannikovvv/project-planner/internal/service"
)

func TestProgressForStatus(t *testing.T) {
	cases := []struct {
		status   domain.TaskStatus
		progress int
	}{
		{domain.TaskStatusTodo, 0},
		{domain.TaskStatusInProgress, 50},
		{domain.TaskStatusInReview, 80},
		{domain.TaskStatusDone, 100},
		{domain.TaskStatusBlocked, 25},
		{domain.TaskStatus("garbage"), 0},
	}
	for _, c := range cases {
		assert.Equal(t, c.progress, service.ProgressForStatus(c.status), string(c.status))
	}
}

func TestProjectTimelineRows(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	owner := e.createUser(t, "Gantt Owner")
	project := e.createProject(t, "Gantt", owner.ID)

	start, end := date(2026, 4, 1), date(2026, 4, 10)
	_, err := e.tasks.Create(ctx, domain.CreateTaskInput{
		Title:      "Visible",
		ProjectID:  project.ID,
		Status:     domain.TaskStatusInProgress,
		AssigneeID: &owner.ID,
		StartDate:  &start,
		EndDate:    &end,
	}, owner.ID)
	require.NoError(t, err)

	timeline, err := e.timeline.ProjectTimeline(ctx, project.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "Gantt", timeline.ProjectName)
	require.Len(t, timeline.Rows, 1)

	row := timeline.Rows[0]
	assert.Equal(t, "Visible", row.Title)
	assert.Equal(t, 50, row.Progress)
	assert.Equal(t, "Gantt Owner", row.AssigneeName)
	require.NotNil(t, row.StartDate)
	assert.Equal(t, start, row.StartDate.UTC())
}

func TestProjectTimelineAccess(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	owner := e.createUser(t, "Gantt Access Owner")
	stranger := e.createUser(t, "Gantt Access Stranger")
	project := e.createProject(t, "Gantt Access", owner.ID)

	_, err := e.timeline.ProjectTimeline(ctx, project.ID, stranger.ID)
	assert.ErrorIs(t, err, domain.ErrAccessDenied)
}

func TestUserTimelineCoversAllProjects(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	owner := e.createUser(t, "Multi Owner")
	first := e.createProject(t, "Multi A", owner.ID)
	second := e.createProject(t, "Multi B", owner.ID)
	e.createTask(t, first.ID, owner.ID, "A1")
	e.createTask(t, second.ID, owner.ID, "B1")
	e.createTask(t, second.ID, owner.ID, "B2")

	timelines, err := e.timeline.UserTimeline(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, timelines, 2)

	rowsByProject := map[string]int{}
	for _, tl := range timelines {
		rowsByProject[tl.ProjectID] = len(tl.Rows)
	}
	assert.Equal(t, 1, rowsByProject[first.ID])
	assert.Equal(t, 2, rowsByProject[second.ID])
}

func TestMoveTaskShiftsEndByDelta(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	owner := e.createUser(t, "Move Owner")
	project := e.createProject(t, "Move", owner.ID)

	start, end := date(2026, 4, 6), date(2026, 4, 10)
	task, err := e.tasks.Create(ctx, domain.CreateTaskInput{
		Title:     "Movable",
		ProjectID: project.ID,
		StartDate: &start,
		EndDate:   &end,
	}, owner.ID)
	require.NoError(t, err)

	moved, err := e.timeline.MoveTask(ctx, task.ID, date(2026, 4, 9), owner.ID)
	require.NoError(t, err)
	require.NotNil(t, moved.StartDate)
	require.NotNil(t, moved.EndDate)
	assert.Equal(t, date(2026, 4, 9), moved.StartDate.UTC())
	// Длительность сохраняется: конец сдвигается на те же 3 дня
	assert.Equal(t, date(2026, 4, 13), moved.EndDate.UTC())
}

func TestMoveTaskRejectsDependencyViolation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	owner := e.createUser(t, "Dep Owner")
	project := e.createProject(t, "Deps", owner.ID)

	depStart, depEnd := date(2026, 4, 1), date(2026, 4, 10)
	dep, err := e.tasks.Create(ctx, domain.CreateTaskInput{
		Title:     "Prerequisite",
		ProjectID: project.ID,
		StartDate: &depStart,
		EndDate:   &depEnd,
	}, owner.ID)
	require.NoError(t, err)

	start, end := date(2026, 4, 11), date(2026, 4, 15)
	task, err := e.tasks.Create(ctx, domain.CreateTaskInput{
		Title:        "Dependent",
		ProjectID:    project.ID,
		StartDate:    &start,
		EndDate:      &end,
		Dependencies: []string{dep.ID},
	}, owner.ID)
	require.NoError(t, err)

	// Начало раньше конца зависимости - отказ
	_, err = e.timeline.MoveTask(ctx, task.ID, date(2026, 4, 5), owner.ID)
	assert.ErrorIs(t, err, domain.ErrDependencyViolation)

	// Ровно на день окончания зависимости - допустимо
	moved, err := e.timeline.MoveTask(ctx, task.ID, date(2026, 4, 10), owner.ID)
	require.NoError(t, err)
	assert.Equal(t, date(2026, 4, 10), moved.StartDate.UTC())
}

func TestMoveTaskSkipsDeletedDependency(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	owner := e.createUser(t, "Ghost Dep Owner")
	project := e.createProject(t, "Ghost Deps", owner.ID)

	start := date(2026, 4, 11)
	task, err := e.tasks.Create(ctx, domain.CreateTaskInput{
		Title:        "Orphaned dependent",
		ProjectID:    project.ID,
		StartDate:    &start,
		Dependencies: []string{"deleted-task-id"},
	}, owner.ID)
	require.NoError(t, err)

	// Ненаходимая зависимость не блокирует перенос
	moved, err := e.timeline.MoveTask(ctx, task.ID, date(2026, 4, 1), owner.ID)
	require.NoError(t, err)
	assert.Equal(t, date(2026, 4, 1), moved.StartDate.UTC())
}

func TestMoveTaskNormalizesNewStart(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	owner := e.createUser(t, "Norm Owner")
	project := e.createProject(t, "Norm", owner.ID)

	start := date(2026, 4, 6)
	task, err := e.tasks.Create(ctx, domain.CreateTaskInput{
		Title:     "Normalized",
		ProjectID: project.ID,
		StartDate: &start,
	}, owner.ID)
	require.NoError(t, err)

	noisy := time.Date(2026, 4, 8, 18, 30, 0, 0, time.UTC)
	moved, err := e.timeline.MoveTask(ctx, task.ID, noisy, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, date(2026, 4, 8), moved.StartDate.UTC())
}
