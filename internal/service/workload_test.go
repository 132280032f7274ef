package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shishlyannikovvv/project-planner/internal/domain"
)

func TestAllocateDefaultsToEightHours(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	owner := e.createUser(t, "Alloc Owner")
	project := e.createProject(t, "Alloc", owner.ID)
	task := e.createTask(t, project.ID, owner.ID, "Alloc task")

	entry, err := e.workload.Allocate(ctx, domain.AllocateInput{
		UserID:    owner.ID,
		ProjectID: project.ID,
		TaskID:    task.ID,
		Date:      date(2026, 2, 2),
	})
	require.NoError(t, err)
	assert.Equal(t, 8.0, entry.AllocatedHours)
	assert.Equal(t, date(2026, 2, 2), entry.Date.UTC())
}

func TestAllocateUpsertsSameDay(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	owner := e.createUser(t, "Upsert Owner")
	project := e.createProject(t, "Upsert", owner.ID)
	task := e.createTask(t, project.ID, owner.ID, "Upsert task")

	day := date(2026, 2, 3)
	_, err := e.workload.Allocate(ctx, domain.AllocateInput{
		UserID: owner.ID, ProjectID: project.ID, TaskID: task.ID,
		Date: day, AllocatedHours: ptr(4.0),
	})
	require.NoError(t, err)

	// Повторная запись на тот же день перезаписывает, а не добавляет
	_, err = e.workload.Allocate(ctx, domain.AllocateInput{
		UserID: owner.ID, ProjectID: project.ID, TaskID: task.ID,
		Date: day, AllocatedHours: ptr(6.0),
	})
	require.NoError(t, err)

	summary, err := e.workload.SummarizeUser(ctx, owner.ID, day, day)
	require.NoError(t, err)
	assert.Equal(t, 6.0, summary.TotalAllocatedHours)
}

func TestSummarizeUserGroupsByProject(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	owner := e.createUser(t, "Summary Owner")
	first := e.createProject(t, "Summary A", owner.ID)
	second := e.createProject(t, "Summary B", owner.ID)
	taskA := e.createTask(t, first.ID, owner.ID, "A")
	taskB := e.createTask(t, second.ID, owner.ID, "B")

	from, to := date(2026, 2, 2), date(2026, 2, 6)
	for _, day := range []time.Time{date(2026, 2, 2), date(2026, 2, 3)} {
		_, err := e.workload.Allocate(ctx, domain.AllocateInput{
			UserID: owner.ID, ProjectID: first.ID, TaskID: taskA.ID,
			Date: day, AllocatedHours: ptr(5.0), ActualHours: ptr(4.0),
		})
		require.NoError(t, err)
	}
	_, err := e.workload.Allocate(ctx, domain.AllocateInput{
		UserID: owner.ID, ProjectID: second.ID, TaskID: taskB.ID,
		Date: date(2026, 2, 4), AllocatedHours: ptr(3.0),
	})
	require.NoError(t, err)

	summary, err := e.workload.SummarizeUser(ctx, owner.ID, from, to)
	require.NoError(t, err)
	assert.Equal(t, owner.ID, summary.UserID)
	assert.Equal(t, "Summary Owner", summary.UserName)
	assert.InDelta(t, 13.0, summary.TotalAllocatedHours, 1e-9)
	assert.InDelta(t, 8.0, summary.TotalActualHours, 1e-9)
	require.Len(t, summary.Projects, 2)

	byProject := map[string]domain.ProjectHours{}
	for _, p := range summary.Projects {
		byProject[p.ProjectID] = p
	}
	assert.InDelta(t, 10.0, byProject[first.ID].AllocatedHours, 1e-9)
	assert.InDelta(t, 3.0, byProject[second.ID].AllocatedHours, 1e-9)
}

func TestSummarizeUnknownUserIsZeroed(t *testing.T) {
	e := newEnv(t)

	summary, err := e.workload.SummarizeUser(context.Background(), "ghost", date(2026, 2, 2), date(2026, 2, 8))
	require.NoError(t, err)
	assert.Equal(t, domain.UnknownUserName, summary.UserName)
	assert.Zero(t, summary.TotalAllocatedHours)
	assert.Empty(t, summary.Projects)
}

func TestSummarizeTeamGroupsByUser(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	owner := e.createUser(t, "Team Sum Owner")
	helper := e.createUser(t, "Team Sum Helper")
	project := e.createProject(t, "Team Sum", owner.ID)
	task := e.createTask(t, project.ID, owner.ID, "Shared work")

	from, to := date(2026, 2, 2), date(2026, 2, 6)
	_, err := e.workload.Allocate(ctx, domain.AllocateInput{
		UserID: owner.ID, ProjectID: project.ID, TaskID: task.ID,
		Date: date(2026, 2, 2), AllocatedHours: ptr(8.0),
	})
	require.NoError(t, err)
	_, err = e.workload.Allocate(ctx, domain.AllocateInput{
		UserID: helper.ID, ProjectID: project.ID, TaskID: task.ID,
		Date: date(2026, 2, 3), AllocatedHours: ptr(6.0),
	})
	require.NoError(t, err)

	summary, err := e.workload.SummarizeTeam(ctx, project.ID, from, to)
	require.NoError(t, err)
	assert.InDelta(t, 14.0, summary.TotalAllocatedHours, 1e-9)
	require.Len(t, summary.Members, 2)

	names := map[string]string{}
	for _, m := range summary.Members {
		names[m.UserID] = m.UserName
	}
	assert.Equal(t, "Team Sum Owner", names[owner.ID])
	assert.Equal(t, "Team Sum Helper", names[helper.ID])
}

func TestCapacityInfo(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	owner := e.createUser(t, "Capacity Owner")
	project := e.createProject(t, "Capacity", owner.ID)
	task := e.createTask(t, project.ID, owner.ID, "Heavy")

	// Неделя: емкость 7/7*40 = 40 часов
	from, to := date(2026, 2, 2), date(2026, 2, 8)

	info, err := e.workload.CapacityInfo(ctx, owner.ID, from, to)
	require.NoError(t, err)
	assert.InDelta(t, 40.0, info.TotalCapacity, 1e-9)
	assert.Zero(t, info.AllocatedHours)
	assert.InDelta(t, 40.0, info.AvailableHours, 1e-9)
	assert.False(t, info.OverAllocated)

	// 44 часа: 110% ровно, еще не перегрузка
	for i := 0; i < 4; i++ {
		_, err = e.workload.Allocate(ctx, domain.AllocateInput{
			UserID: owner.ID, ProjectID: project.ID, TaskID: task.ID,
			Date: from.AddDate(0, 0, i), AllocatedHours: ptr(11.0),
		})
		require.NoError(t, err)
	}
	info, err = e.workload.CapacityInfo(ctx, owner.ID, from, to)
	require.NoError(t, err)
	assert.InDelta(t, 44.0, info.AllocatedHours, 1e-9)
	assert.InDelta(t, 1.1, info.Utilization, 1e-9)
	assert.False(t, info.OverAllocated)
	// Свободных часов не бывает меньше нуля
	assert.Zero(t, info.AvailableHours)

	// 45 часов: выше порога
	_, err = e.workload.Allocate(ctx, domain.AllocateInput{
		UserID: owner.ID, ProjectID: project.ID, TaskID: task.ID,
		Date: from.AddDate(0, 0, 4), AllocatedHours: ptr(1.0),
	})
	require.NoError(t, err)
	info, err = e.workload.CapacityInfo(ctx, owner.ID, from, to)
	require.NoError(t, err)
	assert.True(t, info.OverAllocated)
}

func TestCapacityInfoUnknownUser(t *testing.T) {
	e := newEnv(t)

	info, err := e.workload.CapacityInfo(context.Background(), "ghost", date(2026, 2, 2), date(2026, 2, 8))
	require.NoError(t, err)
	assert.Equal(t, domain.UnknownUserName, info.UserName)
	assert.Zero(t, info.AllocatedHours)
	assert.Zero(t, info.TotalCapacity)
	assert.False(t, info.OverAllocated)
}

func TestDistributionPercents(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	owner := e.createUser(t, "Dist Owner")
	project := e.createProject(t, "Dist", owner.ID)
	task := e.createTask(t, project.ID, owner.ID, "Dist task")

	// Записи внутри последних 30 дней
	today := time.Now().UTC()
	_, err := e.workload.Allocate(ctx, domain.AllocateInput{
		UserID: owner.ID, ProjectID: project.ID, TaskID: task.ID,
		Date: today.AddDate(0, 0, -1), AllocatedHours: ptr(8.0),
	})
	require.NoError(t, err)
	_, err = e.workload.Allocate(ctx, domain.AllocateInput{
		UserID: owner.ID, ProjectID: project.ID, TaskID: task.ID,
		Date: today.AddDate(0, 0, -2), AllocatedHours: ptr(8.0),
	})
	require.NoError(t, err)

	dist, err := e.workload.Distribution(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, dist.Projects, 1)
	assert.Equal(t, project.ID, dist.Projects[0].ProjectID)
	assert.InDelta(t, 16.0, dist.Projects[0].AllocatedHours, 1e-9)

	// 30 дней дают емкость 30/7*40; процент считается от нее
	capacity := 30.0 / 7.0 * 40.0
	assert.InDelta(t, 16.0/capacity*100.0, dist.Projects[0].Percent, 1e-6)
}
