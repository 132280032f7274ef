package service_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Shishlyannikovvv/project-planner/internal/domain"
	"github.com/Shishlyannikovvv/project-planner/internal/service"
	"github.com/Shishlyannikovvv/project-planner/internal/storage"
)

// env собирает полный стек сервисов над свежей SQLite-базой для одного теста
type env struct {
	repo       *storage.Repository
	users      *service.Users
	projects   *service.Projects
	tasks      *service.Tasks
	teams      *service.Teams
	comments   *service.Comments
	workload   *service.Workload
	assignment *service.Assignment
	timeline   *service.Timeline
}

func newEnv(t *testing.T) *env {
	t.Helper()

	db, err := storage.NewSQLiteDB(filepath.Join(t.TempDir(), "planner.db"))
	require.NoError(t, err)

	repo := storage.NewRepository(db)
	users := service.NewUsers(repo)
	projects := service.NewProjects(repo)
	tasks := service.NewTasks(repo, projects)
	teams := service.NewTeams(repo)
	comments := service.NewComments(repo, tasks)
	workload := service.NewWorkload(repo)

	return &env{
		repo:       repo,
		users:      users,
		projects:   projects,
		tasks:      tasks,
		teams:      teams,
		comments:   comments,
		workload:   workload,
		assignment: service.NewAssignment(repo, tasks, workload),
		timeline:   service.NewTimeline(repo, tasks, projects),
	}
}

// createUser создает пользователя справочника с уникальными subject/email
func (e *env) createUser(t *testing.T, name string) *domain.User {
	t.Helper()
	email := strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com"
	user, err := e.users.Create(context.Background(), "sub-"+name, email, name)
	require.NoError(t, err)
	return user
}

// createProject создает проект с владельцем
func (e *env) createProject(t *testing.T, name, ownerID string) *domain.Project {
	t.Helper()
	project, err := e.projects.Create(context.Background(), domain.CreateProjectInput{
		Name:      name,
		OwnerID:   ownerID,
		StartDate: date(2026, 1, 1),
	})
	require.NoError(t, err)
	return project
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T {
	return &v
}
