package domain

import (
	"context"
	"time"
)

// Repository описывает все методы работы с базой данных
type Repository interface {
	// Users
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, id string) (*User, error)
	// GetUserBySubject возвращает nil без ошибки, если запись отсутствует
	GetUserBySubject(ctx context.Context, subject string) (*User, error)
	SaveUser(ctx context.Context, user *User) error
	SearchUsers(ctx context.Context, query string) ([]User, error)
	ListUsers(ctx context.Context) ([]User, error)

	// Projects
	CreateProject(ctx context.Context, project *Project) error
	GetProjectByID(ctx context.Context, id string) (*Project, error)
	SaveProject(ctx context.Context, project *Project) error
	DeleteProject(ctx context.Context, id string) error
	ListProjectsByOwner(ctx context.Context, userID string) ([]Project, error)
	ListProjectsByMember(ctx context.Context, userID string) ([]Project, error)
	// Проекты, доступные пользователю через ассоциации его команд
	ListProjectsByUserTeams(ctx context.Context, userID string) ([]Project, error)

	// Project members
	CreateProjectMember(ctx context.Context, member *ProjectMember) error
	GetProjectMember(ctx context.Context, projectID, userID string) (*ProjectMember, error)
	ListProjectMembers(ctx context.Context, projectID string) ([]ProjectMember, error)
	DeleteProjectMember(ctx context.Context, projectID, userID string) error
	// Предикат доступа: владелец ИЛИ прямой участник ИЛИ участник
	// команды, ассоциированной с проектом
	HasProjectAccess(ctx context.Context, projectID, userID string) (bool, error)

	// Tasks
	CreateTask(ctx context.Context, task *Task) error
	GetTaskByID(ctx context.Context, id string) (*Task, error)
	SaveTask(ctx context.Context, task *Task) error
	DeleteTask(ctx context.Context, id string) error
	ListTasksByProject(ctx context.Context, projectID string) ([]Task, error)
	ListTasksByAssignee(ctx context.Context, userID string) ([]Task, error)

	// Teams
	CreateTeam(ctx context.Context, team *Team) error
	GetTeamByID(ctx context.Context, id string) (*Team, error)
	SaveTeam(ctx context.Context, team *Team) error
	DeleteTeam(ctx context.Context, id string) error
	SearchTeams(ctx context.Context, query string) ([]Team, error)
	CreateTeamMember(ctx context.Context, member *TeamMember) error
	GetTeamMember(ctx context.Context, teamID, userID string) (*TeamMember, error)
	SaveTeamMember(ctx context.Context, member *TeamMember) error
	DeleteTeamMember(ctx context.Context, teamID, userID string) error
	ListTeamMembers(ctx context.Context, teamID string) ([]TeamMember, error)
	ListTeamsByUser(ctx context.Context, userID string) ([]Team, error)
	CountTeamOwners(ctx context.Context, teamID string) (int64, error)
	CreateProjectTeam(ctx context.Context, link *ProjectTeam) error
	DeleteProjectTeam(ctx context.Context, projectID, teamID string) error
	ListTeamProjectLinks(ctx context.Context, teamID string) ([]ProjectTeam, error)

	// Comments
	CreateComment(ctx context.Context, comment *TaskComment) error
	GetCommentByID(ctx context.Context, id string) (*TaskComment, error)
	SaveComment(ctx context.Context, comment *TaskComment) error
	DeleteComment(ctx context.Context, id string) error
	// ListComments возвращает комментарии задачи от новых к старым;
	// limit <= 0 означает без ограничения
	ListComments(ctx context.Context, taskID string, limit int) ([]TaskComment, error)

	// Workload
	UpsertWorkloadEntry(ctx context.Context, entry *WorkloadEntry) error
	ListWorkloadByUser(ctx context.Context, userID string, from, to time.Time) ([]WorkloadEntry, error)
	ListWorkloadByProject(ctx context.Context, projectID string, from, to time.Time) ([]WorkloadEntry, error)
}

// UserDirectory - справочник пользователей
type UserDirectory interface {
	GetByID(ctx context.Context, id string) (*User, error)
	GetBySubject(ctx context.Context, subject string) (*User, error)
	Create(ctx context.Context, subject, email, name string) (*User, error)
	Update(ctx context.Context, id string, patch UserPatch) (*User, error)
	Search(ctx context.Context, query string) ([]User, error)
	List(ctx context.Context) ([]User, error)
	GetOrCreateBySubject(ctx context.Context, subject, email, name string) (*User, error)
}

// ProjectService - проекты и членство в них
type ProjectService interface {
	Create(ctx context.Context, in CreateProjectInput) (*Project, error)
	CreateWithInitialMembers(ctx context.Context, in CreateProjectInput, memberIDs []string) (*Project, error)
	Get(ctx context.Context, id, requesterID string) (*Project, error)
	Update(ctx context.Context, id string, patch ProjectPatch, requesterID string) (*Project, error)
	Delete(ctx context.Context, id, requesterID string) error
	ListForUser(ctx context.Context, userID string) ([]Project, error)
	ListForUserIncludingTeams(ctx context.Context, userID string) ([]Project, error)
	ListMembers(ctx context.Context, projectID, requesterID string) ([]ProjectMemberView, error)
	HasAccess(ctx context.Context, projectID, userID string) (bool, error)
}

// TaskService - задачи; проверка доступа делегируется проектному сервису
type TaskService interface {
	ListForProject(ctx context.Context, projectID, requesterID string) ([]Task, error)
	Create(ctx context.Context, in CreateTaskInput, requesterID string) (*Task, error)
	Get(ctx context.Context, id, requesterID string) (*Task, error)
	Update(ctx context.Context, id string, patch TaskPatch, requesterID string) (*Task, error)
	Delete(ctx context.Context, id, requesterID string) error
	ListForAssignee(ctx context.Context, userID string) ([]Task, error)
}

// TeamService - команды, их участники и привязка к проектам
type TeamService interface {
	Create(ctx context.Context, in CreateTeamInput, creatorID string) (*Team, error)
	Get(ctx context.Context, id string) (*Team, error)
	Update(ctx context.Context, id string, patch TeamPatch, actorID string) (*Team, error)
	Delete(ctx context.Context, id, actorID string) error
	Search(ctx context.Context, query string) ([]Team, error)
	AddMember(ctx context.Context, teamID, userID string, role TeamRole, actorID string) (*TeamMember, error)
	RemoveMember(ctx context.Context, teamID, userID, actorID string) error
	UpdateMemberRole(ctx context.Context, teamID, userID string, role TeamRole, actorID string) (*TeamMember, error)
	ListMembers(ctx context.Context, teamID string) ([]TeamMemberView, error)
	ListForUser(ctx context.Context, userID string) ([]Team, error)
	AddToProject(ctx context.Context, teamID, projectID, actorID string) error
	RemoveFromProject(ctx context.Context, teamID, projectID, actorID string) error
}

// CommentService - комментарии к задачам
type CommentService interface {
	List(ctx context.Context, taskID, requesterID string, limit int) ([]CommentView, error)
	ListTruncated(ctx context.Context, taskID, requesterID string, limit int) (*CommentPage, error)
	Create(ctx context.Context, taskID, content, requesterID string) (*TaskComment, error)
	Get(ctx context.Context, id, requesterID string) (*CommentView, error)
	Update(ctx context.Context, id, content, requesterID string) (*TaskComment, error)
	Delete(ctx context.Context, id, requesterID string) error
}

// WorkloadService - агрегация и запись часов
type WorkloadService interface {
	SummarizeUser(ctx context.Context, userID string, from, to time.Time) (*UserWorkloadSummary, error)
	SummarizeTeam(ctx context.Context, projectID string, from, to time.Time) (*TeamWorkloadSummary, error)
	Allocate(ctx context.Context, in AllocateInput) (*WorkloadEntry, error)
	Distribution(ctx context.Context, userID string) (*WorkloadDistribution, error)
	CapacityInfo(ctx context.Context, userID string, from, to time.Time) (*CapacityInfo, error)
}

// AssignmentService - назначение задач с автоматической аллокацией часов
type AssignmentService interface {
	AssignWithAllocation(ctx context.Context, taskID, assigneeID, requesterID string, opts AssignOptions) (*Task, error)
	SuggestAssignees(ctx context.Context, taskID, requesterID string, candidateIDs []string) ([]AssigneeSuggestion, error)
	PreviewImpact(ctx context.Context, taskID, assigneeID, requesterID string) (*AssignmentImpact, error)
}

// TimelineService - представление для диаграммы Ганта и перенос сроков
type TimelineService interface {
	ProjectTimeline(ctx context.Context, projectID, requesterID string) (*ProjectTimeline, error)
	UserTimeline(ctx context.Context, userID string) ([]ProjectTimeline, error)
	MoveTask(ctx context.Context, taskID string, newStart time.Time, requesterID string) (*Task, error)
}
